package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/gosuri/uitable"

	"forgefit/coach/pkg/providers"
	"forgefit/coach/pkg/training"
)

// The views below wrap results for text output. JSON and YAML output is
// identical to the wrapped value.

type programView struct {
	providers.Program `yaml:",inline"`
}

func (v programView) RenderText(w io.Writer) error {
	p := &v.Program

	header := uitable.New()
	header.Separator = "  "
	header.AddRow("Program:", fmt.Sprintf("%s (%s)", p.Name, p.ID))
	header.AddRow("Status:", p.Status)
	if p.DurationWeeks > 0 {
		header.AddRow("Weeks:", p.DurationWeeks)
	}
	if p.TargetEvent != nil {
		header.AddRow("Event:", strings.TrimSpace(p.TargetEvent.Name+" "+p.TargetEvent.Date))
	}
	if p.CurrentContext != nil {
		header.AddRow("Current:", fmt.Sprintf("%s, week %d", p.CurrentContext.Phase, p.CurrentContext.Week))
	}
	if p.Description != "" {
		header.AddRow("About:", p.Description)
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}

	if phases, err := training.PhasesFromProgram(p.Phases); err == nil {
		table := uitable.New()
		table.MaxColWidth = 50
		table.AddRow("PHASE", "WEEKS", "FOCUS")
		for _, ph := range phases {
			table.AddRow(ph.Name, ph.Weeks, ph.Focus)
		}
		if _, err := fmt.Fprintf(w, "\n%s\n", table); err != nil {
			return err
		}
	}

	if len(p.Workouts) == 0 {
		return nil
	}
	table := uitable.New()
	table.MaxColWidth = 40
	table.AddRow("DATE", "WORKOUT", "TYPE", "MIN", "INTENSITY", "EXERCISES")
	for _, wo := range p.Workouts {
		table.AddRow(wo.ScheduledDate, wo.Name, wo.Type, wo.DurationMinutes, wo.Intensity, len(wo.Exercises))
	}
	_, err := fmt.Fprintf(w, "\n%s\n", table)
	return err
}

type challengeView struct {
	providers.Challenge `yaml:",inline"`
}

func (v challengeView) RenderText(w io.Writer) error {
	table := uitable.New()
	table.Separator = "  "
	table.Wrap = true
	table.MaxColWidth = 72
	table.AddRow("Challenge:", v.Name)
	table.AddRow("Type:", v.Type)
	table.AddRow("Target date:", v.TargetDate)
	table.AddRow("Description:", v.Description)
	_, err := fmt.Fprintln(w, table)
	return err
}

type workoutView struct {
	providers.Workout `yaml:",inline"`
}

func (v workoutView) RenderText(w io.Writer) error {
	header := uitable.New()
	header.Separator = "  "
	header.Wrap = true
	header.MaxColWidth = 72
	header.AddRow("Workout:", v.Name)
	header.AddRow("Duration:", fmt.Sprintf("%d min", v.DurationMinutes))
	header.AddRow("Intensity:", v.Intensity)
	if v.AdaptationNotes != "" {
		header.AddRow("Changes:", v.AdaptationNotes)
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	return renderExercises(w, v.Exercises)
}

func renderExercises(w io.Writer, exercises []providers.Exercise) error {
	if len(exercises) == 0 {
		return nil
	}
	table := uitable.New()
	table.MaxColWidth = 40
	table.AddRow("EXERCISE", "SETS", "REPS", "LOAD", "REST")
	for _, e := range exercises {
		rest := ""
		if e.RestSeconds > 0 {
			rest = fmt.Sprintf("%ds", e.RestSeconds)
		}
		table.AddRow(e.Name, e.Sets, string(e.Reps), string(e.Load), rest)
	}
	_, err := fmt.Fprintf(w, "\n%s\n", table)
	return err
}

type deloadView []providers.DeloadOption

func (v deloadView) RenderText(w io.Writer) error {
	if len(v) == 0 {
		_, err := fmt.Fprintln(w, "No deload options returned.")
		return err
	}
	table := uitable.New()
	table.Wrap = true
	table.MaxColWidth = 60
	table.AddRow("TYPE", "DESCRIPTION", "CHANGES")
	for _, o := range v {
		table.AddRow(o.Type, o.Description, formatModifications(o.Modifications))
	}
	_, err := fmt.Fprintln(w, table)
	return err
}

// formatModifications renders a modification map as sorted key=value pairs.
func formatModifications(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, m[k]))
	}
	return strings.Join(parts, ", ")
}

type analysisView struct {
	providers.PerformanceAnalysis `yaml:",inline"`
}

func (v analysisView) RenderText(w io.Writer) error {
	var b strings.Builder
	writeList(&b, "Insights", v.Insights)
	writeList(&b, "Recommendations", v.Recommendations)
	if len(v.ProgramAdjustments) > 0 {
		fmt.Fprintf(&b, "Program adjustments: %s\n", formatModifications(v.ProgramAdjustments))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeList(b *strings.Builder, title string, items []string) {
	fmt.Fprintf(b, "%s:\n", title)
	if len(items) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, item := range items {
		fmt.Fprintf(b, "  - %s\n", item)
	}
	b.WriteString("\n")
}

type phaseView struct {
	training.PhaseStatus `yaml:",inline"`
}

func (v phaseView) RenderText(w io.Writer) error {
	table := uitable.New()
	table.Separator = "  "
	table.AddRow("Phase:", fmt.Sprintf("%s (%d of the program's phases)", v.Phase, v.Index+1))
	if v.Focus != "" {
		table.AddRow("Focus:", v.Focus)
	}
	table.AddRow("Week:", fmt.Sprintf("%d of phase, %d of %d overall", v.WeekInPhase, v.ProgramWeek, v.TotalWeeks))
	if v.Complete {
		table.AddRow("Status:", "program complete")
	} else {
		table.AddRow("Remaining:", fmt.Sprintf("%d more week(s) in this phase", v.WeeksRemaining))
	}
	_, err := fmt.Fprintln(w, table)
	return err
}

type assessmentView struct {
	training.DeloadAssessment `yaml:",inline"`
}

func (v assessmentView) RenderText(w io.Writer) error {
	table := uitable.New()
	table.Separator = "  "
	if v.Eligible {
		table.AddRow("Deload due:", "yes")
	} else {
		table.AddRow("Deload due:", "no")
	}
	if v.WeeksSinceDeload >= 0 {
		table.AddRow("Weeks since deload:", v.WeeksSinceDeload)
	}
	table.AddRow("Recent sessions:", fmt.Sprintf("%d (%d completed)", v.Recent.TotalSessions, v.Recent.CompletedSessions))
	table.AddRow("Recent average RPE:", fmt.Sprintf("%.1f", v.Recent.AverageRPE))
	table.AddRow("Recent completion:", fmt.Sprintf("%.0f%%", v.Recent.CompletionRate*100))
	for _, r := range v.Reasons {
		table.AddRow("Reason:", r)
	}
	_, err := fmt.Fprintln(w, table)
	return err
}
