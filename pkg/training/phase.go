package training

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNoPhases is returned when a program has no phases to place a date in.
	ErrNoPhases = errors.New("program has no phases")

	// ErrNotStarted is returned when the date is before the program start.
	ErrNotStarted = errors.New("program has not started yet")
)

// PhaseSpan is one periodization phase.
type PhaseSpan struct {
	Name  string `json:"name" yaml:"name"`
	Weeks int    `json:"weeks" yaml:"weeks"`
	Focus string `json:"focus,omitempty" yaml:"focus,omitempty"`
}

// PhaseStatus is where a program stands on a given date.
type PhaseStatus struct {
	// Phase is the name of the current phase.
	Phase string `json:"phase" yaml:"phase"`

	// Focus is the focus of the current phase, if any.
	Focus string `json:"focus,omitempty" yaml:"focus,omitempty"`

	// Index is the zero-based position of the current phase.
	Index int `json:"index" yaml:"index"`

	// WeekInPhase is the 1-based week within the current phase.
	WeekInPhase int `json:"week_in_phase" yaml:"week_in_phase"`

	// ProgramWeek is the 1-based week within the whole program.
	ProgramWeek int `json:"program_week" yaml:"program_week"`

	// TotalWeeks is the length of the program.
	TotalWeeks int `json:"total_weeks" yaml:"total_weeks"`

	// WeeksRemaining counts the full weeks left in the current phase
	// after this one.
	WeeksRemaining int `json:"weeks_remaining" yaml:"weeks_remaining"`

	// Complete is set once the program has run past its last week.
	// The status then reports the final week of the last phase.
	Complete bool `json:"complete" yaml:"complete"`
}

// CurrentPhase reports which phase and week a program that began on start is
// in at now. Every phase must be at least one week long.
func CurrentPhase(start time.Time, phases []PhaseSpan, now time.Time) (PhaseStatus, error) {
	if len(phases) == 0 {
		return PhaseStatus{}, ErrNoPhases
	}

	total := 0
	for i, p := range phases {
		if p.Weeks <= 0 {
			return PhaseStatus{}, fmt.Errorf("phase %d (%q): weeks must be positive, got %d", i, p.Name, p.Weeks)
		}
		total += p.Weeks
	}

	days := daysBetween(start, now)
	if days < 0 {
		return PhaseStatus{}, ErrNotStarted
	}

	week := days/7 + 1
	if week > total {
		last := len(phases) - 1
		return PhaseStatus{
			Phase:       phases[last].Name,
			Focus:       phases[last].Focus,
			Index:       last,
			WeekInPhase: phases[last].Weeks,
			ProgramWeek: total,
			TotalWeeks:  total,
			Complete:    true,
		}, nil
	}

	offset := 0
	for i, p := range phases {
		if week <= offset+p.Weeks {
			inPhase := week - offset
			return PhaseStatus{
				Phase:          p.Name,
				Focus:          p.Focus,
				Index:          i,
				WeekInPhase:    inPhase,
				ProgramWeek:    week,
				TotalWeeks:     total,
				WeeksRemaining: p.Weeks - inPhase,
			}, nil
		}
		offset += p.Weeks
	}

	// Unreachable: week <= total.
	return PhaseStatus{}, ErrNoPhases
}

// PhasesFromProgram decodes the opaque phase list of a generated program.
// Each element must be an object with at least a name and a week count.
func PhasesFromProgram(raw []any) ([]PhaseSpan, error) {
	if len(raw) == 0 {
		return nil, ErrNoPhases
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to encode phases: %w", err)
	}

	var phases []PhaseSpan
	if err := json.Unmarshal(data, &phases); err != nil {
		return nil, fmt.Errorf("failed to decode phases: %w", err)
	}
	return phases, nil
}

// calendarDate returns midnight UTC of t's own calendar date, the form
// ParseDate produces for date-only strings.
func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween counts calendar days from a to b, using each time's own
// calendar date.
func daysBetween(a, b time.Time) int {
	return int(calendarDate(b).Sub(calendarDate(a)).Hours() / 24)
}

// ParseDate parses a session or program date given as YYYY-MM-DD or RFC 3339.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD or RFC 3339", s)
	}
	return t, nil
}
