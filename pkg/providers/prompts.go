package providers

import (
	"encoding/json"
	"fmt"
	"strings"
)

// systemPrompt frames every request. Backends that support a native JSON mode
// enforce it as well; the instruction keeps local models in line.
const systemPrompt = `You are an expert strength and endurance coach who designs evidence-based, periodized training.
Always answer with a single JSON object and nothing else. Do not wrap it in markdown.`

// Prompt is the instruction pair sent for one operation.
type Prompt struct {
	System string
	User   string
}

// ProgramPrompt builds the instruction for GenerateProgram.
func ProgramPrompt(profile UserProfile, event TargetEvent, pctx *ProgramGenerationContext) Prompt {
	var b strings.Builder

	b.WriteString("Create a periodized training program for this athlete.\n\n")
	writeSection(&b, "Athlete profile", profile)
	writeSection(&b, "Target event", event)
	if pctx != nil {
		writeSection(&b, "Constraints", pctx)
	}

	b.WriteString(`Respond with JSON of the form:
{
  "name": string,
  "description": string,
  "duration_weeks": number,
  "phases": [{"name": string, "weeks": number, "focus": string}],
  "workouts": [{"name": string, "type": string, "scheduled_date": "YYYY-MM-DD", "duration_minutes": number,
    "intensity": string, "exercises": [{"name": string, "sets": number, "reps": string, "load": string, "rest_seconds": number}]}],
  "current_context": {"phase": string, "week": number}
}
Build toward the event date, include a taper, and respect every injury and equipment limit.`)

	return Prompt{System: systemPrompt, User: b.String()}
}

// ChallengePrompt builds the instruction for GenerateChallenge.
func ChallengePrompt(profile UserProfile, challengeType string) Prompt {
	var b strings.Builder

	fmt.Fprintf(&b, "Design a %s training challenge suited to this athlete.\n\n", challengeType)
	writeSection(&b, "Athlete profile", profile)

	b.WriteString(`Respond with JSON of the form:
{"name": string, "type": string, "target_date": "YYYY-MM-DD", "description": string}
The challenge should be achievable within 4 to 8 weeks at the athlete's current level.`)

	return Prompt{System: systemPrompt, User: b.String()}
}

// AdaptWorkoutPrompt builds the instruction for AdaptWorkout.
func AdaptWorkoutPrompt(workout Workout, wctx WorkoutAdaptationContext) Prompt {
	var b strings.Builder

	b.WriteString("Adapt this planned workout to the athlete's current circumstances.\n\n")
	writeSection(&b, "Planned workout", workout)
	writeSection(&b, "Circumstances", wctx)

	b.WriteString(`Respond with JSON containing only the workout fields you change, using the same field names
as the planned workout (for example "exercises", "duration_minutes", "intensity"), plus
"adaptation_notes": string explaining the changes.
Fit the available time and equipment, lower intensity when readiness is low or fatigue is high,
and avoid loading any injured area.`)

	return Prompt{System: systemPrompt, User: b.String()}
}

// DeloadPrompt builds the instruction for GenerateDeloadOptions.
func DeloadPrompt(workout Workout, reason string) Prompt {
	var b strings.Builder

	b.WriteString("Propose one or two deload variants of this workout.\n\n")
	writeSection(&b, "Workout", workout)
	if reason != "" {
		fmt.Fprintf(&b, "Reason for deload: %s\n\n", reason)
	}

	b.WriteString(`Respond with JSON of the form:
{"deload_options": [{"type": "volume" | "intensity" | "frequency" | "active_recovery",
  "description": string, "modifications": object}]}
Base each option on established deload practice, such as cutting volume 40 to 60 percent
while holding intensity, or holding volume while reducing load 10 to 20 percent.`)

	return Prompt{System: systemPrompt, User: b.String()}
}

// AnalysisPrompt builds the instruction for AnalyzePerformance.
func AnalysisPrompt(profile UserProfile, data PerformanceData, program Program) Prompt {
	var b strings.Builder

	b.WriteString("Analyze this athlete's recent training against their program.\n\n")
	writeSection(&b, "Athlete profile", profile)
	writeSection(&b, "Program", programDigest(program))
	writeSection(&b, "Performance data", data)

	b.WriteString(`Respond with JSON of the form:
{"insights": [string], "recommendations": [string], "program_adjustments": object}
Omit program_adjustments when no change is warranted.`)

	return Prompt{System: systemPrompt, User: b.String()}
}

// programDigest trims a program to the fields an analysis needs.
func programDigest(p Program) map[string]any {
	digest := map[string]any{
		"name":           p.Name,
		"status":         p.Status,
		"duration_weeks": p.DurationWeeks,
		"workout_count":  len(p.Workouts),
	}
	if p.TargetEvent != nil {
		digest["target_event"] = p.TargetEvent
	}
	if p.CurrentContext != nil {
		digest["current_context"] = p.CurrentContext
	}
	if len(p.Phases) > 0 {
		digest["phases"] = p.Phases
	}
	return digest
}

// writeSection writes a titled JSON block.
func writeSection(b *strings.Builder, title string, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		data = []byte(fmt.Sprintf("%+v", v))
	}
	fmt.Fprintf(b, "%s:\n%s\n\n", title, data)
}
