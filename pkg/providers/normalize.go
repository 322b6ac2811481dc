package providers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Program defaults applied by NormalizeProgram.
const (
	DefaultProgramName   = "Generated Program"
	DefaultProgramStatus = "active"
	DefaultPhase         = "base"
	DefaultChallengeType = "general"
)

// programPayload is the wire shape of a generated program. created_at is
// kept as text because models emit arbitrary date formats.
type programPayload struct {
	Program
	CreatedAt string `json:"created_at,omitempty"`
}

// NormalizeProgram fills the fields a model reply may omit.
// It returns p for chaining; a nil p yields a fully defaulted program.
//
// Defaults:
//   - id: a new UUID
//   - status: "active"
//   - name: "Generated Program"
//   - target_event: the requested event
//   - current_context: phase "base", week 1, no injuries
//   - performance_tracking: zero counters and empty metrics
//   - created_at: now
func NormalizeProgram(p *Program, event TargetEvent, now time.Time) *Program {
	if p == nil {
		p = &Program{}
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = DefaultProgramStatus
	}
	if p.Name == "" {
		p.Name = DefaultProgramName
	}
	if p.TargetEvent == nil {
		e := event
		p.TargetEvent = &e
	}
	if p.CurrentContext == nil {
		p.CurrentContext = &CurrentContext{
			Phase: DefaultPhase,
			Week:  1,
		}
	}
	if p.CurrentContext.Injuries == nil {
		p.CurrentContext.Injuries = []string{}
	}
	if p.PerformanceTracking == nil {
		p.PerformanceTracking = &PerformanceTracking{}
	}
	if p.PerformanceTracking.Metrics == nil {
		p.PerformanceTracking.Metrics = map[string]float64{}
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now.UTC()
	}

	for i := range p.Workouts {
		if p.Workouts[i].ProgramID == "" {
			p.Workouts[i].ProgramID = p.ID
		}
	}

	return p
}

// toProgram converts the wire payload, parsing created_at when it is RFC 3339.
func (pp *programPayload) toProgram() *Program {
	p := pp.Program
	if pp.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339, pp.CreatedAt); err == nil {
			p.CreatedAt = t
		}
	}
	return &p
}

// MergeWorkout returns a copy of original with every top-level field present
// in patch overwriting the original value. Fields absent from patch are kept.
func MergeWorkout(original Workout, patch map[string]any) (*Workout, error) {
	base, err := json.Marshal(original)
	if err != nil {
		return nil, fmt.Errorf("failed to encode workout: %w", err)
	}

	merged := map[string]any{}
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, fmt.Errorf("failed to decode workout: %w", err)
	}

	for key, value := range patch {
		merged[key] = value
	}

	data, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("failed to encode merged workout: %w", err)
	}

	var out Workout
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode merged workout: %w", err)
	}

	return &out, nil
}
