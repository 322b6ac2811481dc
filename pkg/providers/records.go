package providers

import (
	"encoding/json"
	"strings"
	"time"
)

// UserProfile is the athlete profile supplied by the persistence collaborator.
type UserProfile struct {
	ID                  string   `json:"id,omitempty" yaml:"id,omitempty"`
	Name                string   `json:"name,omitempty" yaml:"name,omitempty"`
	Age                 int      `json:"age,omitempty" yaml:"age,omitempty"`
	Sex                 string   `json:"sex,omitempty" yaml:"sex,omitempty"`
	WeightKg            float64  `json:"weight_kg,omitempty" yaml:"weight_kg,omitempty"`
	ExperienceLevel     string   `json:"experience_level,omitempty" yaml:"experience_level,omitempty"`
	TrainingHistory     string   `json:"training_history,omitempty" yaml:"training_history,omitempty"`
	Goals               []string `json:"goals,omitempty" yaml:"goals,omitempty"`
	SessionsPerWeek     int      `json:"sessions_per_week,omitempty" yaml:"sessions_per_week,omitempty"`
	Equipment           []string `json:"equipment,omitempty" yaml:"equipment,omitempty"`
	Injuries            []string `json:"injuries,omitempty" yaml:"injuries,omitempty"`
	PreferredModalities []string `json:"preferred_modalities,omitempty" yaml:"preferred_modalities,omitempty"`
}

// TargetEvent is the event a program builds toward.
type TargetEvent struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
	Date string `json:"date,omitempty" yaml:"date,omitempty"`
	Goal string `json:"goal,omitempty" yaml:"goal,omitempty"`
}

// ProgramGenerationContext carries optional constraints for program generation.
type ProgramGenerationContext struct {
	SessionsPerWeek        int      `json:"sessions_per_week,omitempty" yaml:"sessions_per_week,omitempty"`
	SessionDurationMinutes int      `json:"session_duration_minutes,omitempty" yaml:"session_duration_minutes,omitempty"`
	StartDate              string   `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	Equipment              []string `json:"equipment,omitempty" yaml:"equipment,omitempty"`
	Limitations            []string `json:"limitations,omitempty" yaml:"limitations,omitempty"`
	Notes                  string   `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// WorkoutAdaptationContext describes the circumstances a workout must adapt to.
type WorkoutAdaptationContext struct {
	AvailableEquipment   []string `json:"available_equipment,omitempty" yaml:"available_equipment,omitempty"`
	TimeAvailableMinutes int      `json:"time_available_minutes,omitempty" yaml:"time_available_minutes,omitempty"`
	// ReadinessScore is a 1-10 self-reported readiness rating (0 = unknown).
	ReadinessScore int    `json:"readiness_score,omitempty" yaml:"readiness_score,omitempty"`
	Traveling      bool   `json:"traveling,omitempty" yaml:"traveling,omitempty"`
	TravelNotes    string `json:"travel_notes,omitempty" yaml:"travel_notes,omitempty"`
	Injury         string `json:"injury,omitempty" yaml:"injury,omitempty"`
	FatigueLevel   string `json:"fatigue_level,omitempty" yaml:"fatigue_level,omitempty"`
	Notes          string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Exercise is a single prescribed movement inside a workout.
type Exercise struct {
	Name        string     `json:"name" yaml:"name"`
	Sets        int        `json:"sets,omitempty" yaml:"sets,omitempty"`
	Reps        FlexString `json:"reps,omitempty" yaml:"reps,omitempty"`
	Load        FlexString `json:"load,omitempty" yaml:"load,omitempty"`
	RestSeconds int        `json:"rest_seconds,omitempty" yaml:"rest_seconds,omitempty"`
	Notes       string     `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Workout is a single planned session.
type Workout struct {
	ID              string     `json:"id,omitempty" yaml:"id,omitempty"`
	ProgramID       string     `json:"program_id,omitempty" yaml:"program_id,omitempty"`
	Name            string     `json:"name,omitempty" yaml:"name,omitempty"`
	Type            string     `json:"type,omitempty" yaml:"type,omitempty"`
	ScheduledDate   string     `json:"scheduled_date,omitempty" yaml:"scheduled_date,omitempty"`
	DurationMinutes int        `json:"duration_minutes,omitempty" yaml:"duration_minutes,omitempty"`
	Intensity       string     `json:"intensity,omitempty" yaml:"intensity,omitempty"`
	Exercises       []Exercise `json:"exercises,omitempty" yaml:"exercises,omitempty"`
	Notes           string     `json:"notes,omitempty" yaml:"notes,omitempty"`
	AdaptationNotes string     `json:"adaptation_notes,omitempty" yaml:"adaptation_notes,omitempty"`
}

// CurrentContext tracks where an athlete is within a program.
type CurrentContext struct {
	Phase          string   `json:"phase" yaml:"phase"`
	Week           int      `json:"week" yaml:"week"`
	ReadinessScore int      `json:"readiness_score,omitempty" yaml:"readiness_score,omitempty"`
	Traveling      bool     `json:"traveling" yaml:"traveling"`
	Injuries       []string `json:"injuries" yaml:"injuries"`
}

// PerformanceTracking accumulates program-level training statistics.
type PerformanceTracking struct {
	CompletedWorkouts int                `json:"completed_workouts" yaml:"completed_workouts"`
	MissedWorkouts    int                `json:"missed_workouts" yaml:"missed_workouts"`
	AdherenceRate     float64            `json:"adherence_rate" yaml:"adherence_rate"`
	LastDeload        string             `json:"last_deload,omitempty" yaml:"last_deload,omitempty"`
	Metrics           map[string]float64 `json:"metrics" yaml:"metrics"`
}

// Program is a periodized training program.
// Phases are opaque to this package; callers own their interpretation
// (see package training for phase arithmetic).
type Program struct {
	ID                  string               `json:"id" yaml:"id"`
	UserID              string               `json:"user_id,omitempty" yaml:"user_id,omitempty"`
	Name                string               `json:"name" yaml:"name"`
	Description         string               `json:"description,omitempty" yaml:"description,omitempty"`
	TargetEvent         *TargetEvent         `json:"target_event,omitempty" yaml:"target_event,omitempty"`
	Status              string               `json:"status" yaml:"status"`
	DurationWeeks       int                  `json:"duration_weeks,omitempty" yaml:"duration_weeks,omitempty"`
	Phases              []any                `json:"phases,omitempty" yaml:"phases,omitempty"`
	Workouts            []Workout            `json:"workouts,omitempty" yaml:"workouts,omitempty"`
	CurrentContext      *CurrentContext      `json:"current_context" yaml:"current_context"`
	PerformanceTracking *PerformanceTracking `json:"performance_tracking" yaml:"performance_tracking"`
	CreatedAt           time.Time            `json:"created_at" yaml:"created_at"`
}

// Challenge is a short goal-oriented challenge for an athlete.
type Challenge struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	TargetDate  string `json:"target_date" yaml:"target_date"`
	Description string `json:"description" yaml:"description"`
}

// DeloadOption is one reduced-load variant of a workout.
type DeloadOption struct {
	Type          string         `json:"type" yaml:"type"`
	Description   string         `json:"description" yaml:"description"`
	Modifications map[string]any `json:"modifications,omitempty" yaml:"modifications,omitempty"`
}

// SessionLog is one logged training session.
type SessionLog struct {
	WorkoutID       string  `json:"workout_id,omitempty" yaml:"workout_id,omitempty"`
	Date            string  `json:"date" yaml:"date"`
	Completed       bool    `json:"completed" yaml:"completed"`
	DurationMinutes int     `json:"duration_minutes,omitempty" yaml:"duration_minutes,omitempty"`
	RPE             float64 `json:"rpe,omitempty" yaml:"rpe,omitempty"`
	Notes           string  `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// PerformanceData is the logged history handed to AnalyzePerformance.
type PerformanceData struct {
	Period   string             `json:"period,omitempty" yaml:"period,omitempty"`
	Sessions []SessionLog       `json:"sessions,omitempty" yaml:"sessions,omitempty"`
	Metrics  map[string]float64 `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	// Summary holds precomputed aggregates (see package training).
	Summary map[string]float64 `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// PerformanceAnalysis is the result of AnalyzePerformance.
type PerformanceAnalysis struct {
	Insights           []string       `json:"insights" yaml:"insights"`
	Recommendations    []string       `json:"recommendations" yaml:"recommendations"`
	ProgramAdjustments map[string]any `json:"program_adjustments,omitempty" yaml:"program_adjustments,omitempty"`
}

// FlexString is a string that also accepts JSON numbers and booleans.
// Models write prescriptions such as reps or load as either "8-10" or 8.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = FlexString(strings.TrimSpace(string(data)))
	return nil
}
