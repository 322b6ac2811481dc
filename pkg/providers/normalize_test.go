package providers

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
)

var normalizeNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))

func TestNormalizeProgram_Defaults(t *testing.T) {
	event := TargetEvent{Name: "Spring 10K", Date: "2025-05-01"}

	p := NormalizeProgram(&Program{Workouts: []Workout{{Name: "Easy run"}}}, event, normalizeNow)

	if _, err := uuid.Parse(p.ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", p.ID, err)
	}
	if p.Status != "active" {
		t.Errorf("Status = %q, want active", p.Status)
	}
	if p.Name != "Generated Program" {
		t.Errorf("Name = %q, want Generated Program", p.Name)
	}
	if p.TargetEvent == nil || *p.TargetEvent != event {
		t.Errorf("TargetEvent = %+v, want %+v", p.TargetEvent, event)
	}
	if p.CurrentContext == nil || p.CurrentContext.Phase != "base" || p.CurrentContext.Week != 1 {
		t.Errorf("CurrentContext = %+v", p.CurrentContext)
	}
	if p.CurrentContext.Injuries == nil || len(p.CurrentContext.Injuries) != 0 {
		t.Errorf("Injuries = %#v, want empty non-nil", p.CurrentContext.Injuries)
	}
	if p.PerformanceTracking == nil || p.PerformanceTracking.Metrics == nil {
		t.Errorf("PerformanceTracking = %+v", p.PerformanceTracking)
	}
	if !p.CreatedAt.Equal(normalizeNow) || p.CreatedAt.Location() != time.UTC {
		t.Errorf("CreatedAt = %v, want %v in UTC", p.CreatedAt, normalizeNow)
	}
	if p.Workouts[0].ProgramID != p.ID {
		t.Errorf("workout ProgramID = %q, want %q", p.Workouts[0].ProgramID, p.ID)
	}
}

func TestNormalizeProgram_KeepsModelValues(t *testing.T) {
	created := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	in := &Program{
		ID:             "prog-1",
		Name:           "Base Builder",
		Status:         "draft",
		TargetEvent:    &TargetEvent{Name: "Model event"},
		CurrentContext: &CurrentContext{Phase: "build", Week: 3, Injuries: []string{"knee"}},
		PerformanceTracking: &PerformanceTracking{
			CompletedWorkouts: 4,
			Metrics:           map[string]float64{"vo2max": 52},
		},
		CreatedAt: created,
		Workouts:  []Workout{{ProgramID: "other"}},
	}
	want := *in

	got := NormalizeProgram(in, TargetEvent{Name: "Requested"}, normalizeNow)

	if !reflect.DeepEqual(*got, want) {
		t.Errorf("NormalizeProgram changed model values:\n got %+v\nwant %+v", *got, want)
	}
}

func TestNormalizeProgram_Nil(t *testing.T) {
	p := NormalizeProgram(nil, TargetEvent{Name: "Race"}, normalizeNow)
	if p == nil || p.ID == "" || p.TargetEvent.Name != "Race" {
		t.Errorf("NormalizeProgram(nil) = %+v", p)
	}
}

func TestNormalizeProgram_UniqueIDs(t *testing.T) {
	a := NormalizeProgram(nil, TargetEvent{}, normalizeNow)
	b := NormalizeProgram(nil, TargetEvent{}, normalizeNow)
	if a.ID == b.ID {
		t.Errorf("expected distinct IDs, both %q", a.ID)
	}
}

func TestProgramPayload_CreatedAt(t *testing.T) {
	pp := programPayload{CreatedAt: "2025-02-03T04:05:06Z"}
	if got := pp.toProgram().CreatedAt; !got.Equal(time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)) {
		t.Errorf("CreatedAt = %v", got)
	}

	pp = programPayload{CreatedAt: "last tuesday"}
	if got := pp.toProgram().CreatedAt; !got.IsZero() {
		t.Errorf("unparseable created_at should be ignored, got %v", got)
	}
}

func TestMergeWorkout(t *testing.T) {
	original := Workout{
		ID:              "w-1",
		Name:            "Lower body",
		DurationMinutes: 60,
		Intensity:       "high",
		Exercises:       []Exercise{{Name: "Back squat", Sets: 4, Reps: "6"}},
	}

	got, err := MergeWorkout(original, map[string]any{
		"duration_minutes": 30,
		"intensity":        "moderate",
		"exercises":        []any{map[string]any{"name": "Goblet squat", "sets": 3, "reps": 10}},
		"adaptation_notes": "hotel gym",
		"unknown_field":    true,
	})
	if err != nil {
		t.Fatalf("MergeWorkout() error = %v", err)
	}

	if got.ID != "w-1" || got.Name != "Lower body" {
		t.Errorf("untouched fields changed: %+v", got)
	}
	if got.DurationMinutes != 30 || got.Intensity != "moderate" || got.AdaptationNotes != "hotel gym" {
		t.Errorf("patched fields not applied: %+v", got)
	}
	if len(got.Exercises) != 1 || got.Exercises[0].Name != "Goblet squat" || got.Exercises[0].Reps != "10" {
		t.Errorf("Exercises = %+v", got.Exercises)
	}
	if original.DurationMinutes != 60 || original.Exercises[0].Name != "Back squat" {
		t.Error("original workout was modified")
	}
}

func TestMergeWorkout_TypeMismatch(t *testing.T) {
	if _, err := MergeWorkout(Workout{}, map[string]any{"duration_minutes": "half an hour"}); err == nil {
		t.Fatal("expected error for non-numeric duration")
	}
}
