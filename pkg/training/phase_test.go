package training

import (
	"errors"
	"testing"
	"time"
)

var block = []PhaseSpan{
	{Name: "base", Weeks: 4, Focus: "aerobic volume"},
	{Name: "build", Weeks: 3},
	{Name: "taper", Weeks: 1},
}

func TestCurrentPhase(t *testing.T) {
	start := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC) // Monday

	tests := []struct {
		name string
		now  time.Time
		want PhaseStatus
	}{
		{
			name: "first day",
			now:  start,
			want: PhaseStatus{Phase: "base", Focus: "aerobic volume", WeekInPhase: 1, ProgramWeek: 1, TotalWeeks: 8, WeeksRemaining: 3},
		},
		{
			name: "last day of week one",
			now:  start.AddDate(0, 0, 6).Add(14 * time.Hour),
			want: PhaseStatus{Phase: "base", Focus: "aerobic volume", WeekInPhase: 1, ProgramWeek: 1, TotalWeeks: 8, WeeksRemaining: 3},
		},
		{
			name: "earlier hour on day eight",
			now:  start.AddDate(0, 0, 7).Add(-8 * time.Hour),
			want: PhaseStatus{Phase: "base", Focus: "aerobic volume", WeekInPhase: 2, ProgramWeek: 2, TotalWeeks: 8, WeeksRemaining: 2},
		},
		{
			name: "first week of build",
			now:  start.AddDate(0, 0, 28),
			want: PhaseStatus{Phase: "build", Index: 1, WeekInPhase: 1, ProgramWeek: 5, TotalWeeks: 8, WeeksRemaining: 2},
		},
		{
			name: "taper",
			now:  start.AddDate(0, 0, 52),
			want: PhaseStatus{Phase: "taper", Index: 2, WeekInPhase: 1, ProgramWeek: 8, TotalWeeks: 8},
		},
		{
			name: "finished",
			now:  start.AddDate(0, 0, 70),
			want: PhaseStatus{Phase: "taper", Index: 2, WeekInPhase: 1, ProgramWeek: 8, TotalWeeks: 8, Complete: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CurrentPhase(start, block, tt.now)
			if err != nil {
				t.Fatalf("CurrentPhase() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("CurrentPhase() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCurrentPhase_Errors(t *testing.T) {
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	if _, err := CurrentPhase(start, nil, start); !errors.Is(err, ErrNoPhases) {
		t.Errorf("no phases: error = %v", err)
	}
	if _, err := CurrentPhase(start, block, start.AddDate(0, 0, -1)); !errors.Is(err, ErrNotStarted) {
		t.Errorf("before start: error = %v", err)
	}
	if _, err := CurrentPhase(start, []PhaseSpan{{Name: "base", Weeks: 0}}, start); err == nil {
		t.Error("zero-week phase should be rejected")
	}
}

func TestPhasesFromProgram(t *testing.T) {
	raw := []any{
		map[string]any{"name": "base", "weeks": float64(6), "focus": "volume", "notes": "ignored"},
		map[string]any{"name": "peak", "weeks": float64(2)},
	}

	phases, err := PhasesFromProgram(raw)
	if err != nil {
		t.Fatalf("PhasesFromProgram() error = %v", err)
	}
	if len(phases) != 2 || phases[0] != (PhaseSpan{Name: "base", Weeks: 6, Focus: "volume"}) || phases[1].Weeks != 2 {
		t.Errorf("phases = %+v", phases)
	}

	if _, err := PhasesFromProgram(nil); !errors.Is(err, ErrNoPhases) {
		t.Errorf("empty: error = %v", err)
	}
	if _, err := PhasesFromProgram([]any{"base block"}); err == nil {
		t.Error("non-object phase should fail")
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-06-01")
	if err != nil || d.Day() != 1 || d.Month() != time.June {
		t.Errorf("ParseDate(date) = %v, %v", d, err)
	}
	if _, err := ParseDate("2025-06-01T07:30:00+02:00"); err != nil {
		t.Errorf("ParseDate(RFC 3339) error = %v", err)
	}
	if _, err := ParseDate("June 1st"); err == nil {
		t.Error("expected error for free-form date")
	}
}
