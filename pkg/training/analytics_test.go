package training

import (
	"testing"

	"forgefit/coach/pkg/providers"
)

func TestSummarize(t *testing.T) {
	logs := []providers.SessionLog{
		{Date: "2025-05-01", Completed: true, DurationMinutes: 60, RPE: 7},
		{Date: "2025-05-03", Completed: true, DurationMinutes: 45, RPE: 8},
		{Date: "2025-05-05", Completed: false},
		{Date: "2025-05-07", Completed: true, DurationMinutes: 30}, // no RPE recorded
	}

	got := Summarize(logs)
	want := SessionSummary{
		TotalSessions:     4,
		CompletedSessions: 3,
		MissedSessions:    1,
		CompletionRate:    0.75,
		AverageRPE:        7.5,
		TotalMinutes:      135,
	}
	if got != want {
		t.Errorf("Summarize() = %+v, want %+v", got, want)
	}
}

func TestSummarize_Empty(t *testing.T) {
	if got := Summarize(nil); got != (SessionSummary{}) {
		t.Errorf("Summarize(nil) = %+v", got)
	}
}

func TestSummarize_RoundsRPE(t *testing.T) {
	got := Summarize([]providers.SessionLog{
		{Completed: true, RPE: 7},
		{Completed: true, RPE: 8},
		{Completed: true, RPE: 8},
	})
	if got.AverageRPE != 7.67 {
		t.Errorf("AverageRPE = %v, want 7.67", got.AverageRPE)
	}
}

func TestAnnotate(t *testing.T) {
	data := providers.PerformanceData{
		Sessions: []providers.SessionLog{
			{Completed: true, DurationMinutes: 50, RPE: 6},
			{Completed: false},
			{Completed: true, DurationMinutes: 40, RPE: 7},
		},
		Summary: map[string]float64{SummaryTotalMinutes: 999},
	}

	Annotate(&data)

	if data.Summary[SummaryTotalMinutes] != 999 {
		t.Error("caller-provided summary values should be kept")
	}
	if data.Summary[SummaryCompletionRate] != 0.67 {
		t.Errorf("completion_rate = %v, want 0.67", data.Summary[SummaryCompletionRate])
	}
	if data.Summary[SummaryAverageRPE] != 6.5 || data.Summary[SummaryMissedSessions] != 1 {
		t.Errorf("summary = %v", data.Summary)
	}
}

func TestAnnotate_NoSessions(t *testing.T) {
	var data providers.PerformanceData
	Annotate(&data)
	if data.Summary != nil {
		t.Errorf("Summary = %v, want nil", data.Summary)
	}
}
