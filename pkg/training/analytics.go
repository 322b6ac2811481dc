package training

import (
	"math"

	"forgefit/coach/pkg/providers"
)

// Summary keys written by SessionSummary.Map.
const (
	SummaryTotalSessions     = "total_sessions"
	SummaryCompletedSessions = "completed_sessions"
	SummaryMissedSessions    = "missed_sessions"
	SummaryCompletionRate    = "completion_rate"
	SummaryAverageRPE        = "average_rpe"
	SummaryTotalMinutes      = "total_minutes"
)

// SessionSummary aggregates a list of logged sessions.
type SessionSummary struct {
	TotalSessions     int `json:"total_sessions" yaml:"total_sessions"`
	CompletedSessions int `json:"completed_sessions" yaml:"completed_sessions"`
	MissedSessions    int `json:"missed_sessions" yaml:"missed_sessions"`

	// CompletionRate is completed / total, in [0, 1]. Zero when there are no sessions.
	CompletionRate float64 `json:"completion_rate" yaml:"completion_rate"`

	// AverageRPE averages the RPE of completed sessions that recorded one.
	AverageRPE float64 `json:"average_rpe" yaml:"average_rpe"`

	// TotalMinutes sums the duration of completed sessions.
	TotalMinutes int `json:"total_minutes" yaml:"total_minutes"`
}

// Summarize aggregates logs in a single pass.
func Summarize(logs []providers.SessionLog) SessionSummary {
	var (
		s        SessionSummary
		rpeSum   float64
		rpeCount int
	)

	for _, l := range logs {
		s.TotalSessions++
		if !l.Completed {
			s.MissedSessions++
			continue
		}
		s.CompletedSessions++
		s.TotalMinutes += l.DurationMinutes
		if l.RPE > 0 {
			rpeSum += l.RPE
			rpeCount++
		}
	}

	if s.TotalSessions > 0 {
		s.CompletionRate = float64(s.CompletedSessions) / float64(s.TotalSessions)
	}
	if rpeCount > 0 {
		s.AverageRPE = round2(rpeSum / float64(rpeCount))
	}
	return s
}

// Map returns the summary in the form PerformanceData.Summary carries.
func (s SessionSummary) Map() map[string]float64 {
	return map[string]float64{
		SummaryTotalSessions:     float64(s.TotalSessions),
		SummaryCompletedSessions: float64(s.CompletedSessions),
		SummaryMissedSessions:    float64(s.MissedSessions),
		SummaryCompletionRate:    round2(s.CompletionRate),
		SummaryAverageRPE:        s.AverageRPE,
		SummaryTotalMinutes:      float64(s.TotalMinutes),
	}
}

// Annotate fills data.Summary from data.Sessions, keeping any keys the
// caller already set.
func Annotate(data *providers.PerformanceData) {
	if len(data.Sessions) == 0 {
		return
	}
	if data.Summary == nil {
		data.Summary = map[string]float64{}
	}
	for k, v := range Summarize(data.Sessions).Map() {
		if _, ok := data.Summary[k]; !ok {
			data.Summary[k] = v
		}
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
