// Package training provides the deterministic calculations that sit around
// the AI operations: where a program currently is in its periodization,
// whether an athlete is due a deload, and aggregates over logged sessions.
//
// # Overview
//
// Nothing here calls a backend. The results are fed into provider requests
// (a deload reason for GenerateDeloadOptions, a summary for
// AnalyzePerformance) or shown to the user directly.
//
// # Phases
//
// A program is a sequence of phases, each a whole number of weeks long.
// Weeks are counted in calendar days from the program start date, so a
// program that starts on a Monday rolls to week 2 the following Monday.
//
//	status, err := training.CurrentPhase(start, []training.PhaseSpan{
//	    {Name: "base", Weeks: 4},
//	    {Name: "build", Weeks: 3},
//	    {Name: "taper", Weeks: 1},
//	}, time.Now())
//
// # Deload Eligibility
//
// CheckDeloadEligibility looks at three independent signals:
//
//   - Interval: weeks since the last deload reached the policy interval
//   - Effort: average RPE over the lookback window reached the threshold
//   - Adherence: completion rate over the lookback window fell below the minimum
//
// Effort and adherence need at least MinSessions logged sessions in the
// window before they count. Any one signal makes the athlete eligible.
//
// # Session Dates
//
// Session dates are accepted as YYYY-MM-DD or RFC 3339. Sessions whose date
// cannot be parsed are left out of windowed calculations.
package training
