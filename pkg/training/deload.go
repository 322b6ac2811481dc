package training

import (
	"fmt"
	"strings"
	"time"

	"forgefit/coach/pkg/providers"
)

// Default deload policy values.
const (
	DefaultDeloadIntervalWeeks = 4
	DefaultRPEThreshold        = 8.5
	DefaultMinCompletionRate   = 0.6
	DefaultLookbackDays        = 14
	DefaultMinSessions         = 3
)

// DeloadPolicy sets the thresholds CheckDeloadEligibility applies.
// Zero fields take the package defaults.
type DeloadPolicy struct {
	// IntervalWeeks is how many weeks may pass between deloads.
	IntervalWeeks int `json:"interval_weeks" yaml:"interval_weeks"`

	// RPEThreshold is the recent average RPE that triggers a deload.
	RPEThreshold float64 `json:"rpe_threshold" yaml:"rpe_threshold"`

	// MinCompletionRate is the recent completion rate below which a deload
	// is suggested.
	MinCompletionRate float64 `json:"min_completion_rate" yaml:"min_completion_rate"`

	// LookbackDays is the window, ending at now, used for effort and adherence.
	LookbackDays int `json:"lookback_days" yaml:"lookback_days"`

	// MinSessions is the number of sessions the window needs before effort
	// and adherence are judged.
	MinSessions int `json:"min_sessions" yaml:"min_sessions"`
}

// DefaultDeloadPolicy returns the policy used when none is configured.
func DefaultDeloadPolicy() DeloadPolicy {
	return DeloadPolicy{
		IntervalWeeks:     DefaultDeloadIntervalWeeks,
		RPEThreshold:      DefaultRPEThreshold,
		MinCompletionRate: DefaultMinCompletionRate,
		LookbackDays:      DefaultLookbackDays,
		MinSessions:       DefaultMinSessions,
	}
}

func (p DeloadPolicy) withDefaults() DeloadPolicy {
	d := DefaultDeloadPolicy()
	if p.IntervalWeeks <= 0 {
		p.IntervalWeeks = d.IntervalWeeks
	}
	if p.RPEThreshold <= 0 {
		p.RPEThreshold = d.RPEThreshold
	}
	if p.MinCompletionRate <= 0 {
		p.MinCompletionRate = d.MinCompletionRate
	}
	if p.LookbackDays <= 0 {
		p.LookbackDays = d.LookbackDays
	}
	if p.MinSessions <= 0 {
		p.MinSessions = d.MinSessions
	}
	return p
}

// DeloadAssessment is the outcome of CheckDeloadEligibility.
type DeloadAssessment struct {
	Eligible bool     `json:"eligible" yaml:"eligible"`
	Reasons  []string `json:"reasons" yaml:"reasons"`

	// WeeksSinceDeload counts whole weeks since the last deload, or since
	// the first logged session when there has been none. -1 when neither
	// is known.
	WeeksSinceDeload int `json:"weeks_since_deload" yaml:"weeks_since_deload"`

	// Recent is the summary of sessions inside the lookback window.
	Recent SessionSummary `json:"recent" yaml:"recent"`
}

// Reason joins the reasons into the text passed to GenerateDeloadOptions.
func (a DeloadAssessment) Reason() string {
	return strings.Join(a.Reasons, "; ")
}

// CheckDeloadEligibility decides whether an athlete is due a deload.
// A zero lastDeload means no deload has been taken.
func CheckDeloadEligibility(logs []providers.SessionLog, lastDeload, now time.Time, policy DeloadPolicy) DeloadAssessment {
	policy = policy.withDefaults()

	a := DeloadAssessment{
		Reasons:          []string{},
		WeeksSinceDeload: -1,
	}

	// Session dates are calendar dates; compare them against today's date
	// rather than the instant.
	today := calendarDate(now)
	windowStart := today.AddDate(0, 0, -policy.LookbackDays)
	var (
		recent   []providers.SessionLog
		earliest time.Time
	)
	for _, l := range logs {
		date, err := ParseDate(l.Date)
		if err != nil {
			continue
		}
		date = calendarDate(date)
		if date.After(today) {
			continue
		}
		if earliest.IsZero() || date.Before(earliest) {
			earliest = date
		}
		if date.After(windowStart) {
			recent = append(recent, l)
		}
	}

	since := lastDeload
	if since.IsZero() {
		since = earliest
	}
	if !since.IsZero() {
		a.WeeksSinceDeload = daysBetween(since, today) / 7
		if a.WeeksSinceDeload >= policy.IntervalWeeks {
			a.Reasons = append(a.Reasons, fmt.Sprintf(
				"%d weeks since last deload (interval %d)", a.WeeksSinceDeload, policy.IntervalWeeks))
		}
	}

	a.Recent = Summarize(recent)
	if a.Recent.TotalSessions >= policy.MinSessions {
		if a.Recent.AverageRPE >= policy.RPEThreshold {
			a.Reasons = append(a.Reasons, fmt.Sprintf(
				"average RPE %.1f over the last %d days (threshold %.1f)",
				a.Recent.AverageRPE, policy.LookbackDays, policy.RPEThreshold))
		}
		if a.Recent.CompletionRate < policy.MinCompletionRate {
			a.Reasons = append(a.Reasons, fmt.Sprintf(
				"completion rate %.0f%% over the last %d days (minimum %.0f%%)",
				a.Recent.CompletionRate*100, policy.LookbackDays, policy.MinCompletionRate*100))
		}
	}

	a.Eligible = len(a.Reasons) > 0
	return a
}
