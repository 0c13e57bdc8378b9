// Package policy holds the small shared predicates and formatters the views
// agree on: the expiry warning window, date rendering, and the fixed mapping
// from enum values to display tones.
package policy

import (
	"math"
	"time"

	"mealbridge/internal/domain"
)

const (
	DateOnly = "2006-01-02"

	// DefaultExpiryWindowDays is the warning window: a donation two calendar
	// days out (or already past) counts as expiring soon.
	DefaultExpiryWindowDays = 2
)

// ExpiringSoon reports whether expiryDate falls within windowDays whole
// calendar days of now, in now's location. Past dates always qualify.
// Unparseable dates never qualify.
func ExpiringSoon(now time.Time, expiryDate string, windowDays int) bool {
	expiry, err := time.ParseInLocation(DateOnly, expiryDate, now.Location())
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	days := int(math.Round(expiry.Sub(today).Hours() / 24))
	return days <= windowDays
}

// FormatDate renders a calendar date or timestamp in the short display form,
// e.g. "Jul 4, 2025". Values that parse as neither come back unchanged.
func FormatDate(value string) string {
	for _, layout := range []string{DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return value
}

// Tone is a presentation category. The CLI and API map tones to colors; the
// mapping from enum value to tone is fixed here so every view agrees.
type Tone string

const (
	ToneWarning Tone = "warning"
	ToneInfo    Tone = "info"
	ToneSuccess Tone = "success"
	ToneDanger  Tone = "danger"
	ToneNeutral Tone = "neutral"
)

func StatusTone(s domain.DonationStatus) Tone {
	switch s {
	case domain.StatusPending:
		return ToneWarning
	case domain.StatusCollected:
		return ToneInfo
	case domain.StatusDistributed:
		return ToneSuccess
	}
	return ToneNeutral
}

func PriorityTone(p domain.NeedPriority) Tone {
	switch p {
	case domain.PriorityHigh:
		return ToneDanger
	case domain.PriorityMedium:
		return ToneWarning
	case domain.PriorityLow:
		return ToneSuccess
	}
	return ToneNeutral
}
