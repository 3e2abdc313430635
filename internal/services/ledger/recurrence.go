package ledger

import (
	"fmt"
	"time"

	"github.com/bobmcallan/centavo/internal/interfaces"
	"github.com/bobmcallan/centavo/internal/models"
)

// Recurrence expansion bounds.
const (
	minOccurrences = 1
	maxOccurrences = 60
)

// ExpandRecurrence turns one recurring-transaction intent into exactly
// `occurrences` dated instances sharing groupID. Instance i (1-indexed) is
// dated the template date advanced by (i-1) interval units, always computed
// from the original start date so that month-end clamping never compounds
// (Jan 31 -> Feb 28 -> Mar 31, not Mar 28).
//
// The first instance keeps the template's settlement flag; every later
// instance is planned regardless of whether its date is in the past. This is
// policy, not a date comparison. Row IDs are left empty for the caller to
// assign before persisting.
func ExpandRecurrence(userID string, template interfaces.TransactionRequest, interval models.RecurrenceInterval, occurrences int, groupID string) ([]*models.Transaction, error) {
	if !models.ValidRecurrenceInterval(interval) {
		return nil, fmt.Errorf("%w: unknown interval %q", ErrInvalidRecurrence, interval)
	}
	if occurrences < minOccurrences || occurrences > maxOccurrences {
		return nil, fmt.Errorf("%w: occurrences must be between %d and %d, got %d",
			ErrInvalidRecurrence, minOccurrences, maxOccurrences, occurrences)
	}

	instances := make([]*models.Transaction, 0, occurrences)
	for i := 1; i <= occurrences; i++ {
		description := template.Description
		if occurrences > 1 {
			description = fmt.Sprintf("%s (%d/%d)", template.Description, i, occurrences)
		}
		settled := false
		if i == 1 {
			settled = template.Settled
		}
		instances = append(instances, &models.Transaction{
			UserID:      userID,
			AccountID:   template.AccountID,
			CardID:      template.CardID,
			AmountCents: template.AmountCents,
			Kind:        template.Kind,
			Date:        advanceDate(template.Date, interval, i-1),
			Settled:     settled,
			GroupID:     groupID,
			Description: description,
			CategoryID:  template.CategoryID,
		})
	}
	return instances, nil
}

// advanceDate moves start forward by n interval units.
func advanceDate(start time.Time, interval models.RecurrenceInterval, n int) time.Time {
	switch interval {
	case models.IntervalWeekly:
		return start.AddDate(0, 0, 7*n)
	case models.IntervalBiweekly:
		return start.AddDate(0, 0, 14*n)
	case models.IntervalMonthly:
		return addMonthsClamped(start, n)
	case models.IntervalYearly:
		return addMonthsClamped(start, 12*n)
	default:
		return start
	}
}

// addMonthsClamped adds months to t, clamping the day-of-month to the last
// valid day of the target month instead of overflowing into the next month
// the way AddDate does (Jan 31 + 1 month = Feb 28/29, not Mar 3).
func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	day := d
	if last := daysInMonth(y, m+time.Month(months)); day > last {
		day = last
	}
	h, min, sec := t.Clock()
	return time.Date(y, m+time.Month(months), day, h, min, sec, t.Nanosecond(), t.Location())
}

// daysInMonth returns the number of days in the given month. The month may
// be outside 1-12; time.Date normalizes it.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
