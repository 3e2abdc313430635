package ledger

import (
	"fmt"
	"time"

	"github.com/bobmcallan/centavo/internal/models"
)

// Installment split bounds.
const (
	minInstallments = 1
	maxInstallments = 24
)

// BillingSchedule is a card's statement-cycle configuration. It is a pure
// function of (purchase date, close day, due day) with no hidden state.
type BillingSchedule struct {
	CloseDay int // statement close day-of-month, 1-31
	DueDay   int // payment due day-of-month, 1-31
}

// CloseDate returns the statement close date for the cycle m months after
// the purchase month. The configured day is clamped to the month's length.
func (s BillingSchedule) CloseDate(purchase time.Time, m int) time.Time {
	return dayOfMonthClamped(purchase, m, s.CloseDay)
}

// DueDate returns the payment due date for the cycle m months after the
// purchase month. When the due day falls on or before the close day, the
// statement closes late in the month and payment falls early in the next
// one, so the due date shifts a month past its close date.
func (s BillingSchedule) DueDate(purchase time.Time, m int) time.Time {
	offset := m
	if s.DueDay <= s.CloseDay {
		offset++
	}
	return dayOfMonthClamped(purchase, offset, s.DueDay)
}

// DefaultCycle returns the month offset of the statement a purchase belongs
// to: the earliest cycle whose close date is on or after the purchase date.
// A purchase made exactly on the close day is inside that cycle; a purchase
// after the close day rolls to the next one.
func (s BillingSchedule) DefaultCycle(purchase time.Time) int {
	day := truncateToDay(purchase)
	for m := 0; ; m++ {
		if !s.CloseDate(purchase, m).Before(day) {
			return m
		}
	}
}

// dayOfMonthClamped returns the given day in the month `m` months after t's
// month, clamped to the last valid day of that month.
func dayOfMonthClamped(t time.Time, m int, day int) time.Time {
	y, month, _ := t.Date()
	if last := daysInMonth(y, month+time.Month(m)); day > last {
		day = last
	}
	return time.Date(y, month+time.Month(m), day, 0, 0, 0, 0, t.Location())
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SplitInstallments divides a card purchase into `count` expense entries, one
// per consecutive statement starting from the purchase's default cycle. The
// integer division remainder is absorbed into the first installment so the
// rows always sum exactly to the total. Row IDs are left empty for the
// caller to assign before persisting.
func SplitInstallments(userID string, card *models.Card, totalCents int64, count int, purchase time.Time, description, categoryID, groupID string, minPerInstallmentCents int64) ([]*models.Transaction, error) {
	if totalCents <= 0 {
		return nil, fmt.Errorf("%w: total must be positive, got %d", ErrInvalidTransaction, totalCents)
	}
	if count < minInstallments || count > maxInstallments {
		return nil, fmt.Errorf("%w: installments must be between %d and %d, got %d",
			ErrInvalidTransaction, minInstallments, maxInstallments, count)
	}
	base := totalCents / int64(count)
	if count > 1 && base < minPerInstallmentCents {
		return nil, fmt.Errorf("%w: %d cents per installment is below the %d cent floor",
			ErrInstallmentMinimumNotMet, base, minPerInstallmentCents)
	}

	schedule := BillingSchedule{CloseDay: card.StatementCloseDay, DueDay: card.StatementDueDay}
	defaultCycle := schedule.DefaultCycle(purchase)
	remainder := totalCents - base*int64(count)

	instances := make([]*models.Transaction, 0, count)
	for k := 1; k <= count; k++ {
		amount := base
		if k == 1 {
			amount += remainder
		}
		desc := description
		if count > 1 {
			desc = fmt.Sprintf("%s (%d/%d)", description, k, count)
		}
		due := schedule.DueDate(purchase, defaultCycle+k-1)
		instances = append(instances, &models.Transaction{
			UserID:           userID,
			CardID:           card.ID,
			AmountCents:      amount,
			Kind:             models.TxExpense,
			Date:             purchase,
			Settled:          false,
			GroupID:          groupID,
			InstallmentIndex: k,
			InstallmentCount: count,
			StatementDueDate: &due,
			Description:      desc,
			CategoryID:       categoryID,
		})
	}
	return instances, nil
}
