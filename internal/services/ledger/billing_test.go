package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/bobmcallan/centavo/internal/models"
)

func testCard(closeDay, dueDay int) *models.Card {
	return &models.Card{
		ID:                "card_1",
		UserID:            "u1",
		Name:              "Visa",
		StatementCloseDay: closeDay,
		StatementDueDay:   dueDay,
		Active:            true,
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBillingDueDateAfterCloseDate(t *testing.T) {
	// Due day after close day: same month as the close.
	s := BillingSchedule{CloseDay: 5, DueDay: 15}
	if got := s.DueDate(date(2026, 3, 1), 0); !got.Equal(date(2026, 3, 15)) {
		t.Errorf("Expected due 2026-03-15, got %s", got.Format("2006-01-02"))
	}

	// Due day on or before close day: payment rolls to the next month.
	s = BillingSchedule{CloseDay: 25, DueDay: 10}
	if got := s.DueDate(date(2026, 3, 1), 0); !got.Equal(date(2026, 4, 10)) {
		t.Errorf("Expected due 2026-04-10, got %s", got.Format("2006-01-02"))
	}

	// Equal days also roll forward.
	s = BillingSchedule{CloseDay: 10, DueDay: 10}
	if got := s.DueDate(date(2026, 3, 1), 0); !got.Equal(date(2026, 4, 10)) {
		t.Errorf("Expected due 2026-04-10, got %s", got.Format("2006-01-02"))
	}
}

func TestBillingDayClamping(t *testing.T) {
	s := BillingSchedule{CloseDay: 31, DueDay: 31}
	if got := s.CloseDate(date(2026, 2, 1), 0); !got.Equal(date(2026, 2, 28)) {
		t.Errorf("Expected close clamped to 2026-02-28, got %s", got.Format("2006-01-02"))
	}
	if got := s.CloseDate(date(2028, 2, 1), 0); !got.Equal(date(2028, 2, 29)) {
		t.Errorf("Expected leap-year close 2028-02-29, got %s", got.Format("2006-01-02"))
	}
}

func TestBillingDefaultCycle(t *testing.T) {
	s := BillingSchedule{CloseDay: 20, DueDay: 5}

	// Before the close day: current cycle.
	if got := s.DefaultCycle(date(2026, 3, 10)); got != 0 {
		t.Errorf("Purchase before close: expected cycle 0, got %d", got)
	}
	// Exactly on the close day: still the current cycle.
	if got := s.DefaultCycle(date(2026, 3, 20)); got != 0 {
		t.Errorf("Purchase on close day: expected cycle 0, got %d", got)
	}
	// The day after: next cycle.
	if got := s.DefaultCycle(date(2026, 3, 21)); got != 1 {
		t.Errorf("Purchase after close day: expected cycle 1, got %d", got)
	}
}

func TestSplitInstallmentsRemainderToFirst(t *testing.T) {
	instances, err := SplitInstallments("u1", testCard(20, 5), 1000, 3,
		date(2026, 3, 10), "Headphones", "", "grp-inst", 100)
	if err != nil {
		t.Fatalf("SplitInstallments failed: %v", err)
	}
	if len(instances) != 3 {
		t.Fatalf("Expected 3 installments, got %d", len(instances))
	}

	var sum int64
	for _, tx := range instances {
		sum += tx.AmountCents
	}
	if sum != 1000 {
		t.Errorf("Installments must sum to the total: got %d", sum)
	}
	if instances[0].AmountCents != 334 || instances[1].AmountCents != 333 || instances[2].AmountCents != 333 {
		t.Errorf("Expected 334/333/333, got %d/%d/%d",
			instances[0].AmountCents, instances[1].AmountCents, instances[2].AmountCents)
	}
}

func TestSplitInstallmentsRows(t *testing.T) {
	purchase := date(2026, 3, 10)
	instances, err := SplitInstallments("u1", testCard(20, 5), 30000, 3,
		purchase, "Flight", "cat_travel", "grp-fly", 100)
	if err != nil {
		t.Fatalf("SplitInstallments failed: %v", err)
	}

	// Close day 20, due day 5 <= close day: first due in the cycle's next
	// month, then monthly.
	wantDue := []time.Time{
		date(2026, 4, 5),
		date(2026, 5, 5),
		date(2026, 6, 5),
	}
	for i, tx := range instances {
		if tx.Kind != models.TxExpense {
			t.Errorf("Installment %d: expected expense, got %s", i+1, tx.Kind)
		}
		if tx.Settled {
			t.Errorf("Installment %d: expected planned row", i+1)
		}
		if tx.CardID != "card_1" || tx.GroupID != "grp-fly" {
			t.Errorf("Installment %d: wrong linkage %s/%s", i+1, tx.CardID, tx.GroupID)
		}
		if tx.InstallmentIndex != i+1 || tx.InstallmentCount != 3 {
			t.Errorf("Installment %d: index %d/%d", i+1, tx.InstallmentIndex, tx.InstallmentCount)
		}
		if !tx.Date.Equal(purchase) {
			t.Errorf("Installment %d: expected purchase date, got %s", i+1, tx.Date)
		}
		if tx.StatementDueDate == nil || !tx.StatementDueDate.Equal(wantDue[i]) {
			t.Errorf("Installment %d: expected due %s, got %v", i+1, wantDue[i].Format("2006-01-02"), tx.StatementDueDate)
		}
	}
}

func TestSplitInstallmentsPurchaseAfterCloseRolls(t *testing.T) {
	// Purchase past the close day lands in the next statement.
	instances, err := SplitInstallments("u1", testCard(20, 5), 10000, 2,
		date(2026, 3, 25), "Late purchase", "", "g", 100)
	if err != nil {
		t.Fatalf("SplitInstallments failed: %v", err)
	}
	if want := date(2026, 5, 5); !instances[0].StatementDueDate.Equal(want) {
		t.Errorf("Expected first due %s, got %s", want.Format("2006-01-02"), instances[0].StatementDueDate.Format("2006-01-02"))
	}
	if want := date(2026, 6, 5); !instances[1].StatementDueDate.Equal(want) {
		t.Errorf("Expected second due %s, got %s", want.Format("2006-01-02"), instances[1].StatementDueDate.Format("2006-01-02"))
	}
}

func TestSplitInstallmentsMonotonicDueDates(t *testing.T) {
	instances, err := SplitInstallments("u1", testCard(31, 31), 240000, 24,
		date(2026, 1, 15), "Sofa", "", "g", 100)
	if err != nil {
		t.Fatalf("SplitInstallments failed: %v", err)
	}
	for i := 1; i < len(instances); i++ {
		if !instances[i-1].StatementDueDate.Before(*instances[i].StatementDueDate) {
			t.Errorf("Due dates not strictly increasing at installment %d: %s >= %s",
				i+1, instances[i-1].StatementDueDate.Format("2006-01-02"), instances[i].StatementDueDate.Format("2006-01-02"))
		}
	}
}

func TestSplitInstallmentsValidation(t *testing.T) {
	card := testCard(20, 5)
	purchase := date(2026, 3, 10)

	if _, err := SplitInstallments("u1", card, 0, 3, purchase, "x", "", "g", 100); !errors.Is(err, ErrInvalidTransaction) {
		t.Errorf("Zero total: expected ErrInvalidTransaction, got %v", err)
	}
	if _, err := SplitInstallments("u1", card, 10000, 0, purchase, "x", "", "g", 100); !errors.Is(err, ErrInvalidTransaction) {
		t.Errorf("Zero count: expected ErrInvalidTransaction, got %v", err)
	}
	if _, err := SplitInstallments("u1", card, 10000, 25, purchase, "x", "", "g", 100); !errors.Is(err, ErrInvalidTransaction) {
		t.Errorf("Count 25: expected ErrInvalidTransaction, got %v", err)
	}

	// 150 cents over 2 installments is 75 each, below the 100 cent floor.
	if _, err := SplitInstallments("u1", card, 150, 2, purchase, "x", "", "g", 100); !errors.Is(err, ErrInstallmentMinimumNotMet) {
		t.Errorf("Expected ErrInstallmentMinimumNotMet, got %v", err)
	}
	// A single installment is exempt from the floor.
	if _, err := SplitInstallments("u1", card, 50, 1, purchase, "x", "", "g", 100); err != nil {
		t.Errorf("Single installment should skip the floor: %v", err)
	}
}
