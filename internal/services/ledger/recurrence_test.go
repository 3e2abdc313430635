package ledger

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bobmcallan/centavo/internal/interfaces"
	"github.com/bobmcallan/centavo/internal/models"
)

func rentTemplate(date time.Time) interfaces.TransactionRequest {
	return interfaces.TransactionRequest{
		AccountID:   "acc_main",
		AmountCents: 150000,
		Kind:        models.TxExpense,
		Date:        date,
		Settled:     false,
		Description: "Rent",
	}
}

func TestExpandRecurrenceMonthly(t *testing.T) {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	instances, err := ExpandRecurrence("u1", rentTemplate(start), models.IntervalMonthly, 12, "grp-rent")
	if err != nil {
		t.Fatalf("ExpandRecurrence failed: %v", err)
	}
	if len(instances) != 12 {
		t.Fatalf("Expected 12 instances, got %d", len(instances))
	}
	for i, tx := range instances {
		want := time.Date(2026, time.Month(1+i), 5, 0, 0, 0, 0, time.UTC)
		if !tx.Date.Equal(want) {
			t.Errorf("Instance %d: expected date %s, got %s", i+1, want.Format("2006-01-02"), tx.Date.Format("2006-01-02"))
		}
		if tx.GroupID != "grp-rent" {
			t.Errorf("Instance %d: expected group grp-rent, got %s", i+1, tx.GroupID)
		}
		if tx.AmountCents != 150000 {
			t.Errorf("Instance %d: expected amount 150000, got %d", i+1, tx.AmountCents)
		}
		wantDesc := fmt.Sprintf("Rent (%d/12)", i+1)
		if tx.Description != wantDesc {
			t.Errorf("Instance %d: expected description %q, got %q", i+1, wantDesc, tx.Description)
		}
	}
}

func TestExpandRecurrenceMonthEndClamping(t *testing.T) {
	// Jan 31 series: February clamps to its last day, later months with 31
	// days return to the 31st. Clamping never compounds.
	start := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	instances, err := ExpandRecurrence("u1", rentTemplate(start), models.IntervalMonthly, 5, "g")
	if err != nil {
		t.Fatalf("ExpandRecurrence failed: %v", err)
	}
	wantDates := []time.Time{
		time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC),
	}
	for i, want := range wantDates {
		if !instances[i].Date.Equal(want) {
			t.Errorf("Instance %d: expected %s, got %s", i+1, want.Format("2006-01-02"), instances[i].Date.Format("2006-01-02"))
		}
	}
}

func TestExpandRecurrenceLeapYear(t *testing.T) {
	start := time.Date(2028, 1, 30, 0, 0, 0, 0, time.UTC)
	instances, err := ExpandRecurrence("u1", rentTemplate(start), models.IntervalMonthly, 2, "g")
	if err != nil {
		t.Fatalf("ExpandRecurrence failed: %v", err)
	}
	want := time.Date(2028, 2, 29, 0, 0, 0, 0, time.UTC)
	if !instances[1].Date.Equal(want) {
		t.Errorf("Expected leap-year clamp to %s, got %s", want.Format("2006-01-02"), instances[1].Date.Format("2006-01-02"))
	}
}

func TestExpandRecurrenceWeeklyAndBiweekly(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	weekly, err := ExpandRecurrence("u1", rentTemplate(start), models.IntervalWeekly, 3, "g")
	if err != nil {
		t.Fatalf("ExpandRecurrence failed: %v", err)
	}
	if !weekly[2].Date.Equal(start.AddDate(0, 0, 14)) {
		t.Errorf("Weekly instance 3: expected %s, got %s", start.AddDate(0, 0, 14), weekly[2].Date)
	}

	biweekly, err := ExpandRecurrence("u1", rentTemplate(start), models.IntervalBiweekly, 3, "g")
	if err != nil {
		t.Fatalf("ExpandRecurrence failed: %v", err)
	}
	if !biweekly[2].Date.Equal(start.AddDate(0, 0, 28)) {
		t.Errorf("Biweekly instance 3: expected %s, got %s", start.AddDate(0, 0, 28), biweekly[2].Date)
	}
}

func TestExpandRecurrenceYearly(t *testing.T) {
	// Feb 29 start: non-leap years clamp to Feb 28.
	start := time.Date(2028, 2, 29, 0, 0, 0, 0, time.UTC)
	instances, err := ExpandRecurrence("u1", rentTemplate(start), models.IntervalYearly, 3, "g")
	if err != nil {
		t.Fatalf("ExpandRecurrence failed: %v", err)
	}
	if !instances[1].Date.Equal(time.Date(2029, 2, 28, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Yearly instance 2: got %s", instances[1].Date.Format("2006-01-02"))
	}
	if !instances[2].Date.Equal(time.Date(2030, 2, 28, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Yearly instance 3: got %s", instances[2].Date.Format("2006-01-02"))
	}
}

func TestExpandRecurrenceSettlementPolicy(t *testing.T) {
	past := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	template := rentTemplate(past)
	template.Settled = true
	instances, err := ExpandRecurrence("u1", template, models.IntervalMonthly, 6, "g")
	if err != nil {
		t.Fatalf("ExpandRecurrence failed: %v", err)
	}
	if !instances[0].Settled {
		t.Error("First instance should keep the template's settled flag")
	}
	// Later instances stay planned even though their dates are in the past.
	for i := 1; i < len(instances); i++ {
		if instances[i].Settled {
			t.Errorf("Instance %d should be planned", i+1)
		}
	}

	template.Settled = false
	instances, _ = ExpandRecurrence("u1", template, models.IntervalMonthly, 3, "g")
	if instances[0].Settled {
		t.Error("First instance should be planned when the template is planned")
	}
}

func TestExpandRecurrenceSingleOccurrence(t *testing.T) {
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	instances, err := ExpandRecurrence("u1", rentTemplate(start), models.IntervalMonthly, 1, "g")
	if err != nil {
		t.Fatalf("ExpandRecurrence failed: %v", err)
	}
	if len(instances) != 1 {
		t.Fatalf("Expected 1 instance, got %d", len(instances))
	}
	if instances[0].Description != "Rent" {
		t.Errorf("Single instance should keep the bare description, got %q", instances[0].Description)
	}
}

func TestExpandRecurrenceBounds(t *testing.T) {
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	for _, count := range []int{0, -1, 61} {
		_, err := ExpandRecurrence("u1", rentTemplate(start), models.IntervalMonthly, count, "g")
		if !errors.Is(err, ErrInvalidRecurrence) {
			t.Errorf("Count %d: expected ErrInvalidRecurrence, got %v", count, err)
		}
	}

	_, err := ExpandRecurrence("u1", rentTemplate(start), "daily", 3, "g")
	if !errors.Is(err, ErrInvalidRecurrence) {
		t.Errorf("Expected ErrInvalidRecurrence for unknown interval, got %v", err)
	}
}
