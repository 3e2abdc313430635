package storage

import (
	"context"
	"testing"

	"github.com/bobmcallan/centavo/internal/common"
	"github.com/bobmcallan/centavo/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	logger := common.NewSilentLogger()
	store, err := NewStore(logger, dir)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAccountCRUD(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	acct := &models.Account{
		ID:           "acc_1",
		UserID:       "alice",
		Name:         "Checking",
		BalanceCents: 50000,
		Active:       true,
	}
	if err := store.SaveAccount(ctx, acct); err != nil {
		t.Fatalf("SaveAccount: %v", err)
	}

	got, err := store.GetAccount(ctx, "alice", "acc_1")
	if err != nil {
		t.Fatalf("GetAccount: %v", err)
	}
	if got.BalanceCents != 50000 {
		t.Errorf("BalanceCents = %d, want 50000", got.BalanceCents)
	}
	if got.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	// Update preserves CreatedAt
	created := got.CreatedAt
	got.BalanceCents = 42000
	if err := store.SaveAccount(ctx, got); err != nil {
		t.Fatalf("SaveAccount update: %v", err)
	}
	got, _ = store.GetAccount(ctx, "alice", "acc_1")
	if got.BalanceCents != 42000 {
		t.Errorf("BalanceCents = %d after update, want 42000", got.BalanceCents)
	}
	if !got.CreatedAt.Equal(created) {
		t.Error("CreatedAt changed on update")
	}

	// User scoping
	if _, err := store.GetAccount(ctx, "bob", "acc_1"); err == nil {
		t.Error("expected not-found for other user's account")
	}

	if err := store.DeleteAccount(ctx, "alice", "acc_1"); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}
	if _, err := store.GetAccount(ctx, "alice", "acc_1"); err == nil {
		t.Error("expected not-found after delete")
	}
}

func TestListAccountsScopedToUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, tc := range []struct{ user, id string }{
		{"alice", "acc_1"}, {"alice", "acc_2"}, {"bob", "acc_3"},
	} {
		err := store.SaveAccount(ctx, &models.Account{ID: tc.id, UserID: tc.user, Name: tc.id, Active: true})
		if err != nil {
			t.Fatalf("SaveAccount %s: %v", tc.id, err)
		}
	}

	accounts, err := store.ListAccounts(ctx, "alice")
	if err != nil {
		t.Fatalf("ListAccounts: %v", err)
	}
	if len(accounts) != 2 {
		t.Errorf("ListAccounts(alice) = %d accounts, want 2", len(accounts))
	}
}

func TestCardCRUD(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	card := &models.Card{
		ID:                "card_1",
		UserID:            "alice",
		Name:              "Visa",
		StatementCloseDay: 28,
		StatementDueDay:   5,
		CreditLimitCents:  500000,
		Active:            true,
	}
	if err := store.SaveCard(ctx, card); err != nil {
		t.Fatalf("SaveCard: %v", err)
	}

	got, err := store.GetCard(ctx, "alice", "card_1")
	if err != nil {
		t.Fatalf("GetCard: %v", err)
	}
	if got.StatementCloseDay != 28 || got.StatementDueDay != 5 {
		t.Errorf("cycle config = %d/%d, want 28/5", got.StatementCloseDay, got.StatementDueDay)
	}

	cards, err := store.ListCards(ctx, "alice")
	if err != nil {
		t.Fatalf("ListCards: %v", err)
	}
	if len(cards) != 1 {
		t.Errorf("ListCards = %d, want 1", len(cards))
	}

	if err := store.DeleteCard(ctx, "alice", "card_1"); err != nil {
		t.Fatalf("DeleteCard: %v", err)
	}
	if _, err := store.GetCard(ctx, "alice", "card_1"); err == nil {
		t.Error("expected not-found after delete")
	}
}

func TestCategoryCRUD(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	cat := &models.Category{ID: "cat_1", UserID: "alice", Name: "Groceries", Kind: models.TxExpense}
	if err := store.SaveCategory(ctx, cat); err != nil {
		t.Fatalf("SaveCategory: %v", err)
	}

	cats, err := store.ListCategories(ctx, "alice")
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(cats) != 1 || cats[0].Name != "Groceries" {
		t.Errorf("unexpected categories: %+v", cats)
	}

	if err := store.DeleteCategory(ctx, "alice", "cat_1"); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	cats, _ = store.ListCategories(ctx, "alice")
	if len(cats) != 0 {
		t.Errorf("expected no categories after delete, got %d", len(cats))
	}
}
