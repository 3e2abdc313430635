package ledger

import (
	"context"
	"fmt"
	"sort"

	"github.com/bobmcallan/centavo/internal/interfaces"
	"github.com/bobmcallan/centavo/internal/models"
)

// mockStore is an in-memory LedgerStore with per-call failure injection.
type mockStore struct {
	accounts   map[string]*models.Account
	cards      map[string]*models.Card
	categories map[string]*models.Category
	txs        map[string]*models.Transaction

	// saveAccountErrs is consumed one entry per SaveAccount call; a nil
	// entry means that call succeeds. Empty means never fail.
	saveAccountErrs []error
	insertErr       error
	insertBatchErr  error
}

func newMockStore() *mockStore {
	return &mockStore{
		accounts:   make(map[string]*models.Account),
		cards:      make(map[string]*models.Card),
		categories: make(map[string]*models.Category),
		txs:        make(map[string]*models.Transaction),
	}
}

func key(userID, id string) string { return userID + "\x00" + id }

func (m *mockStore) SaveAccount(_ context.Context, account *models.Account) error {
	if len(m.saveAccountErrs) > 0 {
		err := m.saveAccountErrs[0]
		m.saveAccountErrs = m.saveAccountErrs[1:]
		if err != nil {
			return err
		}
	}
	cp := *account
	m.accounts[key(account.UserID, account.ID)] = &cp
	return nil
}

func (m *mockStore) GetAccount(_ context.Context, userID, accountID string) (*models.Account, error) {
	acct, ok := m.accounts[key(userID, accountID)]
	if !ok {
		return nil, fmt.Errorf("account '%s' not found", accountID)
	}
	cp := *acct
	return &cp, nil
}

func (m *mockStore) ListAccounts(_ context.Context, userID string) ([]*models.Account, error) {
	var result []*models.Account
	for _, a := range m.accounts {
		if a.UserID == userID {
			cp := *a
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockStore) DeleteAccount(_ context.Context, userID, accountID string) error {
	delete(m.accounts, key(userID, accountID))
	return nil
}

func (m *mockStore) SaveCard(_ context.Context, card *models.Card) error {
	cp := *card
	m.cards[key(card.UserID, card.ID)] = &cp
	return nil
}

func (m *mockStore) GetCard(_ context.Context, userID, cardID string) (*models.Card, error) {
	card, ok := m.cards[key(userID, cardID)]
	if !ok {
		return nil, fmt.Errorf("card '%s' not found", cardID)
	}
	cp := *card
	return &cp, nil
}

func (m *mockStore) ListCards(_ context.Context, userID string) ([]*models.Card, error) {
	var result []*models.Card
	for _, c := range m.cards {
		if c.UserID == userID {
			cp := *c
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockStore) DeleteCard(_ context.Context, userID, cardID string) error {
	delete(m.cards, key(userID, cardID))
	return nil
}

func (m *mockStore) SaveCategory(_ context.Context, category *models.Category) error {
	cp := *category
	m.categories[key(category.UserID, category.ID)] = &cp
	return nil
}

func (m *mockStore) GetCategory(_ context.Context, userID, categoryID string) (*models.Category, error) {
	cat, ok := m.categories[key(userID, categoryID)]
	if !ok {
		return nil, fmt.Errorf("category '%s' not found", categoryID)
	}
	cp := *cat
	return &cp, nil
}

func (m *mockStore) ListCategories(_ context.Context, userID string) ([]*models.Category, error) {
	var result []*models.Category
	for _, c := range m.categories {
		if c.UserID == userID {
			cp := *c
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (m *mockStore) DeleteCategory(_ context.Context, userID, categoryID string) error {
	delete(m.categories, key(userID, categoryID))
	return nil
}

func (m *mockStore) InsertTransaction(_ context.Context, tx *models.Transaction) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	cp := *tx
	m.txs[key(tx.UserID, tx.ID)] = &cp
	return nil
}

func (m *mockStore) InsertTransactions(_ context.Context, txs []*models.Transaction) error {
	if m.insertBatchErr != nil {
		return m.insertBatchErr
	}
	for _, tx := range txs {
		cp := *tx
		m.txs[key(tx.UserID, tx.ID)] = &cp
	}
	return nil
}

func (m *mockStore) GetTransaction(_ context.Context, userID, txID string) (*models.Transaction, error) {
	tx, ok := m.txs[key(userID, txID)]
	if !ok {
		return nil, fmt.Errorf("transaction '%s' not found", txID)
	}
	cp := *tx
	return &cp, nil
}

func (m *mockStore) UpdateTransaction(_ context.Context, tx *models.Transaction) error {
	if _, ok := m.txs[key(tx.UserID, tx.ID)]; !ok {
		return fmt.Errorf("transaction '%s' not found", tx.ID)
	}
	cp := *tx
	m.txs[key(tx.UserID, tx.ID)] = &cp
	return nil
}

func (m *mockStore) DeleteTransaction(_ context.Context, userID, txID string) error {
	delete(m.txs, key(userID, txID))
	return nil
}

func (m *mockStore) QueryTransactions(_ context.Context, userID string, filter interfaces.TransactionFilter) ([]*models.Transaction, error) {
	var result []*models.Transaction
	for _, tx := range m.txs {
		if tx.UserID != userID {
			continue
		}
		if filter.AccountID != "" && tx.AccountID != filter.AccountID {
			continue
		}
		if filter.CardID != "" && tx.CardID != filter.CardID {
			continue
		}
		if filter.GroupID != "" && tx.GroupID != filter.GroupID {
			continue
		}
		if !filter.From.IsZero() && tx.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && !tx.Date.Before(filter.To) {
			continue
		}
		if filter.Settled != nil && tx.Settled != *filter.Settled {
			continue
		}
		cp := *tx
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *mockStore) DeleteGroup(ctx context.Context, userID, groupID string) (int, error) {
	txs, _ := m.QueryTransactions(ctx, userID, interfaces.TransactionFilter{GroupID: groupID})
	for _, tx := range txs {
		delete(m.txs, key(userID, tx.ID))
	}
	return len(txs), nil
}

func (m *mockStore) CountByAccount(ctx context.Context, userID, accountID string) (int, error) {
	txs, _ := m.QueryTransactions(ctx, userID, interfaces.TransactionFilter{AccountID: accountID})
	return len(txs), nil
}

func (m *mockStore) CountByCard(ctx context.Context, userID, cardID string) (int, error) {
	txs, _ := m.QueryTransactions(ctx, userID, interfaces.TransactionFilter{CardID: cardID})
	return len(txs), nil
}

func (m *mockStore) Close() error { return nil }

// balance is a test helper reading an account's stored balance directly.
func (m *mockStore) balance(userID, accountID string) int64 {
	if acct, ok := m.accounts[key(userID, accountID)]; ok {
		return acct.BalanceCents
	}
	return 0
}
