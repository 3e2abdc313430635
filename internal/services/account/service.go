// Package account manages account, card, and category lifecycle.
package account

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bobmcallan/centavo/internal/common"
	"github.com/bobmcallan/centavo/internal/interfaces"
	"github.com/bobmcallan/centavo/internal/models"
	"github.com/bobmcallan/centavo/internal/services/ledger"
)

// Compile-time interface check
var _ interfaces.AccountService = (*Service)(nil)

// ErrInvalidInput marks lifecycle requests rejected before any write.
var ErrInvalidInput = errors.New("invalid input")

// Service implements account, card, and category lifecycle. Entities with
// dependent transactions are deactivated instead of deleted so history rows
// never dangle.
type Service struct {
	store  interfaces.LedgerStore
	logger *common.Logger
}

// NewService creates a new account service.
func NewService(store interfaces.LedgerStore, logger *common.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// CreateAccount creates an account with an opening balance. The opening
// balance may be negative.
func (s *Service) CreateAccount(ctx context.Context, name string, openingBalanceCents int64) (*models.Account, error) {
	userID := common.ResolveUserID(ctx)
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: account name is required", ErrInvalidInput)
	}

	account := &models.Account{
		ID:           newID("ac"),
		UserID:       userID,
		Name:         name,
		BalanceCents: openingBalanceCents,
		Active:       true,
	}
	if err := s.store.SaveAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.logger.Info().Str("user_id", userID).Str("id", account.ID).
		Int64("opening_balance_cents", openingBalanceCents).Msg("Account created")
	return account, nil
}

// GetAccount returns one account by ID.
func (s *Service) GetAccount(ctx context.Context, accountID string) (*models.Account, error) {
	userID := common.ResolveUserID(ctx)
	account, err := s.store.GetAccount(ctx, userID, accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: '%s'", ledger.ErrAccountNotFound, accountID)
	}
	return account, nil
}

// ListAccounts returns all of the caller's accounts.
func (s *Service) ListAccounts(ctx context.Context) ([]*models.Account, error) {
	return s.store.ListAccounts(ctx, common.ResolveUserID(ctx))
}

// UpdateAccount renames an account. Balances are never set directly; they
// change only through ledger operations.
func (s *Service) UpdateAccount(ctx context.Context, accountID, name string) (*models.Account, error) {
	userID := common.ResolveUserID(ctx)
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: account name is required", ErrInvalidInput)
	}

	account, err := s.store.GetAccount(ctx, userID, accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: '%s'", ledger.ErrAccountNotFound, accountID)
	}
	account.Name = name
	if err := s.store.SaveAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to save account: %w", err)
	}
	return account, nil
}

// DeleteAccount removes an account, or deactivates it when transactions
// reference it. Returns true when the account was deactivated rather than
// removed.
func (s *Service) DeleteAccount(ctx context.Context, accountID string) (bool, error) {
	userID := common.ResolveUserID(ctx)
	account, err := s.store.GetAccount(ctx, userID, accountID)
	if err != nil {
		return false, fmt.Errorf("%w: '%s'", ledger.ErrAccountNotFound, accountID)
	}

	count, err := s.store.CountByAccount(ctx, userID, accountID)
	if err != nil {
		return false, fmt.Errorf("failed to count account transactions: %w", err)
	}
	if count > 0 {
		account.Active = false
		if err := s.store.SaveAccount(ctx, account); err != nil {
			return false, fmt.Errorf("failed to deactivate account: %w", err)
		}
		s.logger.Info().Str("user_id", userID).Str("id", accountID).
			Int("transactions", count).Msg("Account deactivated instead of deleted")
		return true, nil
	}

	if err := s.store.DeleteAccount(ctx, userID, accountID); err != nil {
		return false, fmt.Errorf("failed to delete account: %w", err)
	}
	s.logger.Info().Str("user_id", userID).Str("id", accountID).Msg("Account deleted")
	return false, nil
}

// CreateCard creates a card after validating its billing-cycle days.
func (s *Service) CreateCard(ctx context.Context, card *models.Card) (*models.Card, error) {
	userID := common.ResolveUserID(ctx)
	if err := validateCard(card); err != nil {
		return nil, err
	}

	card.ID = newID("cd")
	card.UserID = userID
	card.Active = true
	if err := s.store.SaveCard(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to save card: %w", err)
	}

	s.logger.Info().Str("user_id", userID).Str("id", card.ID).
		Int("close_day", card.StatementCloseDay).Int("due_day", card.StatementDueDay).
		Msg("Card created")
	return card, nil
}

// GetCard returns one card by ID.
func (s *Service) GetCard(ctx context.Context, cardID string) (*models.Card, error) {
	userID := common.ResolveUserID(ctx)
	card, err := s.store.GetCard(ctx, userID, cardID)
	if err != nil {
		return nil, fmt.Errorf("%w: '%s'", ledger.ErrCardNotFound, cardID)
	}
	return card, nil
}

// ListCards returns all of the caller's cards.
func (s *Service) ListCards(ctx context.Context) ([]*models.Card, error) {
	return s.store.ListCards(ctx, common.ResolveUserID(ctx))
}

// UpdateCard replaces a card's mutable fields. Billing-day changes apply to
// future installment splits only; existing rows keep their due dates.
func (s *Service) UpdateCard(ctx context.Context, card *models.Card) (*models.Card, error) {
	userID := common.ResolveUserID(ctx)
	if err := validateCard(card); err != nil {
		return nil, err
	}

	existing, err := s.store.GetCard(ctx, userID, card.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: '%s'", ledger.ErrCardNotFound, card.ID)
	}
	existing.Name = strings.TrimSpace(card.Name)
	existing.StatementCloseDay = card.StatementCloseDay
	existing.StatementDueDay = card.StatementDueDay
	existing.CreditLimitCents = card.CreditLimitCents
	existing.Active = card.Active
	if err := s.store.SaveCard(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to save card: %w", err)
	}
	return existing, nil
}

// DeleteCard removes a card, or deactivates it when transactions reference
// it. Returns true when the card was deactivated rather than removed.
func (s *Service) DeleteCard(ctx context.Context, cardID string) (bool, error) {
	userID := common.ResolveUserID(ctx)
	card, err := s.store.GetCard(ctx, userID, cardID)
	if err != nil {
		return false, fmt.Errorf("%w: '%s'", ledger.ErrCardNotFound, cardID)
	}

	count, err := s.store.CountByCard(ctx, userID, cardID)
	if err != nil {
		return false, fmt.Errorf("failed to count card transactions: %w", err)
	}
	if count > 0 {
		card.Active = false
		if err := s.store.SaveCard(ctx, card); err != nil {
			return false, fmt.Errorf("failed to deactivate card: %w", err)
		}
		s.logger.Info().Str("user_id", userID).Str("id", cardID).
			Int("transactions", count).Msg("Card deactivated instead of deleted")
		return true, nil
	}

	if err := s.store.DeleteCard(ctx, userID, cardID); err != nil {
		return false, fmt.Errorf("failed to delete card: %w", err)
	}
	return false, nil
}

// CreateCategory creates a labelled category for one transaction kind.
func (s *Service) CreateCategory(ctx context.Context, name string, kind models.TransactionKind) (*models.Category, error) {
	userID := common.ResolveUserID(ctx)
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrInvalidInput)
	}
	if !models.ValidTransactionKind(kind) {
		return nil, fmt.Errorf("%w: kind must be income or expense, got %q", ErrInvalidInput, kind)
	}

	category := &models.Category{
		ID:        newID("cg"),
		UserID:    userID,
		Name:      name,
		Kind:      kind,
		CreatedAt: time.Now(),
	}
	if err := s.store.SaveCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to save category: %w", err)
	}
	return category, nil
}

// ListCategories returns all of the caller's categories.
func (s *Service) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.store.ListCategories(ctx, common.ResolveUserID(ctx))
}

// DeleteCategory removes a category. Transactions keep their category id;
// a dangling reference renders as uncategorized.
func (s *Service) DeleteCategory(ctx context.Context, categoryID string) error {
	return s.store.DeleteCategory(ctx, common.ResolveUserID(ctx), categoryID)
}

func validateCard(card *models.Card) error {
	if strings.TrimSpace(card.Name) == "" {
		return fmt.Errorf("%w: card name is required", ErrInvalidInput)
	}
	if card.StatementCloseDay < 1 || card.StatementCloseDay > 31 {
		return fmt.Errorf("%w: statement close day must be 1-31, got %d", ErrInvalidInput, card.StatementCloseDay)
	}
	if card.StatementDueDay < 1 || card.StatementDueDay > 31 {
		return fmt.Errorf("%w: statement due day must be 1-31, got %d", ErrInvalidInput, card.StatementDueDay)
	}
	if card.CreditLimitCents < 0 {
		return fmt.Errorf("%w: credit limit cannot be negative", ErrInvalidInput)
	}
	return nil
}

// newID returns a unique ID with the given prefix + 8 hex chars.
func newID(prefix string) string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return prefix + "_00000000"
	}
	return prefix + "_" + hex.EncodeToString(b)
}
