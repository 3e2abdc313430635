package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bobmcallan/centavo/internal/models"
)

func (s *Store) SaveAccount(_ context.Context, account *models.Account) error {
	now := time.Now()
	var existing models.Account
	if err := s.db.Get(compositeKey(account.UserID, account.ID), &existing); err == nil {
		account.CreatedAt = existing.CreatedAt
	} else if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now

	if err := s.db.Upsert(compositeKey(account.UserID, account.ID), account); err != nil {
		return fmt.Errorf("failed to save account '%s': %w", account.ID, err)
	}
	s.logger.Debug().Str("account_id", account.ID).Str("user_id", account.UserID).Msg("Account saved")
	return nil
}

func (s *Store) GetAccount(_ context.Context, userID, accountID string) (*models.Account, error) {
	var account models.Account
	if err := s.db.Get(compositeKey(userID, accountID), &account); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("account '%s' not found for user '%s'", accountID, userID)
		}
		return nil, fmt.Errorf("failed to get account '%s': %w", accountID, err)
	}
	return &account, nil
}

func (s *Store) ListAccounts(_ context.Context, userID string) ([]*models.Account, error) {
	var all []models.Account
	if err := s.db.Find(&all, badgerhold.Where("UserID").Eq(userID)); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	result := make([]*models.Account, 0, len(all))
	for i := range all {
		result = append(result, &all[i])
	}
	return result, nil
}

func (s *Store) DeleteAccount(_ context.Context, userID, accountID string) error {
	if err := s.db.Delete(compositeKey(userID, accountID), models.Account{}); err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete account '%s': %w", accountID, err)
	}
	return nil
}
