package storage

import (
	"context"
	"fmt"
	"sort"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/timshannon/badgerhold/v4"

	"github.com/bobmcallan/centavo/internal/interfaces"
	"github.com/bobmcallan/centavo/internal/models"
)

func (s *Store) InsertTransaction(_ context.Context, tx *models.Transaction) error {
	now := time.Now()
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = now
	}
	tx.UpdatedAt = now
	if err := s.db.Insert(compositeKey(tx.UserID, tx.ID), tx); err != nil {
		return fmt.Errorf("failed to insert transaction '%s': %w", tx.ID, err)
	}
	return nil
}

// InsertTransactions writes the batch inside one Badger write transaction.
// Either every row is persisted or none are.
func (s *Store) InsertTransactions(_ context.Context, txs []*models.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	now := time.Now()
	err := s.db.Badger().Update(func(btx *badger.Txn) error {
		for _, tx := range txs {
			if tx.CreatedAt.IsZero() {
				tx.CreatedAt = now
			}
			tx.UpdatedAt = now
			if err := s.db.TxInsert(btx, compositeKey(tx.UserID, tx.ID), tx); err != nil {
				return fmt.Errorf("row '%s': %w", tx.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to insert batch of %d transactions: %w", len(txs), err)
	}
	s.logger.Debug().Int("count", len(txs)).Str("group_id", txs[0].GroupID).Msg("Transaction batch inserted")
	return nil
}

func (s *Store) GetTransaction(_ context.Context, userID, txID string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := s.db.Get(compositeKey(userID, txID), &tx); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("transaction '%s' not found for user '%s'", txID, userID)
		}
		return nil, fmt.Errorf("failed to get transaction '%s': %w", txID, err)
	}
	return &tx, nil
}

func (s *Store) UpdateTransaction(_ context.Context, tx *models.Transaction) error {
	tx.UpdatedAt = time.Now()
	if err := s.db.Update(compositeKey(tx.UserID, tx.ID), tx); err != nil {
		if err == badgerhold.ErrNotFound {
			return fmt.Errorf("transaction '%s' not found for user '%s'", tx.ID, tx.UserID)
		}
		return fmt.Errorf("failed to update transaction '%s': %w", tx.ID, err)
	}
	return nil
}

func (s *Store) DeleteTransaction(_ context.Context, userID, txID string) error {
	if err := s.db.Delete(compositeKey(userID, txID), models.Transaction{}); err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete transaction '%s': %w", txID, err)
	}
	return nil
}

func (s *Store) QueryTransactions(_ context.Context, userID string, filter interfaces.TransactionFilter) ([]*models.Transaction, error) {
	var all []models.Transaction
	if err := s.db.Find(&all, badgerhold.Where("UserID").Eq(userID)); err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}

	var result []*models.Transaction
	for i := range all {
		tx := &all[i]
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
		result = append(result, tx)
	}

	if filter.OrderBy == "date_desc" {
		sort.Slice(result, func(i, j int) bool {
			return result[i].Date.After(result[j].Date)
		})
	} else {
		// Default: date_asc
		sort.Slice(result, func(i, j int) bool {
			return result[i].Date.Before(result[j].Date)
		})
	}

	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}

	return result, nil
}

func (s *Store) DeleteGroup(ctx context.Context, userID, groupID string) (int, error) {
	txs, err := s.QueryTransactions(ctx, userID, interfaces.TransactionFilter{GroupID: groupID})
	if err != nil {
		return 0, err
	}
	count := 0
	for _, tx := range txs {
		if err := s.db.Delete(compositeKey(userID, tx.ID), models.Transaction{}); err == nil {
			count++
		}
	}
	if count > 0 {
		s.logger.Debug().Str("group_id", groupID).Int("deleted", count).Msg("Transaction group deleted")
	}
	return count, nil
}

func (s *Store) CountByAccount(ctx context.Context, userID, accountID string) (int, error) {
	txs, err := s.QueryTransactions(ctx, userID, interfaces.TransactionFilter{AccountID: accountID})
	if err != nil {
		return 0, err
	}
	return len(txs), nil
}

func (s *Store) CountByCard(ctx context.Context, userID, cardID string) (int, error) {
	txs, err := s.QueryTransactions(ctx, userID, interfaces.TransactionFilter{CardID: cardID})
	if err != nil {
		return 0, err
	}
	return len(txs), nil
}
