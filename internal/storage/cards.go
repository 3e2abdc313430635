package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bobmcallan/centavo/internal/models"
)

func (s *Store) SaveCard(_ context.Context, card *models.Card) error {
	now := time.Now()
	var existing models.Card
	if err := s.db.Get(compositeKey(card.UserID, card.ID), &existing); err == nil {
		card.CreatedAt = existing.CreatedAt
	} else if card.CreatedAt.IsZero() {
		card.CreatedAt = now
	}
	card.UpdatedAt = now

	if err := s.db.Upsert(compositeKey(card.UserID, card.ID), card); err != nil {
		return fmt.Errorf("failed to save card '%s': %w", card.ID, err)
	}
	s.logger.Debug().Str("card_id", card.ID).Str("user_id", card.UserID).Msg("Card saved")
	return nil
}

func (s *Store) GetCard(_ context.Context, userID, cardID string) (*models.Card, error) {
	var card models.Card
	if err := s.db.Get(compositeKey(userID, cardID), &card); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("card '%s' not found for user '%s'", cardID, userID)
		}
		return nil, fmt.Errorf("failed to get card '%s': %w", cardID, err)
	}
	return &card, nil
}

func (s *Store) ListCards(_ context.Context, userID string) ([]*models.Card, error) {
	var all []models.Card
	if err := s.db.Find(&all, badgerhold.Where("UserID").Eq(userID)); err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	result := make([]*models.Card, 0, len(all))
	for i := range all {
		result = append(result, &all[i])
	}
	return result, nil
}

func (s *Store) DeleteCard(_ context.Context, userID, cardID string) error {
	if err := s.db.Delete(compositeKey(userID, cardID), models.Card{}); err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete card '%s': %w", cardID, err)
	}
	return nil
}
