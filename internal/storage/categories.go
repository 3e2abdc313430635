package storage

import (
	"context"
	"fmt"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bobmcallan/centavo/internal/models"
)

func (s *Store) SaveCategory(_ context.Context, category *models.Category) error {
	if err := s.db.Upsert(compositeKey(category.UserID, category.ID), category); err != nil {
		return fmt.Errorf("failed to save category '%s': %w", category.ID, err)
	}
	return nil
}

func (s *Store) GetCategory(_ context.Context, userID, categoryID string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Get(compositeKey(userID, categoryID), &category); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("category '%s' not found for user '%s'", categoryID, userID)
		}
		return nil, fmt.Errorf("failed to get category '%s': %w", categoryID, err)
	}
	return &category, nil
}

func (s *Store) ListCategories(_ context.Context, userID string) ([]*models.Category, error) {
	var all []models.Category
	if err := s.db.Find(&all, badgerhold.Where("UserID").Eq(userID)); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	result := make([]*models.Category, 0, len(all))
	for i := range all {
		result = append(result, &all[i])
	}
	return result, nil
}

func (s *Store) DeleteCategory(_ context.Context, userID, categoryID string) error {
	if err := s.db.Delete(compositeKey(userID, categoryID), models.Category{}); err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete category '%s': %w", categoryID, err)
	}
	return nil
}
