// Package interfaces defines service contracts for Centavo
package interfaces

import (
	"context"
	"time"

	"github.com/bobmcallan/centavo/internal/models"
)

// LedgerStore is the persistence collaborator for all ledger entities.
// All reads and writes are scoped to an owning user. InsertTransactions is
// atomic: either every row in the batch is written or none are.
type LedgerStore interface {
	// Accounts
	SaveAccount(ctx context.Context, account *models.Account) error
	GetAccount(ctx context.Context, userID, accountID string) (*models.Account, error)
	ListAccounts(ctx context.Context, userID string) ([]*models.Account, error)
	DeleteAccount(ctx context.Context, userID, accountID string) error

	// Cards
	SaveCard(ctx context.Context, card *models.Card) error
	GetCard(ctx context.Context, userID, cardID string) (*models.Card, error)
	ListCards(ctx context.Context, userID string) ([]*models.Card, error)
	DeleteCard(ctx context.Context, userID, cardID string) error

	// Categories
	SaveCategory(ctx context.Context, category *models.Category) error
	GetCategory(ctx context.Context, userID, categoryID string) (*models.Category, error)
	ListCategories(ctx context.Context, userID string) ([]*models.Category, error)
	DeleteCategory(ctx context.Context, userID, categoryID string) error

	// Transactions
	InsertTransaction(ctx context.Context, tx *models.Transaction) error
	InsertTransactions(ctx context.Context, txs []*models.Transaction) error
	GetTransaction(ctx context.Context, userID, txID string) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, tx *models.Transaction) error
	DeleteTransaction(ctx context.Context, userID, txID string) error
	QueryTransactions(ctx context.Context, userID string, filter TransactionFilter) ([]*models.Transaction, error)
	DeleteGroup(ctx context.Context, userID, groupID string) (int, error)

	// CountByAccount and CountByCard report dependent transaction rows,
	// used to choose between hard delete and soft deactivation.
	CountByAccount(ctx context.Context, userID, accountID string) (int, error)
	CountByCard(ctx context.Context, userID, cardID string) (int, error)

	Close() error
}

// TransactionFilter narrows QueryTransactions results. Zero values mean
// "no constraint". From/To bound the occurrence date (inclusive/exclusive).
type TransactionFilter struct {
	AccountID string
	CardID    string
	GroupID   string
	From      time.Time
	To        time.Time
	Settled   *bool
	OrderBy   string // "date_asc" (default), "date_desc"
	Limit     int
}
