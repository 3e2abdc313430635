package interfaces

import (
	"context"
	"time"

	"github.com/bobmcallan/centavo/internal/models"
)

// LedgerService exposes the consumer-facing ledger operations. It owns the
// group-id invariant: every operation persists rows under exactly one group
// identifier per logical intent.
type LedgerService interface {
	Transfer(ctx context.Context, req TransferRequest) (*models.TransferResult, error)
	CreateSimpleTransaction(ctx context.Context, req TransactionRequest) (*models.Transaction, error)
	CreateRecurringTransaction(ctx context.Context, req RecurringRequest) ([]*models.Transaction, error)
	CreateInstallmentPurchase(ctx context.Context, req InstallmentRequest) ([]*models.Transaction, error)
	SettleTransaction(ctx context.Context, txID string, settled bool) (*models.Transaction, error)
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]*models.Transaction, error)
	DeleteTransactionGroup(ctx context.Context, groupID string) (int, error)
}

// TransferRequest moves an amount between two accounts owned by the caller.
type TransferRequest struct {
	SourceAccountID      string    `json:"source_account_id"`
	DestinationAccountID string    `json:"destination_account_id"`
	AmountCents          int64     `json:"amount_cents"`
	Date                 time.Time `json:"date"`
	Description          string    `json:"description"`
}

// TransactionRequest creates a single ledger entry, or serves as the
// template for a recurrence expansion.
type TransactionRequest struct {
	AccountID   string                 `json:"account_id,omitempty"`
	CardID      string                 `json:"card_id,omitempty"`
	AmountCents int64                  `json:"amount_cents"`
	Kind        models.TransactionKind `json:"kind"`
	Date        time.Time              `json:"date"`
	Settled     bool                   `json:"settled"`
	Description string                 `json:"description"`
	CategoryID  string                 `json:"category_id,omitempty"`
}

// RecurringRequest expands a template into a bounded series of instances.
// Template.Settled applies to the first instance only; all later instances
// are always planned.
type RecurringRequest struct {
	Template    TransactionRequest        `json:"template"`
	Interval    models.RecurrenceInterval `json:"interval"`
	Occurrences int                       `json:"occurrences"`
}

// InstallmentRequest splits a card purchase across consecutive statements.
type InstallmentRequest struct {
	CardID       string    `json:"card_id"`
	TotalCents   int64     `json:"total_cents"`
	Installments int       `json:"installments"`
	PurchaseDate time.Time `json:"purchase_date"`
	Description  string    `json:"description"`
	CategoryID   string    `json:"category_id,omitempty"`
}

// AccountService manages account, card, and category lifecycle.
// Deleting an entity with dependent transactions deactivates it instead of
// removing the row.
type AccountService interface {
	CreateAccount(ctx context.Context, name string, openingBalanceCents int64) (*models.Account, error)
	GetAccount(ctx context.Context, accountID string) (*models.Account, error)
	ListAccounts(ctx context.Context) ([]*models.Account, error)
	UpdateAccount(ctx context.Context, accountID, name string) (*models.Account, error)
	DeleteAccount(ctx context.Context, accountID string) (deactivated bool, err error)

	CreateCard(ctx context.Context, card *models.Card) (*models.Card, error)
	GetCard(ctx context.Context, cardID string) (*models.Card, error)
	ListCards(ctx context.Context) ([]*models.Card, error)
	UpdateCard(ctx context.Context, card *models.Card) (*models.Card, error)
	DeleteCard(ctx context.Context, cardID string) (deactivated bool, err error)

	CreateCategory(ctx context.Context, name string, kind models.TransactionKind) (*models.Category, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
	DeleteCategory(ctx context.Context, categoryID string) error
}

// DashboardService aggregates ledger data for display.
type DashboardService interface {
	Summary(ctx context.Context, month time.Time) (*models.DashboardSummary, error)
}
