package models

import "time"

// TransactionKind is the direction of a ledger entry. Amounts are stored as
// positive magnitudes; the sign is implied by the kind.
type TransactionKind string

const (
	TxIncome  TransactionKind = "income"
	TxExpense TransactionKind = "expense"
)

// ValidTransactionKind returns true if k is a valid transaction kind.
func ValidTransactionKind(k TransactionKind) bool {
	return k == TxIncome || k == TxExpense
}

// Transaction is a single ledger entry. Every persisted transaction belongs
// to exactly one logical intent (single entry, one of a recurrence series, or
// one of an installment series) identified by GroupID; entries in the same
// group share description root and category.
type Transaction struct {
	ID               string          `json:"id"`
	UserID           string          `json:"user_id"`
	AccountID        string          `json:"account_id,omitempty"` // empty for card-only entries
	CardID           string          `json:"card_id,omitempty"`
	AmountCents      int64           `json:"amount_cents"` // positive magnitude
	Kind             TransactionKind `json:"kind"`
	Date             time.Time       `json:"date"`
	Settled          bool            `json:"settled"` // realized vs planned
	GroupID          string          `json:"group_id"`
	InstallmentIndex int             `json:"installment_index,omitempty"` // 1-based
	InstallmentCount int             `json:"installment_count,omitempty"`
	StatementDueDate *time.Time      `json:"statement_due_date,omitempty"` // card entries only
	Description      string          `json:"description"`
	CategoryID       string          `json:"category_id,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// SignedAmount returns the amount with sign applied: positive for income,
// negative for expense.
func (t *Transaction) SignedAmount() int64 {
	if t.Kind == TxExpense {
		return -t.AmountCents
	}
	return t.AmountCents
}
