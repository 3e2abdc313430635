package models

import "time"

// Card represents a credit card's billing-cycle configuration. A card holds
// no balance of its own; usage is derived by summing its transactions.
type Card struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	Name              string    `json:"name"`
	StatementCloseDay int       `json:"statement_close_day"` // 1-31, clamped to month length
	StatementDueDay   int       `json:"statement_due_day"`   // 1-31, clamped to month length
	CreditLimitCents  int64     `json:"credit_limit_cents"`
	Active            bool      `json:"active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
