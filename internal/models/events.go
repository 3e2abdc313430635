package models

import "time"

// LedgerEvent is the payload published after a ledger operation persists.
// Severity distinguishes ordinary completions from degraded outcomes that
// may need manual reconciliation.
type LedgerEvent struct {
	Type       string    `json:"type"` // transfer.completed, transactions.created, transfer.inconsistent
	UserID     string    `json:"user_id"`
	GroupID    string    `json:"group_id,omitempty"`
	Severity   string    `json:"severity"` // info, warning, error
	Detail     string    `json:"detail,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
