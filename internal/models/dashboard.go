package models

import "time"

// DashboardSummary aggregates a month of ledger activity for display.
type DashboardSummary struct {
	Month             string           `json:"month"` // YYYY-MM
	TotalBalanceCents int64            `json:"total_balance_cents"`
	IncomeCents       int64            `json:"income_cents"`
	ExpenseCents      int64            `json:"expense_cents"`
	PlannedCents      int64            `json:"planned_cents"` // unsettled entries, net signed
	Accounts          []AccountBalance `json:"accounts"`
	Cards             []CardUsage      `json:"cards"`
}

// AccountBalance is one account's contribution to the dashboard.
type AccountBalance struct {
	AccountID    string `json:"account_id"`
	Name         string `json:"name"`
	BalanceCents int64  `json:"balance_cents"`
}

// CardUsage reports a card's statement consumption for the dashboard month.
type CardUsage struct {
	CardID              string     `json:"card_id"`
	Name                string     `json:"name"`
	StatementDueDate    *time.Time `json:"statement_due_date,omitempty"`
	StatementTotalCents int64      `json:"statement_total_cents"`
	CreditLimitCents    int64      `json:"credit_limit_cents"`
	AvailableCents      int64      `json:"available_cents"`
}
