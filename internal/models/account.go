package models

import "time"

// Account represents a money account holding a denormalized running balance.
// BalanceCents is signed integer cents and is the sum of all settled entries;
// it may go negative. Every balance mutation must keep it consistent with the
// transaction log.
type Account struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Name         string    `json:"name"`
	BalanceCents int64     `json:"balance_cents"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
