// Package ledger implements the ledger consistency engine: balance
// mutation, transfers with compensating rollback, recurrence expansion,
// and installment billing arithmetic.
package ledger

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/bobmcallan/centavo/internal/interfaces"
)

// BalanceLedger applies signed deltas to an account's denormalized balance.
// Negative resulting balances are allowed; they are an advisory condition,
// not an error. Concurrent callers racing on the same account are
// last-write-wins, matching the store's row-level guarantee.
type BalanceLedger struct {
	store interfaces.LedgerStore
}

// NewBalanceLedger creates a BalanceLedger over the given store.
func NewBalanceLedger(store interfaces.LedgerStore) *BalanceLedger {
	return &BalanceLedger{store: store}
}

// ApplyDelta adds deltaCents (which may be negative) to the account's stored
// balance and returns the new value.
func (b *BalanceLedger) ApplyDelta(ctx context.Context, userID, accountID string, deltaCents int64) (int64, error) {
	account, err := b.store.GetAccount(ctx, userID, accountID)
	if err != nil {
		return 0, fmt.Errorf("%w: '%s'", ErrAccountNotFound, accountID)
	}
	account.BalanceCents += deltaCents
	if err := b.store.SaveAccount(ctx, account); err != nil {
		return 0, fmt.Errorf("failed to write balance for account '%s': %w", accountID, err)
	}
	return account.BalanceCents, nil
}

// SetBalance overwrites the account's stored balance. Used by the transfer
// compensation path to restore a pre-debit value.
func (b *BalanceLedger) SetBalance(ctx context.Context, userID, accountID string, balanceCents int64) error {
	account, err := b.store.GetAccount(ctx, userID, accountID)
	if err != nil {
		return fmt.Errorf("%w: '%s'", ErrAccountNotFound, accountID)
	}
	account.BalanceCents = balanceCents
	if err := b.store.SaveAccount(ctx, account); err != nil {
		return fmt.Errorf("failed to write balance for account '%s': %w", accountID, err)
	}
	return nil
}

// newTransactionID returns a unique ID with "tx_" prefix + 8 hex chars.
func newTransactionID() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "tx_00000000"
	}
	return "tx_" + hex.EncodeToString(b)
}
