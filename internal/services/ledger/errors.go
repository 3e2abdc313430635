package ledger

import (
	"errors"
	"fmt"
)

// Expected failure conditions. Callers match with errors.Is; the HTTP layer
// translates them into status codes. None of these imply partial state:
// every one is raised either before any write or after a clean rollback.
var (
	ErrInvalidTransfer          = errors.New("invalid transfer")
	ErrInvalidTransaction       = errors.New("invalid transaction")
	ErrInvalidRecurrence        = errors.New("invalid recurrence")
	ErrAccountNotFound          = errors.New("account not found")
	ErrCardNotFound             = errors.New("card not found")
	ErrCardInactive             = errors.New("card inactive")
	ErrTransferFailed           = errors.New("transfer failed")
	ErrInstallmentMinimumNotMet = errors.New("installment minimum not met")
)

// CompensationError reports the one outcome that does leave partial state:
// the destination credit failed and the write restoring the source balance
// failed as well. The source account's stored balance no longer matches its
// entry log and manual reconciliation may be needed. It must never be
// collapsed into a generic failure.
type CompensationError struct {
	AccountID        string
	WantBalanceCents int64
	CreditErr        error
	CompensationErr  error
}

func (e *CompensationError) Error() string {
	return fmt.Sprintf("compensation failed: account '%s' balance could not be restored to %d cents (credit: %v, compensation: %v)",
		e.AccountID, e.WantBalanceCents, e.CreditErr, e.CompensationErr)
}

func (e *CompensationError) Unwrap() error {
	return e.CompensationErr
}
