package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/bobmcallan/centavo/internal/common"
	"github.com/bobmcallan/centavo/internal/interfaces"
	"github.com/bobmcallan/centavo/internal/models"
)

// TransferExecutor moves an amount between two accounts as a single
// user-visible operation. The store offers no multi-row transaction across
// the two balance writes, so the executor runs them as an explicit state
// machine with a compensating undo:
//
//	Pending -> Debited -> Credited -> Done
//	                   -> CompensationPending -> (restored, fails as TransferFailed)
//	                                          -> Inconsistent (CompensationError)
//
// Debit always precedes credit so that any mid-failure state is "money left
// the source but never arrived", never money created out of nothing.
type TransferExecutor struct {
	store    interfaces.LedgerStore
	balances *BalanceLedger
	logger   *common.Logger
}

// NewTransferExecutor creates a TransferExecutor.
func NewTransferExecutor(store interfaces.LedgerStore, logger *common.Logger) *TransferExecutor {
	return &TransferExecutor{
		store:    store,
		balances: NewBalanceLedger(store),
		logger:   logger,
	}
}

// Execute performs the transfer and returns the outcome. A nil error with
// HistoryWritten=false is a degraded success: both balances are correct but
// the paired history records could not be written.
func (e *TransferExecutor) Execute(ctx context.Context, userID string, req interfaces.TransferRequest, groupID string) (*models.TransferResult, error) {
	if req.SourceAccountID == req.DestinationAccountID {
		return nil, fmt.Errorf("%w: source and destination must differ", ErrInvalidTransfer)
	}
	if req.AmountCents <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive, got %d", ErrInvalidTransfer, req.AmountCents)
	}

	source, err := e.store.GetAccount(ctx, userID, req.SourceAccountID)
	if err != nil {
		return nil, fmt.Errorf("%w: source '%s'", ErrAccountNotFound, req.SourceAccountID)
	}
	dest, err := e.store.GetAccount(ctx, userID, req.DestinationAccountID)
	if err != nil {
		return nil, fmt.Errorf("%w: destination '%s'", ErrAccountNotFound, req.DestinationAccountID)
	}
	if !source.Active {
		return nil, fmt.Errorf("%w: source account '%s' is inactive", ErrInvalidTransfer, source.ID)
	}
	if !dest.Active {
		return nil, fmt.Errorf("%w: destination account '%s' is inactive", ErrInvalidTransfer, dest.ID)
	}

	// Going below zero is an advisory, not a blocker.
	sourceBefore := source.BalanceCents
	warning := sourceBefore-req.AmountCents < 0

	result := &models.TransferResult{
		State:                  models.TransferPending,
		GroupID:                groupID,
		SourceAccountID:        source.ID,
		DestinationAccountID:   dest.ID,
		NegativeBalanceWarning: warning,
	}

	// Debit first. A failure here leaves no partial state.
	sourceAfter, err := e.balances.ApplyDelta(ctx, userID, source.ID, -req.AmountCents)
	if err != nil {
		return nil, fmt.Errorf("%w: debiting source: %v", ErrTransferFailed, err)
	}
	result.State = models.TransferDebited
	result.SourceBalanceCents = sourceAfter

	destAfter, creditErr := e.balances.ApplyDelta(ctx, userID, dest.ID, req.AmountCents)
	if creditErr != nil {
		// Credit failed after the debit landed. Best-effort undo: restore
		// the source to its pre-debit balance.
		result.State = models.TransferCompensationPending
		if compErr := e.balances.SetBalance(ctx, userID, source.ID, sourceBefore); compErr != nil {
			result.State = models.TransferInconsistent
			cerr := &CompensationError{
				AccountID:        source.ID,
				WantBalanceCents: sourceBefore,
				CreditErr:        creditErr,
				CompensationErr:  compErr,
			}
			e.logger.Error().
				Str("user_id", userID).
				Str("account_id", source.ID).
				Int64("want_balance_cents", sourceBefore).
				Err(cerr).
				Msg("Transfer compensation failed - ledger inconsistent")
			return result, cerr
		}
		e.logger.Warn().
			Str("user_id", userID).
			Str("source", source.ID).
			Str("destination", dest.ID).
			Msg("Transfer credit failed - source balance restored")
		return nil, fmt.Errorf("%w: crediting destination: %v", ErrTransferFailed, creditErr)
	}
	result.State = models.TransferCredited
	result.DestinationBalanceCents = destAfter

	// Both balances are committed. The history pair is written together or
	// not at all; a failure here never rolls the balances back.
	when := req.Date
	if when.IsZero() {
		when = time.Now()
	}
	pair := []*models.Transaction{
		{
			ID:          newTransactionID(),
			UserID:      userID,
			AccountID:   source.ID,
			AmountCents: req.AmountCents,
			Kind:        models.TxExpense,
			Date:        when,
			Settled:     true,
			GroupID:     groupID,
			Description: req.Description,
		},
		{
			ID:          newTransactionID(),
			UserID:      userID,
			AccountID:   dest.ID,
			AmountCents: req.AmountCents,
			Kind:        models.TxIncome,
			Date:        when,
			Settled:     true,
			GroupID:     groupID,
			Description: req.Description,
		},
	}
	if err := e.store.InsertTransactions(ctx, pair); err != nil {
		result.State = models.TransferDone
		result.HistoryWritten = false
		e.logger.Warn().
			Str("user_id", userID).
			Str("group_id", groupID).
			Err(err).
			Msg("Transfer history write failed - balances correct, audit trail incomplete")
		return result, nil
	}

	result.State = models.TransferDone
	result.HistoryWritten = true

	e.logger.Info().
		Str("user_id", userID).
		Str("source", source.ID).
		Str("destination", dest.ID).
		Str("amount", common.FormatCents(req.AmountCents)).
		Bool("negative_balance", warning).
		Msg("Transfer completed")
	return result, nil
}
