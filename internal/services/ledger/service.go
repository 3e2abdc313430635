package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bobmcallan/centavo/internal/common"
	"github.com/bobmcallan/centavo/internal/interfaces"
	"github.com/bobmcallan/centavo/internal/models"
)

// Compile-time interface check
var _ interfaces.LedgerService = (*Service)(nil)

// Service is the composition root for the ledger engine. It owns the
// group-id invariant (one uuid per logical intent, stamped on every member
// row), translates component failures into the error taxonomy, and emits
// events after successful persistence.
type Service struct {
	store     interfaces.LedgerStore
	events    interfaces.EventPublisher
	transfers *TransferExecutor
	balances  *BalanceLedger
	cfg       common.LedgerConfig
	logger    *common.Logger
}

// NewService creates a new ledger service. events may be nil.
func NewService(store interfaces.LedgerStore, events interfaces.EventPublisher, cfg common.LedgerConfig, logger *common.Logger) *Service {
	return &Service{
		store:     store,
		events:    events,
		transfers: NewTransferExecutor(store, logger),
		balances:  NewBalanceLedger(store),
		cfg:       cfg,
		logger:    logger,
	}
}

// publish emits a ledger event. Publish failures are logged, never surfaced:
// the ledger operation has already committed.
func (s *Service) publish(ctx context.Context, event *models.LedgerEvent) {
	if s.events == nil {
		return
	}
	event.OccurredAt = time.Now()
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn().Err(err).Str("type", event.Type).Msg("Failed to publish ledger event")
	}
}

// Transfer moves an amount between two accounts. CompensationError results
// are published at error severity so reconciliation tooling sees them; they
// are never collapsed into a generic failure.
func (s *Service) Transfer(ctx context.Context, req interfaces.TransferRequest) (*models.TransferResult, error) {
	userID := common.ResolveUserID(ctx)
	groupID := uuid.New().String()

	result, err := s.transfers.Execute(ctx, userID, req, groupID)
	if err != nil {
		var cerr *CompensationError
		if errors.As(err, &cerr) {
			s.publish(ctx, &models.LedgerEvent{
				Type:     "transfer.inconsistent",
				UserID:   userID,
				GroupID:  groupID,
				Severity: "error",
				Detail:   cerr.Error(),
			})
		}
		return result, err
	}

	severity := "info"
	detail := ""
	if !result.HistoryWritten {
		severity = "warning"
		detail = "history records not written"
	}
	s.publish(ctx, &models.LedgerEvent{
		Type:     "transfer.completed",
		UserID:   userID,
		GroupID:  groupID,
		Severity: severity,
		Detail:   detail,
	})
	return result, nil
}

// validateRequest checks the common fields of a transaction request and
// verifies its account/card references resolve for the user.
func (s *Service) validateRequest(ctx context.Context, userID string, req interfaces.TransactionRequest) error {
	if req.AmountCents <= 0 {
		return fmt.Errorf("%w: amount must be positive, got %d", ErrInvalidTransaction, req.AmountCents)
	}
	if !models.ValidTransactionKind(req.Kind) {
		return fmt.Errorf("%w: kind must be income or expense, got %q", ErrInvalidTransaction, req.Kind)
	}
	if strings.TrimSpace(req.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidTransaction)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidTransaction)
	}
	if req.AccountID == "" && req.CardID == "" {
		return fmt.Errorf("%w: an account or card is required", ErrInvalidTransaction)
	}
	if req.AccountID != "" {
		if _, err := s.store.GetAccount(ctx, userID, req.AccountID); err != nil {
			return fmt.Errorf("%w: '%s'", ErrAccountNotFound, req.AccountID)
		}
	}
	if req.CardID != "" {
		card, err := s.store.GetCard(ctx, userID, req.CardID)
		if err != nil {
			return fmt.Errorf("%w: '%s'", ErrCardNotFound, req.CardID)
		}
		if !card.Active {
			return fmt.Errorf("%w: '%s'", ErrCardInactive, req.CardID)
		}
	}
	return nil
}

// CreateSimpleTransaction persists a single entry with no expansion.
func (s *Service) CreateSimpleTransaction(ctx context.Context, req interfaces.TransactionRequest) (*models.Transaction, error) {
	userID := common.ResolveUserID(ctx)
	if err := s.validateRequest(ctx, userID, req); err != nil {
		return nil, err
	}

	tx := &models.Transaction{
		ID:          newTransactionID(),
		UserID:      userID,
		AccountID:   req.AccountID,
		CardID:      req.CardID,
		AmountCents: req.AmountCents,
		Kind:        req.Kind,
		Date:        req.Date,
		Settled:     req.Settled,
		GroupID:     uuid.New().String(),
		Description: strings.TrimSpace(req.Description),
		CategoryID:  req.CategoryID,
	}
	if err := s.store.InsertTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to persist transaction: %w", err)
	}
	if tx.Settled {
		s.applySettlementDelta(ctx, userID, tx, true)
	}

	s.logger.Info().Str("user_id", userID).Str("id", tx.ID).
		Int64("amount_cents", tx.AmountCents).Str("kind", string(tx.Kind)).
		Msg("Transaction created")
	s.publish(ctx, &models.LedgerEvent{
		Type: "transactions.created", UserID: userID, GroupID: tx.GroupID, Severity: "info",
	})
	return tx, nil
}

// CreateRecurringTransaction expands the template and persists the series in
// one atomic batch.
func (s *Service) CreateRecurringTransaction(ctx context.Context, req interfaces.RecurringRequest) ([]*models.Transaction, error) {
	userID := common.ResolveUserID(ctx)
	if err := s.validateRequest(ctx, userID, req.Template); err != nil {
		return nil, err
	}
	if s.cfg.MaxRecurrences > 0 && req.Occurrences > s.cfg.MaxRecurrences {
		return nil, fmt.Errorf("%w: occurrences exceeds configured maximum %d", ErrInvalidRecurrence, s.cfg.MaxRecurrences)
	}

	groupID := uuid.New().String()
	instances, err := ExpandRecurrence(userID, req.Template, req.Interval, req.Occurrences, groupID)
	if err != nil {
		return nil, err
	}
	for _, tx := range instances {
		tx.ID = newTransactionID()
	}
	if err := s.store.InsertTransactions(ctx, instances); err != nil {
		return nil, fmt.Errorf("failed to persist recurrence series: %w", err)
	}
	if instances[0].Settled {
		s.applySettlementDelta(ctx, userID, instances[0], true)
	}

	s.logger.Info().Str("user_id", userID).Str("group_id", groupID).
		Int("instances", len(instances)).Str("interval", string(req.Interval)).
		Msg("Recurring series created")
	s.publish(ctx, &models.LedgerEvent{
		Type: "transactions.created", UserID: userID, GroupID: groupID, Severity: "info",
	})
	return instances, nil
}

// CreateInstallmentPurchase splits a card purchase across consecutive
// statements and persists the rows in one atomic batch. Card entries never
// touch account balances; card usage is derived from its transactions.
func (s *Service) CreateInstallmentPurchase(ctx context.Context, req interfaces.InstallmentRequest) ([]*models.Transaction, error) {
	userID := common.ResolveUserID(ctx)
	if strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidTransaction)
	}
	if req.PurchaseDate.IsZero() {
		return nil, fmt.Errorf("%w: purchase date is required", ErrInvalidTransaction)
	}

	card, err := s.store.GetCard(ctx, userID, req.CardID)
	if err != nil {
		return nil, fmt.Errorf("%w: '%s'", ErrCardNotFound, req.CardID)
	}
	if !card.Active {
		return nil, fmt.Errorf("%w: '%s'", ErrCardInactive, req.CardID)
	}
	if s.cfg.MaxInstallments > 0 && req.Installments > s.cfg.MaxInstallments {
		return nil, fmt.Errorf("%w: installments exceeds configured maximum %d", ErrInvalidTransaction, s.cfg.MaxInstallments)
	}

	groupID := uuid.New().String()
	instances, err := SplitInstallments(userID, card, req.TotalCents, req.Installments,
		req.PurchaseDate, strings.TrimSpace(req.Description), req.CategoryID, groupID, s.cfg.MinInstallmentCents)
	if err != nil {
		return nil, err
	}
	for _, tx := range instances {
		tx.ID = newTransactionID()
	}
	if err := s.store.InsertTransactions(ctx, instances); err != nil {
		return nil, fmt.Errorf("failed to persist installment series: %w", err)
	}

	s.logger.Info().Str("user_id", userID).Str("group_id", groupID).
		Str("card_id", card.ID).Int("installments", len(instances)).
		Int64("total_cents", req.TotalCents).
		Msg("Installment purchase created")
	s.publish(ctx, &models.LedgerEvent{
		Type: "transactions.created", UserID: userID, GroupID: groupID, Severity: "info",
	})
	return instances, nil
}

// SettleTransaction flips the settlement flag, the only in-place mutation a
// transaction ever receives. Settling an account entry applies its signed
// amount to the account balance; unsettling reverses it.
func (s *Service) SettleTransaction(ctx context.Context, txID string, settled bool) (*models.Transaction, error) {
	userID := common.ResolveUserID(ctx)
	tx, err := s.store.GetTransaction(ctx, userID, txID)
	if err != nil {
		return nil, fmt.Errorf("%w: transaction '%s'", ErrInvalidTransaction, txID)
	}
	if tx.Settled == settled {
		return tx, nil
	}
	tx.Settled = settled
	if err := s.store.UpdateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to update transaction '%s': %w", txID, err)
	}
	s.applySettlementDelta(ctx, userID, tx, settled)
	return tx, nil
}

// ListTransactions returns the caller's transactions matching the filter.
func (s *Service) ListTransactions(ctx context.Context, filter interfaces.TransactionFilter) ([]*models.Transaction, error) {
	userID := common.ResolveUserID(ctx)
	return s.store.QueryTransactions(ctx, userID, filter)
}

// DeleteTransactionGroup removes every row of a logical intent. Settled
// account entries have their balance contribution reversed first.
func (s *Service) DeleteTransactionGroup(ctx context.Context, groupID string) (int, error) {
	userID := common.ResolveUserID(ctx)
	txs, err := s.store.QueryTransactions(ctx, userID, interfaces.TransactionFilter{GroupID: groupID})
	if err != nil {
		return 0, err
	}
	for _, tx := range txs {
		if tx.Settled && tx.AccountID != "" {
			if _, err := s.balances.ApplyDelta(ctx, userID, tx.AccountID, -tx.SignedAmount()); err != nil {
				s.logger.Error().Err(err).Str("account_id", tx.AccountID).
					Msg("Failed to reverse balance while deleting group")
			}
		}
	}
	return s.store.DeleteGroup(ctx, userID, groupID)
}

// applySettlementDelta keeps the denormalized account balance consistent
// with the entry log when an account entry transitions into (settling=true)
// or out of (settling=false) the settled state. Callers invoke it only when
// a transition actually happens. Failures are logged, not returned: the row
// is already committed.
func (s *Service) applySettlementDelta(ctx context.Context, userID string, tx *models.Transaction, settling bool) {
	if tx.AccountID == "" {
		return
	}
	delta := tx.SignedAmount()
	if !settling {
		delta = -delta
	}
	if _, err := s.balances.ApplyDelta(ctx, userID, tx.AccountID, delta); err != nil {
		s.logger.Error().Err(err).Str("account_id", tx.AccountID).Str("tx_id", tx.ID).
			Msg("Failed to apply balance delta")
	}
}
