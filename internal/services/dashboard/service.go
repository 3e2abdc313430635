// Package dashboard aggregates ledger data into display-ready summaries.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/bobmcallan/centavo/internal/common"
	"github.com/bobmcallan/centavo/internal/interfaces"
	"github.com/bobmcallan/centavo/internal/models"
)

// Compile-time interface check
var _ interfaces.DashboardService = (*Service)(nil)

// Service computes the monthly dashboard summary. All figures are derived
// from stored rows at read time; nothing is cached.
type Service struct {
	store  interfaces.LedgerStore
	logger *common.Logger
}

// NewService creates a new dashboard service.
func NewService(store interfaces.LedgerStore, logger *common.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Summary aggregates one month of activity: per-account balances, settled
// income and expense totals, the net of planned entries, and per-card
// statement usage. A zero month defaults to the current month.
func (s *Service) Summary(ctx context.Context, month time.Time) (*models.DashboardSummary, error) {
	userID := common.ResolveUserID(ctx)
	if month.IsZero() {
		month = time.Now()
	}
	monthStart := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	summary := &models.DashboardSummary{
		Month: monthStart.Format("2006-01"),
	}

	accounts, err := s.store.ListAccounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	for _, account := range accounts {
		summary.TotalBalanceCents += account.BalanceCents
		summary.Accounts = append(summary.Accounts, models.AccountBalance{
			AccountID:    account.ID,
			Name:         account.Name,
			BalanceCents: account.BalanceCents,
		})
	}

	txs, err := s.store.QueryTransactions(ctx, userID, interfaces.TransactionFilter{
		From: monthStart,
		To:   monthEnd,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	for _, tx := range txs {
		if !tx.Settled {
			summary.PlannedCents += tx.SignedAmount()
			continue
		}
		switch tx.Kind {
		case models.TxIncome:
			summary.IncomeCents += tx.AmountCents
		case models.TxExpense:
			summary.ExpenseCents += tx.AmountCents
		}
	}

	cards, err := s.store.ListCards(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	for _, card := range cards {
		usage, err := s.cardUsage(ctx, userID, card, monthStart, monthEnd)
		if err != nil {
			return nil, err
		}
		summary.Cards = append(summary.Cards, usage)
	}

	s.logger.Debug().Str("user_id", userID).Str("month", summary.Month).
		Int("accounts", len(summary.Accounts)).Int("cards", len(summary.Cards)).
		Msg("Dashboard summary computed")
	return summary, nil
}

// cardUsage reports one card's consumption. The statement total covers
// unsettled entries falling due inside the month (entries without a due date
// count by their transaction date); available credit is the limit minus all
// outstanding unsettled entries regardless of month.
func (s *Service) cardUsage(ctx context.Context, userID string, card *models.Card, monthStart, monthEnd time.Time) (models.CardUsage, error) {
	usage := models.CardUsage{
		CardID:           card.ID,
		Name:             card.Name,
		CreditLimitCents: card.CreditLimitCents,
	}

	txs, err := s.store.QueryTransactions(ctx, userID, interfaces.TransactionFilter{CardID: card.ID})
	if err != nil {
		return usage, fmt.Errorf("failed to query card '%s' transactions: %w", card.ID, err)
	}

	var outstanding int64
	for _, tx := range txs {
		if tx.Settled {
			continue
		}
		outstanding += tx.AmountCents

		due := tx.Date
		if tx.StatementDueDate != nil {
			due = *tx.StatementDueDate
		}
		if due.Before(monthStart) || !due.Before(monthEnd) {
			continue
		}
		usage.StatementTotalCents += tx.AmountCents
		if tx.StatementDueDate != nil && (usage.StatementDueDate == nil || due.Before(*usage.StatementDueDate)) {
			d := due
			usage.StatementDueDate = &d
		}
	}
	usage.AvailableCents = card.CreditLimitCents - outstanding
	return usage, nil
}
