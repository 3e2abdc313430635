package models

// TransferState tracks a transfer through its two balance writes. The
// inconsistent terminal state is a first-class outcome: it means the credit
// failed and the compensating write restoring the source balance failed too.
type TransferState string

const (
	TransferPending             TransferState = "pending"
	TransferDebited             TransferState = "debited"
	TransferCredited            TransferState = "credited"
	TransferCompensationPending TransferState = "compensation_pending"
	TransferDone                TransferState = "done"
	TransferInconsistent        TransferState = "inconsistent"
)

// TransferResult is the outcome of a completed transfer. HistoryWritten is
// false when the paired history records could not be persisted after both
// balance writes succeeded (degraded success: balances correct, audit trail
// incomplete). NegativeBalanceWarning is a non-blocking advisory raised when
// the debit takes the source account below zero.
type TransferResult struct {
	State                   TransferState `json:"state"`
	GroupID                 string        `json:"group_id"`
	SourceAccountID         string        `json:"source_account_id"`
	DestinationAccountID    string        `json:"destination_account_id"`
	SourceBalanceCents      int64         `json:"source_balance_cents"`
	DestinationBalanceCents int64         `json:"destination_balance_cents"`
	NegativeBalanceWarning  bool          `json:"negative_balance_warning"`
	HistoryWritten          bool          `json:"history_written"`
}

// RecurrenceInterval is the unit between recurring transaction instances.
type RecurrenceInterval string

const (
	IntervalWeekly   RecurrenceInterval = "weekly"
	IntervalBiweekly RecurrenceInterval = "biweekly"
	IntervalMonthly  RecurrenceInterval = "monthly"
	IntervalYearly   RecurrenceInterval = "yearly"
)

// ValidRecurrenceInterval returns true if i is a supported interval unit.
func ValidRecurrenceInterval(i RecurrenceInterval) bool {
	switch i {
	case IntervalWeekly, IntervalBiweekly, IntervalMonthly, IntervalYearly:
		return true
	default:
		return false
	}
}
