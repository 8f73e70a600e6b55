// Package payments derives payment state from an expense's total and its
// recorded payments, and validates new payment submissions. It never mutates
// the paid total itself; the expense service recomputes that from the
// transaction table after a confirmed write.
package payments

import (
	"errors"

	"optic-backend/internal/models"
)

var (
	ErrNonPositiveAmount = errors.New("payment amount must be greater than zero")
	ErrExceedsRemaining  = errors.New("payment amount exceeds the remaining balance")
)

// Breakdown is the derived payment view of a single expense.
type Breakdown struct {
	Total     float64              `json:"total"`
	Paid      float64              `json:"paid"`
	Remaining float64              `json:"remaining"` // Raw; negative when overpaid
	Payable   float64              `json:"payable"`   // Never negative
	Status    models.PaymentStatus `json:"status"`
	// Overpaid flags paid > total. A data anomaly to surface, not hide.
	Overpaid bool `json:"overpaid"`
}

// Compute derives the breakdown from a total owed and the paid running total.
func Compute(total, paid float64) Breakdown {
	remaining := total - paid
	payable := remaining
	if payable < 0 {
		payable = 0
	}
	return Breakdown{
		Total:     total,
		Paid:      paid,
		Remaining: remaining,
		Payable:   payable,
		Status:    StatusFor(total, paid),
		Overpaid:  paid > total,
	}
}

// StatusFor derives the payment status, independent of any stored flag.
func StatusFor(total, paid float64) models.PaymentStatus {
	switch {
	case paid >= total && total > 0:
		return models.PaymentStatusPaid
	case paid > 0:
		return models.PaymentStatusPartial
	default:
		return models.PaymentStatusPending
	}
}

// SumCompleted totals the COMPLETED transactions of an expense.
// Non-completed rows do not count toward the paid amount.
func SumCompleted(txns []models.ExpenseTransaction) float64 {
	var paid float64
	for _, tx := range txns {
		if tx.Status == models.TransactionCompleted {
			paid += tx.Amount
		}
	}
	return paid
}

// ValidateNewPayment rejects a submission instead of clamping it: zero and
// negative amounts, and amounts above the remaining balance, are user errors
// surfaced as-is.
func ValidateNewPayment(amount, remaining float64) error {
	if amount <= 0 {
		return ErrNonPositiveAmount
	}
	if amount > remaining {
		return ErrExceedsRemaining
	}
	return nil
}
