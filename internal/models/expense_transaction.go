package models

import "time"

// TransactionStatus is the settlement state of an expense transaction.
type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "COMPLETED"
	TransactionPending   TransactionStatus = "PENDING"
	TransactionFailed    TransactionStatus = "FAILED"
)

// PaymentMethod enumerates how an expense payment was made.
type PaymentMethod string

const (
	MethodBankTransfer PaymentMethod = "Bank Transfer"
	MethodCheque       PaymentMethod = "Cheque"
	MethodUPI          PaymentMethod = "UPI"
	MethodCash         PaymentMethod = "Cash"
)

// ValidPaymentMethod reports whether m is one of the accepted methods.
func ValidPaymentMethod(m string) bool {
	switch PaymentMethod(m) {
	case MethodBankTransfer, MethodCheque, MethodUPI, MethodCash:
		return true
	}
	return false
}

type ExpenseTransaction struct {
	ID            int               `json:"id"`
	ExpenseID     int               `json:"expense_id"`
	Amount        float64           `json:"amount"`
	Type          string            `json:"type"` // Always "EXPENSE"
	Status        TransactionStatus `json:"status"`
	PaymentMethod PaymentMethod     `json:"payment_method"`
	Date          time.Time         `json:"date"`
	Notes         string            `json:"notes,omitempty"`
	Reference     string            `json:"reference,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

// CreateTransactionRequest represents the request body for recording a payment
// against an expense. Amount must be positive and within the remaining balance.
type CreateTransactionRequest struct {
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
	Date          string  `json:"date"` // YYYY-MM-DD, defaults to today
	Notes         string  `json:"notes"`
	Reference     string  `json:"reference"`
}
