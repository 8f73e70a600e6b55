package models

import "time"

// OnlinePaymentStatus represents the status of a razorpay payment
type OnlinePaymentStatus string

const (
	OnlinePaymentPending OnlinePaymentStatus = "pending"
	OnlinePaymentSuccess OnlinePaymentStatus = "success"
	OnlinePaymentFailed  OnlinePaymentStatus = "failed"
)

// OnlinePayment tracks a razorpay order raised against an expense balance.
type OnlinePayment struct {
	ID                int                 `json:"id"`
	RazorpayOrderID   string              `json:"razorpay_order_id"`
	RazorpayPaymentID string              `json:"razorpay_payment_id,omitempty"`
	RazorpaySignature string              `json:"-"` // Never expose in JSON
	ExpenseID         int                 `json:"expense_id"`
	Vendor            string              `json:"vendor"`
	Amount            float64             `json:"amount"` // Rupees
	UTRNumber         string              `json:"utr_number,omitempty"`
	Method            string              `json:"method,omitempty"` // upi, card, netbanking
	VPA               string              `json:"vpa,omitempty"`
	Status            OnlinePaymentStatus `json:"status"`
	FailureReason     string              `json:"failure_reason,omitempty"`
	TransactionID     *int                `json:"transaction_id,omitempty"` // Linked expense transaction
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

// CreateOnlinePaymentRequest starts a razorpay order for an expense.
type CreateOnlinePaymentRequest struct {
	ExpenseID int     `json:"expense_id"`
	Amount    float64 `json:"amount"`
}

// CreateOrderResponse carries what the checkout UI needs to open razorpay.
type CreateOrderResponse struct {
	OrderID  string  `json:"order_id"`
	Amount   int     `json:"amount"` // Paise
	Currency string  `json:"currency"`
	KeyID    string  `json:"key_id"`
	Vendor   string  `json:"vendor"`
	Rupees   float64 `json:"rupees"`
}

// VerifyPaymentRequest is the checkout callback payload.
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}
