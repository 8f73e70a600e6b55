package models

import (
	"encoding/json"
	"time"
)

// PaymentStatus is derived from paid amount vs total, never stored directly.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPartial PaymentStatus = "PARTIAL"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

// ApprovalStatus is the back-office approval state of an expense.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// PaymentType describes how the vendor bills the expense.
type PaymentType string

const (
	PaymentTypeSubscription PaymentType = "Subscription"
	PaymentTypePrepaid      PaymentType = "Prepaid"
	PaymentTypePostpaid     PaymentType = "Postpaid"
)

type ExpenseCategory struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Expense struct {
	ID            int            `json:"id"`
	CategoryID    int            `json:"category_id"`
	CategoryName  string         `json:"category_name,omitempty"` // Joined from expense_categories
	Amount        float64        `json:"amount"`                  // Total owed
	Budget        float64        `json:"budget"`                  // Allocated ceiling
	PaidAmount    float64        `json:"paid_amount"`
	PaymentStatus PaymentStatus  `json:"payment_status"` // Derived on read
	DueDate       time.Time      `json:"due_date"`
	Status        ApprovalStatus `json:"status"`
	Vendor        string         `json:"vendor"`
	Description   string         `json:"description,omitempty"`
	PaymentType   PaymentType    `json:"payment_type"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// ExpenseByCategorySummary is the per-category rollup behind the budget table.
// Amount is a json.Number because upstream rollups deliver it both as a bare
// number and as a string; the budget reconciler coerces it with a 0 fallback.
type ExpenseByCategorySummary struct {
	CategoryID    int         `json:"category_id"`
	CategoryName  string      `json:"category_name"`
	Amount        json.Number `json:"amount"` // Total spent in the category
	Budget        float64     `json:"budget"` // Allocated for the category
	PendingAmount float64     `json:"pending_amount"`
	PendingCount  int         `json:"pending_count"`
}

// CreateExpenseRequest represents the request body for creating an expense
type CreateExpenseRequest struct {
	CategoryID  int     `json:"category_id"`
	Amount      float64 `json:"amount"`
	Budget      float64 `json:"budget"`
	DueDate     string  `json:"due_date"` // YYYY-MM-DD
	Vendor      string  `json:"vendor"`
	Description string  `json:"description"`
	PaymentType string  `json:"payment_type"`
}

// UpdateExpenseRequest represents the request body for updating an expense
type UpdateExpenseRequest struct {
	CategoryID  int     `json:"category_id"`
	Amount      float64 `json:"amount"`
	Budget      float64 `json:"budget"`
	DueDate     string  `json:"due_date"`
	Vendor      string  `json:"vendor"`
	Description string  `json:"description"`
	PaymentType string  `json:"payment_type"`
}

// UpdateBudgetRequest carries a new allocation for the expense behind a
// budget table row.
type UpdateBudgetRequest struct {
	Budget float64 `json:"budget"`
}
