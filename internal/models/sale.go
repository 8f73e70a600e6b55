package models

import "time"

type Sale struct {
	ID          int       `json:"id"`
	CustomerID  int       `json:"customer_id"`
	ProductID   int       `json:"product_id"`
	ProductName string    `json:"product_name,omitempty"` // Joined from products table
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	TotalAmount float64   `json:"total_amount"`
	Timestamp   time.Time `json:"timestamp"`
}

// CreateSaleRequest represents the request body for recording a sale.
// TotalAmount is computed server-side as quantity * unit_price.
type CreateSaleRequest struct {
	CustomerID int     `json:"customer_id"`
	ProductID  int     `json:"product_id"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
}
