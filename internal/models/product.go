package models

import "time"

type Product struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	StockQuantity int       `json:"stock_quantity"`
	Category      string    `json:"category"`
	Brand         string    `json:"brand"`
	SKU           string    `json:"sku"`
	Barcode       string    `json:"barcode,omitempty"` // 12-13 digit numeric string
	Rating        float64   `json:"rating"`            // 0-5
	ImageURL      string    `json:"image_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
	Category      string  `json:"category"`
	Brand         string  `json:"brand"`
	SKU           string  `json:"sku"`
	Barcode       string  `json:"barcode"`
	Rating        float64 `json:"rating"`
	ImageURL      string  `json:"image_url"`
}

// UpdateProductRequest represents the request body for updating a product
type UpdateProductRequest struct {
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
	Category      string  `json:"category"`
	Brand         string  `json:"brand"`
	SKU           string  `json:"sku"`
	Barcode       string  `json:"barcode"`
	Rating        float64 `json:"rating"`
	ImageURL      string  `json:"image_url"`
}

// PopularProduct is a sales rollup row used by the dashboard top-N tabs.
type PopularProduct struct {
	ProductID    int     `json:"product_id"`
	Name         string  `json:"name"`
	Brand        string  `json:"brand"`
	QuantitySold int     `json:"quantity_sold"`
	Revenue      float64 `json:"revenue"`
}
