package models

import "time"

// EyeMeasurement holds the optical measurements for one eye.
type EyeMeasurement struct {
	Sphere   float64 `json:"sphere"`
	Cylinder float64 `json:"cylinder"`
	Axis     int     `json:"axis"`
	Add      float64 `json:"add"`
	PD       float64 `json:"pd"`
}

type Prescription struct {
	ID         int            `json:"id"`
	CustomerID int            `json:"customer_id"`
	Date       time.Time      `json:"date"`
	ExpiryDate time.Time      `json:"expiry_date"`
	Doctor     string         `json:"doctor"`
	RightEye   EyeMeasurement `json:"right_eye"`
	LeftEye    EyeMeasurement `json:"left_eye"`
	Notes      string         `json:"notes,omitempty"`
	Expired    bool           `json:"expired"` // Derived: expiry_date < now
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// CreatePrescriptionRequest represents the request body for creating a prescription
type CreatePrescriptionRequest struct {
	CustomerID int            `json:"customer_id"`
	Date       string         `json:"date"`        // YYYY-MM-DD
	ExpiryDate string         `json:"expiry_date"` // YYYY-MM-DD, must be after date
	Doctor     string         `json:"doctor"`
	RightEye   EyeMeasurement `json:"right_eye"`
	LeftEye    EyeMeasurement `json:"left_eye"`
	Notes      string         `json:"notes"`
}

// UpdatePrescriptionRequest represents the request body for updating a prescription
type UpdatePrescriptionRequest struct {
	Date       string         `json:"date"`
	ExpiryDate string         `json:"expiry_date"`
	Doctor     string         `json:"doctor"`
	RightEye   EyeMeasurement `json:"right_eye"`
	LeftEye    EyeMeasurement `json:"left_eye"`
	Notes      string         `json:"notes"`
}
