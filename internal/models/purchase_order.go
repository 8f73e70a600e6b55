package models

import (
	"errors"
	"time"
)

// ProcessingStage is the fine-grained purchase order lifecycle position.
// The stage is the single source of truth; the coarse OrderStatus is a
// projection of it, so a status/stage mismatch is unrepresentable.
type ProcessingStage string

const (
	StageOrderPlaced    ProcessingStage = "ORDER_PLACED"
	StageOrderConfirmed ProcessingStage = "ORDER_CONFIRMED"
	StageProcessing     ProcessingStage = "PROCESSING"
	StagePacked         ProcessingStage = "PACKED"
	StageOutForDelivery ProcessingStage = "OUT_FOR_DELIVERY"
	StageDelivered      ProcessingStage = "DELIVERED"
	StageCancelled      ProcessingStage = "CANCELLED"
)

// OrderStatus is the coarse lifecycle projection shown in list views.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderOrdered   OrderStatus = "ORDERED"
	OrderReceived  OrderStatus = "RECEIVED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// stageOrder drives AdvanceStage; CANCELLED sits outside the chain.
var stageOrder = []ProcessingStage{
	StageOrderPlaced,
	StageOrderConfirmed,
	StageProcessing,
	StagePacked,
	StageOutForDelivery,
	StageDelivered,
}

var (
	ErrOrderTerminal = errors.New("purchase order is in a terminal state")
	ErrUnknownStage  = errors.New("unknown processing stage")
)

// Terminal reports whether the stage admits no further transitions.
func (s ProcessingStage) Terminal() bool {
	return s == StageDelivered || s == StageCancelled
}

// StatusForStage projects the fine stage onto the coarse status.
func StatusForStage(s ProcessingStage) OrderStatus {
	switch s {
	case StageOrderPlaced:
		return OrderPending
	case StageDelivered:
		return OrderReceived
	case StageCancelled:
		return OrderCancelled
	default:
		return OrderOrdered
	}
}

// NextStage returns the stage after s in the delivery chain.
func NextStage(s ProcessingStage) (ProcessingStage, error) {
	if s.Terminal() {
		return s, ErrOrderTerminal
	}
	for i, stage := range stageOrder {
		if stage == s {
			return stageOrder[i+1], nil
		}
	}
	return s, ErrUnknownStage
}

// StageDisplay is the render hint for a stage badge. Pure lookup data, no
// lifecycle logic.
type StageDisplay struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var stageDisplays = map[ProcessingStage]StageDisplay{
	StageOrderPlaced:    {Label: "Order Placed", Color: "gray"},
	StageOrderConfirmed: {Label: "Order Confirmed", Color: "blue"},
	StageProcessing:     {Label: "Processing", Color: "yellow"},
	StagePacked:         {Label: "Packed", Color: "indigo"},
	StageOutForDelivery: {Label: "Out for Delivery", Color: "orange"},
	StageDelivered:      {Label: "Delivered", Color: "green"},
	StageCancelled:      {Label: "Cancelled", Color: "red"},
}

// DisplayForStage returns the badge hint for a stage, defaulting to the raw
// stage name so unknown data stays renderable.
func DisplayForStage(s ProcessingStage) StageDisplay {
	if d, ok := stageDisplays[s]; ok {
		return d
	}
	return StageDisplay{Label: string(s), Color: "gray"}
}

type PurchaseOrder struct {
	ID                   int             `json:"id"`
	ProductID            int             `json:"product_id"`
	Product              *Product        `json:"product,omitempty"` // Embedded snapshot
	Quantity             int             `json:"quantity"`
	Supplier             string          `json:"supplier"`
	ExpectedDeliveryDate time.Time       `json:"expected_delivery_date"`
	ProcessingStage      ProcessingStage `json:"processing_stage"`
	Status               OrderStatus     `json:"status"` // Derived from ProcessingStage
	StageDisplay         StageDisplay    `json:"stage_display"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// Receive marks the order delivered. Allowed from any non-terminal stage;
// receiving skips the intermediate stages the same way the back-office
// "Receive" action does.
func (o *PurchaseOrder) Receive() error {
	if o.ProcessingStage.Terminal() {
		return ErrOrderTerminal
	}
	o.ProcessingStage = StageDelivered
	o.Status = StatusForStage(o.ProcessingStage)
	return nil
}

// Cancel aborts the order from any non-terminal stage.
func (o *PurchaseOrder) Cancel() error {
	if o.ProcessingStage.Terminal() {
		return ErrOrderTerminal
	}
	o.ProcessingStage = StageCancelled
	o.Status = StatusForStage(o.ProcessingStage)
	return nil
}

// Advance moves the order one stage forward in the delivery chain.
func (o *PurchaseOrder) Advance() error {
	next, err := NextStage(o.ProcessingStage)
	if err != nil {
		return err
	}
	o.ProcessingStage = next
	o.Status = StatusForStage(o.ProcessingStage)
	return nil
}

// Sync recomputes the derived projection fields after a raw stage load.
func (o *PurchaseOrder) Sync() {
	o.Status = StatusForStage(o.ProcessingStage)
	o.StageDisplay = DisplayForStage(o.ProcessingStage)
}

// CreatePurchaseOrderRequest represents the request body for creating an order
type CreatePurchaseOrderRequest struct {
	ProductID            int    `json:"product_id"`
	Quantity             int    `json:"quantity"`
	Supplier             string `json:"supplier"`
	ExpectedDeliveryDate string `json:"expected_delivery_date"` // YYYY-MM-DD
}

// UpdatePurchaseOrderRequest represents the request body for editing order details
type UpdatePurchaseOrderRequest struct {
	Quantity             int    `json:"quantity"`
	Supplier             string `json:"supplier"`
	ExpectedDeliveryDate string `json:"expected_delivery_date"`
}
