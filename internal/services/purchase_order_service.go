package services

import (
	"context"
	"errors"
	"log"
	"time"

	"optic-backend/internal/listing"
	"optic-backend/internal/models"
	"optic-backend/internal/repositories"
	"optic-backend/internal/timeutil"
)

type PurchaseOrderService struct {
	repo        *repositories.PurchaseOrderRepository
	productRepo *repositories.ProductRepository
}

func NewPurchaseOrderService(repo *repositories.PurchaseOrderRepository, productRepo *repositories.ProductRepository) *PurchaseOrderService {
	return &PurchaseOrderService{repo: repo, productRepo: productRepo}
}

var purchaseOrderSchema = listing.Schema[*models.PurchaseOrder]{
	Search: []func(*models.PurchaseOrder) string{
		func(o *models.PurchaseOrder) string { return o.Supplier },
		func(o *models.PurchaseOrder) string {
			if o.Product != nil {
				return o.Product.Name
			}
			return ""
		},
	},
	Date: func(o *models.PurchaseOrder) time.Time { return o.CreatedAt },
	Sort: map[string]listing.SortKey[*models.PurchaseOrder]{
		"supplier":               {Str: func(o *models.PurchaseOrder) string { return o.Supplier }},
		"quantity":               {Num: func(o *models.PurchaseOrder) float64 { return float64(o.Quantity) }},
		"expected_delivery_date": {Time: func(o *models.PurchaseOrder) time.Time { return o.ExpectedDeliveryDate }},
		"created_at":             {Time: func(o *models.PurchaseOrder) time.Time { return o.CreatedAt }},
	},
}

func (s *PurchaseOrderService) Create(ctx context.Context, req *models.CreatePurchaseOrderRequest) (*models.PurchaseOrder, error) {
	if req.Quantity <= 0 {
		return nil, errors.New("quantity must be greater than zero")
	}
	delivery, err := timeutil.ParseDate(req.ExpectedDeliveryDate)
	if err != nil {
		return nil, errors.New("expected_delivery_date must be YYYY-MM-DD")
	}
	product, err := s.productRepo.Get(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	order := &models.PurchaseOrder{
		ProductID:            req.ProductID,
		Product:              product,
		Quantity:             req.Quantity,
		Supplier:             req.Supplier,
		ExpectedDeliveryDate: delivery,
		ProcessingStage:      models.StageOrderPlaced,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}
	order.Sync()
	return order, nil
}

func (s *PurchaseOrderService) Get(ctx context.Context, id int) (*models.PurchaseOrder, error) {
	return s.repo.Get(ctx, id)
}

func (s *PurchaseOrderService) List(ctx context.Context, params listing.Params) (listing.Result[*models.PurchaseOrder], error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return listing.Result[*models.PurchaseOrder]{}, err
	}
	return listing.Apply(orders, params, purchaseOrderSchema), nil
}

func (s *PurchaseOrderService) Update(ctx context.Context, id int, req *models.UpdatePurchaseOrderRequest) (*models.PurchaseOrder, error) {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.ProcessingStage.Terminal() {
		return nil, models.ErrOrderTerminal
	}
	if req.Quantity > 0 {
		order.Quantity = req.Quantity
	}
	if req.Supplier != "" {
		order.Supplier = req.Supplier
	}
	if req.ExpectedDeliveryDate != "" {
		delivery, err := timeutil.ParseDate(req.ExpectedDeliveryDate)
		if err != nil {
			return nil, errors.New("expected_delivery_date must be YYYY-MM-DD")
		}
		order.ExpectedDeliveryDate = delivery
	}
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Receive marks the order delivered and books the stock into inventory.
func (s *PurchaseOrderService) Receive(ctx context.Context, id int) (*models.PurchaseOrder, error) {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.Receive(); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStage(ctx, id, order.ProcessingStage); err != nil {
		return nil, err
	}
	if err := s.productRepo.AdjustStock(ctx, order.ProductID, order.Quantity); err != nil {
		return nil, err
	}
	log.Printf("[Orders] Order %d received, stock +%d for product %d", id, order.Quantity, order.ProductID)
	order.Sync()
	return order, nil
}

func (s *PurchaseOrderService) Cancel(ctx context.Context, id int) (*models.PurchaseOrder, error) {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.Cancel(); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStage(ctx, id, order.ProcessingStage); err != nil {
		return nil, err
	}
	order.Sync()
	return order, nil
}

// Advance moves the order one stage forward. Landing on DELIVERED books the
// stock exactly as Receive does.
func (s *PurchaseOrderService) Advance(ctx context.Context, id int) (*models.PurchaseOrder, error) {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.Advance(); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStage(ctx, id, order.ProcessingStage); err != nil {
		return nil, err
	}
	if order.ProcessingStage == models.StageDelivered {
		if err := s.productRepo.AdjustStock(ctx, order.ProductID, order.Quantity); err != nil {
			return nil, err
		}
	}
	order.Sync()
	return order, nil
}

func (s *PurchaseOrderService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
