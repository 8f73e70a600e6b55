package services

import (
	"context"
	"errors"
	"time"

	"optic-backend/internal/cache"
	"optic-backend/internal/listing"
	"optic-backend/internal/models"
	"optic-backend/internal/repositories"
	"optic-backend/internal/timeutil"
)

var ErrInsufficientStock = errors.New("not enough stock for this sale")

type SaleService struct {
	repo        *repositories.SaleRepository
	productRepo *repositories.ProductRepository
}

func NewSaleService(repo *repositories.SaleRepository, productRepo *repositories.ProductRepository) *SaleService {
	return &SaleService{repo: repo, productRepo: productRepo}
}

var saleSchema = listing.Schema[*models.Sale]{
	Search: []func(*models.Sale) string{
		func(s *models.Sale) string { return s.ProductName },
	},
	Date: func(s *models.Sale) time.Time { return s.Timestamp },
	Sort: map[string]listing.SortKey[*models.Sale]{
		"product_name": {Str: func(s *models.Sale) string { return s.ProductName }},
		"quantity":     {Num: func(s *models.Sale) float64 { return float64(s.Quantity) }},
		"total_amount": {Num: func(s *models.Sale) float64 { return s.TotalAmount }},
		"timestamp":    {Time: func(s *models.Sale) time.Time { return s.Timestamp }},
	},
}

// Create records a sale and decrements the product stock. The total is
// always recomputed server-side; a client-sent total is ignored.
func (s *SaleService) Create(ctx context.Context, req *models.CreateSaleRequest) (*models.Sale, error) {
	if req.Quantity <= 0 {
		return nil, errors.New("quantity must be greater than zero")
	}
	if req.UnitPrice < 0 {
		return nil, errors.New("unit price cannot be negative")
	}

	product, err := s.productRepo.Get(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if product.StockQuantity < req.Quantity {
		return nil, ErrInsufficientStock
	}

	sale := &models.Sale{
		CustomerID:  req.CustomerID,
		ProductID:   req.ProductID,
		ProductName: product.Name,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
		TotalAmount: float64(req.Quantity) * req.UnitPrice,
		Timestamp:   timeutil.Now(),
	}
	if err := s.repo.Create(ctx, sale); err != nil {
		return nil, err
	}
	if err := s.productRepo.AdjustStock(ctx, req.ProductID, -req.Quantity); err != nil {
		return nil, err
	}

	cache.InvalidateDashboard(ctx)
	return sale, nil
}

func (s *SaleService) Get(ctx context.Context, id int) (*models.Sale, error) {
	return s.repo.Get(ctx, id)
}

func (s *SaleService) List(ctx context.Context, params listing.Params) (listing.Result[*models.Sale], error) {
	sales, err := s.repo.List(ctx)
	if err != nil {
		return listing.Result[*models.Sale]{}, err
	}
	return listing.Apply(sales, params, saleSchema), nil
}

func (s *SaleService) ListByCustomer(ctx context.Context, customerID int) ([]*models.Sale, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

func (s *SaleService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateDashboard(ctx)
	return nil
}
