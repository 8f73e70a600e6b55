package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"optic-backend/internal/listing"
	"optic-backend/internal/models"
	"optic-backend/internal/repositories"

	"github.com/jackc/pgx/v5"
)

var (
	ErrSKUTaken       = errors.New("sku is already in use")
	ErrInvalidBarcode = errors.New("barcode must be 12 or 13 digits")
)

type ProductService struct {
	repo *repositories.ProductRepository
}

func NewProductService(repo *repositories.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

var productSchema = listing.Schema[*models.Product]{
	Search: []func(*models.Product) string{
		func(p *models.Product) string { return p.Name },
		func(p *models.Product) string { return p.Brand },
		func(p *models.Product) string { return p.Category },
		func(p *models.Product) string { return p.SKU },
	},
	Date: func(p *models.Product) time.Time { return p.CreatedAt },
	Sort: map[string]listing.SortKey[*models.Product]{
		"name":           {Str: func(p *models.Product) string { return p.Name }},
		"brand":          {Str: func(p *models.Product) string { return p.Brand }},
		"price":          {Num: func(p *models.Product) float64 { return p.Price }},
		"stock_quantity": {Num: func(p *models.Product) float64 { return float64(p.StockQuantity) }},
		"rating":         {Num: func(p *models.Product) float64 { return p.Rating }},
		"created_at":     {Time: func(p *models.Product) time.Time { return p.CreatedAt }},
	},
}

// ValidBarcode accepts EAN-13 and UPC-A style codes: 12 or 13 digits,
// nothing else.
func ValidBarcode(code string) bool {
	if len(code) != 12 && len(code) != 13 {
		return false
	}
	for _, r := range code {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func (s *ProductService) Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	if err := validateProductFields(req.Name, req.SKU, req.Price, req.StockQuantity, req.Rating, req.Barcode); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetBySKU(ctx, req.SKU); err == nil {
		return nil, ErrSKUTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	product := &models.Product{
		Name:          strings.TrimSpace(req.Name),
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		Category:      req.Category,
		Brand:         req.Brand,
		SKU:           req.SKU,
		Barcode:       req.Barcode,
		Rating:        req.Rating,
		ImageURL:      req.ImageURL,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Get(ctx context.Context, id int) (*models.Product, error) {
	return s.repo.Get(ctx, id)
}

func (s *ProductService) List(ctx context.Context, params listing.Params) (listing.Result[*models.Product], error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return listing.Result[*models.Product]{}, err
	}
	return listing.Apply(products, params, productSchema), nil
}

func (s *ProductService) Update(ctx context.Context, id int, req *models.UpdateProductRequest) (*models.Product, error) {
	if err := validateProductFields(req.Name, req.SKU, req.Price, req.StockQuantity, req.Rating, req.Barcode); err != nil {
		return nil, err
	}

	product, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.SKU != product.SKU {
		if _, err := s.repo.GetBySKU(ctx, req.SKU); err == nil {
			return nil, ErrSKUTaken
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	}

	product.Name = strings.TrimSpace(req.Name)
	product.Price = req.Price
	product.StockQuantity = req.StockQuantity
	product.Category = req.Category
	product.Brand = req.Brand
	product.SKU = req.SKU
	product.Barcode = req.Barcode
	product.Rating = req.Rating
	product.ImageURL = req.ImageURL

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func validateProductFields(name, sku string, price float64, stock int, rating float64, barcode string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("product name is required")
	}
	if strings.TrimSpace(sku) == "" {
		return errors.New("sku is required")
	}
	if price < 0 {
		return errors.New("price cannot be negative")
	}
	if stock < 0 {
		return errors.New("stock quantity cannot be negative")
	}
	if rating < 0 || rating > 5 {
		return errors.New("rating must be between 0 and 5")
	}
	if barcode != "" && !ValidBarcode(barcode) {
		return ErrInvalidBarcode
	}
	return nil
}
