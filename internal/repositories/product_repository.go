package repositories

import (
	"context"

	"optic-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepository struct {
	DB *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{DB: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO products(name, price, stock_quantity, category, brand, sku, barcode, rating, image_url)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
         RETURNING id, created_at, updated_at`,
		p.Name, p.Price, p.StockQuantity, p.Category, p.Brand, p.SKU, p.Barcode, p.Rating, p.ImageURL,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProductRepository) Get(ctx context.Context, id int) (*models.Product, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, price, stock_quantity, category, brand, sku,
                COALESCE(barcode, '') as barcode, rating, COALESCE(image_url, '') as image_url,
                created_at, updated_at
         FROM products WHERE id=$1`, id)
	return scanProduct(row)
}

func (r *ProductRepository) GetBySKU(ctx context.Context, sku string) (*models.Product, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, price, stock_quantity, category, brand, sku,
                COALESCE(barcode, '') as barcode, rating, COALESCE(image_url, '') as image_url,
                created_at, updated_at
         FROM products WHERE sku=$1`, sku)
	return scanProduct(row)
}

func (r *ProductRepository) List(ctx context.Context) ([]*models.Product, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, price, stock_quantity, category, brand, sku,
                COALESCE(barcode, '') as barcode, rating, COALESCE(image_url, '') as image_url,
                created_at, updated_at
         FROM products ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE products SET name=$1, price=$2, stock_quantity=$3, category=$4, brand=$5,
                sku=$6, barcode=$7, rating=$8, image_url=$9, updated_at=CURRENT_TIMESTAMP
         WHERE id=$10`,
		p.Name, p.Price, p.StockQuantity, p.Category, p.Brand, p.SKU, p.Barcode, p.Rating, p.ImageURL, p.ID)
	return err
}

// AdjustStock changes the stock level by delta. The CHECK constraint on the
// column rejects adjustments that would go negative.
func (r *ProductRepository) AdjustStock(ctx context.Context, id int, delta int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE products SET stock_quantity = stock_quantity + $1, updated_at=CURRENT_TIMESTAMP
         WHERE id=$2`, delta, id)
	return err
}

func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	return err
}

// ListPopular returns sales rollups per product, best sellers first.
func (r *ProductRepository) ListPopular(ctx context.Context, limit int) ([]models.PopularProduct, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT p.id, p.name, p.brand, COALESCE(SUM(s.quantity), 0) as quantity_sold,
                COALESCE(SUM(s.total_amount), 0) as revenue
         FROM products p
         JOIN sales s ON s.product_id = p.id
         GROUP BY p.id, p.name, p.brand
         ORDER BY quantity_sold DESC, p.id
         LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var popular []models.PopularProduct
	for rows.Next() {
		var pp models.PopularProduct
		if err := rows.Scan(&pp.ProductID, &pp.Name, &pp.Brand, &pp.QuantitySold, &pp.Revenue); err != nil {
			return nil, err
		}
		popular = append(popular, pp)
	}
	return popular, rows.Err()
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.StockQuantity, &p.Category, &p.Brand,
		&p.SKU, &p.Barcode, &p.Rating, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
