package repositories

import (
	"context"
	"time"

	"optic-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type SaleRepository struct {
	DB *pgxpool.Pool
}

func NewSaleRepository(db *pgxpool.Pool) *SaleRepository {
	return &SaleRepository{DB: db}
}

func (r *SaleRepository) Create(ctx context.Context, s *models.Sale) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO sales(customer_id, product_id, quantity, unit_price, total_amount, sold_at)
         VALUES($1, $2, $3, $4, $5, $6)
         RETURNING id`,
		s.CustomerID, s.ProductID, s.Quantity, s.UnitPrice, s.TotalAmount, s.Timestamp,
	).Scan(&s.ID)
}

func (r *SaleRepository) Get(ctx context.Context, id int) (*models.Sale, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT s.id, s.customer_id, s.product_id, p.name, s.quantity, s.unit_price, s.total_amount, s.sold_at
         FROM sales s JOIN products p ON p.id = s.product_id
         WHERE s.id=$1`, id)
	return scanSale(row)
}

func (r *SaleRepository) List(ctx context.Context) ([]*models.Sale, error) {
	return r.list(ctx,
		`SELECT s.id, s.customer_id, s.product_id, p.name, s.quantity, s.unit_price, s.total_amount, s.sold_at
         FROM sales s JOIN products p ON p.id = s.product_id
         ORDER BY s.sold_at DESC`)
}

func (r *SaleRepository) ListByCustomer(ctx context.Context, customerID int) ([]*models.Sale, error) {
	return r.list(ctx,
		`SELECT s.id, s.customer_id, s.product_id, p.name, s.quantity, s.unit_price, s.total_amount, s.sold_at
         FROM sales s JOIN products p ON p.id = s.product_id
         WHERE s.customer_id=$1
         ORDER BY s.sold_at DESC`, customerID)
}

// ListBetween returns sales in [from, to), newest first.
func (r *SaleRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*models.Sale, error) {
	return r.list(ctx,
		`SELECT s.id, s.customer_id, s.product_id, p.name, s.quantity, s.unit_price, s.total_amount, s.sold_at
         FROM sales s JOIN products p ON p.id = s.product_id
         WHERE s.sold_at >= $1 AND s.sold_at < $2
         ORDER BY s.sold_at DESC`, from, to)
}

func (r *SaleRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM sales WHERE id=$1`, id)
	return err
}

func (r *SaleRepository) list(ctx context.Context, query string, args ...any) ([]*models.Sale, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []*models.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

func scanSale(row rowScanner) (*models.Sale, error) {
	var s models.Sale
	err := row.Scan(&s.ID, &s.CustomerID, &s.ProductID, &s.ProductName,
		&s.Quantity, &s.UnitPrice, &s.TotalAmount, &s.Timestamp)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
