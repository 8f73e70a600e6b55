package repositories

import (
	"context"

	"optic-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PurchaseOrderRepository struct {
	DB *pgxpool.Pool
}

func NewPurchaseOrderRepository(db *pgxpool.Pool) *PurchaseOrderRepository {
	return &PurchaseOrderRepository{DB: db}
}

const purchaseOrderColumns = `o.id, o.product_id, o.quantity, o.supplier,
        o.expected_delivery_date, o.processing_stage, o.created_at, o.updated_at,
        p.id, p.name, p.price, p.stock_quantity, p.category, p.brand, p.sku,
        COALESCE(p.barcode, '') as barcode, p.rating, COALESCE(p.image_url, '') as image_url,
        p.created_at, p.updated_at`

func (r *PurchaseOrderRepository) Create(ctx context.Context, o *models.PurchaseOrder) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO purchase_orders(product_id, quantity, supplier, expected_delivery_date, processing_stage)
         VALUES($1, $2, $3, $4, $5)
         RETURNING id, created_at, updated_at`,
		o.ProductID, o.Quantity, o.Supplier, o.ExpectedDeliveryDate, o.ProcessingStage,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
}

func (r *PurchaseOrderRepository) Get(ctx context.Context, id int) (*models.PurchaseOrder, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+purchaseOrderColumns+`
         FROM purchase_orders o JOIN products p ON p.id = o.product_id
         WHERE o.id=$1`, id)
	return scanPurchaseOrder(row)
}

func (r *PurchaseOrderRepository) List(ctx context.Context) ([]*models.PurchaseOrder, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+purchaseOrderColumns+`
         FROM purchase_orders o JOIN products p ON p.id = o.product_id
         ORDER BY o.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.PurchaseOrder
	for rows.Next() {
		o, err := scanPurchaseOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *PurchaseOrderRepository) Update(ctx context.Context, o *models.PurchaseOrder) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE purchase_orders SET quantity=$1, supplier=$2, expected_delivery_date=$3,
                updated_at=CURRENT_TIMESTAMP
         WHERE id=$4`,
		o.Quantity, o.Supplier, o.ExpectedDeliveryDate, o.ID)
	return err
}

// UpdateStage persists only the lifecycle position. The coarse status is
// derived on read, never stored.
func (r *PurchaseOrderRepository) UpdateStage(ctx context.Context, id int, stage models.ProcessingStage) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE purchase_orders SET processing_stage=$1, updated_at=CURRENT_TIMESTAMP
         WHERE id=$2`, stage, id)
	return err
}

func (r *PurchaseOrderRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM purchase_orders WHERE id=$1`, id)
	return err
}

func scanPurchaseOrder(row rowScanner) (*models.PurchaseOrder, error) {
	var o models.PurchaseOrder
	var p models.Product
	err := row.Scan(&o.ID, &o.ProductID, &o.Quantity, &o.Supplier,
		&o.ExpectedDeliveryDate, &o.ProcessingStage, &o.CreatedAt, &o.UpdatedAt,
		&p.ID, &p.Name, &p.Price, &p.StockQuantity, &p.Category, &p.Brand, &p.SKU,
		&p.Barcode, &p.Rating, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.Product = &p
	o.Sync()
	return &o, nil
}
