package repositories

import (
	"context"

	"optic-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type OnlinePaymentRepository struct {
	DB *pgxpool.Pool
}

func NewOnlinePaymentRepository(db *pgxpool.Pool) *OnlinePaymentRepository {
	return &OnlinePaymentRepository{DB: db}
}

const onlinePaymentColumns = `id, razorpay_order_id, COALESCE(razorpay_payment_id, ''),
        COALESCE(razorpay_signature, ''), expense_id, vendor, amount,
        COALESCE(utr_number, ''), COALESCE(method, ''), COALESCE(vpa, ''),
        status, COALESCE(failure_reason, ''), transaction_id, created_at, updated_at`

func (r *OnlinePaymentRepository) Create(ctx context.Context, p *models.OnlinePayment) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO online_payments(razorpay_order_id, expense_id, vendor, amount, status)
         VALUES($1, $2, $3, $4, $5)
         RETURNING id, created_at, updated_at`,
		p.RazorpayOrderID, p.ExpenseID, p.Vendor, p.Amount, p.Status,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *OnlinePaymentRepository) GetByOrderID(ctx context.Context, orderID string) (*models.OnlinePayment, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+onlinePaymentColumns+` FROM online_payments WHERE razorpay_order_id=$1`, orderID)
	return scanOnlinePayment(row)
}

func (r *OnlinePaymentRepository) ListByExpense(ctx context.Context, expenseID int) ([]*models.OnlinePayment, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+onlinePaymentColumns+` FROM online_payments WHERE expense_id=$1 ORDER BY created_at DESC`,
		expenseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.OnlinePayment
	for rows.Next() {
		p, err := scanOnlinePayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// MarkSuccess records the verified capture details and the linked expense
// transaction in one shot.
func (r *OnlinePaymentRepository) MarkSuccess(ctx context.Context, p *models.OnlinePayment) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE online_payments SET razorpay_payment_id=$1, razorpay_signature=$2, status=$3,
                utr_number=$4, method=$5, vpa=$6, transaction_id=$7, updated_at=CURRENT_TIMESTAMP
         WHERE id=$8`,
		p.RazorpayPaymentID, p.RazorpaySignature, p.Status,
		p.UTRNumber, p.Method, p.VPA, p.TransactionID, p.ID)
	return err
}

func (r *OnlinePaymentRepository) MarkFailed(ctx context.Context, id int, reason string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE online_payments SET status=$1, failure_reason=$2, updated_at=CURRENT_TIMESTAMP
         WHERE id=$3`,
		models.OnlinePaymentFailed, reason, id)
	return err
}

func scanOnlinePayment(row rowScanner) (*models.OnlinePayment, error) {
	var p models.OnlinePayment
	err := row.Scan(&p.ID, &p.RazorpayOrderID, &p.RazorpayPaymentID, &p.RazorpaySignature,
		&p.ExpenseID, &p.Vendor, &p.Amount, &p.UTRNumber, &p.Method, &p.VPA,
		&p.Status, &p.FailureReason, &p.TransactionID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
