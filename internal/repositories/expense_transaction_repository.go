package repositories

import (
	"context"

	"optic-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ExpenseTransactionRepository struct {
	DB *pgxpool.Pool
}

func NewExpenseTransactionRepository(db *pgxpool.Pool) *ExpenseTransactionRepository {
	return &ExpenseTransactionRepository{DB: db}
}

func (r *ExpenseTransactionRepository) Create(ctx context.Context, t *models.ExpenseTransaction) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO expense_transactions(expense_id, amount, type, status, payment_method, date, notes, reference)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8)
         RETURNING id, created_at`,
		t.ExpenseID, t.Amount, t.Type, t.Status, t.PaymentMethod, t.Date, t.Notes, t.Reference,
	).Scan(&t.ID, &t.CreatedAt)
}

func (r *ExpenseTransactionRepository) Get(ctx context.Context, id int) (*models.ExpenseTransaction, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, expense_id, amount, type, status, payment_method, date,
                COALESCE(notes, '') as notes, COALESCE(reference, '') as reference, created_at
         FROM expense_transactions WHERE id=$1`, id)
	return scanExpenseTransaction(row)
}

func (r *ExpenseTransactionRepository) ListByExpense(ctx context.Context, expenseID int) ([]*models.ExpenseTransaction, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, expense_id, amount, type, status, payment_method, date,
                COALESCE(notes, '') as notes, COALESCE(reference, '') as reference, created_at
         FROM expense_transactions WHERE expense_id=$1 ORDER BY date DESC, id DESC`, expenseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*models.ExpenseTransaction
	for rows.Next() {
		t, err := scanExpenseTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func scanExpenseTransaction(row rowScanner) (*models.ExpenseTransaction, error) {
	var t models.ExpenseTransaction
	err := row.Scan(&t.ID, &t.ExpenseID, &t.Amount, &t.Type, &t.Status, &t.PaymentMethod,
		&t.Date, &t.Notes, &t.Reference, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
