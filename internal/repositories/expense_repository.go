package repositories

import (
	"context"
	"encoding/json"

	"optic-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ExpenseRepository struct {
	DB *pgxpool.Pool
}

func NewExpenseRepository(db *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{DB: db}
}

const expenseColumns = `e.id, e.category_id, c.name, e.amount, e.budget, e.paid_amount,
        e.due_date, e.status, e.vendor, COALESCE(e.description, '') as description,
        e.payment_type, e.created_at, e.updated_at`

func (r *ExpenseRepository) Create(ctx context.Context, e *models.Expense) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO expenses(category_id, amount, budget, due_date, status, vendor, description, payment_type)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8)
         RETURNING id, created_at, updated_at`,
		e.CategoryID, e.Amount, e.Budget, e.DueDate, e.Status, e.Vendor, e.Description, e.PaymentType,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func (r *ExpenseRepository) Get(ctx context.Context, id int) (*models.Expense, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+expenseColumns+`
         FROM expenses e JOIN expense_categories c ON c.id = e.category_id
         WHERE e.id=$1`, id)
	return scanExpense(row)
}

func (r *ExpenseRepository) List(ctx context.Context) ([]*models.Expense, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+expenseColumns+`
         FROM expenses e JOIN expense_categories c ON c.id = e.category_id
         ORDER BY e.due_date, e.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (r *ExpenseRepository) Update(ctx context.Context, e *models.Expense) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE expenses SET category_id=$1, amount=$2, budget=$3, due_date=$4, vendor=$5,
                description=$6, payment_type=$7, updated_at=CURRENT_TIMESTAMP
         WHERE id=$8`,
		e.CategoryID, e.Amount, e.Budget, e.DueDate, e.Vendor, e.Description, e.PaymentType, e.ID)
	return err
}

func (r *ExpenseRepository) UpdateStatus(ctx context.Context, id int, status models.ApprovalStatus) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE expenses SET status=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`, status, id)
	return err
}

func (r *ExpenseRepository) UpdateBudget(ctx context.Context, id int, budget float64) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE expenses SET budget=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`, budget, id)
	return err
}

// AddPaidAmount bumps the running paid total after a completed transaction.
func (r *ExpenseRepository) AddPaidAmount(ctx context.Context, id int, amount float64) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE expenses SET paid_amount = paid_amount + $1, updated_at=CURRENT_TIMESTAMP
         WHERE id=$2`, amount, id)
	return err
}

func (r *ExpenseRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM expenses WHERE id=$1`, id)
	return err
}

// SummaryByCategory rolls up spend and pending counts per category. Amounts
// come back through text so the summary keeps the json.Number shape the
// budget reconciler expects.
func (r *ExpenseRepository) SummaryByCategory(ctx context.Context) ([]models.ExpenseByCategorySummary, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT c.id, c.name,
                COALESCE(SUM(e.amount), 0)::text as amount,
                COALESCE(MAX(e.budget), 0) as budget,
                COALESCE(SUM(e.amount - e.paid_amount) FILTER (WHERE e.paid_amount < e.amount), 0) as pending_amount,
                COUNT(e.id) FILTER (WHERE e.paid_amount < e.amount) as pending_count
         FROM expense_categories c
         LEFT JOIN expenses e ON e.category_id = c.id
         GROUP BY c.id, c.name
         ORDER BY c.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []models.ExpenseByCategorySummary
	for rows.Next() {
		var s models.ExpenseByCategorySummary
		var amount string
		err := rows.Scan(&s.CategoryID, &s.CategoryName, &amount, &s.Budget,
			&s.PendingAmount, &s.PendingCount)
		if err != nil {
			return nil, err
		}
		s.Amount = json.Number(amount)
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func scanExpense(row rowScanner) (*models.Expense, error) {
	var e models.Expense
	err := row.Scan(&e.ID, &e.CategoryID, &e.CategoryName, &e.Amount, &e.Budget, &e.PaidAmount,
		&e.DueDate, &e.Status, &e.Vendor, &e.Description, &e.PaymentType, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
