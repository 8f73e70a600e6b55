package repositories

import (
	"context"

	"optic-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ExpenseCategoryRepository struct {
	DB *pgxpool.Pool
}

func NewExpenseCategoryRepository(db *pgxpool.Pool) *ExpenseCategoryRepository {
	return &ExpenseCategoryRepository{DB: db}
}

func (r *ExpenseCategoryRepository) Create(ctx context.Context, c *models.ExpenseCategory) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO expense_categories(name) VALUES($1) RETURNING id`, c.Name,
	).Scan(&c.ID)
}

func (r *ExpenseCategoryRepository) Get(ctx context.Context, id int) (*models.ExpenseCategory, error) {
	var c models.ExpenseCategory
	err := r.DB.QueryRow(ctx,
		`SELECT id, name FROM expense_categories WHERE id=$1`, id,
	).Scan(&c.ID, &c.Name)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ExpenseCategoryRepository) List(ctx context.Context) ([]models.ExpenseCategory, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, name FROM expense_categories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.ExpenseCategory
	for rows.Next() {
		var c models.ExpenseCategory
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
