package repositories

import (
	"context"

	"optic-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type EmployeeRepository struct {
	DB *pgxpool.Pool
}

func NewEmployeeRepository(db *pgxpool.Pool) *EmployeeRepository {
	return &EmployeeRepository{DB: db}
}

func (r *EmployeeRepository) Create(ctx context.Context, e *models.Employee) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO employees(first_name, last_name, email, phone, password_hash, role, address, photo_url, is_active)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
         RETURNING id, created_at, updated_at`,
		e.FirstName, e.LastName, e.Email, e.Phone, e.PasswordHash, e.Role, e.Address, e.PhotoURL, e.IsActive,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func (r *EmployeeRepository) Get(ctx context.Context, id int) (*models.Employee, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, first_name, last_name, email, phone, password_hash, role,
                COALESCE(address, '') as address, COALESCE(photo_url, '') as photo_url,
                is_active, created_at, updated_at
         FROM employees WHERE id=$1`, id)
	return scanEmployee(row)
}

func (r *EmployeeRepository) GetByEmail(ctx context.Context, email string) (*models.Employee, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, first_name, last_name, email, phone, password_hash, role,
                COALESCE(address, '') as address, COALESCE(photo_url, '') as photo_url,
                is_active, created_at, updated_at
         FROM employees WHERE LOWER(email)=LOWER($1)`, email)
	return scanEmployee(row)
}

func (r *EmployeeRepository) List(ctx context.Context) ([]*models.Employee, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, first_name, last_name, email, phone, password_hash, role,
                COALESCE(address, '') as address, COALESCE(photo_url, '') as photo_url,
                is_active, created_at, updated_at
         FROM employees ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []*models.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (r *EmployeeRepository) Update(ctx context.Context, e *models.Employee) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE employees SET first_name=$1, last_name=$2, email=$3, phone=$4, role=$5,
                address=$6, photo_url=$7, is_active=$8, updated_at=CURRENT_TIMESTAMP
         WHERE id=$9`,
		e.FirstName, e.LastName, e.Email, e.Phone, e.Role, e.Address, e.PhotoURL, e.IsActive, e.ID)
	return err
}

func (r *EmployeeRepository) UpdatePassword(ctx context.Context, id int, hash string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE employees SET password_hash=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`, hash, id)
	return err
}

func (r *EmployeeRepository) UpdatePhotoURL(ctx context.Context, id int, url string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE employees SET photo_url=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`, url, id)
	return err
}

func (r *EmployeeRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM employees WHERE id=$1`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (*models.Employee, error) {
	var e models.Employee
	err := row.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.Phone, &e.PasswordHash,
		&e.Role, &e.Address, &e.PhotoURL, &e.IsActive, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
