package repositories

import (
	"context"

	"optic-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PrescriptionRepository struct {
	DB *pgxpool.Pool
}

func NewPrescriptionRepository(db *pgxpool.Pool) *PrescriptionRepository {
	return &PrescriptionRepository{DB: db}
}

const prescriptionColumns = `id, customer_id, date, expiry_date, doctor,
        right_sphere, right_cylinder, right_axis, right_add, right_pd,
        left_sphere, left_cylinder, left_axis, left_add, left_pd,
        COALESCE(notes, '') as notes, created_at, updated_at`

func (r *PrescriptionRepository) Create(ctx context.Context, p *models.Prescription) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO prescriptions(customer_id, date, expiry_date, doctor,
             right_sphere, right_cylinder, right_axis, right_add, right_pd,
             left_sphere, left_cylinder, left_axis, left_add, left_pd, notes)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
         RETURNING id, created_at, updated_at`,
		p.CustomerID, p.Date, p.ExpiryDate, p.Doctor,
		p.RightEye.Sphere, p.RightEye.Cylinder, p.RightEye.Axis, p.RightEye.Add, p.RightEye.PD,
		p.LeftEye.Sphere, p.LeftEye.Cylinder, p.LeftEye.Axis, p.LeftEye.Add, p.LeftEye.PD,
		p.Notes,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *PrescriptionRepository) Get(ctx context.Context, id int) (*models.Prescription, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+prescriptionColumns+` FROM prescriptions WHERE id=$1`, id)
	return scanPrescription(row)
}

func (r *PrescriptionRepository) List(ctx context.Context) ([]*models.Prescription, error) {
	return r.list(ctx, `SELECT `+prescriptionColumns+` FROM prescriptions ORDER BY date DESC`)
}

func (r *PrescriptionRepository) ListByCustomer(ctx context.Context, customerID int) ([]*models.Prescription, error) {
	return r.list(ctx,
		`SELECT `+prescriptionColumns+` FROM prescriptions WHERE customer_id=$1 ORDER BY date DESC`,
		customerID)
}

func (r *PrescriptionRepository) Update(ctx context.Context, p *models.Prescription) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE prescriptions SET date=$1, expiry_date=$2, doctor=$3,
             right_sphere=$4, right_cylinder=$5, right_axis=$6, right_add=$7, right_pd=$8,
             left_sphere=$9, left_cylinder=$10, left_axis=$11, left_add=$12, left_pd=$13,
             notes=$14, updated_at=CURRENT_TIMESTAMP
         WHERE id=$15`,
		p.Date, p.ExpiryDate, p.Doctor,
		p.RightEye.Sphere, p.RightEye.Cylinder, p.RightEye.Axis, p.RightEye.Add, p.RightEye.PD,
		p.LeftEye.Sphere, p.LeftEye.Cylinder, p.LeftEye.Axis, p.LeftEye.Add, p.LeftEye.PD,
		p.Notes, p.ID)
	return err
}

func (r *PrescriptionRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM prescriptions WHERE id=$1`, id)
	return err
}

func (r *PrescriptionRepository) list(ctx context.Context, query string, args ...any) ([]*models.Prescription, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prescriptions []*models.Prescription
	for rows.Next() {
		p, err := scanPrescription(rows)
		if err != nil {
			return nil, err
		}
		prescriptions = append(prescriptions, p)
	}
	return prescriptions, rows.Err()
}

func scanPrescription(row rowScanner) (*models.Prescription, error) {
	var p models.Prescription
	err := row.Scan(&p.ID, &p.CustomerID, &p.Date, &p.ExpiryDate, &p.Doctor,
		&p.RightEye.Sphere, &p.RightEye.Cylinder, &p.RightEye.Axis, &p.RightEye.Add, &p.RightEye.PD,
		&p.LeftEye.Sphere, &p.LeftEye.Cylinder, &p.LeftEye.Axis, &p.LeftEye.Add, &p.LeftEye.PD,
		&p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
