package services

import (
	"context"
	"errors"
	"time"

	"optic-backend/internal/listing"
	"optic-backend/internal/models"
	"optic-backend/internal/repositories"
	"optic-backend/internal/timeutil"
)

var ErrExpiryBeforeDate = errors.New("expiry date must be after the prescription date")

type PrescriptionService struct {
	repo         *repositories.PrescriptionRepository
	customerRepo *repositories.CustomerRepository
}

func NewPrescriptionService(repo *repositories.PrescriptionRepository, customerRepo *repositories.CustomerRepository) *PrescriptionService {
	return &PrescriptionService{repo: repo, customerRepo: customerRepo}
}

var prescriptionSchema = listing.Schema[*models.Prescription]{
	Search: []func(*models.Prescription) string{
		func(p *models.Prescription) string { return p.Doctor },
	},
	Date: func(p *models.Prescription) time.Time { return p.Date },
	Sort: map[string]listing.SortKey[*models.Prescription]{
		"date":        {Time: func(p *models.Prescription) time.Time { return p.Date }},
		"expiry_date": {Time: func(p *models.Prescription) time.Time { return p.ExpiryDate }},
		"doctor":      {Str: func(p *models.Prescription) string { return p.Doctor }},
	},
}

func (s *PrescriptionService) Create(ctx context.Context, req *models.CreatePrescriptionRequest) (*models.Prescription, error) {
	date, expiry, err := parsePrescriptionDates(req.Date, req.ExpiryDate)
	if err != nil {
		return nil, err
	}
	if err := validateAxes(req.RightEye, req.LeftEye); err != nil {
		return nil, err
	}
	if _, err := s.customerRepo.Get(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	prescription := &models.Prescription{
		CustomerID: req.CustomerID,
		Date:       date,
		ExpiryDate: expiry,
		Doctor:     req.Doctor,
		RightEye:   req.RightEye,
		LeftEye:    req.LeftEye,
		Notes:      req.Notes,
	}
	if err := s.repo.Create(ctx, prescription); err != nil {
		return nil, err
	}
	markExpired(prescription)
	return prescription, nil
}

func (s *PrescriptionService) Get(ctx context.Context, id int) (*models.Prescription, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	markExpired(p)
	return p, nil
}

func (s *PrescriptionService) List(ctx context.Context, params listing.Params) (listing.Result[*models.Prescription], error) {
	prescriptions, err := s.repo.List(ctx)
	if err != nil {
		return listing.Result[*models.Prescription]{}, err
	}
	for _, p := range prescriptions {
		markExpired(p)
	}
	return listing.Apply(prescriptions, params, prescriptionSchema), nil
}

func (s *PrescriptionService) ListByCustomer(ctx context.Context, customerID int) ([]*models.Prescription, error) {
	prescriptions, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	for _, p := range prescriptions {
		markExpired(p)
	}
	return prescriptions, nil
}

func (s *PrescriptionService) Update(ctx context.Context, id int, req *models.UpdatePrescriptionRequest) (*models.Prescription, error) {
	date, expiry, err := parsePrescriptionDates(req.Date, req.ExpiryDate)
	if err != nil {
		return nil, err
	}
	if err := validateAxes(req.RightEye, req.LeftEye); err != nil {
		return nil, err
	}

	prescription, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	prescription.Date = date
	prescription.ExpiryDate = expiry
	prescription.Doctor = req.Doctor
	prescription.RightEye = req.RightEye
	prescription.LeftEye = req.LeftEye
	prescription.Notes = req.Notes

	if err := s.repo.Update(ctx, prescription); err != nil {
		return nil, err
	}
	markExpired(prescription)
	return prescription, nil
}

func (s *PrescriptionService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func parsePrescriptionDates(dateStr, expiryStr string) (date, expiry time.Time, err error) {
	date, err = timeutil.ParseDate(dateStr)
	if err != nil {
		return date, expiry, errors.New("date must be YYYY-MM-DD")
	}
	expiry, err = timeutil.ParseDate(expiryStr)
	if err != nil {
		return date, expiry, errors.New("expiry_date must be YYYY-MM-DD")
	}
	if !expiry.After(date) {
		return date, expiry, ErrExpiryBeforeDate
	}
	return date, expiry, nil
}

func validateAxes(right, left models.EyeMeasurement) error {
	if right.Axis < 0 || right.Axis > 180 || left.Axis < 0 || left.Axis > 180 {
		return errors.New("axis must be between 0 and 180")
	}
	return nil
}

// markExpired fills the derived expiry flag against the current IST clock.
func markExpired(p *models.Prescription) {
	p.Expired = p.ExpiryDate.Before(timeutil.Now())
}
