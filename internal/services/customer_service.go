package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"optic-backend/internal/listing"
	"optic-backend/internal/models"
	"optic-backend/internal/repositories"
	"optic-backend/internal/timeutil"
)

type CustomerService struct {
	repo *repositories.CustomerRepository
}

func NewCustomerService(repo *repositories.CustomerRepository) *CustomerService {
	return &CustomerService{repo: repo}
}

var customerSchema = listing.Schema[*models.Customer]{
	Search: []func(*models.Customer) string{
		func(c *models.Customer) string { return c.Name },
		func(c *models.Customer) string { return c.Email },
		func(c *models.Customer) string { return c.Phone },
	},
	Date: func(c *models.Customer) time.Time { return c.JoinedDate },
	Sort: map[string]listing.SortKey[*models.Customer]{
		"name":        {Str: func(c *models.Customer) string { return c.Name }},
		"email":       {Str: func(c *models.Customer) string { return c.Email }},
		"joined_date": {Time: func(c *models.Customer) time.Time { return c.JoinedDate }},
	},
}

func (s *CustomerService) Create(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, errors.New("customer name is required")
	}

	joined := timeutil.StartOfDay(timeutil.Now())
	if req.JoinedDate != "" {
		parsed, err := timeutil.ParseDate(req.JoinedDate)
		if err != nil {
			return nil, errors.New("joined_date must be YYYY-MM-DD")
		}
		joined = parsed
	}

	customer := &models.Customer{
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.TrimSpace(req.Email),
		Phone:      strings.TrimSpace(req.Phone),
		JoinedDate: joined,
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) Get(ctx context.Context, id int) (*models.Customer, error) {
	return s.repo.Get(ctx, id)
}

func (s *CustomerService) List(ctx context.Context, params listing.Params) (listing.Result[*models.Customer], error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return listing.Result[*models.Customer]{}, err
	}
	return listing.Apply(customers, params, customerSchema), nil
}

func (s *CustomerService) Update(ctx context.Context, id int, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	customer, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		customer.Name = strings.TrimSpace(req.Name)
	}
	customer.Email = strings.TrimSpace(req.Email)
	customer.Phone = strings.TrimSpace(req.Phone)

	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
