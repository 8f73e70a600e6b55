package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"optic-backend/internal/auth"
	"optic-backend/internal/cache"
	"optic-backend/internal/listing"
	"optic-backend/internal/models"
	"optic-backend/internal/repositories"

	"github.com/jackc/pgx/v5"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrEmailTaken         = errors.New("email is already registered")
)

type EmployeeService struct {
	repo       *repositories.EmployeeRepository
	jwtManager *auth.JWTManager
}

func NewEmployeeService(repo *repositories.EmployeeRepository, jwtManager *auth.JWTManager) *EmployeeService {
	return &EmployeeService{repo: repo, jwtManager: jwtManager}
}

// employeeSchema drives search, date filtering, and sorting for the staff
// table. Sorting by name goes through the display name so "ann b" and
// "Ann B" land together.
var employeeSchema = listing.Schema[*models.Employee]{
	Search: []func(*models.Employee) string{
		func(e *models.Employee) string { return e.Name() },
		func(e *models.Employee) string { return e.Email },
		func(e *models.Employee) string { return e.Phone },
	},
	Date: func(e *models.Employee) time.Time { return e.CreatedAt },
	Sort: map[string]listing.SortKey[*models.Employee]{
		"name":       {Str: func(e *models.Employee) string { return e.Name() }},
		"email":      {Str: func(e *models.Employee) string { return e.Email }},
		"role":       {Str: func(e *models.Employee) string { return string(e.Role) }},
		"created_at": {Time: func(e *models.Employee) time.Time { return e.CreatedAt }},
	},
}

// Signup registers a new employee account. The first account in an empty
// database becomes the Owner; everyone after starts as Staff.
func (s *EmployeeService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, errors.New("email and password are required")
	}
	if strings.TrimSpace(req.FirstName) == "" {
		return nil, errors.New("first name is required")
	}
	if len(req.Password) < 6 {
		return nil, errors.New("password must be at least 6 characters")
	}

	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	role := models.RoleStaff
	existing, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		role = models.RoleOwner
	}

	employee := &models.Employee{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, employee); err != nil {
		return nil, err
	}

	token, err := s.jwtManager.GenerateToken(employee)
	if err != nil {
		return nil, err
	}

	log.Printf("[Auth] New signup: %s (%s)", employee.Email, employee.Role)
	return &models.AuthResponse{Token: token, Employee: employee}, nil
}

// Login authenticates by email and password. A cache hit on recently seen
// credentials skips the bcrypt comparison, which dominates login latency.
func (s *EmployeeService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	employee, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !employee.IsActive {
		return nil, ErrAccountDisabled
	}

	if cachedID, ok := cache.GetCachedAuth(ctx, req.Email, req.Password); !ok || int(cachedID) != employee.ID {
		if !auth.VerifyPassword(employee.PasswordHash, req.Password) {
			return nil, ErrInvalidCredentials
		}
		cache.CacheAuth(ctx, req.Email, req.Password, int64(employee.ID))
	}

	token, err := s.jwtManager.GenerateToken(employee)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, Employee: employee}, nil
}

func (s *EmployeeService) Create(ctx context.Context, req *models.CreateEmployeeRequest) (*models.Employee, error) {
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.Email) == "" {
		return nil, errors.New("first name and email are required")
	}
	if req.Password == "" {
		return nil, errors.New("password is required")
	}
	if !models.ValidRole(req.Role) {
		return nil, errors.New("invalid role")
	}

	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	employee := &models.Employee{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:        req.Phone,
		PasswordHash: hash,
		Role:         models.NormalizeRole(req.Role),
		Address:      req.Address,
		PhotoURL:     req.PhotoURL,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

func (s *EmployeeService) Get(ctx context.Context, id int) (*models.Employee, error) {
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	e.Role = models.NormalizeRole(string(e.Role))
	return e, nil
}

// List applies search, date range, sort, and pagination over all employees.
// Stored roles normalize on the way out so legacy spellings render uniformly.
func (s *EmployeeService) List(ctx context.Context, params listing.Params) (listing.Result[*models.Employee], error) {
	employees, err := s.repo.List(ctx)
	if err != nil {
		return listing.Result[*models.Employee]{}, err
	}
	for _, e := range employees {
		e.Role = models.NormalizeRole(string(e.Role))
	}
	return listing.Apply(employees, params, employeeSchema), nil
}

func (s *EmployeeService) Update(ctx context.Context, id int, req *models.UpdateEmployeeRequest) (*models.Employee, error) {
	employee, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Role != "" && !models.ValidRole(req.Role) {
		return nil, errors.New("invalid role")
	}

	if req.FirstName != "" {
		employee.FirstName = strings.TrimSpace(req.FirstName)
	}
	employee.LastName = strings.TrimSpace(req.LastName)
	if req.Email != "" {
		employee.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}
	employee.Phone = req.Phone
	if req.Role != "" {
		employee.Role = models.NormalizeRole(req.Role)
	}
	employee.Address = req.Address
	if req.PhotoURL != "" {
		employee.PhotoURL = req.PhotoURL
	}

	if err := s.repo.Update(ctx, employee); err != nil {
		return nil, err
	}

	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		if err := s.repo.UpdatePassword(ctx, id, hash); err != nil {
			return nil, err
		}
	}
	return employee, nil
}

func (s *EmployeeService) SetPhotoURL(ctx context.Context, id int, url string) error {
	return s.repo.UpdatePhotoURL(ctx, id, url)
}

func (s *EmployeeService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
