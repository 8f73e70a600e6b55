package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"optic-backend/internal/budget"
	"optic-backend/internal/cache"
	"optic-backend/internal/listing"
	"optic-backend/internal/metrics"
	"optic-backend/internal/models"
	"optic-backend/internal/payments"
	"optic-backend/internal/repositories"
	"optic-backend/internal/timeutil"
)

var ErrExpenseNotApproved = errors.New("expense must be approved before payments")

type ExpenseService struct {
	repo         *repositories.ExpenseRepository
	categoryRepo *repositories.ExpenseCategoryRepository
	txRepo       *repositories.ExpenseTransactionRepository
}

func NewExpenseService(
	repo *repositories.ExpenseRepository,
	categoryRepo *repositories.ExpenseCategoryRepository,
	txRepo *repositories.ExpenseTransactionRepository,
) *ExpenseService {
	return &ExpenseService{repo: repo, categoryRepo: categoryRepo, txRepo: txRepo}
}

var expenseSchema = listing.Schema[*models.Expense]{
	Search: []func(*models.Expense) string{
		func(e *models.Expense) string { return e.Vendor },
		func(e *models.Expense) string { return e.CategoryName },
		func(e *models.Expense) string { return e.Description },
	},
	Date: func(e *models.Expense) time.Time { return e.DueDate },
	Sort: map[string]listing.SortKey[*models.Expense]{
		"vendor":   {Str: func(e *models.Expense) string { return e.Vendor }},
		"category": {Str: func(e *models.Expense) string { return e.CategoryName }},
		"amount":   {Num: func(e *models.Expense) float64 { return e.Amount }},
		"due_date": {Time: func(e *models.Expense) time.Time { return e.DueDate }},
	},
}

func (s *ExpenseService) Create(ctx context.Context, req *models.CreateExpenseRequest) (*models.Expense, error) {
	if req.Amount <= 0 {
		return nil, errors.New("amount must be greater than zero")
	}
	if strings.TrimSpace(req.Vendor) == "" {
		return nil, errors.New("vendor is required")
	}
	dueDate, err := timeutil.ParseDate(req.DueDate)
	if err != nil {
		return nil, errors.New("due_date must be YYYY-MM-DD")
	}
	category, err := s.categoryRepo.Get(ctx, req.CategoryID)
	if err != nil {
		return nil, errors.New("unknown expense category")
	}

	expense := &models.Expense{
		CategoryID:   req.CategoryID,
		CategoryName: category.Name,
		Amount:       req.Amount,
		Budget:       req.Budget,
		DueDate:      dueDate,
		Status:       models.ApprovalPending,
		Vendor:       strings.TrimSpace(req.Vendor),
		Description:  req.Description,
		PaymentType:  normalizePaymentType(req.PaymentType),
	}
	if err := s.repo.Create(ctx, expense); err != nil {
		return nil, err
	}
	expense.PaymentStatus = payments.StatusFor(expense.Amount, expense.PaidAmount)

	cache.InvalidateDashboard(ctx)
	return expense, nil
}

func (s *ExpenseService) Get(ctx context.Context, id int) (*models.Expense, error) {
	expense, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	expense.PaymentStatus = payments.StatusFor(expense.Amount, expense.PaidAmount)
	return expense, nil
}

func (s *ExpenseService) List(ctx context.Context, params listing.Params) (listing.Result[*models.Expense], error) {
	expenses, err := s.repo.List(ctx)
	if err != nil {
		return listing.Result[*models.Expense]{}, err
	}
	for _, e := range expenses {
		e.PaymentStatus = payments.StatusFor(e.Amount, e.PaidAmount)
	}
	return listing.Apply(expenses, params, expenseSchema), nil
}

func (s *ExpenseService) Update(ctx context.Context, id int, req *models.UpdateExpenseRequest) (*models.Expense, error) {
	expense, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Amount <= 0 {
		return nil, errors.New("amount must be greater than zero")
	}
	dueDate, err := timeutil.ParseDate(req.DueDate)
	if err != nil {
		return nil, errors.New("due_date must be YYYY-MM-DD")
	}
	if req.CategoryID != expense.CategoryID {
		category, err := s.categoryRepo.Get(ctx, req.CategoryID)
		if err != nil {
			return nil, errors.New("unknown expense category")
		}
		expense.CategoryID = req.CategoryID
		expense.CategoryName = category.Name
	}

	expense.Amount = req.Amount
	expense.Budget = req.Budget
	expense.DueDate = dueDate
	expense.Vendor = strings.TrimSpace(req.Vendor)
	expense.Description = req.Description
	expense.PaymentType = normalizePaymentType(req.PaymentType)

	if err := s.repo.Update(ctx, expense); err != nil {
		return nil, err
	}
	expense.PaymentStatus = payments.StatusFor(expense.Amount, expense.PaidAmount)

	cache.InvalidateDashboard(ctx)
	return expense, nil
}

func (s *ExpenseService) Approve(ctx context.Context, id int) error {
	return s.repo.UpdateStatus(ctx, id, models.ApprovalApproved)
}

func (s *ExpenseService) Reject(ctx context.Context, id int) error {
	return s.repo.UpdateStatus(ctx, id, models.ApprovalRejected)
}

func (s *ExpenseService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateDashboard(ctx)
	return nil
}

func (s *ExpenseService) ListCategories(ctx context.Context) ([]models.ExpenseCategory, error) {
	return s.categoryRepo.List(ctx)
}

// Breakdown derives the payment view of one expense from its transaction
// history, not from the stored paid_amount, so a stale running total cannot
// surface.
func (s *ExpenseService) Breakdown(ctx context.Context, id int) (*payments.Breakdown, error) {
	expense, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	txns, err := s.txRepo.ListByExpense(ctx, id)
	if err != nil {
		return nil, err
	}
	flat := make([]models.ExpenseTransaction, len(txns))
	for i, tx := range txns {
		flat[i] = *tx
	}
	b := payments.Compute(expense.Amount, payments.SumCompleted(flat))
	return &b, nil
}

func (s *ExpenseService) ListTransactions(ctx context.Context, expenseID int) ([]*models.ExpenseTransaction, error) {
	return s.txRepo.ListByExpense(ctx, expenseID)
}

// RecordPayment validates and records a payment against an expense, then
// bumps the stored paid total.
func (s *ExpenseService) RecordPayment(ctx context.Context, expenseID int, req *models.CreateTransactionRequest) (*models.ExpenseTransaction, error) {
	expense, err := s.repo.Get(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.Status != models.ApprovalApproved {
		return nil, ErrExpenseNotApproved
	}
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		return nil, errors.New("invalid payment method")
	}

	breakdown, err := s.Breakdown(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if err := payments.ValidateNewPayment(req.Amount, breakdown.Payable); err != nil {
		return nil, err
	}

	date := timeutil.StartOfDay(timeutil.Now())
	if req.Date != "" {
		parsed, err := timeutil.ParseDate(req.Date)
		if err != nil {
			return nil, errors.New("date must be YYYY-MM-DD")
		}
		date = parsed
	}

	tx := &models.ExpenseTransaction{
		ExpenseID:     expenseID,
		Amount:        req.Amount,
		Type:          "EXPENSE",
		Status:        models.TransactionCompleted,
		PaymentMethod: models.PaymentMethod(req.PaymentMethod),
		Date:          date,
		Notes:         req.Notes,
		Reference:     req.Reference,
	}
	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, err
	}
	if err := s.repo.AddPaidAmount(ctx, expenseID, req.Amount); err != nil {
		return nil, err
	}

	metrics.PaymentsRecorded.WithLabelValues(req.PaymentMethod).Inc()
	cache.InvalidateDashboard(ctx)
	return tx, nil
}

// BudgetTable reconciles categories, spend rollups, and raw expenses into
// the rows the budget page renders.
func (s *ExpenseService) BudgetTable(ctx context.Context) ([]budget.Row, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	summaries, err := s.repo.SummaryByCategory(ctx)
	if err != nil {
		return nil, err
	}
	rawExpenses, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	flat := make([]models.Expense, len(rawExpenses))
	for i, e := range rawExpenses {
		flat[i] = *e
	}
	return budget.Reconcile(categories, summaries, flat), nil
}

// UpdateBudget changes the allocation behind one budget row. Shrinking the
// allocation below money already spent is rejected outright.
func (s *ExpenseService) UpdateBudget(ctx context.Context, expenseID int, req *models.UpdateBudgetRequest) error {
	expense, err := s.repo.Get(ctx, expenseID)
	if err != nil {
		return err
	}

	// The floor is the category's spend rollup, the same number the budget
	// row shows as Spent.
	summaries, err := s.repo.SummaryByCategory(ctx)
	if err != nil {
		return err
	}
	var spent float64
	for _, summary := range summaries {
		if summary.CategoryID == expense.CategoryID {
			spent, _ = summary.Amount.Float64()
			break
		}
	}
	if err := budget.ValidateBudgetUpdate(req.Budget, spent); err != nil {
		return err
	}
	return s.repo.UpdateBudget(ctx, expenseID, req.Budget)
}

func (s *ExpenseService) SummaryByCategory(ctx context.Context) ([]models.ExpenseByCategorySummary, error) {
	return s.repo.SummaryByCategory(ctx)
}

func normalizePaymentType(raw string) models.PaymentType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "subscription":
		return models.PaymentTypeSubscription
	case "prepaid":
		return models.PaymentTypePrepaid
	}
	return models.PaymentTypePostpaid
}
