package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"optic-backend/internal/analytics"
	"optic-backend/internal/cache"
	"optic-backend/internal/models"
	"optic-backend/internal/repositories"
	"optic-backend/internal/timeutil"
)

const dashboardCacheTTL = 5 * time.Minute

type DashboardService struct {
	saleRepo     *repositories.SaleRepository
	customerRepo *repositories.CustomerRepository
	productRepo  *repositories.ProductRepository
	expenseRepo  *repositories.ExpenseRepository
}

func NewDashboardService(
	saleRepo *repositories.SaleRepository,
	customerRepo *repositories.CustomerRepository,
	productRepo *repositories.ProductRepository,
	expenseRepo *repositories.ExpenseRepository,
) *DashboardService {
	return &DashboardService{
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		expenseRepo:  expenseRepo,
	}
}

// DashboardMetrics is the card payload behind the landing page.
type DashboardMetrics struct {
	TotalRevenue          float64 `json:"total_revenue"`
	TotalRevenueDisplay   string  `json:"total_revenue_display"`
	MonthRevenue          float64 `json:"month_revenue"`
	MonthRevenueDisplay   string  `json:"month_revenue_display"`
	AverageSaleValue      float64 `json:"average_sale_value"`
	TotalSales            int     `json:"total_sales"`
	TotalCustomers        int     `json:"total_customers"`
	TotalExpenses         float64 `json:"total_expenses"`
	TotalExpensesDisplay  string  `json:"total_expenses_display"`
	BestSellingProduct    string  `json:"best_selling_product"`
	BestSellingProductQty int     `json:"best_selling_product_qty"`
}

// PopularProducts is the two top-N dashboard tabs: each tab is an
// independent ranking of the same rollups.
type PopularProducts struct {
	ByQuantity []models.PopularProduct `json:"by_quantity"`
	ByRevenue  []models.PopularProduct `json:"by_revenue"`
}

// Metrics computes the dashboard cards, serving from cache when fresh.
func (s *DashboardService) Metrics(ctx context.Context) (*DashboardMetrics, error) {
	if data, ok := cache.GetCachedJSON(ctx, cache.DashboardMetricsKey); ok {
		var m DashboardMetrics
		if err := json.Unmarshal(data, &m); err == nil {
			return &m, nil
		}
	}

	sales, err := s.saleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	customerCount, err := s.customerRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := timeutil.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, timeutil.IST)

	totalRevenue := analytics.Sum(sales, func(s *models.Sale) float64 { return s.TotalAmount })
	monthRevenue := 0.0
	for _, sale := range sales {
		if !sale.Timestamp.Before(monthStart) {
			monthRevenue += sale.TotalAmount
		}
	}
	totalExpenses := analytics.Sum(expenses, func(e *models.Expense) float64 { return e.Amount })

	metrics := &DashboardMetrics{
		TotalRevenue:         totalRevenue,
		TotalRevenueDisplay:  analytics.FormatIndianNumber(totalRevenue),
		MonthRevenue:         monthRevenue,
		MonthRevenueDisplay:  analytics.FormatIndianNumber(monthRevenue),
		AverageSaleValue:     analytics.Average(sales, func(s *models.Sale) float64 { return s.TotalAmount }),
		TotalSales:           len(sales),
		TotalCustomers:       customerCount,
		TotalExpenses:        totalExpenses,
		TotalExpensesDisplay: analytics.FormatIndianNumber(totalExpenses),
	}

	popular, err := s.productRepo.ListPopular(ctx, 50)
	if err != nil {
		return nil, err
	}
	if best, ok := analytics.MaxBy(popular, func(p models.PopularProduct) float64 { return float64(p.QuantitySold) }); ok {
		metrics.BestSellingProduct = best.Name
		metrics.BestSellingProductQty = best.QuantitySold
	}

	if data, err := json.Marshal(metrics); err == nil {
		cache.CacheJSON(ctx, cache.DashboardMetricsKey, data, dashboardCacheTTL)
	} else {
		log.Printf("[Dashboard] Failed to cache metrics: %v", err)
	}
	return metrics, nil
}

// Popular computes the top-N product tabs.
func (s *DashboardService) Popular(ctx context.Context, n int) (*PopularProducts, error) {
	if n <= 0 {
		n = 5
	}

	if data, ok := cache.GetCachedJSON(ctx, cache.PopularProductsKey); ok {
		var p PopularProducts
		if err := json.Unmarshal(data, &p); err == nil && len(p.ByQuantity) <= n {
			return &p, nil
		}
	}

	rollups, err := s.productRepo.ListPopular(ctx, 200)
	if err != nil {
		return nil, err
	}

	popular := &PopularProducts{
		ByQuantity: analytics.TopNBy(rollups, n, func(p models.PopularProduct) float64 { return float64(p.QuantitySold) }),
		ByRevenue:  analytics.TopNBy(rollups, n, func(p models.PopularProduct) float64 { return p.Revenue }),
	}

	if data, err := json.Marshal(popular); err == nil {
		cache.CacheJSON(ctx, cache.PopularProductsKey, data, dashboardCacheTTL)
	}
	return popular, nil
}
