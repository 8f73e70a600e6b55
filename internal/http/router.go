package http

import (
	"net/http"

	"optic-backend/internal/handlers"
	"optic-backend/internal/middleware"
	"optic-backend/internal/models"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	employeeHandler *handlers.EmployeeHandler,
	customerHandler *handlers.CustomerHandler,
	saleHandler *handlers.SaleHandler,
	prescriptionHandler *handlers.PrescriptionHandler,
	productHandler *handlers.ProductHandler,
	purchaseOrderHandler *handlers.PurchaseOrderHandler,
	expenseHandler *handlers.ExpenseHandler,
	dashboardHandler *handlers.DashboardHandler,
	razorpayHandler *handlers.RazorpayHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Razorpay webhook authenticates by signature, not bearer token. It must
	// be registered before the /api/payments subrouter claims the prefix.
	r.HandleFunc("/api/payments/webhook", razorpayHandler.HandleWebhook).Methods("POST")

	manage := authMiddleware.RequireRole(models.RoleOwner, models.RoleAdmin)
	managerUp := authMiddleware.RequireRole(models.RoleOwner, models.RoleAdmin, models.RoleManager)

	// Protected API routes - Me
	meAPI := r.PathPrefix("/api/me").Subrouter()
	meAPI.Use(authMiddleware.Authenticate)
	meAPI.HandleFunc("", authHandler.Me).Methods("GET")

	// Protected API routes - Employees (staff roster is Owner/Admin territory)
	employeesAPI := r.PathPrefix("/api/employees").Subrouter()
	employeesAPI.Use(authMiddleware.Authenticate)
	employeesAPI.HandleFunc("", employeeHandler.ListEmployees).Methods("GET")
	employeesAPI.HandleFunc("", manage(http.HandlerFunc(employeeHandler.CreateEmployee)).ServeHTTP).Methods("POST")
	employeesAPI.HandleFunc("/export", manage(http.HandlerFunc(employeeHandler.ExportEmployees)).ServeHTTP).Methods("GET")
	employeesAPI.HandleFunc("/{id}", employeeHandler.GetEmployee).Methods("GET")
	employeesAPI.HandleFunc("/{id}", manage(http.HandlerFunc(employeeHandler.UpdateEmployee)).ServeHTTP).Methods("PUT")
	employeesAPI.HandleFunc("/{id}", manage(http.HandlerFunc(employeeHandler.DeleteEmployee)).ServeHTTP).Methods("DELETE")
	employeesAPI.HandleFunc("/{id}/photo", manage(http.HandlerFunc(employeeHandler.UploadPhoto)).ServeHTTP).Methods("POST")

	// Protected API routes - Customers
	customersAPI := r.PathPrefix("/api/customers").Subrouter()
	customersAPI.Use(authMiddleware.Authenticate)
	customersAPI.HandleFunc("", customerHandler.ListCustomers).Methods("GET")
	customersAPI.HandleFunc("", customerHandler.CreateCustomer).Methods("POST")
	customersAPI.HandleFunc("/{id}", customerHandler.GetCustomer).Methods("GET")
	customersAPI.HandleFunc("/{id}", customerHandler.UpdateCustomer).Methods("PUT")
	customersAPI.HandleFunc("/{id}", manage(http.HandlerFunc(customerHandler.DeleteCustomer)).ServeHTTP).Methods("DELETE")
	customersAPI.HandleFunc("/{id}/sales", customerHandler.ListCustomerSales).Methods("GET")
	customersAPI.HandleFunc("/{id}/prescriptions", customerHandler.ListCustomerPrescriptions).Methods("GET")

	// Protected API routes - Sales
	salesAPI := r.PathPrefix("/api/sales").Subrouter()
	salesAPI.Use(authMiddleware.Authenticate)
	salesAPI.HandleFunc("", saleHandler.ListSales).Methods("GET")
	salesAPI.HandleFunc("", saleHandler.CreateSale).Methods("POST")
	salesAPI.HandleFunc("/{id}", saleHandler.GetSale).Methods("GET")
	salesAPI.HandleFunc("/{id}", manage(http.HandlerFunc(saleHandler.DeleteSale)).ServeHTTP).Methods("DELETE")

	// Protected API routes - Prescriptions
	prescriptionsAPI := r.PathPrefix("/api/prescriptions").Subrouter()
	prescriptionsAPI.Use(authMiddleware.Authenticate)
	prescriptionsAPI.HandleFunc("", prescriptionHandler.ListPrescriptions).Methods("GET")
	prescriptionsAPI.HandleFunc("", prescriptionHandler.CreatePrescription).Methods("POST")
	prescriptionsAPI.HandleFunc("/{id}", prescriptionHandler.GetPrescription).Methods("GET")
	prescriptionsAPI.HandleFunc("/{id}", prescriptionHandler.UpdatePrescription).Methods("PUT")
	prescriptionsAPI.HandleFunc("/{id}", manage(http.HandlerFunc(prescriptionHandler.DeletePrescription)).ServeHTTP).Methods("DELETE")

	// Protected API routes - Products
	productsAPI := r.PathPrefix("/api/products").Subrouter()
	productsAPI.Use(authMiddleware.Authenticate)
	productsAPI.HandleFunc("", productHandler.ListProducts).Methods("GET")
	productsAPI.HandleFunc("", managerUp(http.HandlerFunc(productHandler.CreateProduct)).ServeHTTP).Methods("POST")
	productsAPI.HandleFunc("/print-labels", productHandler.PrintLabels).Methods("POST")
	productsAPI.HandleFunc("/{id}", productHandler.GetProduct).Methods("GET")
	productsAPI.HandleFunc("/{id}", managerUp(http.HandlerFunc(productHandler.UpdateProduct)).ServeHTTP).Methods("PUT")
	productsAPI.HandleFunc("/{id}", manage(http.HandlerFunc(productHandler.DeleteProduct)).ServeHTTP).Methods("DELETE")

	// Protected API routes - Purchase Orders
	ordersAPI := r.PathPrefix("/api/purchase-orders").Subrouter()
	ordersAPI.Use(authMiddleware.Authenticate)
	ordersAPI.HandleFunc("", purchaseOrderHandler.ListOrders).Methods("GET")
	ordersAPI.HandleFunc("", managerUp(http.HandlerFunc(purchaseOrderHandler.CreateOrder)).ServeHTTP).Methods("POST")
	ordersAPI.HandleFunc("/{id}", purchaseOrderHandler.GetOrder).Methods("GET")
	ordersAPI.HandleFunc("/{id}", managerUp(http.HandlerFunc(purchaseOrderHandler.UpdateOrder)).ServeHTTP).Methods("PUT")
	ordersAPI.HandleFunc("/{id}", manage(http.HandlerFunc(purchaseOrderHandler.DeleteOrder)).ServeHTTP).Methods("DELETE")
	ordersAPI.HandleFunc("/{id}/receive", managerUp(http.HandlerFunc(purchaseOrderHandler.ReceiveOrder)).ServeHTTP).Methods("POST")
	ordersAPI.HandleFunc("/{id}/cancel", managerUp(http.HandlerFunc(purchaseOrderHandler.CancelOrder)).ServeHTTP).Methods("POST")
	ordersAPI.HandleFunc("/{id}/advance", managerUp(http.HandlerFunc(purchaseOrderHandler.AdvanceOrder)).ServeHTTP).Methods("POST")

	// Protected API routes - Expense Categories
	categoriesAPI := r.PathPrefix("/api/expense-categories").Subrouter()
	categoriesAPI.Use(authMiddleware.Authenticate)
	categoriesAPI.HandleFunc("", expenseHandler.ListCategories).Methods("GET")

	// Protected API routes - Expenses
	expensesAPI := r.PathPrefix("/api/expenses").Subrouter()
	expensesAPI.Use(authMiddleware.Authenticate)
	expensesAPI.HandleFunc("", expenseHandler.ListExpenses).Methods("GET")
	expensesAPI.HandleFunc("", expenseHandler.CreateExpense).Methods("POST")
	expensesAPI.HandleFunc("/summary", expenseHandler.GetSummary).Methods("GET")
	expensesAPI.HandleFunc("/{id}", expenseHandler.GetExpense).Methods("GET")
	expensesAPI.HandleFunc("/{id}", expenseHandler.UpdateExpense).Methods("PUT")
	expensesAPI.HandleFunc("/{id}", manage(http.HandlerFunc(expenseHandler.DeleteExpense)).ServeHTTP).Methods("DELETE")
	expensesAPI.HandleFunc("/{id}/approve", manage(http.HandlerFunc(expenseHandler.ApproveExpense)).ServeHTTP).Methods("POST")
	expensesAPI.HandleFunc("/{id}/reject", manage(http.HandlerFunc(expenseHandler.RejectExpense)).ServeHTTP).Methods("POST")
	expensesAPI.HandleFunc("/{id}/breakdown", expenseHandler.GetBreakdown).Methods("GET")
	expensesAPI.HandleFunc("/{id}/transactions", expenseHandler.ListTransactions).Methods("GET")
	expensesAPI.HandleFunc("/{id}/transactions", expenseHandler.RecordPayment).Methods("POST")
	expensesAPI.HandleFunc("/{id}/online-payments", razorpayHandler.ListPayments).Methods("GET")

	// Protected API routes - Budget
	budgetAPI := r.PathPrefix("/api/budget").Subrouter()
	budgetAPI.Use(authMiddleware.Authenticate)
	budgetAPI.HandleFunc("", expenseHandler.GetBudgetTable).Methods("GET")
	budgetAPI.HandleFunc("/{id}", manage(http.HandlerFunc(expenseHandler.UpdateBudget)).ServeHTTP).Methods("PUT")

	// Protected API routes - Online payments
	paymentsAPI := r.PathPrefix("/api/payments").Subrouter()
	paymentsAPI.Use(authMiddleware.Authenticate)
	paymentsAPI.HandleFunc("/order", razorpayHandler.CreateOrder).Methods("POST")
	paymentsAPI.HandleFunc("/verify", razorpayHandler.VerifyPayment).Methods("POST")

	// Protected API routes - Dashboard
	dashboardAPI := r.PathPrefix("/api/dashboard").Subrouter()
	dashboardAPI.Use(authMiddleware.Authenticate)
	dashboardAPI.HandleFunc("/metrics", dashboardHandler.GetMetrics).Methods("GET")
	dashboardAPI.HandleFunc("/popular-products", dashboardHandler.GetPopular).Methods("GET")

	// Health endpoints (no auth required - for probes)
	r.HandleFunc("/health", healthHandler.Health).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.HealthDetailed).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
