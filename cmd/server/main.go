package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"optic-backend/internal/auth"
	"optic-backend/internal/cache"
	"optic-backend/internal/config"
	"optic-backend/internal/database"
	"optic-backend/internal/db"
	"optic-backend/internal/handlers"
	"optic-backend/internal/health"
	apihttp "optic-backend/internal/http"
	"optic-backend/internal/middleware"
	"optic-backend/internal/repositories"
	"optic-backend/internal/services"
	"optic-backend/internal/storage"
	"optic-backend/migrations"
)

func main() {
	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()

	if err := cache.Init(cfg); err != nil {
		log.Printf("[Cache] Redis unavailable, running without cache: %v", err)
	}

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	migrator := database.NewMigrator(pool, migrations.FS, ".")
	if err := migrator.RunMigrations(migrateCtx); err != nil {
		log.Fatalf("[Migrations] Failed: %v", err)
	}

	healthChecker := health.NewHealthChecker(pool)
	jwtManager := auth.NewJWTManager(cfg)

	// Repositories
	employeeRepo := repositories.NewEmployeeRepository(pool)
	customerRepo := repositories.NewCustomerRepository(pool)
	productRepo := repositories.NewProductRepository(pool)
	saleRepo := repositories.NewSaleRepository(pool)
	prescriptionRepo := repositories.NewPrescriptionRepository(pool)
	purchaseOrderRepo := repositories.NewPurchaseOrderRepository(pool)
	expenseRepo := repositories.NewExpenseRepository(pool)
	categoryRepo := repositories.NewExpenseCategoryRepository(pool)
	txRepo := repositories.NewExpenseTransactionRepository(pool)
	paymentRepo := repositories.NewOnlinePaymentRepository(pool)

	// Services
	employeeService := services.NewEmployeeService(employeeRepo, jwtManager)
	customerService := services.NewCustomerService(customerRepo)
	productService := services.NewProductService(productRepo)
	saleService := services.NewSaleService(saleRepo, productRepo)
	prescriptionService := services.NewPrescriptionService(prescriptionRepo, customerRepo)
	purchaseOrderService := services.NewPurchaseOrderService(purchaseOrderRepo, productRepo)
	expenseService := services.NewExpenseService(expenseRepo, categoryRepo, txRepo)
	dashboardService := services.NewDashboardService(saleRepo, customerRepo, productRepo, expenseRepo)
	exportService := services.NewExportService(employeeRepo)
	printerService := services.NewPrinterService(cfg.Printer.URL)
	razorpayService := services.NewRazorpayService(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret, cfg.Razorpay.WebhookSecret, paymentRepo, expenseRepo, txRepo)

	if !razorpayService.Enabled() {
		log.Printf("[Razorpay] Keys not configured, online payments disabled")
	}

	photoStore := storage.NewPhotoStore(cfg)
	if photoStore == nil {
		log.Printf("[Storage] R2 not configured, photo uploads disabled")
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(employeeService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService, exportService, photoStore)
	customerHandler := handlers.NewCustomerHandler(customerService, saleService, prescriptionService)
	saleHandler := handlers.NewSaleHandler(saleService)
	prescriptionHandler := handlers.NewPrescriptionHandler(prescriptionService)
	productHandler := handlers.NewProductHandler(productService, printerService)
	purchaseOrderHandler := handlers.NewPurchaseOrderHandler(purchaseOrderService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	razorpayHandler := handlers.NewRazorpayHandler(razorpayService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, employeeRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	router := apihttp.NewRouter(
		authHandler,
		employeeHandler,
		customerHandler,
		saleHandler,
		prescriptionHandler,
		productHandler,
		purchaseOrderHandler,
		expenseHandler,
		dashboardHandler,
		razorpayHandler,
		healthHandler,
		authMiddleware,
	)

	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("[Server] Listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("[Server] %v", err)
	}
}
