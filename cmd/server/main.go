package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"pharma-backend/internal/auth"
	"pharma-backend/internal/cache"
	"pharma-backend/internal/config"
	"pharma-backend/internal/database"
	"pharma-backend/internal/db"
	"pharma-backend/internal/handlers"
	"pharma-backend/internal/health"
	h "pharma-backend/internal/http"
	"pharma-backend/internal/middleware"
	"pharma-backend/internal/monitoring"
	"pharma-backend/internal/repositories"
	"pharma-backend/internal/services"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	seed := flag.Bool("seed", false, "Seed demo data after migrations")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Connect to PostgreSQL
	pool := db.Connect(cfg)
	defer pool.Close()

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (dashboard queries hit the database)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Run database migrations
	migrator := database.NewMigrator(pool, "migrations")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if *seed {
		if err := database.Seed(ctx, pool); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	// Initialize health checker
	healthChecker := health.NewChecker(pool)

	// Start monitoring API in background
	go monitoring.NewMonitoringServer(pool, cfg.Server.MonitoringPort).Start()

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(pool)
	categoryRepo := repositories.NewCategoryRepository(pool)
	medicineRepo := repositories.NewMedicineRepository(pool)
	customerRepo := repositories.NewCustomerRepository(pool)
	doctorRepo := repositories.NewDoctorRepository(pool)
	invoiceRepo := repositories.NewInvoiceRepository(pool)
	prescriptionRepo := repositories.NewPrescriptionRepository(pool)
	adjustmentRepo := repositories.NewStockAdjustmentRepository(pool)
	analyticsRepo := repositories.NewAnalyticsRepository(pool)
	searchRepo := repositories.NewSearchRepository(pool)

	// Initialize services
	userService := services.NewUserService(userRepo, jwtManager)
	categoryService := services.NewCategoryService(categoryRepo)
	medicineService := services.NewMedicineService(medicineRepo, adjustmentRepo)
	customerService := services.NewCustomerService(customerRepo)
	doctorService := services.NewDoctorService(doctorRepo)
	billingService := services.NewBillingService(invoiceRepo, medicineRepo)
	prescriptionService := services.NewPrescriptionService(prescriptionRepo, customerRepo)
	analyticsService := services.NewAnalyticsService(analyticsRepo)
	searchService := services.NewSearchService(searchRepo)
	reportService := services.NewReportService(cfg, medicineRepo, invoiceRepo, customerRepo, analyticsRepo)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	medicineHandler := handlers.NewMedicineHandler(medicineService)
	customerHandler := handlers.NewCustomerHandler(customerService, billingService)
	doctorHandler := handlers.NewDoctorHandler(doctorService)
	invoiceHandler := handlers.NewInvoiceHandler(billingService, reportService)
	prescriptionHandler := handlers.NewPrescriptionHandler(prescriptionService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	reportHandler := handlers.NewReportHandler(reportService)
	searchHandler := handlers.NewSearchHandler(searchService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	router := h.NewRouter(
		authHandler,
		userHandler,
		categoryHandler,
		medicineHandler,
		customerHandler,
		doctorHandler,
		invoiceHandler,
		prescriptionHandler,
		analyticsHandler,
		reportHandler,
		searchHandler,
		healthHandler,
		authMiddleware,
	)

	// Wrap with panic recovery, metrics and CORS
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Pharmacy backend running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
