package http

import (
	"net/http"

	"pharma-backend/internal/handlers"
	"pharma-backend/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	categoryHandler *handlers.CategoryHandler,
	medicineHandler *handlers.MedicineHandler,
	customerHandler *handlers.CustomerHandler,
	doctorHandler *handlers.DoctorHandler,
	invoiceHandler *handlers.InvoiceHandler,
	prescriptionHandler *handlers.PrescriptionHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	reportHandler *handlers.ReportHandler,
	searchHandler *handlers.SearchHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Health and metrics (no auth, consumed by probes and Prometheus)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Public API routes - Authentication
	r.HandleFunc("/api/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")

	// Public catalog listings
	r.HandleFunc("/api/categories", categoryHandler.ListCategories).Methods("GET")
	r.HandleFunc("/api/medicines", medicineHandler.ListMedicines).Methods("GET")

	authAPI := r.PathPrefix("/api/auth").Subrouter()
	authAPI.Use(authMiddleware.Authenticate)
	authAPI.HandleFunc("/me", authHandler.Me).Methods("GET")

	// Protected API routes - Users (admin only)
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(authMiddleware.Authenticate)
	usersAPI.HandleFunc("", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.ListUsers)).ServeHTTP).Methods("GET")
	usersAPI.HandleFunc("", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.CreateUser)).ServeHTTP).Methods("POST")

	// Protected API routes - Categories
	categoriesAPI := r.PathPrefix("/api/categories").Subrouter()
	categoriesAPI.Use(authMiddleware.Authenticate)
	categoriesAPI.HandleFunc("", categoryHandler.CreateCategory).Methods("POST")
	categoriesAPI.HandleFunc("/{id}", categoryHandler.GetCategory).Methods("GET")

	// Protected API routes - Medicines
	medicinesAPI := r.PathPrefix("/api/medicines").Subrouter()
	medicinesAPI.Use(authMiddleware.Authenticate)
	medicinesAPI.HandleFunc("", medicineHandler.CreateMedicine).Methods("POST")
	medicinesAPI.HandleFunc("/low-stock", medicineHandler.LowStock).Methods("GET")
	medicinesAPI.HandleFunc("/expiring", medicineHandler.Expiring).Methods("GET")
	medicinesAPI.HandleFunc("/adjustments", medicineHandler.ListAdjustments).Methods("GET")
	medicinesAPI.HandleFunc("/{id}", medicineHandler.GetMedicine).Methods("GET")
	medicinesAPI.HandleFunc("/{id}/stock", medicineHandler.SetStock).Methods("PATCH")

	// Protected API routes - Customers
	customersAPI := r.PathPrefix("/api/customers").Subrouter()
	customersAPI.Use(authMiddleware.Authenticate)
	customersAPI.HandleFunc("", customerHandler.ListCustomers).Methods("GET")
	customersAPI.HandleFunc("", customerHandler.CreateCustomer).Methods("POST")
	customersAPI.HandleFunc("/phone/{phone}", customerHandler.GetByPhone).Methods("GET")
	customersAPI.HandleFunc("/{id}", customerHandler.GetCustomer).Methods("GET")
	customersAPI.HandleFunc("/{id}/invoices", customerHandler.PurchaseHistory).Methods("GET")
	customersAPI.HandleFunc("/{id}/prescriptions", prescriptionHandler.ListByCustomer).Methods("GET")

	// Protected API routes - Doctors
	doctorsAPI := r.PathPrefix("/api/doctors").Subrouter()
	doctorsAPI.Use(authMiddleware.Authenticate)
	doctorsAPI.HandleFunc("", doctorHandler.ListDoctors).Methods("GET")
	doctorsAPI.HandleFunc("", doctorHandler.CreateDoctor).Methods("POST")
	doctorsAPI.HandleFunc("/{id}", doctorHandler.GetDoctor).Methods("GET")

	// Protected API routes - Invoices
	invoicesAPI := r.PathPrefix("/api/invoices").Subrouter()
	invoicesAPI.Use(authMiddleware.Authenticate)
	invoicesAPI.HandleFunc("", invoiceHandler.ListInvoices).Methods("GET")
	invoicesAPI.HandleFunc("", invoiceHandler.CreateInvoice).Methods("POST")
	invoicesAPI.HandleFunc("/number/{number}", invoiceHandler.GetByNumber).Methods("GET")
	invoicesAPI.HandleFunc("/{id}", invoiceHandler.GetInvoice).Methods("GET")
	invoicesAPI.HandleFunc("/{id}/pdf", invoiceHandler.DownloadPDF).Methods("GET")

	// Protected API routes - Prescriptions
	prescriptionsAPI := r.PathPrefix("/api/prescriptions").Subrouter()
	prescriptionsAPI.Use(authMiddleware.Authenticate)
	prescriptionsAPI.HandleFunc("", prescriptionHandler.CreatePrescription).Methods("POST")
	prescriptionsAPI.HandleFunc("/{id}", prescriptionHandler.GetPrescription).Methods("GET")

	// Protected API routes - Analytics
	analyticsAPI := r.PathPrefix("/api/analytics").Subrouter()
	analyticsAPI.Use(authMiddleware.Authenticate)
	analyticsAPI.HandleFunc("/top-selling", analyticsHandler.TopSelling).Methods("GET")
	analyticsAPI.HandleFunc("/daily-sales", analyticsHandler.DailySales).Methods("GET")

	// Protected API routes - Reports
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(authMiddleware.Authenticate)
	reportsAPI.HandleFunc("/expiry", reportHandler.ExpiryReport).Methods("GET")
	reportsAPI.HandleFunc("/stock-adjustment", medicineHandler.ListAdjustments).Methods("GET")
	reportsAPI.HandleFunc("/gst", reportHandler.GSTSummary).Methods("GET")

	// Protected API routes - Search
	searchAPI := r.PathPrefix("/api/search").Subrouter()
	searchAPI.Use(authMiddleware.Authenticate)
	searchAPI.HandleFunc("", searchHandler.Search).Methods("GET")

	return r
}
