package models

import "time"

// Medicine represents a catalog entry in the pharmacy inventory.
// Stock is mutated only through invoice fulfillment (conditional decrement)
// and the manual stock adjustment operation.
type Medicine struct {
	ID                int       `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	CategoryID        int       `json:"category_id"`
	Form              string    `json:"form"` // tablet, capsule, syrup, etc.
	BatchNumber       string    `json:"batch_number"`
	ExpiryDate        time.Time `json:"expiry_date"`
	MRP               float64   `json:"mrp"`
	Stock             int       `json:"stock"`
	LowStockThreshold int       `json:"low_stock_threshold"`
	GSTRate           float64   `json:"gst_rate"`
	CreatedAt         time.Time `json:"created_at"`
}

// CreateMedicineRequest represents the request body for adding a medicine
type CreateMedicineRequest struct {
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	CategoryID        int     `json:"category_id"`
	Form              string  `json:"form"`
	BatchNumber       string  `json:"batch_number"`
	ExpiryDate        string  `json:"expiry_date"` // yyyy-mm-dd
	MRP               float64 `json:"mrp"`
	Stock             int     `json:"stock"`
	LowStockThreshold int     `json:"low_stock_threshold"`
	GSTRate           float64 `json:"gst_rate"`
}

// SetStockRequest represents the request body for a manual stock correction
type SetStockRequest struct {
	Stock  *int   `json:"stock"`
	Reason string `json:"reason"`
}

// ExpiringMedicine is a medicine annotated with days until expiry for reports
type ExpiringMedicine struct {
	Name        string    `json:"name"`
	BatchNumber string    `json:"batch_number"`
	ExpiryDate  time.Time `json:"expiry_date"`
	Stock       int       `json:"stock"`
	DaysLeft    int       `json:"days_left"`
}
