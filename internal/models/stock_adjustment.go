package models

import "time"

// StockAdjustment records a manual stock correction for the audit report
type StockAdjustment struct {
	ID           int       `json:"id"`
	MedicineID   int       `json:"medicine_id"`
	MedicineName string    `json:"medicine_name,omitempty"`
	OldStock     int       `json:"old_stock"`
	NewStock     int       `json:"new_stock"`
	Reason       string    `json:"reason"`
	UserID       int       `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
}
