package models

import "time"

// Prescription links a customer to an optionally scanned prescription image.
// The image itself is stored by the upload collaborator; only the path is kept.
type Prescription struct {
	ID         int       `json:"id"`
	CustomerID int       `json:"customer_id"`
	DoctorID   *int      `json:"doctor_id"`
	ImagePath  string    `json:"image_path"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreatePrescriptionRequest represents the request body for recording a prescription
type CreatePrescriptionRequest struct {
	CustomerID int    `json:"customer_id"`
	DoctorID   *int   `json:"doctor_id"`
	ImagePath  string `json:"image_path"`
	Notes      string `json:"notes"`
}
