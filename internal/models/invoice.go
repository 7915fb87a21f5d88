package models

import "time"

// Invoice is a point-of-sale bill. Immutable once created; money fields are
// computed server-side from the line items.
type Invoice struct {
	ID            int       `json:"id"`
	InvoiceNumber string    `json:"invoice_number"`
	CustomerID    *int      `json:"customer_id"`
	DoctorID      *int      `json:"doctor_id"`
	Subtotal      float64   `json:"subtotal"`
	GSTAmount     float64   `json:"gst_amount"`
	Total         float64   `json:"total"`
	UserID        int       `json:"user_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// InvoiceItem is one sold line of an invoice
type InvoiceItem struct {
	ID         int     `json:"id"`
	InvoiceID  int     `json:"invoice_id"`
	MedicineID int     `json:"medicine_id"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	GSTRate    float64 `json:"gst_rate"`
	GSTAmount  float64 `json:"gst_amount"`
	TotalPrice float64 `json:"total_price"`
}

// CartLine is one line of the checkout request. Only medicine, quantity and
// an optional unit price are taken from the client; tax is recomputed.
type CartLine struct {
	MedicineID int     `json:"medicine_id"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
}

// CreateInvoiceRequest represents the checkout request body
type CreateInvoiceRequest struct {
	CustomerID *int       `json:"customer_id"`
	DoctorID   *int       `json:"doctor_id"`
	Items      []CartLine `json:"items"`
}

// InvoiceWithItems is the checkout/lookup response shape
type InvoiceWithItems struct {
	Invoice *Invoice      `json:"invoice"`
	Items   []InvoiceItem `json:"items"`
}
