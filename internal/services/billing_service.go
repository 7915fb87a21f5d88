package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"pharma-backend/internal/models"
	"pharma-backend/internal/repositories"
	"pharma-backend/internal/timeutil"
)

// invoiceNumberAttempts bounds the retry loop when the random invoice number
// suffix collides with an existing invoice.
const invoiceNumberAttempts = 5

// MedicineStore is the slice of the medicine repository the billing
// service needs.
type MedicineStore interface {
	Get(ctx context.Context, id int) (*models.Medicine, error)
}

// InvoiceStore is the slice of the invoice repository the billing
// service needs.
type InvoiceStore interface {
	CreateWithItems(ctx context.Context, invoice *models.Invoice, items []models.InvoiceItem) error
	Get(ctx context.Context, id int) (*models.Invoice, error)
	GetByNumber(ctx context.Context, invoiceNumber string) (*models.Invoice, error)
	List(ctx context.Context) ([]*models.Invoice, error)
	ListByCustomer(ctx context.Context, customerID int) ([]*models.Invoice, error)
	ItemsByInvoice(ctx context.Context, invoiceID int) ([]models.InvoiceItem, error)
}

type BillingService struct {
	Invoices  InvoiceStore
	Medicines MedicineStore
}

func NewBillingService(invoices InvoiceStore, medicines MedicineStore) *BillingService {
	return &BillingService{
		Invoices:  invoices,
		Medicines: medicines,
	}
}

// CreateInvoice runs the checkout workflow. All money fields are recomputed
// from the medicine catalog, never trusted from the client: unit price falls
// back to MRP when omitted, and the GST rate always comes from the medicine
// row. The invoice header, line items and stock decrements commit in one
// transaction.
func (s *BillingService) CreateInvoice(ctx context.Context, req *models.CreateInvoiceRequest, userID int) (*models.InvoiceWithItems, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: invoice needs at least one item", ErrInvalidInput)
	}

	items := make([]models.InvoiceItem, 0, len(req.Items))
	var subtotal, gstTotal float64

	for _, line := range req.Items {
		if line.MedicineID < 1 {
			return nil, fmt.Errorf("%w: medicine id must be positive", ErrInvalidInput)
		}
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
		}

		med, err := s.Medicines.Get(ctx, line.MedicineID)
		if err != nil {
			return nil, asNotFound(err, "medicine %d", line.MedicineID)
		}

		unitPrice := line.UnitPrice
		if unitPrice <= 0 {
			unitPrice = med.MRP
		}

		gross := round2(float64(line.Quantity) * unitPrice)
		gst := round2(gross * med.GSTRate / 100)

		items = append(items, models.InvoiceItem{
			MedicineID: med.ID,
			Quantity:   line.Quantity,
			UnitPrice:  unitPrice,
			GSTRate:    med.GSTRate,
			GSTAmount:  gst,
			TotalPrice: round2(gross + gst),
		})
		subtotal += gross
		gstTotal += gst
	}

	invoice := &models.Invoice{
		CustomerID: req.CustomerID,
		DoctorID:   req.DoctorID,
		Subtotal:   round2(subtotal),
		GSTAmount:  round2(gstTotal),
		Total:      round2(subtotal + gstTotal),
		UserID:     userID,
	}

	// The random suffix can collide; the unique constraint on invoice_number
	// catches it and we retry with a fresh one.
	for attempt := 0; attempt < invoiceNumberAttempts; attempt++ {
		invoice.InvoiceNumber = newInvoiceNumber()

		err := s.Invoices.CreateWithItems(ctx, invoice, items)
		if err == nil {
			return &models.InvoiceWithItems{Invoice: invoice, Items: items}, nil
		}
		if errors.Is(err, repositories.ErrDuplicateInvoiceNumber) {
			continue
		}
		return nil, err
	}
	return nil, repositories.ErrDuplicateInvoiceNumber
}

func (s *BillingService) GetInvoice(ctx context.Context, id int) (*models.InvoiceWithItems, error) {
	invoice, err := s.Invoices.Get(ctx, id)
	if err != nil {
		return nil, asNotFound(err, "invoice %d", id)
	}
	items, err := s.Invoices.ItemsByInvoice(ctx, invoice.ID)
	if err != nil {
		return nil, err
	}
	return &models.InvoiceWithItems{Invoice: invoice, Items: items}, nil
}

func (s *BillingService) GetInvoiceByNumber(ctx context.Context, invoiceNumber string) (*models.InvoiceWithItems, error) {
	invoice, err := s.Invoices.GetByNumber(ctx, invoiceNumber)
	if err != nil {
		return nil, asNotFound(err, "invoice %s", invoiceNumber)
	}
	items, err := s.Invoices.ItemsByInvoice(ctx, invoice.ID)
	if err != nil {
		return nil, err
	}
	return &models.InvoiceWithItems{Invoice: invoice, Items: items}, nil
}

// ListInvoices returns all invoices, newest first
func (s *BillingService) ListInvoices(ctx context.Context) ([]*models.Invoice, error) {
	return s.Invoices.List(ctx)
}

// ListInvoicesByCustomer returns a customer's purchase history, newest first
func (s *BillingService) ListInvoicesByCustomer(ctx context.Context, customerID int) ([]*models.Invoice, error) {
	return s.Invoices.ListByCustomer(ctx, customerID)
}

// newInvoiceNumber builds INV-<yyyymmdd>-<nnnn> with a random 4-digit suffix
func newInvoiceNumber() string {
	return fmt.Sprintf("INV-%s-%04d", timeutil.Now().Format(timeutil.CompactLayout), rand.IntN(10000))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
