package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pharma-backend/internal/middleware"
	"pharma-backend/internal/models"
	"pharma-backend/internal/repositories"
	"pharma-backend/internal/services"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMedicines struct {
	medicines map[int]*models.Medicine
}

func (s *stubMedicines) Get(ctx context.Context, id int) (*models.Medicine, error) {
	m, ok := s.medicines[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *m
	return &cp, nil
}

type stubInvoices struct {
	medicines *stubMedicines
	created   []*models.Invoice
}

func (s *stubInvoices) CreateWithItems(ctx context.Context, invoice *models.Invoice, items []models.InvoiceItem) error {
	for _, item := range items {
		if s.medicines.medicines[item.MedicineID].Stock < item.Quantity {
			return repositories.ErrInsufficientStock
		}
	}
	for _, item := range items {
		s.medicines.medicines[item.MedicineID].Stock -= item.Quantity
	}
	invoice.ID = len(s.created) + 1
	invoice.CreatedAt = time.Now()
	s.created = append(s.created, invoice)
	return nil
}

func (s *stubInvoices) Get(ctx context.Context, id int) (*models.Invoice, error) {
	for _, inv := range s.created {
		if inv.ID == id {
			return inv, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *stubInvoices) GetByNumber(ctx context.Context, number string) (*models.Invoice, error) {
	return nil, pgx.ErrNoRows
}

func (s *stubInvoices) List(ctx context.Context) ([]*models.Invoice, error) {
	return s.created, nil
}

func (s *stubInvoices) ListByCustomer(ctx context.Context, customerID int) ([]*models.Invoice, error) {
	return nil, nil
}

func (s *stubInvoices) ItemsByInvoice(ctx context.Context, invoiceID int) ([]models.InvoiceItem, error) {
	return nil, nil
}

func newInvoiceHandlerFixture() (*InvoiceHandler, *stubMedicines) {
	meds := &stubMedicines{medicines: map[int]*models.Medicine{
		1: {ID: 1, Name: "Paracetamol 500mg", MRP: 25, Stock: 235, GSTRate: 18},
	}}
	billing := services.NewBillingService(&stubInvoices{medicines: meds}, meds)
	return NewInvoiceHandler(billing, nil), meds
}

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, 1)
	return req.WithContext(ctx)
}

func TestCreateInvoiceHandler(t *testing.T) {
	h, meds := newInvoiceHandlerFixture()

	req := authedRequest(http.MethodPost, "/api/invoices", `{"items":[{"medicine_id":1,"quantity":2}]}`)
	w := httptest.NewRecorder()
	h.CreateInvoice(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var result models.InvoiceWithItems
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 59.0, result.Invoice.Total)
	assert.Equal(t, 233, meds.medicines[1].Stock)
}

func TestCreateInvoiceHandlerBadBody(t *testing.T) {
	h, _ := newInvoiceHandlerFixture()

	req := authedRequest(http.MethodPost, "/api/invoices", `{not json`)
	w := httptest.NewRecorder()
	h.CreateInvoice(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "message")
}

func TestCreateInvoiceHandlerEmptyCart(t *testing.T) {
	h, _ := newInvoiceHandlerFixture()

	req := authedRequest(http.MethodPost, "/api/invoices", `{"items":[]}`)
	w := httptest.NewRecorder()
	h.CreateInvoice(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateInvoiceHandlerInsufficientStock(t *testing.T) {
	h, meds := newInvoiceHandlerFixture()
	meds.medicines[1].Stock = 1

	req := authedRequest(http.MethodPost, "/api/invoices", `{"items":[{"medicine_id":1,"quantity":5}]}`)
	w := httptest.NewRecorder()
	h.CreateInvoice(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 1, meds.medicines[1].Stock)
}

func TestCreateInvoiceHandlerRequiresAuth(t *testing.T) {
	h, _ := newInvoiceHandlerFixture()

	req := httptest.NewRequest(http.MethodPost, "/api/invoices", strings.NewReader(`{"items":[{"medicine_id":1,"quantity":1}]}`))
	w := httptest.NewRecorder()
	h.CreateInvoice(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
