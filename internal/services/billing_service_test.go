package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"pharma-backend/internal/models"
	"pharma-backend/internal/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMedicineStore struct {
	medicines map[int]*models.Medicine
}

func (f *fakeMedicineStore) Get(ctx context.Context, id int) (*models.Medicine, error) {
	m, ok := f.medicines[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *m
	return &cp, nil
}

// failingMedicineStore simulates a database outage
type failingMedicineStore struct{}

func (failingMedicineStore) Get(ctx context.Context, id int) (*models.Medicine, error) {
	return nil, errors.New("connection refused")
}

// fakeInvoiceStore mimics the transactional repository: it checks stock,
// decrements it, enforces invoice number uniqueness, and rolls the whole
// call back on failure.
type fakeInvoiceStore struct {
	medicines   *fakeMedicineStore
	invoices    []*models.Invoice
	itemsByID   map[int][]models.InvoiceItem
	usedNumbers map[string]bool
	nextID      int
	createCalls int
}

func newFakeInvoiceStore(meds *fakeMedicineStore) *fakeInvoiceStore {
	return &fakeInvoiceStore{
		medicines:   meds,
		itemsByID:   make(map[int][]models.InvoiceItem),
		usedNumbers: make(map[string]bool),
	}
}

func (f *fakeInvoiceStore) CreateWithItems(ctx context.Context, invoice *models.Invoice, items []models.InvoiceItem) error {
	f.createCalls++
	if f.usedNumbers[invoice.InvoiceNumber] {
		return repositories.ErrDuplicateInvoiceNumber
	}
	for _, item := range items {
		m := f.medicines.medicines[item.MedicineID]
		if m.Stock < item.Quantity {
			return repositories.ErrInsufficientStock
		}
	}
	for i := range items {
		f.medicines.medicines[items[i].MedicineID].Stock -= items[i].Quantity
	}

	f.nextID++
	invoice.ID = f.nextID
	invoice.CreatedAt = time.Now()
	for i := range items {
		items[i].InvoiceID = invoice.ID
	}
	f.usedNumbers[invoice.InvoiceNumber] = true
	cp := *invoice
	f.invoices = append(f.invoices, &cp)
	f.itemsByID[invoice.ID] = items
	return nil
}

func (f *fakeInvoiceStore) Get(ctx context.Context, id int) (*models.Invoice, error) {
	for _, inv := range f.invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeInvoiceStore) GetByNumber(ctx context.Context, number string) (*models.Invoice, error) {
	for _, inv := range f.invoices {
		if inv.InvoiceNumber == number {
			return inv, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeInvoiceStore) List(ctx context.Context) ([]*models.Invoice, error) {
	return f.invoices, nil
}

func (f *fakeInvoiceStore) ListByCustomer(ctx context.Context, customerID int) ([]*models.Invoice, error) {
	var out []*models.Invoice
	for _, inv := range f.invoices {
		if inv.CustomerID != nil && *inv.CustomerID == customerID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (f *fakeInvoiceStore) ItemsByInvoice(ctx context.Context, invoiceID int) ([]models.InvoiceItem, error) {
	return f.itemsByID[invoiceID], nil
}

func newBillingFixture() (*BillingService, *fakeMedicineStore, *fakeInvoiceStore) {
	meds := &fakeMedicineStore{medicines: map[int]*models.Medicine{
		1: {ID: 1, Name: "Paracetamol 500mg", MRP: 25, Stock: 235, GSTRate: 18},
		2: {ID: 2, Name: "Azithromycin 500mg", MRP: 90, Stock: 186, GSTRate: 18},
		3: {ID: 3, Name: "Cetirizine 10mg", MRP: 30, Stock: 3, GSTRate: 12},
	}}
	invs := newFakeInvoiceStore(meds)
	return NewBillingService(invs, meds), meds, invs
}

func TestCreateInvoiceComputesTotals(t *testing.T) {
	svc, meds, _ := newBillingFixture()

	result, err := svc.CreateInvoice(context.Background(), &models.CreateInvoiceRequest{
		Items: []models.CartLine{{MedicineID: 1, Quantity: 2}},
	}, 1)
	require.NoError(t, err)

	// 2 x 25 = 50 gross, 18% GST = 9, total 59
	assert.Equal(t, 50.0, result.Invoice.Subtotal)
	assert.Equal(t, 9.0, result.Invoice.GSTAmount)
	assert.Equal(t, 59.0, result.Invoice.Total)
	assert.Equal(t, 233, meds.medicines[1].Stock)

	require.Len(t, result.Items, 1)
	assert.Equal(t, 25.0, result.Items[0].UnitPrice)
	assert.Equal(t, 18.0, result.Items[0].GSTRate)
	assert.Equal(t, 59.0, result.Items[0].TotalPrice)
}

func TestCreateInvoiceMultipleLines(t *testing.T) {
	svc, meds, _ := newBillingFixture()

	result, err := svc.CreateInvoice(context.Background(), &models.CreateInvoiceRequest{
		Items: []models.CartLine{
			{MedicineID: 1, Quantity: 2},
			{MedicineID: 2, Quantity: 1},
		},
	}, 1)
	require.NoError(t, err)

	// lines: 50 + 90 = 140, gst: 9 + 16.2 = 25.2
	assert.Equal(t, 140.0, result.Invoice.Subtotal)
	assert.InDelta(t, 25.2, result.Invoice.GSTAmount, 0.001)
	assert.InDelta(t, 165.2, result.Invoice.Total, 0.001)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, 233, meds.medicines[1].Stock)
	assert.Equal(t, 185, meds.medicines[2].Stock)
}

func TestCreateInvoiceHonorsExplicitUnitPrice(t *testing.T) {
	svc, _, _ := newBillingFixture()

	result, err := svc.CreateInvoice(context.Background(), &models.CreateInvoiceRequest{
		Items: []models.CartLine{{MedicineID: 1, Quantity: 1, UnitPrice: 20}},
	}, 1)
	require.NoError(t, err)

	assert.Equal(t, 20.0, result.Items[0].UnitPrice)
	assert.Equal(t, 20.0, result.Invoice.Subtotal)
	// GST rate still comes from the catalog
	assert.Equal(t, 18.0, result.Items[0].GSTRate)
}

func TestCreateInvoiceRejectsEmptyCart(t *testing.T) {
	svc, _, _ := newBillingFixture()

	_, err := svc.CreateInvoice(context.Background(), &models.CreateInvoiceRequest{}, 1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateInvoiceRejectsNonPositiveQuantity(t *testing.T) {
	svc, _, _ := newBillingFixture()

	for _, qty := range []int{0, -3} {
		_, err := svc.CreateInvoice(context.Background(), &models.CreateInvoiceRequest{
			Items: []models.CartLine{{MedicineID: 1, Quantity: qty}},
		}, 1)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestCreateInvoiceRejectsNonPositiveMedicineID(t *testing.T) {
	svc, _, _ := newBillingFixture()

	for _, id := range []int{0, -1} {
		_, err := svc.CreateInvoice(context.Background(), &models.CreateInvoiceRequest{
			Items: []models.CartLine{{MedicineID: id, Quantity: 1}},
		}, 1)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestCreateInvoiceUnknownMedicine(t *testing.T) {
	svc, _, _ := newBillingFixture()

	_, err := svc.CreateInvoice(context.Background(), &models.CreateInvoiceRequest{
		Items: []models.CartLine{{MedicineID: 999, Quantity: 1}},
	}, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateInvoiceStoreFailureIsNotNotFound(t *testing.T) {
	svc, _, _ := newBillingFixture()
	svc.Medicines = failingMedicineStore{}

	_, err := svc.CreateInvoice(context.Background(), &models.CreateInvoiceRequest{
		Items: []models.CartLine{{MedicineID: 1, Quantity: 1}},
	}, 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestCreateInvoiceInsufficientStock(t *testing.T) {
	svc, meds, _ := newBillingFixture()

	_, err := svc.CreateInvoice(context.Background(), &models.CreateInvoiceRequest{
		Items: []models.CartLine{{MedicineID: 3, Quantity: 10}},
	}, 1)
	assert.ErrorIs(t, err, repositories.ErrInsufficientStock)
	// Nothing was decremented
	assert.Equal(t, 3, meds.medicines[3].Stock)
}

func TestCreateInvoiceRetriesOnDuplicateNumber(t *testing.T) {
	svc, _, invs := newBillingFixture()

	// With only 10000 possible suffixes per day, a thousand checkouts are
	// all but guaranteed to collide at least once. The unique check in the
	// store plus the retry loop must still hand out distinct numbers.
	numbers := make(map[string]bool)
	invs.medicines.medicines[1].Stock = 100000

	for i := 0; i < 1000; i++ {
		result, err := svc.CreateInvoice(context.Background(), &models.CreateInvoiceRequest{
			Items: []models.CartLine{{MedicineID: 1, Quantity: 1}},
		}, 1)
		require.NoError(t, err, "invoice %d", i)
		assert.False(t, numbers[result.Invoice.InvoiceNumber], "number %s repeated", result.Invoice.InvoiceNumber)
		numbers[result.Invoice.InvoiceNumber] = true
	}
	assert.Len(t, numbers, 1000)
}

func TestInvoiceNumberFormat(t *testing.T) {
	svc, _, _ := newBillingFixture()

	result, err := svc.CreateInvoice(context.Background(), &models.CreateInvoiceRequest{
		Items: []models.CartLine{{MedicineID: 1, Quantity: 1}},
	}, 1)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^INV-\d{8}-\d{4}$`), result.Invoice.InvoiceNumber)
}

func TestGetInvoiceWithItems(t *testing.T) {
	svc, _, _ := newBillingFixture()

	created, err := svc.CreateInvoice(context.Background(), &models.CreateInvoiceRequest{
		Items: []models.CartLine{{MedicineID: 1, Quantity: 2}},
	}, 1)
	require.NoError(t, err)

	fetched, err := svc.GetInvoice(context.Background(), created.Invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Invoice.InvoiceNumber, fetched.Invoice.InvoiceNumber)
	assert.Len(t, fetched.Items, 1)

	byNumber, err := svc.GetInvoiceByNumber(context.Background(), created.Invoice.InvoiceNumber)
	require.NoError(t, err)
	assert.Equal(t, created.Invoice.ID, byNumber.Invoice.ID)

	_, err = svc.GetInvoice(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
