package repositories

import (
	"context"
	"errors"

	"pharma-backend/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrInsufficientStock means a cart line asked for more units than the
	// medicine has left. The whole invoice transaction is rolled back.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrDuplicateInvoiceNumber means the random invoice number suffix
	// collided with an existing invoice. Callers retry with a fresh number.
	ErrDuplicateInvoiceNumber = errors.New("duplicate invoice number")
)

type InvoiceRepository struct {
	DB *pgxpool.Pool
}

func NewInvoiceRepository(db *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{DB: db}
}

// CreateWithItems persists the invoice header, its line items, and the
// matching stock decrements in one transaction. The decrement is conditional
// (stock >= quantity) so two concurrent checkouts cannot oversell; any
// failure rolls back every row.
func (r *InvoiceRepository) CreateWithItems(ctx context.Context, invoice *models.Invoice, items []models.InvoiceItem) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO invoices(invoice_number, customer_id, doctor_id, subtotal, gst_amount, total, user_id)
		 VALUES($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		invoice.InvoiceNumber, invoice.CustomerID, invoice.DoctorID,
		invoice.Subtotal, invoice.GSTAmount, invoice.Total, invoice.UserID,
	).Scan(&invoice.ID, &invoice.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateInvoiceNumber
		}
		return err
	}

	for i := range items {
		item := &items[i]
		item.InvoiceID = invoice.ID

		tag, err := tx.Exec(ctx,
			`UPDATE medicines SET stock = stock - $1 WHERE id = $2 AND stock >= $1`,
			item.Quantity, item.MedicineID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrInsufficientStock
		}

		err = tx.QueryRow(ctx,
			`INSERT INTO invoice_items(invoice_id, medicine_id, quantity, unit_price, gst_rate, gst_amount, total_price)
			 VALUES($1, $2, $3, $4, $5, $6, $7)
			 RETURNING id`,
			item.InvoiceID, item.MedicineID, item.Quantity, item.UnitPrice,
			item.GSTRate, item.GSTAmount, item.TotalPrice,
		).Scan(&item.ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *InvoiceRepository) Get(ctx context.Context, id int) (*models.Invoice, error) {
	return r.scanOne(r.DB.QueryRow(ctx,
		`SELECT id, invoice_number, customer_id, doctor_id, subtotal, gst_amount, total, user_id, created_at
		 FROM invoices WHERE id = $1`, id))
}

func (r *InvoiceRepository) GetByNumber(ctx context.Context, invoiceNumber string) (*models.Invoice, error) {
	return r.scanOne(r.DB.QueryRow(ctx,
		`SELECT id, invoice_number, customer_id, doctor_id, subtotal, gst_amount, total, user_id, created_at
		 FROM invoices WHERE invoice_number = $1`, invoiceNumber))
}

// List returns all invoices, newest first
func (r *InvoiceRepository) List(ctx context.Context) ([]*models.Invoice, error) {
	return r.queryInvoices(ctx,
		`SELECT id, invoice_number, customer_id, doctor_id, subtotal, gst_amount, total, user_id, created_at
		 FROM invoices ORDER BY created_at DESC`)
}

// ListByCustomer returns all invoices for a customer, newest first
func (r *InvoiceRepository) ListByCustomer(ctx context.Context, customerID int) ([]*models.Invoice, error) {
	return r.queryInvoices(ctx,
		`SELECT id, invoice_number, customer_id, doctor_id, subtotal, gst_amount, total, user_id, created_at
		 FROM invoices WHERE customer_id = $1 ORDER BY created_at DESC`, customerID)
}

// ItemsByInvoice returns the line items of an invoice in insertion order
func (r *InvoiceRepository) ItemsByInvoice(ctx context.Context, invoiceID int) ([]models.InvoiceItem, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, invoice_id, medicine_id, quantity, unit_price, gst_rate, gst_amount, total_price
		 FROM invoice_items WHERE invoice_id = $1 ORDER BY id`, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.InvoiceItem
	for rows.Next() {
		var item models.InvoiceItem
		err := rows.Scan(&item.ID, &item.InvoiceID, &item.MedicineID, &item.Quantity,
			&item.UnitPrice, &item.GSTRate, &item.GSTAmount, &item.TotalPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *InvoiceRepository) scanOne(row interface{ Scan(...any) error }) (*models.Invoice, error) {
	var inv models.Invoice
	err := row.Scan(&inv.ID, &inv.InvoiceNumber, &inv.CustomerID, &inv.DoctorID,
		&inv.Subtotal, &inv.GSTAmount, &inv.Total, &inv.UserID, &inv.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InvoiceRepository) queryInvoices(ctx context.Context, sql string, args ...any) ([]*models.Invoice, error) {
	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		var inv models.Invoice
		err := rows.Scan(&inv.ID, &inv.InvoiceNumber, &inv.CustomerID, &inv.DoctorID,
			&inv.Subtotal, &inv.GSTAmount, &inv.Total, &inv.UserID, &inv.CreatedAt)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, &inv)
	}
	return invoices, rows.Err()
}
