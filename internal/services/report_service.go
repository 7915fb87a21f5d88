package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"pharma-backend/internal/config"
	"pharma-backend/internal/models"
	"pharma-backend/internal/repositories"
	"pharma-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// expiryReportWindowDays is how far ahead the expiry report looks
const expiryReportWindowDays = 90

// ReportService handles report generation
type ReportService struct {
	Cfg           *config.Config
	MedicineRepo  *repositories.MedicineRepository
	InvoiceRepo   *repositories.InvoiceRepository
	CustomerRepo  *repositories.CustomerRepository
	AnalyticsRepo *repositories.AnalyticsRepository
}

// NewReportService creates a new report service
func NewReportService(
	cfg *config.Config,
	medicineRepo *repositories.MedicineRepository,
	invoiceRepo *repositories.InvoiceRepository,
	customerRepo *repositories.CustomerRepository,
	analyticsRepo *repositories.AnalyticsRepository,
) *ReportService {
	return &ReportService{
		Cfg:           cfg,
		MedicineRepo:  medicineRepo,
		InvoiceRepo:   invoiceRepo,
		CustomerRepo:  customerRepo,
		AnalyticsRepo: analyticsRepo,
	}
}

// ExpiryReport lists medicines expiring within the next 90 days, soonest
// first, annotated with the days left. Already-expired stock shows a
// negative days_left.
func (s *ReportService) ExpiryReport(ctx context.Context) ([]models.ExpiringMedicine, error) {
	cutoff := timeutil.EndOfDay(timeutil.Now().AddDate(0, 0, expiryReportWindowDays))
	medicines, err := s.MedicineRepo.ListExpiringBefore(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	today := timeutil.StartOfDay(timeutil.Now())
	report := make([]models.ExpiringMedicine, 0, len(medicines))
	for _, m := range medicines {
		expiry := timeutil.StartOfDay(m.ExpiryDate)
		daysLeft := int(expiry.Sub(today).Hours() / 24)
		report = append(report, models.ExpiringMedicine{
			Name:        m.Name,
			BatchNumber: m.BatchNumber,
			ExpiryDate:  m.ExpiryDate,
			Stock:       m.Stock,
			DaysLeft:    daysLeft,
		})
	}
	return report, nil
}

// GSTSummary aggregates taxable value and GST collected per IST day for the
// given date range (yyyy-mm-dd, inclusive).
func (s *ReportService) GSTSummary(ctx context.Context, fromStr, toStr string) ([]models.GSTDaySummary, error) {
	from, err := time.ParseInLocation(timeutil.DateLayout, fromStr, timeutil.IST)
	if err != nil {
		return nil, fmt.Errorf("%w: from must be yyyy-mm-dd", ErrInvalidInput)
	}
	to, err := time.ParseInLocation(timeutil.DateLayout, toStr, timeutil.IST)
	if err != nil {
		return nil, fmt.Errorf("%w: to must be yyyy-mm-dd", ErrInvalidInput)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}
	return s.AnalyticsRepo.GSTSummaryBetween(ctx, from, timeutil.EndOfDay(to))
}

// GSTSummaryCSV renders the GST summary as a CSV download
func (s *ReportService) GSTSummaryCSV(ctx context.Context, fromStr, toStr string) ([]byte, error) {
	summaries, err := s.GSTSummary(ctx, fromStr, toStr)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"Date", "Invoices", "Taxable Value", "GST Amount", "Total"})
	for _, day := range summaries {
		w.Write([]string{
			day.Date,
			strconv.Itoa(day.InvoiceCount),
			fmt.Sprintf("%.2f", day.TaxableValue),
			fmt.Sprintf("%.2f", day.GSTAmount),
			fmt.Sprintf("%.2f", day.Total),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GSTSummaryPDF renders the GST summary as a printable PDF
func (s *ReportService) GSTSummaryPDF(ctx context.Context, fromStr, toStr string) ([]byte, error) {
	summaries, err := s.GSTSummary(ctx, fromStr, toStr)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, fmt.Sprintf("%s - GST Summary", s.Cfg.Pharmacy.Name), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("GSTIN: %s", s.Cfg.Pharmacy.GSTIN), "", 1, "C", false, 0, "")
	pdf.CellFormat(190, 6, fmt.Sprintf("Period: %s to %s", fromStr, toStr), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Table header
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(40, 7, "Date", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Invoices", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Taxable Value", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "GST Amount", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Total", "1", 1, "C", true, 0, "")

	// Table rows
	pdf.SetFont("Arial", "", 10)
	var taxable, gst, total float64
	for _, day := range summaries {
		pdf.CellFormat(40, 6, day.Date, "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, strconv.Itoa(day.InvoiceCount), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.2f", day.TaxableValue), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.2f", day.GSTAmount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.2f", day.Total), "1", 1, "R", false, 0, "")
		taxable += day.TaxableValue
		gst += day.GSTAmount
		total += day.Total
	}

	// Totals row
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(70, 7, "Total", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, fmt.Sprintf("%.2f", taxable), "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 7, fmt.Sprintf("%.2f", gst), "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 7, fmt.Sprintf("%.2f", total), "1", 1, "R", true, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// InvoicePDF renders a single invoice as a printable bill
func (s *ReportService) InvoicePDF(ctx context.Context, invoiceID int) ([]byte, error) {
	invoice, err := s.InvoiceRepo.Get(ctx, invoiceID)
	if err != nil {
		return nil, asNotFound(err, "invoice %d", invoiceID)
	}
	items, err := s.InvoiceRepo.ItemsByInvoice(ctx, invoice.ID)
	if err != nil {
		return nil, err
	}

	customerName := "Walk-in Customer"
	if invoice.CustomerID != nil {
		if c, err := s.CustomerRepo.Get(ctx, *invoice.CustomerID); err == nil {
			customerName = c.Name
		}
	}

	// Medicine names for the line items
	names := make(map[int]string, len(items))
	for _, item := range items {
		if _, ok := names[item.MedicineID]; ok {
			continue
		}
		if m, err := s.MedicineRepo.Get(ctx, item.MedicineID); err == nil {
			names[item.MedicineID] = m.Name
		}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, s.Cfg.Pharmacy.Name, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 5, s.Cfg.Pharmacy.Address, "", 1, "C", false, 0, "")
	pdf.CellFormat(190, 5, fmt.Sprintf("GSTIN: %s", s.Cfg.Pharmacy.GSTIN), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Invoice info box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Tax Invoice", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Invoice No: %s", invoice.InvoiceNumber), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Date: %s", timeutil.ToIST(invoice.CreatedAt).Format(timeutil.DisplayLayout)), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(190, 7, fmt.Sprintf("Customer: %s", customerName), "LRB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Items table
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(70, 7, "Medicine", "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Price", "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, 7, "GST %", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "GST Amt", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Total", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range items {
		name := names[item.MedicineID]
		if len(name) > 32 {
			name = name[:29] + "..."
		}
		pdf.CellFormat(70, 6, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, strconv.Itoa(item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%.1f", item.GSTRate), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", item.GSTAmount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", item.TotalPrice), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(3)

	// Totals
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(140, 7, "Subtotal", "1", 0, "R", false, 0, "")
	pdf.CellFormat(50, 7, fmt.Sprintf("Rs. %.2f", invoice.Subtotal), "1", 1, "R", false, 0, "")
	pdf.CellFormat(140, 7, "GST", "1", 0, "R", false, 0, "")
	pdf.CellFormat(50, 7, fmt.Sprintf("Rs. %.2f", invoice.GSTAmount), "1", 1, "R", false, 0, "")
	pdf.SetFillColor(220, 220, 220)
	pdf.CellFormat(140, 8, "Grand Total", "1", 0, "R", true, 0, "")
	pdf.CellFormat(50, 8, fmt.Sprintf("Rs. %.2f", invoice.Total), "1", 1, "R", true, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
