package models

// TopSellingMedicine aggregates sold units and revenue per medicine
type TopSellingMedicine struct {
	MedicineID int     `json:"id"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	SoldUnits  int     `json:"sold_units"`
	Revenue    float64 `json:"revenue"`
}

// DailySale is one gap-filled entry of the daily sales series
type DailySale struct {
	Date  string  `json:"date"` // yyyy-mm-dd (IST)
	Sales float64 `json:"sales"`
}

// GSTDaySummary aggregates taxable value and collected GST for one day
type GSTDaySummary struct {
	Date         string  `json:"date"`
	InvoiceCount int     `json:"invoice_count"`
	TaxableValue float64 `json:"taxable_value"`
	GSTAmount    float64 `json:"gst_amount"`
	Total        float64 `json:"total"`
}

// SearchResult groups matches across the three searchable entities
type SearchResult struct {
	Medicines []*Medicine `json:"medicines"`
	Customers []*Customer `json:"customers"`
	Doctors   []*Doctor   `json:"doctors"`
}
