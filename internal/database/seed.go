package database

import (
	"context"
	"log"
	"time"

	"pharma-backend/internal/auth"
	"pharma-backend/internal/timeutil"

	"github.com/jackc/pgx/v5/pgxpool"
)

type seedMedicine struct {
	name        string
	description string
	categoryID  int
	form        string
	batchNumber string
	expiry      string
	mrp         float64
	stock       int
	threshold   int
	gstRate     float64
}

// Seed fills an empty database with a default admin account and demo data
// for development. Every block checks for existing rows first, so running it
// on a populated database is a no-op.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	var adminCount int
	err := pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE username = 'admin'`).Scan(&adminCount)
	if err != nil {
		return err
	}
	if adminCount == 0 {
		hash, err := auth.HashPassword("admin123")
		if err != nil {
			return err
		}
		_, err = pool.Exec(ctx,
			`INSERT INTO users(username, name, password_hash, role)
			 VALUES('admin', 'Administrator', $1, 'admin')`, hash)
		if err != nil {
			return err
		}
		log.Println("Seeded default admin user")
	}

	var categoryCount int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&categoryCount); err != nil {
		return err
	}
	if categoryCount == 0 {
		names := []string{
			"Pain Relief",
			"Antibiotics",
			"Antiallergic",
			"Antidiabetic",
			"Supplements",
			"Cold & Cough",
		}
		for _, name := range names {
			if _, err := pool.Exec(ctx, `INSERT INTO categories(name) VALUES($1)`, name); err != nil {
				return err
			}
		}
		log.Printf("Seeded %d categories", len(names))
	}

	var medicineCount int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM medicines`).Scan(&medicineCount); err != nil {
		return err
	}
	if medicineCount == 0 {
		medicines := []seedMedicine{
			{"Paracetamol 500mg", "Tablet (Strip of 10)", 1, "tablet", "B2023056", "2027-12-31", 25, 235, 20, 18},
			{"Azithromycin 500mg", "Tablet (Strip of 6)", 2, "tablet", "B2023042", "2027-10-31", 90, 186, 20, 18},
			{"Cetirizine 10mg", "Tablet (Strip of 10)", 3, "tablet", "B2023089", "2027-11-30", 30, 3, 10, 18},
			{"Amoxicillin 250mg", "Capsule (Strip of 10)", 2, "capsule", "B2023016", "2026-01-31", 80, 12, 15, 18},
			{"Vitamin C 500mg", "Tablet (Strip of 10)", 5, "tablet", "B2023099", "2027-12-31", 45, 150, 20, 18},
			{"Cetirizine Syrup", "Syrup (100ml)", 3, "syrup", "B2023077", "2026-08-31", 65, 8, 10, 18},
		}
		for _, m := range medicines {
			expiry, err := time.ParseInLocation(timeutil.DateLayout, m.expiry, timeutil.IST)
			if err != nil {
				return err
			}
			_, err = pool.Exec(ctx,
				`INSERT INTO medicines(name, description, category_id, form, batch_number,
				    expiry_date, mrp, stock, low_stock_threshold, gst_rate)
				 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
				m.name, m.description, m.categoryID, m.form, m.batchNumber,
				expiry, m.mrp, m.stock, m.threshold, m.gstRate)
			if err != nil {
				return err
			}
		}
		log.Printf("Seeded %d medicines", len(medicines))
	}

	var customerCount int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&customerCount); err != nil {
		return err
	}
	if customerCount == 0 {
		customers := [][4]string{
			{"John Doe", "9876543210", "john@example.com", "123 Main St, City"},
			{"Jane Smith", "9876543211", "jane@example.com", "456 Park Ave, City"},
			{"Mike Johnson", "9876543212", "mike@example.com", "789 Oak St, City"},
		}
		for _, c := range customers {
			_, err := pool.Exec(ctx,
				`INSERT INTO customers(name, phone, email, address) VALUES($1, $2, $3, $4)`,
				c[0], c[1], c[2], c[3])
			if err != nil {
				return err
			}
		}
		log.Printf("Seeded %d customers", len(customers))
	}

	var doctorCount int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM doctors`).Scan(&doctorCount); err != nil {
		return err
	}
	if doctorCount == 0 {
		doctors := [][3]string{
			{"Dr. Sarah Wilson", "General Physician", "9876543213"},
			{"Dr. Robert Brown", "Cardiologist", "9876543214"},
			{"Dr. Emily Davis", "Pediatrician", "9876543215"},
		}
		for _, d := range doctors {
			_, err := pool.Exec(ctx,
				`INSERT INTO doctors(name, specialization, phone) VALUES($1, $2, $3)`,
				d[0], d[1], d[2])
			if err != nil {
				return err
			}
		}
		log.Printf("Seeded %d doctors", len(doctors))
	}

	return nil
}
