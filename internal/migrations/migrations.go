package migrations

import (
	"github.com/jmoiron/sqlx"
)

// Run creates the database schema required for the back-office server.
func Run(db *sqlx.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS admin (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL,
			email TEXT NOT NULL,
			password TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS suppliers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			contact_person TEXT NOT NULL,
			phone TEXT NOT NULL,
			email TEXT,
			address TEXT,
			status TEXT NOT NULL DEFAULT 'active',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS employees (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			employee_id TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			position TEXT NOT NULL,
			phone TEXT NOT NULL,
			email TEXT NOT NULL,
			salary REAL,
			hire_date DATE NOT NULL,
			status TEXT NOT NULL DEFAULT 'active',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS medicines (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			price REAL NOT NULL,
			stock_quantity INTEGER NOT NULL,
			expiry_date DATE NOT NULL,
			batch_number TEXT,
			supplier_id INTEGER REFERENCES suppliers(id),
			status TEXT NOT NULL DEFAULT 'active',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS sales (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			invoice_number TEXT NOT NULL UNIQUE,
			customer_name TEXT NOT NULL DEFAULT 'walk-in',
			customer_phone TEXT,
			total_amount REAL NOT NULL,
			discount REAL NOT NULL DEFAULT 0,
			final_amount REAL NOT NULL,
			payment_method TEXT NOT NULL,
			employee_id INTEGER REFERENCES employees(id),
			sale_date DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS sale_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sale_id INTEGER NOT NULL REFERENCES sales(id),
			medicine_id INTEGER NOT NULL REFERENCES medicines(id),
			quantity INTEGER NOT NULL,
			unit_price REAL NOT NULL,
			total_price REAL NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_medicines_supplier ON medicines(supplier_id);`,
		`CREATE INDEX IF NOT EXISTS idx_sale_items_sale ON sale_items(sale_id);`,
		`CREATE INDEX IF NOT EXISTS idx_sales_date ON sales(sale_date);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
