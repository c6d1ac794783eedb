package seed

import (
	"encoding/csv"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
)

// LoadMedicines ingests a catalog CSV into the medicines table. The file is
// expected to have a header row followed by
// name,category,price,stock,expiry,batch_number columns. Loading is skipped
// when the table already has rows, so the import is safe to run on every
// start.
func LoadMedicines(db *sqlx.DB, csvPath string) {
	var count int64
	if err := db.Get(&count, `SELECT COUNT(*) FROM medicines`); err != nil {
		log.Printf("unable to inspect medicines table: %v", err)
		return
	}
	if count > 0 {
		return
	}

	file, err := os.Open(csvPath)
	if err != nil {
		log.Printf("unable to load medicine catalog %s: %v", csvPath, err)
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Skip header
	if _, err := reader.Read(); err != nil {
		log.Printf("unable to read medicine header: %v", err)
		return
	}

	tx, err := db.Beginx()
	if err != nil {
		log.Printf("unable to start medicine transaction: %v", err)
		return
	}
	stmt, err := tx.Preparex(`INSERT INTO medicines (name, category, price, stock_quantity, expiry_date, batch_number) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		log.Printf("unable to prepare medicine insert: %v", err)
		_ = tx.Rollback()
		return
	}
	defer stmt.Close()

	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("unable to read medicine row: %v", err)
			continue
		}
		if len(record) < 5 {
			continue
		}
		name := strings.TrimSpace(record[0])
		category := strings.TrimSpace(record[1])
		price, _ := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
		stock, _ := strconv.ParseInt(strings.TrimSpace(record[3]), 10, 64)
		expiry := strings.TrimSpace(record[4])

		var batch *string
		if len(record) > 5 {
			if b := strings.TrimSpace(record[5]); b != "" {
				batch = &b
			}
		}

		if name == "" || category == "" || price <= 0 || stock < 0 || expiry == "" {
			continue
		}

		if _, err := stmt.Exec(name, category, price, stock, expiry, batch); err != nil {
			log.Printf("unable to insert medicine %s: %v", name, err)
		} else {
			rows++
		}
	}

	if err := tx.Commit(); err != nil {
		log.Printf("unable to commit medicine seed: %v", err)
	} else {
		log.Printf("seeded medicine catalog with %d rows", rows)
	}
}
