package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"medshop/m/internal/migrations"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Connect("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { db.Close() })
	if err := migrations.Run(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestEnsureAdminOnlySeedsOnce(t *testing.T) {
	db := newTestDB(t)

	if err := EnsureAdmin(db, "admin", "Admin@Medshop.Local", "secret"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := EnsureAdmin(db, "other", "other@medshop.local", "secret2"); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	var count int64
	if err := db.Get(&count, `SELECT COUNT(*) FROM admin`); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("expected 1 admin row got %d", count)
	}

	var email, password string
	row := db.QueryRow(`SELECT email, password FROM admin`)
	if err := row.Scan(&email, &password); err != nil {
		t.Fatal(err)
	}
	if email != "admin@medshop.local" {
		t.Fatalf("email should be stored lowercased, got %q", email)
	}
	if password == "secret" {
		t.Fatalf("password must not be stored in plain text")
	}
}

func TestLoadMedicinesImportsValidRows(t *testing.T) {
	db := newTestDB(t)

	csvPath := filepath.Join(t.TempDir(), "catalog.csv")
	content := "name,category,price,stock,expiry,batch_number\n" +
		"Paracetamol,Analgesic,2.5,100,2027-06-30,B42\n" +
		"Ibuprofen,Analgesic,3.0,50,2027-03-31,\n" +
		",Missing,1.0,10,2027-01-01,\n" + // no name, skipped
		"FreePill,Analgesic,0,10,2027-01-01,\n" // non-positive price, skipped
	if err := os.WriteFile(csvPath, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	LoadMedicines(db, csvPath)

	var count int64
	if err := db.Get(&count, `SELECT COUNT(*) FROM medicines`); err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Fatalf("expected 2 catalog rows got %d", count)
	}

	// Non-empty table: the import is a no-op on later starts.
	LoadMedicines(db, csvPath)
	if err := db.Get(&count, `SELECT COUNT(*) FROM medicines`); err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Fatalf("reimport should be skipped, got %d rows", count)
	}

	var batch *string
	if err := db.Get(&batch, `SELECT batch_number FROM medicines WHERE name = 'Ibuprofen'`); err != nil {
		t.Fatal(err)
	}
	if batch != nil {
		t.Fatalf("empty batch should be NULL, got %v", *batch)
	}
}
