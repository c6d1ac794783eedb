package api

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"medshop/m/internal/migrations"
)

// newTestHandler opens a unique in-memory database per test, runs the real
// migrations against it and returns a handler plus a valid bearer token.
func newTestHandler(t *testing.T) (*Handler, string) {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared&_pragma=foreign_keys(1)"
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { db.Close() })

	if err := migrations.Run(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	h := New(db, "test_secret")
	token, err := h.generateToken(1, "admin")
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return h, token
}

func doRequest(t *testing.T, h *Handler, token, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.Router().ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return payload
}

func insertMedicine(t *testing.T, h *Handler, name string, price float64, stock int64, expiry string) int64 {
	t.Helper()
	res, err := h.db.Exec(`INSERT INTO medicines (name, category, price, stock_quantity, expiry_date) VALUES (?, 'General', ?, ?, ?)`,
		name, price, stock, expiry)
	if err != nil {
		t.Fatalf("insert medicine: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

func insertEmployee(t *testing.T, h *Handler, code, name, status string) int64 {
	t.Helper()
	res, err := h.db.Exec(`INSERT INTO employees (employee_id, name, position, phone, email, hire_date, status)
	        VALUES (?, ?, 'Pharmacist', '555-0100', ?, '2024-01-15', ?)`,
		code, name, strings.ToLower(name)+"@medshop.local", status)
	if err != nil {
		t.Fatalf("insert employee: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

func insertSupplier(t *testing.T, h *Handler, name string) int64 {
	t.Helper()
	res, err := h.db.Exec(`INSERT INTO suppliers (name, contact_person, phone) VALUES (?, 'Contact', '555-0200')`, name)
	if err != nil {
		t.Fatalf("insert supplier: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

func countRows(t *testing.T, h *Handler, table string) int64 {
	t.Helper()
	var count int64
	if err := h.db.Get(&count, `SELECT COUNT(*) FROM `+table); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return count
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("expected status %d got %d: %s", want, w.Code, w.Body.String())
	}
}

func expectSuccess(t *testing.T, payload map[string]interface{}, want bool) {
	t.Helper()
	got, _ := payload["success"].(bool)
	if got != want {
		t.Fatalf("expected success=%v got %v", want, payload)
	}
}
