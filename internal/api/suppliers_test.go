package api

import (
	"fmt"
	"net/http"
	"testing"
)

func TestSupplierCreateValidation(t *testing.T) {
	h, token := newTestHandler(t)

	w := doRequest(t, h, token, http.MethodPost, "/api/suppliers", `{"name":"Acme","contact_person":"Jo"}`)
	expectStatus(t, w, http.StatusBadRequest)

	w = doRequest(t, h, token, http.MethodPost, "/api/suppliers",
		`{"name":"Acme","contact_person":"Jo","phone":"555-9"}`)
	expectStatus(t, w, http.StatusCreated)
}

func TestSupplierDeactivate(t *testing.T) {
	h, token := newTestHandler(t)
	id := insertSupplier(t, h, "Acme")

	w := doRequest(t, h, token, http.MethodPut, fmt.Sprintf("/api/suppliers/%d/deactivate", id), "")
	expectStatus(t, w, http.StatusOK)

	var status string
	if err := h.db.Get(&status, `SELECT status FROM suppliers WHERE id = ?`, id); err != nil {
		t.Fatalf("reload supplier: %v", err)
	}
	if status != "inactive" {
		t.Fatalf("expected inactive got %q", status)
	}

	w = doRequest(t, h, token, http.MethodPut, "/api/suppliers/999/deactivate", "")
	expectStatus(t, w, http.StatusNotFound)
}

func TestSupplierDeleteBlockedByMedicines(t *testing.T) {
	h, token := newTestHandler(t)
	supplierID := insertSupplier(t, h, "Acme")
	medID := insertMedicine(t, h, "Aspirin", 2, 50, futureDate(200))
	if _, err := h.db.Exec(`UPDATE medicines SET supplier_id = ? WHERE id = ?`, supplierID, medID); err != nil {
		t.Fatalf("link medicine to supplier: %v", err)
	}

	w := doRequest(t, h, token, http.MethodDelete, fmt.Sprintf("/api/suppliers/%d", supplierID), "")
	expectStatus(t, w, http.StatusBadRequest)
	payload := decodeBody(t, w)
	expectSuccess(t, payload, false)
	if count, _ := payload["medicine_count"].(float64); count != 1 {
		t.Fatalf("expected medicine_count 1 got %v", payload)
	}
	if rows := countRows(t, h, "suppliers"); rows != 1 {
		t.Fatalf("blocked delete must keep the supplier row")
	}

	// Unlink and retry.
	if _, err := h.db.Exec(`UPDATE medicines SET supplier_id = NULL WHERE id = ?`, medID); err != nil {
		t.Fatalf("unlink medicine: %v", err)
	}
	w = doRequest(t, h, token, http.MethodDelete, fmt.Sprintf("/api/suppliers/%d", supplierID), "")
	expectStatus(t, w, http.StatusOK)
	if rows := countRows(t, h, "suppliers"); rows != 0 {
		t.Fatalf("expected supplier removed")
	}
}

func TestSupplierUpdate(t *testing.T) {
	h, token := newTestHandler(t)
	id := insertSupplier(t, h, "Acme")

	w := doRequest(t, h, token, http.MethodPut, fmt.Sprintf("/api/suppliers/%d", id),
		`{"name":"Acme Pharma","contact_person":"Jo","phone":"555-9","email":"jo@acme.example","status":"inactive"}`)
	expectStatus(t, w, http.StatusOK)

	var name, status string
	row := h.db.QueryRow(`SELECT name, status FROM suppliers WHERE id = ?`, id)
	if err := row.Scan(&name, &status); err != nil {
		t.Fatalf("reload supplier: %v", err)
	}
	if name != "Acme Pharma" || status != "inactive" {
		t.Fatalf("update not applied: %s/%s", name, status)
	}
}
