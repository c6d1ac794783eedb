package api

import (
	"fmt"
	"net/http"
	"testing"
)

func TestEmployeeCreateValidation(t *testing.T) {
	h, token := newTestHandler(t)

	w := doRequest(t, h, token, http.MethodPost, "/api/employees",
		`{"employee_id":"EMP001","name":"Ana","position":"Cashier","phone":"555-1"}`)
	expectStatus(t, w, http.StatusBadRequest)

	w = doRequest(t, h, token, http.MethodPost, "/api/employees",
		`{"employee_id":"X001","name":"Ana","position":"Cashier","phone":"555-1","email":"ana@x"}`)
	expectStatus(t, w, http.StatusBadRequest)

	if count := countRows(t, h, "employees"); count != 0 {
		t.Fatalf("expected no employees inserted, got %d", count)
	}
}

func TestEmployeeDuplicateCodeRejected(t *testing.T) {
	h, token := newTestHandler(t)

	body := `{"employee_id":"EMP001","name":"Ana","position":"Cashier","phone":"555-1","email":"ana@x"}`
	w := doRequest(t, h, token, http.MethodPost, "/api/employees", body)
	expectStatus(t, w, http.StatusCreated)

	w = doRequest(t, h, token, http.MethodPost, "/api/employees",
		`{"employee_id":"EMP001","name":"Ben","position":"Cashier","phone":"555-2","email":"ben@x"}`)
	expectStatus(t, w, http.StatusBadRequest)

	if count := countRows(t, h, "employees"); count != 1 {
		t.Fatalf("duplicate insert should leave 1 row, got %d", count)
	}
}

func TestEmployeeLifecycle(t *testing.T) {
	h, token := newTestHandler(t)
	id := insertEmployee(t, h, "EMP007", "Carla", "active")
	path := fmt.Sprintf("/api/employees/%d", id)

	// active --delete--> inactive, row kept
	w := doRequest(t, h, token, http.MethodDelete, path, "")
	expectStatus(t, w, http.StatusOK)
	var status string
	if err := h.db.Get(&status, `SELECT status FROM employees WHERE id = ?`, id); err != nil {
		t.Fatalf("employee row should survive soft delete: %v", err)
	}
	if status != "inactive" {
		t.Fatalf("expected inactive got %q", status)
	}

	// inactive without the flag: no-op, row kept
	w = doRequest(t, h, token, http.MethodDelete, path, "")
	expectStatus(t, w, http.StatusOK)
	if count := countRows(t, h, "employees"); count != 1 {
		t.Fatalf("delete without permanent flag must not remove the row")
	}

	// inactive --delete(permanent=true)--> gone
	w = doRequest(t, h, token, http.MethodDelete, path+"?permanent=true", "")
	expectStatus(t, w, http.StatusOK)
	if count := countRows(t, h, "employees"); count != 0 {
		t.Fatalf("permanent delete should remove the row")
	}

	w = doRequest(t, h, token, http.MethodDelete, path, "")
	expectStatus(t, w, http.StatusNotFound)
}

func TestEmployeeReactivate(t *testing.T) {
	h, token := newTestHandler(t)
	id := insertEmployee(t, h, "EMP010", "Dave", "inactive")

	w := doRequest(t, h, token, http.MethodPut, fmt.Sprintf("/api/employees/%d", id),
		`{"employee_id":"EMP010","name":"Dave","position":"Pharmacist","phone":"555-3","email":"dave@x","status":"active"}`)
	expectStatus(t, w, http.StatusOK)

	var status string
	if err := h.db.Get(&status, `SELECT status FROM employees WHERE id = ?`, id); err != nil {
		t.Fatalf("reload employee: %v", err)
	}
	if status != "active" {
		t.Fatalf("expected active got %q", status)
	}
}
