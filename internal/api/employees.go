package api

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"regexp"
	"time"

	"medshop/m/domain"
)

var employeeCodePattern = regexp.MustCompile(`^EMP\d{3,}$`)

type employeeRequest struct {
	EmployeeID string   `json:"employee_id"`
	Name       string   `json:"name"`
	Position   string   `json:"position"`
	Phone      string   `json:"phone"`
	Email      string   `json:"email"`
	Salary     *float64 `json:"salary"`
	HireDate   string   `json:"hire_date"`
	Status     string   `json:"status"`
}

func (req *employeeRequest) validate() string {
	if req.EmployeeID == "" || req.Name == "" || req.Position == "" || req.Phone == "" || req.Email == "" {
		return "All required fields must be filled"
	}
	if !employeeCodePattern.MatchString(req.EmployeeID) {
		return "Employee ID must look like EMP001"
	}
	if req.Salary != nil && *req.Salary < 0 {
		return "Salary cannot be negative"
	}
	if req.HireDate != "" {
		if _, err := time.Parse("2006-01-02", req.HireDate); err != nil {
			return "Hire date must be in YYYY-MM-DD format"
		}
	}
	return ""
}

func (h *Handler) listEmployees(w http.ResponseWriter, r *http.Request) {
	var employees []domain.Employee
	err := h.db.Select(&employees, `SELECT id, employee_id, name, position, phone, email, salary, hire_date, status, created_at, updated_at
	        FROM employees ORDER BY name`)
	if err != nil {
		log.Printf("error fetching employees: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch employees")
		return
	}
	if employees == nil {
		employees = []domain.Employee{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": employees})
}

func (h *Handler) createEmployee(w http.ResponseWriter, r *http.Request) {
	var req employeeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	hireDate := req.HireDate
	if hireDate == "" {
		hireDate = time.Now().UTC().Format("2006-01-02")
	}

	res, err := h.db.Exec(`INSERT INTO employees (employee_id, name, position, phone, email, salary, hire_date)
	        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		req.EmployeeID, req.Name, req.Position, req.Phone, req.Email, req.Salary, hireDate)
	if err != nil {
		if isUniqueViolation(err) {
			respondError(w, http.StatusBadRequest, "Employee ID already exists")
			return
		}
		log.Printf("error adding employee: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to add employee")
		return
	}
	id, _ := res.LastInsertId()
	respondJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "message": "Employee added successfully", "id": id})
}

func (h *Handler) updateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid employee id")
		return
	}
	var req employeeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	status := req.Status
	if status == "" {
		status = "active"
	}
	if status != "active" && status != "inactive" {
		respondError(w, http.StatusBadRequest, "Status must be active or inactive")
		return
	}

	res, err := h.db.Exec(`UPDATE employees SET employee_id = ?, name = ?, position = ?, phone = ?, email = ?,
	        salary = ?, status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		req.EmployeeID, req.Name, req.Position, req.Phone, req.Email, req.Salary, status, id)
	if err != nil {
		if isUniqueViolation(err) {
			respondError(w, http.StatusBadRequest, "Employee ID already exists")
			return
		}
		log.Printf("error updating employee %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Failed to update employee")
		return
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		respondError(w, http.StatusNotFound, "Employee not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Employee updated successfully"})
}

// deleteEmployee walks the lifecycle state machine: an active employee is
// deactivated, an inactive one is removed only when the caller explicitly
// asks for permanent deletion.
func (h *Handler) deleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid employee id")
		return
	}
	permanent := r.URL.Query().Get("permanent") == "true"

	var status string
	if err := h.db.Get(&status, `SELECT status FROM employees WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Employee not found")
			return
		}
		log.Printf("error checking employee %d status: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Failed to check employee status")
		return
	}

	if status == "active" {
		if _, err := h.db.Exec(`UPDATE employees SET status = 'inactive', updated_at = CURRENT_TIMESTAMP WHERE id = ?`, id); err != nil {
			log.Printf("error deactivating employee %d: %v", id, err)
			respondError(w, http.StatusInternalServerError, "Failed to deactivate employee")
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Employee deactivated successfully"})
		return
	}

	if !permanent {
		// Already inactive; removing the row requires the explicit flag.
		respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Employee is already inactive"})
		return
	}

	if _, err := h.db.Exec(`DELETE FROM employees WHERE id = ?`, id); err != nil {
		if isForeignKeyViolation(err) {
			respondError(w, http.StatusBadRequest, "Cannot delete employee with recorded sales")
			return
		}
		log.Printf("error permanently deleting employee %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Failed to permanently delete employee")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Employee permanently deleted successfully"})
}
