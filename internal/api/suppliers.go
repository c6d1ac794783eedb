package api

import (
	"fmt"
	"log"
	"net/http"

	"medshop/m/domain"
)

type supplierRequest struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	Status        string `json:"status"`
}

func (h *Handler) listSuppliers(w http.ResponseWriter, r *http.Request) {
	var suppliers []domain.Supplier
	err := h.db.Select(&suppliers, `SELECT id, name, contact_person, phone, email, address, status, created_at, updated_at
	        FROM suppliers ORDER BY name`)
	if err != nil {
		log.Printf("error fetching suppliers: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch suppliers")
		return
	}
	if suppliers == nil {
		suppliers = []domain.Supplier{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": suppliers})
}

func (h *Handler) createSupplier(w http.ResponseWriter, r *http.Request) {
	var req supplierRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" || req.ContactPerson == "" || req.Phone == "" {
		respondError(w, http.StatusBadRequest, "Name, contact person, and phone are required")
		return
	}

	res, err := h.db.Exec(`INSERT INTO suppliers (name, contact_person, phone, email, address) VALUES (?, ?, ?, ?, ?)`,
		req.Name, req.ContactPerson, req.Phone, nullIfEmpty(req.Email), nullIfEmpty(req.Address))
	if err != nil {
		log.Printf("error adding supplier: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to add supplier")
		return
	}
	id, _ := res.LastInsertId()
	respondJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "message": "Supplier added successfully", "id": id})
}

func (h *Handler) updateSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid supplier id")
		return
	}
	var req supplierRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" || req.ContactPerson == "" || req.Phone == "" {
		respondError(w, http.StatusBadRequest, "Name, contact person, and phone are required")
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

	res, err := h.db.Exec(`UPDATE suppliers SET name = ?, contact_person = ?, phone = ?, email = ?, address = ?,
	        status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		req.Name, req.ContactPerson, req.Phone, nullIfEmpty(req.Email), nullIfEmpty(req.Address), status, id)
	if err != nil {
		log.Printf("error updating supplier %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Failed to update supplier")
		return
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		respondError(w, http.StatusNotFound, "Supplier not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Supplier updated successfully"})
}

func (h *Handler) deactivateSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid supplier id")
		return
	}
	res, err := h.db.Exec(`UPDATE suppliers SET status = 'inactive', updated_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	if err != nil {
		log.Printf("error deactivating supplier %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Failed to deactivate supplier")
		return
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		respondError(w, http.StatusNotFound, "Supplier not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Supplier deactivated successfully"})
}

// deleteSupplier refuses to remove a supplier that medicines still reference;
// the caller has to reassign or delete those first.
func (h *Handler) deleteSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid supplier id")
		return
	}

	var medicineCount int64
	if err := h.db.Get(&medicineCount, `SELECT COUNT(*) FROM medicines WHERE supplier_id = ?`, id); err != nil {
		log.Printf("error checking supplier %d dependencies: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Failed to check supplier dependencies")
		return
	}
	if medicineCount > 0 {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success":        false,
			"message":        fmt.Sprintf("Cannot delete supplier. %d medicines are associated with this supplier. Please reassign or delete those medicines first.", medicineCount),
			"medicine_count": medicineCount,
		})
		return
	}

	res, err := h.db.Exec(`DELETE FROM suppliers WHERE id = ?`, id)
	if err != nil {
		log.Printf("error deleting supplier %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Failed to delete supplier")
		return
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		respondError(w, http.StatusNotFound, "Supplier not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Supplier permanently deleted successfully"})
}
