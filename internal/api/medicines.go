package api

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"medshop/m/domain"
)

type medicineRequest struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Stock       int64   `json:"stock"`
	Expiry      string  `json:"expiry"`
	BatchNumber string  `json:"batch_number"`
	SupplierID  *int64  `json:"supplier_id"`
}

func (req *medicineRequest) validate() string {
	if req.Name == "" || req.Category == "" || req.Expiry == "" {
		return "All required fields must be filled"
	}
	if req.Price <= 0 {
		return "Price must be greater than zero"
	}
	if req.Stock < 0 {
		return "Stock cannot be negative"
	}
	if _, err := time.Parse("2006-01-02", req.Expiry); err != nil {
		return "Expiry must be in YYYY-MM-DD format"
	}
	return ""
}

func (h *Handler) listMedicines(w http.ResponseWriter, r *http.Request) {
	var medicines []domain.Medicine
	err := h.db.Select(&medicines, `SELECT id, name, category, price, stock_quantity, expiry_date, batch_number, supplier_id, status, created_at, updated_at
	        FROM medicines ORDER BY name`)
	if err != nil {
		log.Printf("error fetching medicines: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch medicines")
		return
	}
	if medicines == nil {
		medicines = []domain.Medicine{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": medicines})
}

func (h *Handler) createMedicine(w http.ResponseWriter, r *http.Request) {
	var req medicineRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	res, err := h.db.Exec(`INSERT INTO medicines (name, category, price, stock_quantity, expiry_date, batch_number, supplier_id)
	        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		req.Name, req.Category, req.Price, req.Stock, req.Expiry, nullIfEmpty(req.BatchNumber), req.SupplierID)
	if err != nil {
		if isForeignKeyViolation(err) {
			respondError(w, http.StatusBadRequest, "Invalid supplier reference")
			return
		}
		log.Printf("error adding medicine: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to add medicine")
		return
	}
	id, _ := res.LastInsertId()
	respondJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "message": "Medicine added successfully", "id": id})
}

func (h *Handler) updateMedicine(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid medicine id")
		return
	}
	var req medicineRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	res, err := h.db.Exec(`UPDATE medicines SET name = ?, category = ?, price = ?, stock_quantity = ?, expiry_date = ?,
	        batch_number = ?, supplier_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		req.Name, req.Category, req.Price, req.Stock, req.Expiry, nullIfEmpty(req.BatchNumber), req.SupplierID, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			respondError(w, http.StatusBadRequest, "Invalid supplier reference")
			return
		}
		log.Printf("error updating medicine %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Failed to update medicine")
		return
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		respondError(w, http.StatusNotFound, "Medicine not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Medicine updated successfully"})
}

func (h *Handler) deleteMedicine(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid medicine id")
		return
	}
	res, err := h.db.Exec(`DELETE FROM medicines WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			respondError(w, http.StatusBadRequest, "Cannot delete medicine with recorded sales")
			return
		}
		log.Printf("error deleting medicine %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Failed to delete medicine")
		return
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		respondError(w, http.StatusNotFound, "Medicine not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Medicine deleted successfully"})
}

func (h *Handler) lowStockMedicines(w http.ResponseWriter, r *http.Request) {
	threshold, _ := strconv.ParseInt(r.URL.Query().Get("threshold"), 10, 64)
	if threshold <= 0 {
		threshold = 10
	}
	var medicines []domain.Medicine
	err := h.db.Select(&medicines, `SELECT id, name, category, price, stock_quantity, expiry_date, batch_number, supplier_id, status, created_at, updated_at
	        FROM medicines WHERE stock_quantity <= ? ORDER BY stock_quantity ASC`, threshold)
	if err != nil {
		log.Printf("error fetching low stock medicines: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch low stock medicines")
		return
	}
	if medicines == nil {
		medicines = []domain.Medicine{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": medicines})
}

func (h *Handler) expiringMedicines(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	if days <= 0 {
		days = 30
	}
	today := time.Now().UTC().Format("2006-01-02")
	cutoff := time.Now().UTC().AddDate(0, 0, days).Format("2006-01-02")

	var medicines []domain.Medicine
	err := h.db.Select(&medicines, `SELECT id, name, category, price, stock_quantity, expiry_date, batch_number, supplier_id, status, created_at, updated_at
	        FROM medicines WHERE expiry_date <= ? AND expiry_date >= ? ORDER BY expiry_date ASC`, cutoff, today)
	if err != nil {
		log.Printf("error fetching expiring medicines: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch expiring medicines")
		return
	}
	if medicines == nil {
		medicines = []domain.Medicine{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": medicines})
}
