package api

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"medshop/m/domain"
)

type saleItemRequest struct {
	MedicineID int64 `json:"medicine_id"`
	Quantity   int64 `json:"quantity"`
	// Advisory only: what the client displayed. The charged price is
	// re-read from the catalog inside the transaction.
	UnitPrice float64 `json:"unit_price"`
}

type saleRequest struct {
	CustomerName  string            `json:"customer_name"`
	CustomerPhone string            `json:"customer_phone"`
	Items         []saleItemRequest `json:"items"`
	Discount      float64           `json:"discount"`
	PaymentMethod string            `json:"payment_method"`
	EmployeeID    *int64            `json:"employee_id"`
}

var paymentMethods = map[string]bool{
	"cash":    true,
	"card":    true,
	"upi":     true,
	"pending": true,
}

const invoiceRetries = 3

func newInvoiceNumber() string {
	return fmt.Sprintf("INV%d", time.Now().UnixNano()/int64(time.Millisecond))
}

type saleListRow struct {
	domain.Sale
	EmployeeName *string `db:"employee_name" json:"employee_name"`
}

func (h *Handler) listSales(w http.ResponseWriter, r *http.Request) {
	var sales []saleListRow
	err := h.db.Select(&sales, `SELECT s.id, s.invoice_number, s.customer_name, s.customer_phone, s.total_amount,
	        s.discount, s.final_amount, s.payment_method, s.employee_id, s.sale_date, e.name AS employee_name
	        FROM sales s
	        LEFT JOIN employees e ON s.employee_id = e.id
	        ORDER BY s.sale_date DESC, s.id DESC`)
	if err != nil {
		log.Printf("error fetching sales: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch sales")
		return
	}
	if sales == nil {
		sales = []saleListRow{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": sales})
}

type saleItemDetail struct {
	domain.SaleItem
	MedicineName string `db:"medicine_name" json:"medicine_name"`
	Category     string `db:"category" json:"category"`
}

func (h *Handler) getSale(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid sale id")
		return
	}

	var sale saleListRow
	err = h.db.Get(&sale, `SELECT s.id, s.invoice_number, s.customer_name, s.customer_phone, s.total_amount,
	        s.discount, s.final_amount, s.payment_method, s.employee_id, s.sale_date, e.name AS employee_name
	        FROM sales s
	        LEFT JOIN employees e ON s.employee_id = e.id
	        WHERE s.id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Sale not found")
			return
		}
		log.Printf("error fetching sale %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch sale")
		return
	}

	var items []saleItemDetail
	err = h.db.Select(&items, `SELECT si.id, si.sale_id, si.medicine_id, si.quantity, si.unit_price, si.total_price,
	        m.name AS medicine_name, m.category
	        FROM sale_items si
	        JOIN medicines m ON si.medicine_id = m.id
	        WHERE si.sale_id = ?`, id)
	if err != nil {
		log.Printf("error fetching sale %d items: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch sale items")
		return
	}
	if items == nil {
		items = []saleItemDetail{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "sale": sale, "items": items})
}

// createSale records one sale as an all-or-nothing unit: header, line items
// and stock decrements either all commit or none do. The decrement is
// conditional on sufficient stock, so committed stock never goes negative
// even under concurrent sales.
func (h *Handler) createSale(w http.ResponseWriter, r *http.Request) {
	var req saleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if len(req.Items) == 0 {
		respondError(w, http.StatusBadRequest, "At least one item is required")
		return
	}
	for _, item := range req.Items {
		if item.MedicineID <= 0 || item.Quantity <= 0 {
			respondError(w, http.StatusBadRequest, "Each item needs a medicine and a positive quantity")
			return
		}
	}
	if req.Discount < 0 {
		respondError(w, http.StatusBadRequest, "Discount cannot be negative")
		return
	}
	if !paymentMethods[req.PaymentMethod] {
		respondError(w, http.StatusBadRequest, "Payment method must be cash, card, upi or pending")
		return
	}
	customerName := req.CustomerName
	if customerName == "" {
		customerName = "walk-in"
	}

	tx, err := h.db.Beginx()
	if err != nil {
		log.Printf("error starting sale transaction: %v", err)
		respondError(w, http.StatusInternalServerError, "Transaction failed")
		return
	}
	defer tx.Rollback()

	// Authoritative prices come from the catalog, not the client.
	type pricedLine struct {
		medicineID int64
		quantity   int64
		unitPrice  float64
	}
	lines := make([]pricedLine, 0, len(req.Items))
	var totalAmount float64
	for _, item := range req.Items {
		var price float64
		err := tx.Get(&price, `SELECT price FROM medicines WHERE id = ?`, item.MedicineID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				respondError(w, http.StatusBadRequest, fmt.Sprintf("Medicine %d not found", item.MedicineID))
				return
			}
			log.Printf("error reading medicine %d price: %v", item.MedicineID, err)
			respondError(w, http.StatusInternalServerError, "Failed to create sale")
			return
		}
		lines = append(lines, pricedLine{medicineID: item.MedicineID, quantity: item.Quantity, unitPrice: price})
		totalAmount += float64(item.Quantity) * price
	}

	finalAmount := totalAmount - req.Discount
	if finalAmount < 0 {
		finalAmount = 0
	}

	// Invoice numbers are time-based; the UNIQUE column catches the rare
	// same-millisecond collision, in which case we mint a fresh one.
	var saleID int64
	var invoiceNumber string
	for attempt := 0; ; attempt++ {
		invoiceNumber = newInvoiceNumber()
		res, err := tx.Exec(`INSERT INTO sales (invoice_number, customer_name, customer_phone, total_amount, discount, final_amount, payment_method, employee_id)
		        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			invoiceNumber, customerName, nullIfEmpty(req.CustomerPhone), totalAmount, req.Discount, finalAmount, req.PaymentMethod, req.EmployeeID)
		if err == nil {
			saleID, _ = res.LastInsertId()
			break
		}
		if isUniqueViolation(err) && attempt < invoiceRetries {
			time.Sleep(time.Millisecond)
			continue
		}
		if isForeignKeyViolation(err) {
			respondError(w, http.StatusBadRequest, "Invalid employee reference")
			return
		}
		log.Printf("error inserting sale: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to create sale")
		return
	}

	for _, line := range lines {
		totalPrice := float64(line.quantity) * line.unitPrice
		if _, err := tx.Exec(`INSERT INTO sale_items (sale_id, medicine_id, quantity, unit_price, total_price) VALUES (?, ?, ?, ?, ?)`,
			saleID, line.medicineID, line.quantity, line.unitPrice, totalPrice); err != nil {
			log.Printf("error inserting sale item for medicine %d: %v", line.medicineID, err)
			respondError(w, http.StatusInternalServerError, "Failed to add sale items")
			return
		}

		res, err := tx.Exec(`UPDATE medicines SET stock_quantity = stock_quantity - ?, updated_at = CURRENT_TIMESTAMP
		        WHERE id = ? AND stock_quantity >= ?`, line.quantity, line.medicineID, line.quantity)
		if err != nil {
			log.Printf("error updating stock for medicine %d: %v", line.medicineID, err)
			respondError(w, http.StatusInternalServerError, "Failed to update stock")
			return
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Insufficient stock for medicine %d", line.medicineID))
			return
		}
	}

	if err := tx.Commit(); err != nil {
		log.Printf("error committing sale: %v", err)
		respondError(w, http.StatusInternalServerError, "Transaction commit failed")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success":        true,
		"message":        "Sale created successfully",
		"sale_id":        saleID,
		"invoice_number": invoiceNumber,
		"total_amount":   totalAmount,
		"final_amount":   finalAmount,
	})
}
