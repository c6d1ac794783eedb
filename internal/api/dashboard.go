package api

import (
	"fmt"
	"log"
	"math"
	"net/http"
	"time"
)

func (h *Handler) dashboardStats(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	today := now.Format("2006-01-02")
	expiryCutoff := now.AddDate(0, 0, 30).Format("2006-01-02")

	// Five independent snapshots; a failed read logs and reports zero so
	// one bad aggregate doesn't blank the whole dashboard.
	queries := []struct {
		key  string
		sql  string
		args []interface{}
	}{
		{"todayRevenue", `SELECT COALESCE(SUM(final_amount), 0) FROM sales WHERE DATE(sale_date) = ?`, []interface{}{today}},
		{"totalInventoryValue", `SELECT COALESCE(SUM(price * stock_quantity), 0) FROM medicines WHERE status = 'active'`, nil},
		{"pendingOrders", `SELECT COUNT(*) FROM sales WHERE payment_method = 'pending'`, nil},
		{"lowStockCount", `SELECT COUNT(*) FROM medicines WHERE stock_quantity <= 10 AND status = 'active'`, nil},
		{"expiringCount", `SELECT COUNT(*) FROM medicines WHERE expiry_date <= ? AND expiry_date >= ? AND status = 'active'`, []interface{}{expiryCutoff, today}},
	}

	stats := make(map[string]float64, len(queries))
	for _, q := range queries {
		var value float64
		if err := h.db.Get(&value, q.sql, q.args...); err != nil {
			log.Printf("error fetching %s: %v", q.key, err)
			value = 0
		}
		stats[q.key] = value
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "stats": stats})
}

type chartPoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

// salesChart returns revenue per day for the last 7 calendar days, oldest
// first, with zero entries for days that had no sales.
func (h *Handler) salesChart(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	start := now.AddDate(0, 0, -6).Format("2006-01-02")

	type revenueRow struct {
		Date    string  `db:"date"`
		Revenue float64 `db:"revenue"`
	}
	var rows []revenueRow
	err := h.db.Select(&rows, `SELECT DATE(sale_date) AS date, COALESCE(SUM(final_amount), 0) AS revenue
	        FROM sales
	        WHERE DATE(sale_date) >= ?
	        GROUP BY DATE(sale_date)
	        ORDER BY date`, start)
	if err != nil {
		log.Printf("error fetching sales chart data: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch chart data")
		return
	}

	byDate := make(map[string]float64, len(rows))
	for _, row := range rows {
		byDate[row.Date] = row.Revenue
	}

	result := make([]chartPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format("2006-01-02")
		result = append(result, chartPoint{Date: date, Revenue: byDate[date]})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": result})
}

type alert struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
}

func (h *Handler) dashboardAlerts(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	today := now.Format("2006-01-02")
	cutoff := now.AddDate(0, 0, 30).Format("2006-01-02")

	type lowStockRow struct {
		Name  string `db:"name"`
		Stock int64  `db:"stock_quantity"`
	}
	var lowStock []lowStockRow
	err := h.db.Select(&lowStock, `SELECT name, stock_quantity FROM medicines
	        WHERE stock_quantity <= 10 AND status = 'active'
	        ORDER BY stock_quantity ASC LIMIT 5`)
	if err != nil {
		log.Printf("error fetching low stock alerts: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch alerts")
		return
	}

	type expiringRow struct {
		Name   string `db:"name"`
		Expiry string `db:"expiry_date"`
	}
	var expiring []expiringRow
	err = h.db.Select(&expiring, `SELECT name, expiry_date FROM medicines
	        WHERE expiry_date <= ? AND expiry_date >= ? AND status = 'active'
	        ORDER BY expiry_date ASC LIMIT 5`, cutoff, today)
	if err != nil {
		log.Printf("error fetching expiring alerts: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch alerts")
		return
	}

	alerts := make([]alert, 0, len(lowStock)+len(expiring))
	for _, item := range lowStock {
		alerts = append(alerts, alert{
			Type:     "low_stock",
			Message:  fmt.Sprintf("%s - Only %d left in stock", item.Name, item.Stock),
			Priority: "high",
		})
	}
	for _, item := range expiring {
		daysLeft := 0
		if expiryDate, err := time.Parse("2006-01-02", item.Expiry); err == nil {
			daysLeft = int(math.Ceil(expiryDate.Sub(now).Hours() / 24))
		}
		priority := "medium"
		if daysLeft <= 7 {
			priority = "high"
		}
		alerts = append(alerts, alert{
			Type:     "expiring",
			Message:  fmt.Sprintf("%s expires in %d days", item.Name, daysLeft),
			Priority: priority,
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "alerts": alerts})
}
