package domain

type Sale struct {
	ID            int64   `db:"id" json:"id"`
	InvoiceNumber string  `db:"invoice_number" json:"invoice_number"`
	CustomerName  string  `db:"customer_name" json:"customer_name"`
	CustomerPhone *string `db:"customer_phone" json:"customer_phone,omitempty"`
	TotalAmount   float64 `db:"total_amount" json:"total_amount"`
	Discount      float64 `db:"discount" json:"discount"`
	FinalAmount   float64 `db:"final_amount" json:"final_amount"`
	PaymentMethod string  `db:"payment_method" json:"payment_method"`
	EmployeeID    *int64  `db:"employee_id" json:"employee_id,omitempty"`
	SaleDate      string  `db:"sale_date" json:"sale_date"`
}

type SaleItem struct {
	ID         int64   `db:"id" json:"id"`
	SaleID     int64   `db:"sale_id" json:"sale_id"`
	MedicineID int64   `db:"medicine_id" json:"medicine_id"`
	Quantity   int64   `db:"quantity" json:"quantity"`
	UnitPrice  float64 `db:"unit_price" json:"unit_price"`
	TotalPrice float64 `db:"total_price" json:"total_price"`
}
