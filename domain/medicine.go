package domain

type Medicine struct {
	ID          int64   `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Category    string  `db:"category" json:"category"`
	Price       float64 `db:"price" json:"price"`
	Stock       int64   `db:"stock_quantity" json:"stock"`
	Expiry      string  `db:"expiry_date" json:"expiry"`
	BatchNumber *string `db:"batch_number" json:"batch_number,omitempty"`
	SupplierID  *int64  `db:"supplier_id" json:"supplier_id,omitempty"`
	Status      string  `db:"status" json:"status"`
	CreatedAt   string  `db:"created_at" json:"created_at,omitempty"`
	UpdatedAt   string  `db:"updated_at" json:"updated_at,omitempty"`
}
