package domain

type Employee struct {
	ID         int64    `db:"id" json:"id"`
	EmployeeID string   `db:"employee_id" json:"employee_id"`
	Name       string   `db:"name" json:"name"`
	Position   string   `db:"position" json:"position"`
	Phone      string   `db:"phone" json:"phone"`
	Email      string   `db:"email" json:"email"`
	Salary     *float64 `db:"salary" json:"salary,omitempty"`
	HireDate   string   `db:"hire_date" json:"hire_date"`
	Status     string   `db:"status" json:"status"`
	CreatedAt  string   `db:"created_at" json:"created_at,omitempty"`
	UpdatedAt  string   `db:"updated_at" json:"updated_at,omitempty"`
}
