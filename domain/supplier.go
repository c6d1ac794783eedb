package domain

type Supplier struct {
	ID            int64   `db:"id" json:"id"`
	Name          string  `db:"name" json:"name"`
	ContactPerson string  `db:"contact_person" json:"contact_person"`
	Phone         string  `db:"phone" json:"phone"`
	Email         *string `db:"email" json:"email,omitempty"`
	Address       *string `db:"address" json:"address,omitempty"`
	Status        string  `db:"status" json:"status"`
	CreatedAt     string  `db:"created_at" json:"created_at,omitempty"`
	UpdatedAt     string  `db:"updated_at" json:"updated_at,omitempty"`
}
