package seed

import (
	"log"
	"strings"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

// EnsureAdmin inserts a default admin account when the table is empty so a
// fresh install can log in. The password is stored as a bcrypt hash.
func EnsureAdmin(db *sqlx.DB, username, email, password string) error {
	var count int64
	if err := db.Get(&count, `SELECT COUNT(*) FROM admin`); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if _, err := db.Exec(`INSERT INTO admin (username, email, password) VALUES (?, ?, ?)`, username, strings.ToLower(email), hashed); err != nil {
		return err
	}
	log.Printf("seeded default admin account %q", username)
	return nil
}
