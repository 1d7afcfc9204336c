package domain

import (
	"time"
)

// Admin is a moderator account. Passwords are stored as bcrypt hashes and
// only ever compared, never read back.
type Admin struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
