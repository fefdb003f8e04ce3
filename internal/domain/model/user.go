package model

import "time"

// User represents a registered panel customer.
type User struct {
	ID           int64
	Login        string
	PasswordHash string
	Currency     string
	CreatedAt    time.Time
}
