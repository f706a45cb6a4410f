package domain

import "time"

// User represents an account holder (rider) in the system.
type User struct {
	ID           string
	FullName     string
	Username     string
	Email        string
	Phone        string
	PasswordHash string
	Image        string
	CreatedAt    time.Time
}
