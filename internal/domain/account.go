package domain

import "time"

type Account struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
