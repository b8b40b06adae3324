package domain

import "time"

type Screening struct {
	ID         int64
	StartTime  string
	Hall       string
	TotalSeats int
	CreatedAt  time.Time
}
