package domain

import "time"

// Exam is a gradeable event. The ledger only reads it to validate
// registration and grading targets.
type Exam struct {
	ID        string
	Title     string // unique
	Date      time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
