package models

import "time"

// Teacher represents an instructor record. Subjects, courses and assignments
// reference teachers with SET NULL semantics, so deleting one detaches its
// dependents instead of removing them.
type Teacher struct {
	ID            int64     `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Subject       string    `db:"subject" json:"subject"`
	Qualification string    `db:"qualification" json:"qualification"`
	Experience    string    `db:"experience" json:"experience"`
	Contact       string    `db:"contact" json:"contact"`
	Email         *string   `db:"email" json:"email,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
