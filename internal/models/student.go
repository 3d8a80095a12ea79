package models

import "time"

// Student represents a learner registered in the institution. The roll number
// is unique across the whole school.
type Student struct {
	ID        int64     `db:"id" json:"id"`
	RollNo    string    `db:"roll_no" json:"roll_no"`
	Name      string    `db:"name" json:"name"`
	Class     string    `db:"class" json:"class"`
	Section   string    `db:"section" json:"section"`
	Contact   string    `db:"contact" json:"contact"`
	Email     *string   `db:"email" json:"email,omitempty"`
	Address   *string   `db:"address" json:"address,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
