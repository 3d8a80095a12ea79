package models

import "time"

// Subject represents a taught subject, optionally assigned to a teacher.
type Subject struct {
	ID        int64     `db:"id" json:"id"`
	Code      string    `db:"code" json:"code"`
	Name      string    `db:"name" json:"name"`
	TeacherID *int64    `db:"teacher_id" json:"teacher_id,omitempty"`
	Class     string    `db:"class" json:"class"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// SubjectDetail is a subject enriched with its teacher's name.
type SubjectDetail struct {
	Subject
	TeacherName *string `db:"teacher_name" json:"teacher_name,omitempty"`
}
