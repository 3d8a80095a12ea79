package models

import "time"

// CourseStatus is the closed set of course lifecycle states.
type CourseStatus string

const (
	CourseUpcoming  CourseStatus = "Upcoming"
	CourseOngoing   CourseStatus = "Ongoing"
	CourseCompleted CourseStatus = "Completed"
)

// Valid reports whether the status belongs to the closed set.
func (s CourseStatus) Valid() bool {
	switch s {
	case CourseUpcoming, CourseOngoing, CourseCompleted:
		return true
	}
	return false
}

// Course represents an offered course, optionally led by an instructor.
type Course struct {
	ID           int64        `db:"id" json:"id"`
	Code         string       `db:"code" json:"code"`
	Name         string       `db:"name" json:"name"`
	InstructorID *int64       `db:"instructor_id" json:"instructor_id,omitempty"`
	Duration     string       `db:"duration" json:"duration"`
	Status       CourseStatus `db:"status" json:"status"`
	Description  *string      `db:"description" json:"description,omitempty"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updated_at"`
}

// CourseDetail is a course enriched with its instructor's name.
type CourseDetail struct {
	Course
	InstructorName *string `db:"instructor_name" json:"instructor_name,omitempty"`
}
