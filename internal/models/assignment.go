package models

import "time"

// AssignmentStatus is the closed set of assignment progress states.
type AssignmentStatus string

const (
	AssignmentPending    AssignmentStatus = "Pending"
	AssignmentInProgress AssignmentStatus = "In Progress"
	AssignmentCompleted  AssignmentStatus = "Completed"
)

// Valid reports whether the status belongs to the closed set.
func (s AssignmentStatus) Valid() bool {
	switch s {
	case AssignmentPending, AssignmentInProgress, AssignmentCompleted:
		return true
	}
	return false
}

// Assignment represents homework attached to a subject. Assignments are
// cascade-deleted with their subject; the creating teacher is detachable.
type Assignment struct {
	ID          int64            `db:"id" json:"id"`
	SubjectID   int64            `db:"subject_id" json:"subject_id"`
	Title       string           `db:"title" json:"title"`
	Description *string          `db:"description" json:"description,omitempty"`
	DueDate     Date             `db:"due_date" json:"due_date"`
	Status      AssignmentStatus `db:"status" json:"status"`
	CreatedBy   *int64           `db:"created_by" json:"created_by,omitempty"`
	CreatedAt   time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time        `db:"updated_at" json:"updated_at"`
}

// AssignmentDetail is an assignment enriched with its subject's and creating
// teacher's names.
type AssignmentDetail struct {
	Assignment
	SubjectName *string `db:"subject_name" json:"subject_name,omitempty"`
	TeacherName *string `db:"teacher_name" json:"teacher_name,omitempty"`
}
