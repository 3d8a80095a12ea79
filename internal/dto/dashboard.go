package dto

import (
	"time"

	"github.com/noah-isme/school-mgmt-api/internal/models"
)

// EntityCounts carries total row counts per resource table.
type EntityCounts struct {
	Students    int `json:"students"`
	Teachers    int `json:"teachers"`
	Courses     int `json:"courses"`
	Subjects    int `json:"subjects"`
	Assignments int `json:"assignments"`
}

// StatusCount is one bucket of a status distribution. Only statuses that
// actually occur are reported.
type StatusCount struct {
	Status string `db:"status" json:"status"`
	Count  int    `db:"count" json:"count"`
}

// ClassCount is one bucket of the class-wise student distribution.
type ClassCount struct {
	Class string `db:"class" json:"class"`
	Count int    `db:"count" json:"count"`
}

// SubjectCount is one bucket of the subject-wise teacher distribution.
type SubjectCount struct {
	Subject string `db:"subject" json:"subject"`
	Count   int    `db:"count" json:"count"`
}

// RecentStudent is the trimmed student row shown in the activity feed.
type RecentStudent struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	RollNo    string    `db:"roll_no" json:"roll_no"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// RecentTeacher is the trimmed teacher row shown in the activity feed.
type RecentTeacher struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Subject   string    `db:"subject" json:"subject"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// RecentAssignment is the trimmed assignment row shown in the activity feed,
// enriched with its subject's name.
type RecentAssignment struct {
	ID          int64                   `db:"id" json:"id"`
	Title       string                  `db:"title" json:"title"`
	SubjectName *string                 `db:"subject_name" json:"subject_name,omitempty"`
	DueDate     models.Date             `db:"due_date" json:"due_date"`
	Status      models.AssignmentStatus `db:"status" json:"status"`
}

// RecentActivity groups the latest records across the watched tables.
type RecentActivity struct {
	Students    []RecentStudent    `json:"students"`
	Teachers    []RecentTeacher    `json:"teachers"`
	Assignments []RecentAssignment `json:"assignments"`
}

// DashboardStats is the combined summary payload.
type DashboardStats struct {
	Counts           EntityCounts   `json:"counts"`
	CourseStatus     []StatusCount  `json:"courseStatus"`
	AssignmentStatus []StatusCount  `json:"assignmentStatus"`
	RecentActivities RecentActivity `json:"recentActivities"`
}

// UpcomingAssignment is an assignment due inside the reporting window,
// enriched with subject and creator names.
type UpcomingAssignment struct {
	ID          int64       `db:"id" json:"id"`
	Title       string      `db:"title" json:"title"`
	DueDate     models.Date `db:"due_date" json:"due_date"`
	SubjectName *string     `db:"subject_name" json:"subject_name,omitempty"`
	TeacherName *string     `db:"teacher_name" json:"teacher_name,omitempty"`
}
