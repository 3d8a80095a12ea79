package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-mgmt-api/internal/dto"
)

// DashboardRepository holds the read-only aggregation queries backing the
// dashboard endpoints. It never mutates.
type DashboardRepository struct {
	db *sqlx.DB
}

// NewDashboardRepository constructs a DashboardRepository.
func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// Counts returns the total row count of every resource table.
func (r *DashboardRepository) Counts(ctx context.Context) (dto.EntityCounts, error) {
	counts := dto.EntityCounts{}
	targets := []struct {
		table string
		dest  *int
	}{
		{"students", &counts.Students},
		{"teachers", &counts.Teachers},
		{"courses", &counts.Courses},
		{"subjects", &counts.Subjects},
		{"assignments", &counts.Assignments},
	}
	for _, target := range targets {
		query := "SELECT COUNT(*) FROM " + target.table
		if err := r.db.GetContext(ctx, target.dest, query); err != nil {
			return dto.EntityCounts{}, fmt.Errorf("count %s: %w", target.table, err)
		}
	}
	return counts, nil
}

// CourseStatusDistribution groups courses by their current status.
func (r *DashboardRepository) CourseStatusDistribution(ctx context.Context) ([]dto.StatusCount, error) {
	const query = `SELECT status, COUNT(*) AS count FROM courses GROUP BY status`
	var distribution []dto.StatusCount
	if err := r.db.SelectContext(ctx, &distribution, query); err != nil {
		return nil, fmt.Errorf("course status distribution: %w", err)
	}
	return distribution, nil
}

// AssignmentStatusDistribution groups assignments by their current status.
func (r *DashboardRepository) AssignmentStatusDistribution(ctx context.Context) ([]dto.StatusCount, error) {
	const query = `SELECT status, COUNT(*) AS count FROM assignments GROUP BY status`
	var distribution []dto.StatusCount
	if err := r.db.SelectContext(ctx, &distribution, query); err != nil {
		return nil, fmt.Errorf("assignment status distribution: %w", err)
	}
	return distribution, nil
}

// RecentStudents returns the most recently created students.
func (r *DashboardRepository) RecentStudents(ctx context.Context, limit int) ([]dto.RecentStudent, error) {
	const query = `SELECT id, name, roll_no, created_at FROM students ORDER BY created_at DESC, id DESC LIMIT $1`
	var students []dto.RecentStudent
	if err := r.db.SelectContext(ctx, &students, query, limit); err != nil {
		return nil, fmt.Errorf("recent students: %w", err)
	}
	return students, nil
}

// RecentTeachers returns the most recently created teachers.
func (r *DashboardRepository) RecentTeachers(ctx context.Context, limit int) ([]dto.RecentTeacher, error) {
	const query = `SELECT id, name, subject, created_at FROM teachers ORDER BY created_at DESC, id DESC LIMIT $1`
	var teachers []dto.RecentTeacher
	if err := r.db.SelectContext(ctx, &teachers, query, limit); err != nil {
		return nil, fmt.Errorf("recent teachers: %w", err)
	}
	return teachers, nil
}

// RecentAssignments returns the most recently created assignments with their
// subject's name resolved.
func (r *DashboardRepository) RecentAssignments(ctx context.Context, limit int) ([]dto.RecentAssignment, error) {
	const query = `SELECT a.id, a.title, s.name AS subject_name, a.due_date, a.status
		FROM assignments a
		LEFT JOIN subjects s ON s.id = a.subject_id
		ORDER BY a.created_at DESC, a.id DESC
		LIMIT $1`
	var assignments []dto.RecentAssignment
	if err := r.db.SelectContext(ctx, &assignments, query, limit); err != nil {
		return nil, fmt.Errorf("recent assignments: %w", err)
	}
	return assignments, nil
}

// ClassDistribution counts students per class, ordered by class.
func (r *DashboardRepository) ClassDistribution(ctx context.Context) ([]dto.ClassCount, error) {
	const query = `SELECT class, COUNT(*) AS count FROM students GROUP BY class ORDER BY class`
	var distribution []dto.ClassCount
	if err := r.db.SelectContext(ctx, &distribution, query); err != nil {
		return nil, fmt.Errorf("class distribution: %w", err)
	}
	return distribution, nil
}

// SubjectDistribution counts teachers per taught subject, busiest first.
func (r *DashboardRepository) SubjectDistribution(ctx context.Context) ([]dto.SubjectCount, error) {
	const query = `SELECT subject, COUNT(*) AS count FROM teachers GROUP BY subject ORDER BY count DESC`
	var distribution []dto.SubjectCount
	if err := r.db.SelectContext(ctx, &distribution, query); err != nil {
		return nil, fmt.Errorf("subject distribution: %w", err)
	}
	return distribution, nil
}

// UpcomingAssignments returns assignments due between today and today plus
// windowDays, inclusive, soonest first.
func (r *DashboardRepository) UpcomingAssignments(ctx context.Context, windowDays int) ([]dto.UpcomingAssignment, error) {
	query := fmt.Sprintf(`SELECT a.id, a.title, a.due_date, s.name AS subject_name, t.name AS teacher_name
		FROM assignments a
		LEFT JOIN subjects s ON s.id = a.subject_id
		LEFT JOIN teachers t ON t.id = a.created_by
		WHERE a.due_date BETWEEN CURRENT_DATE AND CURRENT_DATE + INTERVAL '%d days'
		ORDER BY a.due_date ASC`, windowDays)
	var assignments []dto.UpcomingAssignment
	if err := r.db.SelectContext(ctx, &assignments, query); err != nil {
		return nil, fmt.Errorf("upcoming assignments: %w", err)
	}
	return assignments, nil
}
