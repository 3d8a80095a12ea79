package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-mgmt-api/internal/models"
)

var (
	courseColumns   = []string{"id", "code", "name", "instructor_id", "duration", "status", "description", "created_at", "updated_at"}
	courseRelations = []relation{
		{table: "teachers", alias: "t", fk: "instructor_id", nameAs: "instructor_name"},
	}
	courseSelect = selectEnriched("courses", "c", courseColumns, courseRelations)
)

// CourseRepository manages persistence for courses.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs a CourseRepository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns every course enriched with the instructor's name, newest first.
func (r *CourseRepository) List(ctx context.Context) ([]models.CourseDetail, error) {
	query := courseSelect + orderByNewest("c")
	var courses []models.CourseDetail
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// FindByID fetches an enriched course by ID.
func (r *CourseRepository) FindByID(ctx context.Context, id int64) (*models.CourseDetail, error) {
	query := courseSelect + " WHERE c.id = $1"
	var course models.CourseDetail
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// ExistsByCode checks if a different course already uses the code.
func (r *CourseRepository) ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM courses WHERE code = $1"
	args := []interface{}{code}
	if excludeID != 0 {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check course code: %w", err)
	}
	return true, nil
}

// Create inserts a new course record, filling in the server-assigned id and
// timestamps.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	const query = `INSERT INTO courses (code, name, instructor_id, duration, status, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`
	row := r.db.QueryRowxContext(ctx, query,
		course.Code, course.Name, course.InstructorID, course.Duration, course.Status, course.Description)
	if err := row.Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// Update replaces every mutable field and refreshes updated_at. Returns
// sql.ErrNoRows when the id does not exist.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	const query = `UPDATE courses
		SET code = $1, name = $2, instructor_id = $3, duration = $4, status = $5, description = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING created_at, updated_at`
	row := r.db.QueryRowxContext(ctx, query,
		course.Code, course.Name, course.InstructorID, course.Duration, course.Status, course.Description, course.ID)
	if err := row.Scan(&course.CreatedAt, &course.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return sql.ErrNoRows
		}
		return fmt.Errorf("update course: %w", err)
	}
	return nil
}

// Delete removes a course permanently. Courses have no dependents.
func (r *CourseRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM courses WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("delete course: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete course rows affected: %w", err)
	}
	return affected > 0, nil
}
