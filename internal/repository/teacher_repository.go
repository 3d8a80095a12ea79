package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-mgmt-api/internal/models"
)

var (
	teacherColumns = []string{"id", "name", "subject", "qualification", "experience", "contact", "email", "created_at", "updated_at"}
	teacherSelect  = selectEnriched("teachers", "t", teacherColumns, nil)
)

// TeacherRepository manages persistence for teachers.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// List returns every teacher, newest first.
func (r *TeacherRepository) List(ctx context.Context) ([]models.Teacher, error) {
	query := teacherSelect + orderByNewest("t")
	var teachers []models.Teacher
	if err := r.db.SelectContext(ctx, &teachers, query); err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	return teachers, nil
}

// FindByID fetches a teacher by ID.
func (r *TeacherRepository) FindByID(ctx context.Context, id int64) (*models.Teacher, error) {
	query := teacherSelect + " WHERE t.id = $1"
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, id); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// ExistsByID reports whether a teacher row with the given id exists.
func (r *TeacherRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, "SELECT 1 FROM teachers WHERE id = $1 LIMIT 1", id); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check teacher id: %w", err)
	}
	return true, nil
}

// ExistsByEmail checks if a different teacher already uses the email.
func (r *TeacherRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM teachers WHERE LOWER(email) = LOWER($1)"
	args := []interface{}{email}
	if excludeID != 0 {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check teacher email: %w", err)
	}
	return true, nil
}

// Create inserts a new teacher record, filling in the server-assigned id and
// timestamps.
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	const query = `INSERT INTO teachers (name, subject, qualification, experience, contact, email)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`
	row := r.db.QueryRowxContext(ctx, query,
		teacher.Name, teacher.Subject, teacher.Qualification, teacher.Experience, teacher.Contact, teacher.Email)
	if err := row.Scan(&teacher.ID, &teacher.CreatedAt, &teacher.UpdatedAt); err != nil {
		return fmt.Errorf("create teacher: %w", err)
	}
	return nil
}

// Update replaces every mutable field and refreshes updated_at. Returns
// sql.ErrNoRows when the id does not exist.
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	const query = `UPDATE teachers
		SET name = $1, subject = $2, qualification = $3, experience = $4, contact = $5, email = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING created_at, updated_at`
	row := r.db.QueryRowxContext(ctx, query,
		teacher.Name, teacher.Subject, teacher.Qualification, teacher.Experience, teacher.Contact, teacher.Email, teacher.ID)
	if err := row.Scan(&teacher.CreatedAt, &teacher.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return sql.ErrNoRows
		}
		return fmt.Errorf("update teacher: %w", err)
	}
	return nil
}

// Delete removes a teacher. Dependent subjects, courses and assignments keep
// their rows with the reference cleared (ON DELETE SET NULL).
func (r *TeacherRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM teachers WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("delete teacher: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete teacher rows affected: %w", err)
	}
	return affected > 0, nil
}
