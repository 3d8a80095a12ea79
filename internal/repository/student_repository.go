package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-mgmt-api/internal/models"
)

var (
	studentColumns = []string{"id", "roll_no", "name", "class", "section", "contact", "email", "address", "created_at", "updated_at"}
	studentSelect  = selectEnriched("students", "s", studentColumns, nil)
)

// StudentRepository manages persistence for students.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns every student, newest first.
func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	query := studentSelect + orderByNewest("s")
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// FindByID fetches a student by ID.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	query := studentSelect + " WHERE s.id = $1"
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// ExistsByRollNo checks if a different student already uses the roll number.
func (r *StudentRepository) ExistsByRollNo(ctx context.Context, rollNo string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM students WHERE roll_no = $1"
	args := []interface{}{rollNo}
	if excludeID != 0 {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check student roll no: %w", err)
	}
	return true, nil
}

// Create inserts a new student record, filling in the server-assigned id and
// timestamps.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	const query = `INSERT INTO students (roll_no, name, class, section, contact, email, address)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`
	row := r.db.QueryRowxContext(ctx, query,
		student.RollNo, student.Name, student.Class, student.Section, student.Contact, student.Email, student.Address)
	if err := row.Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// Update replaces every mutable field and refreshes updated_at. Returns
// sql.ErrNoRows when the id does not exist.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	const query = `UPDATE students
		SET roll_no = $1, name = $2, class = $3, section = $4, contact = $5, email = $6, address = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING created_at, updated_at`
	row := r.db.QueryRowxContext(ctx, query,
		student.RollNo, student.Name, student.Class, student.Section, student.Contact, student.Email, student.Address, student.ID)
	if err := row.Scan(&student.CreatedAt, &student.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return sql.ErrNoRows
		}
		return fmt.Errorf("update student: %w", err)
	}
	return nil
}

// Delete removes a student permanently.
func (r *StudentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM students WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("delete student: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete student rows affected: %w", err)
	}
	return affected > 0, nil
}
