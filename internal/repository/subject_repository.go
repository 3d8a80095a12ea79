package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-mgmt-api/internal/models"
)

var (
	subjectColumns   = []string{"id", "code", "name", "teacher_id", "class", "created_at", "updated_at"}
	subjectRelations = []relation{
		{table: "teachers", alias: "t", fk: "teacher_id", nameAs: "teacher_name"},
	}
	subjectSelect = selectEnriched("subjects", "s", subjectColumns, subjectRelations)
)

// SubjectRepository manages persistence for subjects.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository constructs a SubjectRepository.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// List returns every subject enriched with the assigned teacher's name,
// newest first.
func (r *SubjectRepository) List(ctx context.Context) ([]models.SubjectDetail, error) {
	query := subjectSelect + orderByNewest("s")
	var subjects []models.SubjectDetail
	if err := r.db.SelectContext(ctx, &subjects, query); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// FindByID fetches an enriched subject by ID.
func (r *SubjectRepository) FindByID(ctx context.Context, id int64) (*models.SubjectDetail, error) {
	query := subjectSelect + " WHERE s.id = $1"
	var subject models.SubjectDetail
	if err := r.db.GetContext(ctx, &subject, query, id); err != nil {
		return nil, err
	}
	return &subject, nil
}

// ExistsByID reports whether a subject row with the given id exists.
func (r *SubjectRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, "SELECT 1 FROM subjects WHERE id = $1 LIMIT 1", id); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check subject id: %w", err)
	}
	return true, nil
}

// ExistsByCode checks if a different subject already uses the code.
func (r *SubjectRepository) ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM subjects WHERE code = $1"
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
		return false, fmt.Errorf("check subject code: %w", err)
	}
	return true, nil
}

// Create inserts a new subject record, filling in the server-assigned id and
// timestamps.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	const query = `INSERT INTO subjects (code, name, teacher_id, class)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`
	row := r.db.QueryRowxContext(ctx, query, subject.Code, subject.Name, subject.TeacherID, subject.Class)
	if err := row.Scan(&subject.ID, &subject.CreatedAt, &subject.UpdatedAt); err != nil {
		return fmt.Errorf("create subject: %w", err)
	}
	return nil
}

// Update replaces every mutable field and refreshes updated_at. Returns
// sql.ErrNoRows when the id does not exist.
func (r *SubjectRepository) Update(ctx context.Context, subject *models.Subject) error {
	const query = `UPDATE subjects
		SET code = $1, name = $2, teacher_id = $3, class = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING created_at, updated_at`
	row := r.db.QueryRowxContext(ctx, query, subject.Code, subject.Name, subject.TeacherID, subject.Class, subject.ID)
	if err := row.Scan(&subject.CreatedAt, &subject.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return sql.ErrNoRows
		}
		return fmt.Errorf("update subject: %w", err)
	}
	return nil
}

// Delete removes a subject. Its assignments are removed with it in the same
// statement through the cascading constraint.
func (r *SubjectRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM subjects WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("delete subject: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete subject rows affected: %w", err)
	}
	return affected > 0, nil
}
