package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-mgmt-api/internal/models"
)

var (
	assignmentColumns   = []string{"id", "subject_id", "title", "description", "due_date", "status", "created_by", "created_at", "updated_at"}
	assignmentRelations = []relation{
		{table: "subjects", alias: "s", fk: "subject_id", nameAs: "subject_name"},
		{table: "teachers", alias: "t", fk: "created_by", nameAs: "teacher_name"},
	}
	assignmentSelect = selectEnriched("assignments", "a", assignmentColumns, assignmentRelations)
)

// AssignmentRepository manages persistence for assignments.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository constructs an AssignmentRepository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// List returns every assignment enriched with its subject's and creating
// teacher's names, newest first.
func (r *AssignmentRepository) List(ctx context.Context) ([]models.AssignmentDetail, error) {
	query := assignmentSelect + orderByNewest("a")
	var assignments []models.AssignmentDetail
	if err := r.db.SelectContext(ctx, &assignments, query); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return assignments, nil
}

// FindByID fetches an enriched assignment by ID.
func (r *AssignmentRepository) FindByID(ctx context.Context, id int64) (*models.AssignmentDetail, error) {
	query := assignmentSelect + " WHERE a.id = $1"
	var assignment models.AssignmentDetail
	if err := r.db.GetContext(ctx, &assignment, query, id); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// Create inserts a new assignment record, filling in the server-assigned id
// and timestamps.
func (r *AssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	const query = `INSERT INTO assignments (subject_id, title, description, due_date, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`
	row := r.db.QueryRowxContext(ctx, query,
		assignment.SubjectID, assignment.Title, assignment.Description, assignment.DueDate, assignment.Status, assignment.CreatedBy)
	if err := row.Scan(&assignment.ID, &assignment.CreatedAt, &assignment.UpdatedAt); err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}
	return nil
}

// Update replaces every mutable field and refreshes updated_at. Returns
// sql.ErrNoRows when the id does not exist.
func (r *AssignmentRepository) Update(ctx context.Context, assignment *models.Assignment) error {
	const query = `UPDATE assignments
		SET subject_id = $1, title = $2, description = $3, due_date = $4, status = $5, created_by = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING created_at, updated_at`
	row := r.db.QueryRowxContext(ctx, query,
		assignment.SubjectID, assignment.Title, assignment.Description, assignment.DueDate, assignment.Status, assignment.CreatedBy, assignment.ID)
	if err := row.Scan(&assignment.CreatedAt, &assignment.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return sql.ErrNoRows
		}
		return fmt.Errorf("update assignment: %w", err)
	}
	return nil
}

// Delete removes an assignment permanently.
func (r *AssignmentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM assignments WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("delete assignment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete assignment rows affected: %w", err)
	}
	return affected > 0, nil
}
