package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-mgmt-api/internal/models"
	"github.com/noah-isme/school-mgmt-api/pkg/database"
	appErrors "github.com/noah-isme/school-mgmt-api/pkg/errors"
)

type assignmentRepository interface {
	List(ctx context.Context) ([]models.AssignmentDetail, error)
	FindByID(ctx context.Context, id int64) (*models.AssignmentDetail, error)
	Create(ctx context.Context, assignment *models.Assignment) error
	Update(ctx context.Context, assignment *models.Assignment) error
	Delete(ctx context.Context, id int64) (bool, error)
}

// subjectLookup is the referential pre-check on the owning subject.
type subjectLookup interface {
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// AssignmentRequest represents the full mutable field set of an assignment.
// Status defaults to Pending when omitted.
type AssignmentRequest struct {
	SubjectID   int64   `json:"subject_id" validate:"required"`
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	DueDate     string  `json:"due_date" validate:"required,datetime=2006-01-02"`
	Status      string  `json:"status" validate:"omitempty,oneof='Pending' 'In Progress' 'Completed'"`
	CreatedBy   *int64  `json:"created_by"`
}

// AssignmentService orchestrates assignment operations.
type AssignmentService struct {
	repo      assignmentRepository
	subjects  subjectLookup
	teachers  teacherLookup
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAssignmentService constructs an AssignmentService.
func NewAssignmentService(repo assignmentRepository, subjects subjectLookup, teachers teacherLookup, validate *validator.Validate, logger *zap.Logger) *AssignmentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{repo: repo, subjects: subjects, teachers: teachers, validator: validate, logger: logger}
}

// List returns all assignments with subject and creator names, newest first.
func (s *AssignmentService) List(ctx context.Context) ([]models.AssignmentDetail, error) {
	assignments, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("list assignments failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
	}
	return assignments, nil
}

// Get returns an enriched assignment by id.
func (s *AssignmentService) Get(ctx context.Context, id int64) (*models.AssignmentDetail, error) {
	assignment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Assignment not found")
		}
		s.logger.Error("load assignment failed", zap.Int64("id", id), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignment")
	}
	return assignment, nil
}

// Create registers a new assignment record.
func (s *AssignmentService) Create(ctx context.Context, req AssignmentRequest) (*models.Assignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err, "invalid assignment payload")
	}
	if err := s.ensureReferences(ctx, req); err != nil {
		return nil, err
	}

	assignment, err := s.buildAssignment(0, req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, assignment); err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrBadReference, "Subject not found")
		}
		s.logger.Error("create assignment failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create assignment")
	}
	return assignment, nil
}

// Update replaces every mutable field of an existing assignment.
func (s *AssignmentService) Update(ctx context.Context, id int64, req AssignmentRequest) (*models.Assignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err, "invalid assignment payload")
	}
	if err := s.ensureReferences(ctx, req); err != nil {
		return nil, err
	}

	assignment, err := s.buildAssignment(id, req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, assignment); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Assignment not found")
		}
		if database.IsForeignKeyViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrBadReference, "Subject not found")
		}
		s.logger.Error("update assignment failed", zap.Int64("id", id), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update assignment")
	}
	return assignment, nil
}

// Delete removes an assignment permanently.
func (s *AssignmentService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("delete assignment failed", zap.Int64("id", id), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete assignment")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "Assignment not found")
	}
	return nil
}

func (s *AssignmentService) buildAssignment(id int64, req AssignmentRequest) (*models.Assignment, error) {
	dueDate, err := models.ParseDate(req.DueDate)
	if err != nil {
		return nil, appErrors.Validation("invalid assignment payload", []appErrors.FieldError{
			{Field: "due_date", Message: "must be a valid date (YYYY-MM-DD)"},
		})
	}
	status := models.AssignmentStatus(req.Status)
	if status == "" {
		status = models.AssignmentPending
	}
	return &models.Assignment{
		ID:          id,
		SubjectID:   req.SubjectID,
		Title:       strings.TrimSpace(req.Title),
		Description: normalizeOptional(req.Description),
		DueDate:     dueDate,
		Status:      status,
		CreatedBy:   req.CreatedBy,
	}, nil
}

func (s *AssignmentService) ensureReferences(ctx context.Context, req AssignmentRequest) error {
	exists, err := s.subjects.ExistsByID(ctx, req.SubjectID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check subject reference")
	}
	if !exists {
		return appErrors.Clone(appErrors.ErrBadReference, "Subject not found")
	}
	if req.CreatedBy != nil {
		exists, err = s.teachers.ExistsByID(ctx, *req.CreatedBy)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check teacher reference")
		}
		if !exists {
			return appErrors.Clone(appErrors.ErrBadReference, "Teacher not found")
		}
	}
	return nil
}
