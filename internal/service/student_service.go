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

type studentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	ExistsByRollNo(ctx context.Context, rollNo string, excludeID int64) (bool, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) (bool, error)
}

// StudentRequest represents the full mutable field set of a student.
type StudentRequest struct {
	RollNo  string  `json:"roll_no" validate:"required"`
	Name    string  `json:"name" validate:"required"`
	Class   string  `json:"class" validate:"required"`
	Section string  `json:"section" validate:"required"`
	Contact string  `json:"contact" validate:"required"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Address *string `json:"address"`
}

// StudentService orchestrates student operations.
type StudentService struct {
	repo      studentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs a StudentService.
func NewStudentService(repo studentRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, validator: validate, logger: logger}
}

// List returns all students, newest first.
func (s *StudentService) List(ctx context.Context) ([]models.Student, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("list students failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	return students, nil
}

// Get returns a student by id.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Student not found")
		}
		s.logger.Error("load student failed", zap.Int64("id", id), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return student, nil
}

// Create registers a new student record.
func (s *StudentService) Create(ctx context.Context, req StudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err, "invalid student payload")
	}
	if err := s.ensureUniqueRollNo(ctx, req.RollNo, 0); err != nil {
		return nil, err
	}

	student := s.buildStudent(0, req)
	if err := s.repo.Create(ctx, student); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "Roll number already exists")
		}
		s.logger.Error("create student failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	return student, nil
}

// Update replaces every mutable field of an existing student.
func (s *StudentService) Update(ctx context.Context, id int64, req StudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err, "invalid student payload")
	}
	if err := s.ensureUniqueRollNo(ctx, req.RollNo, id); err != nil {
		return nil, err
	}

	student := s.buildStudent(id, req)
	if err := s.repo.Update(ctx, student); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Student not found")
		}
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "Roll number already exists")
		}
		s.logger.Error("update student failed", zap.Int64("id", id), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	return student, nil
}

// Delete removes a student permanently.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("delete student failed", zap.Int64("id", id), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "Student not found")
	}
	return nil
}

func (s *StudentService) buildStudent(id int64, req StudentRequest) *models.Student {
	return &models.Student{
		ID:      id,
		RollNo:  strings.TrimSpace(req.RollNo),
		Name:    strings.TrimSpace(req.Name),
		Class:   strings.TrimSpace(req.Class),
		Section: strings.TrimSpace(req.Section),
		Contact: strings.TrimSpace(req.Contact),
		Email:   normalizeOptional(req.Email),
		Address: normalizeOptional(req.Address),
	}
}

func (s *StudentService) ensureUniqueRollNo(ctx context.Context, rollNo string, excludeID int64) error {
	exists, err := s.repo.ExistsByRollNo(ctx, strings.TrimSpace(rollNo), excludeID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check roll number uniqueness")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "Roll number already exists")
	}
	return nil
}
