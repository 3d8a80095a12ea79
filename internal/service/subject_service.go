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

type subjectRepository interface {
	List(ctx context.Context) ([]models.SubjectDetail, error)
	FindByID(ctx context.Context, id int64) (*models.SubjectDetail, error)
	ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error)
	Create(ctx context.Context, subject *models.Subject) error
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id int64) (bool, error)
}

// teacherLookup is the referential pre-check dependent services need.
type teacherLookup interface {
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// SubjectRequest represents the full mutable field set of a subject.
type SubjectRequest struct {
	Code      string `json:"code" validate:"required"`
	Name      string `json:"name" validate:"required"`
	TeacherID *int64 `json:"teacher_id"`
	Class     string `json:"class" validate:"required"`
}

// SubjectService orchestrates subject operations.
type SubjectService struct {
	repo      subjectRepository
	teachers  teacherLookup
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubjectService constructs a SubjectService.
func NewSubjectService(repo subjectRepository, teachers teacherLookup, validate *validator.Validate, logger *zap.Logger) *SubjectService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectService{repo: repo, teachers: teachers, validator: validate, logger: logger}
}

// List returns all subjects with their teacher's name, newest first.
func (s *SubjectService) List(ctx context.Context) ([]models.SubjectDetail, error) {
	subjects, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("list subjects failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}
	return subjects, nil
}

// Get returns an enriched subject by id.
func (s *SubjectService) Get(ctx context.Context, id int64) (*models.SubjectDetail, error) {
	subject, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Subject not found")
		}
		s.logger.Error("load subject failed", zap.Int64("id", id), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}
	return subject, nil
}

// Create registers a new subject record.
func (s *SubjectService) Create(ctx context.Context, req SubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err, "invalid subject payload")
	}
	if err := s.ensureUniqueCode(ctx, req.Code, 0); err != nil {
		return nil, err
	}
	if err := s.ensureTeacherExists(ctx, req.TeacherID); err != nil {
		return nil, err
	}

	subject := &models.Subject{
		Code:      strings.TrimSpace(req.Code),
		Name:      strings.TrimSpace(req.Name),
		TeacherID: req.TeacherID,
		Class:     strings.TrimSpace(req.Class),
	}
	if err := s.repo.Create(ctx, subject); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "Subject code already exists")
		}
		s.logger.Error("create subject failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create subject")
	}
	return subject, nil
}

// Update replaces every mutable field of an existing subject.
func (s *SubjectService) Update(ctx context.Context, id int64, req SubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err, "invalid subject payload")
	}
	if err := s.ensureUniqueCode(ctx, req.Code, id); err != nil {
		return nil, err
	}
	if err := s.ensureTeacherExists(ctx, req.TeacherID); err != nil {
		return nil, err
	}

	subject := &models.Subject{
		ID:        id,
		Code:      strings.TrimSpace(req.Code),
		Name:      strings.TrimSpace(req.Name),
		TeacherID: req.TeacherID,
		Class:     strings.TrimSpace(req.Class),
	}
	if err := s.repo.Update(ctx, subject); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Subject not found")
		}
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "Subject code already exists")
		}
		s.logger.Error("update subject failed", zap.Int64("id", id), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update subject")
	}
	return subject, nil
}

// Delete removes a subject. Its assignments are cascade-deleted by the
// storage layer atomically with the subject row.
func (s *SubjectService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("delete subject failed", zap.Int64("id", id), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete subject")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "Subject not found")
	}
	return nil
}

func (s *SubjectService) ensureUniqueCode(ctx context.Context, code string, excludeID int64) error {
	exists, err := s.repo.ExistsByCode(ctx, strings.TrimSpace(code), excludeID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check subject code uniqueness")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "Subject code already exists")
	}
	return nil
}

func (s *SubjectService) ensureTeacherExists(ctx context.Context, teacherID *int64) error {
	if teacherID == nil {
		return nil
	}
	exists, err := s.teachers.ExistsByID(ctx, *teacherID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check teacher reference")
	}
	if !exists {
		return appErrors.Clone(appErrors.ErrBadReference, "Teacher not found")
	}
	return nil
}
