package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-mgmt-api/internal/models"
	appErrors "github.com/noah-isme/school-mgmt-api/pkg/errors"
)

type subjectRepoStub struct {
	subjects  []models.SubjectDetail
	found     *models.SubjectDetail
	exists    bool
	createErr error
	updateErr error
	deleted   bool
	findErr   error
}

func (s *subjectRepoStub) List(ctx context.Context) ([]models.SubjectDetail, error) {
	return s.subjects, nil
}

func (s *subjectRepoStub) FindByID(ctx context.Context, id int64) (*models.SubjectDetail, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.found, nil
}

func (s *subjectRepoStub) ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error) {
	return s.exists, nil
}

func (s *subjectRepoStub) Create(ctx context.Context, subject *models.Subject) error {
	if s.createErr != nil {
		return s.createErr
	}
	subject.ID = 1
	return nil
}

func (s *subjectRepoStub) Update(ctx context.Context, subject *models.Subject) error {
	return s.updateErr
}

func (s *subjectRepoStub) Delete(ctx context.Context, id int64) (bool, error) {
	return s.deleted, nil
}

type teacherLookupStub struct {
	exists bool
	err    error
}

func (s teacherLookupStub) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return s.exists, s.err
}

func TestSubjectServiceCreateUnknownTeacher(t *testing.T) {
	svc := NewSubjectService(&subjectRepoStub{}, teacherLookupStub{exists: false}, nil, nil)

	teacherID := int64(42)
	_, err := svc.Create(context.Background(), SubjectRequest{Code: "MTH101", Name: "Mathematics", TeacherID: &teacherID, Class: "10"})
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, "BAD_REFERENCE", appErr.Code)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "Teacher not found", appErr.Message)
}

func TestSubjectServiceCreateWithoutTeacher(t *testing.T) {
	svc := NewSubjectService(&subjectRepoStub{}, teacherLookupStub{}, nil, nil)

	subject, err := svc.Create(context.Background(), SubjectRequest{Code: "MTH101", Name: "Mathematics", Class: "10"})
	require.NoError(t, err)
	assert.Nil(t, subject.TeacherID)
	assert.Equal(t, int64(1), subject.ID)
}

func TestSubjectServiceCreateDuplicateCode(t *testing.T) {
	svc := NewSubjectService(&subjectRepoStub{exists: true}, teacherLookupStub{exists: true}, nil, nil)

	_, err := svc.Create(context.Background(), SubjectRequest{Code: "MTH101", Name: "Mathematics", Class: "10"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, "CONFLICT", appErr.Code)
	assert.Equal(t, "Subject code already exists", appErr.Message)
}

func TestSubjectServiceUpdateMissing(t *testing.T) {
	svc := NewSubjectService(&subjectRepoStub{updateErr: sql.ErrNoRows}, teacherLookupStub{exists: true}, nil, nil)

	_, err := svc.Update(context.Background(), 9, SubjectRequest{Code: "MTH101", Name: "Mathematics", Class: "10"})
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestSubjectServiceDeleteMissing(t *testing.T) {
	svc := NewSubjectService(&subjectRepoStub{deleted: false}, teacherLookupStub{}, nil, nil)

	err := svc.Delete(context.Background(), 9)
	require.Error(t, err)
	assert.Equal(t, "Subject not found", appErrors.FromError(err).Message)
}
