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

type assignmentRepoStub struct {
	assignments []models.AssignmentDetail
	found       *models.AssignmentDetail
	createErr   error
	updateErr   error
	deleted     bool
	findErr     error
}

func (s *assignmentRepoStub) List(ctx context.Context) ([]models.AssignmentDetail, error) {
	return s.assignments, nil
}

func (s *assignmentRepoStub) FindByID(ctx context.Context, id int64) (*models.AssignmentDetail, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.found, nil
}

func (s *assignmentRepoStub) Create(ctx context.Context, assignment *models.Assignment) error {
	if s.createErr != nil {
		return s.createErr
	}
	assignment.ID = 1
	return nil
}

func (s *assignmentRepoStub) Update(ctx context.Context, assignment *models.Assignment) error {
	return s.updateErr
}

func (s *assignmentRepoStub) Delete(ctx context.Context, id int64) (bool, error) {
	return s.deleted, nil
}

type subjectLookupStub struct {
	exists bool
	err    error
}

func (s subjectLookupStub) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return s.exists, s.err
}

func validAssignmentRequest() AssignmentRequest {
	return AssignmentRequest{
		SubjectID: 3,
		Title:     "Essay",
		DueDate:   "2026-09-15",
	}
}

func TestAssignmentServiceCreateDefaultsStatus(t *testing.T) {
	svc := NewAssignmentService(&assignmentRepoStub{}, subjectLookupStub{exists: true}, teacherLookupStub{exists: true}, nil, nil)

	assignment, err := svc.Create(context.Background(), validAssignmentRequest())
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentPending, assignment.Status)
	assert.Equal(t, "2026-09-15", assignment.DueDate.Format("2006-01-02"))
}

func TestAssignmentServiceCreateAcceptsInProgress(t *testing.T) {
	svc := NewAssignmentService(&assignmentRepoStub{}, subjectLookupStub{exists: true}, teacherLookupStub{exists: true}, nil, nil)

	req := validAssignmentRequest()
	req.Status = "In Progress"
	assignment, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentInProgress, assignment.Status)
}

func TestAssignmentServiceCreateRejectsBadDate(t *testing.T) {
	svc := NewAssignmentService(&assignmentRepoStub{}, subjectLookupStub{exists: true}, teacherLookupStub{exists: true}, nil, nil)

	req := validAssignmentRequest()
	req.DueDate = "15/09/2026"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	require.NotEmpty(t, appErr.Details)
	assert.Equal(t, "due_date", appErr.Details[0].Field)
}

func TestAssignmentServiceCreateUnknownSubject(t *testing.T) {
	svc := NewAssignmentService(&assignmentRepoStub{}, subjectLookupStub{exists: false}, teacherLookupStub{exists: true}, nil, nil)

	_, err := svc.Create(context.Background(), validAssignmentRequest())
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, "BAD_REFERENCE", appErr.Code)
	assert.Equal(t, "Subject not found", appErr.Message)
}

func TestAssignmentServiceCreateUnknownCreator(t *testing.T) {
	svc := NewAssignmentService(&assignmentRepoStub{}, subjectLookupStub{exists: true}, teacherLookupStub{exists: false}, nil, nil)

	creator := int64(8)
	req := validAssignmentRequest()
	req.CreatedBy = &creator
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, "Teacher not found", appErrors.FromError(err).Message)
}

func TestAssignmentServiceUpdateMissing(t *testing.T) {
	svc := NewAssignmentService(&assignmentRepoStub{updateErr: sql.ErrNoRows}, subjectLookupStub{exists: true}, teacherLookupStub{exists: true}, nil, nil)

	_, err := svc.Update(context.Background(), 9, validAssignmentRequest())
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestAssignmentServiceGetNotFound(t *testing.T) {
	svc := NewAssignmentService(&assignmentRepoStub{findErr: sql.ErrNoRows}, subjectLookupStub{}, teacherLookupStub{}, nil, nil)

	_, err := svc.Get(context.Background(), 9)
	require.Error(t, err)
	assert.Equal(t, "Assignment not found", appErrors.FromError(err).Message)
}
