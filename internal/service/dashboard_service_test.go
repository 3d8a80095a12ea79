package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-mgmt-api/internal/dto"
	appErrors "github.com/noah-isme/school-mgmt-api/pkg/errors"
)

type dashboardRepoStub struct {
	counts           dto.EntityCounts
	courseStatus     []dto.StatusCount
	assignmentStatus []dto.StatusCount
	students         []dto.RecentStudent
	teachers         []dto.RecentTeacher
	assignments      []dto.RecentAssignment
	classes          []dto.ClassCount
	subjects         []dto.SubjectCount
	upcoming         []dto.UpcomingAssignment
	countsErr        error

	recentLimit int
	windowDays  int
}

func (s *dashboardRepoStub) Counts(ctx context.Context) (dto.EntityCounts, error) {
	return s.counts, s.countsErr
}

func (s *dashboardRepoStub) CourseStatusDistribution(ctx context.Context) ([]dto.StatusCount, error) {
	return s.courseStatus, nil
}

func (s *dashboardRepoStub) AssignmentStatusDistribution(ctx context.Context) ([]dto.StatusCount, error) {
	return s.assignmentStatus, nil
}

func (s *dashboardRepoStub) RecentStudents(ctx context.Context, limit int) ([]dto.RecentStudent, error) {
	s.recentLimit = limit
	return s.students, nil
}

func (s *dashboardRepoStub) RecentTeachers(ctx context.Context, limit int) ([]dto.RecentTeacher, error) {
	return s.teachers, nil
}

func (s *dashboardRepoStub) RecentAssignments(ctx context.Context, limit int) ([]dto.RecentAssignment, error) {
	return s.assignments, nil
}

func (s *dashboardRepoStub) ClassDistribution(ctx context.Context) ([]dto.ClassCount, error) {
	return s.classes, nil
}

func (s *dashboardRepoStub) SubjectDistribution(ctx context.Context) ([]dto.SubjectCount, error) {
	return s.subjects, nil
}

func (s *dashboardRepoStub) UpcomingAssignments(ctx context.Context, windowDays int) ([]dto.UpcomingAssignment, error) {
	s.windowDays = windowDays
	return s.upcoming, nil
}

func TestDashboardServiceStats(t *testing.T) {
	repo := &dashboardRepoStub{
		counts:       dto.EntityCounts{Students: 10, Teachers: 3},
		courseStatus: []dto.StatusCount{{Status: "Ongoing", Count: 2}},
		students:     []dto.RecentStudent{{ID: 1, Name: "Bob", RollNo: "001"}},
	}
	svc := NewDashboardService(repo, nil, DashboardConfig{RecentLimit: 4}, nil)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, stats.Counts.Students)
	assert.Equal(t, 4, repo.recentLimit)
	assert.Len(t, stats.CourseStatus, 1)

	// empty result sets stay arrays on the wire
	assert.NotNil(t, stats.AssignmentStatus)
	assert.NotNil(t, stats.RecentActivities.Teachers)
	assert.NotNil(t, stats.RecentActivities.Assignments)
}

func TestDashboardServiceStatsError(t *testing.T) {
	svc := NewDashboardService(&dashboardRepoStub{countsErr: errors.New("boom")}, nil, DashboardConfig{}, nil)

	_, err := svc.Stats(context.Background())
	require.Error(t, err)
	assert.Equal(t, 500, appErrors.FromError(err).Status)
}

func TestDashboardServiceUpcomingWindowConversion(t *testing.T) {
	repo := &dashboardRepoStub{}
	svc := NewDashboardService(repo, nil, DashboardConfig{UpcomingWindow: 72 * time.Hour}, nil)

	_, err := svc.UpcomingAssignments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, repo.windowDays)
}

func TestDashboardServiceRecordsQueryTimings(t *testing.T) {
	metrics := NewMetricsService()
	svc := NewDashboardService(&dashboardRepoStub{}, metrics, DashboardConfig{}, nil)

	_, err := svc.Stats(context.Background())
	require.NoError(t, err)
	_, err = svc.ClassDistribution(context.Background())
	require.NoError(t, err)
	_, err = svc.UpcomingAssignments(context.Background())
	require.NoError(t, err)

	// one series per query label: six from Stats plus the two standalone reads
	assert.Equal(t, 8, testutil.CollectAndCount(metrics.dbQueryDuration, "db_query_duration_seconds"))
}

func TestDashboardServiceDefaults(t *testing.T) {
	repo := &dashboardRepoStub{}
	svc := NewDashboardService(repo, nil, DashboardConfig{}, nil)

	_, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, repo.recentLimit)

	_, err = svc.UpcomingAssignments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, repo.windowDays)
}
