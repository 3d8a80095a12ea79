package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/school-mgmt-api/internal/dto"
	appErrors "github.com/noah-isme/school-mgmt-api/pkg/errors"
)

type dashboardRepository interface {
	Counts(ctx context.Context) (dto.EntityCounts, error)
	CourseStatusDistribution(ctx context.Context) ([]dto.StatusCount, error)
	AssignmentStatusDistribution(ctx context.Context) ([]dto.StatusCount, error)
	RecentStudents(ctx context.Context, limit int) ([]dto.RecentStudent, error)
	RecentTeachers(ctx context.Context, limit int) ([]dto.RecentTeacher, error)
	RecentAssignments(ctx context.Context, limit int) ([]dto.RecentAssignment, error)
	ClassDistribution(ctx context.Context) ([]dto.ClassCount, error)
	SubjectDistribution(ctx context.Context) ([]dto.SubjectCount, error)
	UpcomingAssignments(ctx context.Context, windowDays int) ([]dto.UpcomingAssignment, error)
}

// DashboardConfig tunes the reporting queries.
type DashboardConfig struct {
	RecentLimit    int
	UpcomingWindow time.Duration
}

// DashboardService aggregates cross-table reporting reads.
type DashboardService struct {
	repo    dashboardRepository
	metrics *MetricsService
	cfg     DashboardConfig
	logger  *zap.Logger
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(repo dashboardRepository, metrics *MetricsService, cfg DashboardConfig, logger *zap.Logger) *DashboardService {
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = 5
	}
	if cfg.UpcomingWindow <= 0 {
		cfg.UpcomingWindow = 7 * 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{repo: repo, metrics: metrics, cfg: cfg, logger: logger}
}

// Stats assembles entity counts, status distributions and the recent activity
// feed into one summary payload.
func (s *DashboardService) Stats(ctx context.Context) (*dto.DashboardStats, error) {
	start := time.Now()
	counts, err := s.repo.Counts(ctx)
	if err != nil {
		return nil, s.internal("dashboard counts failed", err)
	}
	s.observeQuery("dashboard_counts", start)

	start = time.Now()
	courseStatus, err := s.repo.CourseStatusDistribution(ctx)
	if err != nil {
		return nil, s.internal("course status distribution failed", err)
	}
	s.observeQuery("course_status_distribution", start)

	start = time.Now()
	assignmentStatus, err := s.repo.AssignmentStatusDistribution(ctx)
	if err != nil {
		return nil, s.internal("assignment status distribution failed", err)
	}
	s.observeQuery("assignment_status_distribution", start)

	start = time.Now()
	students, err := s.repo.RecentStudents(ctx, s.cfg.RecentLimit)
	if err != nil {
		return nil, s.internal("recent students failed", err)
	}
	s.observeQuery("recent_students", start)

	start = time.Now()
	teachers, err := s.repo.RecentTeachers(ctx, s.cfg.RecentLimit)
	if err != nil {
		return nil, s.internal("recent teachers failed", err)
	}
	s.observeQuery("recent_teachers", start)

	start = time.Now()
	assignments, err := s.repo.RecentAssignments(ctx, s.cfg.RecentLimit)
	if err != nil {
		return nil, s.internal("recent assignments failed", err)
	}
	s.observeQuery("recent_assignments", start)

	return &dto.DashboardStats{
		Counts:           counts,
		CourseStatus:     emptyIfNil(courseStatus),
		AssignmentStatus: emptyIfNil(assignmentStatus),
		RecentActivities: dto.RecentActivity{
			Students:    emptyIfNil(students),
			Teachers:    emptyIfNil(teachers),
			Assignments: emptyIfNil(assignments),
		},
	}, nil
}

// ClassDistribution returns student counts per class.
func (s *DashboardService) ClassDistribution(ctx context.Context) ([]dto.ClassCount, error) {
	start := time.Now()
	distribution, err := s.repo.ClassDistribution(ctx)
	if err != nil {
		return nil, s.internal("class distribution failed", err)
	}
	s.observeQuery("class_distribution", start)
	return emptyIfNil(distribution), nil
}

// SubjectDistribution returns teacher counts per taught subject.
func (s *DashboardService) SubjectDistribution(ctx context.Context) ([]dto.SubjectCount, error) {
	start := time.Now()
	distribution, err := s.repo.SubjectDistribution(ctx)
	if err != nil {
		return nil, s.internal("subject distribution failed", err)
	}
	s.observeQuery("subject_distribution", start)
	return emptyIfNil(distribution), nil
}

// UpcomingAssignments returns assignments due within the configured window.
func (s *DashboardService) UpcomingAssignments(ctx context.Context) ([]dto.UpcomingAssignment, error) {
	windowDays := int(s.cfg.UpcomingWindow.Hours() / 24)
	if windowDays < 1 {
		windowDays = 1
	}
	start := time.Now()
	assignments, err := s.repo.UpcomingAssignments(ctx, windowDays)
	if err != nil {
		return nil, s.internal("upcoming assignments failed", err)
	}
	s.observeQuery("upcoming_assignments", start)
	return emptyIfNil(assignments), nil
}

func (s *DashboardService) observeQuery(label string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveDBQuery(label, time.Since(start))
	}
}

func (s *DashboardService) internal(msg string, err error) error {
	s.logger.Error(msg, zap.Error(err))
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load dashboard data")
}

// emptyIfNil keeps JSON arrays as [] instead of null for empty result sets.
func emptyIfNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
