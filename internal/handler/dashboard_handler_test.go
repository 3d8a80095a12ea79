package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-mgmt-api/internal/dto"
	"github.com/noah-isme/school-mgmt-api/internal/service"
)

type dashboardRepoMock struct {
	counts dto.EntityCounts
}

func (m *dashboardRepoMock) Counts(ctx context.Context) (dto.EntityCounts, error) {
	return m.counts, nil
}

func (m *dashboardRepoMock) CourseStatusDistribution(ctx context.Context) ([]dto.StatusCount, error) {
	return []dto.StatusCount{{Status: "Ongoing", Count: 2}}, nil
}

func (m *dashboardRepoMock) AssignmentStatusDistribution(ctx context.Context) ([]dto.StatusCount, error) {
	return nil, nil
}

func (m *dashboardRepoMock) RecentStudents(ctx context.Context, limit int) ([]dto.RecentStudent, error) {
	return nil, nil
}

func (m *dashboardRepoMock) RecentTeachers(ctx context.Context, limit int) ([]dto.RecentTeacher, error) {
	return nil, nil
}

func (m *dashboardRepoMock) RecentAssignments(ctx context.Context, limit int) ([]dto.RecentAssignment, error) {
	return nil, nil
}

func (m *dashboardRepoMock) ClassDistribution(ctx context.Context) ([]dto.ClassCount, error) {
	return []dto.ClassCount{{Class: "10", Count: 4}}, nil
}

func (m *dashboardRepoMock) SubjectDistribution(ctx context.Context) ([]dto.SubjectCount, error) {
	return []dto.SubjectCount{{Subject: "Math", Count: 2}}, nil
}

func (m *dashboardRepoMock) UpcomingAssignments(ctx context.Context, windowDays int) ([]dto.UpcomingAssignment, error) {
	return []dto.UpcomingAssignment{{ID: 1, Title: "Essay"}}, nil
}

func newDashboardRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	dashboard := service.NewDashboardService(&dashboardRepoMock{counts: dto.EntityCounts{Students: 7}}, nil, service.DashboardConfig{}, nil)
	exports := service.NewExportService(dashboard, nil, nil, nil)
	h := NewDashboardHandler(dashboard, exports)

	r := gin.New()
	r.GET("/api/dashboard/stats", h.Stats)
	r.GET("/api/dashboard/class-distribution", h.ClassDistribution)
	r.GET("/api/dashboard/subject-distribution", h.SubjectDistribution)
	r.GET("/api/dashboard/upcoming-assignments", h.UpcomingAssignments)
	r.GET("/api/dashboard/export", h.Export)
	return r
}

func TestDashboardHandlerStats(t *testing.T) {
	r := newDashboardRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/dashboard/stats", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data dto.DashboardStats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 7, body.Data.Counts.Students)
	assert.Len(t, body.Data.CourseStatus, 1)
	assert.NotNil(t, body.Data.AssignmentStatus)
}

func TestDashboardHandlerUpcomingAssignments(t *testing.T) {
	r := newDashboardRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/dashboard/upcoming-assignments", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Essay")
}

func TestDashboardHandlerExportCSV(t *testing.T) {
	r := newDashboardRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/dashboard/export?format=csv", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Body.String(), "Entity Totals")
}

func TestDashboardHandlerExportBadFormat(t *testing.T) {
	r := newDashboardRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/dashboard/export?format=xlsx", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}
