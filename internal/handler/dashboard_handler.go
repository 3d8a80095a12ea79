package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-mgmt-api/internal/service"
	"github.com/noah-isme/school-mgmt-api/pkg/response"
)

// DashboardHandler wires the dashboard and export services to HTTP routes.
type DashboardHandler struct {
	dashboard *service.DashboardService
	exports   *service.ExportService
}

// NewDashboardHandler constructs a new DashboardHandler.
func NewDashboardHandler(dashboard *service.DashboardService, exports *service.ExportService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, exports: exports}
}

// Stats godoc
// @Summary Dashboard summary
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboard.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats)
}

// ClassDistribution godoc
// @Summary Student count per class
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/class-distribution [get]
func (h *DashboardHandler) ClassDistribution(c *gin.Context) {
	distribution, err := h.dashboard.ClassDistribution(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, distribution)
}

// SubjectDistribution godoc
// @Summary Teacher count per subject
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/subject-distribution [get]
func (h *DashboardHandler) SubjectDistribution(c *gin.Context) {
	distribution, err := h.dashboard.SubjectDistribution(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, distribution)
}

// UpcomingAssignments godoc
// @Summary Assignments due soon
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/upcoming-assignments [get]
func (h *DashboardHandler) UpcomingAssignments(c *gin.Context) {
	assignments, err := h.dashboard.UpcomingAssignments(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assignments)
}

// Export godoc
// @Summary Download dashboard report
// @Tags Dashboard
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "Export format (csv/pdf)" default(csv)
// @Success 200 {file} file
// @Router /dashboard/export [get]
func (h *DashboardHandler) Export(c *gin.Context) {
	format := service.ExportFormat(strings.ToLower(c.DefaultQuery("format", "csv")))
	result, err := h.exports.Generate(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Payload)
}
