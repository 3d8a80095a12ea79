package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/school-mgmt-api/internal/dto"
	appErrors "github.com/noah-isme/school-mgmt-api/pkg/errors"
	"github.com/noah-isme/school-mgmt-api/pkg/export"
)

// ExportFormat selects the rendered file type.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

type csvRenderer interface {
	Render(datasets ...export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(title string, datasets ...export.Dataset) ([]byte, error)
}

// ExportResult is a rendered dashboard report ready to stream.
type ExportResult struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders the dashboard aggregates into downloadable files.
type ExportService struct {
	dashboard *DashboardService
	csv       csvRenderer
	pdf       pdfRenderer
	logger    *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(dashboard *DashboardService, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{dashboard: dashboard, csv: csv, pdf: pdf, logger: logger}
}

// Generate builds the full dashboard snapshot and renders it in the requested
// format.
func (s *ExportService) Generate(ctx context.Context, format ExportFormat) (*ExportResult, error) {
	stats, err := s.dashboard.Stats(ctx)
	if err != nil {
		return nil, err
	}
	classes, err := s.dashboard.ClassDistribution(ctx)
	if err != nil {
		return nil, err
	}
	subjects, err := s.dashboard.SubjectDistribution(ctx)
	if err != nil {
		return nil, err
	}

	datasets := buildReportDatasets(stats, classes, subjects)
	timestamp := time.Now().UTC().Format("20060102_150405")

	var payload []byte
	var contentType string
	switch format {
	case ExportFormatCSV:
		payload, err = s.csv.Render(datasets...)
		contentType = "text/csv"
	case ExportFormatPDF:
		payload, err = s.pdf.Render("School Dashboard Report", datasets...)
		contentType = "application/pdf"
	default:
		return nil, appErrors.Validation("invalid export format", []appErrors.FieldError{
			{Field: "format", Message: "must be one of: csv, pdf"},
		})
	}
	if err != nil {
		s.logger.Error("render export failed", zap.String("format", string(format)), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	return &ExportResult{
		Filename:    fmt.Sprintf("dashboard_report_%s.%s", timestamp, format),
		ContentType: contentType,
		Payload:     payload,
	}, nil
}

func buildReportDatasets(stats *dto.DashboardStats, classes []dto.ClassCount, subjects []dto.SubjectCount) []export.Dataset {
	countRows := []map[string]string{
		{"Entity": "Students", "Total": fmt.Sprintf("%d", stats.Counts.Students)},
		{"Entity": "Teachers", "Total": fmt.Sprintf("%d", stats.Counts.Teachers)},
		{"Entity": "Courses", "Total": fmt.Sprintf("%d", stats.Counts.Courses)},
		{"Entity": "Subjects", "Total": fmt.Sprintf("%d", stats.Counts.Subjects)},
		{"Entity": "Assignments", "Total": fmt.Sprintf("%d", stats.Counts.Assignments)},
	}

	courseRows := make([]map[string]string, 0, len(stats.CourseStatus))
	for _, bucket := range stats.CourseStatus {
		courseRows = append(courseRows, map[string]string{
			"Status": bucket.Status,
			"Count":  fmt.Sprintf("%d", bucket.Count),
		})
	}

	assignmentRows := make([]map[string]string, 0, len(stats.AssignmentStatus))
	for _, bucket := range stats.AssignmentStatus {
		assignmentRows = append(assignmentRows, map[string]string{
			"Status": bucket.Status,
			"Count":  fmt.Sprintf("%d", bucket.Count),
		})
	}

	classRows := make([]map[string]string, 0, len(classes))
	for _, bucket := range classes {
		classRows = append(classRows, map[string]string{
			"Class":    bucket.Class,
			"Students": fmt.Sprintf("%d", bucket.Count),
		})
	}

	subjectRows := make([]map[string]string, 0, len(subjects))
	for _, bucket := range subjects {
		subjectRows = append(subjectRows, map[string]string{
			"Subject":  bucket.Subject,
			"Teachers": fmt.Sprintf("%d", bucket.Count),
		})
	}

	return []export.Dataset{
		{Title: "Entity Totals", Headers: []string{"Entity", "Total"}, Rows: countRows},
		{Title: "Course Status", Headers: []string{"Status", "Count"}, Rows: courseRows},
		{Title: "Assignment Status", Headers: []string{"Status", "Count"}, Rows: assignmentRows},
		{Title: "Students Per Class", Headers: []string{"Class", "Students"}, Rows: classRows},
		{Title: "Teachers Per Subject", Headers: []string{"Subject", "Teachers"}, Rows: subjectRows},
	}
}
