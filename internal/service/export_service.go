package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-console-gateway/internal/models"
	appErrors "github.com/noah-isme/sma-console-gateway/pkg/errors"
	"github.com/noah-isme/sma-console-gateway/pkg/export"
)

type renderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type summarySource interface {
	ClassSummaries(ctx context.Context, caller models.User, query string) ([]models.ClassSummary, error)
	StudentRows(ctx context.Context, caller models.User, query string) ([]models.StudentRow, error)
}

// ExportResult is a rendered export ready to send.
type ExportResult struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService renders class summaries and student overviews as files.
type ExportService struct {
	source summarySource
	csv    renderer
	pdf    renderer
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService constructs an ExportService. Nil renderers get defaults.
func NewExportService(source summarySource, csv, pdf renderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{source: source, csv: csv, pdf: pdf, logger: logger, now: time.Now}
}

var (
	classExportHeaders   = []string{"Class", "Department", "Semester", "Subjects", "Teachers", "Setup", "Students"}
	studentExportHeaders = []string{"Student ID", "Username", "Name", "Email", "Semester", "Subjects", "Teachers", "Classes"}
)

// ClassDataset flattens class summaries into export rows.
func ClassDataset(rows []models.ClassSummary) export.Dataset {
	data := export.Dataset{Title: "Class Summary", Headers: classExportHeaders, Rows: make([]map[string]string, 0, len(rows))}
	for _, r := range rows {
		data.Rows = append(data.Rows, map[string]string{
			"Class":      r.Class.Name,
			"Department": r.Class.DepartmentName,
			"Semester":   strconv.Itoa(r.Class.Semester),
			"Subjects":   r.SubjectsLabel,
			"Teachers":   r.TeachersLabel,
			"Setup":      r.SetupLabel,
			"Students":   strconv.Itoa(r.StudentsCount),
		})
	}
	return data
}

// StudentDataset flattens student overviews into export rows.
func StudentDataset(rows []models.StudentRow) export.Dataset {
	data := export.Dataset{Title: "Student Academic Overview", Headers: studentExportHeaders, Rows: make([]map[string]string, 0, len(rows))}
	for _, r := range rows {
		data.Rows = append(data.Rows, map[string]string{
			"Student ID": r.User.ID,
			"Username":   r.User.UserName,
			"Name":       r.User.Name,
			"Email":      r.User.Email,
			"Semester":   r.SemesterLabel,
			"Subjects":   r.SubjectsLabel,
			"Teachers":   r.TeachersLabel,
			"Classes":    r.ClassesLabel,
		})
	}
	return data
}

func (s *ExportService) Classes(ctx context.Context, caller models.User, format, query string) (*ExportResult, error) {
	rows, err := s.source.ClassSummaries(ctx, caller, query)
	if err != nil {
		return nil, err
	}
	return s.render("classes", format, ClassDataset(rows))
}

func (s *ExportService) Students(ctx context.Context, caller models.User, format, query string) (*ExportResult, error) {
	rows, err := s.source.StudentRows(ctx, caller, query)
	if err != nil {
		return nil, err
	}
	return s.render("students", format, StudentDataset(rows))
}

func (s *ExportService) render(name, rawFormat string, data export.Dataset) (*ExportResult, error) {
	format, err := export.ParseFormat(rawFormat)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "format must be csv or pdf")
	}
	r := s.csv
	if format == export.FormatPDF {
		r = s.pdf
	}
	body, err := r.Render(data)
	if err != nil {
		s.logger.Error("render export failed", zap.String("export", name), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	return &ExportResult{
		Filename:    fmt.Sprintf("%s-%s.%s", name, s.now().UTC().Format("20060102-150405"), format),
		ContentType: format.ContentType(),
		Body:        body,
	}, nil
}
