package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-console-gateway/internal/dto"
	"github.com/noah-isme/sma-console-gateway/internal/models"
	appErrors "github.com/noah-isme/sma-console-gateway/pkg/errors"
)

type assignmentBackend interface {
	ListManagedAssignments(ctx context.Context) ([]dto.ManagedAssignmentDTO, error)
	ListStudentAssignments(ctx context.Context) ([]dto.StudentAssignmentDTO, error)
	CreateAssignment(ctx context.Context, payload dto.AssignmentPayload) error
	ListAssignmentStudents(ctx context.Context, assignmentID int64) ([]dto.AssignmentStudentGradeDTO, error)
	GradeAssignment(ctx context.Context, assignmentID int64, payload dto.GradePayload) error
	SubmitAssignment(ctx context.Context, assignmentID int64, filename string, content io.Reader) error
	ListStudentGrades(ctx context.Context) ([]dto.StudentGradeDTO, error)
}

// AssignmentService covers coursework, grading and submissions.
type AssignmentService struct {
	backend    assignmentBackend
	normalizer *Normalizer
	inflight   *InFlight
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewAssignmentService constructs the assignment service.
func NewAssignmentService(backend assignmentBackend, normalizer *Normalizer, inflight *InFlight, validate *validator.Validate, logger *zap.Logger) *AssignmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if normalizer == nil {
		normalizer = NewNormalizer(nil)
	}
	if inflight == nil {
		inflight = NewInFlight()
	}
	return &AssignmentService{backend: backend, normalizer: normalizer, inflight: inflight, validator: validate, logger: logger}
}

// List returns the assignments visible to caller, filtered by query.
func (s *AssignmentService) List(ctx context.Context, caller models.User, query string) ([]models.Assignment, error) {
	var (
		items []models.Assignment
		err   error
	)
	switch caller.Role {
	case models.RoleStudent:
		var raw []dto.StudentAssignmentDTO
		if raw, err = s.backend.ListStudentAssignments(ctx); err != nil {
			return nil, err
		}
		items, err = s.normalizer.StudentAssignments(raw)
	case models.RoleTeacher, models.RoleAdmin:
		var raw []dto.ManagedAssignmentDTO
		if raw, err = s.backend.ListManagedAssignments(ctx); err != nil {
			return nil, err
		}
		items, err = s.normalizer.ManagedAssignments(raw)
	default:
		return []models.Assignment{}, nil
	}
	if err != nil {
		return nil, toBackendFailure(err)
	}
	return SearchAssignments(items, query), nil
}

// Get finds one assignment among those visible to caller.
func (s *AssignmentService) Get(ctx context.Context, caller models.User, id int64) (*models.Assignment, error) {
	items, err := s.List(ctx, caller, "")
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "Assignment not found.")
}

func (s *AssignmentService) Create(ctx context.Context, req dto.AssignmentRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	return s.backend.CreateAssignment(ctx, dto.AssignmentPayload{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		DueDate:     req.DueDate,
		ClassID:     req.ClassID,
	})
}

// Submissions returns the grading rows of an assignment.
func (s *AssignmentService) Submissions(ctx context.Context, assignmentID int64) ([]models.AssignmentSubmission, error) {
	raw, err := s.backend.ListAssignmentStudents(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	rows, err := s.normalizer.GradingRows(assignmentID, raw)
	if err != nil {
		return nil, toBackendFailure(err)
	}
	return rows, nil
}

// Grade records one student's grade. Only one save per assignment and
// student runs at a time.
func (s *AssignmentService) Grade(ctx context.Context, assignmentID int64, req dto.GradeRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, gradeValidationMessage(err))
	}
	release, err := s.inflight.Acquire(fmt.Sprintf("grade:%d:%s", assignmentID, req.StudentID))
	if err != nil {
		return err
	}
	defer release()

	return s.backend.GradeAssignment(ctx, assignmentID, dto.GradePayload{
		StudentID:          req.StudentID,
		Grade:              req.Grade,
		Remarks:            req.Remarks,
		IsVisibleToStudent: req.IsVisibleToStudent,
	})
}

// gradeValidationMessage reports the first failing field of a grade form.
func gradeValidationMessage(err error) string {
	var fields validator.ValidationErrors
	if errors.As(err, &fields) && len(fields) > 0 {
		switch fields[0].Field() {
		case "StudentID":
			return "Select a student to grade."
		case "Grade":
			return "Grade must be between 0 and 100."
		}
	}
	return "invalid payload"
}

// Submit uploads the caller's work for an assignment.
func (s *AssignmentService) Submit(ctx context.Context, assignmentID int64, filename string, content io.Reader) error {
	if strings.TrimSpace(filename) == "" || content == nil {
		return appErrors.Clone(appErrors.ErrValidation, "file is required")
	}
	return s.backend.SubmitAssignment(ctx, assignmentID, filename, content)
}

// Grades lists the caller's own grades.
func (s *AssignmentService) Grades(ctx context.Context, caller models.User) ([]models.AssignmentSubmission, error) {
	raw, err := s.backend.ListStudentGrades(ctx)
	if err != nil {
		return nil, err
	}
	return s.normalizer.StudentGrades(caller, raw), nil
}
