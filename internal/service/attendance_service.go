package service

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/sma-console-gateway/internal/dto"
	"github.com/noah-isme/sma-console-gateway/internal/models"
	appErrors "github.com/noah-isme/sma-console-gateway/pkg/errors"
)

type attendanceBackend interface {
	CreateAttendance(ctx context.Context, payload dto.AttendancePayload) error
	ListClassAttendance(ctx context.Context, classID int64) ([]dto.TeacherAttendanceDTO, error)
	ListStudentAttendance(ctx context.Context) ([]dto.StudentAttendanceDTO, error)
}

// AttendanceService records and lists attendance marks.
type AttendanceService struct {
	backend    attendanceBackend
	normalizer *Normalizer
	validator  *validator.Validate
}

func NewAttendanceService(backend attendanceBackend, normalizer *Normalizer, validate *validator.Validate) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if normalizer == nil {
		normalizer = NewNormalizer(nil)
	}
	return &AttendanceService{backend: backend, normalizer: normalizer, validator: validate}
}

// Mark records one attendance status for a student.
func (s *AttendanceService) Mark(ctx context.Context, req dto.AttendanceRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	status, err := models.ParseAttendanceStatus(req.Status)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance status")
	}
	return s.backend.CreateAttendance(ctx, dto.AttendancePayload{
		ClassID:   req.ClassID,
		StudentID: req.StudentID,
		Status:    int(status),
	})
}

func (s *AttendanceService) ForClass(ctx context.Context, classID int64) ([]models.Attendance, error) {
	raw, err := s.backend.ListClassAttendance(ctx, classID)
	if err != nil {
		return nil, err
	}
	return s.normalizer.ClassAttendance(classID, raw), nil
}

// Mine lists the caller's own attendance.
func (s *AttendanceService) Mine(ctx context.Context, caller models.User) ([]models.Attendance, error) {
	raw, err := s.backend.ListStudentAttendance(ctx)
	if err != nil {
		return nil, err
	}
	return s.normalizer.StudentAttendance(caller, raw), nil
}
