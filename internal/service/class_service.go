package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-console-gateway/internal/dto"
	"github.com/noah-isme/sma-console-gateway/internal/models"
	appErrors "github.com/noah-isme/sma-console-gateway/pkg/errors"
)

const (
	guardNoDepartmentCourse = "No subject found for the selected department. Please create a subject first."
	guardNoActiveTeacher    = "No active teacher found. Please activate or create a teacher account first."
)

type classBackend interface {
	ListManagedClasses(ctx context.Context) ([]dto.ManagedClassDTO, error)
	ListStudentClasses(ctx context.Context) (dto.PagedResult[dto.StudentClassDTO], error)
	CreateClass(ctx context.Context, payload dto.ClassPayload) error
	UpdateClass(ctx context.Context, id int64, payload dto.ClassPayload) error
	DeleteClass(ctx context.Context, id int64) error
	ListClassStudents(ctx context.Context, classID int64) ([]dto.ManagedClassStudentDTO, error)
	UpdateClassStudents(ctx context.Context, classID int64, studentIDs []string) error
	ListManageableCourses(ctx context.Context) ([]dto.ManageableCourseDTO, error)
	ListUsers(ctx context.Context, role models.Role) ([]dto.ManagedUserDTO, error)
}

// ClassService manages classes and their rosters.
type ClassService struct {
	backend    classBackend
	normalizer *Normalizer
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewClassService constructs the class service.
func NewClassService(backend classBackend, normalizer *Normalizer, validate *validator.Validate, logger *zap.Logger) *ClassService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if normalizer == nil {
		normalizer = NewNormalizer(nil)
	}
	return &ClassService{backend: backend, normalizer: normalizer, validator: validate, logger: logger}
}

// List returns the classes visible to caller: enrolled classes for students,
// managed classes for teachers and admins, nothing otherwise.
func (s *ClassService) List(ctx context.Context, caller models.User) ([]models.Class, error) {
	switch caller.Role {
	case models.RoleStudent:
		paged, err := s.backend.ListStudentClasses(ctx)
		if err != nil {
			return nil, err
		}
		items, err := s.normalizer.StudentClasses(paged.Items)
		if err != nil {
			return nil, toBackendFailure(err)
		}
		return items, nil
	case models.RoleTeacher, models.RoleAdmin:
		raw, err := s.backend.ListManagedClasses(ctx)
		if err != nil {
			return nil, err
		}
		items, err := s.normalizer.ManagedClasses(raw)
		if err != nil {
			return nil, toBackendFailure(err)
		}
		return items, nil
	default:
		return []models.Class{}, nil
	}
}

// Get finds one class among those visible to caller.
func (s *ClassService) Get(ctx context.Context, caller models.User, id int64) (*models.Class, error) {
	items, err := s.List(ctx, caller)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "Class not found.")
}

func (s *ClassService) Create(ctx context.Context, caller models.User, req dto.ClassRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	payload, err := s.resolvePayload(ctx, caller, req)
	if err != nil {
		return err
	}
	return s.backend.CreateClass(ctx, payload)
}

func (s *ClassService) Update(ctx context.Context, caller models.User, id int64, req dto.ClassRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	return s.UpdateResolved(ctx, caller, id, req)
}

// UpdateResolved posts a class update built from backend data, skipping form
// validation but still resolving a missing course or teacher.
func (s *ClassService) UpdateResolved(ctx context.Context, caller models.User, id int64, req dto.ClassRequest) error {
	payload, err := s.resolvePayload(ctx, caller, req)
	if err != nil {
		return err
	}
	payload.ID = id
	return s.backend.UpdateClass(ctx, id, payload)
}

func (s *ClassService) Delete(ctx context.Context, id int64) error {
	return s.backend.DeleteClass(ctx, id)
}

// Students returns the roster of a class.
func (s *ClassService) Students(ctx context.Context, id int64) ([]models.ClassStudent, error) {
	raw, err := s.backend.ListClassStudents(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]models.ClassStudent, 0, len(raw))
	for _, r := range raw {
		out = append(out, models.ClassStudent{StudentID: r.StudentID, StudentName: r.StudentName})
	}
	return out, nil
}

// ReplaceStudents overwrites the class roster.
func (s *ClassService) ReplaceStudents(ctx context.Context, id int64, studentIDs []string) error {
	return s.backend.UpdateClassStudents(ctx, id, uniqueIDs(studentIDs))
}

// resolvePayload fills a missing course with the first manageable course of
// the class department and a missing teacher with the calling teacher, else
// the first active teacher.
func (s *ClassService) resolvePayload(ctx context.Context, caller models.User, req dto.ClassRequest) (dto.ClassPayload, error) {
	payload := dto.ClassPayload{
		Name:         req.Name,
		IsActive:     req.IsActive,
		Semester:     req.Semester,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		DepartmentID: req.DepartmentID,
		CourseID:     req.CourseID,
		TeacherID:    req.TeacherID,
		StudentIDs:   req.StudentIDs,
	}
	if payload.CourseID != nil && *payload.CourseID == 0 {
		payload.CourseID = nil
	}
	if payload.TeacherID != nil && *payload.TeacherID == "" {
		payload.TeacherID = nil
	}

	if payload.CourseID == nil {
		raw, err := s.backend.ListManageableCourses(ctx)
		if err != nil {
			s.logger.Warn("list manageable courses failed", zap.Error(err))
		}
		for _, c := range raw {
			if c.ID != nil && c.DepartmentID == req.DepartmentID {
				id := *c.ID
				payload.CourseID = &id
				break
			}
		}
		if payload.CourseID == nil {
			return payload, appErrors.Clone(appErrors.ErrGuardFailed, guardNoDepartmentCourse)
		}
	}

	if payload.TeacherID == nil {
		if caller.Role == models.RoleTeacher && caller.ID != "" {
			id := caller.ID
			payload.TeacherID = &id
		} else {
			raw, err := s.backend.ListUsers(ctx, models.RoleTeacher)
			if err != nil {
				s.logger.Warn("list teachers failed", zap.Error(err))
			}
			for _, u := range raw {
				if u.IsActive && u.ID != nil && *u.ID != "" {
					id := *u.ID
					payload.TeacherID = &id
					break
				}
			}
		}
		if payload.TeacherID == nil {
			return payload, appErrors.Clone(appErrors.ErrGuardFailed, guardNoActiveTeacher)
		}
	}
	return payload, nil
}
