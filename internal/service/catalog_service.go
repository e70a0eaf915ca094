package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-console-gateway/internal/dto"
	"github.com/noah-isme/sma-console-gateway/internal/models"
	appErrors "github.com/noah-isme/sma-console-gateway/pkg/errors"
)

type catalogBackend interface {
	ListDepartments(ctx context.Context) ([]dto.DepartmentDTO, error)
	GetDepartment(ctx context.Context, id int64) (dto.DepartmentDTO, error)
	CreateDepartment(ctx context.Context, payload dto.DepartmentPayload) error
	UpdateDepartment(ctx context.Context, id int64, payload dto.DepartmentPayload) error
	DeleteDepartment(ctx context.Context, id int64) error
	ListCourses(ctx context.Context) ([]dto.CourseDTO, error)
	GetCourse(ctx context.Context, id int64) (dto.CourseDTO, error)
	CreateCourse(ctx context.Context, payload dto.CoursePayload) error
	UpdateCourse(ctx context.Context, id int64, payload dto.CoursePayload) error
	DeleteCourse(ctx context.Context, id int64) error
	ListManageableCourses(ctx context.Context) ([]dto.ManageableCourseDTO, error)
	ListUsers(ctx context.Context, role models.Role) ([]dto.ManagedUserDTO, error)
	ActivateUser(ctx context.Context, id string) error
	DeactivateUser(ctx context.Context, id string) error
	DeleteUser(ctx context.Context, id string) error
	Register(ctx context.Context, req dto.RegisterRequest) error
}

// CatalogService manages departments, courses and user accounts.
type CatalogService struct {
	backend    catalogBackend
	normalizer *Normalizer
	lookup     *NameLookup
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewCatalogService constructs the catalog service.
func NewCatalogService(backend catalogBackend, normalizer *Normalizer, lookup *NameLookup, validate *validator.Validate, logger *zap.Logger) *CatalogService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if lookup == nil {
		lookup = NewNameLookup()
	}
	if normalizer == nil {
		normalizer = NewNormalizer(lookup)
	}
	return &CatalogService{backend: backend, normalizer: normalizer, lookup: lookup, validator: validate, logger: logger}
}

// Departments lists departments, filling missing head names from the user
// list. The department name table is refreshed on success.
func (s *CatalogService) Departments(ctx context.Context) ([]models.Department, error) {
	raw, err := s.backend.ListDepartments(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.normalizer.Departments(raw)
	if err != nil {
		return nil, toBackendFailure(err)
	}

	needsHead := false
	for _, d := range items {
		if d.HeadDepartmentID != "" && d.HeadDepartmentName == "" {
			needsHead = true
			break
		}
	}
	if needsHead {
		if users, err := s.Users(ctx, ""); err != nil {
			s.logger.Warn("resolve department heads failed", zap.Error(err))
		} else {
			names := userNames(users)
			for i := range items {
				if items[i].HeadDepartmentName == "" {
					items[i].HeadDepartmentName = names[items[i].HeadDepartmentID]
				}
			}
		}
	}

	s.lookup.ReplaceDepartments(items)
	return items, nil
}

func (s *CatalogService) Department(ctx context.Context, id int64) (*models.Department, error) {
	raw, err := s.backend.GetDepartment(ctx, id)
	if err != nil {
		return nil, err
	}
	item, err := s.normalizer.Department(raw)
	if err != nil {
		return nil, toBackendFailure(err)
	}
	return &item, nil
}

func (s *CatalogService) departmentPayload(req dto.DepartmentRequest) (dto.DepartmentPayload, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.DepartmentPayload{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	payload := dto.DepartmentPayload{Name: strings.TrimSpace(req.Name), Description: req.Description}
	if head := strings.TrimSpace(req.HeadDepartmentID); head != "" {
		payload.HeadOfDepartmentID = &head
	}
	return payload, nil
}

func (s *CatalogService) CreateDepartment(ctx context.Context, req dto.DepartmentRequest) error {
	payload, err := s.departmentPayload(req)
	if err != nil {
		return err
	}
	return s.invalidateOnSuccess(s.backend.CreateDepartment(ctx, payload))
}

func (s *CatalogService) UpdateDepartment(ctx context.Context, id int64, req dto.DepartmentRequest) error {
	payload, err := s.departmentPayload(req)
	if err != nil {
		return err
	}
	payload.ID = id
	return s.invalidateOnSuccess(s.backend.UpdateDepartment(ctx, id, payload))
}

func (s *CatalogService) DeleteDepartment(ctx context.Context, id int64) error {
	return s.invalidateOnSuccess(s.backend.DeleteDepartment(ctx, id))
}

// invalidateOnSuccess drops the cached names after a catalog write so the
// next listing reloads them.
func (s *CatalogService) invalidateOnSuccess(err error) error {
	if err == nil {
		s.lookup.Invalidate()
	}
	return err
}

// Courses lists courses with department names. When no department names are
// known yet the department table is loaded first, best effort.
func (s *CatalogService) Courses(ctx context.Context) ([]models.Course, error) {
	if s.lookup.empty() {
		if _, err := s.Departments(ctx); err != nil {
			s.logger.Warn("preload department names failed", zap.Error(err))
		}
	}
	raw, err := s.backend.ListCourses(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.normalizer.Courses(raw)
	if err != nil {
		return nil, toBackendFailure(err)
	}
	s.lookup.ReplaceCourses(items)
	return items, nil
}

func (s *CatalogService) Course(ctx context.Context, id int64) (*models.Course, error) {
	raw, err := s.backend.GetCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	item, err := s.normalizer.Course(raw)
	if err != nil {
		return nil, toBackendFailure(err)
	}
	return &item, nil
}

// ManageableCourses lists the courses the caller may attach to classes.
func (s *CatalogService) ManageableCourses(ctx context.Context) ([]models.Course, error) {
	raw, err := s.backend.ListManageableCourses(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.normalizer.ManageableCourses(raw)
	if err != nil {
		return nil, toBackendFailure(err)
	}
	return items, nil
}

func (s *CatalogService) coursePayload(req dto.CourseRequest) (dto.CoursePayload, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.CoursePayload{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	return dto.CoursePayload{
		Name:         strings.TrimSpace(req.Name),
		Code:         strings.TrimSpace(req.Code),
		Description:  req.Description,
		Credits:      req.Credits,
		DepartmentID: req.DepartmentID,
	}, nil
}

func (s *CatalogService) CreateCourse(ctx context.Context, req dto.CourseRequest) error {
	payload, err := s.coursePayload(req)
	if err != nil {
		return err
	}
	return s.invalidateOnSuccess(s.backend.CreateCourse(ctx, payload))
}

func (s *CatalogService) UpdateCourse(ctx context.Context, id int64, req dto.CourseRequest) error {
	payload, err := s.coursePayload(req)
	if err != nil {
		return err
	}
	payload.ID = id
	return s.invalidateOnSuccess(s.backend.UpdateCourse(ctx, id, payload))
}

func (s *CatalogService) DeleteCourse(ctx context.Context, id int64) error {
	return s.invalidateOnSuccess(s.backend.DeleteCourse(ctx, id))
}

// Users lists accounts, optionally for one role.
func (s *CatalogService) Users(ctx context.Context, role models.Role) ([]models.User, error) {
	if role != "" && !role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown role")
	}
	raw, err := s.backend.ListUsers(ctx, role)
	if err != nil {
		return nil, err
	}
	items, err := s.normalizer.Users(raw)
	if err != nil {
		return nil, toBackendFailure(err)
	}
	return items, nil
}

// SetUserActive activates or deactivates an account.
func (s *CatalogService) SetUserActive(ctx context.Context, id string, active bool) error {
	if strings.TrimSpace(id) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "user id is required")
	}
	if active {
		return s.backend.ActivateUser(ctx, id)
	}
	return s.backend.DeactivateUser(ctx, id)
}

func (s *CatalogService) DeleteUser(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "user id is required")
	}
	return s.backend.DeleteUser(ctx, id)
}

// Register creates an account after validating the form.
func (s *CatalogService) Register(ctx context.Context, req dto.RegisterRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	return s.backend.Register(ctx, req)
}

// toBackendFailure converts a mapping error at an aggregation boundary into a
// user-facing backend failure.
func toBackendFailure(err error) error {
	if appErrors.Is(err, appErrors.ErrMapping) {
		return appErrors.Wrap(err, appErrors.ErrBackendFailure.Code, appErrors.ErrBackendFailure.Status, appErrors.MessageGeneric)
	}
	return err
}
