package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/sma-console-gateway/internal/dto"
	"github.com/noah-isme/sma-console-gateway/internal/models"
	appErrors "github.com/noah-isme/sma-console-gateway/pkg/errors"
)

const (
	guardNoSubjectsNoTeachers = "No subjects for this stage and no active teachers found."
	guardNoSubjects           = "No subjects found for this stage. Create a subject first."
	guardNoTeachers           = "No active teachers found. Activate or create a teacher first."
)

type classLister interface {
	List(ctx context.Context, caller models.User) ([]models.Class, error)
}

type setupCatalog interface {
	ManageableCourses(ctx context.Context) ([]models.Course, error)
	Courses(ctx context.Context) ([]models.Course, error)
	Users(ctx context.Context, role models.Role) ([]models.User, error)
}

type draftStore interface {
	Snapshot(ctx context.Context) (map[string][]models.ClassSubjectSetupDraft, error)
	Replace(ctx context.Context, classID int64, drafts []models.ClassSubjectSetupDraft) ([]models.ClassSubjectSetupDraft, error)
}

// SetupService assembles class subject setups and their derived summaries.
type SetupService struct {
	classes   classLister
	catalog   setupCatalog
	store     draftStore
	mirror    LegacyMirror
	validator *validator.Validate
	logger    *zap.Logger
}

// SetupServiceParams groups constructor dependencies.
type SetupServiceParams struct {
	Classes   classLister
	Catalog   setupCatalog
	Store     draftStore
	Mirror    LegacyMirror
	Validator *validator.Validate
	Logger    *zap.Logger
}

// NewSetupService constructs the setup service.
func NewSetupService(params SetupServiceParams) *SetupService {
	validate := params.Validator
	if validate == nil {
		validate = validator.New()
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SetupService{
		classes:   params.Classes,
		catalog:   params.Catalog,
		store:     params.Store,
		mirror:    params.Mirror,
		validator: validate,
		logger:    logger,
	}
}

// Snapshot fetches classes, courses, teachers and students concurrently.
// Only the class list is required; the others degrade to empty.
func (s *SetupService) Snapshot(ctx context.Context, caller models.User) (SetupSnapshot, error) {
	var snap SetupSnapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		classes, err := s.classes.List(gctx, caller)
		if err != nil {
			return err
		}
		snap.Classes = classes
		return nil
	})
	g.Go(func() error {
		snap.Courses = s.courseOptions(gctx)
		return nil
	})
	g.Go(func() error {
		snap.Teachers = s.usersOrEmpty(gctx, models.RoleTeacher)
		return nil
	})
	g.Go(func() error {
		snap.Students = s.usersOrEmpty(gctx, models.RoleStudent)
		return nil
	})
	g.Go(func() error {
		stored, err := s.store.Snapshot(gctx)
		if err != nil {
			return err
		}
		snap.Stored = stored
		return nil
	})

	if err := g.Wait(); err != nil {
		return SetupSnapshot{}, toBackendFailure(err)
	}
	return snap, nil
}

// courseOptions prefers the manageable course list, then the admin list.
func (s *SetupService) courseOptions(ctx context.Context) []models.Course {
	courses, err := s.catalog.ManageableCourses(ctx)
	if err == nil {
		return courses
	}
	s.logger.Warn("manageable courses unavailable, falling back to admin list", zap.Error(err))
	courses, err = s.catalog.Courses(ctx)
	if err != nil {
		s.logger.Warn("course lookup failed", zap.Error(err))
		return []models.Course{}
	}
	return courses
}

func (s *SetupService) usersOrEmpty(ctx context.Context, role models.Role) []models.User {
	users, err := s.catalog.Users(ctx, role)
	if err != nil {
		s.logger.Warn("user lookup failed", zap.String("role", string(role)), zap.Error(err))
		return []models.User{}
	}
	return users
}

// List returns every class subject setup visible to caller.
func (s *SetupService) List(ctx context.Context, caller models.User) ([]models.ClassSubjectSetup, error) {
	snap, err := s.Snapshot(ctx, caller)
	if err != nil {
		return nil, err
	}
	return BuildClassSubjectSetups(snap), nil
}

// ForClass returns the setups of one class.
func (s *SetupService) ForClass(ctx context.Context, caller models.User, classID int64) ([]models.ClassSubjectSetup, error) {
	snap, err := s.Snapshot(ctx, caller)
	if err != nil {
		return nil, err
	}
	return SetupsForClass(snap, classID), nil
}

// ClassSummaries returns the class listing filtered by query.
func (s *SetupService) ClassSummaries(ctx context.Context, caller models.User, query string) ([]models.ClassSummary, error) {
	snap, err := s.Snapshot(ctx, caller)
	if err != nil {
		return nil, err
	}
	summaries := ClassSummaries(snap.Classes, BuildClassSubjectSetups(snap))
	return SearchClasses(summaries, query), nil
}

// CourseSummaries returns the course listing filtered by query.
func (s *SetupService) CourseSummaries(ctx context.Context, caller models.User, query string) ([]models.CourseSummary, error) {
	var (
		courses []models.Course
		setups  []models.ClassSubjectSetup
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		courses, err = s.catalog.Courses(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		setups, err = s.List(gctx, caller)
		if err != nil {
			s.logger.Warn("class setups unavailable for course listing", zap.Error(err))
			setups = nil
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return SearchCourses(CourseSummaries(courses, setups), query), nil
}

// StudentRows returns student accounts with their academic overview.
func (s *SetupService) StudentRows(ctx context.Context, caller models.User, query string) ([]models.StudentRow, error) {
	snap, err := s.Snapshot(ctx, caller)
	if err != nil {
		return nil, err
	}
	overviews := StudentOverviews(snap.Classes, BuildClassSubjectSetups(snap))
	return SearchStudents(StudentRows(snap.Students, overviews), query), nil
}

// StudentOverview returns the overview of one student. A student asking for
// their own overview gets it from the classes they are enrolled in.
func (s *SetupService) StudentOverview(ctx context.Context, caller models.User, studentID string) (*models.StudentAcademicOverview, error) {
	if caller.Role == models.RoleStudent && caller.ID == studentID {
		classes, err := s.classes.List(ctx, caller)
		if err != nil {
			return nil, toBackendFailure(err)
		}
		return EnrolledOverview(studentID, classes), nil
	}
	snap, err := s.Snapshot(ctx, caller)
	if err != nil {
		return nil, err
	}
	overviews := StudentOverviews(snap.Classes, BuildClassSubjectSetups(snap))
	if o, ok := overviews[studentID]; ok {
		return o, nil
	}
	return &models.StudentAcademicOverview{StudentID: studentID, ClassNames: []string{}, CourseNames: []string{}, TeacherNames: []string{}}, nil
}

// Options lists the courses and teachers an editor may pick for a class,
// plus a guard message when either list is empty.
func (s *SetupService) Options(ctx context.Context, caller models.User, classID int64) (*models.SetupOptions, error) {
	snap, err := s.Snapshot(ctx, caller)
	if err != nil {
		return nil, err
	}
	var class *models.Class
	for i := range snap.Classes {
		if snap.Classes[i].ID == classID {
			class = &snap.Classes[i]
			break
		}
	}
	if class == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "Class not found.")
	}

	existing := SetupsForClass(snap, classID)
	drafts := make([]models.ClassSubjectSetupDraft, 0, len(existing))
	selected := make(map[int64]struct{}, len(existing))
	for _, e := range existing {
		drafts = append(drafts, e.Draft())
		selected[e.CourseID] = struct{}{}
	}

	courses := make([]models.Course, 0, len(snap.Courses))
	for _, c := range snap.Courses {
		if class.DepartmentID == 0 || c.DepartmentID == class.DepartmentID {
			courses = append(courses, c)
		}
	}
	missing := []models.Course{}
	for _, c := range snap.Courses {
		if _, ok := selected[c.ID]; ok && !containsCourse(courses, c.ID) {
			missing = append(missing, c)
		}
	}
	courses = append(missing, courses...)

	teachers := make([]models.User, 0, len(snap.Teachers))
	for _, t := range snap.Teachers {
		if t.IsActive {
			teachers = append(teachers, t)
		}
	}
	if caller.Role == models.RoleTeacher && !containsUser(teachers, caller.ID) {
		self := caller
		self.IsActive = true
		teachers = append([]models.User{self}, teachers...)
	}

	return &models.SetupOptions{
		ClassID:      classID,
		Courses:      courses,
		Teachers:     teachers,
		Existing:     drafts,
		GuardMessage: setupGuardMessage(len(courses), len(teachers)),
	}, nil
}

func setupGuardMessage(courses, teachers int) string {
	switch {
	case courses == 0 && teachers == 0:
		return guardNoSubjectsNoTeachers
	case courses == 0:
		return guardNoSubjects
	case teachers == 0:
		return guardNoTeachers
	default:
		return ""
	}
}

func containsCourse(items []models.Course, id int64) bool {
	for _, c := range items {
		if c.ID == id {
			return true
		}
	}
	return false
}

func containsUser(items []models.User, id string) bool {
	for _, u := range items {
		if u.ID == id {
			return true
		}
	}
	return false
}

// Save validates the offerings, mirrors the first one onto the legacy class
// fields and then persists the full list. Offerings cannot be saved while the
// class has no subjects or no active teachers to pick from; clearing the list
// is always allowed.
func (s *SetupService) Save(ctx context.Context, caller models.User, classID int64, req dto.SaveSetupsRequest) ([]models.ClassSubjectSetupDraft, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	drafts := req.Drafts()
	if err := DetectDuplicateCourses(drafts); err != nil {
		return nil, err
	}
	if len(drafts) > 0 {
		opts, err := s.Options(ctx, caller, classID)
		if err != nil {
			return nil, err
		}
		if opts.GuardMessage != "" {
			return nil, appErrors.Clone(appErrors.ErrGuardFailed, opts.GuardMessage)
		}
	}
	return s.Persist(ctx, caller, classID, drafts)
}

// Persist normalizes and stores drafts without form validation.
func (s *SetupService) Persist(ctx context.Context, caller models.User, classID int64, drafts []models.ClassSubjectSetupDraft) ([]models.ClassSubjectSetupDraft, error) {
	normalized := NormalizeDrafts(drafts)
	if s.mirror != nil {
		if err := s.mirror.Mirror(ctx, caller, classID, normalized); err != nil {
			return nil, err
		}
	}
	return s.store.Replace(ctx, classID, normalized)
}
