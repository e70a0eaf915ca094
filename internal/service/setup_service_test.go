package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-console-gateway/internal/dto"
	"github.com/noah-isme/sma-console-gateway/internal/models"
	appErrors "github.com/noah-isme/sma-console-gateway/pkg/errors"
)

type stubClassLister struct {
	classes []models.Class
	err     error
}

func (s *stubClassLister) List(context.Context, models.User) ([]models.Class, error) {
	return s.classes, s.err
}

type stubSetupCatalog struct {
	manageable    []models.Course
	manageableErr error
	courses       []models.Course
	users         map[models.Role][]models.User
	usersErr      error
}

func (s *stubSetupCatalog) ManageableCourses(context.Context) ([]models.Course, error) {
	return s.manageable, s.manageableErr
}

func (s *stubSetupCatalog) Courses(context.Context) ([]models.Course, error) {
	return s.courses, nil
}

func (s *stubSetupCatalog) Users(_ context.Context, role models.Role) ([]models.User, error) {
	if s.usersErr != nil {
		return nil, s.usersErr
	}
	return s.users[role], nil
}

type recordingStore struct {
	stored   map[string][]models.ClassSubjectSetupDraft
	replaced [][]models.ClassSubjectSetupDraft
	events   *[]string
}

func (s *recordingStore) Snapshot(context.Context) (map[string][]models.ClassSubjectSetupDraft, error) {
	if s.stored == nil {
		return map[string][]models.ClassSubjectSetupDraft{}, nil
	}
	return s.stored, nil
}

func (s *recordingStore) Replace(_ context.Context, _ int64, drafts []models.ClassSubjectSetupDraft) ([]models.ClassSubjectSetupDraft, error) {
	s.replaced = append(s.replaced, drafts)
	if s.events != nil {
		*s.events = append(*s.events, "store")
	}
	return drafts, nil
}

type recordingMirror struct {
	calls  int
	err    error
	events *[]string
}

func (m *recordingMirror) Mirror(context.Context, models.User, int64, []models.ClassSubjectSetupDraft) error {
	m.calls++
	if m.events != nil {
		*m.events = append(*m.events, "mirror")
	}
	return m.err
}

func setupFixture() (*SetupService, *recordingStore, *recordingMirror, *[]string) {
	events := []string{}
	store := &recordingStore{events: &events}
	mirror := &recordingMirror{events: &events}
	svc := NewSetupService(SetupServiceParams{
		Classes: &stubClassLister{classes: []models.Class{legacyClass(), {ID: 11, Name: "X-B", DepartmentID: 2}}},
		Catalog: &stubSetupCatalog{
			manageable: []models.Course{
				{ID: 5, Code: "CS101", Name: "Calculus", DepartmentID: 1},
				{ID: 6, Code: "PH100", Name: "Physics", DepartmentID: 2},
			},
			users: map[models.Role][]models.User{
				models.RoleTeacher: {{ID: "t1", Name: "Dr Smith", IsActive: true}, {ID: "t2", Name: "Idle", IsActive: false}},
				models.RoleStudent: {{ID: "s1", Name: "Ana"}},
			},
		},
		Store:  store,
		Mirror: mirror,
	})
	return svc, store, mirror, &events
}

func TestSetupSaveRejectsDuplicatesBeforeAnyWrite(t *testing.T) {
	svc, store, mirror, _ := setupFixture()

	_, err := svc.Save(context.Background(), models.User{Role: models.RoleAdmin}, 10, dto.SaveSetupsRequest{Offerings: []dto.OfferingRequest{
		{CourseID: 5, TeacherIDs: []string{"t1"}},
		{CourseID: 5, TeacherIDs: []string{"t2"}},
	}})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
	assert.Zero(t, mirror.calls)
	assert.Empty(t, store.replaced)
}

func TestSetupSaveRequiresTeacher(t *testing.T) {
	svc, store, _, _ := setupFixture()

	_, err := svc.Save(context.Background(), models.User{Role: models.RoleAdmin}, 10, dto.SaveSetupsRequest{Offerings: []dto.OfferingRequest{{CourseID: 5}}})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
	assert.Empty(t, store.replaced)
}

func TestSetupSaveMirrorsBeforeStoring(t *testing.T) {
	svc, store, mirror, events := setupFixture()

	saved, err := svc.Save(context.Background(), models.User{Role: models.RoleAdmin}, 10, dto.SaveSetupsRequest{Offerings: []dto.OfferingRequest{
		{CourseID: 5, TeacherIDs: []string{"t1", "t1"}, StudentIDs: []string{"s1"}},
		{CourseID: 6, TeacherIDs: []string{"t2"}},
	}})
	require.NoError(t, err)
	assert.Equal(t, []string{"mirror", "store"}, *events)
	assert.Equal(t, 1, mirror.calls)
	require.Len(t, store.replaced, 1)
	assert.Equal(t, []string{"t1"}, saved[0].TeacherIDs)
}

func TestSetupSaveMirrorFailureSkipsStore(t *testing.T) {
	svc, store, mirror, _ := setupFixture()
	mirror.err = appErrors.Clone(appErrors.ErrBackendFailure, "")

	_, err := svc.Save(context.Background(), models.User{Role: models.RoleAdmin}, 10, dto.SaveSetupsRequest{Offerings: []dto.OfferingRequest{{CourseID: 5, TeacherIDs: []string{"t1"}}}})
	require.Error(t, err)
	assert.Empty(t, store.replaced)
}

func TestSetupSaveRefusesWhenGuardFails(t *testing.T) {
	events := []string{}
	store := &recordingStore{events: &events}
	mirror := &recordingMirror{events: &events}
	svc := NewSetupService(SetupServiceParams{
		Classes: &stubClassLister{classes: []models.Class{{ID: 1, DepartmentID: 3}}},
		Catalog: &stubSetupCatalog{
			users: map[models.Role][]models.User{models.RoleTeacher: {{ID: "t1", IsActive: true}}},
		},
		Store:  store,
		Mirror: mirror,
	})

	_, err := svc.Save(context.Background(), models.User{Role: models.RoleAdmin}, 1, dto.SaveSetupsRequest{Offerings: []dto.OfferingRequest{{CourseID: 5, TeacherIDs: []string{"t1"}}}})
	require.Error(t, err)
	assert.True(t, appErrors.IsGuard(err))
	assert.Equal(t, "No subjects found for this stage. Create a subject first.", appErrors.FromError(err).Message)
	assert.Empty(t, events)

	saved, err := svc.Save(context.Background(), models.User{Role: models.RoleAdmin}, 1, dto.SaveSetupsRequest{})
	require.NoError(t, err)
	assert.Empty(t, saved)
	assert.Equal(t, []string{"mirror", "store"}, events)
}

func TestSetupListFallsBackToLegacy(t *testing.T) {
	svc, _, _, _ := setupFixture()

	setups, err := svc.List(context.Background(), models.User{Role: models.RoleAdmin})
	require.NoError(t, err)
	require.Len(t, setups, 1)
	assert.Equal(t, int64(10), setups[0].ClassID)
	assert.Equal(t, "CS101 - Calculus", setups[0].CourseName)
	assert.Equal(t, []string{"Dr Smith"}, setups[0].TeacherNames)
}

func TestSetupSnapshotDegradesOptionalLookups(t *testing.T) {
	svc := NewSetupService(SetupServiceParams{
		Classes: &stubClassLister{classes: []models.Class{legacyClass()}},
		Catalog: &stubSetupCatalog{
			manageableErr: appErrors.Clone(appErrors.ErrForbidden, ""),
			courses:       []models.Course{{ID: 5, Code: "CS101", Name: "Calculus"}},
			usersErr:      errors.New("users down"),
		},
		Store: &recordingStore{},
	})

	snap, err := svc.Snapshot(context.Background(), models.User{Role: models.RoleTeacher})
	require.NoError(t, err)
	assert.Len(t, snap.Courses, 1)
	assert.Empty(t, snap.Teachers)
	assert.Empty(t, snap.Students)
}

func TestSetupSnapshotRequiresClasses(t *testing.T) {
	svc := NewSetupService(SetupServiceParams{
		Classes: &stubClassLister{err: appErrors.Clone(appErrors.ErrBackendUnreachable, "")},
		Catalog: &stubSetupCatalog{},
		Store:   &recordingStore{},
	})

	_, err := svc.List(context.Background(), models.User{Role: models.RoleAdmin})
	assert.True(t, appErrors.Is(err, appErrors.ErrBackendUnreachable))
}

func TestSetupStudentOwnOverview(t *testing.T) {
	backend := &fakeBackend{
		studentClasses: []dto.StudentClassDTO{{
			ClassID:     int64Ptr(7),
			ClassName:   strPtr("10-A"),
			CourseName:  strPtr("Calculus"),
			TeacherName: strPtr("Dr Smith"),
			Semester:    3,
		}},
	}
	svc := NewSetupService(SetupServiceParams{
		Classes: NewClassService(backend, nil, nil, nil),
		Catalog: &stubSetupCatalog{},
		Store:   &recordingStore{},
	})
	student := models.User{ID: "s1", Role: models.RoleStudent}

	overview, err := svc.StudentOverview(context.Background(), student, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"10-A"}, overview.ClassNames)
	assert.Equal(t, []string{"Calculus"}, overview.CourseNames)
	assert.Equal(t, []string{"Dr Smith"}, overview.TeacherNames)
	require.NotNil(t, overview.Semester)
	assert.Equal(t, 3, *overview.Semester)
}

func TestSetupStudentOverviewFromRoster(t *testing.T) {
	svc, _, _, _ := setupFixture()

	overview, err := svc.StudentOverview(context.Background(), models.User{Role: models.RoleAdmin}, "s2")
	require.NoError(t, err)
	assert.Equal(t, []string{"X-A"}, overview.ClassNames)
	assert.Equal(t, []string{"CS101 - Calculus"}, overview.CourseNames)

	missing, err := svc.StudentOverview(context.Background(), models.User{Role: models.RoleAdmin}, "nobody")
	require.NoError(t, err)
	assert.Empty(t, missing.ClassNames)
}

func TestSetupOptionsGuardMessages(t *testing.T) {
	svc, _, _, _ := setupFixture()

	opts, err := svc.Options(context.Background(), models.User{Role: models.RoleAdmin}, 11)
	require.NoError(t, err)
	require.Len(t, opts.Courses, 1)
	assert.Equal(t, int64(6), opts.Courses[0].ID)
	require.Len(t, opts.Teachers, 1)
	assert.Equal(t, "t1", opts.Teachers[0].ID)
	assert.Empty(t, opts.GuardMessage)

	empty := NewSetupService(SetupServiceParams{
		Classes: &stubClassLister{classes: []models.Class{{ID: 1, DepartmentID: 3}}},
		Catalog: &stubSetupCatalog{},
		Store:   &recordingStore{},
	})
	opts, err = empty.Options(context.Background(), models.User{Role: models.RoleAdmin}, 1)
	require.NoError(t, err)
	assert.Equal(t, "No subjects for this stage and no active teachers found.", opts.GuardMessage)

	opts, err = empty.Options(context.Background(), models.User{ID: "t9", Name: "Me", Role: models.RoleTeacher}, 1)
	require.NoError(t, err)
	assert.Equal(t, "No subjects found for this stage. Create a subject first.", opts.GuardMessage)
	require.Len(t, opts.Teachers, 1)
	assert.Equal(t, "t9", opts.Teachers[0].ID)

	_, err = empty.Options(context.Background(), models.User{Role: models.RoleAdmin}, 99)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestSetupOptionsKeepsSelectedCourseFromOtherDepartment(t *testing.T) {
	svc, store, _, _ := setupFixture()
	store.stored = map[string][]models.ClassSubjectSetupDraft{"11": {{CourseID: 5, TeacherIDs: []string{"t1"}}}}

	opts, err := svc.Options(context.Background(), models.User{Role: models.RoleAdmin}, 11)
	require.NoError(t, err)
	require.Len(t, opts.Courses, 2)
	assert.Equal(t, int64(5), opts.Courses[0].ID)
	assert.Len(t, opts.Existing, 1)
}

type stubClassUpdater struct {
	class *models.Class
	sent  *dto.ClassRequest
}

func (s *stubClassUpdater) Get(context.Context, models.User, int64) (*models.Class, error) {
	return s.class, nil
}

func (s *stubClassUpdater) UpdateResolved(_ context.Context, _ models.User, _ int64, req dto.ClassRequest) error {
	s.sent = &req
	return nil
}

func TestFirstOfferingMirrorPayload(t *testing.T) {
	class := legacyClass()
	class.StartDate = "2024-07-15T00:00:00"
	class.EndDate = "2024-12-20"
	class.Semester = 0
	class.DepartmentID = 1
	updater := &stubClassUpdater{class: &class}
	mirror := NewFirstOfferingMirror(updater)

	require.NoError(t, mirror.Mirror(context.Background(), models.User{}, 10, nil))
	assert.Nil(t, updater.sent)

	err := mirror.Mirror(context.Background(), models.User{}, 10, []models.ClassSubjectSetupDraft{
		{CourseID: 8, TeacherIDs: []string{"t3", "t4"}, StudentIDs: []string{"s9"}},
		{CourseID: 9, TeacherIDs: []string{"t5"}},
	})
	require.NoError(t, err)
	require.NotNil(t, updater.sent)
	assert.Equal(t, "2024-07-15", updater.sent.StartDate)
	assert.Equal(t, "2024-12-20", updater.sent.EndDate)
	assert.Equal(t, 1, updater.sent.Semester)
	assert.Equal(t, int64(8), *updater.sent.CourseID)
	assert.Equal(t, "t3", *updater.sent.TeacherID)
	assert.Equal(t, []string{"s9"}, updater.sent.StudentIDs)
}
