package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-console-gateway/internal/dto"
	"github.com/noah-isme/sma-console-gateway/internal/models"
	appErrors "github.com/noah-isme/sma-console-gateway/pkg/errors"
)

func validClassRequest() dto.ClassRequest {
	return dto.ClassRequest{
		Name:         "X-A",
		IsActive:     true,
		Semester:     1,
		StartDate:    "2024-07-15",
		EndDate:      "2024-12-20",
		DepartmentID: 2,
	}
}

func TestClassCreateResolvesCourseAndTeacher(t *testing.T) {
	backend := &fakeBackend{
		manageable: []dto.ManageableCourseDTO{
			{ID: int64Ptr(4), Name: strPtr("Biology"), DepartmentID: 1},
			{ID: int64Ptr(6), Name: strPtr("Physics"), DepartmentID: 2},
		},
		users: []dto.ManagedUserDTO{
			{ID: strPtr("t1"), Name: strPtr("Idle"), Role: "Teacher", IsActive: false},
			{ID: strPtr("t2"), Name: strPtr("Dr Smith"), Role: "Teacher", IsActive: true},
		},
	}
	svc := NewClassService(backend, nil, nil, nil)

	require.NoError(t, svc.Create(context.Background(), models.User{ID: "a1", Role: models.RoleAdmin}, validClassRequest()))
	require.NotNil(t, backend.createdClass)
	assert.Equal(t, int64(6), *backend.createdClass.CourseID)
	assert.Equal(t, "t2", *backend.createdClass.TeacherID)
}

func TestClassCreateUsesCallingTeacher(t *testing.T) {
	backend := &fakeBackend{manageable: []dto.ManageableCourseDTO{{ID: int64Ptr(6), Name: strPtr("Physics"), DepartmentID: 2}}}
	svc := NewClassService(backend, nil, nil, nil)

	require.NoError(t, svc.Create(context.Background(), models.User{ID: "t7", Role: models.RoleTeacher}, validClassRequest()))
	assert.Equal(t, "t7", *backend.createdClass.TeacherID)
}

func TestClassCreateGuards(t *testing.T) {
	svc := NewClassService(&fakeBackend{}, nil, nil, nil)
	err := svc.Create(context.Background(), models.User{Role: models.RoleAdmin}, validClassRequest())
	require.Error(t, err)
	assert.True(t, appErrors.IsGuard(err))
	assert.Equal(t, "No subject found for the selected department. Please create a subject first.", appErrors.FromError(err).Message)

	withCourse := &fakeBackend{manageable: []dto.ManageableCourseDTO{{ID: int64Ptr(6), Name: strPtr("Physics"), DepartmentID: 2}}}
	svc = NewClassService(withCourse, nil, nil, nil)
	err = svc.Create(context.Background(), models.User{Role: models.RoleAdmin}, validClassRequest())
	assert.Equal(t, "No active teacher found. Please activate or create a teacher account first.", appErrors.FromError(err).Message)
	assert.Nil(t, withCourse.createdClass)
}

func TestClassCreateValidates(t *testing.T) {
	backend := &fakeBackend{}
	svc := NewClassService(backend, nil, nil, nil)
	req := validClassRequest()
	req.Name = ""

	err := svc.Create(context.Background(), models.User{Role: models.RoleAdmin}, req)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestClassListByRole(t *testing.T) {
	backend := &fakeBackend{
		managedClasses: []dto.ManagedClassDTO{{ID: int64Ptr(1), Name: strPtr("X-A")}},
		studentClasses: []dto.StudentClassDTO{{ClassID: int64Ptr(2), ClassName: strPtr("X-B")}},
	}
	svc := NewClassService(backend, nil, nil, nil)

	managed, err := svc.List(context.Background(), models.User{Role: models.RoleTeacher})
	require.NoError(t, err)
	require.Len(t, managed, 1)
	assert.Equal(t, "X-A", managed[0].Name)

	enrolled, err := svc.List(context.Background(), models.User{Role: models.RoleStudent})
	require.NoError(t, err)
	require.Len(t, enrolled, 1)
	assert.Equal(t, int64(2), enrolled[0].ID)

	none, err := svc.List(context.Background(), models.User{Role: "Guest"})
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = svc.Get(context.Background(), models.User{Role: models.RoleAdmin}, 42)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestClassListMappingFailureIsBackendFailure(t *testing.T) {
	backend := &fakeBackend{managedClasses: []dto.ManagedClassDTO{{Name: strPtr("no id")}}}
	svc := NewClassService(backend, nil, nil, nil)

	_, err := svc.List(context.Background(), models.User{Role: models.RoleAdmin})
	assert.True(t, appErrors.Is(err, appErrors.ErrBackendFailure))
}

func TestClassReplaceStudentsDedupes(t *testing.T) {
	backend := &fakeBackend{}
	svc := NewClassService(backend, nil, nil, nil)

	require.NoError(t, svc.ReplaceStudents(context.Background(), 1, []string{"s1", "", "s2", "s1"}))
	assert.Equal(t, []string{"s1", "s2"}, backend.rosterIDs)
}
