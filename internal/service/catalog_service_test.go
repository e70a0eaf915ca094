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

func TestDepartmentsResolveHeadNames(t *testing.T) {
	backend := &fakeBackend{
		departments: []dto.DepartmentDTO{
			{ID: int64Ptr(1), Name: strPtr("Science"), HeadOfDepartmentID: strPtr("t1")},
			{ID: int64Ptr(2), Name: strPtr("Arts"), HeadDepartmentID: strPtr("t2"), HeadName: strPtr("Ms Art")},
		},
		users: []dto.ManagedUserDTO{{ID: strPtr("t1"), Name: strPtr("Dr Smith"), Role: "Teacher"}},
	}
	lookup := NewNameLookup()
	svc := NewCatalogService(backend, nil, lookup, nil, nil)

	items, err := svc.Departments(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Dr Smith", items[0].HeadDepartmentName)
	assert.Equal(t, "Ms Art", items[1].HeadDepartmentName)

	name, ok := lookup.DepartmentName(2)
	assert.True(t, ok)
	assert.Equal(t, "Arts", name)
}

func TestDepartmentsToleratesUserLookupFailure(t *testing.T) {
	backend := &fakeBackend{
		departments: []dto.DepartmentDTO{{ID: int64Ptr(1), Name: strPtr("Science"), HeadOfDepartmentID: strPtr("t1")}},
		usersErr:    errors.New("forbidden"),
	}
	svc := NewCatalogService(backend, nil, nil, nil, nil)

	items, err := svc.Departments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", items[0].HeadDepartmentName)
}

func TestCoursesPreloadDepartmentNames(t *testing.T) {
	backend := &fakeBackend{
		departments: []dto.DepartmentDTO{{ID: int64Ptr(3), Name: strPtr("Math")}},
		courses:     []dto.CourseDTO{{ID: int64Ptr(9), Name: strPtr("Calculus"), Code: "CS101", DepartmentID: 3}},
	}
	lookup := NewNameLookup()
	svc := NewCatalogService(backend, NewNormalizer(lookup), lookup, nil, nil)

	courses, err := svc.Courses(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Math", courses[0].DepartmentName)
	assert.Equal(t, 1, backend.departmentCalls)

	_, err = svc.Courses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, backend.departmentCalls)
}

func TestCatalogWritesValidateAndTrim(t *testing.T) {
	backend := &fakeBackend{}
	svc := NewCatalogService(backend, nil, nil, nil, nil)

	err := svc.CreateCourse(context.Background(), dto.CourseRequest{Name: "Calculus", Code: "CS101", Credits: 0, DepartmentID: 1})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
	assert.Nil(t, backend.createdCourse)

	require.NoError(t, svc.CreateCourse(context.Background(), dto.CourseRequest{Name: " Calculus ", Code: "CS101", Credits: 3, DepartmentID: 1}))
	assert.Equal(t, "Calculus", backend.createdCourse.Name)

	require.NoError(t, svc.CreateDepartment(context.Background(), dto.DepartmentRequest{Name: "Science"}))
	assert.Nil(t, backend.createdDept.HeadOfDepartmentID)
	require.NoError(t, svc.UpdateDepartment(context.Background(), 1, dto.DepartmentRequest{Name: "Science", HeadDepartmentID: "t1"}))
	require.NotNil(t, backend.createdDept.HeadOfDepartmentID)
	assert.Equal(t, "t1", *backend.createdDept.HeadOfDepartmentID)
}

func TestCatalogWritesInvalidateNameLookup(t *testing.T) {
	backend := &fakeBackend{
		departments: []dto.DepartmentDTO{{ID: int64Ptr(3), Name: strPtr("Math")}},
		courses:     []dto.CourseDTO{{ID: int64Ptr(9), Name: strPtr("Calculus"), Code: "CS101", DepartmentID: 3}},
	}
	lookup := NewNameLookup()
	svc := NewCatalogService(backend, NewNormalizer(lookup), lookup, nil, nil)
	ctx := context.Background()

	_, err := svc.Courses(ctx)
	require.NoError(t, err)
	_, ok := lookup.DepartmentName(3)
	require.True(t, ok)

	err = svc.UpdateDepartment(ctx, 3, dto.DepartmentRequest{})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
	_, ok = lookup.DepartmentName(3)
	assert.True(t, ok)

	backend.writeErr = appErrors.Clone(appErrors.ErrBackendFailure, "")
	require.Error(t, svc.UpdateDepartment(ctx, 3, dto.DepartmentRequest{Name: "Mathematics"}))
	_, ok = lookup.CourseName(9)
	assert.True(t, ok)

	backend.writeErr = nil
	backend.departments[0].Name = strPtr("Mathematics")
	require.NoError(t, svc.UpdateDepartment(ctx, 3, dto.DepartmentRequest{Name: "Mathematics"}))
	_, ok = lookup.DepartmentName(3)
	assert.False(t, ok)
	_, ok = lookup.CourseName(9)
	assert.False(t, ok)

	courses, err := svc.Courses(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Mathematics", courses[0].DepartmentName)
	assert.Equal(t, 2, backend.departmentCalls)

	require.NoError(t, svc.DeleteCourse(ctx, 9))
	_, ok = lookup.CourseName(9)
	assert.False(t, ok)
}

func TestCatalogUsersAndActivation(t *testing.T) {
	backend := &fakeBackend{users: []dto.ManagedUserDTO{
		{ID: strPtr("t1"), Name: strPtr("Dr Smith"), Role: "Teacher"},
		{ID: strPtr("s1"), Name: strPtr("Ana"), Role: "Student"},
	}}
	svc := NewCatalogService(backend, nil, nil, nil, nil)

	teachers, err := svc.Users(context.Background(), models.RoleTeacher)
	require.NoError(t, err)
	require.Len(t, teachers, 1)

	_, err = svc.Users(context.Background(), models.Role("Janitor"))
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	require.NoError(t, svc.SetUserActive(context.Background(), "t1", true))
	require.NoError(t, svc.SetUserActive(context.Background(), "s1", false))
	assert.Equal(t, []string{"t1"}, backend.activated)
	assert.Equal(t, []string{"s1"}, backend.deactivated)

	err = svc.Register(context.Background(), dto.RegisterRequest{UserName: "x", Name: "X", Email: "bad", Role: "Student", Password: "secret1", ConfirmPassword: "secret1"})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}
