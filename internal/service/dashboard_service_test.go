package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-console-gateway/internal/backend"
	"github.com/noah-isme/sma-console-gateway/internal/dto"
	"github.com/noah-isme/sma-console-gateway/internal/models"
	appErrors "github.com/noah-isme/sma-console-gateway/pkg/errors"
)

type stubDashboardBackend struct {
	mu     sync.Mutex
	totals map[backend.Total]int64
	calls  int
}

func (s *stubDashboardBackend) AdminTotal(_ context.Context, total backend.Total) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.totals[total], nil
}

func (s *stubDashboardBackend) TeacherDashboardStats(context.Context) (dto.TeacherDashboardStatsDTO, error) {
	return dto.TeacherDashboardStatsDTO{TotalAssignedCourses: 2, TotalStudents: 40, TotalAssignments: 7}, nil
}

func (s *stubDashboardBackend) StudentDashboardStats(context.Context) (dto.StudentDashboardStatsDTO, error) {
	return dto.StudentDashboardStatsDTO{TotalEnrolledCourses: 5, TotalEnrolledClasses: 2, GPA: 3.5}, nil
}

type mapCacheRepo struct {
	mu     sync.Mutex
	values map[string]interface{}
}

func (m *mapCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	stats, ok := v.(*models.DashboardStats)
	if !ok {
		return appErrors.ErrCacheMiss
	}
	*(dest.(*models.DashboardStats)) = *stats
	return nil
}

func (m *mapCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *mapCacheRepo) DeleteByPattern(context.Context, string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = map[string]interface{}{}
	return nil
}

func TestDashboardAdminTotals(t *testing.T) {
	stub := &stubDashboardBackend{totals: map[backend.Total]int64{
		backend.TotalStudents:    120,
		backend.TotalTeachers:    12,
		backend.TotalDepartments: 4,
		backend.TotalCourses:     30,
		backend.TotalClasses:     9,
	}}
	svc := NewDashboardService(DashboardServiceParams{Backend: stub})

	stats, cached, err := svc.Stats(context.Background(), models.User{ID: "a1", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, models.RoleAdmin, stats.Role)
	assert.Equal(t, int64(120), *stats.TotalStudents)
	assert.Equal(t, int64(12), *stats.TotalTeachers)
	assert.Equal(t, int64(4), *stats.TotalDepartments)
	assert.Equal(t, int64(30), *stats.TotalCourses)
	assert.Equal(t, int64(9), *stats.TotalClasses)
	assert.Nil(t, stats.GPA)
	assert.Equal(t, 5, stub.calls)
}

func TestDashboardRoleSpecificCounters(t *testing.T) {
	svc := NewDashboardService(DashboardServiceParams{Backend: &stubDashboardBackend{}})

	teacher, _, err := svc.Stats(context.Background(), models.User{ID: "t1", Role: models.RoleTeacher})
	require.NoError(t, err)
	assert.Equal(t, int64(40), *teacher.TotalStudents)
	assert.Nil(t, teacher.TotalClasses)

	student, _, err := svc.Stats(context.Background(), models.User{ID: "s1", Role: models.RoleStudent})
	require.NoError(t, err)
	assert.InDelta(t, 3.5, *student.GPA, 0.0001)

	_, _, err = svc.Stats(context.Background(), models.User{Role: "Guest"})
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))
}

func TestDashboardServesFromCache(t *testing.T) {
	stub := &stubDashboardBackend{totals: map[backend.Total]int64{backend.TotalStudents: 1}}
	cache := NewCacheService(&mapCacheRepo{values: map[string]interface{}{}}, nil, time.Minute, nil, true)
	svc := NewDashboardService(DashboardServiceParams{Backend: stub, Cache: cache})
	admin := models.User{ID: "a1", Role: models.RoleAdmin}

	_, cached, err := svc.Stats(context.Background(), admin)
	require.NoError(t, err)
	assert.False(t, cached)

	stats, cached, err := svc.Stats(context.Background(), admin)
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, int64(1), *stats.TotalStudents)
	assert.Equal(t, 5, stub.calls)

	require.NoError(t, svc.Invalidate(context.Background()))
	_, cached, err = svc.Stats(context.Background(), admin)
	require.NoError(t, err)
	assert.False(t, cached)
}
