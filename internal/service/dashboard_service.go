package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/sma-console-gateway/internal/backend"
	"github.com/noah-isme/sma-console-gateway/internal/dto"
	"github.com/noah-isme/sma-console-gateway/internal/models"
	appErrors "github.com/noah-isme/sma-console-gateway/pkg/errors"
)

type dashboardBackend interface {
	AdminTotal(ctx context.Context, total backend.Total) (int64, error)
	TeacherDashboardStats(ctx context.Context) (dto.TeacherDashboardStatsDTO, error)
	StudentDashboardStats(ctx context.Context) (dto.StudentDashboardStatsDTO, error)
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Backend  dashboardBackend
	Cache    *CacheService
	CacheTTL time.Duration
	Logger   *zap.Logger
}

// DashboardService composes the role-specific dashboard counters.
type DashboardService struct {
	backend  dashboardBackend
	cache    *CacheService
	cacheTTL time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	ttl := params.CacheTTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{backend: params.Backend, cache: params.Cache, cacheTTL: ttl, logger: logger, now: time.Now}
}

// Stats returns the caller's dashboard and whether it came from cache.
func (s *DashboardService) Stats(ctx context.Context, caller models.User) (*models.DashboardStats, bool, error) {
	cacheKey := fmt.Sprintf("dashboard:%s:%s", caller.Role, caller.ID)
	if s.cache != nil {
		var cached models.DashboardStats
		hit, err := s.cache.Get(ctx, cacheKey, &cached)
		if err == nil && hit {
			return &cached, true, nil
		}
	}

	var (
		stats *models.DashboardStats
		err   error
	)
	switch caller.Role {
	case models.RoleAdmin:
		stats, err = s.admin(ctx)
	case models.RoleTeacher:
		stats, err = s.teacher(ctx)
	case models.RoleStudent:
		stats, err = s.student(ctx)
	default:
		return nil, false, appErrors.Clone(appErrors.ErrForbidden, "")
	}
	if err != nil {
		return nil, false, err
	}
	stats.Role = caller.Role
	stats.GeneratedAt = s.now().UTC()

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, stats, s.cacheTTL); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return stats, false, nil
}

// Invalidate drops every cached dashboard.
func (s *DashboardService) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Invalidate(ctx, "dashboard:*")
}

func (s *DashboardService) admin(ctx context.Context) (*models.DashboardStats, error) {
	var students, teachers, departments, courses, classes int64
	targets := []struct {
		total backend.Total
		dest  *int64
	}{
		{backend.TotalStudents, &students},
		{backend.TotalTeachers, &teachers},
		{backend.TotalDepartments, &departments},
		{backend.TotalCourses, &courses},
		{backend.TotalClasses, &classes},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, target := range targets {
		target := target
		g.Go(func() error {
			n, err := s.backend.AdminTotal(gctx, target.total)
			if err != nil {
				return err
			}
			*target.dest = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &models.DashboardStats{
		TotalStudents:    &students,
		TotalTeachers:    &teachers,
		TotalDepartments: &departments,
		TotalCourses:     &courses,
		TotalClasses:     &classes,
	}, nil
}

func (s *DashboardService) teacher(ctx context.Context) (*models.DashboardStats, error) {
	raw, err := s.backend.TeacherDashboardStats(ctx)
	if err != nil {
		return nil, err
	}
	return &models.DashboardStats{
		TotalAssignedCourses: &raw.TotalAssignedCourses,
		TotalStudents:        &raw.TotalStudents,
		TotalAssignments:     &raw.TotalAssignments,
	}, nil
}

func (s *DashboardService) student(ctx context.Context) (*models.DashboardStats, error) {
	raw, err := s.backend.StudentDashboardStats(ctx)
	if err != nil {
		return nil, err
	}
	return &models.DashboardStats{
		TotalEnrolledCourses: &raw.TotalEnrolledCourses,
		TotalEnrolledClasses: &raw.TotalEnrolledClasses,
		GPA:                  &raw.GPA,
	}, nil
}
