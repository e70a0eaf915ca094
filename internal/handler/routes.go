package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-console-gateway/internal/middleware"
	"github.com/noah-isme/sma-console-gateway/internal/service"
)

// Handlers groups every handler mounted by RegisterRoutes.
type Handlers struct {
	Auth          *AuthHandler
	Catalog       *CatalogHandler
	Users         *UserHandler
	Classes       *ClassHandler
	Setups        *SetupHandler
	Students      *StudentHandler
	Assignments   *AssignmentHandler
	Grades        *GradeHandler
	Attendance    *AttendanceHandler
	Dashboard     *DashboardHandler
	Exports       *ExportHandler
	Notifications *NotificationHandler
	Metrics       *MetricsHandler
}

// RouteOptions carries the cross-cutting pieces of the route table.
type RouteOptions struct {
	Prefix           string
	Session          gin.HandlerFunc
	Policy           *service.AccessPolicy
	Invalidate       func(ctx context.Context)
	MetricsEnabled   bool
	WebsocketEnabled bool
}

// RegisterRoutes mounts the gateway surface. Probes and metrics live at the
// root; everything else sits under the API prefix and every authenticated
// route declares the capability it needs.
func RegisterRoutes(r *gin.Engine, h Handlers, opts RouteOptions) {
	policy := opts.Policy
	if policy == nil {
		policy = service.NewAccessPolicy()
	}
	need := func(resource service.Resource, action service.Action) gin.HandlerFunc {
		return middleware.Require(policy, resource, action)
	}
	read := func(resource service.Resource) gin.HandlerFunc { return need(resource, service.ActionRead) }
	write := func(resource service.Resource) gin.HandlerFunc { return need(resource, service.ActionWrite) }

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	if opts.MetricsEnabled {
		r.GET("/metrics", h.Metrics.Prometheus)
	}

	api := r.Group(opts.Prefix)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/refresh", h.Auth.Refresh)

	secured := api.Group("")
	secured.Use(opts.Session, middleware.InvalidateOnWrite(opts.Invalidate))

	secured.GET("/session", h.Auth.Session)
	secured.POST("/auth/register", write(service.ResourceAccounts), h.Auth.Register)
	secured.GET("/dashboard", read(service.ResourceDashboard), h.Dashboard.Get)

	departments := secured.Group("/departments")
	departments.GET("", read(service.ResourceDepartments), h.Catalog.Departments)
	departments.POST("", write(service.ResourceDepartments), h.Catalog.CreateDepartment)
	departments.GET("/:id", read(service.ResourceDepartments), h.Catalog.Department)
	departments.PUT("/:id", write(service.ResourceDepartments), h.Catalog.UpdateDepartment)
	departments.DELETE("/:id", write(service.ResourceDepartments), h.Catalog.DeleteDepartment)

	courses := secured.Group("/courses")
	courses.GET("", read(service.ResourceCourses), h.Catalog.Courses)
	courses.POST("", write(service.ResourceCourses), h.Catalog.CreateCourse)
	courses.GET("/manageable", write(service.ResourceClasses), h.Catalog.ManageableCourses)
	courses.GET("/:id", read(service.ResourceCourses), h.Catalog.Course)
	courses.PUT("/:id", write(service.ResourceCourses), h.Catalog.UpdateCourse)
	courses.DELETE("/:id", write(service.ResourceCourses), h.Catalog.DeleteCourse)

	users := secured.Group("/users")
	users.GET("", read(service.ResourceUsers), h.Users.List)
	users.PUT("/:id/activate", write(service.ResourceUsers), h.Users.Activate)
	users.PUT("/:id/deactivate", write(service.ResourceUsers), h.Users.Deactivate)
	users.DELETE("/:id", write(service.ResourceUsers), h.Users.Delete)

	classes := secured.Group("/classes")
	classes.GET("", read(service.ResourceClasses), h.Classes.List)
	classes.POST("", write(service.ResourceClasses), h.Classes.Create)
	classes.GET("/:id", read(service.ResourceClasses), h.Classes.Get)
	classes.PUT("/:id", write(service.ResourceClasses), h.Classes.Update)
	classes.DELETE("/:id", write(service.ResourceClasses), h.Classes.Delete)
	classes.GET("/:id/students", read(service.ResourceClasses), h.Classes.Students)
	classes.PUT("/:id/students", write(service.ResourceClasses), h.Classes.ReplaceStudents)
	classes.GET("/:id/setups", read(service.ResourceSetups), h.Setups.ForClass)
	classes.PUT("/:id/setups", write(service.ResourceSetups), h.Setups.Save)
	classes.GET("/:id/setup-options", write(service.ResourceSetups), h.Setups.Options)
	classes.PUT("/:id/enrollments/:studentId", write(service.ResourceEnrollments), h.Setups.Enroll)
	// Students may read their own attendance only, through /attendance/me.
	classes.GET("/:id/attendance", write(service.ResourceAttendance), h.Attendance.ForClass)

	secured.GET("/class-setups", read(service.ResourceSetups), h.Setups.List)

	secured.GET("/students", read(service.ResourceOverview), h.Students.List)
	secured.GET("/students/:id/overview", middleware.RequireSelfOr(policy, service.ResourceOverview, service.ActionRead), h.Students.Overview)

	exports := secured.Group("/exports", read(service.ResourceExports))
	exports.GET("/classes", h.Exports.Classes)
	exports.GET("/students", h.Exports.Students)

	assignments := secured.Group("/assignments")
	assignments.GET("", read(service.ResourceAssignments), h.Assignments.List)
	assignments.POST("", write(service.ResourceAssignments), h.Assignments.Create)
	assignments.GET("/:id/students", read(service.ResourceGrading), h.Grades.Submissions)
	assignments.POST("/:id/grade", write(service.ResourceGrading), h.Grades.Grade)
	assignments.POST("/:id/submit", need(service.ResourceAssignments, service.ActionSubmit), h.Assignments.Submit)
	secured.GET("/grades", read(service.ResourceGrades), h.Grades.Mine)

	secured.POST("/attendance", write(service.ResourceAttendance), h.Attendance.Mark)
	secured.GET("/attendance/me", read(service.ResourceOwnAttendance), h.Attendance.Mine)

	notifications := secured.Group("/notifications", read(service.ResourceNotifications))
	notifications.GET("/stream", h.Notifications.Stream)
	if opts.WebsocketEnabled {
		notifications.GET("/ws", h.Notifications.WebSocket)
	}
}
