package service

import "github.com/noah-isme/sma-console-gateway/internal/models"

// Resource is a guarded area of the console.
type Resource string

// Action is what a role may do with a resource.
type Action string

const (
	ActionRead   Action = "read"
	ActionWrite  Action = "write"
	ActionSubmit Action = "submit"
)

const (
	ResourceDashboard     Resource = "dashboard"
	ResourceUsers         Resource = "users"
	ResourceAccounts      Resource = "accounts"
	ResourceDepartments   Resource = "departments"
	ResourceCourses       Resource = "courses"
	ResourceClasses       Resource = "classes"
	ResourceSetups        Resource = "setups"
	ResourceEnrollments   Resource = "enrollments"
	ResourceAssignments   Resource = "assignments"
	ResourceGrading       Resource = "grading"
	ResourceGrades        Resource = "grades"
	ResourceAttendance    Resource = "attendance"
	ResourceOwnAttendance Resource = "own-attendance"
	ResourceNotifications Resource = "notifications"
	ResourceCalendar      Resource = "calendar"
	ResourceExports       Resource = "exports"
	ResourceOverview      Resource = "student-overview"
)

type capability struct {
	resource Resource
	action   Action
}

func canRead(r Resource) capability  { return capability{r, ActionRead} }
func canWrite(r Resource) capability { return capability{r, ActionWrite} }

var capabilityTable = map[models.Role][]capability{
	models.RoleAdmin: {
		canRead(ResourceDashboard),
		canRead(ResourceUsers), canWrite(ResourceUsers),
		canWrite(ResourceAccounts),
		canRead(ResourceDepartments), canWrite(ResourceDepartments),
		canRead(ResourceCourses), canWrite(ResourceCourses),
		canRead(ResourceClasses), canWrite(ResourceClasses),
		canRead(ResourceSetups), canWrite(ResourceSetups),
		canWrite(ResourceEnrollments),
		canRead(ResourceAssignments), canWrite(ResourceAssignments),
		canRead(ResourceGrading), canWrite(ResourceGrading),
		canRead(ResourceAttendance), canWrite(ResourceAttendance),
		canRead(ResourceCalendar),
		canRead(ResourceExports),
		canRead(ResourceOverview),
	},
	models.RoleTeacher: {
		canRead(ResourceDashboard),
		canRead(ResourceClasses), canWrite(ResourceClasses),
		canRead(ResourceSetups), canWrite(ResourceSetups),
		canWrite(ResourceEnrollments),
		canRead(ResourceAssignments), canWrite(ResourceAssignments),
		canRead(ResourceGrading), canWrite(ResourceGrading),
		canRead(ResourceAttendance), canWrite(ResourceAttendance),
		canRead(ResourceCalendar),
	},
	models.RoleStudent: {
		canRead(ResourceDashboard),
		canRead(ResourceClasses),
		canRead(ResourceAssignments), {ResourceAssignments, ActionSubmit},
		canRead(ResourceGrades),
		canRead(ResourceAttendance),
		canRead(ResourceOwnAttendance),
		canRead(ResourceNotifications),
		canRead(ResourceCalendar),
	},
}

type navEntry struct {
	item     models.NavItem
	resource Resource
}

var navigation = []navEntry{
	{models.NavItem{Title: "Dashboard", Route: "/", Icon: "dashboard"}, ResourceDashboard},
	{models.NavItem{Title: "Users", Route: "/users", Icon: "group"}, ResourceUsers},
	{models.NavItem{Title: "Create Accounts", Route: "/register", Icon: "person_add"}, ResourceAccounts},
	{models.NavItem{Title: "Departments", Route: "/departments", Icon: "business"}, ResourceDepartments},
	{models.NavItem{Title: "Courses", Route: "/courses", Icon: "menu_book"}, ResourceCourses},
	{models.NavItem{Title: "Classes", Route: "/classes", Icon: "school"}, ResourceClasses},
	{models.NavItem{Title: "Assignments", Route: "/assignments", Icon: "assignment"}, ResourceAssignments},
	{models.NavItem{Title: "Attendance", Route: "/attendance", Icon: "check_circle"}, ResourceAttendance},
	{models.NavItem{Title: "Grades", Route: "/grades", Icon: "grade"}, ResourceGrades},
	{models.NavItem{Title: "Notifications", Route: "/notifications", Icon: "notifications"}, ResourceNotifications},
	{models.NavItem{Title: "Calendar", Route: "/calendar", Icon: "calendar_today"}, ResourceCalendar},
}

// AccessPolicy answers role capability questions from the static table.
type AccessPolicy struct {
	grants map[models.Role]map[capability]struct{}
}

// NewAccessPolicy indexes the capability table.
func NewAccessPolicy() *AccessPolicy {
	grants := make(map[models.Role]map[capability]struct{}, len(capabilityTable))
	for role, caps := range capabilityTable {
		set := make(map[capability]struct{}, len(caps))
		for _, c := range caps {
			set[c] = struct{}{}
		}
		grants[role] = set
	}
	return &AccessPolicy{grants: grants}
}

// Allowed reports whether role may perform action on resource.
func (p *AccessPolicy) Allowed(role models.Role, resource Resource, action Action) bool {
	_, ok := p.grants[role][capability{resource, action}]
	return ok
}

// NavItems lists the navigation entries role can open, in menu order.
func (p *AccessPolicy) NavItems(role models.Role) []models.NavItem {
	items := make([]models.NavItem, 0, len(navigation))
	for _, entry := range navigation {
		if p.Allowed(role, entry.resource, ActionRead) || p.Allowed(role, entry.resource, ActionWrite) {
			items = append(items, entry.item)
		}
	}
	return items
}
