package models

import "time"

// DashboardStats holds the counters for the caller's role. Fields that do not
// apply to the role are omitted.
type DashboardStats struct {
	Role                 Role      `json:"role"`
	TotalStudents        *int64    `json:"totalStudents,omitempty"`
	TotalTeachers        *int64    `json:"totalTeachers,omitempty"`
	TotalDepartments     *int64    `json:"totalDepartments,omitempty"`
	TotalCourses         *int64    `json:"totalCourses,omitempty"`
	TotalClasses         *int64    `json:"totalClasses,omitempty"`
	TotalAssignedCourses *int64    `json:"totalAssignedCourses,omitempty"`
	TotalAssignments     *int64    `json:"totalAssignments,omitempty"`
	TotalEnrolledCourses *int64    `json:"totalEnrolledCourses,omitempty"`
	TotalEnrolledClasses *int64    `json:"totalEnrolledClasses,omitempty"`
	GPA                  *float64  `json:"gpa,omitempty"`
	GeneratedAt          time.Time `json:"generatedAt"`
}
