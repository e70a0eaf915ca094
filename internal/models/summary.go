package models

import (
	"fmt"
	"strings"
)

const (
	LabelNotAssigned = "Not Assigned"
	LabelNoSubjects  = "No Subjects"
	LabelNoTeachers  = "No Teachers"
	LabelNoClasses   = "No Classes"
)

// ClassSummary is the per-class reduction shown on the classes screen.
type ClassSummary struct {
	Class         Class    `json:"class"`
	SubjectNames  []string `json:"subjectNames"`
	TeacherNames  []string `json:"teacherNames"`
	StudentsCount int      `json:"studentsCount"`
	SetupCount    int      `json:"setupCount"`
	SubjectsLabel string   `json:"subjectsLabel"`
	TeachersLabel string   `json:"teachersLabel"`
	SetupLabel    string   `json:"setupLabel"`
}

// CourseSummary is the per-course reduction shown on the courses screen.
type CourseSummary struct {
	Course        Course   `json:"course"`
	TeacherNames  []string `json:"teacherNames"`
	ClassCount    int      `json:"classCount"`
	TeachersLabel string   `json:"teachersLabel"`
	ClassesLabel  string   `json:"classesLabel"`
}

// StudentAcademicOverview aggregates one student's memberships across classes.
// Semester is the highest semester seen, nil when none resolved.
type StudentAcademicOverview struct {
	StudentID    string   `json:"studentId"`
	Semester     *int     `json:"semester"`
	ClassNames   []string `json:"classNames"`
	CourseNames  []string `json:"courseNames"`
	TeacherNames []string `json:"teacherNames"`
}

func (o StudentAcademicOverview) SemesterLabel() string {
	if o.Semester == nil || *o.Semester == 0 {
		return LabelNotAssigned
	}
	return fmt.Sprintf("Semester %d", *o.Semester)
}

func (o StudentAcademicOverview) SubjectsLabel() string {
	return joinOr(o.CourseNames, LabelNoSubjects)
}

func (o StudentAcademicOverview) TeachersLabel() string {
	return joinOr(o.TeacherNames, LabelNoTeachers)
}

func (o StudentAcademicOverview) ClassesLabel() string {
	return joinOr(o.ClassNames, LabelNoClasses)
}

// StudentRow pairs a student account with its overview for listings.
type StudentRow struct {
	User          User                    `json:"user"`
	Overview      StudentAcademicOverview `json:"overview"`
	SemesterLabel string                  `json:"semesterLabel"`
	SubjectsLabel string                  `json:"subjectsLabel"`
	TeachersLabel string                  `json:"teachersLabel"`
	ClassesLabel  string                  `json:"classesLabel"`
}

// CountLabel renders "No <plural>", "1 <singular>" or "N <plural>".
func CountLabel(n int, singular, plural string) string {
	switch n {
	case 0:
		return "No " + plural
	case 1:
		return "1 " + singular
	default:
		return fmt.Sprintf("%d %s", n, plural)
	}
}

func joinOr(values []string, empty string) string {
	if len(values) == 0 {
		return empty
	}
	return strings.Join(values, ", ")
}
