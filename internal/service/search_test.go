package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/sma-console-gateway/internal/models"
)

func TestFilterJoinedMatchesAcrossFields(t *testing.T) {
	rows := [][]string{{"CS101", "Calculus", "Dr Smith"}, {"PH200", "Mechanics", "Dr Jones"}}
	fields := func(r []string) []string { return r }

	assert.Len(t, FilterJoined(rows, "calc", fields), 1)
	assert.Empty(t, FilterJoined(rows, "physics", fields))
	assert.Len(t, FilterJoined(rows, "  ", fields), 2)
	// the joined string spans field boundaries
	assert.Len(t, FilterJoined(rows, "calculus dr", fields), 1)
	assert.Empty(t, FilterAny(rows, "calculus dr", fields))
}

func TestSearchClassesUsesSummaryLabels(t *testing.T) {
	rows := []models.ClassSummary{
		{Class: models.Class{Name: "X-A", Semester: 1}, SubjectsLabel: "Math", TeachersLabel: "Dr Smith", SetupLabel: "1 Subject"},
		{Class: models.Class{Name: "X-B", Semester: 2}, SubjectsLabel: "Art", TeachersLabel: models.LabelNotAssigned, SetupLabel: "No Subjects"},
	}

	found := SearchClasses(rows, "SMITH")
	assert.Len(t, found, 1)
	assert.Equal(t, "X-A", found[0].Class.Name)
	assert.Len(t, SearchClasses(rows, "not assigned"), 1)
}

func TestSearchUsersAndDepartments(t *testing.T) {
	users := []models.User{{ID: "u1", Name: "Ana", Email: "ana@school.id"}, {ID: "u2", Name: "Budi"}}
	assert.Len(t, SearchUsers(users, "school.id"), 1)

	depts := []models.Department{{Name: "Science", HeadDepartmentName: "Dr Smith"}}
	assert.Len(t, SearchDepartments(depts, "smith"), 1)
	assert.Empty(t, SearchDepartments(depts, "history"))
}

func TestSearchStudentsIncludesOverviewLabels(t *testing.T) {
	rows := []models.StudentRow{{User: models.User{ID: "s1", Name: "Ana"}, SubjectsLabel: "Physics", SemesterLabel: "Semester 2"}}
	assert.Len(t, SearchStudents(rows, "physics"), 1)
	assert.Len(t, SearchStudents(rows, "semester 2"), 1)
}
