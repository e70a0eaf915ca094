package service

import (
	"fmt"
	"strings"

	"github.com/noah-isme/sma-console-gateway/internal/models"
	appErrors "github.com/noah-isme/sma-console-gateway/pkg/errors"
)

// SetupSnapshot is the set of collections one join works from.
type SetupSnapshot struct {
	Classes  []models.Class
	Courses  []models.Course
	Teachers []models.User
	Students []models.User
	// Stored holds persisted drafts keyed by class id. Classes without an
	// entry fall back to their legacy single-subject fields.
	Stored map[string][]models.ClassSubjectSetupDraft
}

// BuildClassSubjectSetups joins classes with their drafts and resolves course,
// teacher and student names. Unresolvable ids render as the raw id.
func BuildClassSubjectSetups(snap SetupSnapshot) []models.ClassSubjectSetup {
	courses := make(map[int64]models.Course, len(snap.Courses))
	for _, c := range snap.Courses {
		courses[c.ID] = c
	}
	teacherNames := userNames(snap.Teachers)
	studentNames := userNames(snap.Students)

	out := make([]models.ClassSubjectSetup, 0, len(snap.Classes))
	for _, class := range snap.Classes {
		drafts := snap.Stored[class.Key()]
		if len(drafts) == 0 {
			// A legacy class with nobody enrolled stays unconfigured.
			if len(class.Students) == 0 {
				continue
			}
			drafts = LegacyDraft(class)
		}
		for _, draft := range drafts {
			out = append(out, resolveSetup(class, draft, courses, teacherNames, studentNames))
		}
	}
	return out
}

// SetupsForClass runs the join for a single class.
func SetupsForClass(snap SetupSnapshot, classID int64) []models.ClassSubjectSetup {
	for _, class := range snap.Classes {
		if class.ID == classID {
			single := snap
			single.Classes = []models.Class{class}
			return BuildClassSubjectSetups(single)
		}
	}
	return []models.ClassSubjectSetup{}
}

func userNames(users []models.User) map[string]string {
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names
}

func resolveSetup(class models.Class, draft models.ClassSubjectSetupDraft, courses map[int64]models.Course, teacherNames, studentNames map[string]string) models.ClassSubjectSetup {
	courseName := fmt.Sprintf("Course #%d", draft.CourseID)
	if course, ok := courses[draft.CourseID]; ok {
		courseName = course.DisplayName()
	} else if class.CourseName != "" {
		courseName = class.CourseName
	}

	teachers := make([]string, 0, len(draft.TeacherIDs))
	for _, id := range draft.TeacherIDs {
		teachers = append(teachers, nameOr(teacherNames[id], id))
	}

	rosterNames := make(map[string]string, len(class.Students))
	for _, s := range class.Students {
		rosterNames[s.StudentID] = s.StudentName
	}

	studentIDs := draft.StudentIDs
	if len(studentIDs) == 0 {
		studentIDs = class.StudentIDs()
	}
	students := make([]string, 0, len(studentIDs))
	for _, id := range studentIDs {
		students = append(students, nameOr(studentNames[id], nameOr(rosterNames[id], id)))
	}

	return models.ClassSubjectSetup{
		ClassSubjectSetupDraft: models.ClassSubjectSetupDraft{
			CourseID:   draft.CourseID,
			TeacherIDs: append([]string{}, draft.TeacherIDs...),
			StudentIDs: append([]string{}, studentIDs...),
		},
		ClassID:        class.ID,
		ClassName:      class.Name,
		Semester:       class.Semester,
		DepartmentID:   class.DepartmentID,
		DepartmentName: class.DepartmentName,
		CourseName:     courseName,
		TeacherNames:   teachers,
		StudentNames:   students,
	}
}

func nameOr(name, fallback string) string {
	if name != "" {
		return name
	}
	return fallback
}

// pushUnique appends the trimmed value unless it is blank or already present.
func pushUnique(target []string, value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return target
	}
	for _, existing := range target {
		if existing == value {
			return target
		}
	}
	return append(target, value)
}

func groupByClass(setups []models.ClassSubjectSetup) map[int64][]models.ClassSubjectSetup {
	grouped := make(map[int64][]models.ClassSubjectSetup)
	for _, s := range setups {
		grouped[s.ClassID] = append(grouped[s.ClassID], s)
	}
	return grouped
}

// ClassSummaries reduces the setups of each class into its listing labels.
func ClassSummaries(classes []models.Class, setups []models.ClassSubjectSetup) []models.ClassSummary {
	grouped := groupByClass(setups)
	out := make([]models.ClassSummary, 0, len(classes))
	for _, class := range classes {
		classSetups := grouped[class.ID]

		subjects := []string{}
		teachers := []string{}
		studentIDs := []string{}
		for _, s := range classSetups {
			subjects = pushUnique(subjects, s.CourseName)
			for _, name := range s.TeacherNames {
				teachers = pushUnique(teachers, name)
			}
			for _, id := range s.StudentIDs {
				studentIDs = pushUnique(studentIDs, id)
			}
		}

		count := len(studentIDs)
		if count == 0 {
			count = len(class.Students)
			if count == 0 {
				count = class.StudentCount
			}
		}

		out = append(out, models.ClassSummary{
			Class:         class,
			SubjectNames:  subjects,
			TeacherNames:  teachers,
			StudentsCount: count,
			SetupCount:    len(classSetups),
			SubjectsLabel: labelOr(subjects, class.CourseName),
			TeachersLabel: labelOr(teachers, class.TeacherName),
			SetupLabel:    models.CountLabel(len(classSetups), "Subject", "Subjects"),
		})
	}
	return out
}

func labelOr(names []string, legacy string) string {
	if len(names) > 0 {
		return strings.Join(names, ", ")
	}
	if legacy != "" {
		return legacy
	}
	return models.LabelNotAssigned
}

// CourseSummaries lists who teaches each course and in how many classes.
func CourseSummaries(courses []models.Course, setups []models.ClassSubjectSetup) []models.CourseSummary {
	teachers := make(map[int64][]string)
	classes := make(map[int64]map[int64]struct{})
	for _, s := range setups {
		for _, name := range s.TeacherNames {
			teachers[s.CourseID] = pushUnique(teachers[s.CourseID], name)
		}
		if classes[s.CourseID] == nil {
			classes[s.CourseID] = make(map[int64]struct{})
		}
		classes[s.CourseID][s.ClassID] = struct{}{}
	}

	out := make([]models.CourseSummary, 0, len(courses))
	for _, course := range courses {
		names := teachers[course.ID]
		if names == nil {
			names = []string{}
		}
		count := len(classes[course.ID])
		out = append(out, models.CourseSummary{
			Course:        course,
			TeacherNames:  names,
			ClassCount:    count,
			TeachersLabel: labelOr(names, ""),
			ClassesLabel:  models.CountLabel(count, "Class", "Classes"),
		})
	}
	return out
}

// StudentOverviews aggregates every student's memberships. Classes without
// any setup contribute their legacy course and teacher over the roster.
func StudentOverviews(classes []models.Class, setups []models.ClassSubjectSetup) map[string]*models.StudentAcademicOverview {
	overviews := make(map[string]*models.StudentAcademicOverview)
	get := func(id string) *models.StudentAcademicOverview {
		o, ok := overviews[id]
		if !ok {
			o = &models.StudentAcademicOverview{StudentID: id, ClassNames: []string{}, CourseNames: []string{}, TeacherNames: []string{}}
			overviews[id] = o
		}
		return o
	}
	raise := func(o *models.StudentAcademicOverview, semester int) {
		if o.Semester == nil || semester > *o.Semester {
			v := semester
			o.Semester = &v
		}
	}

	configured := make(map[int64]struct{})
	for _, s := range setups {
		configured[s.ClassID] = struct{}{}
		for _, id := range s.StudentIDs {
			o := get(id)
			raise(o, s.Semester)
			o.ClassNames = pushUnique(o.ClassNames, s.ClassName)
			o.CourseNames = pushUnique(o.CourseNames, s.CourseName)
			for _, name := range s.TeacherNames {
				o.TeacherNames = pushUnique(o.TeacherNames, name)
			}
		}
	}

	for _, class := range classes {
		if _, ok := configured[class.ID]; ok {
			continue
		}
		for _, student := range class.Students {
			o := get(student.StudentID)
			raise(o, class.Semester)
			o.ClassNames = pushUnique(o.ClassNames, class.Name)
			o.CourseNames = pushUnique(o.CourseNames, class.CourseName)
			o.TeacherNames = pushUnique(o.TeacherNames, class.TeacherName)
		}
	}
	return overviews
}

// EnrolledOverview builds a student's overview from the classes their own
// session lists. Those rows carry the course and teacher names directly.
func EnrolledOverview(studentID string, classes []models.Class) *models.StudentAcademicOverview {
	o := &models.StudentAcademicOverview{StudentID: studentID, ClassNames: []string{}, CourseNames: []string{}, TeacherNames: []string{}}
	for _, class := range classes {
		if class.Semester > 0 && (o.Semester == nil || class.Semester > *o.Semester) {
			v := class.Semester
			o.Semester = &v
		}
		o.ClassNames = pushUnique(o.ClassNames, class.Name)
		o.CourseNames = pushUnique(o.CourseNames, class.CourseName)
		o.TeacherNames = pushUnique(o.TeacherNames, class.TeacherName)
	}
	return o
}

// StudentRows pairs each student account with its overview and labels.
func StudentRows(students []models.User, overviews map[string]*models.StudentAcademicOverview) []models.StudentRow {
	rows := make([]models.StudentRow, 0, len(students))
	for _, u := range students {
		overview := models.StudentAcademicOverview{StudentID: u.ID, ClassNames: []string{}, CourseNames: []string{}, TeacherNames: []string{}}
		if o, ok := overviews[u.ID]; ok {
			overview = *o
		}
		rows = append(rows, models.StudentRow{
			User:          u,
			Overview:      overview,
			SemesterLabel: overview.SemesterLabel(),
			SubjectsLabel: overview.SubjectsLabel(),
			TeachersLabel: overview.TeachersLabel(),
			ClassesLabel:  overview.ClassesLabel(),
		})
	}
	return rows
}

// DetectDuplicateCourses rejects a draft list naming the same course twice.
func DetectDuplicateCourses(drafts []models.ClassSubjectSetupDraft) error {
	seen := make(map[int64]struct{}, len(drafts))
	for _, d := range drafts {
		if d.CourseID <= 0 {
			continue
		}
		if _, dup := seen[d.CourseID]; dup {
			return appErrors.Clone(appErrors.ErrValidation, "Each subject can only be added once per class.")
		}
		seen[d.CourseID] = struct{}{}
	}
	return nil
}
