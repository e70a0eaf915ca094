package models

// ClassSubjectSetupDraft is the authoring form of one (class, course) offering
// before names are resolved.
type ClassSubjectSetupDraft struct {
	CourseID   int64    `json:"courseId"`
	TeacherIDs []string `json:"teacherIds"`
	StudentIDs []string `json:"studentIds"`
}

// ClassSubjectSetup is a resolved offering with classroom context.
type ClassSubjectSetup struct {
	ClassSubjectSetupDraft
	ClassID        int64    `json:"classId"`
	ClassName      string   `json:"className"`
	Semester       int      `json:"semester"`
	DepartmentID   int64    `json:"departmentId,omitempty"`
	DepartmentName string   `json:"departmentName,omitempty"`
	CourseName     string   `json:"courseName"`
	TeacherNames   []string `json:"teacherNames"`
	StudentNames   []string `json:"studentNames"`
}

// Draft strips resolved names from the setup.
func (s ClassSubjectSetup) Draft() ClassSubjectSetupDraft {
	return ClassSubjectSetupDraft{
		CourseID:   s.CourseID,
		TeacherIDs: append([]string(nil), s.TeacherIDs...),
		StudentIDs: append([]string(nil), s.StudentIDs...),
	}
}

// SetupOptions lists what an academic setup editor may choose from for one class.
type SetupOptions struct {
	ClassID      int64                    `json:"classId"`
	Courses      []Course                 `json:"courses"`
	Teachers     []User                   `json:"teachers"`
	Existing     []ClassSubjectSetupDraft `json:"existing"`
	GuardMessage string                   `json:"guardMessage,omitempty"`
}
