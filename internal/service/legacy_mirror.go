package service

import (
	"context"

	"github.com/noah-isme/sma-console-gateway/internal/dto"
	"github.com/noah-isme/sma-console-gateway/internal/models"
)

// LegacyMirror pushes a class's multi-offering setup back onto the backend's
// single course/teacher/roster fields.
type LegacyMirror interface {
	Mirror(ctx context.Context, caller models.User, classID int64, drafts []models.ClassSubjectSetupDraft) error
}

type classUpdater interface {
	Get(ctx context.Context, caller models.User, id int64) (*models.Class, error)
	UpdateResolved(ctx context.Context, caller models.User, id int64, req dto.ClassRequest) error
}

// FirstOfferingMirror copies the first offering onto the legacy fields. The
// choice of offering depends on draft order; later offerings are not
// represented in the backend.
type FirstOfferingMirror struct {
	classes classUpdater
}

func NewFirstOfferingMirror(classes classUpdater) *FirstOfferingMirror {
	return &FirstOfferingMirror{classes: classes}
}

// Mirror re-reads the class and posts its full payload with the first
// offering's course, first teacher and student list. No drafts, no call.
func (m *FirstOfferingMirror) Mirror(ctx context.Context, caller models.User, classID int64, drafts []models.ClassSubjectSetupDraft) error {
	if len(drafts) == 0 {
		return nil
	}
	class, err := m.classes.Get(ctx, caller, classID)
	if err != nil {
		return err
	}
	return m.classes.UpdateResolved(ctx, caller, classID, LegacyClassRequest(*class, drafts[0]))
}

// LegacyClassRequest builds the class update carrying primary as its legacy
// subject. Dates are cut to YYYY-MM-DD and a zero semester becomes 1.
func LegacyClassRequest(class models.Class, primary models.ClassSubjectSetupDraft) dto.ClassRequest {
	semester := class.Semester
	if semester == 0 {
		semester = 1
	}
	courseID := primary.CourseID
	req := dto.ClassRequest{
		Name:         class.Name,
		IsActive:     class.IsActive,
		Semester:     semester,
		StartDate:    apiDate(class.StartDate),
		EndDate:      apiDate(class.EndDate),
		DepartmentID: class.DepartmentID,
		CourseID:     &courseID,
		StudentIDs:   append([]string{}, primary.StudentIDs...),
	}
	if len(primary.TeacherIDs) > 0 {
		teacherID := primary.TeacherIDs[0]
		req.TeacherID = &teacherID
	}
	return req
}

func apiDate(value string) string {
	if len(value) > 10 {
		return value[:10]
	}
	return value
}
