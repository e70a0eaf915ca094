package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-console-gateway/internal/models"
	appErrors "github.com/noah-isme/sma-console-gateway/pkg/errors"
)

type setupReader interface {
	ForClass(ctx context.Context, caller models.User, classID int64) ([]models.ClassSubjectSetup, error)
	Persist(ctx context.Context, caller models.User, classID int64, drafts []models.ClassSubjectSetupDraft) ([]models.ClassSubjectSetupDraft, error)
}

type rosterWriter interface {
	ReplaceStudents(ctx context.Context, id int64, studentIDs []string) error
}

// EnrollmentService edits which offerings of a class one student attends.
type EnrollmentService struct {
	setups   setupReader
	rosters  rosterWriter
	inflight *InFlight
	logger   *zap.Logger
}

// NewEnrollmentService constructs the enrollment reconciler.
func NewEnrollmentService(setups setupReader, rosters rosterWriter, inflight *InFlight, logger *zap.Logger) *EnrollmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if inflight == nil {
		inflight = NewInFlight()
	}
	return &EnrollmentService{setups: setups, rosters: rosters, inflight: inflight, logger: logger}
}

// Update adds the student to every offering whose course is in courseIDs and
// removes them from the rest, saves the drafts and then syncs the class roster
// to the union of all offerings. Roster sync failures are logged only.
func (s *EnrollmentService) Update(ctx context.Context, caller models.User, classID int64, studentID string, courseIDs []int64) ([]models.ClassSubjectSetupDraft, error) {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id is required")
	}

	release, err := s.inflight.Acquire(fmt.Sprintf("enroll:%d:%s", classID, studentID))
	if err != nil {
		return nil, err
	}
	defer release()

	setups, err := s.setups.ForClass(ctx, caller, classID)
	if err != nil {
		return nil, err
	}
	if len(setups) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNoSubjectsConfigured, "")
	}

	drafts := ReconcileEnrollment(setups, studentID, courseIDs)
	saved, err := s.setups.Persist(ctx, caller, classID, drafts)
	if err != nil {
		return nil, err
	}

	union := []string{}
	for _, d := range drafts {
		for _, id := range d.StudentIDs {
			union = pushUnique(union, id)
		}
	}
	if err := s.rosters.ReplaceStudents(ctx, classID, union); err != nil {
		s.logger.Warn("class roster sync failed", zap.Int64("class_id", classID), zap.Error(err))
	}
	return saved, nil
}

// ReconcileEnrollment recomputes each offering's student list for one student.
func ReconcileEnrollment(setups []models.ClassSubjectSetup, studentID string, courseIDs []int64) []models.ClassSubjectSetupDraft {
	selected := make(map[int64]struct{}, len(courseIDs))
	for _, id := range courseIDs {
		if id > 0 {
			selected[id] = struct{}{}
		}
	}

	drafts := make([]models.ClassSubjectSetupDraft, 0, len(setups))
	for _, setup := range setups {
		students := make([]string, 0, len(setup.StudentIDs)+1)
		_, enrolled := selected[setup.CourseID]
		for _, id := range setup.StudentIDs {
			if id == studentID && !enrolled {
				continue
			}
			students = pushUnique(students, id)
		}
		if enrolled {
			students = pushUnique(students, studentID)
		}
		drafts = append(drafts, models.ClassSubjectSetupDraft{
			CourseID:   setup.CourseID,
			TeacherIDs: append([]string{}, setup.TeacherIDs...),
			StudentIDs: students,
		})
	}
	return drafts
}
