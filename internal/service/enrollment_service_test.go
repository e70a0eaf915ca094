package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-console-gateway/internal/models"
	appErrors "github.com/noah-isme/sma-console-gateway/pkg/errors"
)

type stubSetupReader struct {
	setups    []models.ClassSubjectSetup
	persisted []models.ClassSubjectSetupDraft
	calls     int
}

func (s *stubSetupReader) ForClass(context.Context, models.User, int64) ([]models.ClassSubjectSetup, error) {
	return s.setups, nil
}

func (s *stubSetupReader) Persist(_ context.Context, _ models.User, _ int64, drafts []models.ClassSubjectSetupDraft) ([]models.ClassSubjectSetupDraft, error) {
	s.calls++
	s.persisted = drafts
	return NormalizeDrafts(drafts), nil
}

type stubRosterWriter struct {
	ids []string
	err error
}

func (s *stubRosterWriter) ReplaceStudents(_ context.Context, _ int64, ids []string) error {
	s.ids = ids
	return s.err
}

func twoOfferings() []models.ClassSubjectSetup {
	return []models.ClassSubjectSetup{
		{ClassSubjectSetupDraft: models.ClassSubjectSetupDraft{CourseID: 1, TeacherIDs: []string{"t1"}, StudentIDs: []string{"s1"}}, ClassID: 3},
		{ClassSubjectSetupDraft: models.ClassSubjectSetupDraft{CourseID: 2, TeacherIDs: []string{"t2"}, StudentIDs: []string{}}, ClassID: 3},
	}
}

func TestEnrollmentUpdateAddsStudentToSelectedOffering(t *testing.T) {
	setups := &stubSetupReader{setups: twoOfferings()}
	rosters := &stubRosterWriter{}
	svc := NewEnrollmentService(setups, rosters, nil, nil)

	saved, err := svc.Update(context.Background(), models.User{ID: "t1", Role: models.RoleTeacher}, 3, "s2", []int64{2})
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, []string{"s1"}, saved[0].StudentIDs)
	assert.Equal(t, []string{"s2"}, saved[1].StudentIDs)
	assert.Equal(t, []string{"s1", "s2"}, rosters.ids)
}

func TestEnrollmentUpdateRemovesDeselectedOfferings(t *testing.T) {
	setups := &stubSetupReader{setups: twoOfferings()}
	svc := NewEnrollmentService(setups, &stubRosterWriter{}, nil, nil)

	saved, err := svc.Update(context.Background(), models.User{Role: models.RoleAdmin}, 3, "s1", nil)
	require.NoError(t, err)
	assert.Empty(t, saved[0].StudentIDs)
	assert.Empty(t, saved[1].StudentIDs)
}

func TestEnrollmentUpdateWithoutOfferings(t *testing.T) {
	setups := &stubSetupReader{}
	svc := NewEnrollmentService(setups, &stubRosterWriter{}, nil, nil)

	_, err := svc.Update(context.Background(), models.User{Role: models.RoleAdmin}, 3, "s1", []int64{1})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNoSubjectsConfigured))
	assert.True(t, appErrors.IsGuard(err))
	assert.Zero(t, setups.calls)
}

func TestEnrollmentRosterFailureIsSwallowed(t *testing.T) {
	setups := &stubSetupReader{setups: twoOfferings()}
	svc := NewEnrollmentService(setups, &stubRosterWriter{err: errors.New("upstream down")}, nil, nil)

	saved, err := svc.Update(context.Background(), models.User{Role: models.RoleAdmin}, 3, "s2", []int64{1})
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2"}, saved[0].StudentIDs)
}

func TestEnrollmentRejectsConcurrentSaveForSameStudent(t *testing.T) {
	inflight := NewInFlight()
	release, err := inflight.Acquire("enroll:3:s2")
	require.NoError(t, err)
	defer release()

	svc := NewEnrollmentService(&stubSetupReader{setups: twoOfferings()}, &stubRosterWriter{}, inflight, nil)
	_, err = svc.Update(context.Background(), models.User{Role: models.RoleAdmin}, 3, "s2", []int64{1})
	assert.True(t, appErrors.Is(err, appErrors.ErrSaveInProgress))

	_, err = svc.Update(context.Background(), models.User{Role: models.RoleAdmin}, 3, " ", []int64{1})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestReconcileEnrollmentKeepsPosition(t *testing.T) {
	setups := []models.ClassSubjectSetup{
		{ClassSubjectSetupDraft: models.ClassSubjectSetupDraft{CourseID: 1, StudentIDs: []string{"a", "s", "b"}}},
	}
	drafts := ReconcileEnrollment(setups, "s", []int64{1, 0, -4})
	assert.Equal(t, []string{"a", "s", "b"}, drafts[0].StudentIDs)
}

func TestInFlightReleaseAllowsReacquire(t *testing.T) {
	f := NewInFlight()
	release, err := f.Acquire("grade:1:s1")
	require.NoError(t, err)

	_, err = f.Acquire("grade:1:s1")
	assert.True(t, appErrors.Is(err, appErrors.ErrSaveInProgress))

	release()
	again, err := f.Acquire("grade:1:s1")
	require.NoError(t, err)
	again()
}
