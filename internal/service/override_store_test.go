package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-console-gateway/internal/models"
	"github.com/noah-isme/sma-console-gateway/internal/repository"
	appErrors "github.com/noah-isme/sma-console-gateway/pkg/errors"
	"github.com/noah-isme/sma-console-gateway/pkg/storage"
)

func TestOverrideStoreRoundTripIsIdempotent(t *testing.T) {
	local, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	store := NewOverrideStore(repository.NewFileBlobRepository(local), "", nil, nil)
	ctx := context.Background()

	drafts := []models.ClassSubjectSetupDraft{
		{CourseID: 1, TeacherIDs: []string{"t1", "t1", ""}, StudentIDs: []string{"s1", "s2", "s1"}},
		{CourseID: 0, TeacherIDs: []string{"t9"}},
		{CourseID: 2, TeacherIDs: []string{"t2"}},
	}

	saved, err := store.Replace(ctx, 7, drafts)
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, []string{"t1"}, saved[0].TeacherIDs)
	assert.Equal(t, []string{"s1", "s2"}, saved[0].StudentIDs)

	loaded, err := store.stored(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)

	again, err := store.Replace(ctx, 7, loaded)
	require.NoError(t, err)
	reloaded, err := store.stored(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, again, reloaded)
	assert.Equal(t, loaded, reloaded)
}

func TestOverrideStoreEmptyReplaceRemovesEntry(t *testing.T) {
	blobs := newMemoryBlobs()
	store := NewOverrideStore(blobs, "setups", nil, nil)
	ctx := context.Background()

	_, err := store.Replace(ctx, 1, []models.ClassSubjectSetupDraft{{CourseID: 3, TeacherIDs: []string{"t1"}}})
	require.NoError(t, err)
	_, err = store.Replace(ctx, 2, []models.ClassSubjectSetupDraft{{CourseID: 4, TeacherIDs: []string{"t2"}}})
	require.NoError(t, err)

	_, err = store.Replace(ctx, 1, nil)
	require.NoError(t, err)
	snap, err := store.Snapshot(ctx)
	require.NoError(t, err)
	assert.NotContains(t, snap, "1")
	assert.Contains(t, snap, "2")

	_, err = store.Replace(ctx, 2, []models.ClassSubjectSetupDraft{})
	require.NoError(t, err)
	assert.Equal(t, 1, blobs.deletes)
	_, present := blobs.data["setups"]
	assert.False(t, present)
}

func TestOverrideStoreCorruptBlobReadsEmpty(t *testing.T) {
	blobs := newMemoryBlobs()
	blobs.data["school.classSubjectSetups.v1"] = []byte("{not json")
	store := NewOverrideStore(blobs, "", nil, nil)

	snap, err := store.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap)
}

func TestOverrideStoreToleratesStringCourseIDs(t *testing.T) {
	blobs := newMemoryBlobs()
	blobs.data["school.classSubjectSetups.v1"] = []byte(`{"5":[{"courseId":"12","teacherIds":["t1"],"studentIds":[]},{"courseId":"abc","teacherIds":["t2"]}],"6":"broken"}`)
	store := NewOverrideStore(blobs, "", nil, nil)

	snap, err := store.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snap["5"], 1)
	assert.Equal(t, int64(12), snap["5"][0].CourseID)
	assert.NotContains(t, snap, "6")
}

func TestOverrideStoreReadFailure(t *testing.T) {
	blobs := newMemoryBlobs()
	blobs.getErr = errors.New("disk gone")
	store := NewOverrideStore(blobs, "", nil, nil)

	_, err := store.stored(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInternal))
}

func TestLegacyDraftFromClassFields(t *testing.T) {
	class := models.Class{
		ID:        9,
		CourseID:  int64Ptr(5),
		TeacherID: strPtr("t1"),
		Students:  []models.ClassStudent{{StudentID: "s1"}, {StudentID: "s2"}},
	}

	assert.Equal(t, []models.ClassSubjectSetupDraft{{CourseID: 5, TeacherIDs: []string{"t1"}, StudentIDs: []string{"s1", "s2"}}}, LegacyDraft(class))

	assert.Empty(t, LegacyDraft(models.Class{ID: 3}))
}
