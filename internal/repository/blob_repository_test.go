package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/sma-console-gateway/pkg/errors"
	"github.com/noah-isme/sma-console-gateway/pkg/storage"
)

func newBlobRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

func TestPostgresBlobRepositoryGet(t *testing.T) {
	db, mock, cleanup := newBlobRepoMock(t)
	defer cleanup()

	repo := NewPostgresBlobRepository(db)
	rows := sqlmock.NewRows([]string{"key", "value", "updated_at"}).
		AddRow("school.classSubjectSetups.v1", `{"7":[{"courseId":1}]}`, time.Now())
	mock.ExpectQuery("SELECT key, value, updated_at FROM console_blobs").
		WithArgs("school.classSubjectSetups.v1").
		WillReturnRows(rows)

	data, err := repo.Get(context.Background(), "school.classSubjectSetups.v1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"7":[{"courseId":1}]}`, string(data))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresBlobRepositoryGetMissing(t *testing.T) {
	db, mock, cleanup := newBlobRepoMock(t)
	defer cleanup()

	repo := NewPostgresBlobRepository(db)
	mock.ExpectQuery("SELECT key, value, updated_at FROM console_blobs").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrBlobNotFound)
}

func TestPostgresBlobRepositoryPutAndDelete(t *testing.T) {
	db, mock, cleanup := newBlobRepoMock(t)
	defer cleanup()

	repo := NewPostgresBlobRepository(db)
	mock.ExpectExec("INSERT INTO console_blobs").
		WithArgs("k", `{}`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("DELETE FROM console_blobs").
		WithArgs("k").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Put(context.Background(), "k", []byte(`{}`)))
	require.NoError(t, repo.Delete(context.Background(), "k"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresBlobRepositoryEnsureSchema(t *testing.T) {
	db, mock, cleanup := newBlobRepoMock(t)
	defer cleanup()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS console_blobs").WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, NewPostgresBlobRepository(db).EnsureSchema(context.Background()))
}

func TestFileBlobRepository(t *testing.T) {
	local, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	repo := NewFileBlobRepository(local)
	ctx := context.Background()

	_, err = repo.Get(ctx, "session")
	assert.ErrorIs(t, err, ErrBlobNotFound)

	require.NoError(t, repo.Put(ctx, "session", []byte(`{"token":"x"}`)))
	data, err := repo.Get(ctx, "session")
	require.NoError(t, err)
	assert.Equal(t, `{"token":"x"}`, string(data))

	require.NoError(t, repo.Delete(ctx, "session"))
	_, err = repo.Get(ctx, "session")
	assert.ErrorIs(t, err, ErrBlobNotFound)
}

func TestCacheRepositoryWithoutClientMisses(t *testing.T) {
	repo := NewCacheRepository(nil, nil)
	var dest map[string]int
	err := repo.Get(context.Background(), "dashboard:Admin:u1", &dest)
	assert.True(t, appErrors.Is(err, appErrors.ErrCacheMiss))
	assert.NoError(t, repo.Set(context.Background(), "dashboard:Admin:u1", map[string]int{"a": 1}, time.Minute))
	assert.NoError(t, repo.DeleteByPattern(context.Background(), "dashboard:*"))
}
