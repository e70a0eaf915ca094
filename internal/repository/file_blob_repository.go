package repository

import (
	"context"
	"errors"

	"github.com/noah-isme/sma-console-gateway/pkg/storage"
)

// FileBlobRepository keeps blobs as files under a local directory.
type FileBlobRepository struct {
	storage *storage.LocalStorage
}

// NewFileBlobRepository constructs the repository.
func NewFileBlobRepository(store *storage.LocalStorage) *FileBlobRepository {
	return &FileBlobRepository{storage: store}
}

// Get returns the blob stored under key.
func (r *FileBlobRepository) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := r.storage.Read(key + ".json")
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrBlobNotFound
	}
	return data, err
}

// Put replaces the blob stored under key.
func (r *FileBlobRepository) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.storage.Save(key+".json", value)
}

// Delete removes key. Missing keys are not an error.
func (r *FileBlobRepository) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.storage.Delete(key + ".json")
}
