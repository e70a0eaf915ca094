package repository

import "errors"

// ErrBlobNotFound is returned when no blob is stored under a key.
var ErrBlobNotFound = errors.New("blob not found")
