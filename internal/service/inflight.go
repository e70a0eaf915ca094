package service

import (
	"sync"

	appErrors "github.com/noah-isme/sma-console-gateway/pkg/errors"
)

// InFlight allows one running operation per key.
type InFlight struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func NewInFlight() *InFlight {
	return &InFlight{keys: make(map[string]struct{})}
}

// Acquire claims key and returns its release func, or SAVE_IN_PROGRESS when
// the key is already held.
func (f *InFlight) Acquire(key string) (func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, busy := f.keys[key]; busy {
		return nil, appErrors.Clone(appErrors.ErrSaveInProgress, "")
	}
	f.keys[key] = struct{}{}
	return func() {
		f.mu.Lock()
		delete(f.keys, key)
		f.mu.Unlock()
	}, nil
}
