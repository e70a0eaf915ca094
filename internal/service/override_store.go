package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-console-gateway/internal/dto"
	"github.com/noah-isme/sma-console-gateway/internal/models"
	"github.com/noah-isme/sma-console-gateway/internal/repository"
	appErrors "github.com/noah-isme/sma-console-gateway/pkg/errors"
)

// BlobRepository persists one opaque value per key.
type BlobRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type storeMetrics interface {
	RecordStoreOperation(operation, result string)
}

// storedDraft tolerates course ids persisted as strings or garbage.
type storedDraft struct {
	CourseID   dto.Number `json:"courseId"`
	TeacherIDs []string   `json:"teacherIds"`
	StudentIDs []string   `json:"studentIds"`
}

// OverrideStore keeps the multi-offering class setup drafts as a single JSON
// blob shaped {"<classId>": [draft, ...]}. Reads and writes within this
// process are serialised; concurrent writers in other processes win last.
type OverrideStore struct {
	repo    BlobRepository
	key     string
	mu      sync.Mutex
	logger  *zap.Logger
	metrics storeMetrics
}

// NewOverrideStore constructs the store over repo under the given blob key.
func NewOverrideStore(repo BlobRepository, key string, metrics storeMetrics, logger *zap.Logger) *OverrideStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	if key == "" {
		key = "school.classSubjectSetups.v1"
	}
	return &OverrideStore{repo: repo, key: key, logger: logger, metrics: metrics}
}

func (s *OverrideStore) record(op, result string) {
	if s.metrics != nil {
		s.metrics.RecordStoreOperation(op, result)
	}
}

// NormalizeDrafts drops drafts without a positive course id and removes blank
// and repeated teacher and student ids, keeping first-seen order.
func NormalizeDrafts(drafts []models.ClassSubjectSetupDraft) []models.ClassSubjectSetupDraft {
	out := make([]models.ClassSubjectSetupDraft, 0, len(drafts))
	for _, d := range drafts {
		if d.CourseID <= 0 {
			continue
		}
		out = append(out, models.ClassSubjectSetupDraft{
			CourseID:   d.CourseID,
			TeacherIDs: uniqueIDs(d.TeacherIDs),
			StudentIDs: uniqueIDs(d.StudentIDs),
		})
	}
	return out
}

func uniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// load returns the whole decoded blob. Missing or corrupt blobs read as empty.
func (s *OverrideStore) load(ctx context.Context) (map[string][]models.ClassSubjectSetupDraft, error) {
	result := make(map[string][]models.ClassSubjectSetupDraft)

	raw, err := s.repo.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, repository.ErrBlobNotFound) {
			s.record("read", "empty")
			return result, nil
		}
		s.record("read", "error")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "read class setup store")
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		s.logger.Warn("class setup store is corrupt, treating as empty", zap.String("key", s.key), zap.Error(err))
		s.record("read", "corrupt")
		return result, nil
	}

	for classKey, value := range entries {
		var stored []storedDraft
		if err := json.Unmarshal(value, &stored); err != nil {
			s.logger.Warn("class setup entry is corrupt, skipping", zap.String("class", classKey), zap.Error(err))
			continue
		}
		drafts := make([]models.ClassSubjectSetupDraft, 0, len(stored))
		for _, d := range stored {
			drafts = append(drafts, models.ClassSubjectSetupDraft{
				CourseID:   int64(d.CourseID.Int()),
				TeacherIDs: d.TeacherIDs,
				StudentIDs: d.StudentIDs,
			})
		}
		result[classKey] = NormalizeDrafts(drafts)
	}
	s.record("read", "ok")
	return result, nil
}

// stored returns the normalized drafts persisted for classID, or nil.
func (s *OverrideStore) stored(ctx context.Context, classID int64) ([]models.ClassSubjectSetupDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return all[strconv.FormatInt(classID, 10)], nil
}

// Snapshot returns every stored entry keyed by class id.
func (s *OverrideStore) Snapshot(ctx context.Context) (map[string][]models.ClassSubjectSetupDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// LegacyDraft synthesizes the single-offering draft of a class that was never
// configured with multiple subjects. A class without a course yields nothing.
func LegacyDraft(class models.Class) []models.ClassSubjectSetupDraft {
	if class.CourseID == nil || *class.CourseID <= 0 {
		return []models.ClassSubjectSetupDraft{}
	}
	teachers := []string{}
	if class.TeacherID != nil && *class.TeacherID != "" {
		teachers = append(teachers, *class.TeacherID)
	}
	return NormalizeDrafts([]models.ClassSubjectSetupDraft{{
		CourseID:   *class.CourseID,
		TeacherIDs: teachers,
		StudentIDs: class.StudentIDs(),
	}})
}

// Replace persists the normalized drafts for classID. An empty list removes
// the class entry.
func (s *OverrideStore) Replace(ctx context.Context, classID int64, drafts []models.ClassSubjectSetupDraft) ([]models.ClassSubjectSetupDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	normalized := NormalizeDrafts(drafts)
	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	classKey := strconv.FormatInt(classID, 10)
	if len(normalized) == 0 {
		delete(all, classKey)
	} else {
		all[classKey] = normalized
	}

	if len(all) == 0 {
		if err := s.repo.Delete(ctx, s.key); err != nil {
			s.record("write", "error")
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "clear class setup store")
		}
		s.record("write", "ok")
		return normalized, nil
	}

	payload, err := json.Marshal(all)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode class setup store")
	}
	if err := s.repo.Put(ctx, s.key, payload); err != nil {
		s.record("write", "error")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "write class setup store")
	}
	s.record("write", "ok")
	return normalized, nil
}
