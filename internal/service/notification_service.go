package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-console-gateway/internal/dto"
	"github.com/noah-isme/sma-console-gateway/internal/models"
	"github.com/noah-isme/sma-console-gateway/pkg/sse"
)

type notificationBackend interface {
	OpenNotificationStream(ctx context.Context) (io.ReadCloser, error)
}

type streamMetrics interface {
	StreamOpened()
	StreamClosed()
}

// NotificationService relays the student notification feed.
type NotificationService struct {
	backend    notificationBackend
	normalizer *Normalizer
	metrics    streamMetrics
	logger     *zap.Logger
}

func NewNotificationService(backend notificationBackend, normalizer *Normalizer, metrics streamMetrics, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if normalizer == nil {
		normalizer = NewNormalizer(nil)
	}
	return &NotificationService{backend: backend, normalizer: normalizer, metrics: metrics, logger: logger}
}

// Stream reads the upstream feed and calls emit with the full list, newest
// first, after every notification. Non-student callers get one empty list.
// Malformed events are skipped. Stream returns nil once ctx is cancelled or
// the upstream closes, and stops early if emit fails.
func (s *NotificationService) Stream(ctx context.Context, caller models.User, emit func([]models.Notification) error) error {
	if caller.Role != models.RoleStudent {
		return emit([]models.Notification{})
	}

	body, err := s.backend.OpenNotificationStream(ctx)
	if err != nil {
		return err
	}
	defer body.Close() //nolint:errcheck

	if s.metrics != nil {
		s.metrics.StreamOpened()
		defer s.metrics.StreamClosed()
	}

	stop := context.AfterFunc(ctx, func() { _ = body.Close() })
	defer stop()

	feed := []models.Notification{}
	reader := sse.NewReader(body)
	for {
		event, err := reader.Next()
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return nil
			}
			return err
		}

		var raw dto.NotificationDTO
		if err := json.Unmarshal([]byte(event.Data), &raw); err != nil {
			s.logger.Debug("skip malformed notification", zap.Error(err))
			continue
		}
		item, err := s.normalizer.Notification(caller.ID, raw)
		if err != nil {
			s.logger.Debug("skip notification without id", zap.Error(err))
			continue
		}

		feed = append([]models.Notification{item}, feed...)
		snapshot := append([]models.Notification(nil), feed...)
		if err := emit(snapshot); err != nil {
			return err
		}
	}
}
