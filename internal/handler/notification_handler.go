package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-console-gateway/internal/models"
	"github.com/noah-isme/sma-console-gateway/pkg/response"
)

const (
	notificationsEvent = "notifications"

	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
	wsReadLimit  = 512
)

type notificationService interface {
	Stream(ctx context.Context, caller models.User, emit func([]models.Notification) error) error
}

// NotificationHandler relays the student notification feed to browsers,
// either as server-sent events or over a websocket.
type NotificationHandler struct {
	notifications notificationService
	upgrader      websocket.Upgrader
	logger        *zap.Logger
}

// wsMessage is one frame sent to websocket clients.
type wsMessage struct {
	Event string                `json:"event"`
	Data  []models.Notification `json:"data"`
}

// NewNotificationHandler constructs the relay. An empty origin list accepts
// websocket upgrades from any origin.
func NewNotificationHandler(notifications notificationService, allowedOrigins []string, logger *zap.Logger) *NotificationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = struct{}{}
	}
	return &NotificationHandler{
		notifications: notifications,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if len(origins) == 0 {
					return true
				}
				_, ok := origins[r.Header.Get("Origin")]
				return ok
			},
		},
		logger: logger,
	}
}

// Stream godoc
// @Summary Notification feed as server-sent events
// @Description Every event carries the full feed, newest first.
// @Tags Notifications
// @Produce text/event-stream
// @Success 200 {array} models.Notification
// @Router /notifications/stream [get]
func (h *NotificationHandler) Stream(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ctx := c.Request.Context()
	err := h.notifications.Stream(ctx, user, func(items []models.Notification) error {
		c.SSEvent(notificationsEvent, items)
		c.Writer.Flush()
		return ctx.Err()
	})
	if err == nil || ctx.Err() != nil {
		return
	}
	if !c.Writer.Written() {
		c.Writer.Header().Del("Content-Type")
		response.Error(c, err)
		return
	}
	h.logger.Warn("notification stream ended", zap.String("user_id", user.ID), zap.Error(err))
}

// WebSocket godoc
// @Summary Notification feed over a websocket
// @Tags Notifications
// @Router /notifications/ws [get]
func (h *NotificationHandler) WebSocket(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close() //nolint:errcheck

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// The client never sends data; reading keeps pongs flowing and notices
	// when the peer goes away.
	go func() {
		defer cancel()
		conn.SetReadLimit(wsReadLimit)
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(wsPongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					h.logger.Debug("websocket read failed", zap.Error(err))
				}
				return
			}
		}
	}()

	go func() {
		ticker := time.NewTicker(wsPingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
					cancel()
					return
				}
			}
		}
	}()

	err = h.notifications.Stream(ctx, user, func(items []models.Notification) error {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		return conn.WriteJSON(wsMessage{Event: notificationsEvent, Data: items})
	})
	if err != nil && ctx.Err() == nil {
		h.logger.Warn("notification relay ended", zap.String("user_id", user.ID), zap.Error(err))
	}

	closing := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = conn.WriteControl(websocket.CloseMessage, closing, time.Now().Add(wsWriteWait))
}
