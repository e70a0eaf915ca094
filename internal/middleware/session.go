package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-console-gateway/internal/backend"
	"github.com/noah-isme/sma-console-gateway/internal/models"
	"github.com/noah-isme/sma-console-gateway/internal/service"
	appErrors "github.com/noah-isme/sma-console-gateway/pkg/errors"
	"github.com/noah-isme/sma-console-gateway/pkg/logger"
	"github.com/noah-isme/sma-console-gateway/pkg/middleware/requestid"
	"github.com/noah-isme/sma-console-gateway/pkg/response"
)

// ContextUserKey is the gin context key storing the session user.
const ContextUserKey = "sessionUser"

// Session requires a live bearer token. The caller's user is stored on the
// gin context and the token travels on the request context to every backend
// call made while serving the request.
func Session(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			return
		}

		user, err := auth.Resolve(token)
		if err != nil {
			response.Error(c, err)
			return
		}

		ctx := backend.WithToken(c.Request.Context(), token)
		if reqID := requestid.Value(c); reqID != "" {
			ctx = backend.WithRequestID(ctx, reqID)
		}
		c.Request = c.Request.WithContext(ctx)

		c.Set(ContextUserKey, user)
		logger.Annotate(c, user.ID, string(user.Role))
		c.Next()
	}
}

// bearerToken reads the Authorization header. Browsers cannot set headers on
// EventSource or websocket requests, so an access_token query parameter is
// accepted as well.
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		if token := strings.TrimSpace(c.Query("access_token")); token != "" {
			return token, true
		}
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// CurrentUser returns the session user stored by Session.
func CurrentUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}
