package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-console-gateway/internal/middleware"
	"github.com/noah-isme/sma-console-gateway/internal/models"
	appErrors "github.com/noah-isme/sma-console-gateway/pkg/errors"
	"github.com/noah-isme/sma-console-gateway/pkg/response"
)

// sessionUser returns the caller resolved by the session middleware and
// writes a 401 when there is none.
func sessionUser(c *gin.Context) (models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return models.User{}, false
	}
	return user, true
}

func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid "+name))
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return false
	}
	return true
}

func searchQuery(c *gin.Context) string {
	return strings.TrimSpace(c.Query("q"))
}
