package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-console-gateway/internal/service"
	appErrors "github.com/noah-isme/sma-console-gateway/pkg/errors"
	"github.com/noah-isme/sma-console-gateway/pkg/response"
)

// Require lets the request through only when the session role may perform
// action on resource.
func Require(policy *service.AccessPolicy, resource service.Resource, action service.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			return
		}
		if !policy.Allowed(user.Role, resource, action) {
			response.Error(c, appErrors.ErrForbidden)
			return
		}
		c.Next()
	}
}

// RequireSelfOr allows a student to read their own record by :id and any
// role granted action on resource to read everyone's.
func RequireSelfOr(policy *service.AccessPolicy, resource service.Resource, action service.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			return
		}
		if policy.Allowed(user.Role, resource, action) {
			c.Next()
			return
		}
		if id := c.Param("id"); id != "" && id == user.ID {
			c.Next()
			return
		}
		response.Error(c, appErrors.ErrForbidden)
	}
}
