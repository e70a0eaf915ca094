package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-console-gateway/internal/models"
	"github.com/noah-isme/sma-console-gateway/internal/service"
	"github.com/noah-isme/sma-console-gateway/pkg/response"
)

type userService interface {
	Users(ctx context.Context, role models.Role) ([]models.User, error)
	SetUserActive(ctx context.Context, id string, active bool) error
	DeleteUser(ctx context.Context, id string) error
}

// UserHandler manages accounts.
type UserHandler struct {
	users userService
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(users userService) *UserHandler {
	return &UserHandler{users: users}
}

// List godoc
// @Summary List users
// @Tags Users
// @Produce json
// @Param role query string false "Admin, Teacher or Student"
// @Param q query string false "Search"
// @Success 200 {object} response.Envelope
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.Users(c.Request.Context(), models.Role(c.Query("role")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, service.SearchUsers(users, searchQuery(c)), nil)
}

// Activate godoc
// @Summary Activate user
// @Tags Users
// @Param id path string true "User ID"
// @Success 204
// @Router /users/{id}/activate [put]
func (h *UserHandler) Activate(c *gin.Context) {
	h.setActive(c, true)
}

// Deactivate godoc
// @Summary Deactivate user
// @Tags Users
// @Param id path string true "User ID"
// @Success 204
// @Router /users/{id}/deactivate [put]
func (h *UserHandler) Deactivate(c *gin.Context) {
	h.setActive(c, false)
}

func (h *UserHandler) setActive(c *gin.Context, active bool) {
	if err := h.users.SetUserActive(c.Request.Context(), c.Param("id"), active); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Delete godoc
// @Summary Delete user
// @Tags Users
// @Param id path string true "User ID"
// @Success 204
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.users.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
