package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-console-gateway/internal/dto"
	"github.com/noah-isme/sma-console-gateway/internal/models"
	"github.com/noah-isme/sma-console-gateway/internal/service"
	"github.com/noah-isme/sma-console-gateway/pkg/response"
)

type authService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*models.Session, error)
	Refresh(ctx context.Context, refreshToken string, current *models.User) (*models.Session, error)
}

type accountRegistrar interface {
	Register(ctx context.Context, req dto.RegisterRequest) error
}

// AuthHandler exposes login, token refresh, session and account creation.
type AuthHandler struct {
	auth     authService
	accounts accountRegistrar
	policy   *service.AccessPolicy
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(auth authService, accounts accountRegistrar, policy *service.AccessPolicy) *AuthHandler {
	if policy == nil {
		policy = service.NewAccessPolicy()
	}
	return &AuthHandler{auth: auth, accounts: accounts, policy: policy}
}

// SessionView is the current caller plus the navigation their role may open.
type SessionView struct {
	User       models.User      `json:"user"`
	Navigation []models.NavItem `json:"navigation"`
}

// Login godoc
// @Summary Login against the school backend
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body dto.LoginRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	session, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, session, nil)
}

// Refresh godoc
// @Summary Exchange a refresh token for a new token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body dto.RefreshRequest true "Refresh token"
// @Success 200 {object} response.Envelope
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindJSON(c, &req) {
		return
	}
	session, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken, nil)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, session, nil)
}

// Session godoc
// @Summary Current session user and navigation
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	response.JSON(c, http.StatusOK, SessionView{User: user, Navigation: h.policy.NavItems(user.Role)}, nil)
}

// Register godoc
// @Summary Create an account
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body dto.RegisterRequest true "Account"
// @Success 201 {object} response.Envelope
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.accounts.Register(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"userName": req.UserName, "role": req.Role})
}
