package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-console-gateway/internal/dto"
	"github.com/noah-isme/sma-console-gateway/internal/models"
	"github.com/noah-isme/sma-console-gateway/internal/repository"
	appErrors "github.com/noah-isme/sma-console-gateway/pkg/errors"
)

// Claim names the backend may use for the same value.
var (
	claimUserID   = []string{"nameid", "sub", "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier"}
	claimEmail    = []string{"email", "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/emailaddress"}
	claimRole     = []string{"role", "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"}
	claimUserName = []string{"unique_name", "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/name"}
)

// DecodeToken reads the payload of a bearer token without verifying its
// signature. The backend that issued it is the trust boundary.
func DecodeToken(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func claimString(claims jwt.MapClaims, keys ...string) string {
	for _, key := range keys {
		if v, ok := claims[key].(string); ok {
			return v
		}
	}
	return ""
}

// TokenExpired reports whether token is unreadable, lacks a numeric exp
// claim, or expires at or before now.
func TokenExpired(token string, now time.Time) bool {
	claims, err := DecodeToken(token)
	if err != nil {
		return true
	}
	if _, ok := claims["exp"].(float64); !ok {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return !exp.Time.After(now)
}

func tokenExpiry(token string) time.Time {
	claims, err := DecodeToken(token)
	if err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time.UTC()
}

// UserFromClaims derives the session user carried by a token.
func UserFromClaims(claims jwt.MapClaims) models.User {
	name := claimString(claims, claimUserName...)
	return models.User{
		ID:       claimString(claims, claimUserID...),
		UserName: name,
		Name:     name,
		Email:    claimString(claims, claimEmail...),
		Role:     models.ParseRole(claimString(claims, claimRole...)),
		IsActive: true,
	}
}

type authBackend interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginDTO, error)
	RefreshToken(ctx context.Context, refreshToken string) (dto.RefreshDTO, error)
}

// AuthService exchanges credentials for sessions. It keeps no state.
type AuthService struct {
	backend   authBackend
	validator *validator.Validate
	now       func() time.Time
}

func NewAuthService(backend authBackend, validate *validator.Validate) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{backend: backend, validator: validate, now: time.Now}
}

// Login authenticates against the backend and builds the session user from
// the login response and token claims.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*models.Session, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	data, err := s.backend.Login(ctx, req)
	if err != nil {
		return nil, err
	}

	claims, _ := DecodeToken(data.Token)
	user := models.User{
		UserName: data.UserName,
		Name:     data.Name,
		Role:     models.ParseRole(data.Role),
		IsActive: true,
	}
	if claims != nil {
		user.ID = claimString(claims, claimUserID...)
		user.Email = claimString(claims, claimEmail...)
	}

	return &models.Session{
		Token:        data.Token,
		RefreshToken: data.RefreshToken,
		User:         user,
		ExpiresAt:    tokenExpiry(data.Token),
	}, nil
}

// Refresh trades a refresh token for a new session. Fields known for the
// current user win over the new token's claims.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string, current *models.User) (*models.Session, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "refresh token is required")
	}
	data, err := s.backend.RefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	claims, _ := DecodeToken(data.AccessToken)
	if claims == nil {
		claims = jwt.MapClaims{}
	}
	fromToken := UserFromClaims(claims)
	roleClaim := claimString(claims, claimRole...)

	var known models.User
	if current != nil {
		known = *current
	}
	role := known.Role
	if role == "" {
		role = models.ParseRole(roleClaim)
	}

	return &models.Session{
		Token:        data.AccessToken,
		RefreshToken: data.RefreshToken,
		User: models.User{
			ID:       nameOr(known.ID, fromToken.ID),
			UserName: nameOr(known.UserName, fromToken.UserName),
			Name:     nameOr(known.Name, fromToken.Name),
			Email:    known.Email,
			Role:     role,
			IsActive: true,
		},
		ExpiresAt: tokenExpiry(data.AccessToken),
	}, nil
}

// Resolve turns a bearer token into its user, rejecting expired tokens.
func (s *AuthService) Resolve(token string) (models.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.User{}, appErrors.Clone(appErrors.ErrUnauthorized, "missing bearer token")
	}
	if TokenExpired(token, s.now()) {
		return models.User{}, appErrors.Clone(appErrors.ErrSessionExpired, "")
	}
	claims, err := DecodeToken(token)
	if err != nil {
		return models.User{}, appErrors.Wrap(err, appErrors.ErrSessionExpired.Code, appErrors.ErrSessionExpired.Status, appErrors.MessageSessionExpired)
	}
	return UserFromClaims(claims), nil
}

// SessionManager holds one user's session in memory and mirrors it to a blob
// store, the way the operator CLI keeps its login between runs.
type SessionManager struct {
	auth     *AuthService
	repo     BlobRepository
	key      string
	logger   *zap.Logger
	now      func() time.Time
	onLogout func()

	mu      sync.RWMutex
	current *models.Session
}

// NewSessionManager constructs a manager persisting under key.
func NewSessionManager(auth *AuthService, repo BlobRepository, key string, logger *zap.Logger) *SessionManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if key == "" {
		key = "session"
	}
	return &SessionManager{auth: auth, repo: repo, key: key, logger: logger, now: time.Now}
}

// OnLogout registers a hook run after every logout.
func (m *SessionManager) OnLogout(fn func()) {
	m.mu.Lock()
	m.onLogout = fn
	m.mu.Unlock()
}

// Load restores the persisted session. An expired or unreadable session is
// cleared and nil returned.
func (m *SessionManager) Load(ctx context.Context) (*models.Session, error) {
	raw, err := m.repo.Get(ctx, m.key)
	if err != nil {
		if errors.Is(err, repository.ErrBlobNotFound) {
			m.set(nil)
			return nil, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "read session")
	}

	var session models.Session
	if err := json.Unmarshal(raw, &session); err != nil || session.Token == "" {
		m.logger.Warn("stored session unreadable, clearing")
		return nil, m.clear(ctx)
	}
	if TokenExpired(session.Token, m.now()) {
		m.logger.Info("stored session expired, clearing")
		return nil, m.clear(ctx)
	}
	m.set(&session)
	return &session, nil
}

// Login authenticates and persists the new session.
func (m *SessionManager) Login(ctx context.Context, req dto.LoginRequest) (*models.Session, error) {
	session, err := m.auth.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := m.persist(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Refresh renews the session. Any failure logs the user out.
func (m *SessionManager) Refresh(ctx context.Context) (*models.Session, error) {
	current := m.Current()
	if current == nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "not logged in")
	}
	session, err := m.auth.Refresh(ctx, current.RefreshToken, &current.User)
	if err != nil {
		if logoutErr := m.Logout(ctx); logoutErr != nil {
			m.logger.Warn("logout after failed refresh", zap.Error(logoutErr))
		}
		return nil, err
	}
	if err := m.persist(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Logout clears memory and storage.
func (m *SessionManager) Logout(ctx context.Context) error {
	err := m.clear(ctx)
	m.mu.RLock()
	hook := m.onLogout
	m.mu.RUnlock()
	if hook != nil {
		hook()
	}
	return err
}

// Current returns a copy of the in-memory session.
func (m *SessionManager) Current() *models.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil
	}
	copied := *m.current
	return &copied
}

// IsAuthenticated reports whether a token is held and not yet expired.
func (m *SessionManager) IsAuthenticated() bool {
	current := m.Current()
	return current != nil && current.Token != "" && !TokenExpired(current.Token, m.now())
}

// HasRole compares the current user's role exactly.
func (m *SessionManager) HasRole(role models.Role) bool {
	current := m.Current()
	return current != nil && current.User.Role == role
}

func (m *SessionManager) persist(ctx context.Context, session *models.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode session")
	}
	if err := m.repo.Put(ctx, m.key, payload); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "write session")
	}
	m.set(session)
	return nil
}

func (m *SessionManager) clear(ctx context.Context) error {
	m.set(nil)
	if err := m.repo.Delete(ctx, m.key); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "clear session")
	}
	return nil
}

func (m *SessionManager) set(session *models.Session) {
	m.mu.Lock()
	m.current = session
	m.mu.Unlock()
}
