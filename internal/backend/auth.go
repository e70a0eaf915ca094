package backend

import (
	"context"
	"net/http"

	"github.com/noah-isme/sma-console-gateway/internal/dto"
)

// Login exchanges credentials for tokens.
func (c *Client) Login(ctx context.Context, req dto.LoginRequest) (dto.LoginDTO, error) {
	return call[dto.LoginDTO](ctx, c, "auth.login", http.MethodPost, "auth/Account/login", req)
}

// Register creates an account. Requires an admin token.
func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) error {
	return c.exec(ctx, "auth.register", http.MethodPost, "auth/Account/Register", req)
}

// RefreshToken rotates the access token.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (dto.RefreshDTO, error) {
	return call[dto.RefreshDTO](ctx, c, "auth.refresh", http.MethodPost, "auth/Account/RefreshToken",
		dto.RefreshTokenPayload{RefreshToken: refreshToken})
}
