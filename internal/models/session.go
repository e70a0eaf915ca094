package models

import "time"

// Session is the authenticated state of one console user.
type Session struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refreshToken"`
	User         User      `json:"user"`
	ExpiresAt    time.Time `json:"expiresAt,omitempty"`
}

// NavItem is one navigation entry visible to a role.
type NavItem struct {
	Title string `json:"title"`
	Route string `json:"route"`
	Icon  string `json:"icon"`
}
