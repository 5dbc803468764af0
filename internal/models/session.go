package models

import "time"

// Session is one logged-in web session, created after a successful
// OAuth code exchange.
type Session struct {
	ID           string
	OwnerID      int64
	Username     string
	Avatar       string
	RefreshToken string
	ExpiresAt    time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
