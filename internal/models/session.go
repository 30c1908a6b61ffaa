package models

import "time"

// Session is the identity resolved from a validated session token.
type Session struct {
	ID        string
	Username  string
	ExpiresAt time.Time
}
