package model

import (
	"time"
)

// Token is an email-verification token. ExpiresAt is an absolute expiry
// instant set at issue time (now + TTL).
type Token struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Token     string    `db:"token"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

func (t *Token) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}
