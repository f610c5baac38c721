package model

import (
	"strings"
	"time"
)

const (
	ScopeUser  = "user"
	ScopeAdmin = "admin"
)

type User struct {
	ID           string    `db:"id"`
	SessionID    string    `db:"session_id"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Verified     bool      `db:"verified"`
	Scope        string    `db:"scope"` // comma-joined role list, always contains "user"
	CreatedAt    time.Time `db:"created_at"`
}

// Scopes returns the role list parsed from the stored scope column.
func (u *User) Scopes() []string {
	if u.Scope == "" {
		return nil
	}
	return strings.Split(u.Scope, ",")
}

func (u *User) HasScope(scope string) bool {
	for _, s := range u.Scopes() {
		if s == scope {
			return true
		}
	}
	return false
}

// JoinScopes builds the storage form of a role list. The "user" role is
// always present, duplicates are dropped, order is preserved otherwise.
func JoinScopes(scopes []string) string {
	out := []string{ScopeUser}
	seen := map[string]bool{ScopeUser: true}
	for _, s := range scopes {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return strings.Join(out, ",")
}
