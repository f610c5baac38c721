package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/inkwellcms/inkwell/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

type UserRepository interface {
	// Create inserts the user and, when token is non-nil, its initial
	// verification token in a single transaction.
	Create(user *model.User, token *model.Token) error
	ByID(id string) (*model.User, error)
	ByEmail(email string) (*model.User, error)
	BySessionID(sessionID string) (*model.User, error)
	UpdateSessionID(id, sessionID string) error
	UpdateScope(id, scope string) error
	All() ([]*model.User, error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User, token *model.Token) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	query := `INSERT INTO users (id, session_id, first_name, last_name, email, password_hash, verified, scope, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = tx.Exec(query,
		user.ID,
		user.SessionID,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
		user.Verified,
		user.Scope,
		user.CreatedAt,
	)
	if err != nil {
		// Works for both SQLite and PostgreSQL
		errStr := err.Error()
		if strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "duplicate key value") {
			return ErrDuplicateEmail
		}
		return err
	}

	if token != nil {
		query = `INSERT INTO tokens (id, user_id, token, expires_at, created_at)
		         VALUES ($1, $2, $3, $4, $5)`
		_, err = tx.Exec(query, token.ID, token.UserID, token.Token, token.ExpiresAt, token.CreatedAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *userRepository) ByID(id string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE id = $1`

	err := r.db.Get(user, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) ByEmail(email string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE email = $1`

	err := r.db.Get(user, query, email)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) BySessionID(sessionID string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE session_id = $1`

	err := r.db.Get(user, query, sessionID)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) UpdateSessionID(id, sessionID string) error {
	query := `UPDATE users SET session_id = $1 WHERE id = $2`

	result, err := r.db.Exec(query, sessionID, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *userRepository) UpdateScope(id, scope string) error {
	query := `UPDATE users SET scope = $1 WHERE id = $2`

	result, err := r.db.Exec(query, scope, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *userRepository) All() ([]*model.User, error) {
	var users []*model.User
	query := `SELECT * FROM users ORDER BY created_at ASC`

	err := r.db.Select(&users, query)
	if err != nil {
		return nil, err
	}

	return users, nil
}
