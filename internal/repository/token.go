package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/inkwellcms/inkwell/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrTokenNotFound = errors.New("token not found or expired")
)

type TokenRepository interface {
	Create(token *model.Token) error
	// Consume deletes a live token and marks its user verified in one
	// transaction. Expired or unknown tokens return ErrTokenNotFound.
	Consume(userID, token string) error
	LiveByUser(userID string) ([]*model.Token, error)
}

type tokenRepository struct {
	db *sqlx.DB
}

func NewTokenRepository(db *sqlx.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(token *model.Token) error {
	if token.ID == "" {
		token.ID = uuid.New().String()
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO tokens (id, user_id, token, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(query,
		token.ID,
		token.UserID,
		token.Token,
		token.ExpiresAt,
		token.CreatedAt,
	)
	return err
}

// Consume is the only mutation of the verified flag. The delete and the flag
// update commit together, so a token can be spent at most once even under
// concurrent requests.
func (r *tokenRepository) Consume(userID, token string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	query := `DELETE FROM tokens WHERE user_id = $1 AND token = $2 AND expires_at > $3`
	result, err := tx.Exec(query, userID, token, time.Now())
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrTokenNotFound
	}

	_, err = tx.Exec(`UPDATE users SET verified = $1 WHERE id = $2`, true, userID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *tokenRepository) LiveByUser(userID string) ([]*model.Token, error) {
	var tokens []*model.Token
	query := `SELECT * FROM tokens WHERE user_id = $1 AND expires_at > $2 ORDER BY created_at ASC`

	err := r.db.Select(&tokens, query, userID, time.Now())
	if err != nil {
		return nil, err
	}

	return tokens, nil
}
