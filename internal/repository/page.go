package repository

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/inkwellcms/inkwell/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrPageNotFound  = errors.New("page not found")
	ErrDuplicateSlug = errors.New("slug already exists")
)

type PageRepository interface {
	Create(page *model.Page) error
	ByID(id string) (*model.Page, error)
	BySlug(slug string) (*model.Page, error)
	// SlugTakenByOther reports whether a page other than id owns slug.
	SlugTakenByOther(slug, id string) (bool, error)
	Update(page *model.Page) error
	Delete(id string) error
	// Reorder sets sort_position = index for every id, all in one
	// transaction. A failing id rolls the whole reorder back.
	Reorder(orderedIDs []string) error
	All() ([]*model.Page, error)
}

type pageRepository struct {
	db *sqlx.DB
}

func NewPageRepository(db *sqlx.DB) PageRepository {
	return &pageRepository{db: db}
}

func isDuplicateErr(err error) bool {
	errStr := err.Error()
	return strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "duplicate key value")
}

func (r *pageRepository) Create(page *model.Page) error {
	query := `INSERT INTO pages (id, title, slug, content, sort_position, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query,
		page.ID,
		page.Title,
		page.Slug,
		page.Content,
		page.SortPosition,
		page.CreatedAt,
		page.UpdatedAt,
	)
	if err != nil && isDuplicateErr(err) {
		return ErrDuplicateSlug
	}

	return err
}

func (r *pageRepository) ByID(id string) (*model.Page, error) {
	page := &model.Page{}
	query := `SELECT * FROM pages WHERE id = $1`

	err := r.db.Get(page, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrPageNotFound
	}

	return page, err
}

func (r *pageRepository) BySlug(slug string) (*model.Page, error) {
	page := &model.Page{}
	query := `SELECT * FROM pages WHERE slug = $1`

	err := r.db.Get(page, query, slug)
	if err == sql.ErrNoRows {
		return nil, ErrPageNotFound
	}

	return page, err
}

func (r *pageRepository) SlugTakenByOther(slug, id string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM pages WHERE slug = $1 AND id != $2`

	err := r.db.QueryRow(query, slug, id).Scan(&count)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *pageRepository) Update(page *model.Page) error {
	query := `UPDATE pages
	          SET title = $1, slug = $2, content = $3, updated_at = $4
	          WHERE id = $5`

	result, err := r.db.Exec(query,
		page.Title,
		page.Slug,
		page.Content,
		time.Now(),
		page.ID,
	)
	if err != nil {
		if isDuplicateErr(err) {
			return ErrDuplicateSlug
		}
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrPageNotFound
	}

	return nil
}

func (r *pageRepository) Delete(id string) error {
	// Unconditional by contract: deleting a missing page is not an error.
	query := `DELETE FROM pages WHERE id = $1`
	_, err := r.db.Exec(query, id)
	return err
}

func (r *pageRepository) Reorder(orderedIDs []string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	query := `UPDATE pages SET sort_position = $1, updated_at = $2 WHERE id = $3`
	now := time.Now()

	for i, id := range orderedIDs {
		result, err := tx.Exec(query, i, now, id)
		if err != nil {
			return err
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrPageNotFound
		}
	}

	return tx.Commit()
}

func (r *pageRepository) All() ([]*model.Page, error) {
	var pages []*model.Page
	query := `SELECT * FROM pages ORDER BY sort_position ASC`

	err := r.db.Select(&pages, query)
	if err != nil {
		return nil, err
	}

	return pages, nil
}
