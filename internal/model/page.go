package model

import (
	"time"
)

type Page struct {
	ID           string    `db:"id"`
	Title        string    `db:"title"`
	Slug         string    `db:"slug"`
	Content      string    `db:"content"`
	SortPosition int       `db:"sort_position"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
