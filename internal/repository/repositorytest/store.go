// Package repositorytest provides in-memory repository implementations for
// service and handler tests.
package repositorytest

import (
	"time"

	"github.com/inkwellcms/inkwell/internal/model"
	"github.com/inkwellcms/inkwell/internal/repository"
)

// Store backs the in-memory repositories. Tests inspect and seed its fields
// directly.
type Store struct {
	Users  map[string]*model.User
	Tokens []*model.Token
	Pages  []*model.Page
}

func NewStore() *Store {
	return &Store{Users: make(map[string]*model.User)}
}

func (s *Store) UserByEmail(email string) *model.User {
	for _, u := range s.Users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

type userRepository struct {
	store *Store
}

func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) Create(user *model.User, token *model.Token) error {
	if r.store.UserByEmail(user.Email) != nil {
		return repository.ErrDuplicateEmail
	}
	copied := *user
	r.store.Users[user.ID] = &copied
	if token != nil {
		t := *token
		r.store.Tokens = append(r.store.Tokens, &t)
	}
	return nil
}

func (r *userRepository) ByID(id string) (*model.User, error) {
	u, ok := r.store.Users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *userRepository) ByEmail(email string) (*model.User, error) {
	u := r.store.UserByEmail(email)
	if u == nil {
		return nil, repository.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *userRepository) BySessionID(sessionID string) (*model.User, error) {
	for _, u := range r.store.Users {
		if u.SessionID == sessionID {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *userRepository) UpdateSessionID(id, sessionID string) error {
	u, ok := r.store.Users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.SessionID = sessionID
	return nil
}

func (r *userRepository) UpdateScope(id, scope string) error {
	u, ok := r.store.Users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.Scope = scope
	return nil
}

func (r *userRepository) All() ([]*model.User, error) {
	users := make([]*model.User, 0, len(r.store.Users))
	for _, u := range r.store.Users {
		copied := *u
		users = append(users, &copied)
	}
	return users, nil
}

type tokenRepository struct {
	store *Store
}

func NewTokenRepository(store *Store) repository.TokenRepository {
	return &tokenRepository{store: store}
}

func (r *tokenRepository) Create(token *model.Token) error {
	t := *token
	r.store.Tokens = append(r.store.Tokens, &t)
	return nil
}

func (r *tokenRepository) Consume(userID, token string) error {
	now := time.Now()
	for i, t := range r.store.Tokens {
		if t.UserID == userID && t.Token == token && t.ExpiresAt.After(now) {
			r.store.Tokens = append(r.store.Tokens[:i], r.store.Tokens[i+1:]...)
			if u, ok := r.store.Users[userID]; ok {
				u.Verified = true
			}
			return nil
		}
	}
	return repository.ErrTokenNotFound
}

func (r *tokenRepository) LiveByUser(userID string) ([]*model.Token, error) {
	now := time.Now()
	var live []*model.Token
	for _, t := range r.store.Tokens {
		if t.UserID == userID && t.ExpiresAt.After(now) {
			live = append(live, t)
		}
	}
	return live, nil
}

type pageRepository struct {
	store *Store
}

func NewPageRepository(store *Store) repository.PageRepository {
	return &pageRepository{store: store}
}

func (r *pageRepository) Create(page *model.Page) error {
	for _, p := range r.store.Pages {
		if p.Slug == page.Slug {
			return repository.ErrDuplicateSlug
		}
	}
	copied := *page
	r.store.Pages = append(r.store.Pages, &copied)
	return nil
}

func (r *pageRepository) ByID(id string) (*model.Page, error) {
	for _, p := range r.store.Pages {
		if p.ID == id {
			copied := *p
			return &copied, nil
		}
	}
	return nil, repository.ErrPageNotFound
}

func (r *pageRepository) BySlug(slug string) (*model.Page, error) {
	for _, p := range r.store.Pages {
		if p.Slug == slug {
			copied := *p
			return &copied, nil
		}
	}
	return nil, repository.ErrPageNotFound
}

func (r *pageRepository) SlugTakenByOther(slug, id string) (bool, error) {
	for _, p := range r.store.Pages {
		if p.Slug == slug && p.ID != id {
			return true, nil
		}
	}
	return false, nil
}

func (r *pageRepository) Update(page *model.Page) error {
	for i, p := range r.store.Pages {
		if p.ID == page.ID {
			copied := *page
			r.store.Pages[i] = &copied
			return nil
		}
	}
	return repository.ErrPageNotFound
}

func (r *pageRepository) Delete(id string) error {
	for i, p := range r.store.Pages {
		if p.ID == id {
			r.store.Pages = append(r.store.Pages[:i], r.store.Pages[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *pageRepository) Reorder(orderedIDs []string) error {
	// Stage the positions first so an unknown id leaves nothing changed
	staged := make(map[string]int, len(orderedIDs))
	for position, id := range orderedIDs {
		found := false
		for _, p := range r.store.Pages {
			if p.ID == id {
				found = true
				break
			}
		}
		if !found {
			return repository.ErrPageNotFound
		}
		staged[id] = position
	}
	for _, p := range r.store.Pages {
		if position, ok := staged[p.ID]; ok {
			p.SortPosition = position
		}
	}
	return nil
}

func (r *pageRepository) All() ([]*model.Page, error) {
	pages := make([]*model.Page, 0, len(r.store.Pages))
	for _, p := range r.store.Pages {
		copied := *p
		pages = append(pages, &copied)
	}
	for i := 0; i < len(pages); i++ {
		for j := i + 1; j < len(pages); j++ {
			if pages[j].SortPosition < pages[i].SortPosition {
				pages[i], pages[j] = pages[j], pages[i]
			}
		}
	}
	return pages, nil
}
