package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/inkwellcms/inkwell/internal/model"
	"github.com/inkwellcms/inkwell/internal/repository"
	"github.com/inkwellcms/inkwell/internal/slug"
)

var (
	ErrSlugConflict = errors.New("a page with this slug already exists, please choose a different slug")
	ErrPageNotFound = errors.New("that page does not exist")
)

type PageService struct {
	pageRepository repository.PageRepository
}

func NewPageService(pageRepository repository.PageRepository) *PageService {
	return &PageService{pageRepository: pageRepository}
}

// Create builds a page under a normalized slug, derived from the title when
// none is supplied.
func (s *PageService) Create(title, rawSlug, content string, sortPosition int) (*model.Page, error) {
	pageSlug := slug.Make(rawSlug)
	if pageSlug == "" {
		pageSlug = slug.Make(title)
	}

	taken, err := s.pageRepository.SlugTakenByOther(pageSlug, "")
	if err != nil {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}
	if taken {
		return nil, ErrSlugConflict
	}

	now := time.Now()
	page := &model.Page{
		ID:           NewID(),
		Title:        title,
		Slug:         pageSlug,
		Content:      content,
		SortPosition: sortPosition,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.pageRepository.Create(page)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateSlug) {
			return nil, ErrSlugConflict
		}
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	slog.Info("page created", "page_id", page.ID, "slug", page.Slug)
	return page, nil
}

func (s *PageService) ByID(id string) (*model.Page, error) {
	page, err := s.pageRepository.ByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrPageNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, fmt.Errorf("failed to get page: %w", err)
	}
	return page, nil
}

// Update recomputes the slug the same way Create does. The conflict check
// excludes the page's own id, so keeping the current slug is always allowed.
func (s *PageService) Update(id, title, rawSlug, content string) (*model.Page, error) {
	page, err := s.pageRepository.ByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrPageNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, fmt.Errorf("failed to get page: %w", err)
	}

	pageSlug := slug.Make(rawSlug)
	if pageSlug == "" {
		pageSlug = slug.Make(title)
	}

	taken, err := s.pageRepository.SlugTakenByOther(pageSlug, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}
	if taken {
		return nil, ErrSlugConflict
	}

	page.Title = title
	page.Slug = pageSlug
	page.Content = content

	err = s.pageRepository.Update(page)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateSlug) {
			return nil, ErrSlugConflict
		}
		return nil, fmt.Errorf("failed to update page: %w", err)
	}

	slog.Info("page updated", "page_id", page.ID, "slug", page.Slug)
	return page, nil
}

func (s *PageService) Delete(id string) error {
	err := s.pageRepository.Delete(id)
	if err != nil {
		return fmt.Errorf("failed to delete page: %w", err)
	}

	slog.Info("page deleted", "page_id", id)
	return nil
}

// Reorder assigns sort position = index for the given sequence. The
// repository runs all writes in one transaction, so a partial reorder never
// commits.
func (s *PageService) Reorder(orderedIDs []string) error {
	err := s.pageRepository.Reorder(orderedIDs)
	if err != nil {
		if errors.Is(err, repository.ErrPageNotFound) {
			return ErrPageNotFound
		}
		return fmt.Errorf("failed to reorder pages: %w", err)
	}

	slog.Info("pages reordered", "count", len(orderedIDs))
	return nil
}

func (s *PageService) All() ([]*model.Page, error) {
	pages, err := s.pageRepository.All()
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	return pages, nil
}

func (s *PageService) BySlug(rawSlug string) (*model.Page, error) {
	page, err := s.pageRepository.BySlug(slug.Make(rawSlug))
	if err != nil {
		if errors.Is(err, repository.ErrPageNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, fmt.Errorf("failed to get page: %w", err)
	}
	return page, nil
}
