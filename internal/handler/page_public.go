package handler

import (
	"log/slog"
	"net/http"

	"github.com/inkwellcms/inkwell/internal/markdown"
	"github.com/inkwellcms/inkwell/internal/model"
	"github.com/inkwellcms/inkwell/internal/respond"
	"github.com/inkwellcms/inkwell/internal/service"
)

type publicPageHandler struct {
	pageService *service.PageService
	renderer    *markdown.Renderer
}

func NewPublicPageHandler(pageService *service.PageService, renderer *markdown.Renderer) *publicPageHandler {
	return &publicPageHandler{
		pageService: pageService,
		renderer:    renderer,
	}
}

type publicPage struct {
	pageData
	ContentHTML string `json:"contentHtml"`
}

func (h *publicPageHandler) toPublicPage(p *model.Page) publicPage {
	html, err := h.renderer.Render(p.Content)
	if err != nil {
		// Ship raw content rather than failing the whole page
		slog.Warn("markdown render failed", "page_id", p.ID, "error", err)
		html = p.Content
	}
	return publicPage{
		pageData:    *toPageData(p),
		ContentHTML: html,
	}
}

type publicPageResponse struct {
	Error    *respond.ErrorDescriptor `json:"error"`
	Flash    *string                  `json:"flash"`
	PageData *publicPage              `json:"pageData"`
}

func (h *publicPageHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.pageService.BySlug(r.PathValue("slug"))
	if err != nil {
		status, desc, flash := failWith(r, err)
		respond.JSON(w, status, publicPageResponse{Error: desc, Flash: flash})
		return
	}

	data := h.toPublicPage(page)
	respond.JSON(w, http.StatusOK, publicPageResponse{PageData: &data})
}

type publicPagesResponse struct {
	Error     *respond.ErrorDescriptor `json:"error"`
	Flash     *string                  `json:"flash"`
	PagesList []publicPage             `json:"pagesList"`
}

// GetAllPages returns every page ordered by sort position, for the public
// navigation.
func (h *publicPageHandler) GetAllPages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.pageService.All()
	if err != nil {
		status, desc, flash := failWith(r, err)
		respond.JSON(w, status, publicPagesResponse{Error: desc, Flash: flash, PagesList: []publicPage{}})
		return
	}

	list := make([]publicPage, 0, len(pages))
	for _, p := range pages {
		list = append(list, h.toPublicPage(p))
	}

	respond.JSON(w, http.StatusOK, publicPagesResponse{PagesList: list})
}
