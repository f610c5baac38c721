package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/inkwellcms/inkwell/internal/model"
	"github.com/inkwellcms/inkwell/internal/respond"
	"github.com/inkwellcms/inkwell/internal/service"
)

type adminPageHandler struct {
	pageService *service.PageService
}

func NewAdminPageHandler(pageService *service.PageService) *adminPageHandler {
	return &adminPageHandler{pageService: pageService}
}

type pageData struct {
	PageID       string `json:"pageId"`
	Title        string `json:"title"`
	Slug         string `json:"slug"`
	Content      string `json:"content"`
	SortPosition int    `json:"sortPosition"`
}

func toPageData(p *model.Page) *pageData {
	return &pageData{
		PageID:       p.ID,
		Title:        p.Title,
		Slug:         p.Slug,
		Content:      p.Content,
		SortPosition: p.SortPosition,
	}
}

type createPageRequest struct {
	Title        string `json:"title"`
	Slug         string `json:"slug"`
	Content      string `json:"content"`
	SortPosition int    `json:"sortPosition"`
}

func (h *adminPageHandler) CreatePage(w http.ResponseWriter, r *http.Request) {
	var req createPageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		respond.Error(w, http.StatusBadRequest, "A page title is required.")
		return
	}

	page, err := h.pageService.Create(title, req.Slug, req.Content, req.SortPosition)
	if err != nil {
		status, desc, flash := failWith(r, err)
		respond.JSON(w, status, respond.Envelope{Error: desc, Flash: flash})
		return
	}

	respond.JSON(w, http.StatusOK, respond.Envelope{
		Flash: respond.Flash(fmt.Sprintf("The %q page was successfully created!", page.Title)),
	})
}

type editPageResponse struct {
	Error    *respond.ErrorDescriptor `json:"error"`
	Flash    *string                  `json:"flash"`
	PageData *pageData                `json:"pageData"`
}

// EditPageData returns the page fields for the admin edit view.
func (h *adminPageHandler) EditPageData(w http.ResponseWriter, r *http.Request) {
	page, err := h.pageService.ByID(r.PathValue("pageId"))
	if err != nil {
		status, desc, flash := failWith(r, err)
		respond.JSON(w, status, editPageResponse{Error: desc, Flash: flash})
		return
	}

	respond.JSON(w, http.StatusOK, editPageResponse{PageData: toPageData(page)})
}

type updatePageRequest struct {
	Title   string `json:"title"`
	Slug    string `json:"slug"`
	Content string `json:"content"`
}

func (h *adminPageHandler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	var req updatePageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		respond.Error(w, http.StatusBadRequest, "A page title is required.")
		return
	}

	_, err := h.pageService.Update(r.PathValue("pageId"), title, req.Slug, req.Content)
	if err != nil {
		status, desc, flash := failWith(r, err)
		respond.JSON(w, status, respond.Envelope{Error: desc, Flash: flash})
		return
	}

	respond.JSON(w, http.StatusOK, respond.Envelope{
		Flash: respond.Flash("Page successfully updated!"),
	})
}

type deletePageRequest struct {
	PageID string `json:"pageId"`
	Title  string `json:"title"`
}

func (h *adminPageHandler) DeletePage(w http.ResponseWriter, r *http.Request) {
	var req deletePageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.PageID == "" {
		respond.Error(w, http.StatusBadRequest, "A page id is required.")
		return
	}

	err := h.pageService.Delete(req.PageID)
	if err != nil {
		status, desc, flash := failWith(r, err)
		respond.JSON(w, status, respond.Envelope{Error: desc, Flash: flash})
		return
	}

	respond.JSON(w, http.StatusOK, respond.Envelope{
		Flash: respond.Flash(fmt.Sprintf("The %q page was successfully deleted!", req.Title)),
	})
}

type reorderRequest struct {
	PagesList []struct {
		PageID string `json:"pageId"`
	} `json:"pagesList"`
}

func (h *adminPageHandler) ReorderPages(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ids := make([]string, 0, len(req.PagesList))
	for _, p := range req.PagesList {
		if p.PageID == "" {
			respond.Error(w, http.StatusBadRequest, "Every page in the list needs a page id.")
			return
		}
		ids = append(ids, p.PageID)
	}

	err := h.pageService.Reorder(ids)
	if err != nil {
		status, desc, _ := failWith(r, err)
		// The whole reorder rolled back; the client keeps its old order
		respond.JSON(w, status, respond.Envelope{
			Error: desc,
			Flash: respond.Flash("Your page reorganization was not saved!"),
		})
		return
	}

	respond.JSON(w, http.StatusOK, respond.Envelope{
		Flash: respond.Flash("Your page reorganization has been saved!"),
	})
}
