package handler

import (
	"net/http"

	"github.com/inkwellcms/inkwell/internal/model"
	"github.com/inkwellcms/inkwell/internal/respond"
	"github.com/inkwellcms/inkwell/internal/service"
)

type userHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *userHandler {
	return &userHandler{userService: userService}
}

type userListEntry struct {
	UserID    string   `json:"userId"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Email     string   `json:"email"`
	Verified  bool     `json:"isVerified"`
	Scope     []string `json:"scope"`
}

type usersListResponse struct {
	Error     *respond.ErrorDescriptor `json:"error"`
	Flash     *string                  `json:"flash"`
	UsersList []userListEntry          `json:"usersList"`
}

func (h *userHandler) AllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.All()
	if err != nil {
		status, desc, flash := failWith(r, err)
		respond.JSON(w, status, usersListResponse{Error: desc, Flash: flash, UsersList: []userListEntry{}})
		return
	}

	list := make([]userListEntry, 0, len(users))
	for _, u := range users {
		list = append(list, toUserListEntry(u))
	}

	respond.JSON(w, http.StatusOK, usersListResponse{UsersList: list})
}

func toUserListEntry(u *model.User) userListEntry {
	return userListEntry{
		UserID:    u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Verified:  u.Verified,
		Scope:     u.Scopes(),
	}
}

type updateScopeRequest struct {
	UserID            string   `json:"userId"`
	UpdatedScopeArray []string `json:"updatedScopeArray"`
}

type updateScopeResponse struct {
	Error     *respond.ErrorDescriptor `json:"error"`
	Flash     *string                  `json:"flash"`
	UserScope []string                 `json:"userScope"`
}

func (h *userHandler) UpdateUserScope(w http.ResponseWriter, r *http.Request) {
	var req updateScopeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.UserID == "" {
		respond.Error(w, http.StatusBadRequest, "A user id is required.")
		return
	}

	scope, err := h.userService.UpdateScope(req.UserID, req.UpdatedScopeArray)
	if err != nil {
		status, desc, flash := failWith(r, err)
		respond.JSON(w, status, updateScopeResponse{Error: desc, Flash: flash, UserScope: []string{}})
		return
	}

	u := model.User{Scope: scope}
	respond.JSON(w, http.StatusOK, updateScopeResponse{
		Flash:     respond.Flash("User scope updated successfully!"),
		UserScope: u.Scopes(),
	})
}
