package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/inkwellcms/inkwell/internal/respond"
	"github.com/inkwellcms/inkwell/internal/service"
	"github.com/inkwellcms/inkwell/internal/validation"
)

// Call-to-action hints the client router acts on alongside a flash message.
const (
	ctaRegister           = "register"
	ctaLogin              = "login"
	ctaResendVerification = "resendVerification"
)

type authHandler struct {
	authService  *service.AuthService
	verification *service.VerificationService
}

func NewAuthHandler(authService *service.AuthService, verification *service.VerificationService) *authHandler {
	return &authHandler{
		authService:  authService,
		verification: verification,
	}
}

type registerRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type registerResponse struct {
	Error    *respond.ErrorDescriptor `json:"error"`
	Flash    *string                  `json:"flash"`
	Redirect bool                     `json:"redirect"`
}

func (h *authHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if msg := validateRegister(req); msg != "" {
		respond.Error(w, http.StatusBadRequest, msg)
		return
	}

	_, err := h.authService.Register(
		strings.TrimSpace(req.FirstName),
		strings.TrimSpace(req.LastName),
		req.Email,
		req.Password,
	)
	if err != nil {
		status, desc, flash := failWith(r, err)
		respond.JSON(w, status, registerResponse{Error: desc, Flash: flash})
		return
	}

	// The client redirects to a "check your email" page
	respond.JSON(w, http.StatusOK, registerResponse{Redirect: true})
}

func validateRegister(req registerRequest) string {
	if err := validation.ValidateName(req.FirstName); err != nil {
		return "First name is required."
	}
	if err := validation.ValidateName(req.LastName); err != nil {
		return "Last name is required."
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return "Please provide a valid email address."
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return err.Error()
	}
	if req.ConfirmPassword != req.Password {
		return "Passwords do not match."
	}
	return ""
}

type verifyEmailResponse struct {
	Error *respond.ErrorDescriptor `json:"error"`
	Flash *string                  `json:"flash"`
	CTA   *string                  `json:"cta"`
}

func (h *authHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	email, err := url.PathUnescape(r.PathValue("email"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid verification link.")
		return
	}
	token := r.PathValue("token")

	alreadyVerified, err := h.verification.Consume(email, token)
	if err != nil {
		status, desc, flash := failWith(r, err)
		resp := verifyEmailResponse{Error: desc, Flash: flash}
		switch status {
		case http.StatusNotFound:
			if desc.Message == service.ErrUserNotFound.Error() {
				resp.CTA = respond.Flash(ctaRegister)
			} else {
				resp.CTA = respond.Flash(ctaResendVerification)
			}
		}
		respond.JSON(w, status, resp)
		return
	}

	if alreadyVerified {
		respond.JSON(w, http.StatusOK, verifyEmailResponse{
			Flash: respond.Flash(fmt.Sprintf("Your email address (%s) has already been verified.", email)),
			CTA:   respond.Flash(ctaLogin),
		})
		return
	}

	respond.JSON(w, http.StatusOK, verifyEmailResponse{
		Flash: respond.Flash(fmt.Sprintf("Your email address (%s) has been verified.", email)),
		CTA:   respond.Flash(ctaLogin),
	})
}

type resendRequest struct {
	Email string `json:"email"`
}

func (h *authHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var req resendRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := validation.ValidateEmail(req.Email); err != nil {
		respond.Error(w, http.StatusBadRequest, "Please provide a valid email address.")
		return
	}

	alreadyVerified, err := h.verification.Resend(req.Email)
	if err != nil {
		status, desc, flash := failWith(r, err)
		respond.JSON(w, status, respond.Envelope{Error: desc, Flash: flash})
		return
	}

	if alreadyVerified {
		respond.JSON(w, http.StatusOK, respond.Envelope{
			Flash: respond.Flash(fmt.Sprintf("Your email address (%s) has already been verified.", req.Email)),
		})
		return
	}

	respond.JSON(w, http.StatusOK, respond.Envelope{
		Flash: respond.Flash("A new verification link has been sent to your email address."),
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginUser struct {
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Email     string   `json:"email"`
	Scope     []string `json:"scope"`
}

type loginResponse struct {
	Error *respond.ErrorDescriptor `json:"error"`
	Flash *string                  `json:"flash"`
	CTA   *string                  `json:"cta"`
	User  *loginUser               `json:"user"`
}

func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := validation.ValidateEmail(req.Email); err != nil {
		respond.Error(w, http.StatusBadRequest, "Please provide a valid email address.")
		return
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		status, desc, flash := failWith(r, err)
		resp := loginResponse{Error: desc, Flash: flash}
		if status == http.StatusForbidden {
			resp.CTA = respond.Flash(ctaResendVerification)
		}
		respond.JSON(w, status, resp)
		return
	}

	h.authService.SetSessionCookie(w, user.SessionID)

	respond.JSON(w, http.StatusOK, loginResponse{
		Flash: respond.Flash(fmt.Sprintf("%q has successfully logged in!", user.FirstName+" "+user.LastName)),
		User: &loginUser{
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
			Scope:     user.Scopes(),
		},
	})
}

// Logout always succeeds: clearing the cookie needs no valid session.
func (h *authHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearSessionCookie(w)
	respond.JSON(w, http.StatusOK, respond.Envelope{
		Flash: respond.Flash("You have successfully logged out."),
	})
}
