package handler_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwellcms/inkwell/internal/handler"
)

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRegisterHandler(t *testing.T) {
	f := newFixture(t)
	h := handler.NewAuthHandler(f.authService, f.verification)

	rec := httptest.NewRecorder()
	h.Register(rec, postJSON("/register", `{
		"firstName": "Ada",
		"lastName": "Lovelace",
		"email": "ada@example.com",
		"password": "secret-pw",
		"confirmPassword": "secret-pw"
	}`))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Nil(t, body["error"])
	assert.Equal(t, true, body["redirect"])

	assert.NotNil(t, f.store.UserByEmail("ada@example.com"))
	assert.Len(t, f.store.Tokens, 1)
}

func TestRegisterHandlerValidation(t *testing.T) {
	f := newFixture(t)
	h := handler.NewAuthHandler(f.authService, f.verification)

	tests := []struct {
		name string
		body string
	}{
		{"missing first name", `{"lastName":"L","email":"a@b.co","password":"secret-pw","confirmPassword":"secret-pw"}`},
		{"bad email", `{"firstName":"A","lastName":"L","email":"nope","password":"secret-pw","confirmPassword":"secret-pw"}`},
		{"short password", `{"firstName":"A","lastName":"L","email":"a@b.co","password":"pw","confirmPassword":"pw"}`},
		{"password mismatch", `{"firstName":"A","lastName":"L","email":"a@b.co","password":"secret-pw","confirmPassword":"other"}`},
		{"malformed json", `{"firstName":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Register(rec, postJSON("/register", tt.body))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeBody(t, rec)
			assert.NotNil(t, body["error"])
		})
	}
}

func TestRegisterHandlerDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.registerVerified(t, "ada@example.com", "secret-pw")
	h := handler.NewAuthHandler(f.authService, f.verification)

	rec := httptest.NewRecorder()
	h.Register(rec, postJSON("/register", `{
		"firstName": "Ada",
		"lastName": "Lovelace",
		"email": "ada@example.com",
		"password": "secret-pw",
		"confirmPassword": "secret-pw"
	}`))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func verifyRequest(email, token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/verify-email/"+url.PathEscape(email)+"/"+token, nil)
	req.SetPathValue("email", url.PathEscape(email))
	req.SetPathValue("token", token)
	return req
}

func TestVerifyEmailHandler(t *testing.T) {
	f := newFixture(t)
	h := handler.NewAuthHandler(f.authService, f.verification)

	_, err := f.authService.Register("Ada", "Lovelace", "ada@example.com", "secret-pw")
	require.NoError(t, err)
	require.Len(t, f.store.Tokens, 1)
	token := f.store.Tokens[0].Token

	rec := httptest.NewRecorder()
	h.VerifyEmail(rec, verifyRequest("ada@example.com", token))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Your email address (ada@example.com) has been verified.", body["flash"])
	assert.Equal(t, "login", body["cta"])
	assert.True(t, f.store.UserByEmail("ada@example.com").Verified)
}

func TestVerifyEmailHandlerAlreadyVerified(t *testing.T) {
	f := newFixture(t)
	f.registerVerified(t, "ada@example.com", "secret-pw")
	h := handler.NewAuthHandler(f.authService, f.verification)

	rec := httptest.NewRecorder()
	h.VerifyEmail(rec, verifyRequest("ada@example.com", "spent-long-ago"))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Your email address (ada@example.com) has already been verified.", body["flash"])
	assert.Equal(t, "login", body["cta"])
}

func TestVerifyEmailHandlerUnknownUser(t *testing.T) {
	f := newFixture(t)
	h := handler.NewAuthHandler(f.authService, f.verification)

	rec := httptest.NewRecorder()
	h.VerifyEmail(rec, verifyRequest("ghost@example.com", "whatever"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "register", body["cta"])
}

func TestVerifyEmailHandlerBadToken(t *testing.T) {
	f := newFixture(t)
	h := handler.NewAuthHandler(f.authService, f.verification)

	_, err := f.authService.Register("Ada", "Lovelace", "ada@example.com", "secret-pw")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.VerifyEmail(rec, verifyRequest("ada@example.com", "not-the-token"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "resendVerification", body["cta"])
	assert.False(t, f.store.UserByEmail("ada@example.com").Verified)
}

func TestResendVerificationHandler(t *testing.T) {
	f := newFixture(t)
	h := handler.NewAuthHandler(f.authService, f.verification)

	_, err := f.authService.Register("Ada", "Lovelace", "ada@example.com", "secret-pw")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ResendVerification(rec, postJSON("/resend-verification-link", `{"email":"ada@example.com"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "A new verification link has been sent to your email address.", body["flash"])
	assert.Len(t, f.store.Tokens, 2)
}

func TestLoginHandler(t *testing.T) {
	f := newFixture(t)
	f.registerVerified(t, "ada@example.com", "secret-pw")
	h := handler.NewAuthHandler(f.authService, f.verification)

	rec := httptest.NewRecorder()
	h.Login(rec, postJSON("/login", `{"email":"ada@example.com","password":"secret-pw"}`))

	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, `"Ada Lovelace" has successfully logged in!`, body["flash"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Ada", user["firstName"])
	assert.Equal(t, "ada@example.com", user["email"])
	assert.Equal(t, []any{"user"}, user["scope"])

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "session_id", cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
}

func TestLoginHandlerBadCredentials(t *testing.T) {
	f := newFixture(t)
	f.registerVerified(t, "ada@example.com", "secret-pw")
	h := handler.NewAuthHandler(f.authService, f.verification)

	rec := httptest.NewRecorder()
	h.Login(rec, postJSON("/login", `{"email":"ada@example.com","password":"wrong-pw"}`))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestLoginHandlerUnverified(t *testing.T) {
	f := newFixture(t)
	h := handler.NewAuthHandler(f.authService, f.verification)

	_, err := f.authService.Register("Ada", "Lovelace", "ada@example.com", "secret-pw")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.Login(rec, postJSON("/login", `{"email":"ada@example.com","password":"secret-pw"}`))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "resendVerification", body["cta"])
}

func TestLogoutHandler(t *testing.T) {
	f := newFixture(t)
	h := handler.NewAuthHandler(f.authService, f.verification)

	rec := httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest(http.MethodGet, "/logout", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "You have successfully logged out.", body["flash"])

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
}
