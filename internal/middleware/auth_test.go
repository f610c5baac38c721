package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwellcms/inkwell/internal/ctxkeys"
	"github.com/inkwellcms/inkwell/internal/middleware"
	"github.com/inkwellcms/inkwell/internal/model"
	"github.com/inkwellcms/inkwell/internal/repository/repositorytest"
	"github.com/inkwellcms/inkwell/internal/service"
)

func newAuthService(store *repositorytest.Store) *service.AuthService {
	userRepository := repositorytest.NewUserRepository(store)
	emailService := service.NewEmailService("", "hello@example.com", "http://localhost:3000", "Inkwell", true)
	verification := service.NewVerificationService(
		userRepository,
		repositorytest.NewTokenRepository(store),
		emailService,
		24*time.Hour,
	)
	return service.NewAuthService(userRepository, verification, emailService, nil, false)
}

func seedSessionUser(store *repositorytest.Store, sessionID, scope string) *model.User {
	user := &model.User{
		ID:           service.NewID(),
		SessionID:    sessionID,
		Email:        "ada@example.com",
		PasswordHash: "hash",
		Verified:     true,
		Scope:        scope,
	}
	store.Users[user.ID] = user
	return user
}

func TestSessionResolvesUser(t *testing.T) {
	store := repositorytest.NewStore()
	seeded := seedSessionUser(store, "session-1", "user")

	var got *model.User
	handler := middleware.Session(newAuthService(store))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = ctxkeys.User(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "session-1"})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, got)
	assert.Equal(t, seeded.ID, got.ID)
	assert.Empty(t, got.PasswordHash)
}

func TestSessionClearsStaleCookie(t *testing.T) {
	store := repositorytest.NewStore()

	var got *model.User
	handler := middleware.Session(newAuthService(store))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = ctxkeys.User(r.Context())
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "rotated-away"})
	handler.ServeHTTP(rec, req)

	assert.Nil(t, got)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "session_id", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
}

func TestSessionNoCookie(t *testing.T) {
	store := repositorytest.NewStore()

	called := false
	handler := middleware.Session(newAuthService(store))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Nil(t, ctxkeys.User(r.Context()))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, called)
}

func TestRequireScopeUnauthenticated(t *testing.T) {
	handler := middleware.RequireScope(model.ScopeAdmin, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/get-all-users", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireScopeForbidden(t *testing.T) {
	handler := middleware.RequireScope(model.ScopeAdmin, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/users/get-all-users", nil)
	req = req.WithContext(ctxkeys.WithUser(req.Context(), &model.User{Scope: "user"}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireScopeAllowed(t *testing.T) {
	called := false
	handler := middleware.RequireScope(model.ScopeAdmin, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodGet, "/users/get-all-users", nil)
	req = req.WithContext(ctxkeys.WithUser(req.Context(), &model.User{Scope: "user,admin"}))

	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.True(t, called)
}
