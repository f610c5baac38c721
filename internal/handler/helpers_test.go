package handler_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/inkwellcms/inkwell/internal/model"
	"github.com/inkwellcms/inkwell/internal/repository/repositorytest"
	"github.com/inkwellcms/inkwell/internal/service"
)

// fixture wires every service over the in-memory store the way the app
// container does.
type fixture struct {
	store        *repositorytest.Store
	authService  *service.AuthService
	verification *service.VerificationService
	userService  *service.UserService
	pageService  *service.PageService
}

func newFixture(t *testing.T, adminEmails ...string) *fixture {
	t.Helper()

	store := repositorytest.NewStore()
	userRepository := repositorytest.NewUserRepository(store)
	emailService := service.NewEmailService("", "hello@example.com", "http://localhost:3000", "Inkwell", true)
	verification := service.NewVerificationService(
		userRepository,
		repositorytest.NewTokenRepository(store),
		emailService,
		24*time.Hour,
	)

	return &fixture{
		store:        store,
		authService:  service.NewAuthService(userRepository, verification, emailService, adminEmails, false),
		verification: verification,
		userService:  service.NewUserService(userRepository),
		pageService:  service.NewPageService(repositorytest.NewPageRepository(store)),
	}
}

func (f *fixture) registerVerified(t *testing.T, email, password string) *model.User {
	t.Helper()
	user, err := f.authService.Register("Ada", "Lovelace", email, password)
	require.NoError(t, err)
	f.store.Users[user.ID].Verified = true
	return user
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
