package routes

import (
	"net/http"

	"github.com/inkwellcms/inkwell/internal/app"
	"github.com/inkwellcms/inkwell/internal/handler"
	"github.com/inkwellcms/inkwell/internal/middleware"
	"github.com/inkwellcms/inkwell/internal/model"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService, app.VerificationService)
	user := handler.NewUserHandler(app.UserService)
	adminPage := handler.NewAdminPageHandler(app.PageService)
	publicPage := handler.NewPublicPageHandler(app.PageService, app.Renderer)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	// Auth - Authentication flow (rate limited)
	rateLimiter := middleware.RateLimitAuth()

	mux.HandleFunc("POST /register", rateLimiter(auth.Register))
	mux.HandleFunc("GET /verify-email/{email}/{token}", auth.VerifyEmail)
	mux.HandleFunc("POST /resend-verification-link", rateLimiter(auth.ResendVerification))
	mux.HandleFunc("POST /login", rateLimiter(auth.Login))
	mux.HandleFunc("GET /logout", auth.Logout)

	// Published content
	mux.HandleFunc("GET /public-pages/get-page/{slug}", publicPage.GetPage)
	mux.HandleFunc("GET /public-pages/get-all-pages", publicPage.GetAllPages)

	// ============================================================================
	// ADMIN ROUTES
	// ============================================================================

	// Users
	mux.HandleFunc("GET /users/get-all-users", middleware.RequireScope(model.ScopeAdmin, user.AllUsers))
	mux.HandleFunc("PUT /users/update-user-scope", middleware.RequireScope(model.ScopeAdmin, user.UpdateUserScope))

	// Pages
	mux.HandleFunc("POST /admin-pages/create-page", middleware.RequireScope(model.ScopeAdmin, adminPage.CreatePage))
	mux.HandleFunc("GET /admin-pages/edit-page/{pageId}", middleware.RequireScope(model.ScopeAdmin, adminPage.EditPageData))
	mux.HandleFunc("PUT /admin-pages/edit-page/{pageId}", middleware.RequireScope(model.ScopeAdmin, adminPage.UpdatePage))
	mux.HandleFunc("DELETE /admin-pages/delete-page", middleware.RequireScope(model.ScopeAdmin, adminPage.DeletePage))
	mux.HandleFunc("PUT /admin-pages/reorder-pages", middleware.RequireScope(model.ScopeAdmin, adminPage.ReorderPages))

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Config(app.Cfg),
		middleware.RequestLogging,
		middleware.CSRFProtection, // CSRF protection for all state-changing requests
		middleware.Session(app.AuthService),
	)

	return handler
}
