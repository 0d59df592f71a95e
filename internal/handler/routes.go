package handler

import (
	"net/http"

	"github.com/msomdec/tankermade/internal/domain"
	"github.com/msomdec/tankermade/internal/service"
)

// Deps are the services the HTTP layer is built on.
type Deps struct {
	Auth    *service.AuthService
	Users   *service.UserService
	Catalog *service.CatalogService
	// AuthLimiter throttles register and login per client IP.
	AuthLimiter *service.TokenBucket
}

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, d Deps) {
	authHandler := NewAuthHandler(d.Auth)
	userHandler := NewUserHandler(d.Users)
	catalogHandler := NewCatalogHandler(d.Catalog)

	requireAuth := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(d.Auth, h)
	}

	mux.HandleFunc("GET /healthz", HandleHealthz)
	mux.HandleFunc("GET /", HandleHome)

	mux.Handle("POST /api/auth/register", RateLimit(d.AuthLimiter, http.HandlerFunc(authHandler.HandleRegister)))
	mux.Handle("POST /api/auth/login", RateLimit(d.AuthLimiter, http.HandlerFunc(authHandler.HandleLogin)))
	mux.Handle("GET /api/auth/me", requireAuth(authHandler.HandleMe))

	mux.Handle("GET /api/users", RequireAuth(d.Auth, RequireRole(domain.RoleAdmin, http.HandlerFunc(userHandler.HandleList))))
	mux.Handle("GET /api/users/{id}", requireAuth(userHandler.HandleGet))
	mux.Handle("PUT /api/users/{id}", requireAuth(userHandler.HandleUpdate))

	mux.HandleFunc("GET /api/catalog/{kind}", catalogHandler.HandleList)
}
