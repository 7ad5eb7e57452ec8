// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"fmt"
	"net/http"

	"msgboard/internal/app"
	"msgboard/internal/logger"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	auth   *app.AuthService
	board  *app.BoardService
	search *app.SearchService
	sso    *SSO
	webDir string
	log    *logger.Logger
}

// New creates a Server wired to the given application services.
func New(auth *app.AuthService, board *app.BoardService, search *app.SearchService, sso *SSO, webDir string, log *logger.Logger) *Server {
	return &Server{auth: auth, board: board, search: search, sso: sso, webDir: webDir, log: log}
}

type routeKey struct {
	method string
	path   string
}

// Handler builds the dispatch table and returns the root http.Handler.
//
// Routing is a fixed (method, path) table with exact matching only; a
// duplicate registration is a programming error and panics at startup.
// Anything the table does not match falls through to the static-file
// collaborator.
func (s *Server) Handler() http.Handler {
	routes := make(map[routeKey]http.HandlerFunc)
	add := func(method, path string, h http.HandlerFunc) {
		key := routeKey{method: method, path: path}
		if _, dup := routes[key]; dup {
			panic(fmt.Sprintf("duplicate route %s %s", method, path))
		}
		routes[key] = h
	}

	add(http.MethodPost, "/register", s.handleRegister)
	add(http.MethodPost, "/login", s.handleLogin)
	add(http.MethodPost, "/logout", s.handleLogout)
	add(http.MethodPost, "/search", s.handleSearch)
	add(http.MethodPost, "/send-message", s.handleSendMessage)
	add(http.MethodGet, "/get-messages", s.handleGetMessages)
	add(http.MethodGet, "/api/check-auth", s.handleCheckAuth)
	add(http.MethodGet, "/api/config", s.handleConfig)
	if s.sso.Enabled() {
		add(http.MethodGet, "/auth/sso/login", s.handleSSOLogin)
		add(http.MethodGet, "/auth/sso/callback", s.handleSSOCallback)
	}

	static := s.staticHandler()
	dispatch := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := routes[routeKey{method: r.Method, path: r.URL.Path}]; ok {
			h(w, r)
			return
		}
		static.ServeHTTP(w, r)
	})

	return s.loggingMiddleware(s.sessionMiddleware(dispatch))
}
