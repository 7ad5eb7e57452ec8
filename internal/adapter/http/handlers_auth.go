package adapthttp

import (
	"errors"
	"net/http"

	"msgboard/internal/app"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid form data")
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	err := s.auth.Register(r.Context(), username, password)
	switch {
	case errors.Is(err, app.ErrMissingCredentials), errors.Is(err, app.ErrDuplicateUsername):
		writeFailure(w, http.StatusBadRequest, err.Error())
	case err != nil:
		s.log.Error("register failed", "username", username, "error", err)
		writeFailure(w, http.StatusInternalServerError, "internal server error")
	default:
		writeJSON(w, http.StatusOK, map[string]any{
			"success":  true,
			"message":  "registration successful",
			"username": username,
		})
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid form data")
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	sessionID, err := s.auth.Login(r.Context(), username, password)
	if errors.Is(err, app.ErrInvalidCredentials) {
		writeFailure(w, http.StatusUnauthorized, err.Error())
		return
	}
	if err != nil {
		s.log.Error("login failed", "username", username, "error", err)
		writeFailure(w, http.StatusInternalServerError, "internal server error")
		return
	}

	s.setSessionCookie(w, sessionID)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"message":   "login successful",
		"username":  username,
		"sessionId": sessionID,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	if user == nil {
		writeFailure(w, http.StatusUnauthorized, "not logged in")
		return
	}

	if err := s.auth.Logout(r.Context(), user.Username); err != nil {
		s.log.Error("logout failed", "username", user.Username, "error", err)
		writeFailure(w, http.StatusInternalServerError, "internal server error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "logged out"})
}

func (s *Server) handleCheckAuth(w http.ResponseWriter, r *http.Request) {
	if user := userFrom(r); user != nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"authenticated": true,
			"username":      user.Username,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ssoEnabled": s.sso.Enabled()})
}

func (s *Server) setSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400,
	})
}
