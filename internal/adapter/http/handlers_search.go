package adapthttp

import (
	"errors"
	"net/http"

	"msgboard/internal/app"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid form data")
		return
	}
	query := r.PostFormValue("query")
	username := r.PostFormValue("username")

	entry, err := s.search.Record(r.Context(), username, query)
	if errors.Is(err, app.ErrEmptyQuery) {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.log.Error("search log append failed", "error", err)
		writeFailure(w, http.StatusInternalServerError, "server error")
		return
	}

	s.log.Info("search recorded", "username", entry.Username, "query", entry.Query)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "search recorded"})
}
