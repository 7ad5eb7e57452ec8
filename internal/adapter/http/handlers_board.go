package adapthttp

import (
	"errors"
	"net/http"

	"msgboard/internal/app"
)

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	if user == nil {
		writeFailure(w, http.StatusUnauthorized, "please log in before sending messages")
		return
	}

	if err := r.ParseForm(); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid form data")
		return
	}
	content := r.PostFormValue("content")

	_, err := s.board.Post(r.Context(), user.Username, content)
	if errors.Is(err, app.ErrEmptyContent) {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.log.Error("post message failed", "username", user.Username, "error", err)
		writeFailure(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "message sent"})
}

func (s *Server) handleGetMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := s.board.List(r.Context())
	if err != nil {
		s.log.Error("list messages failed", "error", err)
		writeFailure(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "messages": messages})
}
