package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/finchat-dev/finchat/internal/assistant"
)

// chatRequest is the body of POST /api/chat.
type chatRequest struct {
	Message string `json:"message"`
	UserID  string `json:"user_id,omitempty"` // assigned when empty
}

// chatResponse is the assistant's answer plus the user id the request ran
// under, echoed so first-time callers can reuse it.
type chatResponse struct {
	assistant.FinalAnswer
	UserID string `json:"user_id"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "message is required"})
		return
	}

	userID := req.UserID
	if userID == "" {
		userID = uuid.NewString()
	}

	answer := s.assistant.HandleQuery(r.Context(), req.Message, userID)
	writeJSON(w, http.StatusOK, chatResponse{FinalAnswer: answer, UserID: userID})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
