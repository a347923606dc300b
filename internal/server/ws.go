package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsRequest is the incoming WebSocket message format.
type wsRequest struct {
	Type    string `json:"type"`    // only "message" is understood
	UserID  string `json:"user_id"` // empty to stay anonymous
	Content string `json:"content"`
}

// wsResponse is the outgoing WebSocket message format.
type wsResponse struct {
	Type     string `json:"type"` // "response" or "error"
	UserID   string `json:"user_id"`
	Content  string `json:"content"`
	Intent   string `json:"intent,omitempty"`
	Tier     string `json:"tier,omitempty"`
	Fallback bool   `json:"fallback,omitempty"`
	CacheHit bool   `json:"cache_hit,omitempty"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	// One anonymous identity per connection unless the client names its own.
	connUserID := uuid.NewString()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Error("websocket read failed", "error", err)
			}
			return
		}

		var req wsRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			s.sendWSError(conn, "", "invalid message format")
			continue
		}

		if strings.TrimSpace(req.Content) == "" {
			s.sendWSError(conn, req.UserID, "content is required")
			continue
		}

		switch req.Type {
		case "message":
			s.handleWSMessage(conn, r, req, connUserID)
		default:
			s.sendWSError(conn, req.UserID, "unknown message type: "+req.Type)
		}
	}
}

func (s *Server) handleWSMessage(conn *websocket.Conn, r *http.Request, req wsRequest, connUserID string) {
	userID := req.UserID
	if userID == "" {
		userID = connUserID
	}

	answer := s.assistant.HandleQuery(r.Context(), req.Content, userID)

	s.sendWSResponse(conn, wsResponse{
		Type:     "response",
		UserID:   userID,
		Content:  answer.Text,
		Intent:   answer.Intent,
		Tier:     answer.Tier,
		Fallback: answer.Fallback,
		CacheHit: answer.CacheHit,
	})
}

func (s *Server) sendWSResponse(conn *websocket.Conn, resp wsResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		s.log.Error("websocket write failed", "error", err)
	}
}

func (s *Server) sendWSError(conn *websocket.Conn, userID, message string) {
	s.sendWSResponse(conn, wsResponse{
		Type:    "error",
		UserID:  userID,
		Content: message,
	})
}
