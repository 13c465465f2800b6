package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"livenzo-backend/internal/auth"
	"livenzo-backend/internal/services"
	"livenzo-backend/internal/ws"
	"livenzo-backend/pkg/utils"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
)

var chatUpgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type ChatWSHandler struct {
	Hub        *ws.Hub
	JWTManager *auth.JWTManager
	Messages   *services.MessageService
}

func NewChatWSHandler(hub *ws.Hub, jwtManager *auth.JWTManager, messages *services.MessageService) *ChatWSHandler {
	return &ChatWSHandler{Hub: hub, JWTManager: jwtManager, Messages: messages}
}

// Serve upgrades to WebSocket for a relationship's chat room. The token comes
// in the query string because browsers cannot set headers on a WS dial.
// GET /ws/chat/{id}?token=...
func (h *ChatWSHandler) Serve(w http.ResponseWriter, r *http.Request) {
	relationshipID := mux.Vars(r)["id"]
	token := r.URL.Query().Get("token")
	if token == "" {
		utils.Error(w, http.StatusBadRequest, "token is required")
		return
	}

	claims, err := h.JWTManager.ValidateToken(token)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	if _, err := h.Messages.Authorize(r.Context(), claims.UserID, relationshipID); err != nil {
		respondServiceError(w, err)
		return
	}

	conn, err := chatUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	client := &ws.Client{
		UserID: claims.UserID,
		Role:   claims.Role,
		Send:   make(chan []byte, 256),
	}
	room := h.Hub.GetOrCreateRoom(relationshipID)
	room.Join(client)
	defer func() {
		room.Leave(client)
		client.Close()
		h.Hub.RemoveRoomIfEmpty(relationshipID)
	}()

	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wsPongWait))
		return nil
	})

	go func() {
		ticker := time.NewTicker(wsPingPeriod)
		defer ticker.Stop()
		for {
			select {
			case msg, ok := <-client.Send:
				if !ok {
					return
				}
				conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					return
				}
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var msg struct {
			Type string `json:"type"`
			Body string `json:"body"`
		}
		if json.Unmarshal(raw, &msg) != nil || msg.Type != "message" {
			continue
		}

		m, err := h.Messages.Send(r.Context(), claims.UserID, relationshipID, msg.Body)
		if err != nil {
			log.Printf("[Chat] Failed to store message: %v", err)
			continue
		}

		room.Broadcast(client, map[string]interface{}{
			"type":       "message",
			"id":         m.ID,
			"sender_id":  m.SenderID,
			"body":       m.Body,
			"created_at": m.CreatedAt,
		})
	}
}
