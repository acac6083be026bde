package realtime

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Browser clients connect from a separate origin; access control
		// happens via the token, not the Origin header.
		return true
	},
}

// joinMessage is what a connected client sends to enter or leave a
// broadcast group.
type joinMessage struct {
	Action         string `json:"action"`
	SalonID        string `json:"salon_id,omitempty"`
	ProfessionalID string `json:"professional_id,omitempty"`
}

// WSHandler upgrades HTTP requests and wires connections into the hub.
// Authentication is optional: an anonymous connection may still join salon
// and professional rooms for public live availability.
type WSHandler struct {
	hub       *Hub
	jwtSecret string
}

func NewWSHandler(hub *Hub, jwtSecret string) *WSHandler {
	return &WSHandler{hub: hub, jwtSecret: jwtSecret}
}

func (h *WSHandler) Serve(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	conn := NewConn(uuid.NewString(), 16)
	h.hub.Register(conn)
	defer h.hub.Unregister(conn)

	// Authenticated users are in their own room automatically.
	if userID := h.userFromToken(c.Query("token")); userID != "" {
		h.hub.Join(conn, UserRoom(userID))
	}

	go func() {
		for msg := range conn.Send {
			if err := ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		}
		_ = ws.Close()
	}()

	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			return
		}

		var msg joinMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}

		switch msg.Action {
		case "join:salon":
			if msg.SalonID != "" {
				h.hub.Join(conn, SalonRoom(msg.SalonID))
			}
		case "leave:salon":
			if msg.SalonID != "" {
				h.hub.Leave(conn, SalonRoom(msg.SalonID))
			}
		case "join:professional":
			if msg.ProfessionalID != "" {
				h.hub.Join(conn, ProfessionalRoom(msg.ProfessionalID))
			}
		case "leave:professional":
			if msg.ProfessionalID != "" {
				h.hub.Leave(conn, ProfessionalRoom(msg.ProfessionalID))
			}
		}
	}
}

func (h *WSHandler) userFromToken(tokenString string) string {
	if tokenString == "" {
		return ""
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(h.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return ""
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	sub, _ := claims["sub"].(string)
	return sub
}
