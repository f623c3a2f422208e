package websocket

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"social-system/config"
	"social-system/internal/repository"
	dbPkg "social-system/pkg/db"
	"social-system/pkg/jwt"
	"social-system/pkg/redis"
	"social-system/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WsHandler upgrades an authenticated request to a live session. The token
// travels in the query string or the subprotocol header since browsers
// cannot set Authorization on websocket upgrades.
func WsHandler(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token = strings.TrimPrefix(c.GetHeader("Sec-WebSocket-Protocol"), "Bearer ")
	}
	if token == "" {
		response.Unauthorized(c, "missing token")
		return
	}

	jwtCfg := c.MustGet("jwt_config").(config.JWTConfig)
	jwtSvc := jwt.NewJWTService(jwtCfg)
	claims, err := jwtSvc.ValidateToken(token)
	if err != nil {
		response.Unauthorized(c, "token invalid or expired")
		return
	}
	userID64, _ := strconv.ParseUint(claims.Subject, 10, 32)
	if userID64 == 0 {
		response.Unauthorized(c, "invalid token")
		return
	}
	userID := uint(userID64)

	// Echo the subprotocol so browser clients do not drop the connection.
	respHeader := http.Header{}
	if protocol := c.GetHeader("Sec-WebSocket-Protocol"); protocol != "" {
		respHeader.Set("Sec-WebSocket-Protocol", protocol)
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, respHeader)
	if err != nil {
		return
	}

	client := &Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}
	channel := UserChannel(userID)
	GetManager().Subscribe(channel, client)

	username := ""
	if claims.Data != nil {
		if u, ok := claims.Data["username"].(string); ok {
			username = u
		}
	}

	if db := dbPkg.GetDB(); db != nil {
		userRepo := repository.NewUserRepository(db)
		_ = userRepo.UpdateStatus(userID, "online")
	}
	_ = redis.SetUserPresence(userID, username, "online")

	defer func() {
		GetManager().Unsubscribe(channel, client)

		if db := dbPkg.GetDB(); db != nil {
			userRepo := repository.NewUserRepository(db)
			_ = userRepo.UpdateStatus(userID, "offline")
		}
		_ = redis.SetUserPresence(userID, username, "offline")
	}()

	wsCfg := c.MustGet("ws_config").(config.WebSocketConfig)

	// Write pump: drains the send queue and keeps the connection alive
	// with periodic pings.
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(wsCfg.PingInterval)
		defer ticker.Stop()
		for {
			select {
			case msg, ok := <-client.Send:
				if !ok {
					return
				}
				_ = conn.WriteMessage(websocket.TextMessage, msg)
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(5*time.Second)); err != nil {
					close(done)
					return
				}
			}
		}
	}()

	// The store is authoritative: on connect, hand the client its unread
	// backlog so it can reconcile whatever pushes it missed.
	if db := dbPkg.GetDB(); db != nil {
		notifyRepo := repository.NewNotificationRepository(db)
		if unread, err := notifyRepo.GetUnread(userID, 50); err == nil {
			for _, n := range unread {
				payload := map[string]interface{}{
					"type":       "notification",
					"id":         n.ID,
					"notif_type": n.Type,
					"sender_id":  n.SenderID,
					"content":    n.Content,
					"metadata":   n.Metadata,
					"created_at": n.CreatedAt.Unix(),
				}
				if b, e := json.Marshal(payload); e == nil {
					client.Send <- b
				}
			}
		}
		if count, err := notifyRepo.CountUnread(userID); err == nil {
			if b, e := json.Marshal(map[string]interface{}{
				"type":  "unread_count",
				"count": count,
			}); e == nil {
				client.Send <- b
			}
		}
	}

	// Read loop: heartbeat and read-acknowledgement frames. Silence past
	// the read timeout drops the session.
	_ = conn.SetReadDeadline(time.Now().Add(wsCfg.ReadTimeout))
	conn.SetPongHandler(func(appData string) error {
		return conn.SetReadDeadline(time.Now().Add(wsCfg.ReadTimeout))
	})
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			break
		}
		_ = conn.SetReadDeadline(time.Now().Add(wsCfg.ReadTimeout))
		var msg map[string]interface{}
		if err := json.Unmarshal(payload, &msg); err != nil {
			continue
		}
		t, _ := msg["type"].(string)
		switch t {
		case "ack_read":
			var notifID uint64
			switch v := msg["notification_id"].(type) {
			case float64:
				notifID = uint64(v)
			case string:
				if id, e := strconv.ParseUint(v, 10, 64); e == nil {
					notifID = id
				}
			}
			if notifID > 0 {
				if db := dbPkg.GetDB(); db != nil {
					repo := repository.NewNotificationRepository(db)
					if n, e := repo.GetByID(uint(notifID)); e == nil && n.ReceiverID == userID && !n.IsRead {
						if repo.MarkRead(uint(notifID)) == nil {
							_ = redis.DecrementUnreadNotifications(userID)
						}
					}
				}
			}
		case "heartbeat":
			_ = redis.RefreshUserPresence(userID)
			if db := dbPkg.GetDB(); db != nil {
				userRepo := repository.NewUserRepository(db)
				_ = userRepo.UpdateStatus(userID, "online")
			}
		}
	}
	select {
	case <-done:
	default:
		close(done)
	}
}
