package handler

import (
	"event_hub/database"
	"event_hub/helper"
	"event_hub/model"

	"github.com/gofiber/contrib/websocket"
	"github.com/golang-jwt/jwt/v5"
)

// NotificationSocket WS nhận thông báo realtime. Connection đăng ký vào
// session registry, dispatcher sẽ forward message của user xuống đây.
func NotificationSocket(c *websocket.Conn) {
	tokenString := c.Query("token")
	token, err := helper.ParseToken(tokenString)
	if err != nil || !token.Valid {
		c.WriteJSON(map[string]string{"error": "invalid token"})
		c.Close()
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.Close()
		return
	}
	userIdFloat, _ := claims["userId"].(float64)
	userId := uint(userIdFloat)
	if userId == 0 {
		c.Close()
		return
	}

	registry.Add(userId, c)
	defer func() {
		registry.Remove(userId, c)
		c.Close()
	}()

	// Gửi số thông báo chưa đọc ngay khi connect
	var unread int64
	database.DB.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = false", userId).Count(&unread)
	c.WriteJSON(map[string]any{"type": "unreadCount", "unread": unread})

	// Giữ connection, client không cần gửi gì
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}
