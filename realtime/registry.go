package realtime

import (
	"sync"

	"github.com/gofiber/contrib/websocket"
)

// SessionRegistry map userId -> các WS connection đang mở.
// Thêm khi connect, xoá khi disconnect, không dùng biến global.
type SessionRegistry struct {
	mu      sync.Mutex
	clients map[uint]map[*websocket.Conn]bool
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		clients: make(map[uint]map[*websocket.Conn]bool),
	}
}

func (r *SessionRegistry) Add(userId uint, c *websocket.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.clients[userId] == nil {
		r.clients[userId] = make(map[*websocket.Conn]bool)
	}
	r.clients[userId][c] = true
}

func (r *SessionRegistry) Remove(userId uint, c *websocket.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.clients[userId] != nil {
		delete(r.clients[userId], c)
		if len(r.clients[userId]) == 0 {
			delete(r.clients, userId)
		}
	}
}

// Send ghi payload tới mọi connection của user, connection lỗi thì đóng và xoá
func (r *SessionRegistry) Send(userId uint, payload []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for conn := range r.clients[userId] {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			conn.Close()
			delete(r.clients[userId], conn)
		}
	}
}

func (r *SessionRegistry) Count(userId uint) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients[userId])
}
