package realtime

import (
	"context"
	"encoding/json"
	"event_hub/model"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Message một thông báo push tới user
type Message struct {
	Type    string           `json:"type"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
	Data    model.NotifyData `json:"data,omitempty"`
}

// Dispatcher được inject vào các workflow nghiệp vụ,
// business logic không chạm trực tiếp vào WS hay Redis
type Dispatcher interface {
	Notify(userId uint, msg Message) bool
}

// PushDispatcher lưu notification vào DB rồi publish qua Redis,
// instance nào giữ connection của user sẽ forward xuống WS
type PushDispatcher struct {
	registry *SessionRegistry
	rdb      *redis.Client
	db       *gorm.DB
}

func NewPushDispatcher(registry *SessionRegistry, rdb *redis.Client, db *gorm.DB) *PushDispatcher {
	return &PushDispatcher{registry: registry, rdb: rdb, db: db}
}

func channelFor(userId uint) string {
	return fmt.Sprintf("notify:user:%d", userId)
}

// Notify fire-and-forget: lỗi chỉ log và trả false, không được làm fail
// workflow gọi nó (phát hành vé vẫn thành công dù user không nhận realtime)
func (d *PushDispatcher) Notify(userId uint, msg Message) bool {
	notification := model.Notification{
		UserId:  userId,
		Type:    msg.Type,
		Title:   msg.Title,
		Message: msg.Message,
		Data:    msg.Data,
	}
	if err := d.db.Create(&notification).Error; err != nil {
		log.Printf("Lỗi lưu notification cho user %d: %v", userId, err)
		return false
	}

	payload, err := json.Marshal(notification)
	if err != nil {
		log.Printf("Lỗi marshal notification: %v", err)
		return false
	}

	if err := d.rdb.Publish(context.Background(), channelFor(userId), payload).Err(); err != nil {
		log.Printf("Lỗi publish notification user %d: %v", userId, err)
		// Redis chết thì vẫn đẩy trực tiếp cho connection local
		d.registry.Send(userId, payload)
		return false
	}
	return true
}

// Run chạy vòng subscribe, forward message Redis xuống WS connection local.
// Gọi trong goroutine riêng từ main, dừng khi ctx huỷ.
func (d *PushDispatcher) Run(ctx context.Context) {
	pubsub := d.rdb.PSubscribe(ctx, "notify:user:*")
	defer pubsub.Close()

	channel := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-channel:
			if !ok {
				return
			}
			idStr := strings.TrimPrefix(msg.Channel, "notify:user:")
			id64, err := strconv.ParseUint(idStr, 10, 64)
			if err != nil {
				continue
			}
			d.registry.Send(uint(id64), []byte(msg.Payload))
		}
	}
}
