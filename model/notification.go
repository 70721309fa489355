package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

const (
	NotifyTicketIssued     = "ticketIssued"
	NotifyReceiptConfirmed = "receiptConfirmed"
	NotifyReceiptRejected  = "receiptRejected"
	NotifyEventUpdated     = "eventUpdated"
	NotifyBookingCreated   = "bookingCreated"
)

type NotifyData map[string]any

func (d NotifyData) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(d)
}

func (d *NotifyData) Scan(value any) error {
	if value == nil {
		*d = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("cannot scan %T into NotifyData", value)
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, d)
}

// Notification bản lưu DB của mỗi lần push, client có thể poll lại
type Notification struct {
	DTO
	UserId  uint       `gorm:"not null;index" json:"userId"`
	Type    string     `gorm:"size:30;not null" json:"type"`
	Title   string     `gorm:"size:200;not null" json:"title"`
	Message string     `gorm:"size:1000" json:"message"`
	Data    NotifyData `gorm:"type:jsonb" json:"data"`
	IsRead  bool       `gorm:"not null;default:false" json:"isRead"`

	User User `gorm:"foreignKey:UserId" json:"-"`
}
