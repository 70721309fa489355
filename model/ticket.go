package model

import (
	"errors"
	"time"
)

const (
	TicketActive    = "active"
	TicketUsed      = "used"
	TicketCancelled = "cancelled"
	TicketExpired   = "expired"
)

type Ticket struct {
	DTO
	TicketCode       string `gorm:"size:40;uniqueIndex;not null" json:"ticketCode"`
	UserId           uint   `gorm:"not null;index" json:"userId"`
	EventId          uint   `gorm:"not null;index" json:"eventId"`
	BookingId        uint   `gorm:"not null;index" json:"bookingId"`
	PaymentReceiptId uint   `gorm:"not null;uniqueIndex" json:"paymentReceiptId"` // backstop chống phát hành trùng
	TicketType       string `gorm:"size:20;not null;default:'regular'" json:"ticketType"`
	Quantity         int    `gorm:"not null;default:1" json:"quantity"`

	ValidFrom  time.Time `gorm:"not null" json:"validFrom"`
	ValidUntil time.Time `gorm:"not null" json:"validUntil"`
	Status     string    `gorm:"size:20;not null;default:'active'" json:"status"`

	UsedAt *time.Time `json:"usedAt,omitempty"`
	UsedBy *uint      `json:"usedBy,omitempty"`

	DownloadCount int    `gorm:"not null;default:0" json:"downloadCount"`
	QRPayload     string `gorm:"type:text" json:"qrPayload"`
	QRImage       string `gorm:"type:text" json:"qrImage"` // base64 PNG

	User           User           `gorm:"foreignKey:UserId" json:"-"`
	Event          Event          `gorm:"foreignKey:EventId" json:"-"`
	Booking        Booking        `gorm:"foreignKey:BookingId" json:"-"`
	PaymentReceipt PaymentReceipt `gorm:"foreignKey:PaymentReceiptId" json:"-"`
}

// IsValid vé dùng được: đang active và trong khoảng hiệu lực (bao gồm 2 biên)
func (t *Ticket) IsValid(now time.Time) bool {
	if t.Status != TicketActive {
		return false
	}
	return !now.Before(t.ValidFrom) && !now.After(t.ValidUntil)
}

// Transition used/cancelled/expired là trạng thái cuối, không quay lại
func (t *Ticket) Transition(next string) error {
	if t.Status != TicketActive {
		return errors.New("vé đã ở trạng thái cuối: " + t.Status)
	}
	switch next {
	case TicketUsed, TicketCancelled, TicketExpired:
		t.Status = next
		return nil
	}
	return errors.New("trạng thái vé không hợp lệ: " + next)
}

// TicketPayload nội dung mã QR, trường Hash tính trên toàn bộ trường còn lại
type TicketPayload struct {
	TicketId   string `json:"ticketId"`
	EventId    uint   `json:"eventId"`
	UserId     uint   `json:"userId"`
	BookingId  uint   `json:"bookingId"`
	TicketType string `json:"ticketType"`
	Quantity   int    `json:"quantity"`
	IssuedAt   string `json:"issuedAt"`
	ValidUntil string `json:"validUntil"`
	EventTitle string `json:"eventTitle"`
	EventDate  string `json:"eventDate"`
	UserName   string `json:"userName"`
	UserEmail  string `json:"userEmail"`
	Hash       string `json:"hash"`
}

// CanonicalMap payload bỏ trường hash, dùng để ký/kiểm tra chữ ký.
// encoding/json sắp xếp key của map nên kết quả serialize ổn định.
func (p TicketPayload) CanonicalMap() map[string]any {
	return map[string]any{
		"ticketId":   p.TicketId,
		"eventId":    p.EventId,
		"userId":     p.UserId,
		"bookingId":  p.BookingId,
		"ticketType": p.TicketType,
		"quantity":   p.Quantity,
		"issuedAt":   p.IssuedAt,
		"validUntil": p.ValidUntil,
		"eventTitle": p.EventTitle,
		"eventDate":  p.EventDate,
		"userName":   p.UserName,
		"userEmail":  p.UserEmail,
	}
}

type FilterTicketInput struct {
	Pagination
	EventId uint   `json:"eventId" validate:"omitempty,gt=0"`
	Status  string `json:"status" validate:"omitempty,oneof=active used cancelled expired"`
}
