package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

const (
	PaymentMethodBankTransfer = "bankTransfer"
	PaymentMethodCard         = "card"
	PaymentMethodCash         = "cash"
	PaymentMethodMobileMoney  = "mobileMoney"
)

const (
	BookingUnpaid           = "unpaid"
	BookingReceiptSubmitted = "receiptSubmitted"
	BookingPaid             = "paid"
	BookingRefunded         = "refunded"
	BookingCancelled        = "cancelled"
)

// BreakdownItem một dòng trong bảng kê vé của đặt chỗ
type BreakdownItem struct {
	Type     string  `json:"type"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type TicketBreakdown []BreakdownItem

func (t TicketBreakdown) Value() (driver.Value, error) {
	if t == nil {
		return nil, nil
	}
	return json.Marshal(t)
}

func (t *TicketBreakdown) Scan(value any) error {
	if value == nil {
		*t = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("cannot scan %T into TicketBreakdown", value)
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, t)
}

type Booking struct {
	DTO
	PublicCode      string          `gorm:"size:40;uniqueIndex" json:"publicCode"`
	UserId          uint            `gorm:"not null;index" json:"userId"`
	EventId         uint            `gorm:"not null;index" json:"eventId"`
	Seats           int             `gorm:"not null" json:"seats"`
	TicketBreakdown TicketBreakdown `gorm:"type:jsonb" json:"ticketBreakdown"`
	TotalAmount     float64         `gorm:"not null" json:"totalAmount"`
	PaymentMethod   string          `gorm:"size:20" json:"paymentMethod"`
	PaymentStatus   string          `gorm:"size:20;not null;default:'unpaid'" json:"paymentStatus"`

	User  User  `gorm:"foreignKey:UserId" json:"-"`
	Event Event `gorm:"foreignKey:EventId" json:"-"`
}

type CreateBookingInput struct {
	EventId         uint            `json:"eventId" validate:"required,gt=0"`
	Seats           int             `json:"seats" validate:"required,gt=0"`
	TicketBreakdown TicketBreakdown `json:"ticketBreakdown" validate:"omitempty,dive"`
	PaymentMethod   string          `json:"paymentMethod" validate:"omitempty,oneof=bankTransfer card cash mobileMoney"`
}

type FilterBookingInput struct {
	Pagination
	EventId       uint   `json:"eventId" validate:"omitempty,gt=0"`
	PaymentStatus string `json:"paymentStatus" validate:"omitempty,oneof=unpaid receiptSubmitted paid refunded cancelled"`
}
