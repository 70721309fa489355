package model

import (
	"errors"
	"time"
)

const (
	ReceiptPending   = "pending"
	ReceiptConfirmed = "confirmed"
	ReceiptRejected  = "rejected"
)

// PaymentReceipt biên lai thanh toán do người mua upload,
// mỗi đặt chỗ chỉ có một biên lai
type PaymentReceipt struct {
	DTO
	UserId         uint    `gorm:"not null;index" json:"userId"`
	EventId        uint    `gorm:"not null;index" json:"eventId"`
	VerifierId     uint    `gorm:"not null;index" json:"verifierId"` // chủ sự kiện
	BookingId      uint    `gorm:"not null;uniqueIndex" json:"bookingId"`
	ReceiptImage   string  `gorm:"not null" json:"receiptImage"`
	Amount         float64 `gorm:"not null" json:"amount"`
	Currency       string  `gorm:"size:10;not null;default:'VND'" json:"currency"`
	PaymentMethod  string  `gorm:"size:20" json:"paymentMethod"`
	TransactionRef string  `gorm:"size:100" json:"transactionRef"`
	Status         string  `gorm:"size:20;not null;default:'pending'" json:"status"`

	VerifiedBy *uint      `json:"verifiedBy,omitempty"`
	VerifiedAt *time.Time `json:"verifiedAt,omitempty"`
	Notes      string     `gorm:"size:500" json:"notes"`

	User    User    `gorm:"foreignKey:UserId" json:"-"`
	Event   Event   `gorm:"foreignKey:EventId" json:"-"`
	Booking Booking `gorm:"foreignKey:BookingId" json:"-"`
}

// Transition chỉ cho phép pending -> confirmed | rejected
func (r *PaymentReceipt) Transition(next string) error {
	if r.Status != ReceiptPending {
		return errors.New("biên lai đã được xử lý, trạng thái hiện tại: " + r.Status)
	}
	if next != ReceiptConfirmed && next != ReceiptRejected {
		return errors.New("trạng thái biên lai không hợp lệ: " + next)
	}
	r.Status = next
	return nil
}

type SubmitReceiptInput struct {
	BookingId      uint    `json:"bookingId" validate:"required,gt=0"`
	ReceiptImage   string  `json:"receiptImage" validate:"required,url"`
	Amount         float64 `json:"amount" validate:"required,gt=0"`
	Currency       string  `json:"currency" validate:"omitempty,len=3"`
	PaymentMethod  string  `json:"paymentMethod" validate:"omitempty,oneof=bankTransfer card cash mobileMoney"`
	TransactionRef string  `json:"transactionRef" validate:"omitempty,max=100"`
}

type VerifyReceiptInput struct {
	Notes string `json:"notes" validate:"omitempty,max=500"`
}

type FilterReceiptInput struct {
	Pagination
	EventId uint   `json:"eventId" validate:"omitempty,gt=0"`
	Status  string `json:"status" validate:"omitempty,oneof=pending confirmed rejected"`
}
