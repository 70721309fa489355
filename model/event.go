package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const (
	EventDraft     = "draft"
	EventPublished = "published"
	EventPostponed = "postponed"
	EventCancelled = "cancelled"
	EventCompleted = "completed"
)

// Các hạng vé cố định
const (
	TicketTypeVVIP      = "vvip"
	TicketTypeVIP       = "vip"
	TicketTypeStandard  = "standard"
	TicketTypeTableFor2 = "tableFor2"
	TicketTypeTableFor5 = "tableFor5"
	TicketTypeRegular   = "regular"
)

// PriceTier giá vé theo hạng
type PriceTier struct {
	Type  string  `json:"type"`
	Price float64 `json:"price"`
}

type PriceTiers []PriceTier

func (p PriceTiers) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

func (p *PriceTiers) Scan(value any) error {
	if value == nil {
		*p = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("cannot scan %T into PriceTiers", value)
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, p)
}

type Event struct {
	DTO
	Title       string     `gorm:"size:200;not null" json:"title"`
	Slug        string     `gorm:"size:220;uniqueIndex" json:"slug"`
	Description string     `gorm:"type:text" json:"description"`
	Category    string     `gorm:"size:50" json:"category"`
	Location    string     `gorm:"size:200" json:"location"`
	Date        string     `gorm:"size:10" json:"date"` // YYYY-MM-DD, có thể rỗng
	Time        string     `gorm:"size:5" json:"time"`  // HH:MM
	Capacity    int        `gorm:"not null;default:0" json:"capacity"`
	SeatsBooked int        `gorm:"not null;default:0" json:"seatsBooked"`
	PriceTiers  PriceTiers `gorm:"type:jsonb" json:"priceTiers"`
	Banner      string     `json:"banner"`
	BannerId    string     `gorm:"size:200" json:"-"` // public_id trên Cloudinary, dùng khi xoá ảnh cũ
	Status      string     `gorm:"size:20;not null;default:'draft'" json:"status"`
	OwnerId     uint       `gorm:"not null;index" json:"ownerId"`

	Owner User `gorm:"foreignKey:OwnerId" json:"-"`
}

// eventTransitions bảng chuyển trạng thái hợp lệ, mọi nơi đổi status
// đều phải đi qua Transition
var eventTransitions = map[string][]string{
	EventDraft:     {EventPublished, EventCancelled},
	EventPublished: {EventPostponed, EventCancelled, EventCompleted},
	EventPostponed: {EventPublished, EventCancelled},
}

func (e *Event) Transition(next string) error {
	for _, allowed := range eventTransitions[e.Status] {
		if allowed == next {
			e.Status = next
			return nil
		}
	}
	return errors.New("không thể chuyển sự kiện từ " + e.Status + " sang " + next)
}

// ParseDate đọc ngày sự kiện, lỗi nếu thiếu hoặc sai định dạng
func (e *Event) ParseDate() (time.Time, error) {
	if e.Date == "" {
		return time.Time{}, errors.New("event date is empty")
	}
	for _, layout := range []string{"2006-01-02", "02/01/2006", time.RFC3339} {
		if t, err := time.Parse(layout, e.Date); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable event date %q", e.Date)
}

type CreateEventInput struct {
	Title       string     `json:"title" validate:"required,min=3,max=200"`
	Description string     `json:"description" validate:"omitempty,max=5000"`
	Category    string     `json:"category" validate:"omitempty,max=50"`
	Location    string     `json:"location" validate:"omitempty,max=200"`
	Date        string     `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time        string     `json:"time" validate:"omitempty,datetime=15:04"`
	Capacity    int        `json:"capacity" validate:"required,gt=0"`
	PriceTiers  PriceTiers `json:"priceTiers" validate:"omitempty,dive"`
	Banner      string     `json:"banner" validate:"omitempty,url"`
}

type EditEventInput struct {
	Title       *string     `json:"title" validate:"omitempty,min=3,max=200"`
	Description *string     `json:"description" validate:"omitempty,max=5000"`
	Category    *string     `json:"category" validate:"omitempty,max=50"`
	Location    *string     `json:"location" validate:"omitempty,max=200"`
	Date        *string     `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time        *string     `json:"time" validate:"omitempty,datetime=15:04"`
	Capacity    *int        `json:"capacity" validate:"omitempty,gt=0"`
	PriceTiers  *PriceTiers `json:"priceTiers" validate:"omitempty,dive"`
	Banner      *string     `json:"banner" validate:"omitempty,url"`
}

type FilterEventInput struct {
	Pagination
	Category string `json:"category" validate:"omitempty,max=50"`
	Search   string `json:"search" validate:"omitempty,max=200"`
	FromDate string `json:"fromDate" validate:"omitempty,datetime=2006-01-02"`
	ToDate   string `json:"toDate" validate:"omitempty,datetime=2006-01-02"`
}
