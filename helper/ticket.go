package helper

import (
	"errors"
	"event_hub/model"
	"event_hub/realtime"
	"event_hub/utils"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TicketCodePrefix = "TKT"

	// Ngày sự kiện thiếu hoặc sai thì coi như sự kiện diễn ra sau 30 ngày,
	// phát hành vé không được fail chỉ vì dữ liệu ngày xấu
	FallbackEventWindow = 30 * 24 * time.Hour

	// Vé còn vào cửa được tới 24h sau ngày sự kiện
	ValidityGrace = 24 * time.Hour

	QRImageSize = 256
)

var (
	ErrReceiptNotFound     = errors.New("payment receipt not found")
	ErrReceiptNotConfirmed = errors.New("payment receipt is not confirmed")
)

// GenerateTicketCode mã vé public: prefix + năm + suffix ngẫu nhiên + suffix thời gian.
// Trùng mã gần như không thể xảy ra, DB vẫn có unique index làm chốt chặn.
func GenerateTicketCode(now time.Time) string {
	random := uuid.New().String()[:8]
	return fmt.Sprintf("%s-%d-%s-%06d",
		TicketCodePrefix, now.Year(), random, now.UnixNano()%1_000_000)
}

// DeriveTicketDetails lấy hạng vé + số lượng từ đặt chỗ:
// có bảng kê thì dùng dòng đầu, không thì regular với số ghế đã đặt
func DeriveTicketDetails(booking *model.Booking) (string, int) {
	if len(booking.TicketBreakdown) > 0 {
		entry := booking.TicketBreakdown[0]
		if entry.Type != "" && entry.Quantity > 0 {
			return entry.Type, entry.Quantity
		}
	}
	quantity := booking.Seats
	if quantity < 1 {
		quantity = 1
	}
	return model.TicketTypeRegular, quantity
}

// ComputeValidityWindow validFrom = lúc phát hành, validUntil = ngày sự kiện + 24h.
// Ngày sự kiện không đọc được thì thay bằng issuedAt + 30 ngày.
func ComputeValidityWindow(event *model.Event, issuedAt time.Time) (time.Time, time.Time) {
	eventDate, err := event.ParseDate()
	if err != nil {
		eventDate = issuedAt.Add(FallbackEventWindow)
	}
	return issuedAt, eventDate.Add(ValidityGrace)
}

// BuildTicketPayload dựng descriptor QR và ký hash trên toàn bộ trường còn lại
func BuildTicketPayload(ticketCode string, ticketType string, quantity int,
	issuedAt, validUntil time.Time, event *model.Event, user *model.User,
	booking *model.Booking) (model.TicketPayload, error) {

	payload := model.TicketPayload{
		TicketId:   ticketCode,
		EventId:    event.ID,
		UserId:     user.ID,
		BookingId:  booking.ID,
		TicketType: ticketType,
		Quantity:   quantity,
		IssuedAt:   issuedAt.UTC().Format(time.RFC3339),
		ValidUntil: validUntil.UTC().Format(time.RFC3339),
		EventTitle: event.Title,
		EventDate:  event.Date,
		UserName:   user.Name,
		UserEmail:  user.Email,
	}

	hash, err := utils.ComputeTicketHash(payload.CanonicalMap())
	if err != nil {
		return model.TicketPayload{}, err
	}
	payload.Hash = hash
	return payload, nil
}

// IssueTicket phát hành vé cho biên lai đã confirmed. Idempotent: biên lai
// đã có vé thì trả về vé cũ, unique index trên payment_receipt_id là chốt
// chặn thật sự khi hai lần confirm chạy đua nhau.
func IssueTicket(db *gorm.DB, dispatcher realtime.Dispatcher, receiptId uint) (*model.Ticket, error) {
	var receipt model.PaymentReceipt
	if err := db.First(&receipt, receiptId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReceiptNotFound
		}
		return nil, err
	}

	if receipt.Status != model.ReceiptConfirmed {
		return nil, ErrReceiptNotConfirmed
	}

	// Fast-path: đã phát hành rồi thì trả vé cũ
	var existing model.Ticket
	err := db.Where("payment_receipt_id = ?", receipt.ID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var booking model.Booking
	if err := db.First(&booking, receipt.BookingId).Error; err != nil {
		return nil, err
	}
	var event model.Event
	if err := db.First(&event, receipt.EventId).Error; err != nil {
		return nil, err
	}
	var user model.User
	if err := db.First(&user, receipt.UserId).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	ticketType, quantity := DeriveTicketDetails(&booking)
	validFrom, validUntil := ComputeValidityWindow(&event, now)
	ticketCode := GenerateTicketCode(now)

	payload, err := BuildTicketPayload(ticketCode, ticketType, quantity,
		now, validUntil, &event, &user, &booking)
	if err != nil {
		return nil, err
	}

	payloadJSON, err := utils.CanonicalJSON(payloadWithHash(payload))
	if err != nil {
		return nil, err
	}

	// QR không render được thì huỷ phát hành, vé không có QR không phải là vé
	qrImage, err := utils.GenerateQRCodeBase64(string(payloadJSON), QRImageSize)
	if err != nil {
		return nil, err
	}

	ticket := model.Ticket{
		TicketCode:       ticketCode,
		UserId:           user.ID,
		EventId:          event.ID,
		BookingId:        booking.ID,
		PaymentReceiptId: receipt.ID,
		TicketType:       ticketType,
		Quantity:         quantity,
		ValidFrom:        validFrom,
		ValidUntil:       validUntil,
		Status:           model.TicketActive,
		QRPayload:        string(payloadJSON),
		QRImage:          qrImage,
	}

	if err := db.Create(&ticket).Error; err != nil {
		// Thua race với lần confirm song song: đọc lại vé của bên thắng
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var winner model.Ticket
			if err := db.Where("payment_receipt_id = ?", receipt.ID).First(&winner).Error; err != nil {
				return nil, err
			}
			return &winner, nil
		}
		return nil, err
	}

	// Notification lỗi chỉ log, phát hành đã xong
	if dispatcher != nil {
		ok := dispatcher.Notify(user.ID, realtime.Message{
			Type:    model.NotifyTicketIssued,
			Title:   "Vé của bạn đã được phát hành",
			Message: fmt.Sprintf("Vé %s cho sự kiện %s đã sẵn sàng", ticket.TicketCode, event.Title),
			Data: model.NotifyData{
				"ticketCode":  ticket.TicketCode,
				"eventId":     event.ID,
				"downloadUrl": fmt.Sprintf("/api/v1/ticket/%s/download", ticket.TicketCode),
			},
		})
		if !ok {
			log.Printf("Không gửi được notification vé %s cho user %d", ticket.TicketCode, user.ID)
		}
	}

	if user.Email != "" {
		qrPNG, err := utils.GenerateQRCode(string(payloadJSON), QRImageSize)
		if err != nil {
			log.Printf("Lỗi tạo QR đính kèm email cho vé %s: %v", ticket.TicketCode, err)
			qrPNG = nil
		}
		utils.SendTicketEmail(user.Email, utils.TicketEmailData{
			UserName:   user.Name,
			EventTitle: event.Title,
			EventDate:  event.Date,
			EventTime:  event.Time,
			Location:   event.Location,
			TicketCode: ticket.TicketCode,
			TicketType: ticket.TicketType,
			Quantity:   ticket.Quantity,
			ValidUntil: validUntil.Format("02/01/2006 15:04"),
			DetailLink: fmt.Sprintf("http://localhost:5173/ve/%s", ticket.TicketCode),
		}, qrPNG)
	}

	return &ticket, nil
}

func payloadWithHash(p model.TicketPayload) map[string]any {
	fields := p.CanonicalMap()
	fields["hash"] = p.Hash
	return fields
}
