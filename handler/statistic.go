package handler

import (
	"errors"
	"event_hub/constants"
	"event_hub/database"
	"event_hub/helper"
	"event_hub/model"
	"event_hub/utils"

	"github.com/gofiber/fiber/v2"
)

// GetOrganizerStats thống kê cho người tổ chức: đặt chỗ, biên lai chờ duyệt,
// vé đã phát hành, doanh thu đã xác nhận theo từng sự kiện
func GetOrganizerStats(c *fiber.Ctx) error {
	claim, user := helper.GetInfoUserFromToken(c)
	if claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Tài khoản không tồn tại", errors.New("no user"))
	}
	if user.Role != model.RoleOrganizer && user.Role != model.RoleAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not organizer"))
	}

	db := database.DB

	type EventStats struct {
		EventId         uint    `json:"eventId"`
		Title           string  `json:"title"`
		Status          string  `json:"status"`
		Capacity        int     `json:"capacity"`
		SeatsBooked     int     `json:"seatsBooked"`
		Bookings        int64   `json:"bookings"`
		PendingReceipts int64   `json:"pendingReceipts"`
		TicketsIssued   int64   `json:"ticketsIssued"`
		TicketsUsed     int64   `json:"ticketsUsed"`
		Revenue         float64 `json:"revenue"`
	}

	var events []model.Event
	if err := db.Where("owner_id = ? AND deleted_at IS NULL", claim.UserId).
		Find(&events).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.INTERNAL_ERROR, err)
	}

	stats := make([]EventStats, 0, len(events))
	for _, event := range events {
		s := EventStats{
			EventId:     event.ID,
			Title:       event.Title,
			Status:      event.Status,
			Capacity:    event.Capacity,
			SeatsBooked: event.SeatsBooked,
		}

		db.Model(&model.Booking{}).
			Where("event_id = ? AND payment_status <> ?", event.ID, model.BookingCancelled).
			Count(&s.Bookings)
		db.Model(&model.PaymentReceipt{}).
			Where("event_id = ? AND status = ?", event.ID, model.ReceiptPending).
			Count(&s.PendingReceipts)
		db.Model(&model.Ticket{}).
			Where("event_id = ?", event.ID).Count(&s.TicketsIssued)
		db.Model(&model.Ticket{}).
			Where("event_id = ? AND status = ?", event.ID, model.TicketUsed).
			Count(&s.TicketsUsed)
		db.Raw(`
        SELECT COALESCE(SUM(amount), 0)
        FROM payment_receipts
        WHERE event_id = ? AND status = 'confirmed'
    `, event.ID).Scan(&s.Revenue)

		stats = append(stats, s)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, stats)
}
