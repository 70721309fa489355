package handler

import (
	"errors"
	"event_hub/constants"
	"event_hub/database"
	"event_hub/helper"
	"event_hub/model"
	"event_hub/realtime"
	"event_hub/utils"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func CreateBooking(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateBookingInput)
	claim, user := helper.GetInfoUserFromToken(c)
	if claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Tài khoản không tồn tại", errors.New("no user"))
	}

	db := database.DB

	var event model.Event
	if err := db.First(&event, input.EventId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EVENT_NOT_FOUND, err)
	}
	if event.Status != model.EventPublished {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Sự kiện không mở bán vé", nil)
	}

	// Check nhanh trước, guard thật sự nằm trong câu UPDATE bên dưới
	if event.SeatsBooked+input.Seats > event.Capacity {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.EVENT_FULL, nil)
	}

	// Tăng seats_booked atomic, điều kiện capacity nằm ngay trong UPDATE
	result := db.Model(&model.Event{}).
		Where("id = ? AND seats_booked + ? <= capacity AND status = ?",
			event.ID, input.Seats, model.EventPublished).
		Update("seats_booked", gorm.Expr("seats_booked + ?", input.Seats))
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.INTERNAL_ERROR, result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.EVENT_FULL, nil)
	}

	totalAmount := calculateBookingTotal(&event, &input)

	booking := model.Booking{
		PublicCode:      "BK-" + uuid.New().String()[:8],
		UserId:          claim.UserId,
		EventId:         event.ID,
		Seats:           input.Seats,
		TicketBreakdown: input.TicketBreakdown,
		TotalAmount:     totalAmount,
		PaymentMethod:   input.PaymentMethod,
		PaymentStatus:   model.BookingUnpaid,
	}

	if err := db.Create(&booking).Error; err != nil {
		// Trả lại ghế đã giữ nếu không ghi được booking
		db.Model(&model.Event{}).Where("id = ?", event.ID).
			Update("seats_booked", gorm.Expr("seats_booked - ?", input.Seats))
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể tạo đặt chỗ", err)
	}

	if dispatcher != nil {
		dispatcher.Notify(event.OwnerId, realtime.Message{
			Type:    model.NotifyBookingCreated,
			Title:   "Đặt chỗ mới",
			Message: fmt.Sprintf("%s vừa đặt %d chỗ cho sự kiện %s", user.Name, booking.Seats, event.Title),
			Data: model.NotifyData{
				"bookingCode": booking.PublicCode,
				"eventId":     event.ID,
			},
		})
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"booking":     booking,
		"totalAmount": totalAmount,
	})
}

// calculateBookingTotal ưu tiên giá trong bảng kê, fallback giá tier của sự kiện
func calculateBookingTotal(event *model.Event, input *model.CreateBookingInput) float64 {
	if len(input.TicketBreakdown) > 0 {
		total := float64(0)
		for _, entry := range input.TicketBreakdown {
			price := entry.Price
			if price == 0 {
				price = tierPrice(event, entry.Type)
			}
			total += price * float64(entry.Quantity)
		}
		return total
	}
	return tierPrice(event, model.TicketTypeRegular) * float64(input.Seats)
}

func tierPrice(event *model.Event, ticketType string) float64 {
	for _, tier := range event.PriceTiers {
		if tier.Type == ticketType {
			return tier.Price
		}
	}
	return 0
}

func GetMyBookings(c *fiber.Ctx) error {
	claim, _ := helper.GetInfoUserFromToken(c)
	if claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Tài khoản không tồn tại", errors.New("no user"))
	}

	var bookings []model.Booking
	if err := database.DB.Preload("Event").
		Where("user_id = ? AND deleted_at IS NULL", claim.UserId).
		Order("created_at desc").Find(&bookings).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, bookings)
}

func GetBookingByCode(c *fiber.Ctx) error {
	code := c.Params("code")
	claim, _ := helper.GetInfoUserFromToken(c)

	var booking model.Booking
	if err := database.DB.Preload("Event").
		Where("public_code = ?", code).First(&booking).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.BOOKING_NOT_FOUND, err)
	}

	if booking.UserId != claim.UserId && booking.Event.OwnerId != claim.UserId && claim.Role != model.RoleAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	var receipt model.PaymentReceipt
	hasReceipt := database.DB.Where("booking_id = ?", booking.ID).First(&receipt).Error == nil

	response := fiber.Map{"booking": booking, "event": booking.Event}
	if hasReceipt {
		response["receipt"] = receipt
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func CancelBooking(c *fiber.Ctx) error {
	code := c.Params("code")
	claim, _ := helper.GetInfoUserFromToken(c)

	db := database.DB
	var booking model.Booking
	if err := db.Where("public_code = ?", code).First(&booking).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.BOOKING_NOT_FOUND, err)
	}

	if booking.UserId != claim.UserId {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}
	if booking.PaymentStatus != model.BookingUnpaid {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Chỉ huỷ được đặt chỗ chưa thanh toán", nil)
	}

	tx := db.Begin()
	if err := tx.Model(&booking).Update("payment_status", model.BookingCancelled).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể huỷ đặt chỗ", err)
	}
	if err := tx.Model(&model.Event{}).Where("id = ?", booking.EventId).
		Update("seats_booked", gorm.Expr("seats_booked - ?", booking.Seats)).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể trả lại ghế", err)
	}
	tx.Commit()

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message":     "Huỷ đặt chỗ thành công",
		"bookingCode": booking.PublicCode,
	})
}
