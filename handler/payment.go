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
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SubmitReceipt(c *fiber.Ctx) error {
	input := c.Locals("input").(model.SubmitReceiptInput)
	claim, user := helper.GetInfoUserFromToken(c)
	if claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Tài khoản không tồn tại", errors.New("no user"))
	}

	db := database.DB

	var booking model.Booking
	if err := db.Preload("Event").First(&booking, input.BookingId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.BOOKING_NOT_FOUND, err)
	}
	if booking.UserId != claim.UserId {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}
	if booking.PaymentStatus == model.BookingPaid {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Đặt chỗ đã thanh toán", nil)
	}
	if booking.PaymentStatus == model.BookingCancelled {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Đặt chỗ đã huỷ", nil)
	}

	// Mỗi đặt chỗ một biên lai, unique index trên booking_id chặn lần hai
	var existing model.PaymentReceipt
	if err := db.Where("booking_id = ?", booking.ID).First(&existing).Error; err == nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.RECEIPT_EXISTS, nil)
	}

	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = booking.PaymentMethod
	}

	receipt := model.PaymentReceipt{
		UserId:         claim.UserId,
		EventId:        booking.EventId,
		VerifierId:     booking.Event.OwnerId,
		BookingId:      booking.ID,
		ReceiptImage:   input.ReceiptImage,
		Amount:         input.Amount,
		Currency:       input.Currency,
		PaymentMethod:  paymentMethod,
		TransactionRef: input.TransactionRef,
		Status:         model.ReceiptPending,
	}

	if err := db.Create(&receipt).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.RECEIPT_EXISTS, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể lưu biên lai", err)
	}

	db.Model(&booking).Update("payment_status", model.BookingReceiptSubmitted)

	if dispatcher != nil {
		dispatcher.Notify(booking.Event.OwnerId, realtime.Message{
			Type:    model.NotifyBookingCreated,
			Title:   "Biên lai thanh toán mới",
			Message: fmt.Sprintf("%s đã gửi biên lai cho đặt chỗ %s", user.Name, booking.PublicCode),
			Data: model.NotifyData{
				"receiptId":   receipt.ID,
				"bookingCode": booking.PublicCode,
				"eventId":     booking.EventId,
			},
		})
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, receipt)
}

func GetReceiptsForOrganizer(c *fiber.Ctx) error {
	claim, _ := helper.GetInfoUserFromToken(c)
	if claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Tài khoản không tồn tại", errors.New("no user"))
	}

	filterInput := new(model.FilterReceiptInput)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	db := database.DB
	condition := db.Model(&model.PaymentReceipt{}).
		Preload("User").Preload("Booking").
		Where("verifier_id = ?", claim.UserId)

	if filterInput.EventId > 0 {
		condition = condition.Where("event_id = ?", filterInput.EventId)
	}
	if filterInput.Status != "" {
		condition = condition.Where("status = ?", filterInput.Status)
	}

	var totalCount int64
	condition.Count(&totalCount)

	var receipts []model.PaymentReceipt
	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)
	if err := condition.Order("created_at desc").Find(&receipts).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.INTERNAL_ERROR, err)
	}

	response := &model.ResponseCustom{
		Rows:       receipts,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

// ConfirmReceipt xác nhận biên lai rồi phát hành vé. Phát hành idempotent:
// confirm lại lần nữa vẫn trả về đúng vé đã phát hành.
func ConfirmReceipt(c *fiber.Ctx) error {
	receiptId := c.Locals("inputId").(int)
	input := c.Locals("input").(model.VerifyReceiptInput)
	claim, _ := helper.GetInfoUserFromToken(c)

	db := database.DB
	var receipt model.PaymentReceipt
	if err := db.First(&receipt, receiptId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.RECEIPT_NOT_FOUND, err)
	}

	if receipt.VerifierId != claim.UserId && claim.Role != model.RoleAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, errors.New("not permission"))
	}

	// Confirm lặp lại: trả về vé cũ thay vì báo lỗi
	if receipt.Status == model.ReceiptConfirmed {
		ticket, err := helper.IssueTicket(db, dispatcher, receipt.ID)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể phát hành vé", err)
		}
		return utils.SuccessResponse(c, fiber.StatusOK, issuanceResult(&receipt, ticket))
	}

	if err := receipt.Transition(model.ReceiptConfirmed); err != nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, err.Error(), err)
	}

	now := time.Now()
	receipt.VerifiedBy = &claim.UserId
	receipt.VerifiedAt = &now
	receipt.Notes = input.Notes

	if err := db.Save(&receipt).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể cập nhật biên lai", err)
	}

	db.Model(&model.Booking{}).Where("id = ?", receipt.BookingId).
		Update("payment_status", model.BookingPaid)

	ticket, err := helper.IssueTicket(db, dispatcher, receipt.ID)
	if err != nil {
		// Vé không có QR không phải là vé, lỗi phát hành là lỗi hệ thống
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể phát hành vé", err)
	}

	if dispatcher != nil {
		dispatcher.Notify(receipt.UserId, realtime.Message{
			Type:    model.NotifyReceiptConfirmed,
			Title:   "Thanh toán đã được xác nhận",
			Message: "Biên lai của bạn đã được xác nhận, vé đã phát hành",
			Data: model.NotifyData{
				"receiptId":  receipt.ID,
				"ticketCode": ticket.TicketCode,
			},
		})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, issuanceResult(&receipt, ticket))
}

func issuanceResult(receipt *model.PaymentReceipt, ticket *model.Ticket) fiber.Map {
	return fiber.Map{
		"receipt": fiber.Map{
			"id":     receipt.ID,
			"status": receipt.Status,
		},
		"ticket": fiber.Map{
			"ticketId":    ticket.TicketCode,
			"ticketType":  ticket.TicketType,
			"quantity":    ticket.Quantity,
			"validUntil":  ticket.ValidUntil,
			"downloadUrl": fmt.Sprintf("/api/v1/ticket/%s/download", ticket.TicketCode),
		},
	}
}

func RejectReceipt(c *fiber.Ctx) error {
	receiptId := c.Locals("inputId").(int)
	input := c.Locals("input").(model.VerifyReceiptInput)
	claim, _ := helper.GetInfoUserFromToken(c)

	db := database.DB
	var receipt model.PaymentReceipt
	if err := db.First(&receipt, receiptId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.RECEIPT_NOT_FOUND, err)
	}

	if receipt.VerifierId != claim.UserId && claim.Role != model.RoleAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, errors.New("not permission"))
	}

	if err := receipt.Transition(model.ReceiptRejected); err != nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, err.Error(), err)
	}

	now := time.Now()
	receipt.VerifiedBy = &claim.UserId
	receipt.VerifiedAt = &now
	receipt.Notes = input.Notes

	if err := db.Save(&receipt).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể cập nhật biên lai", err)
	}

	db.Model(&model.Booking{}).Where("id = ?", receipt.BookingId).
		Update("payment_status", model.BookingUnpaid)

	if dispatcher != nil {
		dispatcher.Notify(receipt.UserId, realtime.Message{
			Type:    model.NotifyReceiptRejected,
			Title:   "Biên lai bị từ chối",
			Message: "Biên lai thanh toán của bạn không được chấp nhận: " + input.Notes,
			Data: model.NotifyData{
				"receiptId": receipt.ID,
			},
		})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, receipt)
}
