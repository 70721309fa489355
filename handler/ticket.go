package handler

import (
	"encoding/base64"
	"errors"
	"event_hub/constants"
	"event_hub/database"
	"event_hub/helper"
	"event_hub/model"
	"event_hub/utils"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func GetMyTickets(c *fiber.Ctx) error {
	claim, _ := helper.GetInfoUserFromToken(c)
	if claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Tài khoản không tồn tại", errors.New("no user"))
	}

	var tickets []model.Ticket
	if err := database.DB.Preload("Event").
		Where("user_id = ? AND deleted_at IS NULL", claim.UserId).
		Order("created_at desc").Find(&tickets).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, tickets)
}

func GetTicketByCode(c *fiber.Ctx) error {
	code := c.Params("ticketCode")
	claim, _ := helper.GetInfoUserFromToken(c)

	var ticket model.Ticket
	if err := database.DB.Preload("Event").Preload("User").
		Where("ticket_code = ?", code).First(&ticket).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.TICKET_NOT_FOUND, err)
	}

	if ticket.UserId != claim.UserId && ticket.Event.OwnerId != claim.UserId && claim.Role != model.RoleAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"ticket":  ticket,
		"isValid": ticket.IsValid(time.Now()),
	})
}

// DownloadTicket trả PNG của QR và đếm số lần tải
func DownloadTicket(c *fiber.Ctx) error {
	code := c.Params("ticketCode")
	claim, _ := helper.GetInfoUserFromToken(c)

	db := database.DB
	var ticket model.Ticket
	if err := db.Where("ticket_code = ?", code).First(&ticket).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.TICKET_NOT_FOUND, err)
	}

	if ticket.UserId != claim.UserId && claim.Role != model.RoleAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	db.Model(&ticket).Update("download_count", gorm.Expr("download_count + 1"))

	raw, err := base64.StdEncoding.DecodeString(ticket.QRImage)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.INTERNAL_ERROR, err)
	}

	c.Set("Content-Type", "image/png")
	c.Set("Content-Disposition", "attachment; filename=Ve_"+ticket.TicketCode+".png")
	return c.Send(raw)
}

// ValidateTicket kiểm tra payload quét từ QR, không đổi trạng thái vé.
// Hash sai thì dừng ngay, không tiết lộ trường nào bị sửa.
func ValidateTicket(c *fiber.Ctx) error {
	payload := c.Locals("scannedPayload").(map[string]any)
	claim, _ := helper.GetInfoUserFromToken(c)

	candidateHash, _ := payload["hash"].(string)
	fields := make(map[string]any, len(payload))
	for k, v := range payload {
		if k == "hash" {
			continue
		}
		fields[k] = v
	}

	ok, err := utils.VerifyTicketHash(fields, candidateHash)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.INTERNAL_ERROR, err)
	}
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"valid":  false,
			"reason": constants.HASH_INVALID,
		})
	}

	ticketCode, _ := payload["ticketId"].(string)

	db := database.DB
	var ticket model.Ticket
	if err := db.Preload("Event").Preload("User").
		Where("ticket_code = ?", ticketCode).First(&ticket).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"valid":  false,
			"reason": constants.TICKET_NOT_FOUND,
		})
	}

	// Chỉ chủ sự kiện được soát vé
	if ticket.Event.OwnerId != claim.UserId && claim.Role != model.RoleAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, errors.New("not permission"))
	}

	if ticket.Status == model.TicketUsed {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"valid":  false,
			"reason": constants.TICKET_USED,
			"usedAt": ticket.UsedAt,
			"usedBy": ticket.UsedBy,
		})
	}

	if !ticket.IsValid(time.Now()) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"valid":  false,
			"reason": constants.TICKET_INVALID,
			"status": ticket.Status,
		})
	}

	return c.JSON(fiber.Map{
		"valid": true,
		"ticket": fiber.Map{
			"ticketId":     ticket.TicketCode,
			"attendeeName": ticket.User.Name,
			"ticketType":   ticket.TicketType,
			"quantity":     ticket.Quantity,
			"eventTitle":   ticket.Event.Title,
			"validUntil":   ticket.ValidUntil,
		},
	})
}

// UseTicket check-in vé: chuyển active -> used một chiều, UPDATE có điều kiện
// trạng thái nên hai lần quét đồng thời chỉ một lần thành công
func UseTicket(c *fiber.Ctx) error {
	ticketCode := c.Params("ticketCode")
	claim, _ := helper.GetInfoUserFromToken(c)

	db := database.DB
	var ticket model.Ticket
	if err := db.Preload("Event").Preload("User").
		Where("ticket_code = ?", ticketCode).First(&ticket).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.TICKET_NOT_FOUND, err)
	}

	if ticket.Event.OwnerId != claim.UserId && claim.Role != model.RoleAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, errors.New("not permission"))
	}

	if ticket.Status == model.TicketUsed {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"valid":  false,
			"reason": constants.TICKET_USED,
			"usedAt": ticket.UsedAt,
			"usedBy": ticket.UsedBy,
		})
	}

	now := time.Now()
	if !ticket.IsValid(now) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"valid":  false,
			"reason": constants.TICKET_INVALID,
			"status": ticket.Status,
		})
	}

	result := db.Model(&model.Ticket{}).
		Where("id = ? AND status = ?", ticket.ID, model.TicketActive).
		Updates(map[string]any{
			"status":  model.TicketUsed,
			"used_at": now,
			"used_by": claim.UserId,
		})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi cập nhật vé", result.Error)
	}
	if result.RowsAffected == 0 {
		// Thua race với lần quét song song
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"valid":  false,
			"reason": constants.TICKET_USED,
		})
	}

	return c.JSON(fiber.Map{
		"message":      "Check-in thành công",
		"ticketId":     ticket.TicketCode,
		"attendeeName": ticket.User.Name,
		"usedAt":       now.Format("02/01/2006 15:04"),
	})
}
