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

func GetNotifications(c *fiber.Ctx) error {
	claim, _ := helper.GetInfoUserFromToken(c)
	if claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Tài khoản không tồn tại", errors.New("no user"))
	}

	pagination := new(model.Pagination)
	if err := c.QueryParser(pagination); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	db := database.DB
	condition := db.Model(&model.Notification{}).Where("user_id = ?", claim.UserId)

	var totalCount int64
	condition.Count(&totalCount)

	var notifications []model.Notification
	condition = utils.ApplyPagination(condition, pagination.Limit, pagination.Page)
	if err := condition.Order("created_at desc").Find(&notifications).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.INTERNAL_ERROR, err)
	}

	response := &model.ResponseCustom{
		Rows:       notifications,
		Limit:      pagination.Limit,
		Page:       pagination.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func GetUnreadCount(c *fiber.Ctx) error {
	claim, _ := helper.GetInfoUserFromToken(c)
	if claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Tài khoản không tồn tại", errors.New("no user"))
	}

	var count int64
	database.DB.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = false", claim.UserId).Count(&count)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"unread": count})
}

func MarkNotificationRead(c *fiber.Ctx) error {
	notificationId := c.Locals("inputId").(int)
	claim, _ := helper.GetInfoUserFromToken(c)

	result := database.DB.Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", notificationId, claim.UserId).
		Update("is_read", true)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.INTERNAL_ERROR, result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND, nil)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Đã đọc"})
}

// DeleteNotifications xoá nhiều thông báo của chính user
func DeleteNotifications(c *fiber.Ctx) error {
	input := c.Locals("deleteIds").(model.ArrayId)
	claim, _ := helper.GetInfoUserFromToken(c)

	if err := database.DB.Where("id IN ? AND user_id = ?", input.IDs, claim.UserId).
		Delete(&model.Notification{}).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Đã xoá thông báo"})
}

func MarkAllNotificationsRead(c *fiber.Ctx) error {
	claim, _ := helper.GetInfoUserFromToken(c)
	if claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Tài khoản không tồn tại", errors.New("no user"))
	}

	if err := database.DB.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = false", claim.UserId).
		Update("is_read", true).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Đã đọc tất cả"})
}
