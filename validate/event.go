package validate

import (
	"errors"
	"event_hub/constants"
	"event_hub/helper"
	"event_hub/model"
	"event_hub/utils"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func CreateEvent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, user := helper.GetInfoUserFromToken(c)
		if user.Role != model.RoleOrganizer && user.Role != model.RoleAdmin {
			return utils.ErrorResponse(c, fiber.StatusForbidden, "Chỉ người tổ chức mới được tạo sự kiện", nil)
		}

		var input model.CreateEventInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, "Dữ liệu không hợp lệ", err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, 400, err.Error(), err)
		}
		c.Locals("input", input)
		return c.Next()
	}
}

func EditEvent(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		valueKey, err := strconv.Atoi(params)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		var input model.EditEventInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, "Dữ liệu không hợp lệ", err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, 400, err.Error(), err)
		}

		c.Locals("inputId", valueKey)
		c.Locals("input", input)
		return c.Next()
	}
}

func TransitionEvent(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		valueKey, err := strconv.Atoi(params)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		var input struct {
			Status string `json:"status" validate:"required,oneof=published postponed cancelled completed"`
		}
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, "Dữ liệu không hợp lệ", err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, 400, err.Error(), err)
		}

		c.Locals("inputId", valueKey)
		c.Locals("nextStatus", input.Status)
		return c.Next()
	}
}
