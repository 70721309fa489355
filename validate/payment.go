package validate

import (
	"errors"
	"event_hub/constants"
	"event_hub/model"
	"event_hub/utils"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func SubmitReceipt() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.SubmitReceiptInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, "Dữ liệu không hợp lệ", err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, 400, err.Error(), err)
		}
		if input.Currency == "" {
			input.Currency = "VND"
		}
		c.Locals("input", input)
		return c.Next()
	}
}

func VerifyReceipt(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		valueKey, err := strconv.Atoi(params)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		var input model.VerifyReceiptInput
		// Body trống vẫn hợp lệ, notes là optional
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&input); err != nil {
				return utils.ErrorResponse(c, 400, "Dữ liệu không hợp lệ", err)
			}
			if err := validate.Struct(input); err != nil {
				return utils.ErrorResponse(c, 400, err.Error(), err)
			}
		}

		c.Locals("inputId", valueKey)
		c.Locals("input", input)
		return c.Next()
	}
}
