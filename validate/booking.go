package validate

import (
	"event_hub/model"
	"event_hub/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateBooking() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateBookingInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, "Dữ liệu không hợp lệ", err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, 400, err.Error(), err)
		}

		// Bảng kê vé (nếu có) phải khớp tổng số ghế
		if len(input.TicketBreakdown) > 0 {
			total := 0
			for _, entry := range input.TicketBreakdown {
				if entry.Quantity <= 0 {
					return utils.ErrorResponse(c, 400, "Số lượng trong bảng kê vé phải lớn hơn 0", nil)
				}
				total += entry.Quantity
			}
			if total != input.Seats {
				return utils.ErrorResponse(c, 400, "Tổng bảng kê vé không khớp số ghế đặt", nil)
			}
		}

		if input.PaymentMethod == "" {
			input.PaymentMethod = model.PaymentMethodBankTransfer
		}

		c.Locals("input", input)
		return c.Next()
	}
}
