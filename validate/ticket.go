package validate

import (
	"encoding/json"
	"errors"
	"event_hub/utils"

	"github.com/gofiber/fiber/v2"
)

// ScannedPayload parse payload quét từ QR. Giữ nguyên map thô để handler
// tính lại hash trên đúng những gì client gửi, không qua struct trung gian.
func ScannedPayload() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var payload map[string]any
		if err := json.Unmarshal(c.Body(), &payload); err != nil {
			return utils.ErrorResponse(c, 400, "Payload không hợp lệ", err)
		}

		hash, ok := payload["hash"].(string)
		if !ok || hash == "" {
			return utils.ErrorResponse(c, 400, "Payload thiếu trường hash", errors.New("missing hash"))
		}
		ticketId, ok := payload["ticketId"].(string)
		if !ok || ticketId == "" {
			return utils.ErrorResponse(c, 400, "Payload thiếu trường ticketId", errors.New("missing ticketId"))
		}

		c.Locals("scannedPayload", payload)
		return c.Next()
	}
}
