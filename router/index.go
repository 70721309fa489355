package router

import (
	"event_hub/handler"
	"event_hub/middleware"
	"event_hub/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/register", validate.Register(), handler.Register)
	auth.Post("/login", validate.Login(), handler.Login)
	auth.Post("/refresh-token", handler.RefreshToken)
	auth.Get("/me", middleware.Protected(), handler.Me)
	auth.Post("/change-password", middleware.Protected(), validate.ChangePassword(), handler.ChangePassword)

	event := v1.Group("/event", logger.New())
	event.Get("/", middleware.OptionalJWT(), handler.GetEvents)
	event.Get("/mine", middleware.Protected(), handler.GetMyEvents)
	event.Get("/:slug", middleware.OptionalJWT(), handler.GetEventBySlug)
	event.Post("/", middleware.Protected(), validate.CreateEvent(), handler.CreateEvent)
	event.Put("/:eventId", middleware.Protected(), validate.EditEvent("eventId"), handler.EditEvent)
	event.Patch("/:eventId/status", middleware.Protected(), validate.TransitionEvent("eventId"), handler.TransitionEvent)
	event.Post("/:eventId/banner", middleware.Protected(), validate.GetById("eventId"), handler.UploadEventBanner)

	booking := v1.Group("/booking", logger.New())
	booking.Get("/", middleware.Protected(), handler.GetMyBookings)
	booking.Post("/", middleware.Protected(), validate.CreateBooking(), handler.CreateBooking)
	booking.Get("/:code", middleware.Protected(), handler.GetBookingByCode)
	booking.Post("/:code/cancel", middleware.Protected(), handler.CancelBooking)

	receipt := v1.Group("/receipt", logger.New())
	receipt.Post("/", middleware.Protected(), validate.SubmitReceipt(), handler.SubmitReceipt)
	receipt.Get("/", middleware.Protected(), handler.GetReceiptsForOrganizer)
	receipt.Patch("/:receiptId/confirm", middleware.Protected(), validate.VerifyReceipt("receiptId"), handler.ConfirmReceipt)
	receipt.Patch("/:receiptId/reject", middleware.Protected(), validate.VerifyReceipt("receiptId"), handler.RejectReceipt)

	ticket := v1.Group("/ticket", logger.New())
	ticket.Get("/", middleware.Protected(), handler.GetMyTickets)
	ticket.Post("/validate", middleware.Protected(), validate.ScannedPayload(), handler.ValidateTicket)
	ticket.Get("/:ticketCode", middleware.Protected(), handler.GetTicketByCode)
	ticket.Get("/:ticketCode/download", middleware.Protected(), handler.DownloadTicket)
	ticket.Post("/:ticketCode/use", middleware.Protected(), handler.UseTicket)

	notification := v1.Group("/notification", logger.New())
	notification.Get("/", middleware.Protected(), handler.GetNotifications)
	notification.Get("/unread", middleware.Protected(), handler.GetUnreadCount)
	notification.Patch("/read-all", middleware.Protected(), handler.MarkAllNotificationsRead)
	notification.Patch("/:notificationId/read", middleware.Protected(), validate.GetById("notificationId"), handler.MarkNotificationRead)
	notification.Delete("/", middleware.Protected(), validate.Delete(), handler.DeleteNotifications)

	statistic := v1.Group("/statistic", logger.New())
	statistic.Get("/", middleware.Protected(), handler.GetOrganizerStats)

	v1.Post("/cloudinary-signature", middleware.Protected(), handler.GenerateSignature)

	v1.Get("/ws/notifications", websocket.New(handler.NotificationSocket))
}
