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
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
)

func CreateEvent(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateEventInput)
	claim, _ := helper.GetInfoUserFromToken(c)

	db := database.DB

	var newEvent model.Event
	copier.Copy(&newEvent, &input)
	newEvent.OwnerId = claim.UserId
	newEvent.Status = model.EventDraft
	newEvent.Slug = helper.GenerateUniqueEventSlug(db, input.Title)

	if err := db.Create(&newEvent).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể tạo sự kiện", err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, newEvent)
}

func GetEvents(c *fiber.Ctx) error {
	filterInput := new(model.FilterEventInput)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	db := database.DB
	var events []model.Event
	condition := db.Model(&model.Event{}).
		Where("status = ? AND deleted_at IS NULL", model.EventPublished)

	if filterInput.Category != "" {
		condition = condition.Where("category = ?", filterInput.Category)
	}
	if filterInput.Search != "" {
		condition = condition.Where("title ILIKE ?", "%"+filterInput.Search+"%")
	}
	if filterInput.FromDate != "" {
		condition = condition.Where("date >= ?", filterInput.FromDate)
	}
	if filterInput.ToDate != "" {
		condition = condition.Where("date <= ?", filterInput.ToDate)
	}

	var totalCount int64
	condition.Count(&totalCount)

	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)
	if err := condition.Order("date asc").Find(&events).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.INTERNAL_ERROR, err)
	}

	response := &model.ResponseCustom{
		Rows:       events,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func GetEventBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var event model.Event
	if err := database.DB.Preload("Owner").
		Where("slug = ? AND deleted_at IS NULL", slug).First(&event).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EVENT_NOT_FOUND, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"event": event,
		"organizer": fiber.Map{
			"id":   event.Owner.ID,
			"name": event.Owner.Name,
		},
		"seatsLeft": event.Capacity - event.SeatsBooked,
	})
}

func GetMyEvents(c *fiber.Ctx) error {
	claim, _ := helper.GetInfoUserFromToken(c)
	if claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Tài khoản không tồn tại", errors.New("no user"))
	}

	var events []model.Event
	if err := database.DB.
		Where("owner_id = ? AND deleted_at IS NULL", claim.UserId).
		Order("created_at desc").Find(&events).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, events)
}

func EditEvent(c *fiber.Ctx) error {
	eventId := c.Locals("inputId").(int)
	input := c.Locals("input").(model.EditEventInput)
	claim, _ := helper.GetInfoUserFromToken(c)

	db := database.DB
	var event model.Event
	if err := db.First(&event, eventId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EVENT_NOT_FOUND, err)
	}

	if event.OwnerId != claim.UserId && claim.Role != model.RoleAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, errors.New("not permission"))
	}

	// Không cho thu nhỏ capacity xuống dưới số ghế đã bán
	if input.Capacity != nil && *input.Capacity < event.SeatsBooked {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Sức chứa mới nhỏ hơn số ghế đã đặt", nil)
	}

	copier.CopyWithOption(&event, &input, copier.Option{IgnoreEmpty: true})
	if input.Title != nil && *input.Title != "" {
		event.Slug = helper.GenerateUniqueEventSlug(db, *input.Title)
	}

	if err := db.Save(&event).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể cập nhật sự kiện", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, event)
}

// TransitionEvent đổi trạng thái sự kiện qua FSM, postpone/cancel thì
// báo cho toàn bộ người đã đặt chỗ
func TransitionEvent(c *fiber.Ctx) error {
	eventId := c.Locals("inputId").(int)
	nextStatus := c.Locals("nextStatus").(string)
	claim, _ := helper.GetInfoUserFromToken(c)

	db := database.DB
	var event model.Event
	if err := db.First(&event, eventId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EVENT_NOT_FOUND, err)
	}

	if event.OwnerId != claim.UserId && claim.Role != model.RoleAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, errors.New("not permission"))
	}

	if err := event.Transition(nextStatus); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
	}

	if err := db.Save(&event).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể cập nhật sự kiện", err)
	}

	if nextStatus == model.EventPostponed || nextStatus == model.EventCancelled {
		notifyEventBookers(&event, nextStatus)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, event)
}

func notifyEventBookers(event *model.Event, status string) {
	var bookings []model.Booking
	if err := database.DB.
		Where("event_id = ? AND payment_status <> ?", event.ID, model.BookingCancelled).
		Find(&bookings).Error; err != nil {
		log.Printf("Lỗi tìm đặt chỗ của sự kiện %d: %v", event.ID, err)
		return
	}

	title := "Sự kiện bị hoãn"
	if status == model.EventCancelled {
		title = "Sự kiện đã bị huỷ"
	}

	for _, booking := range bookings {
		if dispatcher == nil {
			break
		}
		dispatcher.Notify(booking.UserId, realtime.Message{
			Type:    model.NotifyEventUpdated,
			Title:   title,
			Message: fmt.Sprintf("Sự kiện %s đã chuyển sang trạng thái %s", event.Title, status),
			Data: model.NotifyData{
				"eventId": event.ID,
				"status":  status,
			},
		})
	}
}
