package helper

import (
	"event_hub/database"
	"event_hub/model"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

var ticketScheduler gocron.Scheduler

// ExpireTickets quét vé active đã quá hạn hiệu lực và chuyển sang expired
func ExpireTickets() {
	db := database.DB
	now := time.Now()

	var expiredTickets []model.Ticket
	err := db.
		Where("status = ? AND valid_until < ?", model.TicketActive, now).
		Find(&expiredTickets).Error
	if err != nil {
		log.Printf("Lỗi tìm vé hết hạn: %v", err)
		return
	}

	if len(expiredTickets) == 0 {
		return
	}

	for _, ticket := range expiredTickets {
		if err := ticket.Transition(model.TicketExpired); err != nil {
			log.Printf("Lỗi chuyển trạng thái vé %s: %v", ticket.TicketCode, err)
			continue
		}
		ticket.UpdatedAt = now
		if err := db.Save(&ticket).Error; err != nil {
			log.Printf("Lỗi cập nhật vé %s: %v", ticket.TicketCode, err)
		}
	}

	log.Printf("Đã expire %d vé hết hạn", len(expiredTickets))
}

// CompleteEvents chuyển sự kiện published đã qua ngày diễn ra sang completed
func CompleteEvents() {
	db := database.DB
	today := time.Now().Truncate(24 * time.Hour)

	var events []model.Event
	if err := db.Where("status = ?", model.EventPublished).Find(&events).Error; err != nil {
		log.Printf("Lỗi quét sự kiện: %v", err)
		return
	}

	for _, event := range events {
		date, err := event.ParseDate()
		if err != nil {
			continue
		}
		if today.After(date) {
			if err := event.Transition(model.EventCompleted); err != nil {
				continue
			}
			if err := db.Save(&event).Error; err != nil {
				log.Printf("Lỗi cập nhật sự kiện '%s': %v", event.Title, err)
			}
		}
	}
}

func StartTicketScheduler() {
	s, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal(err)
	}

	ticketScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(0, 5, 0),
			),
		),
		gocron.NewTask(CompleteEvents),
	)
	if err != nil {
		log.Fatal(err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(10*time.Minute),
		gocron.NewTask(ExpireTickets),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("Ticket scheduler started")
}

func StopTicketScheduler() {
	if ticketScheduler != nil {
		_ = ticketScheduler.Shutdown()
	}
}
