package main

import (
	"context"
	"event_hub/config"
	"event_hub/database"
	"event_hub/handler"
	"event_hub/helper"
	"event_hub/realtime"
	"event_hub/router"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Secret ký vé và JWT bắt buộc, thiếu thì dừng ngay thay vì
	// chạy với key mặc định
	config.MustGet("TICKET_SECRET")
	config.MustGet("JWT_SECRET")

	app := fiber.New(fiber.Config{
		BodyLimit: 25 * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173/",
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	database.ConnectDB()

	redisAddr := config.Config("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})

	registry := realtime.NewSessionRegistry()
	dispatcher := realtime.NewPushDispatcher(registry, rdb, database.DB)
	handler.Init(registry, dispatcher)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go dispatcher.Run(ctx)

	helper.StartTicketScheduler()
	defer helper.StopTicketScheduler()

	router.SetupRoutes(app)
	log.Fatal(app.Listen(":8002"))
}
