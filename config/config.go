package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config đọc biến môi trường, load .env nếu có
func Config(key string) string {
	// .env là optional khi chạy trong container
	godotenv.Load(".env")
	return os.Getenv(key)
}

// MustGet trả về giá trị hoặc dừng app nếu thiếu.
// TICKET_SECRET và JWT_SECRET bắt buộc phải có, không fallback.
func MustGet(key string) string {
	godotenv.Load(".env")
	val, exist := os.LookupEnv(key)
	if !exist || val == "" {
		log.Fatalf("missing required env variable %s", key)
	}
	return val
}

func Get(key string) (string, error) {
	val, exist := os.LookupEnv(key)
	if exist {
		return val, nil
	}
	return "", fmt.Errorf("no env variable with key %v", key)
}
