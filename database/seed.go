package database

import (
	"event_hub/model"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("123456cn"), 10)
	HashPassword := string(bytes)
	if err != nil {
		HashPassword = "123456cn"
	}
	users := []model.User{
		{Name: "Administration", Email: "admin@eventhub.local", Password: HashPassword, IsActive: true, Role: model.RoleAdmin},
	}

	for _, user := range users {
		// Tạo mới nếu không tồn tại
		if err := db.Where(model.User{Email: user.Email}).FirstOrCreate(&user).Error; err != nil {
			log.Println("failed to seed data for user:", user.Email, "error:", err)
		}
	}
}
