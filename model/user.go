package model

const (
	RoleUser      = "user"
	RoleOrganizer = "organizer"
	RoleAdmin     = "admin"
)

type User struct {
	DTO
	Name     string `gorm:"size:100;not null" json:"name"`
	Email    string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Phone    string `gorm:"size:20" json:"phone"`
	Role     string `gorm:"size:20;not null;default:'user'" json:"role"`
	Avatar   string `json:"avatar"`
	IsActive bool   `gorm:"default:true" json:"isActive"`
}

type RegisterInput struct {
	Name           string `json:"name" validate:"required,min=2,max=100"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	RepeatPassword string `json:"repeatPassword" validate:"required,eqfield=Password"`
	Phone          string `json:"phone" validate:"omitempty,min=8,max=20"`
	Role           string `json:"role" validate:"omitempty,oneof=user organizer"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
