package domain

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Username   string `gorm:"column:username;unique;not null" json:"username"`
	Email      string `gorm:"column:email;unique;not null" json:"email"`
	Password   string `gorm:"column:password;not null" json:"-"`
	Bio        string `gorm:"column:bio;type:text" json:"bio"`
	IsVerified bool   `gorm:"column:is_verified;default:false" json:"is_verified"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}
