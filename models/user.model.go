package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	ProfileImage        string    `gorm:"default:''" json:"profile_image"`
	Name                string    `gorm:"default:''" json:"name"`
	Username            string    `gorm:"unique;not null" json:"username"`
	Email               string    `gorm:"unique;not null" json:"email"`
	Mobile              string    `gorm:"default:''" json:"mobile"`
	Role                string    `gorm:"default:'USER'" json:"role"` // USER, MENTOR, ADMIN
	Password            string    `gorm:"not null" json:"-"`
	ByGoogle            bool      `gorm:"default:false" json:"by_google"`
	MainBalance         uint64    `gorm:"default:0" json:"main_balance"` // minor units
	LastLogin           time.Time `gorm:"default:NULL" json:"last_login"`
	FailedLoginAttempts int       `gorm:"default:0" json:"-"`
	IsBlocked           bool      `gorm:"default:false" json:"-"`
	IsDeleted           bool      `gorm:"default:false" json:"-"`
}
