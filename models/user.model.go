package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	gorm.Model
	Name      string    `gorm:"default:''" json:"name"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Mobile    string    `gorm:"default:''" json:"mobile"`
	Role      string    `gorm:"type:varchar(20);default:'USER'" json:"role"` // USER, ADMIN
	LastLogin time.Time `gorm:"default:NULL" json:"last_login"`
	IsBlocked bool      `gorm:"default:false" json:"is_blocked"`
	IsDeleted bool      `gorm:"default:false" json:"is_deleted"`
}
