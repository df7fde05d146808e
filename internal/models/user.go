package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	GoogleID string `gorm:"uniqueIndex"`
	Name     string
	Email    string
	Avatar   string
}
