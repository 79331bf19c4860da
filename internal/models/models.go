package models

import (
	"time"
)

type Product struct {
	ID          int       `gorm:"primaryKey;autoIncrement"    json:"id"`
	Name        string    `gorm:"not null"                    json:"name"`
	Price       float64   `gorm:"not null;type:decimal(10,2)" json:"price"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"unique;not null"          json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
