package domain

import "time"

type User struct {
	Username     string    `json:"username" gorm:"primaryKey;size:100"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Name         string    `json:"name" gorm:"size:100;not null"`
	Token        *string   `json:"-" gorm:"index"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
