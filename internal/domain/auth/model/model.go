package model

import (
	"time"
)

type User struct {
	ID           int64  `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"column:hashed_password;not null"`
	CreatedAt    time.Time
}

// Identity is the caller established by a verified bearer token.
type Identity struct {
	UserID int64
	Email  string
}

type AccessToken struct {
	AccessToken string
	TokenType   string
	ExpiresIn   time.Duration
}
