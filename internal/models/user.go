package models

import "gorm.io/gorm"

// User is an optional account. Core gameplay never requires one; accounts
// exist to link a player to an identity for friend requests.
type User struct {
	gorm.Model
	Nickname     string `gorm:"size:255;unique;not null"`
	Email        string `gorm:"size:255;unique;not null"`
	PasswordHash string `gorm:"size:255;not null"`
}
