package models

import "gorm.io/gorm"

type FriendRequestStatus string

const (
	FriendRequestPending  FriendRequestStatus = "pending"
	FriendRequestAccepted FriendRequestStatus = "accepted"
	FriendRequestRejected FriendRequestStatus = "rejected"
)

// FriendRequest is sent between accounts that met in a room. The target may
// not have an account yet, in which case ToUserID stays NULL and only the
// display name is recorded.
type FriendRequest struct {
	gorm.Model
	FromUserID     uint  `gorm:"not null;index"`
	ToUserID       *uint `gorm:"index"`
	FromPlayerName string `gorm:"size:255;not null"`
	ToPlayerName   string `gorm:"size:255;not null"`
	RoomID         uint   `gorm:"not null;index"`
	Status         FriendRequestStatus `gorm:"size:20;not null;default:'pending'"`
}
