package models

import "gorm.io/gorm"

type RoomStatus string

const (
	RoomWaiting    RoomStatus = "waiting"
	RoomInProgress RoomStatus = "in_progress"
)

// Capacity bounds for a room. The role distribution is only defined inside
// this range, so both creation and clamping use the same constants.
const (
	MinPlayers = 10
	MaxPlayers = 20
)

// Room is a single game's shared namespace, identified by a join code.
type Room struct {
	gorm.Model
	Code           string     `gorm:"size:8;uniqueIndex;not null"`
	Name           string     `gorm:"size:255;not null"`
	CreatorName    string     `gorm:"size:255;not null"`
	MaxPlayers     int        `gorm:"not null;default:10"`
	CurrentPlayers int        `gorm:"not null;default:0"`
	Status         RoomStatus `gorm:"size:20;not null;default:'waiting'"`

	Players []Player `gorm:"foreignKey:RoomID"`
}
