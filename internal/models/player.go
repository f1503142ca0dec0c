package models

import "gorm.io/gorm"

type Role string

const (
	RoleMafia   Role = "mafia"
	RoleDoctor  Role = "doctor"
	RolePolice  Role = "police"
	RoleCitizen Role = "citizen"
)

type PlayerStatus string

const (
	PlayerAlive     PlayerStatus = "alive"
	PlayerDead      PlayerStatus = "dead"
	PlayerSpectator PlayerStatus = "spectator"
)

// Player is one seat in a room. The role stays NULL until the game starts and
// is written exactly once by role assignment; status is mutated only by the
// resolvers. Display names are unique per room by case-insensitive comparison
// (enforced at the join boundary, the column collation is left alone).
type Player struct {
	gorm.Model
	RoomID     uint         `gorm:"not null;index;uniqueIndex:idx_players_room_seat"`
	UserName   string       `gorm:"size:255;not null"`
	SeatNumber int          `gorm:"not null;uniqueIndex:idx_players_room_seat"`
	Role       *Role        `gorm:"size:20"`
	Status     PlayerStatus `gorm:"size:20;not null;default:'alive'"`

	// Optional owning account, used for friend requests only.
	UserID *uint `gorm:"index"`
}
