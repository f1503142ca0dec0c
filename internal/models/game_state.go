package models

import (
	"time"

	"gorm.io/gorm"
)

type Phase string

const (
	PhaseLobby Phase = "lobby"
	PhaseNight Phase = "night"
	PhaseDay   Phase = "day"
	PhaseEnded Phase = "ended"
)

// GameState is the single source of truth for orchestration: one row per room.
// Every racing client drives transitions through conditional updates on this
// row ("... WHERE room_id = ? AND phase = ?"), never through plain writes.
type GameState struct {
	gorm.Model
	RoomID      uint  `gorm:"uniqueIndex;not null"`
	Phase       Phase `gorm:"size:20;not null;default:'lobby'"`
	RoundNumber int   `gorm:"not null;default:0"`

	// Deadline of the current timed phase; NULL in lobby and after the game ends.
	PhaseEndTime *time.Time

	// Winning faction, set together with the transition to PhaseEnded.
	Winner *string `gorm:"size:20"`
}
