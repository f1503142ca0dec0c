package models

import "gorm.io/gorm"

type MessageCategory string

const (
	// MessageGlobal is day-time public discussion.
	MessageGlobal MessageCategory = "global"
	// MessageRole is the night-time mafia coordination channel.
	MessageRole MessageCategory = "role"
	// MessageInspect carries a police inspection result; PlayerID references
	// the inspecting player, who is the only viewer entitled to it.
	MessageInspect MessageCategory = "inspect"
	// MessagePhase marks a phase transition in the event stream.
	MessagePhase MessageCategory = "phase"
	// MessageSystem is an announcement (eliminations, game over).
	MessageSystem MessageCategory = "system"
)

// Message doubles as chat and as a lightweight event/audit log; it is
// append-only and ordered by creation time.
type Message struct {
	gorm.Model
	RoomID     uint            `gorm:"not null;index"`
	PlayerID   *uint           // author, or the inspect recipient; NULL for system
	PlayerName string          `gorm:"size:255;not null"`
	Content    string          `gorm:"not null"`
	Category   MessageCategory `gorm:"size:20;not null;default:'global'"`
}
