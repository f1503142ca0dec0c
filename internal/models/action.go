package models

import "gorm.io/gorm"

type ActionType string

const (
	ActionKill    ActionType = "kill"
	ActionSave    ActionType = "save"
	ActionInspect ActionType = "inspect"
)

// Action is one secret night move. The unique index on (room, round, actor)
// makes resubmission a constraint violation instead of a duplicate ledger row
// feeding the tally.
type Action struct {
	gorm.Model
	RoomID      uint       `gorm:"not null;uniqueIndex:idx_actions_room_round_actor"`
	RoundNumber int        `gorm:"not null;uniqueIndex:idx_actions_room_round_actor"`
	ActorID     uint       `gorm:"not null;uniqueIndex:idx_actions_room_round_actor"`
	Type        ActionType `gorm:"size:20;not null"`
	TargetID    uint       `gorm:"not null"`
}
