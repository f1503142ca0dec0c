package models

import "gorm.io/gorm"

// Vote is a public day-phase elimination choice. A re-vote is a delete of the
// voter's prior row followed by an insert, so at most one current vote exists
// per (room, round, voter). Rows are round-scoped and cleared by the day
// resolver after tallying.
type Vote struct {
	gorm.Model
	RoomID      uint `gorm:"not null;index:idx_votes_room_round"`
	RoundNumber int  `gorm:"not null;index:idx_votes_room_round"`
	VoterID     uint `gorm:"not null"`
	TargetID    uint `gorm:"not null"`
}
