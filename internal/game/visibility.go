package game

import "mafianight/backend/internal/models"

// Viewer is the identity a message stream is filtered for. Role is empty for
// viewers without an assigned role (lobby, spectators).
type Viewer struct {
	PlayerID uint
	Role     models.Role
	Status   models.PlayerStatus
}

// CanView reports whether the viewer may read msg in the given phase.
//
// Global discussion is public but hidden during the night; the role channel
// belongs to the mafia and exists only at night; an inspect result is shown
// exclusively to the police player that requested it, at night. Phase and
// system entries are the audit stream and are always readable.
func CanView(v Viewer, msg models.Message, phase models.Phase) bool {
	switch msg.Category {
	case models.MessageGlobal:
		return phase != models.PhaseNight
	case models.MessageRole:
		return v.Role == models.RoleMafia && phase == models.PhaseNight
	case models.MessageInspect:
		if v.Role != models.RolePolice || phase != models.PhaseNight {
			return false
		}
		return msg.PlayerID != nil && *msg.PlayerID == v.PlayerID
	case models.MessagePhase, models.MessageSystem:
		return true
	}
	return false
}

// CanSend reports whether the viewer may post a message of the given category
// in the given phase. Dead players read everything they are entitled to but
// never send.
func CanSend(v Viewer, category models.MessageCategory, phase models.Phase) bool {
	if v.Status == models.PlayerDead {
		return false
	}
	switch category {
	case models.MessageGlobal:
		return phase != models.PhaseNight
	case models.MessageRole:
		return v.Role == models.RoleMafia && phase == models.PhaseNight
	}
	// inspect, phase and system entries are only ever written by resolvers.
	return false
}
