package game

import (
	"testing"

	"mafianight/backend/internal/models"
)

func viewer(id uint, role models.Role, status models.PlayerStatus) Viewer {
	return Viewer{PlayerID: id, Role: role, Status: status}
}

func TestCanViewGlobal(t *testing.T) {
	msg := models.Message{Category: models.MessageGlobal}
	citizen := viewer(1, models.RoleCitizen, models.PlayerAlive)

	if CanView(citizen, msg, models.PhaseNight) {
		t.Error("global chat must be hidden during the night")
	}
	for _, phase := range []models.Phase{models.PhaseLobby, models.PhaseDay, models.PhaseEnded} {
		if !CanView(citizen, msg, phase) {
			t.Errorf("global chat should be visible in phase %q", phase)
		}
	}
}

func TestCanViewRoleChannel(t *testing.T) {
	msg := models.Message{Category: models.MessageRole}

	if !CanView(viewer(1, models.RoleMafia, models.PlayerAlive), msg, models.PhaseNight) {
		t.Error("mafia should read the role channel at night")
	}
	if CanView(viewer(1, models.RoleCitizen, models.PlayerAlive), msg, models.PhaseNight) {
		t.Error("citizens must not read the role channel")
	}
	if CanView(viewer(1, models.RoleMafia, models.PlayerAlive), msg, models.PhaseDay) {
		t.Error("the role channel must not survive into the day")
	}
}

func TestCanViewInspectResult(t *testing.T) {
	inspectorID := uint(4)
	msg := models.Message{Category: models.MessageInspect, PlayerID: &inspectorID}

	if !CanView(viewer(4, models.RolePolice, models.PlayerAlive), msg, models.PhaseNight) {
		t.Error("the requesting police player should see their inspect result")
	}
	if CanView(viewer(5, models.RolePolice, models.PlayerAlive), msg, models.PhaseNight) {
		t.Error("other police players must not see someone else's inspect result")
	}
	if CanView(viewer(4, models.RoleMafia, models.PlayerAlive), msg, models.PhaseNight) {
		t.Error("non-police viewers must not see inspect results")
	}
	if CanView(viewer(4, models.RolePolice, models.PlayerAlive), msg, models.PhaseDay) {
		t.Error("inspect results are night-only")
	}
}

func TestCanViewAuditStream(t *testing.T) {
	nobody := Viewer{}
	for _, category := range []models.MessageCategory{models.MessagePhase, models.MessageSystem} {
		for _, phase := range []models.Phase{models.PhaseLobby, models.PhaseNight, models.PhaseDay, models.PhaseEnded} {
			if !CanView(nobody, models.Message{Category: category}, phase) {
				t.Errorf("%s messages should always be readable (phase %q)", category, phase)
			}
		}
	}
}

func TestCanSend(t *testing.T) {
	tests := []struct {
		name     string
		v        Viewer
		category models.MessageCategory
		phase    models.Phase
		want     bool
	}{
		{"citizen chats by day", viewer(1, models.RoleCitizen, models.PlayerAlive), models.MessageGlobal, models.PhaseDay, true},
		{"citizen silenced at night", viewer(1, models.RoleCitizen, models.PlayerAlive), models.MessageGlobal, models.PhaseNight, false},
		{"mafia talks at night", viewer(1, models.RoleMafia, models.PlayerAlive), models.MessageRole, models.PhaseNight, true},
		{"mafia role channel closed by day", viewer(1, models.RoleMafia, models.PlayerAlive), models.MessageRole, models.PhaseDay, false},
		{"dead player never sends", viewer(1, models.RoleMafia, models.PlayerDead), models.MessageRole, models.PhaseNight, false},
		{"dead citizen never sends", viewer(1, models.RoleCitizen, models.PlayerDead), models.MessageGlobal, models.PhaseDay, false},
		{"nobody sends phase messages", viewer(1, models.RoleCitizen, models.PlayerAlive), models.MessagePhase, models.PhaseDay, false},
		{"nobody sends system messages", viewer(1, models.RoleCitizen, models.PlayerAlive), models.MessageSystem, models.PhaseDay, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanSend(tt.v, tt.category, tt.phase); got != tt.want {
				t.Errorf("CanSend = %v, want %v", got, tt.want)
			}
		})
	}
}
