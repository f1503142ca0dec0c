package engine

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"mafianight/backend/internal/game"
	"mafianight/backend/internal/hub"
	"mafianight/backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrNotCreator       = errors.New("only the room creator can start the game")
	ErrNotEnoughPlayers = errors.New("not enough players to start")
	ErrAlreadyStarted   = errors.New("game already started")
)

// Engine drives a room's session through its phases. There is no scheduler
// behind it: every connected client calls Resolve when its local countdown
// hits zero, and the conditional update on the GameState row decides which
// of the racing calls actually advances the phase. Losing a race is normal
// operation, not an error.
type Engine struct {
	db            *gorm.DB
	nightDuration time.Duration
	dayDuration   time.Duration
}

func New(db *gorm.DB, nightDuration, dayDuration time.Duration) *Engine {
	return &Engine{db: db, nightDuration: nightDuration, dayDuration: dayDuration}
}

// StartGame begins the first night. The lobby->night conditional update runs
// before anything else so that exactly one caller proceeds to role
// assignment, which is itself not safe against double invocation.
func (e *Engine) StartGame(roomID uint, callerName string) error {
	var room models.Room
	if err := e.db.First(&room, roomID).Error; err != nil {
		return err
	}
	if !strings.EqualFold(strings.TrimSpace(room.CreatorName), strings.TrimSpace(callerName)) {
		return ErrNotCreator
	}

	var players []models.Player
	if err := e.db.Where("room_id = ?", roomID).Order("seat_number").Find(&players).Error; err != nil {
		return err
	}
	if len(players) < models.MinPlayers {
		return ErrNotEnoughPlayers
	}

	deadline := time.Now().Add(e.nightDuration)
	res := e.db.Model(&models.GameState{}).
		Where("room_id = ? AND phase = ?", roomID, models.PhaseLobby).
		Updates(map[string]interface{}{
			"phase":          models.PhaseNight,
			"round_number":   1,
			"phase_end_time": deadline,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyStarted
	}

	// The multiset is built from capacity, not occupancy; with fewer seated
	// players than capacity the tail of the shuffle goes unused.
	roles := game.RoleDistribution(room.MaxPlayers).Shuffled()
	for i, p := range players {
		if err := e.db.Model(&models.Player{}).Where("id = ?", p.ID).Update("role", roles[i]).Error; err != nil {
			return err
		}
	}

	if err := e.db.Model(&models.Room{}).Where("id = ?", roomID).
		Update("status", models.RoomInProgress).Error; err != nil {
		return err
	}

	e.phaseMessage(roomID, models.PhaseNight)
	e.notify(roomID, "players")
	e.notify(roomID, "game_state")
	e.notify(roomID, "room")
	return nil
}

// Resolve is the deadline tick. It re-reads the authoritative GameState and
// aborts when the phase deadline has not actually passed yet, which guards
// against stale in-memory timers on slow clients.
func (e *Engine) Resolve(roomID uint) error {
	var gs models.GameState
	if err := e.db.Where("room_id = ?", roomID).First(&gs).Error; err != nil {
		return err
	}
	if gs.PhaseEndTime == nil || time.Now().Before(*gs.PhaseEndTime) {
		return nil
	}

	switch gs.Phase {
	case models.PhaseNight:
		return e.resolveNight(&gs)
	case models.PhaseDay:
		return e.resolveDay(&gs)
	}
	return nil
}

// resolveNight consumes the action ledger for the round. Side effects apply
// in a fixed order: kill tally, save filter, status mutation, win check,
// inspect fan-out, then the conditional phase advance.
func (e *Engine) resolveNight(gs *models.GameState) error {
	var actions []models.Action
	if err := e.db.Where("room_id = ? AND round_number = ?", gs.RoomID, gs.RoundNumber).
		Find(&actions).Error; err != nil {
		return err
	}

	var killTargets []uint
	saved := make(map[uint]bool)
	for _, a := range actions {
		switch a.Type {
		case models.ActionKill:
			killTargets = append(killTargets, a.TargetID)
		case models.ActionSave:
			saved[a.TargetID] = true
		}
	}

	victim, haveVictim := game.StrictPlurality(killTargets)
	if haveVictim && !saved[victim] {
		if err := e.eliminate(gs.RoomID, victim, " was eliminated during the night."); err != nil {
			return err
		}
	}

	if ended, err := e.checkWin(gs.RoomID); err != nil || ended {
		return err
	}

	for _, a := range actions {
		if a.Type != models.ActionInspect {
			continue
		}
		var target models.Player
		if err := e.db.First(&target, a.TargetID).Error; err != nil {
			log.Printf("engine: inspect fan-out: target %d not found: %v", a.TargetID, err)
			continue
		}
		verdict := "NO"
		if target.Role != nil && *target.Role == models.RoleMafia {
			verdict = "YES"
		}
		actorID := a.ActorID
		e.systemMessage(gs.RoomID, &actorID, fmt.Sprintf("%s (%s)", verdict, target.UserName), models.MessageInspect)
	}

	// Round number is unchanged on night->day: the day that follows discusses
	// the night that just happened.
	deadline := time.Now().Add(e.dayDuration)
	res := e.db.Model(&models.GameState{}).
		Where("room_id = ? AND phase = ?", gs.RoomID, models.PhaseNight).
		Updates(map[string]interface{}{
			"phase":          models.PhaseDay,
			"phase_end_time": deadline,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Another client advanced the phase first; our side effects stand.
		return nil
	}

	e.phaseMessage(gs.RoomID, models.PhaseDay)
	e.notify(gs.RoomID, "game_state")
	return nil
}

// resolveDay consumes the vote ledger for the round, eliminates the strict
// plurality target if any, clears the round's votes and opens the next night.
func (e *Engine) resolveDay(gs *models.GameState) error {
	var votes []models.Vote
	if err := e.db.Where("room_id = ? AND round_number = ?", gs.RoomID, gs.RoundNumber).
		Find(&votes).Error; err != nil {
		return err
	}

	targets := make([]uint, 0, len(votes))
	for _, v := range votes {
		targets = append(targets, v.TargetID)
	}

	if target, ok := game.StrictPlurality(targets); ok {
		if err := e.eliminate(gs.RoomID, target, " was voted out."); err != nil {
			return err
		}
	} else {
		e.systemMessage(gs.RoomID, nil, "No player received majority votes. No elimination.", models.MessageSystem)
	}

	// Votes are round-scoped; they never carry forward, elimination or not.
	if err := e.db.Where("room_id = ? AND round_number = ?", gs.RoomID, gs.RoundNumber).
		Delete(&models.Vote{}).Error; err != nil {
		return err
	}

	if ended, err := e.checkWin(gs.RoomID); err != nil || ended {
		return err
	}

	deadline := time.Now().Add(e.nightDuration)
	res := e.db.Model(&models.GameState{}).
		Where("room_id = ? AND phase = ?", gs.RoomID, models.PhaseDay).
		Updates(map[string]interface{}{
			"phase":          models.PhaseNight,
			"round_number":   gs.RoundNumber + 1,
			"phase_end_time": deadline,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return nil
	}

	e.phaseMessage(gs.RoomID, models.PhaseNight)
	e.notify(gs.RoomID, "game_state")
	return nil
}

// eliminate marks a player dead and announces it. Marking an already-dead
// player dead again is harmless, which is what makes the duplication window
// between racing resolvers tolerable.
func (e *Engine) eliminate(roomID, playerID uint, suffix string) error {
	if err := e.db.Model(&models.Player{}).Where("id = ?", playerID).
		Update("status", models.PlayerDead).Error; err != nil {
		return err
	}

	var victim models.Player
	name := "A player"
	if err := e.db.First(&victim, playerID).Error; err == nil {
		name = victim.UserName
	}
	e.systemMessage(roomID, nil, name+suffix, models.MessageSystem)
	e.notify(roomID, "players")
	return nil
}

// checkWin reads the roster and ends the game when a faction has won. The
// ended write carries its own phase guard so only one racing client records
// the winner and posts the announcement.
func (e *Engine) checkWin(roomID uint) (bool, error) {
	var mafiaAlive, othersAlive int64
	if err := e.db.Model(&models.Player{}).
		Where("room_id = ? AND role = ? AND status <> ?", roomID, models.RoleMafia, models.PlayerDead).
		Count(&mafiaAlive).Error; err != nil {
		return false, err
	}
	if err := e.db.Model(&models.Player{}).
		Where("room_id = ? AND role <> ? AND status <> ?", roomID, models.RoleMafia, models.PlayerDead).
		Count(&othersAlive).Error; err != nil {
		return false, err
	}

	faction, ended := game.EvaluateWin(int(mafiaAlive), int(othersAlive))
	if !ended {
		return false, nil
	}

	res := e.db.Model(&models.GameState{}).
		Where("room_id = ? AND phase <> ?", roomID, models.PhaseEnded).
		Updates(map[string]interface{}{
			"phase":          models.PhaseEnded,
			"phase_end_time": nil,
			"winner":         string(faction),
		})
	if res.Error != nil {
		return true, res.Error
	}
	if res.RowsAffected > 0 {
		label := "Citizens"
		if faction == game.FactionMafia {
			label = "Mafia"
		}
		e.systemMessage(roomID, nil, fmt.Sprintf("Game Over — %s win!", label), models.MessageSystem)
		e.notify(roomID, "game_state")
	}
	return true, nil
}

func (e *Engine) phaseMessage(roomID uint, phase models.Phase) {
	e.systemMessage(roomID, nil, "phase:"+string(phase), models.MessagePhase)
}

// systemMessage appends to the room's event stream. Failures are logged and
// dropped: announcements are best-effort and the next change-feed refresh
// reconciles clients either way.
func (e *Engine) systemMessage(roomID uint, playerID *uint, content string, category models.MessageCategory) {
	msg := models.Message{
		RoomID:     roomID,
		PlayerID:   playerID,
		PlayerName: "System",
		Content:    content,
		Category:   category,
	}
	if err := e.db.Create(&msg).Error; err != nil {
		log.Printf("engine: failed to write %s message for room %d: %v", category, roomID, err)
		return
	}
	e.notify(roomID, "messages")
}

func (e *Engine) notify(roomID uint, table string) {
	hub.GlobalHub.Broadcast(roomID, hub.Event{Type: table})
}
