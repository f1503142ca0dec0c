package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"mafianight/backend/internal/database"
	"mafianight/backend/internal/engine"
	"mafianight/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// region --- DTOs ---

type StartGameInput struct {
	PlayerName string `json:"player_name" binding:"required"`
}

type ActionInput struct {
	ActorID  uint `json:"actor_id" binding:"required"`
	TargetID uint `json:"target_id" binding:"required"`
}

type VoteInput struct {
	VoterID  uint `json:"voter_id" binding:"required"`
	TargetID uint `json:"target_id" binding:"required"`
}

type GameStateResponse struct {
	RoomID       uint         `json:"room_id"`
	Phase        models.Phase `json:"phase"`
	RoundNumber  int          `json:"round_number"`
	PhaseEndTime *time.Time   `json:"phase_end_time,omitempty"`
	Winner       *string      `json:"winner,omitempty"`
}

// endregion

// nightActionFor maps a role to its night action; citizens have none.
func nightActionFor(role models.Role) (models.ActionType, bool) {
	switch role {
	case models.RoleMafia:
		return models.ActionKill, true
	case models.RoleDoctor:
		return models.ActionSave, true
	case models.RolePolice:
		return models.ActionInspect, true
	}
	return "", false
}

// StartGame godoc
// @Summary      Start the game (creator only)
// @Description  Assigns roles and opens the first night. Exactly one concurrent start succeeds.
// @Tags         game
// @Accept       json
// @Produce      json
// @Param        id    path int            true "Room ID"
// @Param        input body StartGameInput true "Caller Info"
// @Success      200 {object} map[string]string "{"message": "Night phase has begun"}"
// @Failure      400 {object} ErrorResponse "Not enough players"
// @Failure      403 {object} ErrorResponse "Only the room creator can start the game"
// @Failure      409 {object} ErrorResponse "Game already started"
// @Router       /rooms/{id}/start [post]
func StartGame(c *gin.Context) {
	roomID, _ := strconv.Atoi(c.Param("id"))

	var input StartGameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := gameEngine.StartGame(uint(roomID), input.PlayerName)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Night phase has begun"})
	case errors.Is(err, engine.ErrNotCreator):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, engine.ErrNotEnoughPlayers):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, engine.ErrAlreadyStarted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start game"})
	}
}

// GetGameState godoc
// @Summary      Get the current game state
// @Tags         game
// @Produce      json
// @Param        id path int true "Room ID"
// @Success      200 {object} GameStateResponse
// @Failure      404 {object} ErrorResponse "Room not found"
// @Router       /rooms/{id}/state [get]
func GetGameState(c *gin.Context) {
	roomID, _ := strconv.Atoi(c.Param("id"))

	var gs models.GameState
	if err := database.DB.Where("room_id = ?", roomID).First(&gs).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	c.JSON(http.StatusOK, GameStateResponse{
		RoomID:       gs.RoomID,
		Phase:        gs.Phase,
		RoundNumber:  gs.RoundNumber,
		PhaseEndTime: gs.PhaseEndTime,
		Winner:       gs.Winner,
	})
}

// ResolvePhase godoc
// @Summary      Attempt to resolve the current phase
// @Description  Called by any client whose countdown reached zero. Losing the resolution race is not an error.
// @Tags         game
// @Produce      json
// @Param        id path int true "Room ID"
// @Success      200 {object} map[string]string "{"message": "Resolution attempted"}"
// @Failure      404 {object} ErrorResponse "Room not found"
// @Router       /rooms/{id}/resolve [post]
func ResolvePhase(c *gin.Context) {
	roomID, _ := strconv.Atoi(c.Param("id"))

	err := gameEngine.Resolve(uint(roomID))
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Resolution failed"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Resolution attempted"})
	}
}

// SubmitAction godoc
// @Summary      Submit a night action
// @Description  One secret action per living empowered player per round; the action type follows from the actor's role.
// @Tags         game
// @Accept       json
// @Produce      json
// @Param        id    path int         true "Room ID"
// @Param        input body ActionInput true "Action"
// @Success      201 {object} map[string]string "{"message": "Action submitted"}"
// @Failure      403 {object} ErrorResponse "Wrong phase, role, or status"
// @Failure      409 {object} ErrorResponse "Action already submitted this round"
// @Router       /rooms/{id}/actions [post]
func SubmitAction(c *gin.Context) {
	roomID, _ := strconv.Atoi(c.Param("id"))

	var input ActionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var gs models.GameState
	if err := database.DB.Where("room_id = ?", roomID).First(&gs).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}
	if gs.Phase != models.PhaseNight {
		c.JSON(http.StatusForbidden, gin.H{"error": "Night actions are only allowed during the night phase"})
		return
	}

	var actor models.Player
	if err := database.DB.Where("id = ? AND room_id = ?", input.ActorID, roomID).First(&actor).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Actor not found in this room"})
		return
	}
	if actor.Status == models.PlayerDead {
		c.JSON(http.StatusForbidden, gin.H{"error": "Eliminated players cannot act"})
		return
	}
	if actor.Role == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Roles have not been assigned yet"})
		return
	}
	actionType, ok := nightActionFor(*actor.Role)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "Your role has no night action"})
		return
	}

	var target models.Player
	if err := database.DB.Where("id = ? AND room_id = ?", input.TargetID, roomID).First(&target).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Target not found in this room"})
		return
	}
	if target.Status == models.PlayerDead {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot target an eliminated player"})
		return
	}

	action := models.Action{
		RoomID:      uint(roomID),
		RoundNumber: gs.RoundNumber,
		ActorID:     actor.ID,
		Type:        actionType,
		TargetID:    target.ID,
	}
	if err := database.DB.Create(&action).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Action already submitted for this round"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record action"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Action submitted"})
}

// SubmitVote godoc
// @Summary      Submit or replace a day vote
// @Description  One current vote per living player per round. A re-vote deletes the prior vote and inserts the new one.
// @Tags         game
// @Accept       json
// @Produce      json
// @Param        id    path int       true "Room ID"
// @Param        input body VoteInput true "Vote"
// @Success      200 {object} map[string]string "{"message": "Vote submitted"}"
// @Failure      403 {object} ErrorResponse "Wrong phase or voter eliminated"
// @Router       /rooms/{id}/votes [post]
func SubmitVote(c *gin.Context) {
	roomID, _ := strconv.Atoi(c.Param("id"))

	var input VoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var gs models.GameState
	if err := database.DB.Where("room_id = ?", roomID).First(&gs).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}
	if gs.Phase != models.PhaseDay {
		c.JSON(http.StatusForbidden, gin.H{"error": "Voting is only allowed during the day phase"})
		return
	}

	var voter models.Player
	if err := database.DB.Where("id = ? AND room_id = ?", input.VoterID, roomID).First(&voter).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Voter not found in this room"})
		return
	}
	if voter.Status == models.PlayerDead {
		c.JSON(http.StatusForbidden, gin.H{"error": "Eliminated players cannot vote"})
		return
	}

	var target models.Player
	if err := database.DB.Where("id = ? AND room_id = ?", input.TargetID, roomID).First(&target).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Target not found in this room"})
		return
	}
	if target.Status == models.PlayerDead {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot vote for an eliminated player"})
		return
	}

	// Re-vote is delete-then-insert, not an upsert.
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ? AND round_number = ? AND voter_id = ?",
			roomID, gs.RoundNumber, voter.ID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		return tx.Create(&models.Vote{
			RoomID:      uint(roomID),
			RoundNumber: gs.RoundNumber,
			VoterID:     voter.ID,
			TargetID:    target.ID,
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record vote"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vote submitted"})
}
