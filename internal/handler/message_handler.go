package handler

import (
	"io"
	"net/http"
	"strconv"

	"mafianight/backend/internal/database"
	"mafianight/backend/internal/game"
	"mafianight/backend/internal/hub"
	"mafianight/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

type SendMessageInput struct {
	PlayerID uint   `json:"player_id" binding:"required"`
	Content  string `json:"content" binding:"required,max=500"`
}

type MessageResponse struct {
	ID         uint                   `json:"id"`
	PlayerName string                 `json:"player_name,omitempty"`
	Content    string                 `json:"content"`
	Category   models.MessageCategory `json:"category"`
	CreatedAt  string                 `json:"created_at"`
}

// endregion

func newMessageResponse(m models.Message) MessageResponse {
	return MessageResponse{
		ID:         m.ID,
		PlayerName: m.PlayerName,
		Content:    m.Content,
		Category:   m.Category,
		CreatedAt:  m.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// viewerFor builds the visibility identity for a player row.
func viewerFor(p models.Player) game.Viewer {
	v := game.Viewer{PlayerID: p.ID, Status: p.Status}
	if p.Role != nil {
		v.Role = *p.Role
	}
	return v
}

// SendMessage godoc
// @Summary      Post a chat message
// @Description  During the day the message lands in the global channel; at night only mafia may talk, on the role channel.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        id    path int              true "Room ID"
// @Param        input body SendMessageInput true "Message"
// @Success      201 {object} MessageResponse
// @Failure      403 {object} ErrorResponse "Sender is dead or the phase forbids this channel"
// @Router       /rooms/{id}/messages [post]
func SendMessage(c *gin.Context) {
	roomID, _ := strconv.Atoi(c.Param("id"))

	var input SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var gs models.GameState
	if err := database.DB.Where("room_id = ?", roomID).First(&gs).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	var sender models.Player
	if err := database.DB.Where("id = ? AND room_id = ?", input.PlayerID, roomID).First(&sender).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Player not found in this room"})
		return
	}

	category := models.MessageGlobal
	if gs.Phase == models.PhaseNight {
		category = models.MessageRole
	}

	viewer := viewerFor(sender)
	if !game.CanSend(viewer, category, gs.Phase) {
		if sender.Status == models.PlayerDead {
			c.JSON(http.StatusForbidden, gin.H{"error": "Eliminated players cannot send messages"})
		} else {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the mafia can talk during the night"})
		}
		return
	}

	message := models.Message{
		RoomID:     uint(roomID),
		PlayerID:   &sender.ID,
		PlayerName: sender.UserName,
		Content:    input.Content,
		Category:   category,
	}
	if err := database.DB.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	hub.GlobalHub.Broadcast(uint(roomID), hub.Event{Type: "messages"})
	c.JSON(http.StatusCreated, newMessageResponse(message))
}

// GetMessages godoc
// @Summary      Get the message feed filtered for a viewer
// @Description  Returns the last messages the given player is allowed to see under the current phase.
// @Tags         messages
// @Produce      json
// @Param        id        path  int true  "Room ID"
// @Param        player_id query int false "Viewing player ID"
// @Success      200 {array} MessageResponse
// @Failure      404 {object} ErrorResponse "Room not found"
// @Router       /rooms/{id}/messages [get]
func GetMessages(c *gin.Context) {
	roomID, _ := strconv.Atoi(c.Param("id"))

	var gs models.GameState
	if err := database.DB.Where("room_id = ?", roomID).First(&gs).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	// An unknown or missing player_id yields the public view: phase and
	// system entries plus daytime global chat.
	var viewer game.Viewer
	if playerID, err := strconv.Atoi(c.Query("player_id")); err == nil {
		var p models.Player
		if err := database.DB.Where("id = ? AND room_id = ?", playerID, roomID).First(&p).Error; err == nil {
			viewer = viewerFor(p)
		}
	}

	var messages []models.Message
	if err := database.DB.Where("room_id = ?", roomID).
		Order("created_at ASC").Limit(100).Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load messages"})
		return
	}

	visible := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		if game.CanView(viewer, m, gs.Phase) {
			visible = append(visible, newMessageResponse(m))
		}
	}
	c.JSON(http.StatusOK, visible)
}

// StreamRoom godoc
// @Summary      Subscribe to a room's change feed (SSE)
// @Description  Emits change notifications; clients re-fetch the affected resource through the filtered endpoints.
// @Tags         messages
// @Produce      text/event-stream
// @Param        id path int true "Room ID"
// @Router       /rooms/{id}/stream [get]
func StreamRoom(c *gin.Context) {
	roomID, _ := strconv.Atoi(c.Param("id"))

	client := make(hub.Client, 16)
	hub.GlobalHub.Subscribe(uint(roomID), client)
	defer hub.GlobalHub.Unsubscribe(uint(roomID), client)

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent("change", string(event))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
