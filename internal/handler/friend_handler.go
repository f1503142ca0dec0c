package handler

import (
	"net/http"
	"strconv"
	"strings"

	"mafianight/backend/internal/database"
	"mafianight/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

type SendFriendRequestInput struct {
	RoomID       uint   `json:"room_id" binding:"required"`
	ToPlayerName string `json:"to_player_name" binding:"required"`
}

type FriendRequestResponse struct {
	ID             uint                       `json:"id"`
	FromPlayerName string                     `json:"from_player_name"`
	ToPlayerName   string                     `json:"to_player_name"`
	RoomID         uint                       `json:"room_id"`
	Status         models.FriendRequestStatus `json:"status"`
}

// endregion

func newFriendRequestResponse(fr models.FriendRequest) FriendRequestResponse {
	return FriendRequestResponse{
		ID:             fr.ID,
		FromPlayerName: fr.FromPlayerName,
		ToPlayerName:   fr.ToPlayerName,
		RoomID:         fr.RoomID,
		Status:         fr.Status,
	}
}

// SendFriendRequest godoc
// @Summary      Send a friend request to a player met in a room
// @Description  The sender must be a player in the room. If the target player has an account, the request is linked to it.
// @Tags         friends
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body SendFriendRequestInput true "Request Info"
// @Success      201 {object} FriendRequestResponse
// @Failure      400 {object} ErrorResponse "Cannot befriend yourself"
// @Failure      404 {object} ErrorResponse "Player not found in room"
// @Failure      409 {object} ErrorResponse "Request already pending"
// @Router       /friends/requests [post]
func SendFriendRequest(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input SendFriendRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var me models.Player
	if err := database.DB.Where("room_id = ? AND user_id = ?", input.RoomID, userID).First(&me).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "You are not a player in this room"})
		return
	}

	var target models.Player
	if err := database.DB.Where("room_id = ? AND LOWER(user_name) = LOWER(?)", input.RoomID, input.ToPlayerName).
		First(&target).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Player not found in room"})
		return
	}
	if target.ID == me.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot befriend yourself"})
		return
	}

	var existing models.FriendRequest
	err := database.DB.Where(
		"from_user_id = ? AND room_id = ? AND LOWER(to_player_name) = LOWER(?) AND status = ?",
		userID, input.RoomID, input.ToPlayerName, models.FriendRequestPending,
	).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Request already pending"})
		return
	}

	request := models.FriendRequest{
		FromUserID:     userID,
		ToUserID:       target.UserID,
		FromPlayerName: me.UserName,
		ToPlayerName:   target.UserName,
		RoomID:         input.RoomID,
		Status:         models.FriendRequestPending,
	}
	if err := database.DB.Create(&request).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send friend request"})
		return
	}

	c.JSON(http.StatusCreated, newFriendRequestResponse(request))
}

// GetFriendRequests godoc
// @Summary      List own friend requests
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        direction query string false "incoming, outgoing or both" default(both)
// @Success      200 {array} FriendRequestResponse
// @Router       /friends/requests [get]
func GetFriendRequests(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	query := database.DB.Model(&models.FriendRequest{})
	switch strings.ToLower(c.DefaultQuery("direction", "both")) {
	case "incoming":
		query = query.Where("to_user_id = ?", userID)
	case "outgoing":
		query = query.Where("from_user_id = ?", userID)
	default:
		query = query.Where("from_user_id = ? OR to_user_id = ?", userID, userID)
	}

	var requests []models.FriendRequest
	if err := query.Order("created_at DESC").Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load friend requests"})
		return
	}

	responses := make([]FriendRequestResponse, 0, len(requests))
	for _, fr := range requests {
		responses = append(responses, newFriendRequestResponse(fr))
	}
	c.JSON(http.StatusOK, responses)
}

// AcceptFriendRequest godoc
// @Summary      Accept a pending friend request
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Request ID"
// @Success      200 {object} FriendRequestResponse
// @Failure      404 {object} ErrorResponse "No pending request addressed to you"
// @Router       /friends/requests/{id}/accept [post]
func AcceptFriendRequest(c *gin.Context) {
	updateFriendRequest(c, models.FriendRequestAccepted)
}

// DeclineFriendRequest godoc
// @Summary      Decline a pending friend request
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Request ID"
// @Success      200 {object} FriendRequestResponse
// @Failure      404 {object} ErrorResponse "No pending request addressed to you"
// @Router       /friends/requests/{id}/decline [post]
func DeclineFriendRequest(c *gin.Context) {
	updateFriendRequest(c, models.FriendRequestRejected)
}

func updateFriendRequest(c *gin.Context, status models.FriendRequestStatus) {
	userID := c.MustGet("userID").(uint)
	requestID, _ := strconv.Atoi(c.Param("id"))

	var request models.FriendRequest
	err := database.DB.Where("id = ? AND to_user_id = ? AND status = ?",
		requestID, userID, models.FriendRequestPending).First(&request).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No pending request addressed to you"})
		return
	}

	if err := database.DB.Model(&request).Update("status", status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update friend request"})
		return
	}

	request.Status = status
	c.JSON(http.StatusOK, newFriendRequestResponse(request))
}
