package handler

import (
	"net/http"
	"strconv"
	"strings"

	"mafianight/backend/internal/database"
	"mafianight/backend/internal/hub"
	"mafianight/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// region --- DTOs ---

type CreateRoomInput struct {
	Name       string `json:"name" binding:"required"`
	PlayerName string `json:"player_name" binding:"required"`
	MaxPlayers int    `json:"max_players" binding:"required,min=10,max=20"`
}

type JoinRoomInput struct {
	PlayerName string `json:"player_name" binding:"required"`
}

type LeaveRoomInput struct {
	PlayerID uint `json:"player_id" binding:"required"`
}

type RoomResponse struct {
	ID             uint              `json:"id"`
	Code           string            `json:"code"`
	Name           string            `json:"name"`
	CreatorName    string            `json:"creator_name"`
	MaxPlayers     int               `json:"max_players"`
	CurrentPlayers int               `json:"current_players"`
	Status         models.RoomStatus `json:"status"`
}

type JoinRoomResponse struct {
	RoomID     uint `json:"room_id"`
	PlayerID   uint `json:"player_id"`
	SeatNumber int  `json:"seat_number"`
}

// PlayerResponse is the roster view; Role is redacted per viewer.
type PlayerResponse struct {
	ID         uint                `json:"id"`
	UserName   string              `json:"user_name"`
	SeatNumber int                 `json:"seat_number"`
	Status     models.PlayerStatus `json:"status"`
	Role       *models.Role        `json:"role,omitempty"`
}

func newRoomResponse(room models.Room) RoomResponse {
	return RoomResponse{
		ID:             room.ID,
		Code:           room.Code,
		Name:           room.Name,
		CreatorName:    room.CreatorName,
		MaxPlayers:     room.MaxPlayers,
		CurrentPlayers: room.CurrentPlayers,
		Status:         room.Status,
	}
}

// endregion

// newJoinCode derives a short uppercase join code. Hex from a fresh UUID is
// collision-checked by the unique index on rooms.code.
func newJoinCode() string {
	return strings.ToUpper(uuid.NewString()[:6])
}

// CreateRoom godoc
// @Summary      Create a new game room
// @Description  Creates a room with its lobby game state and seats the creator at seat 0.
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        input body CreateRoomInput true "Room Info"
// @Success      201  {object}  RoomResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /rooms [post]
func CreateRoom(c *gin.Context) {
	var input CreateRoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !isValidPlayerName(input.PlayerName) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Player name must be at least 2 letters (A-Z and spaces only)"})
		return
	}

	room := models.Room{
		Code:           newJoinCode(),
		Name:           input.Name,
		CreatorName:    strings.TrimSpace(input.PlayerName),
		MaxPlayers:     input.MaxPlayers,
		CurrentPlayers: 1,
		Status:         models.RoomWaiting,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&room).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.GameState{
			RoomID:      room.ID,
			Phase:       models.PhaseLobby,
			RoundNumber: 0,
		}).Error; err != nil {
			return err
		}
		return tx.Create(&models.Player{
			RoomID:     room.ID,
			UserName:   room.CreatorName,
			SeatNumber: 0,
			Status:     models.PlayerAlive,
			UserID:     currentUserID(c),
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create room"})
		return
	}

	c.JSON(http.StatusCreated, newRoomResponse(room))
}

// SearchRooms godoc
// @Summary      List joinable rooms
// @Description  Gets a paginated list of waiting rooms that still have a free seat.
// @Tags         rooms
// @Produce      json
// @Param        page  query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(10)
// @Success      200 {object} PaginatedResponse[RoomResponse]
// @Router       /rooms [get]
func SearchRooms(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	query := database.DB.Model(&models.Room{}).
		Where("status = ? AND current_players < max_players", models.RoomWaiting).
		Order("created_at DESC")

	result, err := Paginate[models.Room](query, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rooms"})
		return
	}

	rooms := make([]RoomResponse, 0, len(result.Data))
	for _, room := range result.Data {
		rooms = append(rooms, newRoomResponse(room))
	}
	c.JSON(http.StatusOK, PaginatedResponse[RoomResponse]{Data: rooms, Meta: result.Meta})
}

// GetRoomByID godoc
// @Summary      Get a room by ID
// @Tags         rooms
// @Produce      json
// @Param        id path int true "Room ID"
// @Success      200 {object} RoomResponse
// @Failure      404 {object} ErrorResponse "Room not found"
// @Router       /rooms/{id} [get]
func GetRoomByID(c *gin.Context) {
	roomID, _ := strconv.Atoi(c.Param("id"))

	var room models.Room
	if err := database.DB.First(&room, roomID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	c.JSON(http.StatusOK, newRoomResponse(room))
}

// GetRoomByCode godoc
// @Summary      Look up a room by join code
// @Tags         rooms
// @Produce      json
// @Param        code path string true "Join code"
// @Success      200 {object} RoomResponse
// @Failure      404 {object} ErrorResponse "Room not found"
// @Router       /rooms/code/{code} [get]
func GetRoomByCode(c *gin.Context) {
	code := strings.ToUpper(strings.TrimSpace(c.Param("code")))

	var room models.Room
	if err := database.DB.Where("code = ?", code).First(&room).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	c.JSON(http.StatusOK, newRoomResponse(room))
}

// JoinRoom godoc
// @Summary      Join a room
// @Description  Takes the next seat in a waiting room. Display names are unique per room (case-insensitive).
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        id    path int           true "Room ID"
// @Param        input body JoinRoomInput true "Player Info"
// @Success      200 {object} JoinRoomResponse
// @Failure      404 {object} ErrorResponse "Room not found"
// @Failure      409 {object} ErrorResponse "Room full, game started, or name taken"
// @Router       /rooms/{id}/join [post]
func JoinRoom(c *gin.Context) {
	roomID, _ := strconv.Atoi(c.Param("id"))

	var input JoinRoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	name := strings.TrimSpace(input.PlayerName)
	if !isValidPlayerName(name) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Player name must be at least 2 letters (A-Z and spaces only)"})
		return
	}

	var room models.Room
	if err := database.DB.First(&room, roomID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}
	if room.Status != models.RoomWaiting {
		c.JSON(http.StatusConflict, gin.H{"error": "Game already in progress"})
		return
	}

	var taken int64
	database.DB.Model(&models.Player{}).
		Where("room_id = ? AND LOWER(user_name) = LOWER(?)", room.ID, name).
		Count(&taken)
	if taken > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "That name is already taken in this room"})
		return
	}

	var player models.Player
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// Occupancy increment is conditional on a free seat so two racing
		// joins cannot push the room past capacity.
		res := tx.Model(&models.Room{}).
			Where("id = ? AND current_players < max_players", room.ID).
			Update("current_players", gorm.Expr("current_players + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrInvalidData
		}

		// Seats are historical: leavers free occupancy but not their seat
		// number, so the next seat is max+1, not the head count.
		var nextSeat int
		if err := tx.Model(&models.Player{}).Where("room_id = ?", room.ID).
			Select("COALESCE(MAX(seat_number), -1) + 1").Scan(&nextSeat).Error; err != nil {
			return err
		}

		player = models.Player{
			RoomID:     room.ID,
			UserName:   name,
			SeatNumber: nextSeat,
			Status:     models.PlayerAlive,
			UserID:     currentUserID(c),
		}
		return tx.Create(&player).Error
	})
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Room is full"})
		return
	}

	hub.GlobalHub.Broadcast(room.ID, hub.Event{Type: "players"})
	hub.GlobalHub.Broadcast(room.ID, hub.Event{Type: "room"})

	c.JSON(http.StatusOK, JoinRoomResponse{
		RoomID:     room.ID,
		PlayerID:   player.ID,
		SeatNumber: player.SeatNumber,
	})
}

// LeaveRoom godoc
// @Summary      Leave a room
// @Description  Voluntary leave, allowed while the room is still in the lobby.
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        id    path int            true "Room ID"
// @Param        input body LeaveRoomInput true "Player Info"
// @Success      200 {object} map[string]string "{"message": "Left room"}"
// @Failure      404 {object} ErrorResponse "Player not found"
// @Failure      409 {object} ErrorResponse "Game already in progress"
// @Router       /rooms/{id}/leave [post]
func LeaveRoom(c *gin.Context) {
	roomID, _ := strconv.Atoi(c.Param("id"))

	var input LeaveRoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var player models.Player
	if err := database.DB.Where("id = ? AND room_id = ?", input.PlayerID, roomID).First(&player).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Player not found in this room"})
		return
	}

	var gs models.GameState
	if err := database.DB.Where("room_id = ?", roomID).First(&gs).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game state not found"})
		return
	}
	if gs.Phase != models.PhaseLobby {
		c.JSON(http.StatusConflict, gin.H{"error": "Cannot leave once the game has started"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&player).Error; err != nil {
			return err
		}
		return tx.Model(&models.Room{}).Where("id = ?", roomID).
			Update("current_players", gorm.Expr("current_players - 1")).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to leave room"})
		return
	}

	hub.GlobalHub.Broadcast(uint(roomID), hub.Event{Type: "players"})
	hub.GlobalHub.Broadcast(uint(roomID), hub.Event{Type: "room"})

	c.JSON(http.StatusOK, gin.H{"message": "Left room"})
}

// GetPlayers godoc
// @Summary      Get the room roster
// @Description  Players in seat order. Roles are hidden except the viewer's own; all roles are revealed once the game has ended.
// @Tags         rooms
// @Produce      json
// @Param        id         path  int true  "Room ID"
// @Param        player_id  query int false "Viewer's player ID"
// @Success      200 {array} PlayerResponse
// @Failure      404 {object} ErrorResponse "Room not found"
// @Router       /rooms/{id}/players [get]
func GetPlayers(c *gin.Context) {
	roomID, _ := strconv.Atoi(c.Param("id"))
	viewerID, _ := strconv.Atoi(c.DefaultQuery("player_id", "0"))

	var gs models.GameState
	if err := database.DB.Where("room_id = ?", roomID).First(&gs).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	var players []models.Player
	if err := database.DB.Where("room_id = ?", roomID).Order("seat_number").Find(&players).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load players"})
		return
	}

	revealAll := gs.Phase == models.PhaseEnded
	response := make([]PlayerResponse, 0, len(players))
	for _, p := range players {
		pr := PlayerResponse{
			ID:         p.ID,
			UserName:   p.UserName,
			SeatNumber: p.SeatNumber,
			Status:     p.Status,
		}
		if revealAll || p.ID == uint(viewerID) {
			pr.Role = p.Role
		}
		response = append(response, pr)
	}

	c.JSON(http.StatusOK, response)
}
