package handler

import (
	"regexp"
	"strings"

	"mafianight/backend/internal/engine"

	"github.com/gin-gonic/gin"
)

// gameEngine is the shared phase controller, injected from main (or a test).
var gameEngine *engine.Engine

// Init wires the handler package to its session engine.
func Init(e *engine.Engine) {
	gameEngine = e
}

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// playerNamePattern allows ASCII letters and spaces, minimum 2 characters.
var playerNamePattern = regexp.MustCompile(`^[A-Za-z\s]{2,}$`)

func isValidPlayerName(name string) bool {
	return playerNamePattern.MatchString(strings.TrimSpace(name))
}

// currentUserID returns the authenticated account id, if any. Gameplay
// endpoints work without one; it only links players to accounts.
func currentUserID(c *gin.Context) *uint {
	v, exists := c.Get("userID")
	if !exists {
		return nil
	}
	id, ok := v.(uint)
	if !ok {
		return nil
	}
	return &id
}
