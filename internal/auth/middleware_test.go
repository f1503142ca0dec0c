package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"mafianight/backend/internal/config"
	"mafianight/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}
}

func protectedRouter(middleware gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.GET("/whoami", middleware, func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			c.JSON(http.StatusOK, gin.H{"user_id": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return router
}

func request(t *testing.T, router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	router := protectedRouter(AuthMiddleware())

	token, err := jwt.GenerateToken(42)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if w := request(t, router, "Bearer "+token); w.Code != http.StatusOK {
		t.Errorf("valid token: status %d, want 200", w.Code)
	}
	if w := request(t, router, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("missing token: status %d, want 401", w.Code)
	}
	if w := request(t, router, "Bearer not-a-token"); w.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: status %d, want 401", w.Code)
	}
	if w := request(t, router, token); w.Code != http.StatusUnauthorized {
		t.Errorf("missing Bearer prefix: status %d, want 401", w.Code)
	}
}

func TestOptionalAuthMiddleware(t *testing.T) {
	router := protectedRouter(OptionalAuthMiddleware())

	token, err := jwt.GenerateToken(7)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if w := request(t, router, "Bearer "+token); w.Code != http.StatusOK {
		t.Errorf("valid token: status %d, want 200", w.Code)
	}
	// Anonymous and bad tokens both pass through without an identity.
	if w := request(t, router, ""); w.Code != http.StatusOK {
		t.Errorf("anonymous: status %d, want 200", w.Code)
	}
	if w := request(t, router, "Bearer not-a-token"); w.Code != http.StatusOK {
		t.Errorf("garbage token: status %d, want 200", w.Code)
	}
}
