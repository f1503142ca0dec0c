package main

import (
	"fmt"
	"log"
	"net/http"

	"mafianight/backend/internal/auth"
	"mafianight/backend/internal/config"
	"mafianight/backend/internal/database"
	"mafianight/backend/internal/engine"
	"mafianight/backend/internal/handler"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "mafianight/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           Mafia Night API
// @version         1.0
// @description     Session orchestration API for the Mafia Night party game.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	handler.Init(engine.New(
		database.DB,
		config.AppConfig.NightDuration(),
		config.AppConfig.DayDuration(),
	))

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", handler.RegisterUser)
			authRoutes.POST("/login", handler.LoginUser)
		}

		// User routes (protected)
		userRoutes := apiV1.Group("/users")
		userRoutes.Use(auth.AuthMiddleware())
		{
			userRoutes.GET("/me", handler.GetMe)
		}

		// Room and gameplay routes. Accounts are optional here; a guest with
		// just a display name can play.
		roomRoutes := apiV1.Group("/rooms")
		roomRoutes.Use(auth.OptionalAuthMiddleware())
		{
			roomRoutes.POST("", handler.CreateRoom)
			roomRoutes.GET("", handler.SearchRooms)
			roomRoutes.GET("/code/:code", handler.GetRoomByCode)
			roomRoutes.GET("/:id", handler.GetRoomByID)
			roomRoutes.POST("/:id/join", handler.JoinRoom)
			roomRoutes.POST("/:id/leave", handler.LeaveRoom)
			roomRoutes.GET("/:id/players", handler.GetPlayers)

			roomRoutes.POST("/:id/start", handler.StartGame)
			roomRoutes.GET("/:id/state", handler.GetGameState)
			roomRoutes.POST("/:id/resolve", handler.ResolvePhase)
			roomRoutes.POST("/:id/actions", handler.SubmitAction)
			roomRoutes.POST("/:id/votes", handler.SubmitVote)

			roomRoutes.POST("/:id/messages", handler.SendMessage)
			roomRoutes.GET("/:id/messages", handler.GetMessages)
			roomRoutes.GET("/:id/stream", handler.StreamRoom)
		}

		// Friend routes (protected)
		friendRoutes := apiV1.Group("/friends")
		friendRoutes.Use(auth.AuthMiddleware())
		{
			friendRoutes.POST("/requests", handler.SendFriendRequest)
			friendRoutes.GET("/requests", handler.GetFriendRequests)
			friendRoutes.POST("/requests/:id/accept", handler.AcceptFriendRequest)
			friendRoutes.POST("/requests/:id/decline", handler.DeclineFriendRequest)
		}
	}

	fmt.Println("Server is running on :8080")
	fmt.Println("Swagger UI is available at http://localhost:8080/swagger/index.html")
	log.Fatal(router.Run(":8080"))
}
