package routes

import (
	"CivicQuiz/controllers"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, rooms *controllers.RoomController) {
	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	modes := api.Group("/modes")
	{
		modes.GET("", controllers.ListModes)
		modes.GET("/:mode_id", controllers.GetMode)
	}

	room := api.Group("/rooms/:room_id")
	{
		room.GET("/state", rooms.GetRoomState)
		room.GET("/leaderboard", rooms.GetRoomLeaderboard)
	}
}
