package routes

import (
	"Tankard/controllers"
	"Tankard/middleware"
	"Tankard/services/coordination"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, svc *coordination.Service) {
	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes group
	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	api.POST("/signup", controllers.SignUp(svc))

	api.POST("/login", controllers.Login(svc))

	api.POST("/publican/signup", controllers.SignUpPublican(svc))

	api.POST("/publican/login", controllers.LoginPublican(svc))

	api.GET("/allusers", controllers.GetAllGamers(svc))

	api.GET("/users/:gamer_id", controllers.GetGamerPublicInfo(svc))

	api.GET("/pubs/:pub_id", controllers.GetPublicanInfo(svc))

	api.GET("/pubs/:pub_id/events", controllers.ListPubEvents(svc))

	api.GET("/events/:event_id/availability", controllers.GetEventAvailability(svc))

	api.GET("/games", controllers.ListGames(svc))

	api.GET("/games/:game_id", controllers.GetGameDetails(svc))

	authentication := api.Group("/auth")
	authentication.Use(middleware.AuthRequired)
	{
		authentication.GET("/me", controllers.GetMe(svc))

		authentication.PATCH("/me", controllers.UpdateGamer(svc))

		authentication.GET("/friends", controllers.ListFriends(svc))

		authentication.POST("/addFriend", controllers.AddFriend(svc))

		authentication.DELETE("/deleteFriend/:friend_id", controllers.RemoveFriend(svc))

		authentication.POST("/createEvent", controllers.CreateEvent(svc))

		authentication.POST("/createGame", controllers.CreateGame(svc))

		authentication.POST("/joinGame/:game_id", controllers.JoinGame(svc))

		authentication.POST("/leaveGame/:game_id", controllers.LeaveGame(svc))

		authentication.DELETE("/cancelGame/:game_id", controllers.CancelGame(svc))

		authentication.POST("/pubs/:pub_id/reserveTable", controllers.ReserveTable(svc))

		authentication.POST("/pubs/:pub_id/cancelTable", controllers.CancelTable(svc))
	}
}
