package routes

import (
	"bookline-backend/config"
	"bookline-backend/controllers"
	"bookline-backend/services"
	"bookline-backend/storage"
	"bookline-backend/utils"
	"bookline-backend/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func SetupRouter(store storage.Storage, hub *ws.Hub, ai *services.AIService, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.RequestLogger(logger))

	serviceController := controllers.NewServiceController(store)
	addonController := controllers.NewServiceAddonController(store)
	bookingController := controllers.NewBookingController(store)
	messageController := controllers.NewMessageController(store, hub)
	availabilityController := controllers.NewAvailabilityController(store)
	aiController := controllers.NewAIController(store, ai)
	authController := controllers.NewAuthController(store)

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if hub != nil {
		r.GET("/ws", hub.Handle)
	}

	auth := r.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", authController.Me)
	}

	api := r.Group("/api")
	{
		// Service routes
		svc := api.Group("/services")
		{
			svc.GET("", serviceController.List)
			svc.GET("/:id", serviceController.Get)
			svc.POST("", serviceController.Create)
			svc.PATCH("/:id", serviceController.Update)
			svc.PATCH("/:id/position", serviceController.UpdatePosition)
			svc.POST("/order", serviceController.Reorder)
			svc.DELETE("/:id", serviceController.Delete)
		}

		// Add-on routes
		addons := api.Group("/service-addons")
		{
			addons.GET("", addonController.List)
			addons.GET("/:id", addonController.Get)
			addons.POST("", addonController.Create)
			addons.PATCH("/:id", addonController.Update)
			addons.PATCH("/:id/position", addonController.UpdatePosition)
			addons.POST("/order", addonController.Reorder)
			addons.DELETE("/:id", addonController.Delete)
		}

		// Booking routes
		bookings := api.Group("/bookings")
		{
			bookings.GET("", bookingController.List)
			bookings.GET("/:id", bookingController.Get)
			bookings.GET("/phone/:phone", bookingController.ListByPhone)
			bookings.POST("", bookingController.Create)
			bookings.PATCH("/:id/status", bookingController.UpdateStatus)
		}

		// Message routes
		messages := api.Group("/messages")
		{
			messages.GET("", messageController.List)
			messages.GET("/sender/:id", messageController.ListBySender)
			messages.GET("/receiver/:id", messageController.ListByReceiver)
			messages.POST("", messageController.Create)
			messages.PATCH("/:id/status", messageController.UpdateStatus)
		}

		// Availability routes
		availability := api.Group("/availability")
		{
			availability.GET("/provider/:id", availabilityController.ListByProvider)
			availability.POST("", availabilityController.Create)
			availability.PATCH("/:id", availabilityController.Update)
		}

		// AI routes
		aiRoutes := api.Group("/ai")
		{
			personas := aiRoutes.Group("/personas")
			{
				personas.GET("", aiController.ListPersonas)
				personas.GET("/:id", aiController.GetPersona)
				personas.POST("", aiController.CreatePersona)
				personas.PATCH("/:id", aiController.UpdatePersona)
			}

			settings := aiRoutes.Group("/settings")
			{
				settings.GET("", aiController.ListSettings)
				settings.GET("/:key", aiController.GetSetting)
				settings.POST("", aiController.CreateSetting)
				settings.PATCH("/:key", aiController.UpdateSetting)
				settings.PUT("/:key", aiController.UpsertSetting)
			}

			conversations := aiRoutes.Group("/conversations")
			{
				conversations.GET("", aiController.ListConversations)
				conversations.GET("/:id", aiController.GetConversation)
				conversations.GET("/persona/:id", aiController.ListConversationsByPersona)
				conversations.POST("", aiController.CreateConversation)
				conversations.POST("/:id/messages", aiController.Chat)
			}
		}
	}

	return r
}
