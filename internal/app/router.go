// internal/app/router.go
package app

import (
	"crm-service/internal/config"
	authHandler "crm-service/internal/handlers/auth"
	bookingHandler "crm-service/internal/handlers/booking"
	catalogHandler "crm-service/internal/handlers/catalog"
	clientHandler "crm-service/internal/handlers/client"
	dashboardHandler "crm-service/internal/handlers/dashboard"
	followupHandler "crm-service/internal/handlers/followup"
	healthHandler "crm-service/internal/handlers/health"
	jobHandler "crm-service/internal/handlers/job"
	leadHandler "crm-service/internal/handlers/lead"
	messageHandler "crm-service/internal/handlers/message"
	wsHandler "crm-service/internal/handlers/websocket"
	"crm-service/internal/metrics"
	"crm-service/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	AuthHandler      *authHandler.AuthHandler
	ClientHandler    *clientHandler.ClientHandler
	LeadHandler      *leadHandler.LeadHandler
	JobHandler       *jobHandler.JobHandler
	BookingHandler   *bookingHandler.BookingHandler
	MessageHandler   *messageHandler.MessageHandler
	CatalogHandler   *catalogHandler.CatalogHandler
	FollowUpHandler  *followupHandler.FollowUpHandler
	DashboardHandler *dashboardHandler.DashboardHandler
	HealthHandler    *healthHandler.HealthHandler
	WSHandler        *wsHandler.WebSocketHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, logger *zap.Logger, cfg config.AppConfig, h *Handlers) {
	r.Use(
		middleware.RequestID(),
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		metrics.Middleware(),
		middleware.CORSMiddleware(cfg.CORSAllowOrigin),
	)

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")

	// ==================== Health Check ====================
	api.GET("/health", h.HealthHandler.Health)

	// ==================== Public Auth Routes ====================
	api.POST("/register", h.AuthHandler.Register)
	api.POST("/login", h.AuthHandler.Login)
	api.POST("/logout", h.AuthHandler.Logout)

	// ==================== Protected Routes ====================
	protected := api.Group("")
	protected.Use(h.AuthMiddleware.Auth())
	{
		protected.GET("/user", h.AuthHandler.Me)

		// WebSocket
		protected.GET("/ws", h.WSHandler.HandleConnection)
		protected.GET("/ws/stats", h.WSHandler.Stats)

		// Clients
		clients := protected.Group("/clients")
		{
			clients.GET("", h.ClientHandler.ListClients)
			clients.POST("", h.ClientHandler.CreateClient)
			clients.GET("/:id", h.ClientHandler.GetClient)
			clients.PATCH("/:id", h.ClientHandler.UpdateClient)
			clients.DELETE("/:id", h.ClientHandler.DeleteClient)
		}

		// Leads
		leads := protected.Group("/leads")
		{
			leads.GET("", h.LeadHandler.ListLeads)
			leads.POST("", h.LeadHandler.CreateLead)
			leads.GET("/:id", h.LeadHandler.GetLead)
			leads.PATCH("/:id", h.LeadHandler.UpdateLead)
			leads.DELETE("/:id", h.LeadHandler.DeleteLead)
			leads.POST("/:id/convert", h.LeadHandler.ConvertLead)
		}

		// Jobs
		jobs := protected.Group("/jobs")
		{
			jobs.GET("", h.JobHandler.ListJobs)
			jobs.POST("", h.JobHandler.CreateJob)
			jobs.GET("/:id", h.JobHandler.GetJob)
			jobs.PATCH("/:id", h.JobHandler.UpdateJob)
			jobs.DELETE("/:id", h.JobHandler.DeleteJob)
		}

		// Bookings
		bookings := protected.Group("/bookings")
		{
			bookings.GET("", h.BookingHandler.ListBookings)
			bookings.POST("", h.BookingHandler.CreateBooking)
			bookings.GET("/:id", h.BookingHandler.GetBooking)
			bookings.PATCH("/:id", h.BookingHandler.UpdateBooking)
			bookings.DELETE("/:id", h.BookingHandler.DeleteBooking)
		}

		// Messages
		messages := protected.Group("/messages")
		{
			messages.GET("", h.MessageHandler.ListMessages)
			messages.POST("", h.MessageHandler.CreateMessage)
			messages.GET("/:id", h.MessageHandler.GetMessage)
			messages.PATCH("/:id", h.MessageHandler.UpdateMessage)
			messages.PATCH("/:id/read", h.MessageHandler.MarkRead)
			messages.DELETE("/:id", h.MessageHandler.DeleteMessage)
		}
		protected.GET("/conversations", h.MessageHandler.Conversations)

		// Services
		services := protected.Group("/services")
		{
			services.GET("", h.CatalogHandler.ListServices)
			services.POST("", h.CatalogHandler.CreateService)
			services.GET("/:id", h.CatalogHandler.GetService)
			services.PATCH("/:id", h.CatalogHandler.UpdateService)
			services.DELETE("/:id", h.CatalogHandler.DeleteService)
		}

		// Follow-ups
		followUps := protected.Group("/follow-ups")
		{
			followUps.GET("", h.FollowUpHandler.ListFollowUps)
			followUps.POST("", h.FollowUpHandler.CreateFollowUp)
			followUps.GET("/:id", h.FollowUpHandler.GetFollowUp)
			followUps.PATCH("/:id", h.FollowUpHandler.UpdateFollowUp)
			followUps.DELETE("/:id", h.FollowUpHandler.DeleteFollowUp)
		}

		// Dashboard
		protected.GET("/dashboard/stats", h.DashboardHandler.Stats)
		protected.GET("/debug/db-info", h.DashboardHandler.DBInfo)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "Not found"})
	})
}
