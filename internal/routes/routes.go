package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barberia-web/internal/audit"
	"github.com/BruksfildServices01/barberia-web/internal/config"
	"github.com/BruksfildServices01/barberia-web/internal/handlers"
	"github.com/BruksfildServices01/barberia-web/internal/infra/remote"
	"github.com/BruksfildServices01/barberia-web/internal/middleware"
)

func RegisterRoutes(
	r *gin.Engine,
	base *remote.Client,
	cfg *config.Config,
	log zerolog.Logger,
) {

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	auditLogger := audit.New(log)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(base, auditDispatcher)
	meHandler := handlers.NewMeHandler(base)
	gridHandler := handlers.NewGridHandler(base, cfg)
	availabilityHandler := handlers.NewAvailabilityHandler(base, cfg, auditDispatcher)
	appointmentHandler := handlers.NewAppointmentHandler(base, cfg, auditDispatcher)
	userHandler := handlers.NewUserHandler(base, auditDispatcher)
	catalogHandler := handlers.NewCatalogHandler(cfg)

	// ======================================================
	// 🩺 OPERACIONAL
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 📋 CATÁLOGO (público)
		// ------------------------------
		api.GET("/services", catalogHandler.Services)
		api.GET("/shop", catalogHandler.Shop)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PUT("/me", meHandler.UpdateMe)

			// ------------------------------
			// GRADE SEMANAL
			// ------------------------------
			secured.GET("/schedule/weekly-grid", gridHandler.Weekly)
			secured.POST("/schedule/availability", availabilityHandler.Publish)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments/my-appointments", appointmentHandler.List)
			secured.DELETE("/appointments/:id", appointmentHandler.Cancel)

			// ------------------------------
			// USUÁRIOS
			// ------------------------------
			secured.GET("/users/barbers", userHandler.Barbers)
			secured.GET("/users", userHandler.List)
			secured.POST("/users", userHandler.Create)
			secured.PATCH("/users/:id", userHandler.Update)
			secured.DELETE("/users/:id", userHandler.Delete)
		}
	}
}
