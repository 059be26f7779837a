package api

import (
	"fleetdash/api/auth"
	"fleetdash/api/dashboard"
	"fleetdash/api/middleware"
	"fleetdash/api/servers"
	"fleetdash/api/users"
	"fleetdash/internal/config"
	"fleetdash/internal/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NewRouter builds the HTTP engine. Middleware runs CORS first, then the
// per-group session and admin guards, then the handler.
func NewRouter(db *gorm.DB, store *session.Store, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.Origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))

	authHandler := auth.NewHandler(db, store)
	usersHandler := users.NewHandler(db)
	serversHandler := servers.NewHandler(db)
	dashboardHandler := dashboard.NewHandler(db)

	sessionRequired := middleware.SessionRequired(store)
	adminRequired := middleware.AdminRequired(db)

	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authHandler.Logout)
			authGroup.GET("/me", sessionRequired, authHandler.Me)
			authGroup.PUT("/profile", sessionRequired, authHandler.UpdateProfile)
		}

		protected := api.Group("", sessionRequired)
		{
			serversGroup := protected.Group("/servers")
			{
				serversGroup.GET("", serversHandler.List)
				serversGroup.POST("", serversHandler.Create)
				serversGroup.GET("/:id", serversHandler.Get)
				serversGroup.PUT("/:id", serversHandler.Update)
				serversGroup.DELETE("/:id", serversHandler.Delete)
			}

			protected.GET("/dashboard/stats", dashboardHandler.Stats)

			usersGroup := protected.Group("/users", adminRequired)
			{
				usersGroup.GET("", usersHandler.List)
				usersGroup.POST("", usersHandler.Create)
				usersGroup.GET("/:id", usersHandler.Get)
				usersGroup.PUT("/:id", usersHandler.Update)
				usersGroup.DELETE("/:id", usersHandler.Delete)
			}
		}
	}

	return r
}
