package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskflow-api/internal/constants"
	apierrors "github.com/yukikurage/taskflow-api/internal/errors"
	"github.com/yukikurage/taskflow-api/internal/middleware"
	"github.com/yukikurage/taskflow-api/internal/services"
)

// NewRouter mounts every route. store backs the session cookie accepted as a
// fallback credential.
func NewRouter(svc *services.Services, store sessions.Store, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.ErrorContext(c.Request.Context(), "panic recovered", "panic", recovered, "path", c.Request.URL.Path)
		apierrors.InternalError(c, "")
	}))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	authHandler := NewAuthHandler(svc.Auth)
	userHandler := NewUserHandler(svc.Users)
	projectHandler := NewProjectHandler(svc.Projects)
	taskHandler := NewTaskHandler(svc.Tasks, svc.Comments)
	timeEntryHandler := NewTimeEntryHandler(svc.TimeEntries)
	analyticsHandler := NewAnalyticsHandler(svc.Analytics)
	settingsHandler := NewSettingsHandler(svc.Settings)
	activityHandler := NewActivityHandler(svc.Activity)

	requireAuth := middleware.RequireAuth(svc.Tokens)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "TaskFlow API is running",
		})
	})

	api := r.Group("/api")
	{
		// Auth routes (public except me)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", requireAuth, authHandler.GetCurrentUser)
		}

		protected := api.Group("")
		protected.Use(requireAuth)

		users := protected.Group("/users")
		{
			users.GET("", userHandler.ListUsers)
			users.PUT("/:id", userHandler.UpdateUser)
		}

		projects := protected.Group("/projects")
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.GET("/:id", projectHandler.GetProject)
			projects.PUT("/:id", projectHandler.UpdateProject)
			projects.DELETE("/:id", projectHandler.DeleteProject)
			projects.GET("/:id/members", projectHandler.ListMembers)
			projects.POST("/:id/members", projectHandler.AddMember)
		}

		tasks := protected.Group("/tasks")
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.POST("/generate", taskHandler.GenerateTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.GET("/:id/comments", taskHandler.ListComments)
			tasks.POST("/:id/comments", taskHandler.CreateComment)
		}

		entries := protected.Group("/time-entries")
		{
			entries.GET("", timeEntryHandler.ListTimeEntries)
			entries.POST("", timeEntryHandler.CreateTimeEntry)
			entries.GET("/active", timeEntryHandler.GetActiveTimeEntry)
			entries.PUT("/:id", timeEntryHandler.UpdateTimeEntry)
		}

		analytics := protected.Group("/analytics")
		{
			analytics.GET("/metrics", analyticsHandler.GetMetrics)
			analytics.GET("/insights", analyticsHandler.GetInsights)
		}

		protected.GET("/settings", settingsHandler.GetSettings)
		protected.PUT("/settings", settingsHandler.UpdateSettings)
		protected.GET("/activity", activityHandler.ListActivity)
	}

	return r
}
