package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/synergysphere/synergysphere/internal/handlers"
	"github.com/synergysphere/synergysphere/internal/metrics"
	"github.com/synergysphere/synergysphere/internal/middleware"
)

type Options struct {
	AllowedOrigins []string
	RateLimit      string
	Gatherer       prometheus.Gatherer
	Metrics        *metrics.Metrics
	Logger         zerolog.Logger
}

// NewRouter wires every route. requireAuth guards everything except health,
// metrics, register and login.
func NewRouter(h *handlers.Handler, requireAuth gin.HandlerFunc, opts Options) (*gin.Engine, error) {
	r := gin.New()

	rateLimit, err := middleware.NewIPRateLimiter(opts.RateLimit)
	if err != nil {
		return nil, err
	}

	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(opts.Logger))
	if opts.Metrics != nil {
		r.Use(middleware.Prometheus(opts.Metrics))
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     opts.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if opts.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api", rateLimit)
	{
		api.GET("/health", h.HealthCheck)
		api.GET("/ws", requireAuth, h.WebSocket)

		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Register)
			auth.POST("/login", h.Login)
			auth.POST("/logout", h.Logout)
			auth.GET("/me", requireAuth, h.Me)
			auth.PATCH("/me", requireAuth, h.UpdateMe)
		}

		projects := api.Group("/projects", requireAuth)
		{
			projects.POST("", h.CreateProject)
			projects.GET("", h.ListProjects)
			projects.GET("/:project_id", h.GetProject)
			projects.PUT("/:project_id", h.UpdateProject)
			projects.PATCH("/:project_id", h.UpdateProject)
			projects.DELETE("/:project_id", h.DeleteProject)

			// Team endpoints
			projects.GET("/:project_id/team", h.ListTeamMembers)
			projects.POST("/:project_id/team", h.AddTeamMember)
			projects.DELETE("/:project_id/team/:member_id", h.RemoveTeamMember)

			// Task endpoints
			projects.POST("/:project_id/tasks", h.CreateTask)
			projects.GET("/:project_id/tasks", h.ListTasks)
			projects.GET("/:project_id/tasks/:task_id", h.GetTask)
			projects.PUT("/:project_id/tasks/:task_id", h.UpdateTask)
			projects.DELETE("/:project_id/tasks/:task_id", h.DeleteTask)

			// Discussion endpoints
			projects.POST("/:project_id/messages", h.PostMessage)
			projects.GET("/:project_id/messages", h.ListMessages)
			projects.GET("/:project_id/messages/:message_id", h.GetThread)
			projects.DELETE("/:project_id/messages/:message_id", h.DeleteMessage)
		}

		api.GET("/tasks/mine", requireAuth, h.MyTasks)

		notifications := api.Group("/notifications", requireAuth)
		{
			notifications.GET("", h.ListNotifications)
			notifications.PATCH("/read-all", h.MarkAllNotificationsRead)
			notifications.PATCH("/:notification_id/read", h.MarkNotificationRead)
			notifications.DELETE("/:notification_id", h.DeleteNotification)
		}
	}

	return r, nil
}
