package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/mindwell-backend/internal/http/handlers"
	httpMW "github.com/yungbote/mindwell-backend/internal/http/middleware"
	"github.com/yungbote/mindwell-backend/internal/observability"
	"github.com/yungbote/mindwell-backend/internal/platform/logger"
	"github.com/yungbote/mindwell-backend/internal/platform/ratelimit"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	CORSOrigins    []string
	Metrics        *observability.Metrics
	TracingEnabled bool
	ChatLimiter    ratelimit.Limiter

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler     *httpH.HealthHandler
	AuthHandler       *httpH.AuthHandler
	UserHandler       *httpH.UserHandler
	MoodHandler       *httpH.MoodHandler
	ChatHandler       *httpH.ChatHandler
	ReflectionHandler *httpH.ReflectionHandler
	PlannerHandler    *httpH.PlannerHandler
	HelpHandler       *httpH.HelpHandler
	SurveyHandler     *httpH.SurveyHandler
	ReportHandler     *httpH.ReportHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingEnabled {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
		}
	}

	protected := api.Group("/")
	if cfg.AuthMiddleware != nil {
		protected.Use(cfg.AuthMiddleware.RequireAuth())
	}
	{
		if cfg.AuthHandler != nil {
			protected.POST("/logout", cfg.AuthHandler.Logout)
		}
		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
		}

		// Mood
		if cfg.MoodHandler != nil {
			protected.POST("/mood", cfg.MoodHandler.Create)
			protected.GET("/moods", cfg.MoodHandler.List)
			protected.GET("/mood/:id", cfg.MoodHandler.Get)
			protected.GET("/mood_analysis", cfg.MoodHandler.Analysis)
		}

		// Chat
		if cfg.ChatHandler != nil {
			protected.POST("/chat", httpMW.RateLimit(cfg.Log, cfg.ChatLimiter, "chat"), cfg.ChatHandler.Send)
			protected.GET("/chat/history", cfg.ChatHandler.History)
		}

		// Reflection questions
		if cfg.ReflectionHandler != nil {
			protected.GET("/random_question", cfg.ReflectionHandler.RandomQuestion)
			protected.POST("/answer_question", cfg.ReflectionHandler.Answer)
		}

		// Planner
		if cfg.PlannerHandler != nil {
			protected.GET("/tasks", cfg.PlannerHandler.ListTasks)
			protected.POST("/tasks", cfg.PlannerHandler.CreateTask)
			protected.PATCH("/tasks/:id", cfg.PlannerHandler.UpdateTask)
			protected.DELETE("/tasks/:id", cfg.PlannerHandler.DeleteTask)
			protected.GET("/activities", cfg.PlannerHandler.ListActivities)
			protected.POST("/activities", cfg.PlannerHandler.LogActivity)
		}

		// Help
		if cfg.HelpHandler != nil {
			protected.GET("/help", cfg.HelpHandler.Visit)
			protected.GET("/help/stats", cfg.HelpHandler.Stats)
		}

		// Surveys
		if cfg.SurveyHandler != nil {
			protected.GET("/survey/options", cfg.SurveyHandler.Options)
			protected.GET("/survey/stats", cfg.SurveyHandler.Stats)
			protected.POST("/survey", cfg.SurveyHandler.Submit)
			protected.GET("/survey/:date", cfg.SurveyHandler.Get)
		}

		// Reports
		if cfg.ReportHandler != nil {
			protected.POST("/reports", cfg.ReportHandler.Generate)
			protected.GET("/reports", cfg.ReportHandler.List)
			protected.GET("/report/download/:filename", cfg.ReportHandler.Download)
		}
	}

	admin := protected.Group("/admin")
	if cfg.AuthMiddleware != nil {
		admin.Use(cfg.AuthMiddleware.RequireAdmin())
	}
	{
		if cfg.UserHandler != nil {
			admin.GET("/users", cfg.UserHandler.ListWithReports)
		}
		if cfg.ReportHandler != nil {
			admin.GET("/report/download/:filename", cfg.ReportHandler.Download)
		}
	}

	return r
}
