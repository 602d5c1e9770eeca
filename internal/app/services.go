package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/mindwell-backend/internal/platform/logger"
	"github.com/yungbote/mindwell-backend/internal/reporting/aggregate"
	"github.com/yungbote/mindwell-backend/internal/reporting/render"
	"github.com/yungbote/mindwell-backend/internal/services"
)

type Services struct {
	Auth       services.AuthService
	User       services.UserService
	Mood       services.MoodService
	Chat       services.ChatService
	Survey     services.SurveyService
	Planner    services.PlannerService
	Reflection services.ReflectionService
	Help       services.HelpService
	Report     services.ReportService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, c Clients) (Services, error) {
	log.Info("Wiring services...")

	renderer, err := render.New(log)
	if err != nil {
		return Services{}, fmt.Errorf("init report renderer: %w", err)
	}
	summaries := aggregate.New(log, r.MoodEntry, r.Conversation, r.Survey)

	mood := services.NewMoodService(db, log, r.MoodEntry, r.MoodAnalysis, r.Conversation)
	return Services{
		Auth:       services.NewAuthService(db, log, r.User, r.UserToken, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		User:       services.NewUserService(log, r.User, r.Report),
		Mood:       mood,
		Chat:       services.NewChatService(db, log, r.Conversation, mood, c.Gemini, c.Sentiment),
		Survey:     services.NewSurveyService(db, log, r.Survey),
		Planner:    services.NewPlannerService(db, log, r.Task, r.CalendarActivity),
		Reflection: services.NewReflectionService(db, log, r.Question, r.UserResponse, r.MoodEntry),
		Help:       services.NewHelpService(db, log, r.HelpAccess, mood),
		Report: services.NewReportService(db, log, r.User, r.Report,
			summaries, renderer, c.ReportStore, cfg.ReportWindowDays),
	}, nil
}
