package app

import (
	httpH "github.com/yungbote/mindwell-backend/internal/http/handlers"
	"github.com/yungbote/mindwell-backend/internal/platform/logger"
)

type Handlers struct {
	Health     *httpH.HealthHandler
	Auth       *httpH.AuthHandler
	User       *httpH.UserHandler
	Mood       *httpH.MoodHandler
	Chat       *httpH.ChatHandler
	Survey     *httpH.SurveyHandler
	Planner    *httpH.PlannerHandler
	Reflection *httpH.ReflectionHandler
	Help       *httpH.HelpHandler
	Report     *httpH.ReportHandler
}

func wireHandlers(log *logger.Logger, db httpH.Pinger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     httpH.NewHealthHandler(db),
		Auth:       httpH.NewAuthHandler(log, s.Auth),
		User:       httpH.NewUserHandler(log, s.User),
		Mood:       httpH.NewMoodHandler(log, s.Mood),
		Chat:       httpH.NewChatHandler(log, s.Chat),
		Survey:     httpH.NewSurveyHandler(log, s.Survey),
		Planner:    httpH.NewPlannerHandler(log, s.Planner),
		Reflection: httpH.NewReflectionHandler(log, s.Reflection),
		Help:       httpH.NewHelpHandler(log, s.Help),
		Report:     httpH.NewReportHandler(log, s.Report),
	}
}
