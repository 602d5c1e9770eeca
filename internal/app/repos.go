package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/mindwell-backend/internal/data/repos"
	"github.com/yungbote/mindwell-backend/internal/platform/logger"
)

type Repos struct {
	User             repos.UserRepo
	UserToken        repos.UserTokenRepo
	MoodEntry        repos.MoodEntryRepo
	MoodAnalysis     repos.MoodAnalysisRepo
	Conversation     repos.ConversationRepo
	Survey           repos.SurveyRepo
	Report           repos.ReportRepo
	Task             repos.TaskRepo
	CalendarActivity repos.CalendarActivityRepo
	Question         repos.QuestionRepo
	UserResponse     repos.UserResponseRepo
	HelpAccess       repos.HelpAccessRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:             repos.NewUserRepo(db, log),
		UserToken:        repos.NewUserTokenRepo(db, log),
		MoodEntry:        repos.NewMoodEntryRepo(db, log),
		MoodAnalysis:     repos.NewMoodAnalysisRepo(db, log),
		Conversation:     repos.NewConversationRepo(db, log),
		Survey:           repos.NewSurveyRepo(db, log),
		Report:           repos.NewReportRepo(db, log),
		Task:             repos.NewTaskRepo(db, log),
		CalendarActivity: repos.NewCalendarActivityRepo(db, log),
		Question:         repos.NewQuestionRepo(db, log),
		UserResponse:     repos.NewUserResponseRepo(db, log),
		HelpAccess:       repos.NewHelpAccessRepo(db, log),
	}
}
