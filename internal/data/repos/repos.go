package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/mindwell-backend/internal/data/repos/auth"
	"github.com/yungbote/mindwell-backend/internal/data/repos/conversation"
	"github.com/yungbote/mindwell-backend/internal/data/repos/help"
	"github.com/yungbote/mindwell-backend/internal/data/repos/mood"
	"github.com/yungbote/mindwell-backend/internal/data/repos/planner"
	"github.com/yungbote/mindwell-backend/internal/data/repos/reflection"
	"github.com/yungbote/mindwell-backend/internal/data/repos/report"
	"github.com/yungbote/mindwell-backend/internal/data/repos/survey"
	"github.com/yungbote/mindwell-backend/internal/data/repos/user"
	"github.com/yungbote/mindwell-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo

type UserTokenRepo = auth.UserTokenRepo

type MoodEntryRepo = mood.MoodEntryRepo
type MoodAnalysisRepo = mood.MoodAnalysisRepo

type ConversationRepo = conversation.ConversationRepo

type SurveyRepo = survey.SurveyRepo

type ReportRepo = report.ReportRepo

type TaskRepo = planner.TaskRepo
type CalendarActivityRepo = planner.CalendarActivityRepo
type DateRange = planner.DateRange

type QuestionRepo = reflection.QuestionRepo
type UserResponseRepo = reflection.UserResponseRepo

type HelpAccessRepo = help.HelpAccessRepo

func NewUserRepo(db *gorm.DB, log *logger.Logger) UserRepo { return user.NewUserRepo(db, log) }

func NewUserTokenRepo(db *gorm.DB, log *logger.Logger) UserTokenRepo {
	return auth.NewUserTokenRepo(db, log)
}

func NewMoodEntryRepo(db *gorm.DB, log *logger.Logger) MoodEntryRepo {
	return mood.NewMoodEntryRepo(db, log)
}

func NewMoodAnalysisRepo(db *gorm.DB, log *logger.Logger) MoodAnalysisRepo {
	return mood.NewMoodAnalysisRepo(db, log)
}

func NewConversationRepo(db *gorm.DB, log *logger.Logger) ConversationRepo {
	return conversation.NewConversationRepo(db, log)
}

func NewSurveyRepo(db *gorm.DB, log *logger.Logger) SurveyRepo { return survey.NewSurveyRepo(db, log) }

func NewReportRepo(db *gorm.DB, log *logger.Logger) ReportRepo { return report.NewReportRepo(db, log) }

func NewTaskRepo(db *gorm.DB, log *logger.Logger) TaskRepo { return planner.NewTaskRepo(db, log) }

func NewCalendarActivityRepo(db *gorm.DB, log *logger.Logger) CalendarActivityRepo {
	return planner.NewCalendarActivityRepo(db, log)
}

func NewQuestionRepo(db *gorm.DB, log *logger.Logger) QuestionRepo {
	return reflection.NewQuestionRepo(db, log)
}

func NewUserResponseRepo(db *gorm.DB, log *logger.Logger) UserResponseRepo {
	return reflection.NewUserResponseRepo(db, log)
}

func NewHelpAccessRepo(db *gorm.DB, log *logger.Logger) HelpAccessRepo {
	return help.NewHelpAccessRepo(db, log)
}
