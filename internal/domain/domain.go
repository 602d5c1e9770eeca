package domain

import (
	"github.com/yungbote/mindwell-backend/internal/domain/auth"
	"github.com/yungbote/mindwell-backend/internal/domain/conversation"
	"github.com/yungbote/mindwell-backend/internal/domain/help"
	"github.com/yungbote/mindwell-backend/internal/domain/mood"
	"github.com/yungbote/mindwell-backend/internal/domain/planner"
	"github.com/yungbote/mindwell-backend/internal/domain/reflection"
	"github.com/yungbote/mindwell-backend/internal/domain/report"
	"github.com/yungbote/mindwell-backend/internal/domain/survey"
	"github.com/yungbote/mindwell-backend/internal/domain/user"
)

const (
	RoleUser  = user.RoleUser
	RoleAdmin = user.RoleAdmin

	SenderUser = conversation.SenderUser
	SenderAI   = conversation.SenderAI
)

type User = user.User

type UserToken = auth.UserToken

type MoodEntry = mood.MoodEntry
type MoodAnalysis = mood.MoodAnalysis

type Conversation = conversation.Conversation

type Survey = survey.Survey

type Report = report.Report

type Task = planner.Task
type CalendarActivity = planner.CalendarActivity

type Question = reflection.Question
type UserResponse = reflection.UserResponse

type HelpAccess = help.HelpAccess

// Models lists every persisted entity, in migration order.
func Models() []any {
	return []any{
		&User{},
		&UserToken{},
		&MoodEntry{},
		&MoodAnalysis{},
		&Conversation{},
		&Survey{},
		&Report{},
		&Task{},
		&CalendarActivity{},
		&Question{},
		&UserResponse{},
		&HelpAccess{},
	}
}
