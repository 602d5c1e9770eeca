package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/mindwell-backend/internal/data/repos"
	types "github.com/yungbote/mindwell-backend/internal/domain"
	"github.com/yungbote/mindwell-backend/internal/platform/apierr"
	"github.com/yungbote/mindwell-backend/internal/platform/gemini"
	"github.com/yungbote/mindwell-backend/internal/platform/logger"
)

const (
	chatContextTurns = 5
	chatHistoryTurns = 50
	MaxChatMessage   = 2000
)

const chatSystemPrompt = `You are a supportive mental health chatbot. Your role is to:
1. Respond with empathy and understanding
2. Offer constructive suggestions when they fit
3. Encourage positive thinking and healthy coping strategies
4. Recognize when to suggest professional help
5. Keep a supportive, non-judgmental tone
You are not a replacement for professional mental health care. Always encourage seeking professional help for serious concerns.`

// Scorer rates the emotional polarity of a message in [-1, 1].
type Scorer interface {
	Polarity(text string) float64
}

type ChatReply struct {
	Message        string  `json:"message"`
	SentimentScore float64 `json:"sentiment_score"`
}

type ChatService interface {
	Send(ctx context.Context, message string) (*ChatReply, error)
	// History returns the newest 50 turns in chronological order.
	History(ctx context.Context) ([]*types.Conversation, error)
}

type chatService struct {
	db          *gorm.DB
	log         *logger.Logger
	convRepo    repos.ConversationRepo
	moodService MoodService
	llm         gemini.Client
	scorer      Scorer
	clock       clock
}

func NewChatService(
	db *gorm.DB,
	log *logger.Logger,
	convRepo repos.ConversationRepo,
	moodService MoodService,
	llm gemini.Client,
	scorer Scorer,
) ChatService {
	return &chatService{
		db:          db,
		log:         log.With("service", "ChatService"),
		convRepo:    convRepo,
		moodService: moodService,
		llm:         llm,
		scorer:      scorer,
	}
}

func (cs *chatService) Send(ctx context.Context, message string) (*ChatReply, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apierr.BadRequest("empty_message", errors.New("message cannot be empty"))
	}
	if len([]rune(message)) > MaxChatMessage {
		return nil, apierr.BadRequest("message_too_long", fmt.Errorf("message longer than %d characters", MaxChatMessage))
	}

	sentiment := cs.scorer.Polarity(message)

	recent, err := cs.convRepo.Recent(ctx, nil, uid, chatContextTurns)
	if err != nil {
		return nil, fmt.Errorf("load chat context: %w", err)
	}
	history := make([]gemini.Turn, 0, len(recent))
	for _, turn := range recent {
		history = append(history, gemini.Turn{Sender: turn.Sender, Message: turn.Message})
	}

	reply, err := cs.llm.GenerateReply(ctx, gemini.Prompt{
		System:  chatSystemPrompt,
		History: history,
		Message: message,
	})
	if err != nil {
		cs.log.Error("chat model request failed", "user_id", uid, "error", err)
		return nil, apierr.New(http.StatusBadGateway, "chat_unavailable", errors.New("the assistant is unavailable, please try again later"))
	}

	now := cs.clock.now()
	userTurn := &types.Conversation{
		UserID:         uid,
		Message:        message,
		Sender:         types.SenderUser,
		SentimentScore: &sentiment,
		Timestamp:      now,
	}
	// The reply is ordered strictly after the message it answers.
	aiTurn := &types.Conversation{
		UserID:    uid,
		Message:   reply,
		Sender:    types.SenderAI,
		Timestamp: now.Add(time.Microsecond),
	}
	err = cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := cs.convRepo.Create(ctx, tx, []*types.Conversation{userTurn, aiTurn}); err != nil {
			return fmt.Errorf("save conversation: %w", err)
		}
		if _, err := cs.moodService.RefreshAnalysis(ctx, tx, uid); err != nil {
			return fmt.Errorf("refresh mood analysis: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ChatReply{Message: reply, SentimentScore: sentiment}, nil
}

func (cs *chatService) History(ctx context.Context) ([]*types.Conversation, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	turns, err := cs.convRepo.Recent(ctx, nil, uid, chatHistoryTurns)
	if err != nil {
		return nil, fmt.Errorf("load chat history: %w", err)
	}
	if turns == nil {
		turns = []*types.Conversation{}
	}
	return turns, nil
}
