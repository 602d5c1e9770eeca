package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/mindwell-backend/internal/data/repos"
	types "github.com/yungbote/mindwell-backend/internal/domain"
	apperrors "github.com/yungbote/mindwell-backend/internal/pkg/errors"
	"github.com/yungbote/mindwell-backend/internal/platform/apierr"
	"github.com/yungbote/mindwell-backend/internal/platform/logger"
)

var ErrNoQuestionsLeft = apierr.NotFound("no_questions", errors.New("No more questions for today"))

type ReflectionService interface {
	// RandomQuestion picks a question the caller has not answered today (UTC).
	RandomQuestion(ctx context.Context) (*types.Question, error)
	Answer(ctx context.Context, questionID uuid.UUID, response string, moodEntryID *uuid.UUID) (*types.UserResponse, error)
}

type reflectionService struct {
	db           *gorm.DB
	log          *logger.Logger
	questionRepo repos.QuestionRepo
	responseRepo repos.UserResponseRepo
	moodRepo     repos.MoodEntryRepo
	clock        clock
	pick         func(n int) int
}

func NewReflectionService(
	db *gorm.DB,
	log *logger.Logger,
	questionRepo repos.QuestionRepo,
	responseRepo repos.UserResponseRepo,
	moodRepo repos.MoodEntryRepo,
) ReflectionService {
	return &reflectionService{
		db:           db,
		log:          log.With("service", "ReflectionService"),
		questionRepo: questionRepo,
		responseRepo: responseRepo,
		moodRepo:     moodRepo,
		pick:         rand.IntN,
	}
}

func (rs *reflectionService) RandomQuestion(ctx context.Context) (*types.Question, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	now := rs.clock.now()
	today := now.Truncate(24 * time.Hour)
	answered, err := rs.responseRepo.AnsweredBetween(ctx, nil, uid, today, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("answered questions: %w", err)
	}
	available, err := rs.questionRepo.ListExcluding(ctx, nil, answered)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	if len(available) == 0 {
		return nil, ErrNoQuestionsLeft
	}
	return available[rs.pick(len(available))], nil
}

func (rs *reflectionService) Answer(ctx context.Context, questionID uuid.UUID, response string, moodEntryID *uuid.UUID) (*types.UserResponse, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	response = strings.TrimSpace(response)
	if response == "" {
		return nil, apierr.BadRequest("empty_response", errors.New("response cannot be empty"))
	}
	out := &types.UserResponse{
		UserID:      uid,
		QuestionID:  questionID,
		Response:    response,
		Timestamp:   rs.clock.now(),
		MoodEntryID: moodEntryID,
	}
	err = rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := rs.questionRepo.GetByID(ctx, tx, questionID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apierr.NotFound("question_not_found", errors.New("question not found"))
			}
			return err
		}
		if moodEntryID != nil {
			if _, err := rs.moodRepo.GetForUser(ctx, tx, uid, *moodEntryID); err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return apierr.NotFound("mood_not_found", errors.New("mood entry not found"))
				}
				return err
			}
		}
		_, err := rs.responseRepo.Create(ctx, tx, out)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
