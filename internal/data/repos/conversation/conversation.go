package conversation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/mindwell-backend/internal/domain"
	"github.com/yungbote/mindwell-backend/internal/platform/logger"
)

type ConversationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, turns []*types.Conversation) ([]*types.Conversation, error)
	// Recent returns the newest limit turns in chronological order.
	Recent(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Conversation, error)
	// SentimentsSince returns non-null sentiment scores of user turns at or after since.
	SentimentsSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]float64, error)
	// RecentUserSentiments returns non-null scores among the newest limit user turns.
	RecentUserSentiments(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]float64, error)
}

type conversationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewConversationRepo(db *gorm.DB, baseLog *logger.Logger) ConversationRepo {
	return &conversationRepo{db: db, log: baseLog.With("repo", "ConversationRepo")}
}

func (r *conversationRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *conversationRepo) Create(ctx context.Context, tx *gorm.DB, turns []*types.Conversation) ([]*types.Conversation, error) {
	if len(turns) == 0 {
		return []*types.Conversation{}, nil
	}
	if err := r.conn(tx).WithContext(ctx).Create(&turns).Error; err != nil {
		return nil, err
	}
	return turns, nil
}

func (r *conversationRepo) Recent(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Conversation, error) {
	var out []*types.Conversation
	q := r.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (r *conversationRepo) SentimentsSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]float64, error) {
	var scores []float64
	err := r.conn(tx).WithContext(ctx).
		Model(&types.Conversation{}).
		Where("user_id = ? AND sender = ? AND sentiment_score IS NOT NULL AND timestamp >= ?", userID, types.SenderUser, since.UTC()).
		Order("timestamp ASC").
		Pluck("sentiment_score", &scores).Error
	return scores, err
}

func (r *conversationRepo) RecentUserSentiments(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]float64, error) {
	var turns []*types.Conversation
	err := r.conn(tx).WithContext(ctx).
		Where("user_id = ? AND sender = ?", userID, types.SenderUser).
		Order("timestamp DESC").
		Limit(limit).
		Find(&turns).Error
	if err != nil {
		return nil, err
	}
	scores := make([]float64, 0, len(turns))
	for _, t := range turns {
		if t.SentimentScore != nil {
			scores = append(scores, *t.SentimentScore)
		}
	}
	return scores, nil
}
