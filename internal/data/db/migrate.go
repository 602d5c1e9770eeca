package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/mindwell-backend/internal/domain"
	"github.com/yungbote/mindwell-backend/internal/domain/reflection"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(types.Models()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

// SeedQuestions inserts the reflection question bank; existing texts are left alone.
func SeedQuestions(ctx context.Context, db *gorm.DB) error {
	bank, err := reflection.Bank()
	if err != nil {
		return err
	}
	rows := make([]*types.Question, 0, len(bank))
	for _, text := range bank {
		rows = append(rows, &types.Question{Text: text})
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "text"}}, DoNothing: true}).
		Create(&rows).Error
}

func (s *Service) AutoMigrateAll() error { return AutoMigrateAll(s.db) }
