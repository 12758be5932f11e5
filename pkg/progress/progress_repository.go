package progress

import (
	"context"
	"github.com/tanmald/plate-check-mvp/entities"
	"gorm.io/gorm"
)

type (
	ProgressRepository interface {
		GetProgressByDate(ctx context.Context, userID string, date string) (*entities.DailyProgress, error)
		// GetOnPlanDays returns up to limit rows scoring at least threshold,
		// newest first.
		GetOnPlanDays(ctx context.Context, userID string, threshold int, limit int) ([]*entities.DailyProgress, error)
		// GetProgressBetween returns the rows of [from, to], oldest first.
		GetProgressBetween(ctx context.Context, userID string, from string, to string) ([]*entities.DailyProgress, error)
	}

	progressRepository struct {
		db *gorm.DB
	}
)

func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{
		db: db,
	}
}

func (r *progressRepository) GetProgressByDate(ctx context.Context, userID string, date string) (*entities.DailyProgress, error) {
	var progress entities.DailyProgress
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *progressRepository) GetOnPlanDays(ctx context.Context, userID string, threshold int, limit int) ([]*entities.DailyProgress, error) {
	var days []*entities.DailyProgress
	if err := r.db.WithContext(ctx).
		Select("date", "daily_adherence_score").
		Where("user_id = ? AND daily_adherence_score >= ?", userID, threshold).
		Order("date DESC").
		Limit(limit).
		Find(&days).Error; err != nil {
		return nil, err
	}
	return days, nil
}

func (r *progressRepository) GetProgressBetween(ctx context.Context, userID string, from string, to string) ([]*entities.DailyProgress, error) {
	var days []*entities.DailyProgress
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC").
		Find(&days).Error; err != nil {
		return nil, err
	}
	return days, nil
}
