package meal

import (
	"context"
	"github.com/tanmald/plate-check-mvp/entities"
	"gorm.io/gorm"
	"time"
)

type (
	MealRepository interface {
		GetMealsByUser(ctx context.Context, userID string) ([]*entities.MealLog, error)
		// CreateMealWithProgress stores the meal and rewrites the daily
		// progress row of [dayStart, dayEnd) in one transaction.
		CreateMealWithProgress(ctx context.Context, meal *entities.MealLog, day time.Time, dayStart time.Time, dayEnd time.Time) (*entities.DailyProgress, error)
	}

	mealRepository struct {
		db *gorm.DB
	}

	dayAggregate struct {
		Meals int
		Score int
	}
)

func NewMealRepository(db *gorm.DB) MealRepository {
	return &mealRepository{
		db: db,
	}
}

func (r *mealRepository) GetMealsByUser(ctx context.Context, userID string) ([]*entities.MealLog, error) {
	var meals []*entities.MealLog
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("logged_at DESC").
		Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}

func (r *mealRepository) CreateMealWithProgress(ctx context.Context, meal *entities.MealLog, day time.Time, dayStart time.Time, dayEnd time.Time) (*entities.DailyProgress, error) {
	var progress entities.DailyProgress

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(meal).Error; err != nil {
			return err
		}

		var agg dayAggregate
		if err := tx.Model(&entities.MealLog{}).
			Select("COUNT(*) AS meals, COALESCE(ROUND(AVG(adherence_score)), 0) AS score").
			Where("user_id = ? AND logged_at >= ? AND logged_at < ?", meal.UserID, dayStart, dayEnd).
			Scan(&agg).Error; err != nil {
			return err
		}

		progress = entities.DailyProgress{UserID: meal.UserID, Date: day}
		return tx.
			Where("user_id = ? AND date = ?", meal.UserID, day.Format("2006-01-02")).
			Assign(map[string]interface{}{
				"daily_adherence_score": agg.Score,
				"meals_logged":          agg.Meals,
				"updated_at":            time.Now(),
			}).
			FirstOrCreate(&progress).Error
	})
	if err != nil {
		return nil, err
	}
	return &progress, nil
}
