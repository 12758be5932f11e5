package meal

import (
	"context"
	"encoding/json"
	"github.com/google/uuid"
	"github.com/tanmald/plate-check-mvp/domain"
	"github.com/tanmald/plate-check-mvp/entities"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"time"
)

const TimeLayout = "3:04 PM"

type (
	MealService interface {
		GetMeals(ctx context.Context, userID string) ([]domain.Meal, error)
		SaveMeal(ctx context.Context, userID string, req domain.SaveMealRequest) (*domain.SavedMeal, error)
	}

	mealService struct {
		mealRepository MealRepository
		log            *zap.Logger
		loc            *time.Location
		now            func() time.Time
	}
)

func NewMealService(mealRepository MealRepository, log *zap.Logger, loc *time.Location) MealService {
	if loc == nil {
		loc = time.Local
	}
	return &mealService{
		mealRepository: mealRepository,
		log:            log,
		loc:            loc,
		now:            time.Now,
	}
}

// GetMeals lists every meal of the user, newest first.
func (s *mealService) GetMeals(ctx context.Context, userID string) ([]domain.Meal, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrParseUUID
	}

	rows, err := s.mealRepository.GetMealsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	meals := make([]domain.Meal, 0, len(rows))
	for _, row := range rows {
		meals = append(meals, ToMeal(row, s.loc))
	}
	return meals, nil
}

func (s *mealService) SaveMeal(ctx context.Context, userID string, req domain.SaveMealRequest) (*domain.SavedMeal, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	if req.Analysis == nil {
		return nil, domain.ErrMealAnalysisMissing
	}
	if !domain.IsMealType(req.MealType) {
		return nil, domain.ErrInvalidMealType
	}

	analysis, err := json.Marshal(req.Analysis)
	if err != nil {
		return nil, err
	}

	now := s.now().In(s.loc)
	score := req.Analysis.Score
	row := &entities.MealLog{
		ID:             uuid.New(),
		UserID:         userUUID,
		MealType:       req.MealType,
		MealName:       mealName(req),
		LoggedAt:       now,
		AdherenceScore: &score,
		PhotoURL:       optional(req.PhotoURL),
		DetectedFoods:  req.Analysis.FoodNames(),
		AIFeedback:     optional(req.Analysis.Feedback),
		Analysis:       datatypes.JSON(analysis),
		CreatedAt:      now,
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	progress, err := s.mealRepository.CreateMealWithProgress(ctx, row, day, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		s.log.Error("failed to save meal", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	s.log.Info("meal saved",
		zap.String("meal_id", row.ID.String()),
		zap.String("meal_type", row.MealType),
		zap.Int("score", score),
		zap.Intp("daily_score", progress.DailyAdherenceScore),
	)
	return &domain.SavedMeal{ID: row.ID.String(), MealType: row.MealType, Score: score}, nil
}

// ToMeal converts a stored meal into its display shape.
func ToMeal(row *entities.MealLog, loc *time.Location) domain.Meal {
	m := domain.Meal{
		ID:    row.ID.String(),
		Type:  row.MealType,
		Name:  domain.DefaultMealName,
		Time:  row.LoggedAt.In(loc).Format(TimeLayout),
		Foods: []string{},
	}
	if row.MealName != nil && *row.MealName != "" {
		m.Name = *row.MealName
	}
	if row.AdherenceScore != nil {
		m.Score = *row.AdherenceScore
	}
	if row.PhotoURL != nil {
		m.ImageURL = *row.PhotoURL
	}
	if row.AIFeedback != nil {
		m.Feedback = *row.AIFeedback
	}
	if len(row.DetectedFoods) > 0 {
		m.Foods = append(m.Foods, row.DetectedFoods...)
	}
	return m
}

func mealName(req domain.SaveMealRequest) *string {
	if req.MealName != "" {
		return optional(req.MealName)
	}
	return optional(req.Analysis.MealName)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
