package progress

import (
	"context"
	"errors"
	"github.com/google/uuid"
	"github.com/tanmald/plate-check-mvp/domain"
	"github.com/tanmald/plate-check-mvp/entities"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"time"
)

type (
	ProgressService interface {
		GetDailyProgress(ctx context.Context, userID string, date string) (*domain.DailyStats, error)
		GetWeeklyProgress(ctx context.Context, userID string) ([]domain.WeeklyDataPoint, error)
	}

	progressService struct {
		progressRepository ProgressRepository
		log                *zap.Logger
		loc                *time.Location
		now                func() time.Time
	}
)

func NewProgressService(progressRepository ProgressRepository, log *zap.Logger, loc *time.Location) ProgressService {
	if loc == nil {
		loc = time.Local
	}
	return &progressService{
		progressRepository: progressRepository,
		log:                log,
		loc:                loc,
		now:                time.Now,
	}
}

func (s *progressService) today() time.Time {
	n := s.now().In(s.loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

// GetDailyProgress reads the stored record of date. A day without a record
// is all zeros; streak and weekly average are only computed for stored days
// and are always relative to today.
func (s *progressService) GetDailyProgress(ctx context.Context, userID string, date string) (*domain.DailyStats, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrParseUUID
	}
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return nil, domain.ErrInvalidDate
	}

	row, err := s.progressRepository.GetProgressByDate(ctx, userID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &domain.DailyStats{TotalMeals: domain.ExpectedMealsPerDay}, nil
		}
		return nil, err
	}

	streak, err := s.streak(ctx, userID)
	if err != nil {
		s.log.Warn("streak unavailable", zap.String("user_id", userID), zap.Error(err))
	}
	average, err := s.weeklyAverage(ctx, userID)
	if err != nil {
		s.log.Warn("weekly average unavailable", zap.String("user_id", userID), zap.Error(err))
	}

	return &domain.DailyStats{
		DailyScore:    valueOr(row.DailyAdherenceScore),
		Streak:        streak,
		WeeklyAverage: average,
		MealsLogged:   valueOr(row.MealsLogged),
		TotalMeals:    domain.ExpectedMealsPerDay,
	}, nil
}

func (s *progressService) GetWeeklyProgress(ctx context.Context, userID string) ([]domain.WeeklyDataPoint, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrParseUUID
	}

	today := s.today()
	rows, err := s.progressRepository.GetProgressBetween(ctx, userID,
		today.AddDate(0, 0, -(domain.WeekLength-1)).Format(domain.DateLayout),
		today.Format(domain.DateLayout))
	if err != nil {
		return nil, err
	}
	return BuildWeeklySeries(toDayScores(rows), today), nil
}

func (s *progressService) streak(ctx context.Context, userID string) (int, error) {
	rows, err := s.progressRepository.GetOnPlanDays(ctx, userID, domain.OnPlanThreshold, domain.StreakLookback)
	if err != nil {
		return 0, err
	}
	dates := make([]string, 0, len(rows))
	for _, r := range rows {
		dates = append(dates, r.DateKey())
	}
	return CalculateStreak(dates, s.today()), nil
}

func (s *progressService) weeklyAverage(ctx context.Context, userID string) (int, error) {
	today := s.today()
	rows, err := s.progressRepository.GetProgressBetween(ctx, userID,
		today.AddDate(0, 0, -(domain.WeekLength-1)).Format(domain.DateLayout),
		today.Format(domain.DateLayout))
	if err != nil {
		return 0, err
	}
	scores := make([]int, 0, len(rows))
	for _, r := range rows {
		scores = append(scores, valueOr(r.DailyAdherenceScore))
	}
	return WeeklyAverage(scores), nil
}

func toDayScores(rows []*entities.DailyProgress) []domain.DayScore {
	out := make([]domain.DayScore, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.DayScore{
			Date:        r.DateKey(),
			Score:       valueOr(r.DailyAdherenceScore),
			MealsLogged: valueOr(r.MealsLogged),
		})
	}
	return out
}

func valueOr(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
