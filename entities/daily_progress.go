package entities

import (
	"time"

	"github.com/google/uuid"
)

type DailyProgress struct {
	ID                  uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID              uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_daily_progress_user_date" json:"user_id"`
	Date                time.Time `gorm:"type:date;not null;uniqueIndex:idx_daily_progress_user_date" json:"date"`
	DailyAdherenceScore *int      `json:"daily_adherence_score"`
	MealsLogged         *int      `json:"meals_logged"`
	Timestamp
}

func (DailyProgress) TableName() string {
	return "daily_progress"
}

// DateKey is the calendar date of the row as stored, formatted 2006-01-02.
// Date columns are scanned as midnight UTC.
func (p DailyProgress) DateKey() string {
	return p.Date.UTC().Format("2006-01-02")
}
