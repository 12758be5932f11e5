package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type MealLog struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID         uuid.UUID      `gorm:"type:uuid;index;not null" json:"user_id"`
	MealType       string         `gorm:"not null" json:"meal_type"` // breakfast, lunch, dinner, snack
	MealName       *string        `json:"meal_name"`
	LoggedAt       time.Time      `gorm:"type:timestamp with time zone;index;default:now()" json:"logged_at"`
	AdherenceScore *int           `json:"adherence_score"`
	PhotoURL       *string        `json:"photo_url"`
	DetectedFoods  pq.StringArray `gorm:"type:text[]" json:"detected_foods"`
	AIFeedback     *string        `gorm:"column:ai_feedback" json:"ai_feedback"`
	Analysis       datatypes.JSON `gorm:"type:jsonb" json:"analysis,omitempty"`
	CreatedAt      time.Time      `gorm:"type:timestamp with time zone;default:now()" json:"created_at"`
}

func (MealLog) TableName() string {
	return "meal_logs"
}
