package entities

import (
	"github.com/google/uuid"
)

type UserProfile struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email     string    `json:"email"`
	FullName  *string   `json:"full_name"`
	AvatarURL *string   `json:"avatar_url"`
	Timestamp
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
