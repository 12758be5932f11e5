package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetProfile    = "profile retrieved successfully"
	MessageSuccessUpdateProfile = "Profile updated"

	MessageFailedGetProfile    = "failed to retrieve profile"
	MessageFailedUpdateProfile = "Failed to update profile. Please try again."

	ErrProfileNotFound = errors.New("profile not found")
)

type (
	Profile struct {
		ID        string    `json:"id"`
		Email     string    `json:"email"`
		FullName  *string   `json:"full_name"`
		AvatarURL *string   `json:"avatar_url"`
		CreatedAt time.Time `json:"created_at"`
		UpdatedAt time.Time `json:"updated_at"`
	}

	UpdateProfileRequest struct {
		Email    string `json:"email" validate:"omitempty,email,max=255"`
		FullName string `json:"full_name" validate:"omitempty,min=2,max=100"`
	}
)
