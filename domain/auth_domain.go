package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessSignUp        = "signed up successfully"
	MessageSuccessSignIn        = "signed in successfully"
	MessageSuccessSignOut       = "signed out successfully"
	MessageSuccessResetPassword = "Check your email for reset instructions"
	MessageSuccessGetSession    = "session retrieved successfully"

	MessageFailedSignUp        = "failed to sign up"
	MessageFailedSignIn        = "failed to sign in"
	MessageFailedSignOut       = "failed to sign out"
	MessageFailedResetPassword = "failed to send reset instructions"

	ErrAuthNotConfigured = errors.New("authentication backend is not configured")
	ErrSessionExpired    = errors.New("session has expired")
	ErrNoSession         = errors.New("no active session")
)

type IdentityKind string

const (
	IdentityReal IdentityKind = "real"
	IdentityTest IdentityKind = "test"
)

type AuthEvent string

const (
	AuthEventInitialSession AuthEvent = "INITIAL_SESSION"
	AuthEventSignedIn       AuthEvent = "SIGNED_IN"
	AuthEventSignedOut      AuthEvent = "SIGNED_OUT"
	AuthEventTokenRefreshed AuthEvent = "TOKEN_REFRESHED"
	AuthEventUserUpdated    AuthEvent = "USER_UPDATED"
)

type (
	Identity struct {
		ID          string       `json:"id"`
		Email       string       `json:"email"`
		DisplayName string       `json:"display_name,omitempty"`
		Kind        IdentityKind `json:"kind"`
		Aud         string       `json:"aud,omitempty"`
		Role        string       `json:"role,omitempty"`
		CreatedAt   time.Time    `json:"created_at"`
	}

	Session struct {
		AccessToken  string   `json:"access_token"`
		RefreshToken string   `json:"refresh_token"`
		TokenType    string   `json:"token_type"`
		ExpiresIn    int      `json:"expires_in"`
		ExpiresAt    int64    `json:"expires_at"`
		User         Identity `json:"user"`
	}

	SignUpRequest struct {
		Email         string `json:"email" validate:"required,plateemail"`
		Password      string `json:"password" validate:"required,min=8,hasupper,hasdigit"`
		TermsAccepted bool   `json:"terms_accepted" validate:"required"`
	}

	SignInRequest struct {
		Email    string `json:"email" validate:"required,plateemail"`
		Password string `json:"password" validate:"required"`
	}

	ResetPasswordRequest struct {
		Email string `json:"email" validate:"required,plateemail"`
	}

	SessionResponse struct {
		Authenticated bool      `json:"authenticated"`
		Loading       bool      `json:"loading"`
		User          *Identity `json:"user,omitempty"`
		ExpiresAt     int64     `json:"expires_at,omitempty"`
	}
)

func (i Identity) IsTest() bool {
	return i.Kind == IdentityTest
}

// Expired reports whether the session expiry lies before now. A zero
// expiry never expires.
func (s Session) Expired(now time.Time) bool {
	return s.ExpiresAt != 0 && now.Unix() >= s.ExpiresAt
}
