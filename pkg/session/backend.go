package session

import (
	"context"
	"fmt"

	"github.com/tanmald/plate-check-mvp/domain"
)

type (
	// AuthBackend is the remote identity service. Implementations keep their
	// own persisted session and report changes to subscribers.
	AuthBackend interface {
		GetSession(ctx context.Context) (*domain.Session, error)
		// SignUp returns a nil session when the account still needs email
		// confirmation.
		SignUp(ctx context.Context, email, password, redirectTo string) (*domain.Session, error)
		SignIn(ctx context.Context, email, password string) (*domain.Session, error)
		SignOut(ctx context.Context) error
		ResetPassword(ctx context.Context, email, redirectTo string) error
		Subscribe(listener Listener) (unsubscribe func())
		Close()
	}

	// AuthError is a rejection reported by the auth backend. Message is shown
	// to the user as is.
	AuthError struct {
		Status  int    `json:"status"`
		Code    string `json:"code,omitempty"`
		Message string `json:"message"`
	}

	disabledBackend struct{}
)

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("auth request failed with status %d", e.Status)
}

// NewDisabledBackend stands in when no auth backend is configured. It holds
// no session and fails every remote operation with ErrAuthNotConfigured.
func NewDisabledBackend() AuthBackend {
	return disabledBackend{}
}

func (disabledBackend) GetSession(context.Context) (*domain.Session, error) { return nil, nil }

func (disabledBackend) SignUp(context.Context, string, string, string) (*domain.Session, error) {
	return nil, domain.ErrAuthNotConfigured
}

func (disabledBackend) SignIn(context.Context, string, string) (*domain.Session, error) {
	return nil, domain.ErrAuthNotConfigured
}

func (disabledBackend) SignOut(context.Context) error { return domain.ErrAuthNotConfigured }

func (disabledBackend) ResetPassword(context.Context, string, string) error {
	return domain.ErrAuthNotConfigured
}

func (disabledBackend) Subscribe(Listener) func() { return func() {} }

func (disabledBackend) Close() {}
