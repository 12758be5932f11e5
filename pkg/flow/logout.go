package flow

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/tanmald/plate-check-mvp/domain"
	"github.com/tanmald/plate-check-mvp/internal/utils/localstore"
	"github.com/tanmald/plate-check-mvp/pkg/navigation"
)

type LogoutStep string

const (
	LogoutConfirm LogoutStep = "confirm"
	LogoutLoading LogoutStep = "loading"
	LogoutError   LogoutStep = "error"
	LogoutExpired LogoutStep = "expired"
)

// SensitiveKeys are dropped from local storage on every successful logout.
var SensitiveKeys = []string{"auth_token", "user_data"}

var logoutCopy = map[LogoutStep][2]string{
	LogoutConfirm: {"Log out?", "You'll need to sign in again to access your plan and history."},
	LogoutLoading: {"Logging out…", "Securing your account."},
	LogoutError:   {"We couldn't log you out right now.", "Please check your connection and try again."},
	LogoutExpired: {"You're already logged out.", "Your session has expired."},
}

type (
	SessionEnder interface {
		SignOut(ctx context.Context) error
		IsAuthenticated() bool
		Expired() bool
	}

	LogoutView struct {
		Step        LogoutStep `json:"step"`
		Open        bool       `json:"open"`
		Title       string     `json:"title"`
		Description string     `json:"description"`
		Effects
	}

	Logout struct {
		session      SessionEnder
		local        localstore.Store
		sessionScope localstore.Store
		log          *zap.Logger

		mu   sync.Mutex
		step LogoutStep
		open bool
	}
)

// NewLogout builds the logout dialog. sessionScope holds the keys that only
// live as long as the session and is wiped entirely on logout.
func NewLogout(session SessionEnder, local, sessionScope localstore.Store, log *zap.Logger) *Logout {
	return &Logout{
		session:      session,
		local:        local,
		sessionScope: sessionScope,
		log:          log,
		step:         LogoutConfirm,
	}
}

func (l *Logout) View() LogoutView {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.view()
}

func (l *Logout) view() LogoutView {
	text := logoutCopy[l.step]
	return LogoutView{Step: l.step, Open: l.open, Title: text[0], Description: text[1]}
}

// Open shows the dialog. Without a live session it opens on the expired
// step straight away.
func (l *Logout) Open() (LogoutView, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.step == LogoutLoading {
		return l.view(), ErrFlowBusy
	}
	l.step = LogoutConfirm
	if !l.session.IsAuthenticated() || l.session.Expired() {
		l.step = LogoutExpired
	}
	l.open = true
	return l.view(), nil
}

func (l *Logout) Confirm(ctx context.Context) (LogoutView, error) {
	l.mu.Lock()
	if !l.open || (l.step != LogoutConfirm && l.step != LogoutError) {
		v := l.view()
		l.mu.Unlock()
		return v, ErrInvalidTransition
	}
	l.step = LogoutLoading
	l.mu.Unlock()

	err := l.session.SignOut(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()

	if err != nil {
		if errors.Is(err, domain.ErrNoSession) || errors.Is(err, domain.ErrSessionExpired) {
			l.step = LogoutExpired
			return l.view(), nil
		}
		l.log.Warn("logout failed", zap.Error(err))
		l.step = LogoutError
		return l.view(), nil
	}

	if err := l.local.Remove(SensitiveKeys...); err != nil {
		l.log.Warn("failed to clear local data", zap.Error(err))
	}
	if err := l.sessionScope.Clear(); err != nil {
		l.log.Warn("failed to clear session data", zap.Error(err))
	}

	l.step = LogoutConfirm
	l.open = false
	v := l.view()
	v.Toast = &Toast{Description: "Logged out", DurationMs: 2000}
	v.Navigate = navigation.ReplaceTo(navigation.RouteOnboarding)
	return v, nil
}

func (l *Logout) Retry(ctx context.Context) (LogoutView, error) {
	l.mu.Lock()
	step := l.step
	l.mu.Unlock()

	if step != LogoutError {
		return l.View(), ErrInvalidTransition
	}
	return l.Confirm(ctx)
}

// Cancel closes the dialog. It cannot interrupt a running logout.
func (l *Logout) Cancel() (LogoutView, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.step == LogoutLoading {
		return l.view(), ErrFlowBusy
	}
	l.step = LogoutConfirm
	l.open = false
	return l.view(), nil
}

func (l *Logout) GoToSignIn() (LogoutView, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.step != LogoutExpired {
		return l.view(), ErrInvalidTransition
	}
	l.step = LogoutConfirm
	l.open = false
	v := l.view()
	v.Navigate = navigation.ReplaceTo(navigation.RouteOnboarding)
	return v, nil
}
