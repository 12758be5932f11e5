// Package session owns the single identity/session of the process. The
// Provider is constructed once, injected into every consumer and reports
// changes through Subscribe.
package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tanmald/plate-check-mvp/domain"
	"github.com/tanmald/plate-check-mvp/internal/utils/localstore"
	"github.com/tanmald/plate-check-mvp/pkg/fixtures"
)

const (
	MockStorageKey = "mock-session"

	mockAccessToken  = "mock-access-token"
	mockRefreshToken = "mock-refresh-token"
	mockExpiresIn    = 3600
)

type (
	Snapshot struct {
		Identity *domain.Identity
		Session  *domain.Session
		Loading  bool
	}

	Option func(*Provider)

	Provider struct {
		backend AuthBackend
		store   localstore.Store
		origin  string
		log     *zap.Logger
		now     func() time.Time
		hub     *hub

		mu          sync.RWMutex
		session     *domain.Session
		loading     bool
		mock        bool
		unsubscribe func()
	}

	mockMarker struct {
		User    domain.Identity `json:"user"`
		Session domain.Session  `json:"session"`
	}
)

func WithClock(now func() time.Time) Option {
	return func(p *Provider) { p.now = now }
}

// NewProvider starts in the loading state until Initialize runs. origin is
// the base used for the email redirect links.
func NewProvider(backend AuthBackend, store localstore.Store, origin string, log *zap.Logger, opts ...Option) *Provider {
	p := &Provider{
		backend: backend,
		store:   store,
		origin:  origin,
		log:     log,
		now:     time.Now,
		hub:     newHub(),
		loading: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Initialize restores a persisted mock session without any remote call, or
// else asks the backend for its session. Only the remote path subscribes to
// backend changes.
func (p *Provider) Initialize(ctx context.Context) error {
	if s, ok := p.restoreMock(); ok {
		p.setState(s, true)
		p.log.Info("restored test session", zap.String("email", s.User.Email))
		p.hub.publish(domain.AuthEventInitialSession, copySession(s))
		return nil
	}

	p.subscribeBackend()
	s, err := p.backend.GetSession(ctx)
	if err != nil {
		p.setState(nil, false)
		p.log.Warn("failed to restore session", zap.Error(err))
		p.hub.publish(domain.AuthEventInitialSession, nil)
		return err
	}

	p.setState(s, false)
	p.hub.publish(domain.AuthEventInitialSession, copySession(s))
	return nil
}

func (p *Provider) restoreMock() (*domain.Session, bool) {
	raw, ok := p.store.Get(MockStorageKey)
	if !ok {
		return nil, false
	}
	var m mockMarker
	if err := json.Unmarshal([]byte(raw), &m); err != nil || m.User.ID == "" {
		p.log.Warn("discarding unreadable test session marker")
		_ = p.store.Remove(MockStorageKey)
		return nil, false
	}
	m.Session.User = m.User
	return &m.Session, true
}

// SignUp creates a local test session for test addresses. Anything else
// goes to the backend with a redirect to /auth/callback; a nil session
// means the address still has to be confirmed.
func (p *Provider) SignUp(ctx context.Context, email, password string) (*domain.Session, error) {
	if fixtures.IsTestEmail(email) {
		return p.signInMock(email)
	}

	p.subscribeBackend()
	s, err := p.backend.SignUp(ctx, email, password, p.origin+"/auth/callback")
	if err != nil {
		return nil, err
	}
	if s != nil {
		p.setState(s, false)
	}
	return copySession(s), nil
}

func (p *Provider) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	if fixtures.IsTestEmail(email) {
		return p.signInMock(email)
	}

	p.subscribeBackend()
	s, err := p.backend.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	p.setState(s, false)
	return copySession(s), nil
}

// SignOut drops a test session locally. Real sessions are revoked at the
// backend and a failure leaves the session in place.
func (p *Provider) SignOut(ctx context.Context) error {
	_, hasMarker := p.store.Get(MockStorageKey)
	p.mu.RLock()
	mock := p.mock
	p.mu.RUnlock()

	if hasMarker || mock {
		if err := p.store.Remove(MockStorageKey); err != nil {
			return err
		}
		p.setState(nil, false)
		p.hub.publish(domain.AuthEventSignedOut, nil)
		return nil
	}

	if err := p.backend.SignOut(ctx); err != nil {
		return err
	}
	p.setState(nil, false)
	return nil
}

// ResetPassword always asks the backend, test addresses included.
func (p *Provider) ResetPassword(ctx context.Context, email string) error {
	return p.backend.ResetPassword(ctx, email, p.origin+"/auth/reset-password")
}

func (p *Provider) Current() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	snap := Snapshot{Loading: p.loading, Session: copySession(p.session)}
	if snap.Session != nil {
		identity := snap.Session.User
		snap.Identity = &identity
	}
	return snap
}

// Identity returns the signed-in identity or nil.
func (p *Provider) Identity() *domain.Identity {
	return p.Current().Identity
}

func (p *Provider) IsAuthenticated() bool {
	return p.Identity() != nil
}

// Expired reports a held session whose expiry has passed. Test sessions
// never expire.
func (p *Provider) Expired() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.session != nil && !p.mock && p.session.Expired(p.now())
}

func (p *Provider) Subscribe(l Listener) func() {
	return p.hub.subscribe(l)
}

func (p *Provider) Close() {
	p.mu.Lock()
	unsubscribe := p.unsubscribe
	p.unsubscribe = nil
	p.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	p.backend.Close()
}

// subscribeBackend starts forwarding backend changes once. It is a no-op
// after the first call until Close.
func (p *Provider) subscribeBackend() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.unsubscribe == nil {
		p.unsubscribe = p.backend.Subscribe(p.onBackendEvent)
	}
}

func (p *Provider) onBackendEvent(event domain.AuthEvent, s *domain.Session) {
	p.mu.RLock()
	mock := p.mock
	p.mu.RUnlock()
	if mock {
		return
	}

	if event == domain.AuthEventSignedOut {
		s = nil
	}
	p.setState(s, false)
	p.hub.publish(event, copySession(s))
}

func (p *Provider) signInMock(email string) (*domain.Session, error) {
	now := p.now()
	identity := fixtures.Identity(email, now)
	s := &domain.Session{
		AccessToken:  mockAccessToken,
		RefreshToken: mockRefreshToken,
		TokenType:    "bearer",
		ExpiresIn:    mockExpiresIn,
		ExpiresAt:    now.Add(mockExpiresIn * time.Second).Unix(),
		User:         identity,
	}

	raw, err := json.Marshal(mockMarker{User: identity, Session: *s})
	if err != nil {
		return nil, err
	}
	if err := p.store.Set(MockStorageKey, string(raw)); err != nil {
		return nil, err
	}

	p.setState(s, true)
	p.hub.publish(domain.AuthEventSignedIn, copySession(s))
	return copySession(s), nil
}

func (p *Provider) setState(s *domain.Session, mock bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.session = copySession(s)
	p.mock = mock && s != nil
	p.loading = false
}

func copySession(s *domain.Session) *domain.Session {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
