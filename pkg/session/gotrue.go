package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tanmald/plate-check-mvp/domain"
	"github.com/tanmald/plate-check-mvp/internal/utils/localstore"
	"github.com/tanmald/plate-check-mvp/pkg/fixtures"
	"github.com/tanmald/plate-check-mvp/pkg/jwt"
)

const (
	StorageKey = "auth-session"

	refreshMargin = time.Minute
)

type (
	GoTrueConfig struct {
		URL     string
		AnonKey string
		Timeout time.Duration
	}

	goTrueClient struct {
		baseURL    string
		anonKey    string
		httpClient *http.Client
		store      localstore.Store
		jwt        jwt.JWTService
		log        *zap.Logger
		hub        *hub
		now        func() time.Time

		mu      sync.Mutex
		session *domain.Session
		timer   *time.Timer
		closed  bool
	}

	tokenResponse struct {
		AccessToken  string    `json:"access_token"`
		TokenType    string    `json:"token_type"`
		ExpiresIn    int       `json:"expires_in"`
		ExpiresAt    int64     `json:"expires_at"`
		RefreshToken string    `json:"refresh_token"`
		User         *authUser `json:"user"`
	}

	authUser struct {
		ID           string         `json:"id"`
		Email        string         `json:"email"`
		Aud          string         `json:"aud"`
		Role         string         `json:"role"`
		CreatedAt    time.Time      `json:"created_at"`
		UserMetadata map[string]any `json:"user_metadata"`
	}

	errorResponse struct {
		Code             any    `json:"code"`
		ErrorCode        string `json:"error_code"`
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
)

// NewGoTrueClient talks to the BaaS Auth REST API under <URL>/auth/v1. A
// missing URL or anon key yields the disabled backend.
func NewGoTrueClient(cfg GoTrueConfig, store localstore.Store, jwtService jwt.JWTService, log *zap.Logger) AuthBackend {
	if cfg.URL == "" || cfg.AnonKey == "" {
		log.Warn("auth backend not configured, remote sign-in disabled")
		return NewDisabledBackend()
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &goTrueClient{
		baseURL:    strings.TrimRight(cfg.URL, "/") + "/auth/v1",
		anonKey:    cfg.AnonKey,
		httpClient: &http.Client{Timeout: timeout},
		store:      store,
		jwt:        jwtService,
		log:        log,
		hub:        newHub(),
		now:        time.Now,
	}
}

func (g *goTrueClient) Subscribe(l Listener) func() {
	return g.hub.subscribe(l)
}

// GetSession returns the persisted session, refreshing it first when it is
// about to expire.
func (g *goTrueClient) GetSession(ctx context.Context) (*domain.Session, error) {
	g.mu.Lock()
	if g.session == nil {
		g.session = g.loadStored()
	}
	current := g.session
	g.mu.Unlock()

	if current == nil {
		return nil, nil
	}
	if g.now().Add(refreshMargin).Unix() < current.ExpiresAt {
		g.scheduleRefresh(current)
		copied := *current
		return &copied, nil
	}

	refreshed, err := g.refresh(ctx, current.RefreshToken)
	if err != nil {
		var authErr *AuthError
		if errors.As(err, &authErr) {
			g.clear()
			return nil, domain.ErrSessionExpired
		}
		return nil, err
	}
	return refreshed, nil
}

func (g *goTrueClient) SignUp(ctx context.Context, email, password, redirectTo string) (*domain.Session, error) {
	query := url.Values{}
	if redirectTo != "" {
		query.Set("redirect_to", redirectTo)
	}
	body := map[string]string{"email": email, "password": password}

	var resp tokenResponse
	raw, err := g.post(ctx, "/signup", query, body, "", &resp)
	if err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		// confirmation pending: the body is the bare user
		var user authUser
		_ = json.Unmarshal(raw, &user)
		g.log.Info("sign-up awaiting email confirmation", zap.String("user_id", user.ID))
		return nil, nil
	}
	return g.establish(resp, domain.AuthEventSignedIn)
}

func (g *goTrueClient) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	query := url.Values{"grant_type": {"password"}}
	body := map[string]string{"email": email, "password": password}

	var resp tokenResponse
	if _, err := g.post(ctx, "/token", query, body, "", &resp); err != nil {
		return nil, err
	}
	return g.establish(resp, domain.AuthEventSignedIn)
}

func (g *goTrueClient) SignOut(ctx context.Context) error {
	g.mu.Lock()
	current := g.session
	if current == nil {
		current = g.loadStored()
	}
	g.mu.Unlock()

	if current != nil {
		_, err := g.post(ctx, "/logout", nil, nil, current.AccessToken, nil)
		var authErr *AuthError
		// an already revoked token still signs the device out
		if err != nil && !(errors.As(err, &authErr) && (authErr.Status == http.StatusUnauthorized || authErr.Status == http.StatusNotFound)) {
			return err
		}
	}

	g.clear()
	g.hub.publish(domain.AuthEventSignedOut, nil)
	return nil
}

func (g *goTrueClient) ResetPassword(ctx context.Context, email, redirectTo string) error {
	query := url.Values{}
	if redirectTo != "" {
		query.Set("redirect_to", redirectTo)
	}
	_, err := g.post(ctx, "/recover", query, map[string]string{"email": email}, "", nil)
	return err
}

func (g *goTrueClient) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.closed = true
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
}

func (g *goTrueClient) refresh(ctx context.Context, refreshToken string) (*domain.Session, error) {
	query := url.Values{"grant_type": {"refresh_token"}}
	body := map[string]string{"refresh_token": refreshToken}

	var resp tokenResponse
	if _, err := g.post(ctx, "/token", query, body, "", &resp); err != nil {
		return nil, err
	}
	return g.establish(resp, domain.AuthEventTokenRefreshed)
}

// establish turns a token response into the current session, persists it
// and notifies subscribers.
func (g *goTrueClient) establish(resp tokenResponse, event domain.AuthEvent) (*domain.Session, error) {
	s, err := g.toSession(resp)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	g.session = s
	g.persist(s)
	g.mu.Unlock()

	g.scheduleRefresh(s)
	copied := *s
	g.hub.publish(event, &copied)
	return &copied, nil
}

func (g *goTrueClient) toSession(resp tokenResponse) (*domain.Session, error) {
	claims, err := g.jwt.GetClaimsByToken(resp.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("auth backend returned an unusable token: %w", err)
	}

	identity := domain.Identity{ID: claims.Subject, Email: claims.Email, Role: claims.Role}
	if u := resp.User; u != nil {
		identity.Aud = u.Aud
		identity.CreatedAt = u.CreatedAt
		if u.Email != "" {
			identity.Email = u.Email
		}
		if name, ok := u.UserMetadata["full_name"].(string); ok {
			identity.DisplayName = name
		}
	}
	identity.Kind = domain.IdentityReal
	if fixtures.IsTestEmail(identity.Email) {
		identity.Kind = domain.IdentityTest
	}

	expiresAt := resp.ExpiresAt
	if expiresAt == 0 {
		expiresAt = g.now().Add(time.Duration(resp.ExpiresIn) * time.Second).Unix()
	}
	return &domain.Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		TokenType:    resp.TokenType,
		ExpiresIn:    resp.ExpiresIn,
		ExpiresAt:    expiresAt,
		User:         identity,
	}, nil
}

func (g *goTrueClient) scheduleRefresh(s *domain.Session) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed || s.RefreshToken == "" {
		return
	}
	if g.timer != nil {
		g.timer.Stop()
	}
	wait := time.Unix(s.ExpiresAt, 0).Add(-refreshMargin).Sub(g.now())
	if wait < 0 {
		wait = 0
	}
	refreshToken := s.RefreshToken
	g.timer = time.AfterFunc(wait, func() {
		ctx, cancel := context.WithTimeout(context.Background(), g.httpClient.Timeout)
		defer cancel()
		if _, err := g.refresh(ctx, refreshToken); err != nil {
			g.log.Warn("background token refresh failed", zap.Error(err))
		}
	})
}

// loadStored reads the persisted session. Callers hold mu.
func (g *goTrueClient) loadStored() *domain.Session {
	raw, ok := g.store.Get(StorageKey)
	if !ok {
		return nil
	}
	var s domain.Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil || s.AccessToken == "" {
		_ = g.store.Remove(StorageKey)
		return nil
	}
	return &s
}

// persist writes the session to local storage. Callers hold mu.
func (g *goTrueClient) persist(s *domain.Session) {
	raw, err := json.Marshal(s)
	if err != nil {
		return
	}
	if err := g.store.Set(StorageKey, string(raw)); err != nil {
		g.log.Warn("failed to persist auth session", zap.Error(err))
	}
}

func (g *goTrueClient) clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.session = nil
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	if err := g.store.Remove(StorageKey); err != nil {
		g.log.Warn("failed to remove auth session", zap.Error(err))
	}
}

func (g *goTrueClient) post(ctx context.Context, path string, query url.Values, body any, bearer string, out any) ([]byte, error) {
	endpoint := g.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, reader)
	if err != nil {
		return nil, err
	}
	if bearer == "" {
		bearer = g.anonKey
	}
	req.Header.Set("apikey", g.anonKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, decodeAuthError(resp.StatusCode, raw)
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return nil, err
		}
	}
	return raw, nil
}

func decodeAuthError(status int, raw []byte) *AuthError {
	var e errorResponse
	_ = json.Unmarshal(raw, &e)

	authErr := &AuthError{Status: status, Code: e.ErrorCode}
	if authErr.Code == "" {
		authErr.Code = e.Error
	}
	for _, m := range []string{e.Msg, e.ErrorDescription, e.Message, e.Error} {
		if m != "" {
			authErr.Message = m
			break
		}
	}
	return authErr
}
