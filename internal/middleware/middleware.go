package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cache"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/tanmald/plate-check-mvp/domain"
	"github.com/tanmald/plate-check-mvp/internal/api/presenters"
	"github.com/tanmald/plate-check-mvp/pkg/access"
)

const (
	LocalsUserID   = "user_id"
	LocalsIdentity = "identity"

	CacheExpiration = 30 * time.Second
)

type (
	SessionState interface {
		Identity() *domain.Identity
		Expired() bool
	}

	Middleware interface {
		CORSMiddleware() fiber.Handler
		IdentityMiddleware() fiber.Handler
		RequireIdentity() fiber.Handler
		CacheMiddleware(kind string) fiber.Handler
	}

	middleware struct {
		session SessionState
		access  *access.Access
		origin  string
	}
)

func NewMiddleware(session SessionState, access *access.Access, origin string) Middleware {
	return &middleware{session: session, access: access, origin: origin}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:     m.origin,
		AllowMethods:     strings.Join([]string{fiber.MethodGet, fiber.MethodPost, fiber.MethodPatch, fiber.MethodDelete, fiber.MethodOptions}, ","),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
	})
}

// IdentityMiddleware exposes the signed-in identity, if any, to handlers.
func (m *middleware) IdentityMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if identity := m.session.Identity(); identity != nil {
			c.Locals(LocalsUserID, identity.ID)
			c.Locals(LocalsIdentity, identity)
		}
		return c.Next()
	}
}

func (m *middleware) RequireIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m.session.Identity() == nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrNoIdentity)
		}
		if m.session.Expired() {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, domain.ErrTokenExpired)
		}
		return c.Next()
	}
}

// CacheMiddleware shares GET responses between requests with the same query
// key. The key carries the kind's generation, so an invalidation starts a
// fresh entry.
func (m *middleware) CacheMiddleware(kind string) fiber.Handler {
	return cache.New(cache.Config{
		Expiration:   CacheExpiration,
		CacheControl: false,
		KeyGenerator: func(c *fiber.Ctx) string {
			return CacheKey(m.access, kind, c.Query("date"))
		},
	})
}

func CacheKey(a *access.Access, kind, date string) string {
	if date == "" && (kind == access.KeyMeals || kind == access.KeyDailyProgress) {
		date = a.Today()
	}
	return a.Key(kind, date).String() + "#" + strconv.FormatUint(a.Generation(kind), 10)
}
