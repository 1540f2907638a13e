package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/uyghurcoder/login-service/internal/api/metrics"
	"github.com/uyghurcoder/login-service/internal/core/domain"
	"github.com/uyghurcoder/login-service/internal/core/ports"
)

const identityKey = "identity"

// Authenticate is the per-request gate. It reads the token from the
// named cookie, validates it, resolves the subject against the
// credential store and attaches the resulting Identity to the request
// context. The gate never terminates a request: on a missing cookie or
// any validation/lookup failure the request continues unauthenticated
// and a role guard further down the chain produces the rejection.
func Authenticate(tokens ports.TokenIssuer, users ports.UserRepository, cookieName string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			subject, err := tokens.Validate(cookie.Value)
			if err != nil {
				reason := rejectReason(err)
				metrics.TokenRejectionsTotal.WithLabelValues(reason).Inc()
				log.Warn().Err(err).Str("reason", reason).Msg("token rejected")
				return next(c)
			}

			user, err := users.FindByUsername(c.Request().Context(), subject)
			if err != nil {
				metrics.TokenRejectionsTotal.WithLabelValues("unknown_subject").Inc()
				log.Warn().Err(err).Str("subject", subject).Msg("token subject not found")
				return next(c)
			}

			c.Set(identityKey, domain.Identity{
				ID:       user.ID,
				Username: user.Username,
				Email:    user.Email,
				Roles:    user.Roles,
			})
			return next(c)
		}
	}
}

// CurrentIdentity returns the authenticated caller attached by
// Authenticate, if any.
func CurrentIdentity(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(identityKey).(domain.Identity)
	return id, ok
}

func rejectReason(err error) string {
	switch err {
	case domain.ErrTokenMissing:
		return "empty"
	case domain.ErrTokenExpired:
		return "expired"
	case domain.ErrTokenSignature:
		return "bad_signature"
	case domain.ErrTokenUnsupported:
		return "unsupported_alg"
	default:
		return "malformed"
	}
}
