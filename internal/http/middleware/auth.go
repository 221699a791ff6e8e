package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"basegraph.app/roster/common/logger"
	"basegraph.app/roster/internal/http/dto"
	"basegraph.app/roster/internal/service"
)

type contextKey string

const (
	SessionCookieName = "roster_session"

	identityContextKey contextKey = "identity"
)

// Identity is the authenticated caller. SessionID is zero for bearer tokens.
type Identity struct {
	UserID    int64
	Email     string
	SessionID int64
}

// RequireAuth accepts a bearer JWT or the session cookie and aborts with 401
// otherwise. A nil tokens issuer disables bearer auth.
func RequireAuth(auth service.AuthService, tokens service.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := authenticate(c, auth, tokens)
		if err != nil {
			if errors.Is(err, service.ErrSessionExpired) || errors.Is(err, service.ErrUserNotFound) {
				clearSessionCookie(c)
			}
			abortWithError(c, err)
			return
		}

		setIdentity(c, identity)
		c.Next()
	}
}

// OptionalAuth attaches the caller when credentials are valid and never aborts.
func OptionalAuth(auth service.AuthService, tokens service.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity, err := authenticate(c, auth, tokens); err == nil {
			setIdentity(c, identity)
		}
		c.Next()
	}
}

func GetIdentity(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(Identity)
	return identity, ok
}

// WithIdentity is used by tests and internal callers to mark a context as authenticated.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	ctx = logger.WithLogFields(ctx, logger.LogFields{UserID: &identity.UserID})
	return context.WithValue(ctx, identityContextKey, identity)
}

func authenticate(c *gin.Context, auth service.AuthService, tokens service.TokenIssuer) (Identity, error) {
	if raw, ok := bearerToken(c); ok {
		if tokens == nil {
			return Identity{}, service.ErrInvalidToken
		}
		claims, err := tokens.Parse(raw)
		if err != nil {
			return Identity{}, err
		}
		userID, err := claims.UserID()
		if err != nil {
			return Identity{}, service.Wrap(service.ErrInvalidToken, err)
		}
		return Identity{UserID: userID, Email: claims.Email}, nil
	}

	sessionID, err := sessionIDFromCookie(c)
	if err != nil {
		return Identity{}, service.ErrUnauthenticated
	}

	user, err := auth.ValidateSession(c.Request.Context(), sessionID)
	if err != nil {
		return Identity{}, err
	}
	return Identity{UserID: user.ID, Email: user.Email, SessionID: sessionID}, nil
}

func setIdentity(c *gin.Context, identity Identity) {
	c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), identity))
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}

func sessionIDFromCookie(c *gin.Context) (int64, error) {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(cookie, 10, 64)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
}

func abortWithError(c *gin.Context, err error) {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		slog.ErrorContext(c.Request.Context(), "authentication failed", "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
		return
	}
	c.AbortWithStatusJSON(dto.StatusForKind(svcErr.Kind), dto.ErrorResponse{Error: svcErr.Message, Code: svcErr.Code})
}
