package middleware

import (
	"context"

	"github.com/SscSPs/tx_classify_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// sessionKey is the key used to store the authenticated session in the request context.
const sessionKey = contextKey("session")

// WithSession returns a copy of ctx carrying session.
func WithSession(ctx context.Context, session domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// SessionFromCtx retrieves the session stored by AuthMiddleware.
func SessionFromCtx(ctx context.Context) (domain.Session, bool) {
	session, ok := ctx.Value(sessionKey).(domain.Session)
	return session, ok
}

// GetSessionFromContext retrieves the authenticated session for a gin request.
// It returns the session and a boolean indicating if it was found.
func GetSessionFromContext(c *gin.Context) (domain.Session, bool) {
	session, ok := SessionFromCtx(c.Request.Context())
	if !ok || session.UserID == "" {
		return domain.Session{}, false
	}
	return session, true
}
