package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"stocks-simulator/session"
)

const (
	// SessionKey holds the *session.Session in the gin context.
	SessionKey = "session"
	// UserIDKey holds the authenticated user id (uint) in the gin context.
	UserIDKey = "user_id"
)

type SessionLoader interface {
	Load(ctx context.Context, token string) (*session.Session, error)
}

// LoadSession resolves the session cookie. Requests without a valid session
// continue anonymously.
func LoadSession(loader SessionLoader, logger log.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(session.CookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		sess, err := loader.Load(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, session.ErrNoSession) {
				logger.WithError(err).Warn("could not load session")
			}
			c.Next()
			return
		}

		c.Set(SessionKey, sess)
		if sess.UserID != 0 {
			c.Set(UserIDKey, sess.UserID)
			c.Request = c.Request.WithContext(session.WithUserID(c.Request.Context(), sess.UserID))
		}
		c.Next()
	}
}

// RequireLogin redirects anonymous requests to the login page.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := session.UserID(c.Request.Context()); !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentSession returns the session loaded for this request, if any.
func CurrentSession(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(SessionKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*session.Session)
	return sess, ok
}

// ClearSession drops the session from the current request so the rest of
// the request runs anonymously.
func ClearSession(c *gin.Context) {
	c.Set(SessionKey, nil)
	c.Set(UserIDKey, nil)
	c.Request = c.Request.WithContext(session.WithUserID(c.Request.Context(), 0))
}
