package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionKey is the gin context key holding the session id.
const SessionKey = "session_id"

const sessionCookie = "linen_session"

// Session resolves the customer session id for a request: the session
// cookie if present, else an X-Session-ID header, else a fresh uuid set
// back as a cookie. Carts are scoped to this id.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(sessionCookie)
		if err != nil || sessionID == "" {
			sessionID = c.GetHeader("X-Session-ID")
		}
		if sessionID == "" {
			sessionID = uuid.NewString()
			c.SetCookie(sessionCookie, sessionID, 7*24*3600, "/", "", false, true)
		}
		c.Set(SessionKey, sessionID)
		c.Next()
	}
}
