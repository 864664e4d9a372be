package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appctx "assetdesk/internal/core/context"
	"assetdesk/internal/core/id"
)

const (
	HeaderSessionID = "X-Session-ID"
	// SessionCookie carries the session id for browser clients.
	SessionCookie = "assetdesk_session"
)

// Session resolves the caller's session id from the header or the cookie,
// issuing a new one when neither is present.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := &appctx.SessionContext{SessionID: c.GetHeader(HeaderSessionID)}
		if sess.SessionID == "" {
			if v, err := c.Cookie(SessionCookie); err == nil {
				sess.SessionID = v
			}
		}
		if sess.SessionID == "" {
			sess.SessionID = id.NewString()
			sess.Issued = true
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, sess.SessionID, 0, "/", "", false, true)
		}

		c.Request = c.Request.WithContext(appctx.WithSession(c.Request.Context(), sess))
		c.Set("session_id", sess.SessionID)
		c.Header(HeaderSessionID, sess.SessionID)

		c.Next()
	}
}
