package middleware

import (
	"net/http"

	"nymble-website/internal/domain"
	"nymble-website/pkg/apperror"

	"github.com/gin-gonic/gin"
)

const (
	FormSessionCookieName = "form_session"
	FormSessionHeader     = "X-Form-Session"
)

// FormSession binds the request to a contact form session. API clients send
// the id in X-Form-Session, browsers carry it in a cookie. Unknown or expired
// ids are replaced with a fresh session.
func FormSession(contactUC domain.ContactUsecase, secure bool, maxAge int) gin.HandlerFunc {
	return func(c *gin.Context) {
		requested := c.GetHeader(FormSessionHeader)
		if requested == "" {
			requested, _ = c.Cookie(FormSessionCookieName)
		}

		id, err := contactUC.OpenSession(c.Request.Context(), requested)
		if err != nil {
			c.Error(apperror.New(http.StatusServiceUnavailable, "Contact form temporarily unavailable", err))
			c.Abort()
			return
		}

		if id != requested {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(FormSessionCookieName, id, maxAge, "/", "", secure, true)
		}
		c.Header(FormSessionHeader, id)
		c.Set(string(domain.KeyFormSession), id)
		c.Next()
	}
}

// FormSessionID returns the session bound by FormSession
func FormSessionID(c *gin.Context) string {
	return c.GetString(string(domain.KeyFormSession))
}
