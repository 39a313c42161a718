package middleware

import (
	"main/internal/auth"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

const loginPage = "/login.html"

// Auth protects routes that require a logged-in user. This is a
// browser-facing gate: anyone without a session record is sent to the
// login page rather than given a 401. A session that cannot be decoded
// counts as no session.
func Auth(store sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := auth.GetSession(store, c.Request)
		if err != nil {
			c.Redirect(http.StatusTemporaryRedirect, loginPage)
			c.Abort()
			return
		}

		if _, ok := auth.UserFromSession(session); !ok {
			c.Redirect(http.StatusTemporaryRedirect, loginPage)
			c.Abort()
			return
		}

		c.Next()
	}
}
