package middleware

import (
	"errors"

	"fleetdash/internal/httpx"
	"fleetdash/internal/model"
	"fleetdash/internal/session"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Context keys set by SessionRequired
const (
	CtxUserID   = "uid"
	CtxUsername = "username"
)

// SessionRequired rejects requests without a valid session and exposes the
// authenticated identity on the context.
func SessionRequired(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := store.Get(c)
		if err != nil {
			if errors.Is(err, session.ErrNoSession) {
				httpx.FailErr(c, httpx.ErrUnauthorized("Authentication required"))
			} else {
				httpx.FailErr(c, httpx.ErrInternalError("Failed to resolve session", err))
			}
			c.Abort()
			return
		}

		c.Set(CtxUserID, data.UserID)
		c.Set(CtxUsername, data.Username)
		c.Next()
	}
}

// AdminRequired rejects non-admin callers. Must run after SessionRequired.
// The user row is re-read here; the admin flag is never taken from session
// state.
func AdminRequired(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user model.User
		err := gdb.First(&user, c.GetInt(CtxUserID)).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httpx.FailErr(c, httpx.ErrForbidden("Admin access required"))
			} else {
				httpx.FailErr(c, httpx.ErrDatabaseError("Failed to load user", err))
			}
			c.Abort()
			return
		}

		if !user.IsAdmin {
			httpx.FailErr(c, httpx.ErrForbidden("Admin access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}
