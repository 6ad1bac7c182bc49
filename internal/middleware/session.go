package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/taskhive/taskhive-api/internal/constants"
)

// SetSessionUser records the reconciled user id in the cookie session after
// an identity sync.
func SetSessionUser(c *gin.Context, userID string) error {
	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, userID)
	return session.Save()
}

// SessionUserID returns the user id stored by a previous identity sync.
func SessionUserID(c *gin.Context) (string, bool) {
	session := sessions.Default(c)
	v := session.Get(constants.ContextKeyUserID)
	id, ok := v.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// ClearSession drops the identity session.
func ClearSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	return session.Save()
}
