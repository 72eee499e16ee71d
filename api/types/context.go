package types

import (
	"github.com/gin-gonic/gin"

	"github.com/firmsite/site-api/internal/services/i18n"
)

// Gin context keys shared between middleware and handlers
const (
	PreferencesKey = "preferences"
	ClientIDKey    = "client_id"
	RequestIDKey   = "request_id"
)

// Preferences returns the language resolved for this request
func Preferences(c *gin.Context) i18n.Preferences {
	if v, ok := c.Get(PreferencesKey); ok {
		if p, ok := v.(i18n.Preferences); ok {
			return p
		}
	}
	return i18n.Preferences{Language: i18n.English, Source: i18n.SourceDefault}
}

// Language is shorthand for Preferences(c).Language
func Language(c *gin.Context) i18n.Language {
	return Preferences(c).Language
}

// ClientID identifies the visitor for per-client state such as search sessions
func ClientID(c *gin.Context) string {
	if id := c.GetString(ClientIDKey); id != "" {
		return id
	}
	return c.ClientIP()
}
