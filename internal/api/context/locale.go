package context

import (
	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"

	i18npkg "github.com/xzzpig/graph-gateway/internal/i18n"
)

// LocaleMiddleware parses Accept-Language header and stores Localizer in both contexts
func LocaleMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := c.GetHeader("Accept-Language")
		locale := i18npkg.ParseLocale(lang)
		localizer := i18npkg.NewLocalizer(locale)

		// Gin context, for handlers
		c.Set(ContextKeyLocale, locale)
		c.Set(ContextKeyLocalizer, localizer)

		// Request context, for resolvers and the error presenter
		ctx := c.Request.Context()
		ctx = i18npkg.WithLocalizer(ctx, localizer)
		ctx = i18npkg.WithLocale(ctx, locale)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetLocalizer retrieves the Localizer from Gin context
func GetLocalizer(c *gin.Context) *i18n.Localizer {
	if localizer, err := getContextValue[*i18n.Localizer](c, ContextKeyLocalizer); err == nil {
		return localizer
	}
	// Fallback: try to get from request context
	return i18npkg.LocalizerFromContext(c.Request.Context())
}
