// Package i18n provides internationalization support for client-facing messages.
package i18n

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

var (
	bundle   *i18n.Bundle
	initOnce sync.Once
	initErr  error
)

// Init initializes the i18n bundle. Calling it again is a no-op.
func Init() error {
	initOnce.Do(func() {
		b := i18n.NewBundle(language.English)
		b.RegisterUnmarshalFunc("toml", toml.Unmarshal)

		for _, file := range []string{"locales/en.toml", "locales/zh-CN.toml"} {
			if _, err := b.LoadMessageFileFS(localeFS, file); err != nil {
				initErr = fmt.Errorf("failed to load %s: %w", file, err)
				return
			}
		}
		bundle = b
	})
	return initErr
}

// NewLocalizer creates a new localizer for the given language.
func NewLocalizer(lang string) *i18n.Localizer {
	if bundle == nil {
		_ = Init()
	}
	return i18n.NewLocalizer(bundle, lang)
}

// ParseLocale normalizes an Accept-Language value to a supported locale.
func ParseLocale(s string) string {
	if strings.HasPrefix(strings.TrimSpace(s), "zh") {
		return "zh-CN"
	}
	return "en"
}

// T translates a message with the given localizer.
func T(localizer *i18n.Localizer, msgID string) string {
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID: msgID,
	})
	if err != nil {
		return msgID
	}
	return msg
}

// TWithData translates a message with template data.
func TWithData(localizer *i18n.Localizer, msgID string, data map[string]interface{}) string {
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    msgID,
		TemplateData: data,
	})
	if err != nil {
		return msgID
	}
	return msg
}

type contextKey string

const (
	// ContextKeyLocalizer is the key for Localizer in context.Context
	ContextKeyLocalizer contextKey = "i18n.localizer"
	// ContextKeyLocale is the key for the locale string in context.Context
	ContextKeyLocale contextKey = "i18n.locale"
)

// WithLocalizer stores a Localizer in context.Context.
func WithLocalizer(ctx context.Context, localizer *i18n.Localizer) context.Context {
	return context.WithValue(ctx, ContextKeyLocalizer, localizer)
}

// WithLocale stores a locale string in context.Context.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, ContextKeyLocale, locale)
}

// LocalizerFromContext retrieves a Localizer from context.Context, defaulting to English.
func LocalizerFromContext(ctx context.Context) *i18n.Localizer {
	if localizer, ok := ctx.Value(ContextKeyLocalizer).(*i18n.Localizer); ok {
		return localizer
	}
	return NewLocalizer("en")
}

// LocaleFromContext retrieves a locale string from context.Context, defaulting to "en".
func LocaleFromContext(ctx context.Context) string {
	if locale, ok := ctx.Value(ContextKeyLocale).(string); ok {
		return locale
	}
	return "en"
}

// Ctx translates msgID with the localizer stored in ctx.
func Ctx(ctx context.Context, msgID string) string {
	return T(LocalizerFromContext(ctx), msgID)
}

// CtxWithData translates msgID with template data and the localizer stored in ctx.
func CtxWithData(ctx context.Context, msgID string, data map[string]interface{}) string {
	return TWithData(LocalizerFromContext(ctx), msgID, data)
}

// Error is a translatable error returned to GraphQL clients.
type Error struct {
	// MsgID is the key for the translated message
	MsgID string
	// Code is the machine-readable code placed in the GraphQL error extensions
	Code string
	// Data is the data for the translation template (optional)
	Data map[string]interface{}
	// Cause is the original error (optional)
	Cause error
}

// Error returns the message ID and cause, for logs.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.MsgID, e.Cause)
	}
	return e.MsgID
}

// Unwrap returns the original error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Translate translates the error message using the given localizer.
func (e *Error) Translate(localizer *i18n.Localizer) string {
	if e.Data != nil {
		return TWithData(localizer, e.MsgID, e.Data)
	}
	return T(localizer, e.MsgID)
}

// TranslateCtx translates the error message using the localizer from context.
func (e *Error) TranslateCtx(ctx context.Context) string {
	return e.Translate(LocalizerFromContext(ctx))
}

// NewError creates a new translatable error.
func NewError(msgID, code string) *Error {
	return &Error{MsgID: msgID, Code: code}
}

// WithCause sets the original error.
func (e *Error) WithCause(err error) *Error {
	e.Cause = err
	return e
}

// WithData sets the translation data.
func (e *Error) WithData(data map[string]interface{}) *Error {
	e.Data = data
	return e
}

// IsI18nError checks whether err wraps an *Error.
func IsI18nError(err error) (*Error, bool) {
	var i18nErr *Error
	if errors.As(err, &i18nErr) {
		return i18nErr, true
	}
	return nil, false
}
