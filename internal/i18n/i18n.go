// Package i18n holds the user-facing strings of the application in English
// and Indonesian.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys that are not error codes.
const (
	KeyWarningTitle         = "alert.warning.title"
	KeyErrorTitle           = "alert.error.title"
	KeyOKButton             = "alert.ok"
	KeyLoginSuccessTitle    = "alert.login_success.title"
	KeyLoginSuccessBody     = "alert.login_success.body"
	KeyRegisterSuccessTitle = "alert.register_success.title"
	KeyRegisterSuccessBody  = "alert.register_success.body"
	KeyConfirmTitle         = "alert.confirm.title"
	KeyDeleteTodoBody       = "alert.confirm.delete_todo"
	KeyCancel               = "button.cancel"
	KeyDelete               = "button.delete"

	KeyAppTitle      = "screen.auth.title"
	KeyUsername      = "screen.auth.username"
	KeyPassword      = "screen.auth.password"
	KeyLogin         = "screen.auth.login"
	KeyRegister      = "screen.auth.register"
	KeyTodosTitle    = "screen.todos.title"
	KeyTodosEmpty    = "screen.todos.empty"
	KeyAddTodoTitle  = "modal.add_todo.title"
	KeyDescription   = "modal.add_todo.description"
	KeyConfirm       = "modal.add_todo.confirm"
	KeyClose         = "modal.add_todo.close"
	KeyLoading       = "status.loading"
	KeySaving        = "status.saving"
	KeyLoggedInAs    = "status.logged_in_as"
	KeyNotLoggedIn   = "status.not_logged_in"
	KeyPaletteTitle  = "palette.title"
	KeyHelpTitle     = "help.title"
)

// Localizer is the minimal message-printer contract used by the state
// containers and screens. *message.Printer satisfies it.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// Supported lists the locales with a full catalog. The first entry is the
// fallback.
var Supported = []language.Tag{language.English, language.Indonesian}

var matcher = language.NewMatcher(Supported)

// Match resolves a locale string such as "id", "id-ID" or "en_US" to one of
// the supported tags, falling back to English.
func Match(locale string) language.Tag {
	tag, err := language.Parse(locale)
	if err != nil {
		return Supported[0]
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return Supported[0]
	}
	return Supported[idx]
}

// NewPrinter returns a printer for the best supported match of locale.
func NewPrinter(locale string) *message.Printer {
	return message.NewPrinter(Match(locale))
}

func register(tag language.Tag, messages map[string]string) {
	for key, msg := range messages {
		if err := message.SetString(tag, key, msg); err != nil {
			panic("i18n: registering " + key + ": " + err.Error())
		}
	}
}
