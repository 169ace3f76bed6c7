// Package state holds the in-memory view state of the application: who is
// logged in and the todos of that user. Containers are safe for concurrent
// use and never hold their lock across a backend call.
package state

import (
	"errors"

	"github.com/nhle/todolist/internal/apperr"
	"github.com/nhle/todolist/internal/i18n"
	"github.com/nhle/todolist/internal/model"
)

var (
	// ErrBusy is returned when the same operation is already in flight.
	ErrBusy = errors.New("operation already in progress")

	// ErrStale is returned when a result arrived after a newer fetch or a
	// Clear and was therefore discarded.
	ErrStale = errors.New("result superseded")
)

func defaultLocalizer(loc i18n.Localizer) i18n.Localizer {
	if loc == nil {
		return i18n.NewPrinter("en")
	}
	return loc
}

// failure builds the status and the returned error for code.
func failure(loc i18n.Localizer, code apperr.Code, cause error) (model.Failed, error) {
	msg := loc.Sprintf(string(code))
	return model.Failed{Code: string(code), Message: msg}, apperr.Wrap(code, msg, cause)
}

// statusFromMessage implements the SetError contract shared by containers.
func statusFromMessage(msg string) model.Status {
	if msg == "" {
		return model.Ok{}
	}
	return model.Failed{Message: msg}
}
