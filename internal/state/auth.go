package state

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/nhle/todolist/internal/apperr"
	"github.com/nhle/todolist/internal/i18n"
	"github.com/nhle/todolist/internal/model"
	"github.com/nhle/todolist/internal/store"
)

// AuthSnapshot is a point-in-time copy of the auth state.
type AuthSnapshot struct {
	Identity model.Identity
	Loading  bool
	Status   model.Status
}

// Auth tracks the current identity and the outcome of the last login or
// registration attempt.
type Auth struct {
	users store.UserStore
	loc   i18n.Localizer

	mu       sync.Mutex
	identity model.Identity
	inflight int
	status   model.Status
}

// NewAuth returns an anonymous auth container. A nil loc uses English.
func NewAuth(users store.UserStore, loc i18n.Localizer) *Auth {
	return &Auth{
		users:    users,
		loc:      defaultLocalizer(loc),
		identity: model.Anonymous{},
		status:   model.Ok{},
	}
}

// Snapshot returns a copy of the current state.
func (a *Auth) Snapshot() AuthSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return AuthSnapshot{
		Identity: a.identity,
		Loading:  a.inflight > 0,
		Status:   a.status,
	}
}

// begin marks a call in flight and clears any earlier failure.
func (a *Auth) begin() {
	a.mu.Lock()
	a.inflight++
	a.status = model.Ok{}
	a.mu.Unlock()
}

// end finishes a call started with begin and applies mutate under the lock.
func (a *Auth) end(mutate func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.inflight--
	if mutate != nil {
		mutate()
	}
}

func (a *Auth) fail(code apperr.Code, cause error) error {
	status, err := failure(a.loc, code, cause)
	a.end(func() { a.status = status })
	return err
}

// Login checks the credentials against the stored user row. Any failure,
// including a query error, is reported as invalid credentials.
func (a *Auth) Login(ctx context.Context, username, password string) (int64, error) {
	a.begin()

	u, err := a.users.GetUserByUsername(ctx, username)
	if ctxErr := ctx.Err(); ctxErr != nil {
		a.end(nil)
		return 0, ctxErr
	}
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("auth: login lookup for %q: %v", username, err)
		}
		return 0, a.fail(apperr.CodeInvalidCredentials, err)
	}
	if u.Password != password {
		return 0, a.fail(apperr.CodeInvalidCredentials, nil)
	}

	a.end(func() {
		a.identity = model.Authenticated{UserID: u.ID}
		a.status = model.Ok{}
	})
	return u.ID, nil
}

// Register creates an account unless the username is already taken.
func (a *Auth) Register(ctx context.Context, username, password string) error {
	a.begin()

	_, err := a.users.GetUserByUsername(ctx, username)
	if ctxErr := ctx.Err(); ctxErr != nil {
		a.end(nil)
		return ctxErr
	}
	switch {
	case err == nil:
		return a.fail(apperr.CodeUsernameTaken, nil)
	case !errors.Is(err, store.ErrNotFound):
		log.Printf("auth: register lookup for %q: %v", username, err)
		return a.fail(apperr.CodeUnknown, err)
	}

	if _, err := a.users.CreateUser(ctx, username, password); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return a.fail(apperr.CodeUsernameTaken, err)
		}
		log.Printf("auth: creating user %q: %v", username, err)
		return a.fail(apperr.CodeUnknown, err)
	}

	a.end(func() { a.status = model.Ok{} })
	return nil
}

// Restore marks userID as logged in without a backend call. It is used when
// a persisted session is found at startup.
func (a *Auth) Restore(userID int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.identity = model.Authenticated{UserID: userID}
}

// SetError sets the status to msg, or clears it when msg is empty.
func (a *Auth) SetError(msg string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.status = statusFromMessage(msg)
}

// Logout forgets the current identity.
func (a *Auth) Logout() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.identity = model.Anonymous{}
	a.status = model.Ok{}
}
