package model

// Identity is either Anonymous or Authenticated.
type Identity interface {
	isIdentity()
}

// Anonymous means nobody is logged in.
type Anonymous struct{}

// Authenticated carries the id of the logged-in user.
type Authenticated struct {
	UserID int64
}

func (Anonymous) isIdentity()     {}
func (Authenticated) isIdentity() {}

// UserIDOf returns the user id when id is Authenticated.
func UserIDOf(id Identity) (int64, bool) {
	if a, ok := id.(Authenticated); ok {
		return a.UserID, true
	}
	return 0, false
}

// Status is either Ok or Failed. A Failed status is shown to the user once
// and then cleared.
type Status interface {
	isStatus()
}

// Ok is the status of a container with nothing to report.
type Ok struct{}

// Failed carries a user-facing message and the code it was rendered from.
type Failed struct {
	Code    string
	Message string
}

func (Ok) isStatus()     {}
func (Failed) isStatus() {}

// FailureOf returns the Failed value when s is a failure.
func FailureOf(s Status) (Failed, bool) {
	f, ok := s.(Failed)
	return f, ok
}
