package domain

import "net/http"

// Error is a domain failure carrying the HTTP status it maps to.
// The response writer in the api package is the only consumer of Status;
// services raise these and never touch the transport.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	// The wire contract reports a duplicate username as 400, not 409,
	// and one message for both unknown user and wrong password.
	ErrUsernameTaken      = &Error{Status: http.StatusBadRequest, Message: "Username already exists"}
	ErrInvalidCredentials = &Error{Status: http.StatusUnauthorized, Message: "Username or password is invalid"}
	ErrUnauthorized       = &Error{Status: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrContactNotFound    = &Error{Status: http.StatusNotFound, Message: "Contact is not found"}
)
