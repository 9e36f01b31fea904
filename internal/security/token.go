package security

import "github.com/google/uuid"

// NewToken mints an opaque session token. Tokens carry no structure and
// are only ever used as lookup keys against the user table.
func NewToken() string {
	return uuid.New().String()
}
