package auth

import "errors"

// Authentication errors
var (
	// ErrNoCredentials means the request carried no usable Authorization header
	ErrNoCredentials = errors.New("authentication credentials were not provided")

	// ErrInvalidCredentials means a username/password pair did not match
	ErrInvalidCredentials = errors.New("invalid username/password")

	// ErrInvalidToken means a bearer token failed verification
	ErrInvalidToken = errors.New("invalid token")
)

// IsAuthError reports whether err is a client credential failure rather
// than a storage error.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrNoCredentials) ||
		errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrInvalidToken)
}
