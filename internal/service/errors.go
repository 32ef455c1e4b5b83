package service

import "errors"

// Domain errors returned by the services. The HTTP layer maps each of them to
// a status code; anything else is reported as an internal error.
var (
	// ErrAuthentication is returned by Login for an unknown email or a wrong
	// password alike, so callers cannot tell which one it was.
	ErrAuthentication = errors.New("unable to login")

	// ErrInvalidToken is returned when a session token is malformed, has a bad
	// signature, a foreign issuer or is expired.
	ErrInvalidToken = errors.New("invalid session token")

	// ErrUnknownSession is returned when a well-formed token is no longer in
	// its user's token set (logged out, revoked or the account is gone).
	ErrUnknownSession = errors.New("session is not active")

	// ErrNotFound is returned for missing resources and for tasks owned by
	// someone else.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned when an email is already registered.
	ErrDuplicateEmail = errors.New("email is already in use")

	// ErrInvalidAttachment is returned for avatars that are not a decodable
	// JPEG or PNG within the size limit.
	ErrInvalidAttachment = errors.New("please upload a jpg, jpeg or png image within the size limit")

	ErrTokenCreationFailed = errors.New("session token creation failed")
)
