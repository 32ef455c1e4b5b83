package adapter

import "errors"

var (
	ErrUnauthorized = errors.New("mail api rejected credentials")
	ErrRejected     = errors.New("mail api rejected message")
	ErrUnavailable  = errors.New("mail api unavailable")
)
