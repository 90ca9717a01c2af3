package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid login id or pin")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenExpired       = errors.New("token expired")
)
