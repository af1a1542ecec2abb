package user

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserEmailExists    = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid or missing access token")
	ErrUserClaimMissing   = errors.New("user_id not found in token")
	ErrUserClaimMalformed = errors.New("user_id in token is malformed")
)
