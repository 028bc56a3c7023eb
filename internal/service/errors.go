package service

import "errors"

// Closed set of failures the authentication engine can signal. The HTTP
// boundary discriminates these with errors.Is, never by message text.
var (
	ErrInvalidIdentifier  = errors.New("identifier is not a valid address")
	ErrInvalidCredential  = errors.New("invalid credential")
	ErrAccountExists      = errors.New("account already exists")
	ErrAccountNotFound    = errors.New("account not found")
	ErrChallengeNotFound  = errors.New("no outstanding challenge")
	ErrChallengeExpired   = errors.New("challenge expired")
	ErrTooManyAttempts    = errors.New("challenge attempts exhausted")
	ErrCodeMismatch       = errors.New("code does not match")
	ErrAccountNotVerified = errors.New("account not verified")
)
