package domain

import "errors"

// Common domain errors
var (
	// ErrNotFound is returned when a requested resource is not found or is
	// not owned by the caller. The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrValidation is returned when input validation fails
	ErrValidation = errors.New("validation error")
	// ErrUnauthorized is returned when a credential is missing, invalid or expired
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidAmount is returned for zero, negative or non-numeric amounts
	ErrInvalidAmount = errors.New("amount must be a positive number")
	// ErrInsufficientFunds is returned when a wallet cannot cover a debit
	ErrInsufficientFunds = errors.New("insufficient wallet balance")
	// ErrShareLinkInvalid is returned for unknown, disabled or deleted share links
	ErrShareLinkInvalid = errors.New("share link is invalid or disabled")
	// ErrRateLimited is returned when a caller exceeds its request window
	ErrRateLimited = errors.New("too many requests, please try again later")
	// ErrMarketDataUnavailable hides upstream market-data failures from clients
	ErrMarketDataUnavailable = errors.New("market data is currently unavailable")
)
