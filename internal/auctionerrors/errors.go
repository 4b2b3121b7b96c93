package auctionerrors

import (
	"errors"
	"fmt"
)

// Repository-level errors
var (
	ErrAuctionNotFound = errors.New("auction not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailTaken      = errors.New("email already registered")
)

// Business logic errors
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotEligible        = errors.New("account not approved for bidding")
	ErrAuctionClosed      = errors.New("auction has ended")
	ErrBidTooLow          = errors.New("bid amount below required minimum")
	ErrNotAllowed         = errors.New("operation requires admin role")
	ErrNoWinner           = errors.New("auction has no winner")
)

// BidTooLowError carries the computed minimum next bid so callers can show the
// user what to offer instead. It matches ErrBidTooLow under errors.Is.
type BidTooLowError struct {
	Minimum float64
}

func (e *BidTooLowError) Error() string {
	return fmt.Sprintf("bid amount below required minimum of %.2f", e.Minimum)
}

func (e *BidTooLowError) Is(target error) bool {
	return target == ErrBidTooLow
}
