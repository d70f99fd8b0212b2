package marketerrors

import "errors"

// Gateway-level errors, one per failure class
var (
	ErrServerRejected = errors.New("server rejected the request")
	ErrConnectivity   = errors.New("no response received")
	ErrUnexpected     = errors.New("unexpected request failure")
)

// Domain errors
var (
	ErrAuctionNotFound = errors.New("auction not found")
	ErrAuctionEnded    = errors.New("auction has ended")
	ErrOwnAuction      = errors.New("cannot bid on own auction")
	ErrBidNotLower     = errors.New("bid must be lower than the current bid")
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotProvider     = errors.New("only service providers can create auctions")
	ErrUnauthorized    = errors.New("authentication required")
	ErrUsernameTaken   = errors.New("username already exists")
	ErrEmailTaken      = errors.New("email already exists")
	ErrBadCredentials  = errors.New("invalid username or password")
)
