package biddingerrors

import "errors"

// Repository-level errors
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserExists           = errors.New("user already exists")
	ErrPropertyNotFound     = errors.New("property not found")
	ErrAuctionNotFound      = errors.New("auction not found")
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	ErrFavoriteExists       = errors.New("property already in favorites")
	ErrFavoriteNotFound     = errors.New("property not in favorites")
)

// auth errors
var (
	ErrInvalidCredentials = errors.New("no active account found with the given credentials")
	ErrInvalidToken       = errors.New("token is invalid or expired")
	ErrForbidden          = errors.New("you do not have permission to perform this action")
)

// business logic errors
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidBid       = errors.New("invalid bid")
	ErrBidTooLow        = errors.New("bid amount too low")
	ErrAuctionNotActive = errors.New("auction is not active")
	ErrOrganizerBid     = errors.New("organizer cannot bid on own auction")
)
