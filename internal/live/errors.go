package live

import "errors"

// Errors returned by view operations.
var (
	ErrNoAuctionID    = errors.New("no auction id")
	ErrNotOrganizer   = errors.New("only the organizer may perform this action")
	ErrNotBidder      = errors.New("only a bidder may raise a hand")
	ErrPlayerNotFound = errors.New("player not found")
	ErrNoTeam         = errors.New("no team found for this session")
)
