package live

import "github.com/premsagar/auctionlive/internal/models"

// Role is the session's authority level within one auction, derived from
// auction data on load and never stored.
type Role string

const (
	// RoleOrganizer is the auction creator: sole authority for navigation,
	// pricing and sale resolution.
	RoleOrganizer Role = "organizer"
	// RoleBidder belongs to a team in the auction and may raise/lower a hand.
	RoleBidder Role = "bidder"
	// RoleViewer is any other connected client, read-only.
	RoleViewer Role = "viewer"
)

// Session identifies the logged-in user for the duration of a viewing
// session. It is passed explicitly rather than read from ambient state so
// the view stays testable in isolation.
type Session struct {
	Email string
}

// DeriveRole computes the session role from the auction's creator and teams.
func DeriveRole(auction models.Auction, email string) Role {
	if auction.CreatedBy == email {
		return RoleOrganizer
	}
	if _, ok := auction.TeamByEmail(email); ok {
		return RoleBidder
	}
	return RoleViewer
}
