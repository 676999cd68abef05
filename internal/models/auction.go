package models

// AuctionStatus describes the lifecycle state of an auction.
type AuctionStatus string

const (
	AuctionUpcoming  AuctionStatus = "upcoming"
	AuctionOngoing   AuctionStatus = "ongoing"
	AuctionCompleted AuctionStatus = "completed"
)

// Auction is the client-side copy of an auction. It is created server-side;
// the client holds a read-mostly view of it for the duration of a session.
type Auction struct {
	ID          string        `json:"_id"`
	AuctionName string        `json:"auctionName"`
	CreatedBy   string        `json:"createdby"`
	Status      AuctionStatus `json:"status"`
	Teams       []Team        `json:"teams"`
}

// Team is a franchise participating in an auction.
type Team struct {
	TeamName string `json:"teamname"`
	Email    string `json:"email"`
}

// TeamByEmail returns the team whose contact email matches, if any.
func (a Auction) TeamByEmail(email string) (Team, bool) {
	for _, t := range a.Teams {
		if t.Email == email {
			return t, true
		}
	}
	return Team{}, false
}
