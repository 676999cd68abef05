package models

// PlayerStatus is the resolution state of a player within an auction.
// An empty status means the player has not been put up yet and is treated
// the same as Available.
type PlayerStatus string

const (
	PlayerAvailable PlayerStatus = "Available"
	PlayerSold      PlayerStatus = "Sold"
	PlayerUnsold    PlayerStatus = "Unsold"
)

// Player represents a cricket player in an auction. Identity is always
// PlayerID, never the name: multiple players can share a name.
type Player struct {
	PlayerID   string       `json:"playerId"`
	PlayerName string       `json:"playerName"`
	BasePrice  int          `json:"basePrice"`
	SoldPrice  *int         `json:"soldPrice,omitempty"`
	Status     PlayerStatus `json:"status,omitempty"`
	Franchise  string       `json:"franchise,omitempty"`
	Age        *int         `json:"age,omitempty"`
	Country    string       `json:"country,omitempty"`
	Role       string       `json:"role,omitempty"`
	Image      string       `json:"image,omitempty"`
}

// CurrentPrice returns the running bid for the player, falling back to the
// base price when no bid has been recorded yet.
func (p Player) CurrentPrice() int {
	if p.SoldPrice != nil {
		return *p.SoldPrice
	}
	return p.BasePrice
}

// Open reports whether the player can still be bid on in the unsold-only
// view: Unsold, Available, or no status yet.
func (p Player) Open() bool {
	return p.Status == PlayerUnsold || p.Status == PlayerAvailable || p.Status == ""
}
