package models

import "time"

// UnsoldTeamName is the sentinel teamName used by the backend in bidding
// history entries for players that went unsold.
const UnsoldTeamName = "UNSOLD"

// BiddingHistoryEntry is one resolved sale (or unsold marking) in the
// server-owned, append-only bidding history.
type BiddingHistoryEntry struct {
	PlayerName string    `json:"playerName"`
	TeamName   string    `json:"teamName"`
	BidAmount  int       `json:"bidAmount"`
	Timestamp  time.Time `json:"timestamp"`
}

// Unsold reports whether the entry records an unsold marking rather than a sale.
func (e BiddingHistoryEntry) Unsold() bool {
	return e.TeamName == UnsoldTeamName
}

// RaisedHand marks a team's active interest in the currently displayed
// player. Ephemeral: cleared whenever the displayed player changes or is
// resolved.
type RaisedHand struct {
	TeamName string `json:"teamName"`
	PlayerID string `json:"playerId"`
}
