package live

import (
	"sort"

	"github.com/premsagar/auctionlive/internal/models"
)

// PurseSummary is one franchise's budget position, computed locally from
// the mirror. The server-authoritative variant is available via the
// franchise purse endpoint.
type PurseSummary struct {
	TeamName    string
	Spent       int
	PlayerCount int
	Budget      int
	Remaining   int
}

// Purses summarises every team's spend from the sold players in the list,
// sorted by remaining purse, highest first.
func Purses(auction models.Auction, players []models.Player, budgetPerTeam int) []PurseSummary {
	byTeam := make(map[string]*PurseSummary, len(auction.Teams))
	summaries := make([]PurseSummary, 0, len(auction.Teams))
	for _, t := range auction.Teams {
		byTeam[t.TeamName] = &PurseSummary{TeamName: t.TeamName, Budget: budgetPerTeam}
	}

	for _, p := range players {
		if p.Status != models.PlayerSold {
			continue
		}
		s, ok := byTeam[p.Franchise]
		if !ok {
			continue
		}
		s.Spent += p.CurrentPrice()
		s.PlayerCount++
	}

	for _, t := range auction.Teams {
		s := byTeam[t.TeamName]
		s.Remaining = s.Budget - s.Spent
		summaries = append(summaries, *s)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Remaining > summaries[j].Remaining
	})
	return summaries
}

// Purses returns the budget summaries for the teams in the loaded auction.
func (v *View) Purses(budgetPerTeam int) []PurseSummary {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Purses(v.auction, v.players, budgetPerTeam)
}
