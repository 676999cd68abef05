package live

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/premsagar/auctionlive/clients"
	"github.com/premsagar/auctionlive/internal/channel"
	"github.com/premsagar/auctionlive/internal/models"
)

// AdjustPrice moves the running price for a player one step in the given
// direction: the mirror is updated immediately, the change is broadcast,
// and the REST confirmation is debounced so rapid repeats collapse into
// one call carrying the final value. Organizer only.
func (v *View) AdjustPrice(playerID string, direction Direction) error {
	v.mu.Lock()
	if v.role != RoleOrganizer {
		v.mu.Unlock()
		return ErrNotOrganizer
	}
	i := v.indexOfLocked(playerID)
	if i < 0 {
		v.mu.Unlock()
		return ErrPlayerNotFound
	}
	p := v.players[i]
	newPrice := NextPrice(p.CurrentPrice(), p.BasePrice, direction)
	v.players[i].SoldPrice = &newPrice
	v.mu.Unlock()

	v.emit(channel.EventUpdatePrice, channel.PriceUpdatePayload{
		AuctionID: v.auctionID,
		PlayerID:  playerID,
		Action:    string(direction),
		NewPrice:  newPrice,
	})

	v.debounce.Schedule(v.ctx, clients.PriceUpdateRequest{
		PlayerID: playerID,
		Action:   string(direction),
		NewPrice: newPrice,
	})
	return nil
}

// confirmPrice is the debounce callback: it sends the settled price to the
// server and reconciles the mirror with the authoritative response. A
// failed confirmation keeps the optimistic value; the organizer retries by
// adjusting again.
func (v *View) confirmPrice(ctx context.Context, req clients.PriceUpdateRequest) {
	player, err := v.backend.UpdatePrice(ctx, v.auctionID, req)
	if err != nil {
		log.Error().
			Err(err).
			Str("player_id", req.PlayerID).
			Int("new_price", req.NewPrice).
			Msg("price confirmation failed, keeping optimistic value")
		return
	}
	// Server value wins over the optimistic one.
	v.applyPriceUpdate(player.PlayerID, player.CurrentPrice())
}

// Sell assigns the current bid to a franchise: broadcast first, then REST
// confirmation, then advance to the next player. Organizer only.
func (v *View) Sell(ctx context.Context, playerID, franchise string) error {
	v.mu.Lock()
	if v.role != RoleOrganizer {
		v.mu.Unlock()
		return ErrNotOrganizer
	}
	i := v.indexOfLocked(playerID)
	if i < 0 {
		v.mu.Unlock()
		return ErrPlayerNotFound
	}
	soldPrice := v.players[i].CurrentPrice()
	v.mu.Unlock()

	v.emit(channel.EventSellPlayer, channel.PlayerSoldPayload{
		AuctionID: v.auctionID,
		PlayerID:  playerID,
		Franchise: franchise,
		SoldPrice: soldPrice,
	})

	updated, err := v.backend.SellPlayer(ctx, v.auctionID, clients.SellPlayerRequest{
		PlayerID:  playerID,
		Franchise: franchise,
		SoldPrice: soldPrice,
	})
	if err != nil {
		log.Error().
			Err(err).
			Str("player_id", playerID).
			Str("franchise", franchise).
			Msg("sell confirmation failed")
		return fmt.Errorf("sell player %s: %w", playerID, err)
	}

	v.mu.Lock()
	if i := v.indexOfLocked(updated.PlayerID); i >= 0 {
		v.players[i].Status = models.PlayerSold
		v.players[i].Franchise = franchise
		if updated.SoldPrice != nil {
			price := *updated.SoldPrice
			v.players[i].SoldPrice = &price
		}
	}
	v.clearHandsForLocked(playerID)
	v.mu.Unlock()

	log.Info().
		Str("player_id", playerID).
		Str("franchise", franchise).
		Int("sold_price", soldPrice).
		Msg("player sold")

	v.refreshHistoryAsync()
	return v.Next()
}

// MarkUnsold resolves the current player as unsold, resetting its price to
// base, then advances. Organizer only.
func (v *View) MarkUnsold(ctx context.Context, playerID string) error {
	v.mu.Lock()
	if v.role != RoleOrganizer {
		v.mu.Unlock()
		return ErrNotOrganizer
	}
	if v.indexOfLocked(playerID) < 0 {
		v.mu.Unlock()
		return ErrPlayerNotFound
	}
	v.mu.Unlock()

	v.emit(channel.EventMarkUnsold, channel.PlayerUnsoldPayload{
		AuctionID: v.auctionID,
		PlayerID:  playerID,
	})

	updated, err := v.backend.MarkUnsold(ctx, v.auctionID, clients.MarkUnsoldRequest{PlayerID: playerID})
	if err != nil {
		log.Error().Err(err).Str("player_id", playerID).Msg("unsold confirmation failed")
		return fmt.Errorf("mark player %s unsold: %w", playerID, err)
	}

	v.mu.Lock()
	if i := v.indexOfLocked(updated.PlayerID); i >= 0 {
		price := updated.BasePrice
		v.players[i].Status = models.PlayerUnsold
		v.players[i].Franchise = ""
		v.players[i].SoldPrice = &price
	}
	v.clearHandsForLocked(playerID)
	v.mu.Unlock()

	log.Info().
		Str("player_id", playerID).
		Int("base_price", updated.BasePrice).
		Msg("player marked unsold")

	v.refreshHistoryAsync()
	return v.Next()
}

// ToggleHandRaise flips this session's team participation in the raised
// hands for a player. Bidder only.
func (v *View) ToggleHandRaise(playerID string) error {
	v.mu.Lock()
	if v.role != RoleBidder {
		v.mu.Unlock()
		return ErrNotBidder
	}
	team, ok := v.auction.TeamByEmail(v.session.Email)
	if !ok {
		v.mu.Unlock()
		return ErrNoTeam
	}

	raised := v.handRaisedLocked(team.TeamName, playerID)
	if raised {
		v.removeHandLocked(team.TeamName, playerID)
	} else {
		v.addHandLocked(team.TeamName, playerID)
	}
	v.mu.Unlock()

	payload := channel.HandPayload{
		AuctionID: v.auctionID,
		PlayerID:  playerID,
		Team:      team.TeamName,
	}
	if raised {
		v.emit(channel.EventLowerHand, payload)
	} else {
		v.emit(channel.EventRaiseHand, payload)
	}
	return nil
}

// Next advances to the next player in the filtered list, wrapping around.
// Organizer only.
func (v *View) Next() error {
	return v.navigate(1)
}

// Previous retreats to the previous player, wrapping around. Organizer only.
func (v *View) Previous() error {
	return v.navigate(-1)
}

func (v *View) navigate(step int) error {
	v.mu.Lock()
	if v.role != RoleOrganizer {
		v.mu.Unlock()
		return ErrNotOrganizer
	}
	filtered := v.filteredLocked()
	if len(filtered) == 0 {
		v.mu.Unlock()
		return nil
	}

	n := len(filtered)
	v.currentIndex = ((v.currentIndex+step)%n + n) % n
	v.raisedHands = nil
	newIndex := v.currentIndex
	showUnsoldOnly := v.showUnsoldOnly
	v.mu.Unlock()

	// Broadcast so passive viewers stay in sync.
	v.emit(channel.EventChangePlayer, channel.PlayerChangedPayload{
		AuctionID:      v.auctionID,
		NewIndex:       newIndex,
		ShowUnsoldOnly: showUnsoldOnly,
	})
	return nil
}
