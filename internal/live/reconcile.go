package live

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/premsagar/auctionlive/internal/channel"
	"github.com/premsagar/auctionlive/internal/models"
)

// Run consumes inbound channel events until the stream closes or the
// context is cancelled. It is the only reader of the event stream.
func (v *View) Run(ctx context.Context, events <-chan channel.Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-v.ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				log.Info().Str("auction_id", v.auctionID).Msg("event stream closed")
				return nil
			}
			v.Apply(event)
		}
	}
}

// Apply folds one inbound event into the mirror. Every mutation keys on
// playerId and applies the last received value, so redelivery and
// reordering against REST confirmations are harmless.
func (v *View) Apply(event channel.Event) {
	payload, err := channel.ParsePayload(event)
	if err != nil {
		log.Warn().
			Err(err).
			Str("event_type", string(event.Type)).
			Msg("dropping unparseable event")
		return
	}

	switch event.Type {
	case channel.EventPriceUpdate:
		p := payload.(channel.PriceUpdatePayload)
		v.applyPriceUpdate(p.PlayerID, p.NewPrice)

	case channel.EventPlayerChanged:
		p := payload.(channel.PlayerChangedPayload)
		v.applyPlayerChanged(p.NewIndex, p.ShowUnsoldOnly)

	case channel.EventHandRaised:
		p := payload.(channel.HandPayload)
		v.applyHandRaised(p.TeamNameOrTeam(), p.PlayerID)

	case channel.EventHandLowered:
		p := payload.(channel.HandPayload)
		v.applyHandLowered(p.TeamNameOrTeam(), p.PlayerID)

	case channel.EventPlayerSold:
		p := payload.(channel.PlayerSoldPayload)
		v.applyPlayerSold(p.PlayerID, p.Franchise)

	case channel.EventPlayerUnsold:
		p := payload.(channel.PlayerUnsoldPayload)
		v.applyPlayerUnsold(p.PlayerID, p.BasePrice)

	default:
		log.Debug().Str("event_type", string(event.Type)).Msg("ignoring event")
	}
}

// applyPriceUpdate overwrites the running price for the player; no-op when
// the player is absent.
func (v *View) applyPriceUpdate(playerID string, newPrice int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	i := v.indexOfLocked(playerID)
	if i < 0 {
		return
	}
	price := newPrice
	v.players[i].SoldPrice = &price
}

// applyPlayerChanged adopts the organizer's navigation state verbatim.
// The organizer is the sole source of these broadcasts, so an organizer
// client drops them defensively.
func (v *View) applyPlayerChanged(newIndex int, showUnsoldOnly bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.role == RoleOrganizer {
		log.Debug().Int("new_index", newIndex).Msg("organizer ignoring playerChanged broadcast")
		return
	}
	v.currentIndex = newIndex
	v.showUnsoldOnly = showUnsoldOnly
	v.raisedHands = nil
}

func (v *View) applyHandRaised(teamName, playerID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.addHandLocked(teamName, playerID)
}

func (v *View) applyHandLowered(teamName, playerID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.removeHandLocked(teamName, playerID)
}

// applyPlayerSold marks the player sold to the franchise, drops raised
// hands for it, and refreshes bidding history in the background.
func (v *View) applyPlayerSold(playerID, franchise string) {
	v.mu.Lock()
	if i := v.indexOfLocked(playerID); i >= 0 {
		v.players[i].Status = models.PlayerSold
		v.players[i].Franchise = franchise
	}
	v.clearHandsForLocked(playerID)
	v.mu.Unlock()

	v.refreshHistoryAsync()
}

// applyPlayerUnsold resets the player for the next round: Unsold status, no
// franchise, price back to base.
func (v *View) applyPlayerUnsold(playerID string, basePrice int) {
	v.mu.Lock()
	if i := v.indexOfLocked(playerID); i >= 0 {
		price := basePrice
		if price <= 0 {
			// Broadcast omitted the base price; use the mirror's copy.
			price = v.players[i].BasePrice
		}
		v.players[i].Status = models.PlayerUnsold
		v.players[i].Franchise = ""
		v.players[i].SoldPrice = &price
	}
	v.clearHandsForLocked(playerID)
	v.mu.Unlock()

	v.refreshHistoryAsync()
}
