package channel

import (
	"encoding/json"
	"fmt"
)

// EventType identifies a real-time event on the auction channel.
type EventType string

// Outbound events, emitted by this client.
const (
	EventUpdatePrice  EventType = "updatePrice"
	EventSellPlayer   EventType = "sellPlayer"
	EventMarkUnsold   EventType = "markUnsold"
	EventRaiseHand    EventType = "raiseHand"
	EventLowerHand    EventType = "lowerHand"
	EventChangePlayer EventType = "changePlayer"
)

// Inbound events, broadcast by the backend.
const (
	EventPriceUpdate   EventType = "priceUpdate"
	EventPlayerChanged EventType = "playerChanged"
	EventHandRaised    EventType = "handRaised"
	EventHandLowered   EventType = "handLowered"
	EventPlayerSold    EventType = "playerSold"
	EventPlayerUnsold  EventType = "playerUnsold"
)

// Event is the wire envelope for all channel traffic.
type Event struct {
	Type EventType       `json:"event"`
	Data json.RawMessage `json:"data"`
}

// PriceUpdatePayload carries a running-bid change for one player.
type PriceUpdatePayload struct {
	AuctionID string `json:"auctionId,omitempty"`
	PlayerID  string `json:"playerId"`
	Action    string `json:"action,omitempty"`
	NewPrice  int    `json:"newPrice"`
}

// PlayerChangedPayload carries the organizer's navigation state.
type PlayerChangedPayload struct {
	AuctionID      string `json:"auctionId,omitempty"`
	NewIndex       int    `json:"newIndex"`
	ShowUnsoldOnly bool   `json:"showUnsoldOnly"`
}

// HandPayload carries a raise/lower of one team's hand for one player.
// Outbound emits name the team as "team"; inbound broadcasts use "teamName".
type HandPayload struct {
	AuctionID string `json:"auctionId,omitempty"`
	PlayerID  string `json:"playerId"`
	TeamName  string `json:"teamName,omitempty"`
	Team      string `json:"team,omitempty"`
}

// TeamNameOrTeam returns whichever of the two team fields is set.
func (p HandPayload) TeamNameOrTeam() string {
	if p.TeamName != "" {
		return p.TeamName
	}
	return p.Team
}

// PlayerSoldPayload announces a resolved sale.
type PlayerSoldPayload struct {
	AuctionID string `json:"auctionId,omitempty"`
	PlayerID  string `json:"playerId"`
	Franchise string `json:"franchise"`
	SoldPrice int    `json:"soldPrice"`
}

// PlayerUnsoldPayload announces an unsold marking with the reset base price.
type PlayerUnsoldPayload struct {
	AuctionID string `json:"auctionId,omitempty"`
	PlayerID  string `json:"playerId"`
	BasePrice int    `json:"basePrice"`
}

// ParsePayload parses an event's data into the payload struct for its type.
func ParsePayload(event Event) (interface{}, error) {
	switch event.Type {
	case EventPriceUpdate, EventUpdatePrice:
		var payload PriceUpdatePayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, fmt.Errorf("unmarshal %s payload: %w", event.Type, err)
		}
		return payload, nil

	case EventPlayerChanged, EventChangePlayer:
		var payload PlayerChangedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, fmt.Errorf("unmarshal %s payload: %w", event.Type, err)
		}
		return payload, nil

	case EventHandRaised, EventHandLowered, EventRaiseHand, EventLowerHand:
		var payload HandPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, fmt.Errorf("unmarshal %s payload: %w", event.Type, err)
		}
		return payload, nil

	case EventPlayerSold, EventSellPlayer:
		var payload PlayerSoldPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, fmt.Errorf("unmarshal %s payload: %w", event.Type, err)
		}
		return payload, nil

	case EventPlayerUnsold, EventMarkUnsold:
		var payload PlayerUnsoldPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, fmt.Errorf("unmarshal %s payload: %w", event.Type, err)
		}
		return payload, nil

	default:
		return nil, fmt.Errorf("unknown event type: %s", event.Type)
	}
}
