package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/premsagar/auctionlive/internal/models"
)

// AuctionLive is the REST client for the auction backend's live endpoints.
type AuctionLive struct {
	*BaseClient
}

// NewAuctionLive creates a client against the given base URL
// (e.g. "https://host/api").
func NewAuctionLive(baseURL string) *AuctionLive {
	client := &AuctionLive{
		BaseClient: NewBaseClient(baseURL),
	}
	client.SetHeader(contentTypeHeader, jsonContentType)
	return client
}

// PriceUpdateRequest confirms a debounced price adjustment.
type PriceUpdateRequest struct {
	PlayerID string `json:"playerId"`
	Action   string `json:"action"`
	NewPrice int    `json:"newPrice"`
}

// SellPlayerRequest confirms a sale to a franchise.
type SellPlayerRequest struct {
	PlayerID  string `json:"playerId"`
	Franchise string `json:"franchise"`
	SoldPrice int    `json:"soldPrice"`
}

// MarkUnsoldRequest confirms an unsold marking.
type MarkUnsoldRequest struct {
	PlayerID string `json:"playerId"`
}

// FranchisePurse is the server-computed budget summary for one franchise.
type FranchisePurse struct {
	TotalSpent     int             `json:"totalSpent"`
	RemainingPurse int             `json:"remainingPurse"`
	BudgetPerTeam  int             `json:"budgetPerTeam"`
	Players        []models.Player `json:"players"`
}

// Auction fetches auction metadata (name, creator, teams).
func (c *AuctionLive) Auction(ctx context.Context, auctionID string) (models.Auction, error) {
	var auction models.Auction
	if err := c.getJSON(ctx, fmt.Sprintf(auctionPath, url.PathEscape(auctionID)), &auction); err != nil {
		return models.Auction{}, err
	}
	return auction, nil
}

// Players fetches the full ordered player list for an auction.
func (c *AuctionLive) Players(ctx context.Context, auctionID string) ([]models.Player, error) {
	var players []models.Player
	if err := c.getJSON(ctx, fmt.Sprintf(playersPath, url.PathEscape(auctionID)), &players); err != nil {
		return nil, err
	}
	return players, nil
}

// BiddingHistory fetches the latest window of resolved sales.
func (c *AuctionLive) BiddingHistory(ctx context.Context, auctionID string) ([]models.BiddingHistoryEntry, error) {
	var entries []models.BiddingHistoryEntry
	if err := c.getJSON(ctx, fmt.Sprintf(biddingHistoryPath, url.PathEscape(auctionID)), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// UpdatePrice sends the settled price for a player and returns the
// server-authoritative player record.
func (c *AuctionLive) UpdatePrice(ctx context.Context, auctionID string, req PriceUpdateRequest) (models.Player, error) {
	return c.postPlayer(ctx, fmt.Sprintf(priceUpdatePath, url.PathEscape(auctionID)), req)
}

// SellPlayer confirms a sale and returns the updated player.
func (c *AuctionLive) SellPlayer(ctx context.Context, auctionID string, req SellPlayerRequest) (models.Player, error) {
	return c.postPlayer(ctx, fmt.Sprintf(sellPlayerPath, url.PathEscape(auctionID)), req)
}

// MarkUnsold confirms an unsold marking; the returned player carries the
// reset base price.
func (c *AuctionLive) MarkUnsold(ctx context.Context, auctionID string, req MarkUnsoldRequest) (models.Player, error) {
	return c.postPlayer(ctx, fmt.Sprintf(markUnsoldPath, url.PathEscape(auctionID)), req)
}

// Purse fetches the server-computed purse summary for a franchise. The
// backend keys franchises by team name with whitespace stripped.
func (c *AuctionLive) Purse(ctx context.Context, teamName, auctionID string) (FranchisePurse, error) {
	key := strings.ReplaceAll(teamName, " ", "")
	var purse FranchisePurse
	endpoint := fmt.Sprintf(franchisePursePath, url.PathEscape(key), url.QueryEscape(auctionID))
	if err := c.getJSON(ctx, endpoint, &purse); err != nil {
		return FranchisePurse{}, err
	}
	return purse, nil
}

func (c *AuctionLive) getJSON(ctx context.Context, endpoint string, out any) error {
	body, err := c.Get(ctx, endpoint)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
	}
	return nil
}

func (c *AuctionLive) postPlayer(ctx context.Context, endpoint string, req any) (models.Player, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return models.Player{}, fmt.Errorf("failed to encode request: %w", err)
	}

	body, err := c.Post(ctx, endpoint, bytes.NewReader(payload))
	if err != nil {
		return models.Player{}, err
	}

	var player models.Player
	if err := json.Unmarshal(body, &player); err != nil {
		return models.Player{}, fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
	}
	return player, nil
}
