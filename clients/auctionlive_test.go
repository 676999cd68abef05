package clients

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/premsagar/auctionlive/internal/models"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /auctionlive/auc-1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.Auction{
			ID:          "auc-1",
			AuctionName: "Summer League",
			CreatedBy:   "organizer@example.com",
			Teams:       []models.Team{{TeamName: "Royal Strikers", Email: "strikers@example.com"}},
		})
	})
	mux.HandleFunc("GET /auctionlive/auc-1/players", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.Player{
			{PlayerID: "p1", PlayerName: "A Sharma", BasePrice: 100},
		})
	})
	mux.HandleFunc("GET /auctionlive/biddinghistory/auc-1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.BiddingHistoryEntry{
			{PlayerName: "A Sharma", TeamName: "Royal Strikers", BidAmount: 150},
		})
	})
	mux.HandleFunc("POST /auctionlive/auc-1/players/price", func(w http.ResponseWriter, r *http.Request) {
		var req PriceUpdateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		price := req.NewPrice
		json.NewEncoder(w).Encode(models.Player{PlayerID: req.PlayerID, SoldPrice: &price})
	})
	mux.HandleFunc("POST /auctionlive/auc-1/players/sell", func(w http.ResponseWriter, r *http.Request) {
		var req SellPlayerRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		price := req.SoldPrice
		json.NewEncoder(w).Encode(models.Player{
			PlayerID:  req.PlayerID,
			Status:    models.PlayerSold,
			Franchise: req.Franchise,
			SoldPrice: &price,
		})
	})
	mux.HandleFunc("POST /auctionlive/auc-1/players/unsold", func(w http.ResponseWriter, r *http.Request) {
		var req MarkUnsoldRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		json.NewEncoder(w).Encode(models.Player{PlayerID: req.PlayerID, Status: models.PlayerUnsold, BasePrice: 100})
	})
	mux.HandleFunc("GET /auctionlive/franchise/RoyalStrikers", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "auc-1", r.URL.Query().Get("auctionId"))
		json.NewEncoder(w).Encode(FranchisePurse{TotalSpent: 150, RemainingPurse: 850, BudgetPerTeam: 1000})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestAuctionLiveFetches(t *testing.T) {
	server := newTestServer(t)
	client := NewAuctionLive(server.URL)
	ctx := context.Background()

	auction, err := client.Auction(ctx, "auc-1")
	require.NoError(t, err)
	require.Equal(t, "Summer League", auction.AuctionName)
	require.Len(t, auction.Teams, 1)

	players, err := client.Players(ctx, "auc-1")
	require.NoError(t, err)
	require.Len(t, players, 1)
	require.Equal(t, "p1", players[0].PlayerID)

	history, err := client.BiddingHistory(ctx, "auc-1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, 150, history[0].BidAmount)
}

func TestAuctionLiveConfirmations(t *testing.T) {
	server := newTestServer(t)
	client := NewAuctionLive(server.URL)
	ctx := context.Background()

	player, err := client.UpdatePrice(ctx, "auc-1", PriceUpdateRequest{PlayerID: "p1", Action: "increase", NewPrice: 125})
	require.NoError(t, err)
	require.Equal(t, 125, player.CurrentPrice())

	player, err = client.SellPlayer(ctx, "auc-1", SellPlayerRequest{PlayerID: "p1", Franchise: "Royal Strikers", SoldPrice: 125})
	require.NoError(t, err)
	require.Equal(t, models.PlayerSold, player.Status)
	require.Equal(t, "Royal Strikers", player.Franchise)

	player, err = client.MarkUnsold(ctx, "auc-1", MarkUnsoldRequest{PlayerID: "p1"})
	require.NoError(t, err)
	require.Equal(t, models.PlayerUnsold, player.Status)
	require.Equal(t, 100, player.BasePrice)
}

func TestAuctionLivePurseStripsSpaces(t *testing.T) {
	server := newTestServer(t)
	client := NewAuctionLive(server.URL)

	purse, err := client.Purse(context.Background(), "Royal Strikers", "auc-1")
	require.NoError(t, err)
	require.Equal(t, 150, purse.TotalSpent)
	require.Equal(t, 850, purse.RemainingPurse)
}

func TestFetchErrorOnNonSuccessStatus(t *testing.T) {
	server := newTestServer(t)
	client := NewAuctionLive(server.URL)

	_, err := client.Auction(context.Background(), "missing")
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	require.Equal(t, http.StatusNotFound, fetchErr.Status)
}

func TestFetchErrorOnMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	t.Cleanup(server.Close)

	client := NewAuctionLive(server.URL)
	_, err := client.Players(context.Background(), "auc-1")
	require.Error(t, err)
}
