package live

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/premsagar/auctionlive/clients"
	"github.com/premsagar/auctionlive/internal/channel"
	"github.com/premsagar/auctionlive/internal/models"
)

// Backend is the subset of the REST API the live view depends on.
// *clients.AuctionLive satisfies it.
type Backend interface {
	Auction(ctx context.Context, auctionID string) (models.Auction, error)
	Players(ctx context.Context, auctionID string) ([]models.Player, error)
	BiddingHistory(ctx context.Context, auctionID string) ([]models.BiddingHistoryEntry, error)
	UpdatePrice(ctx context.Context, auctionID string, req clients.PriceUpdateRequest) (models.Player, error)
	SellPlayer(ctx context.Context, auctionID string, req clients.SellPlayerRequest) (models.Player, error)
	MarkUnsold(ctx context.Context, auctionID string, req clients.MarkUnsoldRequest) (models.Player, error)
}

// Emitter is the outbound side of the real-time channel.
// *channel.Channel satisfies it.
type Emitter interface {
	Emit(eventType channel.EventType, payload any) error
	Close() error
}

// DefaultDebounceInterval is the quiet period before a price adjustment is
// confirmed to the server.
const DefaultDebounceInterval = 300 * time.Millisecond

// Config holds the collaborators and settings for a live view.
type Config struct {
	AuctionID        string
	Session          Session
	Backend          Backend
	Channel          Emitter
	Clock            clockwork.Clock // nil means the real clock
	DebounceInterval time.Duration   // zero means DefaultDebounceInterval
}

// View is the live-auction screen's state mirror. It holds this client's
// copy of the auction, the ordered player list, the current index, raised
// hands and bidding history, with every mutation funneled through the
// reconciler (inbound events) or the dispatcher (user commands).
type View struct {
	auctionID string
	session   Session
	backend   Backend
	emitter   Emitter

	mu             sync.Mutex
	auction        models.Auction
	players        []models.Player
	currentIndex   int
	showUnsoldOnly bool
	raisedHands    []models.RaisedHand
	history        []models.BiddingHistoryEntry
	role           Role
	loaded         bool

	debounce *debouncer

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewView creates a live view for one auction. It fails fast when no
// auction id is given: rendering without one is never valid.
func NewView(config Config) (*View, error) {
	if config.AuctionID == "" {
		return nil, ErrNoAuctionID
	}
	if config.Backend == nil {
		return nil, fmt.Errorf("backend is required")
	}

	clock := config.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	interval := config.DebounceInterval
	if interval <= 0 {
		interval = DefaultDebounceInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	v := &View{
		auctionID: config.AuctionID,
		session:   config.Session,
		backend:   config.Backend,
		emitter:   config.Channel,
		role:      RoleViewer,
		ctx:       ctx,
		cancel:    cancel,
	}
	v.debounce = newDebouncer(clock, interval, v.confirmPrice)
	return v, nil
}

// Load fetches the auction and the full player list, derives the session
// role, and pulls the initial bidding history. On failure the mirror is
// left empty so the caller can surface a retry path.
func (v *View) Load(ctx context.Context) error {
	auction, err := v.backend.Auction(ctx, v.auctionID)
	if err != nil {
		return fmt.Errorf("load auction %s: %w", v.auctionID, err)
	}
	players, err := v.backend.Players(ctx, v.auctionID)
	if err != nil {
		return fmt.Errorf("load players for auction %s: %w", v.auctionID, err)
	}

	role := DeriveRole(auction, v.session.Email)

	v.mu.Lock()
	v.auction = auction
	v.players = players
	v.role = role
	v.loaded = true
	v.mu.Unlock()

	log.Info().
		Str("auction_id", v.auctionID).
		Str("role", string(role)).
		Int("players", len(players)).
		Msg("auction loaded")

	// History is best effort: the view renders without it.
	if err := v.RefreshHistory(ctx); err != nil {
		log.Warn().Err(err).Str("auction_id", v.auctionID).Msg("failed to load bidding history")
	}
	return nil
}

// RefreshHistory replaces the local bidding history with the server's
// latest window, ordered oldest first.
func (v *View) RefreshHistory(ctx context.Context) error {
	entries, err := v.backend.BiddingHistory(ctx, v.auctionID)
	if err != nil {
		return fmt.Errorf("fetch bidding history: %w", err)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})

	v.mu.Lock()
	v.history = entries
	v.mu.Unlock()
	return nil
}

func (v *View) refreshHistoryAsync() {
	go func() {
		if err := v.RefreshHistory(v.ctx); err != nil {
			log.Warn().Err(err).Str("auction_id", v.auctionID).Msg("failed to refresh bidding history")
		}
	}()
}

// Role returns the session role derived on the last load.
func (v *View) Role() Role {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.role
}

// SetUnsoldOnly recomputes the visible subset: the unsold-only view keeps
// players that are Unsold, Available or have no status yet. The current
// index resets to 0, and the organizer broadcasts the new view so passive
// clients follow.
func (v *View) SetUnsoldOnly(on bool) {
	v.mu.Lock()
	v.showUnsoldOnly = on
	v.currentIndex = 0
	organizer := v.role == RoleOrganizer
	v.mu.Unlock()

	if organizer {
		v.emit(channel.EventChangePlayer, channel.PlayerChangedPayload{
			AuctionID:      v.auctionID,
			NewIndex:       0,
			ShowUnsoldOnly: on,
		})
	}
}

// ToggleUnsoldOnly flips the filter.
func (v *View) ToggleUnsoldOnly() {
	v.mu.Lock()
	next := !v.showUnsoldOnly
	v.mu.Unlock()
	v.SetUnsoldOnly(next)
}

// CurrentPlayer returns the player at the clamped current index of the
// filtered subset, or false when the subset is empty.
func (v *View) CurrentPlayer() (models.Player, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.currentPlayerLocked()
}

func (v *View) currentPlayerLocked() (models.Player, bool) {
	filtered := v.filteredLocked()
	if len(filtered) == 0 {
		return models.Player{}, false
	}
	idx := v.currentIndex
	if idx < 0 {
		idx = 0
	}
	if idx >= len(filtered) {
		idx = len(filtered) - 1
	}
	return filtered[idx], true
}

// filteredLocked returns the visible player subset in original order.
// Callers must hold v.mu.
func (v *View) filteredLocked() []models.Player {
	if !v.showUnsoldOnly {
		return v.players
	}
	var filtered []models.Player
	for _, p := range v.players {
		if p.Open() {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func (v *View) indexOfLocked(playerID string) int {
	for i := range v.players {
		if v.players[i].PlayerID == playerID {
			return i
		}
	}
	return -1
}

// HandRaised reports whether the given team has its hand up for the player.
func (v *View) HandRaised(teamName, playerID string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.handRaisedLocked(teamName, playerID)
}

func (v *View) handRaisedLocked(teamName, playerID string) bool {
	for _, h := range v.raisedHands {
		if h.TeamName == teamName && h.PlayerID == playerID {
			return true
		}
	}
	return false
}

// addHandLocked inserts a raised hand, idempotently: a second raise for the
// same (team, player) pair is a no-op.
func (v *View) addHandLocked(teamName, playerID string) {
	if v.handRaisedLocked(teamName, playerID) {
		return
	}
	v.raisedHands = append(v.raisedHands, models.RaisedHand{TeamName: teamName, PlayerID: playerID})
}

// removeHandLocked removes an exact (team, player) match; absent pairs are
// a no-op.
func (v *View) removeHandLocked(teamName, playerID string) {
	kept := v.raisedHands[:0]
	for _, h := range v.raisedHands {
		if h.TeamName == teamName && h.PlayerID == playerID {
			continue
		}
		kept = append(kept, h)
	}
	v.raisedHands = kept
}

// clearHandsForLocked drops every raised hand for one player.
func (v *View) clearHandsForLocked(playerID string) {
	kept := v.raisedHands[:0]
	for _, h := range v.raisedHands {
		if h.PlayerID == playerID {
			continue
		}
		kept = append(kept, h)
	}
	v.raisedHands = kept
}

// Snapshot is a point-in-time copy of the mirror for rendering.
type Snapshot struct {
	Auction        models.Auction
	Role           Role
	Players        []models.Player // filtered subset, original order
	CurrentIndex   int
	CurrentPlayer  models.Player
	HasCurrent     bool
	ShowUnsoldOnly bool
	RaisedHands    []models.RaisedHand
	History        []models.BiddingHistoryEntry
}

// Snapshot returns a consistent copy of the current view state.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	current, ok := v.currentPlayerLocked()
	filtered := v.filteredLocked()

	s := Snapshot{
		Auction:        v.auction,
		Role:           v.role,
		Players:        append([]models.Player(nil), filtered...),
		CurrentIndex:   v.currentIndex,
		CurrentPlayer:  current,
		HasCurrent:     ok,
		ShowUnsoldOnly: v.showUnsoldOnly,
		RaisedHands:    append([]models.RaisedHand(nil), v.raisedHands...),
		History:        append([]models.BiddingHistoryEntry(nil), v.history...),
	}
	return s
}

// Close tears the view down: every pending debounce timer is cancelled and
// the channel connection is closed, so no event can reach a stale mirror.
// Safe to call more than once.
func (v *View) Close() error {
	v.closeOnce.Do(func() {
		v.cancel()
		v.debounce.CancelAll()
		if v.emitter != nil {
			v.emitter.Close()
		}
		log.Info().Str("auction_id", v.auctionID).Msg("live view closed")
	})
	return nil
}

func (v *View) emit(eventType channel.EventType, payload any) {
	if v.emitter == nil {
		return
	}
	if err := v.emitter.Emit(eventType, payload); err != nil {
		log.Warn().
			Err(err).
			Str("event_type", string(eventType)).
			Str("auction_id", v.auctionID).
			Msg("failed to emit event")
	}
}
