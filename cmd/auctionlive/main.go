package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/premsagar/auctionlive/clients"
	"github.com/premsagar/auctionlive/internal/channel"
	"github.com/premsagar/auctionlive/internal/config"
	"github.com/premsagar/auctionlive/internal/live"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	var (
		configPath = flag.String("config", "", "path to YAML config file")
		auctionID  = flag.String("auction", "", "auction id to join")
		email      = flag.String("email", os.Getenv("AUCTION_EMAIL"), "logged-in user email")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogging(cfg.Log.Level)

	if *auctionID == "" {
		log.Fatal().Msg("an auction id is required (-auction)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend := clients.NewAuctionLive(cfg.Backend.BaseURL)
	backend.SetTimeout(cfg.Backend.Timeout)

	chConfig := channel.DefaultConfig()
	chConfig.URL = cfg.Backend.SocketURL
	ch, err := channel.Dial(ctx, chConfig, *auctionID, *email)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to the auction channel")
	}

	view, err := live.NewView(live.Config{
		AuctionID: *auctionID,
		Session:   live.Session{Email: *email},
		Backend:   backend,
		Channel:   ch,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create live view")
	}
	defer view.Close()

	if err := view.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to load auction, check the id and try again")
	}

	go func() {
		if err := view.Run(ctx, ch.Events()); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("event loop stopped")
		}
	}()

	render(view)
	go repl(ctx, view)

	<-ctx.Done()
	log.Info().Msg("shutting down")
}

func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl)
}

// repl maps console commands to dispatcher calls, mirroring the keyboard
// controls of the browser view: n/p navigate, +/- adjust the price, sell
// and unsold resolve the current player, hand toggles interest, u flips
// the unsold-only filter.
func repl(ctx context.Context, view *live.View) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			render(view)
			continue
		}

		current, ok := view.CurrentPlayer()
		var err error
		switch fields[0] {
		case "n", "next":
			err = view.Next()
		case "p", "prev":
			err = view.Previous()
		case "+":
			if ok {
				err = view.AdjustPrice(current.PlayerID, live.Increase)
			}
		case "-":
			if ok {
				err = view.AdjustPrice(current.PlayerID, live.Decrease)
			}
		case "sell":
			if len(fields) < 2 {
				fmt.Println("usage: sell <team name>")
				continue
			}
			if ok {
				err = view.Sell(ctx, current.PlayerID, strings.Join(fields[1:], " "))
			}
		case "unsold":
			if ok {
				err = view.MarkUnsold(ctx, current.PlayerID)
			}
		case "hand":
			if ok {
				err = view.ToggleHandRaise(current.PlayerID)
			}
		case "u":
			view.ToggleUnsoldOnly()
		case "q", "quit":
			return
		default:
			fmt.Println("commands: n p + - sell <team> unsold hand u q")
			continue
		}

		if err != nil {
			log.Warn().Err(err).Str("command", fields[0]).Msg("command rejected")
		}
		render(view)
	}
}

func render(view *live.View) {
	s := view.Snapshot()

	fmt.Printf("\n%s [%s]\n", s.Auction.AuctionName, s.Role)
	if !s.HasCurrent {
		if s.ShowUnsoldOnly {
			fmt.Println("no players left, all sold")
		} else {
			fmt.Println("no players available")
		}
		return
	}

	p := s.CurrentPlayer
	fmt.Printf("%d/%d  %s  base %d  bid %d  %s %s\n",
		s.CurrentIndex+1, len(s.Players),
		p.PlayerName, p.BasePrice, p.CurrentPrice(), p.Status, p.Franchise)

	for _, h := range s.RaisedHands {
		if h.PlayerID == p.PlayerID {
			fmt.Printf("  hand up: %s (%s)\n", h.TeamName, live.TeamInitials(h.TeamName))
		}
	}

	history := s.History
	if len(history) > 10 {
		history = history[len(history)-10:]
	}
	for _, e := range history {
		if e.Unsold() {
			fmt.Printf("  %s was marked unsold at %d\n", e.PlayerName, e.BidAmount)
		} else {
			fmt.Printf("  %s was sold to %s at %d\n", e.PlayerName, e.TeamName, e.BidAmount)
		}
	}
}
