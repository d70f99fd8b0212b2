package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"bidbazaar/internal/auctionstate"
	"bidbazaar/internal/authstate"
	"bidbazaar/internal/config"
	"bidbazaar/internal/gateway"
	"bidbazaar/internal/models"
	"bidbazaar/internal/storage"
	"bidbazaar/utils"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	utils.SetLogLevel(cfg.LogLevel)

	gw := gateway.New(cfg.APIBaseURL, time.Duration(cfg.HTTPTimeoutSec)*time.Second)
	store := storage.NewFileStore(cfg.StateFile)

	auth := authstate.NewManager(gw, store, gw)
	auctions := auctionstate.NewStore(gw,
		auctionstate.WithFallback(cfg.OfflineFallback),
		auctionstate.WithDebounce(time.Duration(cfg.DebounceMillis)*time.Millisecond),
	)
	defer auctions.Close()

	ctx := context.Background()
	auth.Bootstrap(ctx)

	if user, ok := auth.CurrentUser(); ok {
		fmt.Printf("Signed in as %s\n", user.Username)
	} else {
		fmt.Println("Browsing anonymously")
	}

	view := auctions.Load(ctx, nil)
	if auctions.Offline() {
		fmt.Println("Backend unreachable, showing sample auctions")
	}

	printAuctions(view)
}

// printAuctions renders the derived view as a plain listing
func printAuctions(view []models.Auction) {
	now := time.Now()
	fmt.Printf("%d auctions\n\n", len(view))
	for _, a := range view {
		status := models.StatusOf(a, now)
		fmt.Printf("#%d %s [%s]\n", a.ID, a.Title, status.Label())
		fmt.Printf("  %s | %s | %d bids | ends %s\n",
			utils.FormatCurrency(a.EffectivePrice()),
			a.Location,
			len(a.Bids),
			utils.FormatTimeRemaining(a.EndTime, now),
		)
	}
}
