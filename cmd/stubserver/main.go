package main

import (
	"fmt"
	"os"
	"time"

	"bidbazaar/internal/config"
	"bidbazaar/internal/models"
	"bidbazaar/internal/stubserver"
	"bidbazaar/services/marketplace/handler"
	"bidbazaar/utils"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	utils.SetLogLevel(cfg.LogLevel)

	repo := stubserver.NewRepo(time.Now)

	prepopulateMarketplace(repo)

	h := handler.NewMarketplaceHandler(repo, time.Now)
	router := stubserver.SetupRouter(repo, h)

	port := fmt.Sprintf(":%s", cfg.StubPort)
	fmt.Printf("Starting marketplace server on %s...\n", port)
	if err := router.Run(port); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// prepopulateMarketplace seeds accounts and open auctions so the
// server is usable right after startup
func prepopulateMarketplace(repo *stubserver.Repo) {
	provider, err := repo.AddUser("demo_provider", "provider@example.com", "+919876543210", "demo1234", true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to seed users: %v\n", err)
		os.Exit(1)
	}
	if _, err := repo.AddUser("demo_bidder", "bidder@example.com", "", "demo1234", false); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to seed users: %v\n", err)
		os.Exit(1)
	}

	now := time.Now()
	auctions := []models.Auction{
		{
			Title:       "House Cleaning Service",
			Description: "Deep cleaning for a 2BHK apartment",
			Category:    "cleaning",
			Location:    "Bangalore",
			StartingBid: 2000,
			EndTime:     now.Add(24 * time.Hour),
			IsActive:    true,
			IsHotDeal:   true,
		},
		{
			Title:       "Math Tutoring",
			Description: "Class 10 math tutoring, three sessions a week",
			Category:    "tutoring",
			Location:    "Noida",
			StartingBid: 1000,
			EndTime:     now.Add(48 * time.Hour),
			IsActive:    true,
		},
		{
			Title:       "Logo Design",
			Description: "Logo and brand kit for a small bakery",
			Category:    "design",
			Location:    "Pune",
			StartingBid: 5000,
			EndTime:     now.Add(72 * time.Hour),
			IsActive:    true,
			IsHotDeal:   true,
		},
	}

	for _, a := range auctions {
		if _, err := repo.CreateAuction(provider, a); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to seed auctions: %v\n", err)
			os.Exit(1)
		}
	}
}
