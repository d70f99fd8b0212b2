package auctionstate

import (
	"time"

	"bidbazaar/internal/models"
)

func price(v float64) *float64 { return &v }

// sampleAuctions is the bundled offline dataset substituted when the listing
// endpoint fails or returns nothing. Deterministic for a given clock reading;
// bids are newest-first like everywhere else.
func sampleAuctions(now time.Time) []models.Auction {
	return []models.Auction{
		{
			ID:           1,
			Title:        "House Cleaning Service",
			Description:  "Need professional house cleaning for a 3BHK apartment. Deep cleaning required including kitchen and bathrooms.",
			Category:     "cleaning",
			Location:     "Koramangala, Bangalore",
			LocationType: "city",
			City:         "Bangalore",
			State:        "karnataka",
			RadiusKM:     50,
			StartingBid:  2000,
			CurrentBid:   price(1500),
			EndTime:      now.Add(24 * time.Hour),
			IsActive:     true,
			IsHotDeal:    true,
			CreatedAt:    now,
			CreatorID:    2,
			Creator:      models.CreatorRef{Username: "cleaning_pro", Email: "pro@cleaning.com"},
			Bids: []models.Bid{
				{ID: 2, Amount: 1500, CreatedAt: now.Add(-1 * time.Hour), Bidder: models.BidderRef{Username: "bidder2"}},
				{ID: 1, Amount: 1800, CreatedAt: now.Add(-2 * time.Hour), Bidder: models.BidderRef{Username: "bidder1"}},
			},
		},
		{
			ID:           2,
			Title:        "Math Tutoring for Class 10",
			Description:  "Looking for experienced math tutor for CBSE Class 10 student. Need help with algebra and geometry.",
			Category:     "tutoring",
			Location:     "Sector 18, Noida",
			LocationType: "local",
			City:         "Noida",
			State:        "uttar-pradesh",
			RadiusKM:     10,
			StartingBid:  1000,
			CurrentBid:   price(800),
			EndTime:      now.Add(48 * time.Hour),
			IsActive:     true,
			IsHotDeal:    false,
			CreatedAt:    now,
			CreatorID:    3,
			Creator:      models.CreatorRef{Username: "student_parent", Email: "parent@example.com"},
			Bids: []models.Bid{
				{ID: 4, Amount: 800, CreatedAt: now.Add(-1 * time.Hour), Bidder: models.BidderRef{Username: "tutor2"}},
				{ID: 3, Amount: 900, CreatedAt: now.Add(-3 * time.Hour), Bidder: models.BidderRef{Username: "tutor1"}},
			},
		},
		{
			ID:           3,
			Title:        "Logo Design for Startup",
			Description:  "Need a professional logo design for my tech startup. Looking for modern, minimalist design with tech feel.",
			Category:     "design",
			Location:     "Pune, Maharashtra",
			LocationType: "state",
			City:         "Pune",
			State:        "maharashtra",
			RadiusKM:     500,
			StartingBid:  5000,
			CurrentBid:   price(3500),
			EndTime:      now.Add(72 * time.Hour),
			IsActive:     true,
			IsHotDeal:    true,
			CreatedAt:    now,
			CreatorID:    4,
			Creator:      models.CreatorRef{Username: "startup_founder", Email: "founder@startup.com"},
			Bids: []models.Bid{
				{ID: 6, Amount: 3500, CreatedAt: now.Add(-2 * time.Hour), Bidder: models.BidderRef{Username: "designer2"}},
				{ID: 5, Amount: 4000, CreatedAt: now.Add(-4 * time.Hour), Bidder: models.BidderRef{Username: "designer1"}},
			},
		},
	}
}
