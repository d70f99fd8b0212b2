package models

import "time"

// User represents an authenticated marketplace user
type User struct {
	ID                int       `json:"id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	IsServiceProvider bool      `json:"is_service_provider"`
	CreatedAt         time.Time `json:"created_at"`
}

// CreatorRef is the denormalized creator embedded in an auction
type CreatorRef struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// BidderRef is the denormalized bidder embedded in a bid
type BidderRef struct {
	Username string `json:"username"`
}

// Bid represents a single offer against an auction. Bids lower the price in a
// reverse auction, so a meaningful amount is below the auction's current one.
type Bid struct {
	ID        int       `json:"id"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
	Bidder    BidderRef `json:"bidder"`
}

// Auction represents a posted service request open for competitive bidding.
// Bids are kept newest-first.
type Auction struct {
	ID           int        `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Category     string     `json:"category"`
	Location     string     `json:"location"`
	LocationType string     `json:"location_type"`
	City         string     `json:"city"`
	State        string     `json:"state"`
	RadiusKM     int        `json:"radius_km"`
	StartingBid  float64    `json:"starting_bid"`
	CurrentBid   *float64   `json:"current_bid"`
	EndTime      time.Time  `json:"end_time"`
	IsActive     bool       `json:"is_active"`
	IsHotDeal    bool       `json:"is_hot_deal"`
	CreatedAt    time.Time  `json:"created_at"`
	CreatorID    int        `json:"creator_id"`
	Creator      CreatorRef `json:"creator"`
	Bids         []Bid      `json:"bids"`
}

// EffectivePrice returns the current bid if present, otherwise the starting bid
func (a Auction) EffectivePrice() float64 {
	if a.CurrentBid != nil {
		return *a.CurrentBid
	}
	return a.StartingBid
}

// IsExpired reports whether the auction's end time has passed
func (a Auction) IsExpired(now time.Time) bool {
	return now.After(a.EndTime)
}

// TimeRemaining returns how long until the auction ends, floored at zero
func (a Auction) TimeRemaining(now time.Time) time.Duration {
	if d := a.EndTime.Sub(now); d > 0 {
		return d
	}
	return 0
}

// SortKey selects the ordering applied to an auction list
type SortKey string

const (
	SortNewest     SortKey = "newest"
	SortOldest     SortKey = "oldest"
	SortEndingSoon SortKey = "ending_soon"
	SortLowestBid  SortKey = "lowest_bid"
	SortHighestBid SortKey = "highest_bid"
)

// Valid reports whether k is one of the supported sort keys
func (k SortKey) Valid() bool {
	switch k {
	case SortNewest, SortOldest, SortEndingSoon, SortLowestBid, SortHighestBid:
		return true
	}
	return false
}

// AuctionCategory is a value/label pair served by the categories endpoint
type AuctionCategory struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Region is a value/label pair served by the states endpoint
type Region struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
