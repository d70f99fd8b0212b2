package gateway

import (
	"bidbazaar/internal/models"
)

// ListParams is the server-relevant subset of filter state sent with a
// listing request. Price and status filters stay client-side.
type ListParams struct {
	Search   string
	Category string
	Location string
	Page     int
	PerPage  int
}

// Pagination is the paging envelope returned with an auction listing
type Pagination struct {
	Page    int  `json:"page"`
	Pages   int  `json:"pages"`
	PerPage int  `json:"per_page"`
	Total   int  `json:"total"`
	HasNext bool `json:"has_next"`
	HasPrev bool `json:"has_prev"`
}

// ListAuctionsResponse is the body of GET /api/auctions
type ListAuctionsResponse struct {
	Auctions   []models.Auction `json:"auctions"`
	Pagination Pagination       `json:"pagination"`
}

type auctionEnvelope struct {
	Message string         `json:"message"`
	Auction models.Auction `json:"auction"`
}

type bidEnvelope struct {
	Message string     `json:"message"`
	Bid     models.Bid `json:"bid"`
}

// RegisterRequest is the body of POST /api/auth/register
type RegisterRequest struct {
	Username          string `json:"username"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Password          string `json:"password"`
	IsServiceProvider bool   `json:"is_service_provider"`
}

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse carries the session user and, in the legacy variant of the
// backend, a bearer token.
type AuthResponse struct {
	Message     string      `json:"message"`
	User        models.User `json:"user"`
	AccessToken string      `json:"access_token"`
}

type userEnvelope struct {
	User models.User `json:"user"`
}

// CreateAuctionRequest is the body of POST /api/auctions
type CreateAuctionRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Location     string  `json:"location"`
	LocationType string  `json:"location_type"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	RadiusKM     int     `json:"radius_km"`
	StartingBid  float64 `json:"starting_bid"`
	EndTime      string  `json:"end_time"`
	IsHotDeal    bool    `json:"is_hot_deal"`
}

// UpdateAuctionRequest is the body of PUT /api/auctions/:id; nil fields are
// left unchanged server-side.
type UpdateAuctionRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Location    *string  `json:"location,omitempty"`
	EndTime     *string  `json:"end_time,omitempty"`
	IsActive    *bool    `json:"is_active,omitempty"`
	IsHotDeal   *bool    `json:"is_hot_deal,omitempty"`
	StartingBid *float64 `json:"starting_bid,omitempty"`
}

// PlaceBidRequest is the body of POST /api/auctions/:id/bid
type PlaceBidRequest struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

type categoriesEnvelope struct {
	Categories []models.AuctionCategory `json:"categories"`
}

type statesEnvelope struct {
	States []models.Region `json:"states"`
}

// DashboardAuction is a provider-owned auction summary on the dashboard
type DashboardAuction struct {
	ID            int      `json:"id"`
	Title         string   `json:"title"`
	Category      string   `json:"category"`
	StartingBid   float64  `json:"starting_bid"`
	CurrentBid    *float64 `json:"current_bid"`
	EndTime       string   `json:"end_time"`
	IsActive      bool     `json:"is_active"`
	TimeRemaining float64  `json:"time_remaining"`
	BidCount      int      `json:"bid_count"`
}

// DashboardBid is one of the session user's bids with its parent auction
type DashboardBid struct {
	ID        int     `json:"id"`
	Amount    float64 `json:"amount"`
	CreatedAt string  `json:"created_at"`
	Auction   struct {
		ID         int      `json:"id"`
		Title      string   `json:"title"`
		Category   string   `json:"category"`
		EndTime    string   `json:"end_time"`
		IsActive   bool     `json:"is_active"`
		CurrentBid *float64 `json:"current_bid"`
	} `json:"auction"`
}

// Dashboard is the body of GET /api/dashboard
type Dashboard struct {
	MyAuctions []DashboardAuction `json:"my_auctions"`
	MyBids     []DashboardBid     `json:"my_bids"`
}
