package helpers

import (
	"time"

	"bidbazaar/internal/models"
)

// Request/Response DTOs
type RegisterRequest struct {
	Username          string `json:"username" binding:"required"`
	Email             string `json:"email" binding:"required,email"`
	Phone             string `json:"phone"`
	Password          string `json:"password" binding:"required"`
	IsServiceProvider bool   `json:"is_service_provider"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateAuctionRequest struct {
	Title        string  `json:"title" binding:"required"`
	Description  string  `json:"description" binding:"required"`
	Category     string  `json:"category" binding:"required"`
	Location     string  `json:"location" binding:"required"`
	LocationType string  `json:"location_type"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	RadiusKM     int     `json:"radius_km"`
	StartingBid  float64 `json:"starting_bid" binding:"required,gt=0"`
	EndTime      string  `json:"end_time" binding:"required"`
	IsHotDeal    bool    `json:"is_hot_deal"`
}

type UpdateAuctionRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Location    *string `json:"location"`
	EndTime     *string `json:"end_time"`
	IsActive    *bool   `json:"is_active"`
	IsHotDeal   *bool   `json:"is_hot_deal"`
}

type PlaceBidRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description"`
}

// AuctionPayload is an auction as the API serves it, with the derived
// time_remaining the real backend includes.
type AuctionPayload struct {
	models.Auction
	TimeRemaining float64 `json:"time_remaining"`
}

// NewAuctionPayload wraps an auction with its remaining seconds at now
func NewAuctionPayload(a models.Auction, now time.Time) AuctionPayload {
	return AuctionPayload{Auction: a, TimeRemaining: a.TimeRemaining(now).Seconds()}
}

type PaginationPayload struct {
	Page    int  `json:"page"`
	Pages   int  `json:"pages"`
	PerPage int  `json:"per_page"`
	Total   int  `json:"total"`
	HasNext bool `json:"has_next"`
	HasPrev bool `json:"has_prev"`
}

// NewPaginationPayload derives the paging envelope for a listing response
func NewPaginationPayload(page, perPage, total int) PaginationPayload {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	pages := (total + perPage - 1) / perPage
	return PaginationPayload{
		Page:    page,
		Pages:   pages,
		PerPage: perPage,
		Total:   total,
		HasNext: page < pages,
		HasPrev: page > 1,
	}
}
