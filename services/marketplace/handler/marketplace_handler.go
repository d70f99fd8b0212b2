package handler

import (
	"net/http"
	"strconv"
	"time"

	"bidbazaar/internal/models"
	"bidbazaar/internal/stubserver"
	"bidbazaar/services/marketplace/helpers"
	"bidbazaar/utils"

	"github.com/gin-gonic/gin"
)

// MarketplaceHandler serves the development stub of the Bid Bazaar API
type MarketplaceHandler struct {
	repo *stubserver.Repo
	now  func() time.Time
}

// NewMarketplaceHandler creates a handler over the given repo; now may be
// nil to use the wall clock.
func NewMarketplaceHandler(repo *stubserver.Repo, now func() time.Time) *MarketplaceHandler {
	if now == nil {
		now = time.Now
	}
	return &MarketplaceHandler{repo: repo, now: now}
}

// RegisterHandler handles POST /api/auth/register
func (h *MarketplaceHandler) RegisterHandler(c *gin.Context) {
	var req helpers.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RegisterHandler", err)
		return
	}

	user, err := h.repo.AddUser(req.Username, req.Email, req.Phone, req.Password, req.IsServiceProvider)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, message)
		return
	}

	_, token, err := h.repo.Authenticate(req.Username, req.Password)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, message)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Registration successful",
		"user":         user,
		"access_token": token,
	})
	helpers.LogSuccess("RegisterHandler", "user registered", map[string]any{"username": user.Username})
}

// LoginHandler handles POST /api/auth/login
func (h *MarketplaceHandler) LoginHandler(c *gin.Context) {
	var req helpers.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "LoginHandler", err)
		return
	}

	user, token, err := h.repo.Authenticate(req.Username, req.Password)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, message)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Login successful",
		"user":         user,
		"access_token": token,
	})
	helpers.LogSuccess("LoginHandler", "user logged in", map[string]any{"username": user.Username})
}

// LogoutHandler handles POST /api/auth/logout. Logout is always a success,
// token or not.
func (h *MarketplaceHandler) LogoutHandler(c *gin.Context) {
	if header := c.GetHeader("Authorization"); len(header) > 7 {
		h.repo.DropSession(header[7:])
	}
	utils.JSONMessage(c, http.StatusOK, "Logged out successfully")
}

// CurrentUserHandler handles GET /api/auth/me
func (h *MarketplaceHandler) CurrentUserHandler(c *gin.Context) {
	user, ok := stubserver.SessionUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "authentication required")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// ListAuctionsHandler handles GET /api/auctions
func (h *MarketplaceHandler) ListAuctionsHandler(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	auctions, total := h.repo.ListAuctions(
		c.Query("search"),
		c.Query("category"),
		c.Query("location"),
		page,
		perPage,
	)

	now := h.now()
	payload := make([]helpers.AuctionPayload, 0, len(auctions))
	for _, a := range auctions {
		payload = append(payload, helpers.NewAuctionPayload(a, now))
	}

	c.JSON(http.StatusOK, gin.H{
		"auctions":   payload,
		"pagination": helpers.NewPaginationPayload(page, perPage, total),
	})
}

// GetAuctionHandler handles GET /api/auctions/:id
func (h *MarketplaceHandler) GetAuctionHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid auction id")
		return
	}

	auction, err := h.repo.GetAuction(id)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, message)
		return
	}

	c.JSON(http.StatusOK, gin.H{"auction": helpers.NewAuctionPayload(auction, h.now())})
}

// CreateAuctionHandler handles POST /api/auctions
func (h *MarketplaceHandler) CreateAuctionHandler(c *gin.Context) {
	user, _ := stubserver.SessionUser(c)

	var req helpers.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid end_time format")
		return
	}
	if !end.After(h.now()) {
		utils.JSONError(c, http.StatusBadRequest, "end time must be in the future")
		return
	}

	auction, err := h.repo.CreateAuction(user, models.Auction{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Location:     req.Location,
		LocationType: req.LocationType,
		City:         req.City,
		State:        req.State,
		RadiusKM:     req.RadiusKM,
		StartingBid:  req.StartingBid,
		EndTime:      end,
		IsHotDeal:    req.IsHotDeal,
	})
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, message)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Auction created successfully",
		"auction": helpers.NewAuctionPayload(auction, h.now()),
	})
	helpers.LogSuccess("CreateAuctionHandler", "auction created", map[string]any{
		"auction_id": auction.ID,
		"creator":    user.Username,
	})
}

// UpdateAuctionHandler handles PUT /api/auctions/:id
func (h *MarketplaceHandler) UpdateAuctionHandler(c *gin.Context) {
	user, _ := stubserver.SessionUser(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid auction id")
		return
	}

	var req helpers.UpdateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateAuctionHandler", err)
		return
	}

	var end *time.Time
	if req.EndTime != nil {
		parsed, err := time.Parse(time.RFC3339, *req.EndTime)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid end_time format")
			return
		}
		end = &parsed
	}

	auction, err := h.repo.UpdateAuction(id, user.ID, req.Title, req.Description, req.Category, req.Location, req.IsActive, req.IsHotDeal, end)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, message)
		return
	}

	c.JSON(http.StatusOK, gin.H{"auction": helpers.NewAuctionPayload(auction, h.now())})
}

// PlaceBidHandler handles POST /api/auctions/:id/bid
func (h *MarketplaceHandler) PlaceBidHandler(c *gin.Context) {
	user, _ := stubserver.SessionUser(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid auction id")
		return
	}

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	bid, err := h.repo.PlaceBid(id, user, req.Amount)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, message)
		utils.Warn("PlaceBidHandler: bid rejected", map[string]any{
			"auction_id": id,
			"bidder":     user.Username,
			"error":      err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Bid placed successfully",
		"bid":     bid,
	})
	helpers.LogSuccess("PlaceBidHandler", "bid placed", map[string]any{
		"bid_id":     bid.ID,
		"auction_id": id,
		"bidder":     user.Username,
		"amount":     bid.Amount,
	})
}

// CategoriesHandler handles GET /api/categories
func (h *MarketplaceHandler) CategoriesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": stubserver.Categories})
}

// StatesHandler handles GET /api/states
func (h *MarketplaceHandler) StatesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"states": stubserver.Regions})
}

// DashboardHandler handles GET /api/dashboard
func (h *MarketplaceHandler) DashboardHandler(c *gin.Context) {
	user, ok := stubserver.SessionUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	now := h.now()

	myAuctions := []gin.H{}
	if user.IsServiceProvider {
		for _, a := range h.repo.AuctionsByCreator(user.ID) {
			myAuctions = append(myAuctions, gin.H{
				"id":             a.ID,
				"title":          a.Title,
				"category":       a.Category,
				"starting_bid":   a.StartingBid,
				"current_bid":    a.CurrentBid,
				"end_time":       a.EndTime.Format(time.RFC3339),
				"is_active":      a.IsActive,
				"time_remaining": a.TimeRemaining(now).Seconds(),
				"bid_count":      len(a.Bids),
			})
		}
	}

	myBids := []gin.H{}
	for _, ub := range h.repo.BidsByUser(user.ID) {
		myBids = append(myBids, gin.H{
			"id":         ub.Bid.ID,
			"amount":     ub.Bid.Amount,
			"created_at": ub.Bid.CreatedAt.Format(time.RFC3339),
			"auction": gin.H{
				"id":          ub.Auction.ID,
				"title":       ub.Auction.Title,
				"category":    ub.Auction.Category,
				"end_time":    ub.Auction.EndTime.Format(time.RFC3339),
				"is_active":   ub.Auction.IsActive,
				"current_bid": ub.Auction.CurrentBid,
			},
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"my_auctions": myAuctions,
		"my_bids":     myBids,
	})
}
