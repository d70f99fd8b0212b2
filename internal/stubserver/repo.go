package stubserver

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"bidbazaar/internal/marketerrors"
	"bidbazaar/internal/models"
	"bidbazaar/utils"
)

type account struct {
	user     models.User
	password string
}

type bidRecord struct {
	auctionID int
	bidderID  int
	bid       models.Bid
}

// Repo is a concurrency-safe in-memory backing store for the development
// stub server. It enforces the reverse-auction rules the real backend does:
// bids must be positive and strictly below the current lowest price, and
// nobody bids on their own or ended auctions.
type Repo struct {
	mu        sync.RWMutex
	auctions  map[int]*models.Auction
	accounts  map[string]*account // key: username
	emails    map[string]string   // key: email -> username
	sessions  map[string]int      // key: token -> user id
	bidLog    []bidRecord
	nextAucID int
	nextBidID int
	nextUsrID int
	now       func() time.Time
}

// NewRepo creates an empty Repo using the given clock (nil means time.Now)
func NewRepo(now func() time.Time) *Repo {
	if now == nil {
		now = time.Now
	}
	return &Repo{
		auctions: make(map[int]*models.Auction),
		accounts: make(map[string]*account),
		emails:   make(map[string]string),
		sessions: make(map[string]int),
		now:      now,
	}
}

// AddUser registers an account, enforcing unique username and email
func (r *Repo) AddUser(username, email, phone, password string, isProvider bool) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[username]; ok {
		return models.User{}, marketerrors.ErrUsernameTaken
	}
	if _, ok := r.emails[email]; ok {
		return models.User{}, marketerrors.ErrEmailTaken
	}

	r.nextUsrID++
	user := models.User{
		ID:                r.nextUsrID,
		Username:          username,
		Email:             email,
		Phone:             phone,
		IsServiceProvider: isProvider,
		CreatedAt:         r.now().UTC(),
	}
	r.accounts[username] = &account{user: user, password: password}
	r.emails[email] = username
	return user, nil
}

// Authenticate checks credentials and opens a session, returning its token
func (r *Repo) Authenticate(username, password string) (models.User, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acct, ok := r.accounts[username]
	if !ok || acct.password != password {
		return models.User{}, "", marketerrors.ErrBadCredentials
	}

	token := utils.GenerateToken()
	r.sessions[token] = acct.user.ID
	return acct.user, token, nil
}

// SessionUser resolves a session token to its user
func (r *Repo) SessionUser(token string) (models.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.sessions[token]
	if !ok {
		return models.User{}, false
	}
	for _, acct := range r.accounts {
		if acct.user.ID == id {
			return acct.user, true
		}
	}
	return models.User{}, false
}

// DropSession invalidates a session token; unknown tokens are fine
func (r *Repo) DropSession(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
}

// ListAuctions returns active, unexpired auctions newest-first, narrowed by
// the server-side filters and paginated.
func (r *Repo) ListAuctions(search, category, location string, page, perPage int) ([]models.Auction, int) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	now := r.now()
	matched := make([]models.Auction, 0, len(r.auctions))
	for _, a := range r.auctions {
		if !a.IsActive || a.IsExpired(now) {
			continue
		}
		if search != "" {
			needle := strings.ToLower(search)
			if !strings.Contains(strings.ToLower(a.Title), needle) &&
				!strings.Contains(strings.ToLower(a.Description), needle) {
				continue
			}
		}
		if category != "" && a.Category != category {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(a.Location), strings.ToLower(location)) {
			continue
		}
		matched = append(matched, copyAuction(a))
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	start := (page - 1) * perPage
	if start >= total {
		return []models.Auction{}, total
	}
	end := start + perPage
	if end > total {
		end = total
	}
	return matched[start:end], total
}

// GetAuction returns one auction with its full bid list
func (r *Repo) GetAuction(id int) (models.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.auctions[id]
	if !ok {
		return models.Auction{}, fmt.Errorf("get auction %d: %w", id, marketerrors.ErrAuctionNotFound)
	}
	return copyAuction(a), nil
}

// CreateAuction stores a new auction owned by creator
func (r *Repo) CreateAuction(creator models.User, a models.Auction) (models.Auction, error) {
	if !creator.IsServiceProvider {
		return models.Auction{}, marketerrors.ErrNotProvider
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextAucID++
	a.ID = r.nextAucID
	a.CreatorID = creator.ID
	a.Creator = models.CreatorRef{Username: creator.Username, Email: creator.Email}
	a.CreatedAt = r.now().UTC()
	a.IsActive = true
	a.CurrentBid = nil
	a.Bids = nil

	stored := a
	r.auctions[a.ID] = &stored
	return copyAuction(&stored), nil
}

// UpdateAuction applies non-nil fields to an auction owned by userID
func (r *Repo) UpdateAuction(id, userID int, title, description, category, location *string, isActive, isHotDeal *bool, endTime *time.Time) (models.Auction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.auctions[id]
	if !ok {
		return models.Auction{}, fmt.Errorf("update auction %d: %w", id, marketerrors.ErrAuctionNotFound)
	}
	if a.CreatorID != userID {
		return models.Auction{}, marketerrors.ErrUnauthorized
	}

	if title != nil {
		a.Title = *title
	}
	if description != nil {
		a.Description = *description
	}
	if category != nil {
		a.Category = *category
	}
	if location != nil {
		a.Location = *location
	}
	if isActive != nil {
		a.IsActive = *isActive
	}
	if isHotDeal != nil {
		a.IsHotDeal = *isHotDeal
	}
	if endTime != nil {
		a.EndTime = *endTime
	}
	return copyAuction(a), nil
}

// PlaceBid records a bid, lowering the auction's current price
func (r *Repo) PlaceBid(auctionID int, bidder models.User, amount float64) (models.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.auctions[auctionID]
	if !ok {
		return models.Bid{}, fmt.Errorf("place bid on auction %d: %w", auctionID, marketerrors.ErrAuctionNotFound)
	}
	if !a.IsActive || a.IsExpired(r.now()) {
		return models.Bid{}, marketerrors.ErrAuctionEnded
	}
	if a.CreatorID == bidder.ID {
		return models.Bid{}, marketerrors.ErrOwnAuction
	}
	if amount <= 0 {
		return models.Bid{}, fmt.Errorf("%w: bid amount must be positive", marketerrors.ErrInvalidInput)
	}
	if amount >= a.EffectivePrice() {
		return models.Bid{}, fmt.Errorf("%w: current bid is %.2f", marketerrors.ErrBidNotLower, a.EffectivePrice())
	}

	r.nextBidID++
	bid := models.Bid{
		ID:        r.nextBidID,
		Amount:    amount,
		CreatedAt: r.now().UTC(),
		Bidder:    models.BidderRef{Username: bidder.Username},
	}

	a.CurrentBid = &amount
	a.Bids = append([]models.Bid{bid}, a.Bids...)
	r.bidLog = append(r.bidLog, bidRecord{auctionID: auctionID, bidderID: bidder.ID, bid: bid})
	return bid, nil
}

// AuctionsByCreator returns all auctions created by userID, newest-first
func (r *Repo) AuctionsByCreator(userID int) []models.Auction {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var owned []models.Auction
	for _, a := range r.auctions {
		if a.CreatorID == userID {
			owned = append(owned, copyAuction(a))
		}
	}
	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})
	return owned
}

// UserBid pairs one of a user's bids with its parent auction
type UserBid struct {
	Bid     models.Bid
	Auction models.Auction
}

// BidsByUser returns the user's bids paired with their auctions, newest-first
func (r *Repo) BidsByUser(userID int) []UserBid {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []UserBid
	for i := len(r.bidLog) - 1; i >= 0; i-- {
		rec := r.bidLog[i]
		if rec.bidderID != userID {
			continue
		}
		a, ok := r.auctions[rec.auctionID]
		if !ok {
			continue
		}
		out = append(out, UserBid{Bid: rec.bid, Auction: copyAuction(a)})
	}
	return out
}

// copyAuction snapshots an auction including its bid list
func copyAuction(a *models.Auction) models.Auction {
	out := *a
	out.Bids = append([]models.Bid(nil), a.Bids...)
	if a.CurrentBid != nil {
		v := *a.CurrentBid
		out.CurrentBid = &v
	}
	return out
}
