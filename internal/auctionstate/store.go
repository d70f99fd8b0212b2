package auctionstate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"bidbazaar/internal/gateway"
	"bidbazaar/internal/marketerrors"
	"bidbazaar/internal/models"
	"bidbazaar/utils"
)

// listPageSize asks for a generous page so price/status refinement can run
// client-side without paging through results.
const listPageSize = 100

// Store owns the canonical auction list and its derived sorted-and-filtered
// view. All mutation goes through its operations; callers get copies, never
// internal slices.
type Store struct {
	mu  sync.RWMutex
	api gateway.AuctionAPI

	auctions []models.Auction
	filtered []models.Auction
	filters  Filters
	sortBy   models.SortKey
	loading  bool
	lastErr  string

	// offline is set while the derived view is built from the bundled
	// sample dataset rather than server data.
	offline         bool
	fallbackEnabled bool

	// Overlapping loads are resolved by sequence number: a response is
	// dropped if a later-issued one has already been applied.
	loadSeq    uint64
	appliedSeq uint64

	reload *utils.Debouncer
	now    func() time.Time
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithFallback toggles substitution of the sample dataset on failed or empty
// listings. On by default.
func WithFallback(enabled bool) Option {
	return func(s *Store) { s.fallbackEnabled = enabled }
}

// WithDebounce sets the quiet period before filter changes trigger a reload
func WithDebounce(delay time.Duration) Option {
	return func(s *Store) { s.reload = utils.NewDebouncer(delay) }
}

// NewStore creates a Store backed by the given API
func NewStore(api gateway.AuctionAPI, opts ...Option) *Store {
	s := &Store{
		api:             api,
		sortBy:          models.SortNewest,
		fallbackEnabled: true,
		reload:          utils.NewDebouncer(500 * time.Millisecond),
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close cancels any pending debounced reload
func (s *Store) Close() {
	s.reload.Stop()
}

// recompute rebuilds the derived view from the canonical list. Callers hold
// the write lock.
func (s *Store) recompute() {
	s.filtered = FilterAuctions(SortAuctions(s.auctions, s.sortBy), s.filters, s.now())
}

func snapshot(list []models.Auction) []models.Auction {
	return append([]models.Auction(nil), list...)
}

// Load fetches auctions matching the server-relevant filters and replaces
// the canonical list. A failed or empty listing substitutes the sample
// dataset (when enabled) instead of surfacing an error, so the returned
// derived view is populated either way.
func (s *Store) Load(ctx context.Context, override *Filters) []models.Auction {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.loadSeq++
	seq := s.loadSeq
	criteria := s.filters
	if override != nil {
		criteria = *override
	}
	s.mu.Unlock()

	resp, err := s.api.ListAuctions(ctx, gateway.ListParams{
		Search:   criteria.Search,
		Category: criteria.Category,
		Location: criteria.Location,
		Page:     1,
		PerPage:  listPageSize,
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if seq <= s.appliedSeq {
		// A later load already landed; this response is stale.
		utils.Info("auctions: dropping stale listing response", map[string]any{"seq": seq})
		return snapshot(s.filtered)
	}
	s.appliedSeq = seq

	switch {
	case err == nil && len(resp.Auctions) > 0:
		s.auctions = resp.Auctions
		s.offline = false
	case s.fallbackEnabled:
		if err != nil {
			utils.Warn("auctions: listing failed, substituting sample data", map[string]any{"error": err.Error()})
		} else {
			utils.Info("auctions: empty listing, substituting sample data", nil)
		}
		s.auctions = sampleAuctions(s.now())
		s.offline = true
	case err != nil:
		s.lastErr = err.Error()
	default:
		s.auctions = nil
		s.offline = false
	}

	s.recompute()
	return snapshot(s.filtered)
}

// CreateAuction validates and submits a new auction; on success it is
// prepended to the canonical list.
func (s *Store) CreateAuction(ctx context.Context, req gateway.CreateAuctionRequest) (models.Auction, error) {
	if err := validateCreate(req, s.now()); err != nil {
		return models.Auction{}, err
	}

	s.setLoading(true)
	created, err := s.api.CreateAuction(ctx, req)
	s.setLoading(false)
	if err != nil {
		s.setError(err.Error())
		return models.Auction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""
	s.auctions = append([]models.Auction{created}, s.auctions...)
	s.recompute()
	return created, nil
}

func validateCreate(req gateway.CreateAuctionRequest, now time.Time) error {
	switch {
	case req.Title == "":
		return fmt.Errorf("%w: title is required", marketerrors.ErrInvalidInput)
	case req.Description == "":
		return fmt.Errorf("%w: description is required", marketerrors.ErrInvalidInput)
	case req.Category == "":
		return fmt.Errorf("%w: category is required", marketerrors.ErrInvalidInput)
	case req.Location == "":
		return fmt.Errorf("%w: location is required", marketerrors.ErrInvalidInput)
	case req.StartingBid <= 0:
		return fmt.Errorf("%w: starting bid must be positive", marketerrors.ErrInvalidInput)
	}

	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return fmt.Errorf("%w: invalid end time format", marketerrors.ErrInvalidInput)
	}
	if !end.After(now) {
		return fmt.Errorf("%w: end time must be in the future", marketerrors.ErrInvalidInput)
	}
	return nil
}

// PlaceBid submits a bid and, on acceptance, updates exactly the matching
// auction: its current bid becomes amount and the returned bid is prepended
// to its bid list. Whether amount beats the current price is the server's
// call, not ours.
func (s *Store) PlaceBid(ctx context.Context, auctionID int, amount float64, description string) (models.Bid, error) {
	if amount <= 0 {
		return models.Bid{}, fmt.Errorf("%w: bid amount must be positive", marketerrors.ErrInvalidInput)
	}

	s.setLoading(true)
	bid, err := s.api.PlaceBid(ctx, auctionID, gateway.PlaceBidRequest{Amount: amount, Description: description})
	s.setLoading(false)
	if err != nil {
		s.setError(err.Error())
		return models.Bid{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""
	for i := range s.auctions {
		if s.auctions[i].ID != auctionID {
			continue
		}
		updated := amount
		s.auctions[i].CurrentBid = &updated
		s.auctions[i].Bids = append([]models.Bid{bid}, s.auctions[i].Bids...)
		break
	}
	s.recompute()
	return bid, nil
}

// UpdateAuction submits a partial update and reconciles the matching
// canonical entry with the server's version.
func (s *Store) UpdateAuction(ctx context.Context, auctionID int, req gateway.UpdateAuctionRequest) (models.Auction, error) {
	updated, err := s.api.UpdateAuction(ctx, auctionID, req)
	if err != nil {
		s.setError(err.Error())
		return models.Auction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.auctions {
		if s.auctions[i].ID == auctionID {
			s.auctions[i] = updated
			break
		}
	}
	s.recompute()
	return updated, nil
}

// SetFilters merges the patch into the current criteria and recomputes the
// derived view immediately. If a server-side criterion changed, a reload is
// scheduled after the debounce delay so typing does not flood the network.
func (s *Store) SetFilters(patch FilterPatch) error {
	s.mu.Lock()
	next, err := s.filters.apply(patch)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.filters = next
	s.recompute()
	s.mu.Unlock()

	if patch.touchesServerFilters() {
		s.reload.Trigger(func() {
			s.Load(context.Background(), nil)
		})
	}
	return nil
}

// SetSort switches the active sort key and rebuilds the derived view. No
// network call.
func (s *Store) SetSort(key models.SortKey) error {
	if !key.Valid() {
		return fmt.Errorf("%w: unknown sort key %q", marketerrors.ErrInvalidInput, key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortBy = key
	s.recompute()
	return nil
}

// GetAuctionByID returns the auction from canonical state when present, and
// otherwise fetches it without mutating state. The second result reports
// whether an auction was found.
func (s *Store) GetAuctionByID(ctx context.Context, id int) (models.Auction, bool) {
	s.mu.RLock()
	for _, a := range s.auctions {
		if a.ID == id {
			s.mu.RUnlock()
			return a, true
		}
	}
	s.mu.RUnlock()

	fetched, err := s.api.GetAuction(ctx, id)
	if err != nil {
		utils.Warn("auctions: single fetch failed", map[string]any{"auction_id": id, "error": err.Error()})
		return models.Auction{}, false
	}
	return fetched, true
}

// Auctions returns a copy of the canonical list
func (s *Store) Auctions() []models.Auction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(s.auctions)
}

// Filtered returns a copy of the derived sorted-and-filtered view
func (s *Store) Filtered() []models.Auction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(s.filtered)
}

// CurrentFilters returns the active criteria
func (s *Store) CurrentFilters() Filters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters
}

// SortBy returns the active sort key
func (s *Store) SortBy() models.SortKey {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortBy
}

// IsLoading reports whether a network operation is in flight
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the last operation error message, empty when none
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Offline reports whether the derived view is built from sample data
func (s *Store) Offline() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.offline
}

// ClearError discards the retained error message
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
	if v {
		s.lastErr = ""
	}
}

func (s *Store) setError(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = message
}
