package stubserver

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bidbazaar/internal/marketerrors"
	"bidbazaar/internal/models"
)

func seededRepo(t *testing.T, now time.Time) (*Repo, models.User, models.User, models.Auction) {
	t.Helper()

	repo := NewRepo(func() time.Time { return now })

	provider, err := repo.AddUser("provider", "provider@example.com", "", "pw", true)
	require.NoError(t, err)
	bidder, err := repo.AddUser("bidder", "bidder@example.com", "", "pw", false)
	require.NoError(t, err)

	auction, err := repo.CreateAuction(provider, models.Auction{
		Title:       "House Cleaning Service",
		Description: "Deep cleaning",
		Category:    "cleaning",
		Location:    "Bangalore",
		StartingBid: 2000,
		EndTime:     now.Add(24 * time.Hour),
	})
	require.NoError(t, err)

	return repo, provider, bidder, auction
}

// Tests AddUser
func TestRepo_AddUser(t *testing.T) {
	repo := NewRepo(nil)

	user, err := repo.AddUser("alice", "alice@example.com", "9876543210", "pw", true)
	require.NoError(t, err)
	require.Equal(t, 1, user.ID)
	require.True(t, user.IsServiceProvider)

	_, err = repo.AddUser("alice", "other@example.com", "", "pw", false)
	require.True(t, errors.Is(err, marketerrors.ErrUsernameTaken))

	_, err = repo.AddUser("bob", "alice@example.com", "", "pw", false)
	require.True(t, errors.Is(err, marketerrors.ErrEmailTaken))
}

// Tests Authenticate and session handling
func TestRepo_Sessions(t *testing.T) {
	repo := NewRepo(nil)
	_, err := repo.AddUser("alice", "alice@example.com", "", "secret", false)
	require.NoError(t, err)

	_, _, err = repo.Authenticate("alice", "wrong")
	require.True(t, errors.Is(err, marketerrors.ErrBadCredentials))

	_, _, err = repo.Authenticate("nobody", "secret")
	require.True(t, errors.Is(err, marketerrors.ErrBadCredentials))

	user, token, err := repo.Authenticate("alice", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	resolved, ok := repo.SessionUser(token)
	require.True(t, ok)
	require.Equal(t, user, resolved)

	repo.DropSession(token)
	_, ok = repo.SessionUser(token)
	require.False(t, ok)
}

// Tests PlaceBid
func TestRepo_PlaceBid(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		amount        float64
		asCreator     bool
		expire        bool
		deactivate    bool
		expectedError error
	}{
		{name: "valid_first_bid", amount: 1500},
		{name: "equal_to_current_price", amount: 2000, expectedError: marketerrors.ErrBidNotLower},
		{name: "above_current_price", amount: 2500, expectedError: marketerrors.ErrBidNotLower},
		{name: "zero_amount", amount: 0, expectedError: marketerrors.ErrInvalidInput},
		{name: "negative_amount", amount: -100, expectedError: marketerrors.ErrInvalidInput},
		{name: "own_auction", amount: 1500, asCreator: true, expectedError: marketerrors.ErrOwnAuction},
		{name: "expired_auction", amount: 1500, expire: true, expectedError: marketerrors.ErrAuctionEnded},
		{name: "deactivated_auction", amount: 1500, deactivate: true, expectedError: marketerrors.ErrAuctionEnded},
	}

	for _, tc := range tests {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			repo, provider, bidder, auction := seededRepo(t, now)

			if tc.expire {
				past := now.Add(-time.Hour)
				_, err := repo.UpdateAuction(auction.ID, provider.ID, nil, nil, nil, nil, nil, nil, &past)
				require.NoError(t, err)
			}
			if tc.deactivate {
				inactive := false
				_, err := repo.UpdateAuction(auction.ID, provider.ID, nil, nil, nil, nil, &inactive, nil, nil)
				require.NoError(t, err)
			}

			who := bidder
			if tc.asCreator {
				who = provider
			}

			bid, err := repo.PlaceBid(auction.ID, who, tc.amount)

			if tc.expectedError != nil {
				require.Error(t, err)
				require.True(t, errors.Is(err, tc.expectedError), "expected error: %v, got: %v", tc.expectedError, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.amount, bid.Amount)
			require.Equal(t, who.Username, bid.Bidder.Username)

			stored, err := repo.GetAuction(auction.ID)
			require.NoError(t, err)
			require.Equal(t, tc.amount, stored.EffectivePrice())
			require.Equal(t, bid, stored.Bids[0])
		})
	}
}

// Each accepted bid must be strictly below the previous one
func TestRepo_PlaceBid_LowersThePrice(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	repo, _, bidder, auction := seededRepo(t, now)

	for _, amount := range []float64{1800, 1500, 1200} {
		_, err := repo.PlaceBid(auction.ID, bidder, amount)
		require.NoError(t, err)
	}

	_, err := repo.PlaceBid(auction.ID, bidder, 1200)
	require.True(t, errors.Is(err, marketerrors.ErrBidNotLower))

	stored, err := repo.GetAuction(auction.ID)
	require.NoError(t, err)
	require.Equal(t, 1200.0, stored.EffectivePrice())
	require.Len(t, stored.Bids, 3)
	// Newest first
	require.Equal(t, 1200.0, stored.Bids[0].Amount)
	require.Equal(t, 1800.0, stored.Bids[2].Amount)
}

// Tests ListAuctions
func TestRepo_ListAuctions(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	tick := now
	repo := NewRepo(func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	})

	provider, err := repo.AddUser("provider", "provider@example.com", "", "pw", true)
	require.NoError(t, err)

	seed := []models.Auction{
		{Title: "House Cleaning", Description: "Deep cleaning", Category: "cleaning", Location: "Bangalore", StartingBid: 2000, EndTime: now.Add(24 * time.Hour)},
		{Title: "Math Tutoring", Description: "Algebra help", Category: "tutoring", Location: "Noida", StartingBid: 1000, EndTime: now.Add(48 * time.Hour)},
		{Title: "Office Cleaning", Description: "Weekly contract", Category: "cleaning", Location: "Pune", StartingBid: 3000, EndTime: now.Add(-time.Hour)},
	}
	for _, a := range seed {
		_, err := repo.CreateAuction(provider, a)
		require.NoError(t, err)
	}

	t.Run("hides_expired_auctions_and_sorts_newest_first", func(t *testing.T) {
		listed, total := repo.ListAuctions("", "", "", 1, 10)
		require.Equal(t, 2, total)
		require.Equal(t, "Math Tutoring", listed[0].Title)
		require.Equal(t, "House Cleaning", listed[1].Title)
	})

	t.Run("search_covers_title_and_description", func(t *testing.T) {
		listed, total := repo.ListAuctions("algebra", "", "", 1, 10)
		require.Equal(t, 1, total)
		require.Equal(t, "Math Tutoring", listed[0].Title)
	})

	t.Run("category_is_exact_and_location_is_substring", func(t *testing.T) {
		_, total := repo.ListAuctions("", "cleaning", "", 1, 10)
		require.Equal(t, 1, total, "the expired cleaning auction stays hidden")

		_, total = repo.ListAuctions("", "", "noida", 1, 10)
		require.Equal(t, 1, total)
	})

	t.Run("pages_past_the_end_are_empty", func(t *testing.T) {
		listed, total := repo.ListAuctions("", "", "", 2, 10)
		require.Equal(t, 2, total)
		require.Empty(t, listed)
	})

	t.Run("pagination_slices_the_result", func(t *testing.T) {
		first, total := repo.ListAuctions("", "", "", 1, 1)
		require.Equal(t, 2, total)
		require.Len(t, first, 1)

		second, _ := repo.ListAuctions("", "", "", 2, 1)
		require.Len(t, second, 1)
		require.NotEqual(t, first[0].ID, second[0].ID)
	})
}

// Tests CreateAuction and UpdateAuction authorization
func TestRepo_AuctionOwnership(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	repo, _, bidder, auction := seededRepo(t, now)

	_, err := repo.CreateAuction(bidder, models.Auction{Title: "X", EndTime: now.Add(time.Hour)})
	require.True(t, errors.Is(err, marketerrors.ErrNotProvider))

	title := "Hijacked"
	_, err = repo.UpdateAuction(auction.ID, bidder.ID, &title, nil, nil, nil, nil, nil, nil)
	require.True(t, errors.Is(err, marketerrors.ErrUnauthorized))

	_, err = repo.UpdateAuction(999, bidder.ID, &title, nil, nil, nil, nil, nil, nil)
	require.True(t, errors.Is(err, marketerrors.ErrAuctionNotFound))
}

// Tests dashboard queries
func TestRepo_DashboardQueries(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	repo, provider, bidder, auction := seededRepo(t, now)

	_, err := repo.PlaceBid(auction.ID, bidder, 1500)
	require.NoError(t, err)
	_, err = repo.PlaceBid(auction.ID, bidder, 1200)
	require.NoError(t, err)

	owned := repo.AuctionsByCreator(provider.ID)
	require.Len(t, owned, 1)
	require.Equal(t, auction.ID, owned[0].ID)
	require.Empty(t, repo.AuctionsByCreator(bidder.ID))

	bids := repo.BidsByUser(bidder.ID)
	require.Len(t, bids, 2)
	require.Equal(t, 1200.0, bids[0].Bid.Amount, "newest first")
	require.Equal(t, auction.ID, bids[0].Auction.ID)
	require.Empty(t, repo.BidsByUser(provider.ID))
}

// Returned auctions are snapshots, not views into repo state
func TestRepo_ReturnsCopies(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	repo, _, bidder, auction := seededRepo(t, now)

	_, err := repo.PlaceBid(auction.ID, bidder, 1500)
	require.NoError(t, err)

	got, err := repo.GetAuction(auction.ID)
	require.NoError(t, err)
	got.Title = "Mutated"
	*got.CurrentBid = 1
	got.Bids[0].Amount = 1

	fresh, err := repo.GetAuction(auction.ID)
	require.NoError(t, err)
	require.Equal(t, "House Cleaning Service", fresh.Title)
	require.Equal(t, 1500.0, *fresh.CurrentBid)
	require.Equal(t, 1500.0, fresh.Bids[0].Amount)
}

// Concurrent bidders never leave the price above an accepted bid
func TestRepo_ConcurrentBids(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	repo, _, _, auction := seededRepo(t, now)

	const workers = 20
	bidders := make([]models.User, workers)
	for i := range bidders {
		user, err := repo.AddUser(
			fmt.Sprintf("bidder%d", i),
			fmt.Sprintf("bidder%d@example.com", i),
			"", "pw", false)
		require.NoError(t, err)
		bidders[i] = user
	}

	var wg sync.WaitGroup
	accepted := make([]float64, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			amount := 1900 - float64(i*10)
			if _, err := repo.PlaceBid(auction.ID, bidders[i], amount); err == nil {
				accepted[i] = amount
			}
		}(i)
	}
	wg.Wait()

	stored, err := repo.GetAuction(auction.ID)
	require.NoError(t, err)

	lowest := auction.StartingBid
	count := 0
	for _, amount := range accepted {
		if amount == 0 {
			continue
		}
		count++
		if amount < lowest {
			lowest = amount
		}
	}
	require.Greater(t, count, 0)
	require.Equal(t, lowest, stored.EffectivePrice())
	require.Len(t, stored.Bids, count)
}
