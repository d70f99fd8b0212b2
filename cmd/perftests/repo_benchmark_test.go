package perftests

import (
	"fmt"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	"bidbazaar/internal/models"
	"bidbazaar/internal/stubserver"
)

func benchRepo(b *testing.B) (*stubserver.Repo, models.User, models.User) {
	b.Helper()

	repo := stubserver.NewRepo(func() time.Time { return benchNow })
	provider, err := repo.AddUser("provider", "provider@example.com", "", "pw", true)
	if err != nil {
		b.Fatalf("failed to seed provider: %v", err)
	}
	bidder, err := repo.AddUser("bidder", "bidder@example.com", "", "pw", false)
	if err != nil {
		b.Fatalf("failed to seed bidder: %v", err)
	}
	return repo, provider, bidder
}

// Benchmark 4: PlaceBid - Isolated Auctions (Low Contention)
func Benchmark_PlaceBid_Isolated(b *testing.B) {
	repo, provider, bidder := benchRepo(b)

	ids := make([]int, b.N)
	for i := 0; i < b.N; i++ {
		a, err := repo.CreateAuction(provider, models.Auction{
			Title:       fmt.Sprintf("Service %d", i),
			Description: "Independent benchmark auction",
			Category:    "cleaning",
			Location:    "Bangalore",
			StartingBid: 5000,
			EndTime:     benchNow.Add(24 * time.Hour),
		})
		if err != nil {
			b.Fatalf("failed to seed auction: %v", err)
		}
		ids[i] = a.ID
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := repo.PlaceBid(ids[i], bidder, 4000); err != nil {
			b.Fatalf("failed to place bid: %v", err)
		}
	}
}

// Benchmark 5: PlaceBid - Shared Auction (High Contention). The reverse rule
// means only strictly lower amounts land, so a shared counter walks the price
// down.
func Benchmark_PlaceBid_ConcurrentSharedAuction(b *testing.B) {
	repo, provider, bidder := benchRepo(b)

	auction, err := repo.CreateAuction(provider, models.Auction{
		Title:       "High-Contention Service",
		Description: "Many users underbidding concurrently",
		Category:    "cleaning",
		Location:    "Bangalore",
		StartingBid: 1 << 40,
		EndTime:     benchNow.Add(24 * time.Hour),
	})
	if err != nil {
		b.Fatalf("failed to seed auction: %v", err)
	}

	var price int64 = 1 << 40

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		for pb.Next() {
			next := atomic.AddInt64(&price, -int64(rnd.Intn(5)+1))
			_, _ = repo.PlaceBid(auction.ID, bidder, float64(next))
		}
	})
}

// Benchmark 6: ListAuctions while bids stream in (Mixed Workload)
func Benchmark_ListAuctions_MixedWorkload(b *testing.B) {
	repo, provider, bidder := benchRepo(b)

	for i := 0; i < 200; i++ {
		_, err := repo.CreateAuction(provider, models.Auction{
			Title:       fmt.Sprintf("Service %d", i),
			Description: "Mixed workload auction",
			Category:    benchCategories[i%len(benchCategories)],
			Location:    "Bangalore",
			StartingBid: 5000,
			EndTime:     benchNow.Add(24 * time.Hour),
		})
		if err != nil {
			b.Fatalf("failed to seed auction: %v", err)
		}
	}

	var price int64 = 5000

	b.ReportAllocs()
	b.ResetTimer()

	// Ratio: 70% readers, 30% writers
	b.RunParallel(func(pb *testing.PB) {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		for pb.Next() {
			if rnd.Intn(10) < 3 {
				next := atomic.AddInt64(&price, -1)
				_, _ = repo.PlaceBid(1+rnd.Intn(200), bidder, float64(next))
			} else {
				repo.ListAuctions("", "cleaning", "", 1, 20)
			}
		}
	})
}
