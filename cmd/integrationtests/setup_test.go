package integrationtests

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"bidbazaar/internal/auctionstate"
	"bidbazaar/internal/authstate"
	"bidbazaar/internal/gateway"
	"bidbazaar/internal/models"
	"bidbazaar/internal/storage"
	"bidbazaar/internal/stubserver"
	"bidbazaar/services/marketplace/handler"
)

// testClock is the frozen instant every integration test runs at
var testClock = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func frozenNow() time.Time { return testClock }

// testEnv wires the full client stack against an in-process stub backend
type testEnv struct {
	Server   *httptest.Server
	Repo     *stubserver.Repo
	Gateway  *gateway.Gateway
	Storage  *storage.MemoryStore
	Auth     *authstate.Manager
	Auctions *auctionstate.Store
}

// SetupTestEnv starts a stub backend and a client stack pointed at it
func SetupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)
	repo := stubserver.NewRepo(frozenNow)
	h := handler.NewMarketplaceHandler(repo, frozenNow)
	server := httptest.NewServer(stubserver.SetupRouter(repo, h))
	t.Cleanup(server.Close)

	gw := gateway.New(server.URL, 5*time.Second)
	store := storage.NewMemoryStore()
	auth := authstate.NewManager(gw, store, gw)
	auctions := auctionstate.NewStore(gw,
		auctionstate.WithClock(frozenNow),
		auctionstate.WithDebounce(10*time.Millisecond),
	)
	t.Cleanup(auctions.Close)

	return &testEnv{
		Server:   server,
		Repo:     repo,
		Gateway:  gw,
		Storage:  store,
		Auth:     auth,
		Auctions: auctions,
	}
}

// SeedProviderWithAuctions registers a provider account and its open auctions
func SeedProviderWithAuctions(t *testing.T, repo *stubserver.Repo, auctions ...models.Auction) models.User {
	t.Helper()

	provider, err := repo.AddUser("seed_provider", "seed@example.com", "", "pw123456", true)
	if err != nil {
		t.Fatalf("failed to seed provider: %v", err)
	}
	for _, a := range auctions {
		if _, err := repo.CreateAuction(provider, a); err != nil {
			t.Fatalf("failed to seed auction %q: %v", a.Title, err)
		}
	}
	return provider
}
