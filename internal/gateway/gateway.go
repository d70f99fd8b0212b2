package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"bidbazaar/internal/marketerrors"
	"bidbazaar/internal/models"
	"bidbazaar/utils"
)

// AuctionAPI is the auction-facing surface of the marketplace API
type AuctionAPI interface {
	ListAuctions(ctx context.Context, params ListParams) (ListAuctionsResponse, error)
	GetAuction(ctx context.Context, id int) (models.Auction, error)
	CreateAuction(ctx context.Context, req CreateAuctionRequest) (models.Auction, error)
	UpdateAuction(ctx context.Context, id int, req UpdateAuctionRequest) (models.Auction, error)
	PlaceBid(ctx context.Context, auctionID int, req PlaceBidRequest) (models.Bid, error)
}

// AuthAPI is the session-facing surface of the marketplace API
type AuthAPI interface {
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (AuthResponse, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (models.User, error)
}

// ReferenceAPI serves the static reference and aggregate endpoints
type ReferenceAPI interface {
	Categories(ctx context.Context) ([]models.AuctionCategory, error)
	States(ctx context.Context) ([]models.Region, error)
	Dashboard(ctx context.Context) (Dashboard, error)
}

// Gateway is a stateless typed wrapper over the HTTP JSON API. All failures
// are normalized into one of three classes: the server rejected the request
// (its message is surfaced), no response was received, or the request could
// not be built at all.
type Gateway struct {
	baseURL string
	httpc   *http.Client

	mu    sync.RWMutex
	token string
}

var _ AuctionAPI = (*Gateway)(nil)
var _ AuthAPI = (*Gateway)(nil)
var _ ReferenceAPI = (*Gateway)(nil)

// New creates a Gateway for the API at baseURL
func New(baseURL string, timeout time.Duration) *Gateway {
	return &Gateway{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// SetToken attaches a bearer token to subsequent requests
func (g *Gateway) SetToken(token string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.token = token
}

// ClearToken removes the bearer token
func (g *Gateway) ClearToken() {
	g.SetToken("")
}

// apiError carries the normalized failure class and its display message
type apiError struct {
	kind    error
	message string
}

func (e *apiError) Error() string { return e.message }
func (e *apiError) Unwrap() error { return e.kind }

func serverErr(message string) error {
	if message == "" {
		message = "Server error occurred"
	}
	return &apiError{kind: marketerrors.ErrServerRejected, message: message}
}

func connectivityErr() error {
	return &apiError{kind: marketerrors.ErrConnectivity, message: "Network error. Please check your connection."}
}

func unexpectedErr() error {
	return &apiError{kind: marketerrors.ErrUnexpected, message: "An unexpected error occurred"}
}

func logFailure(message, method, path string, err error) {
	utils.Warn(message, map[string]any{
		"method": method,
		"path":   path,
		"error":  err.Error(),
	})
}

// do issues one request and decodes the response into out (which may be nil)
func (g *Gateway) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			logFailure("gateway: encode request", method, path, err)
			return unexpectedErr()
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	target := g.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		logFailure("gateway: build request", method, path, err)
		return unexpectedErr()
	}
	req.Header.Set("Content-Type", "application/json")

	g.mu.RLock()
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}
	g.mu.RUnlock()

	resp, err := g.httpc.Do(req)
	if err != nil {
		logFailure("gateway: request failed", method, path, err)
		return connectivityErr()
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var rejection struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&rejection)
		return serverErr(rejection.Error)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		logFailure("gateway: decode response", method, path, err)
		return &apiError{kind: marketerrors.ErrUnexpected, message: "Malformed server response"}
	}
	return nil
}

// ListAuctions fetches a page of auctions matching the server-side filters
func (g *Gateway) ListAuctions(ctx context.Context, params ListParams) (ListAuctionsResponse, error) {
	query := url.Values{}
	if params.Search != "" {
		query.Set("search", params.Search)
	}
	if params.Category != "" {
		query.Set("category", params.Category)
	}
	if params.Location != "" {
		query.Set("location", params.Location)
	}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(params.PerPage))
	}

	var resp ListAuctionsResponse
	if err := g.do(ctx, http.MethodGet, "/api/auctions", query, nil, &resp); err != nil {
		return ListAuctionsResponse{}, err
	}
	return resp, nil
}

// GetAuction fetches a single auction by id
func (g *Gateway) GetAuction(ctx context.Context, id int) (models.Auction, error) {
	var resp auctionEnvelope
	if err := g.do(ctx, http.MethodGet, fmt.Sprintf("/api/auctions/%d", id), nil, nil, &resp); err != nil {
		return models.Auction{}, err
	}
	return resp.Auction, nil
}

// CreateAuction submits a new auction and returns the created record
func (g *Gateway) CreateAuction(ctx context.Context, req CreateAuctionRequest) (models.Auction, error) {
	var resp auctionEnvelope
	if err := g.do(ctx, http.MethodPost, "/api/auctions", nil, req, &resp); err != nil {
		return models.Auction{}, err
	}
	return resp.Auction, nil
}

// UpdateAuction submits a partial update and returns the updated record
func (g *Gateway) UpdateAuction(ctx context.Context, id int, req UpdateAuctionRequest) (models.Auction, error) {
	var resp auctionEnvelope
	if err := g.do(ctx, http.MethodPut, fmt.Sprintf("/api/auctions/%d", id), nil, req, &resp); err != nil {
		return models.Auction{}, err
	}
	return resp.Auction, nil
}

// PlaceBid submits a bid against the given auction
func (g *Gateway) PlaceBid(ctx context.Context, auctionID int, req PlaceBidRequest) (models.Bid, error) {
	var resp bidEnvelope
	if err := g.do(ctx, http.MethodPost, fmt.Sprintf("/api/auctions/%d/bid", auctionID), nil, req, &resp); err != nil {
		return models.Bid{}, err
	}
	return resp.Bid, nil
}

// Register creates a new account and session
func (g *Gateway) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	var resp AuthResponse
	if err := g.do(ctx, http.MethodPost, "/api/auth/register", nil, req, &resp); err != nil {
		return AuthResponse{}, err
	}
	return resp, nil
}

// Login authenticates and returns the session user
func (g *Gateway) Login(ctx context.Context, req LoginRequest) (AuthResponse, error) {
	var resp AuthResponse
	if err := g.do(ctx, http.MethodPost, "/api/auth/login", nil, req, &resp); err != nil {
		return AuthResponse{}, err
	}
	return resp, nil
}

// Logout invalidates the server-side session
func (g *Gateway) Logout(ctx context.Context) error {
	return g.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, nil)
}

// CurrentUser validates the session and returns refreshed user data
func (g *Gateway) CurrentUser(ctx context.Context) (models.User, error) {
	var resp userEnvelope
	if err := g.do(ctx, http.MethodGet, "/api/auth/me", nil, nil, &resp); err != nil {
		return models.User{}, err
	}
	return resp.User, nil
}

// Categories lists the auction categories
func (g *Gateway) Categories(ctx context.Context) ([]models.AuctionCategory, error) {
	var resp categoriesEnvelope
	if err := g.do(ctx, http.MethodGet, "/api/categories", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

// States lists the supported regions
func (g *Gateway) States(ctx context.Context) ([]models.Region, error) {
	var resp statesEnvelope
	if err := g.do(ctx, http.MethodGet, "/api/states", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.States, nil
}

// Dashboard fetches the session user's aggregate dashboard data
func (g *Gateway) Dashboard(ctx context.Context) (Dashboard, error) {
	var resp Dashboard
	if err := g.do(ctx, http.MethodGet, "/api/dashboard", nil, nil, &resp); err != nil {
		return Dashboard{}, err
	}
	return resp, nil
}
