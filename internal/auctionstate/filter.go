package auctionstate

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"bidbazaar/internal/marketerrors"
	"bidbazaar/internal/models"
)

// Filters is the active refinement criteria. Zero values mean "no
// constraint". Search, category and location are also sent to the server on
// reloads; price bounds and status are client-side only.
type Filters struct {
	Search   string
	Category string
	Location string
	MinPrice *float64
	MaxPrice *float64
	Status   models.Status
}

// FilterPatch is a partial criteria update. Nil fields leave the current
// value unchanged; empty strings clear it. Prices arrive as the raw input
// text and are parsed strictly.
type FilterPatch struct {
	Search   *string
	Category *string
	Location *string
	MinPrice *string
	MaxPrice *string
	Status   *string
}

// touchesServerFilters reports whether the patch changes a criterion the
// server can narrow on, meaning a reload is worthwhile.
func (p FilterPatch) touchesServerFilters() bool {
	return p.Search != nil || p.Category != nil || p.Location != nil
}

func parsePriceBound(name, raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v < 0 {
		return nil, fmt.Errorf("%w: %s price %q is not a valid amount", marketerrors.ErrInvalidInput, name, raw)
	}
	return &v, nil
}

// apply merges the patch into f, validating parsed fields before any change
func (f Filters) apply(p FilterPatch) (Filters, error) {
	next := f

	if p.MinPrice != nil {
		bound, err := parsePriceBound("minimum", *p.MinPrice)
		if err != nil {
			return f, err
		}
		next.MinPrice = bound
	}
	if p.MaxPrice != nil {
		bound, err := parsePriceBound("maximum", *p.MaxPrice)
		if err != nil {
			return f, err
		}
		next.MaxPrice = bound
	}
	if p.Status != nil {
		status := models.Status(*p.Status)
		switch status {
		case "", models.StatusInactive, models.StatusExpired, models.StatusEndingSoon, models.StatusHotDeal, models.StatusActive:
			next.Status = status
		default:
			return f, fmt.Errorf("%w: unknown status %q", marketerrors.ErrInvalidInput, *p.Status)
		}
	}
	if p.Search != nil {
		next.Search = *p.Search
	}
	if p.Category != nil {
		next.Category = *p.Category
	}
	if p.Location != nil {
		next.Location = *p.Location
	}
	return next, nil
}

// SortAuctions returns a stably sorted copy of auctions; ties keep their
// original relative order. Unknown keys return the list as-is.
func SortAuctions(auctions []models.Auction, key models.SortKey) []models.Auction {
	sorted := append([]models.Auction(nil), auctions...)

	switch key {
	case models.SortNewest:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		})
	case models.SortOldest:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		})
	case models.SortEndingSoon:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].EndTime.Before(sorted[j].EndTime)
		})
	case models.SortLowestBid:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].EffectivePrice() < sorted[j].EffectivePrice()
		})
	case models.SortHighestBid:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].EffectivePrice() > sorted[j].EffectivePrice()
		})
	}
	return sorted
}

// FilterAuctions returns the auctions satisfying every active constraint
func FilterAuctions(auctions []models.Auction, f Filters, now time.Time) []models.Auction {
	matched := make([]models.Auction, 0, len(auctions))
	for _, a := range auctions {
		if matches(a, f, now) {
			matched = append(matched, a)
		}
	}
	return matched
}

func matches(a models.Auction, f Filters, now time.Time) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(a.Title), needle) &&
			!strings.Contains(strings.ToLower(a.Description), needle) &&
			!strings.Contains(strings.ToLower(a.Location), needle) {
			return false
		}
	}

	if f.Category != "" && a.Category != f.Category {
		return false
	}

	if f.Location != "" {
		needle := strings.ToLower(f.Location)
		if !strings.Contains(strings.ToLower(a.Location), needle) &&
			!strings.Contains(strings.ToLower(a.City), needle) &&
			!strings.Contains(strings.ToLower(a.State), needle) {
			return false
		}
	}

	if f.MinPrice != nil || f.MaxPrice != nil {
		price := a.EffectivePrice()
		if f.MinPrice != nil && price < *f.MinPrice {
			return false
		}
		if f.MaxPrice != nil && price > *f.MaxPrice {
			return false
		}
	}

	if f.Status != "" && models.StatusOf(a, now) != f.Status {
		return false
	}

	return true
}
