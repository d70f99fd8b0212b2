package models

import "time"

// Status is the derived lifecycle state shown for an auction
type Status string

const (
	StatusInactive   Status = "inactive"
	StatusExpired    Status = "expired"
	StatusEndingSoon Status = "ending_soon"
	StatusHotDeal    Status = "hot_deal"
	StatusActive     Status = "active"
)

// endingSoonWindow is how close to the end time an auction counts as ending soon.
const endingSoonWindow = time.Hour

// StatusOf classifies an auction at the given instant. Rules apply in
// priority order, first match wins: inactive, expired, ending soon, hot deal,
// active.
func StatusOf(a Auction, now time.Time) Status {
	if !a.IsActive {
		return StatusInactive
	}
	if a.IsExpired(now) {
		return StatusExpired
	}
	if a.TimeRemaining(now) < endingSoonWindow {
		return StatusEndingSoon
	}
	if a.IsHotDeal {
		return StatusHotDeal
	}
	return StatusActive
}

// Label returns the display name for the status
func (s Status) Label() string {
	switch s {
	case StatusInactive:
		return "Inactive"
	case StatusExpired:
		return "Expired"
	case StatusEndingSoon:
		return "Ending Soon"
	case StatusHotDeal:
		return "Hot Deal"
	default:
		return "Active"
	}
}

// Color returns the badge color associated with the status
func (s Status) Color() string {
	switch s {
	case StatusInactive:
		return "gray"
	case StatusExpired, StatusHotDeal:
		return "red"
	case StatusEndingSoon:
		return "orange"
	default:
		return "green"
	}
}
