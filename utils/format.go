package utils

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^(\+91[-\s]?)?0?(91)?[789]\d{9}$`)
)

// FormatCurrency renders an amount in Indian Rupees with Indian digit
// grouping (last three digits, then pairs), rounded to whole rupees.
func FormatCurrency(amount float64) string {
	negative := amount < 0
	whole := int64(math.Round(math.Abs(amount)))

	digits := fmt.Sprintf("%d", whole)
	grouped := groupIndian(digits)
	if negative {
		return "-₹" + grouped
	}
	return "₹" + grouped
}

// groupIndian inserts commas per the Indian numbering system: 1234567 -> 12,34,567
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var pairs []string
	for len(head) > 2 {
		pairs = append([]string{head[len(head)-2:]}, pairs...)
		head = head[:len(head)-2]
	}
	if head != "" {
		pairs = append([]string{head}, pairs...)
	}
	return strings.Join(append(pairs, tail), ",")
}

// FormatTimeRemaining humanizes how long until end, or "Expired" once past.
func FormatTimeRemaining(end, now time.Time) string {
	if now.After(end) {
		return "Expired"
	}

	d := end.Sub(now)
	switch {
	case d < time.Minute:
		return "in less than a minute"
	case d < time.Hour:
		m := int(d.Minutes())
		if m == 1 {
			return "in 1 minute"
		}
		return fmt.Sprintf("in %d minutes", m)
	case d < 24*time.Hour:
		h := int(math.Round(d.Hours()))
		if h == 1 {
			return "in about 1 hour"
		}
		return fmt.Sprintf("in about %d hours", h)
	default:
		days := int(math.Round(d.Hours() / 24))
		if days == 1 {
			return "in 1 day"
		}
		return fmt.Sprintf("in %d days", days)
	}
}

// FormatDate renders a timestamp for display, e.g. "Jan 02, 2006 15:04"
func FormatDate(t time.Time) string {
	return t.Format("Jan 02, 2006 15:04")
}

// TimeRemainingSeconds returns whole seconds until end, floored at zero
func TimeRemainingSeconds(end, now time.Time) int64 {
	d := end.Sub(now)
	if d <= 0 {
		return 0
	}
	return int64(d.Seconds())
}

// IsValidEmail reports whether the address looks like an email
func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// IsValidPhone validates an Indian mobile number, ignoring embedded spaces
func IsValidPhone(phone string) bool {
	return phoneRe.MatchString(strings.ReplaceAll(phone, " ", ""))
}
