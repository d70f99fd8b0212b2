package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Tests FormatCurrency
func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{name: "zero", amount: 0, expected: "₹0"},
		{name: "under_a_thousand", amount: 500, expected: "₹500"},
		{name: "thousands", amount: 1500, expected: "₹1,500"},
		{name: "lakhs", amount: 150000, expected: "₹1,50,000"},
		{name: "crores", amount: 12345678, expected: "₹1,23,45,678"},
		{name: "rounds_to_whole_rupees", amount: 1499.50, expected: "₹1,500"},
		{name: "negative", amount: -2500, expected: "-₹2,500"},
	}

	for _, tc := range tests {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.expected, FormatCurrency(tc.amount))
		})
	}
}

// Tests FormatTimeRemaining
func TestFormatTimeRemaining(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		end      time.Time
		expected string
	}{
		{name: "already_past", end: now.Add(-time.Second), expected: "Expired"},
		{name: "under_a_minute", end: now.Add(30 * time.Second), expected: "in less than a minute"},
		{name: "single_minute", end: now.Add(90 * time.Second), expected: "in 1 minute"},
		{name: "minutes", end: now.Add(45 * time.Minute), expected: "in 45 minutes"},
		{name: "single_hour", end: now.Add(70 * time.Minute), expected: "in about 1 hour"},
		{name: "hours", end: now.Add(5 * time.Hour), expected: "in about 5 hours"},
		{name: "single_day", end: now.Add(25 * time.Hour), expected: "in 1 day"},
		{name: "days", end: now.Add(72 * time.Hour), expected: "in 3 days"},
	}

	for _, tc := range tests {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.expected, FormatTimeRemaining(tc.end, now))
		})
	}
}

// Tests TimeRemainingSeconds
func TestTimeRemainingSeconds(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	require.Equal(t, int64(90), TimeRemainingSeconds(now.Add(90*time.Second), now))
	require.Equal(t, int64(0), TimeRemainingSeconds(now.Add(-time.Hour), now))
}

// Tests IsValidEmail
func TestIsValidEmail(t *testing.T) {
	valid := []string{"user@example.com", "a.b+c@sub.domain.in"}
	invalid := []string{"", "plain", "no@dot", "spaces in@example.com", "@example.com"}

	for _, email := range valid {
		require.True(t, IsValidEmail(email), "email %q", email)
	}
	for _, email := range invalid {
		require.False(t, IsValidEmail(email), "email %q", email)
	}
}

// Tests IsValidPhone
func TestIsValidPhone(t *testing.T) {
	valid := []string{"9876543210", "+919876543210", "+91 9876543210", "+91-9876543210", "09876543210", "919876543210"}
	invalid := []string{"", "12345", "6876543210", "98765432101", "abcdefghij"}

	for _, phone := range valid {
		require.True(t, IsValidPhone(phone), "phone %q", phone)
	}
	for _, phone := range invalid {
		require.False(t, IsValidPhone(phone), "phone %q", phone)
	}
}
