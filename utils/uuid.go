package utils

import (
	"github.com/google/uuid"
)

// GenerateToken returns a new unique session token string
func GenerateToken() string {
	return uuid.New().String()
}
