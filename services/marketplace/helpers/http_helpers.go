package helpers

import (
	"errors"
	"net/http"

	"bidbazaar/internal/marketerrors"
	"bidbazaar/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, marketerrors.ErrAuctionNotFound):
		return http.StatusNotFound, "auction not found"
	case errors.Is(err, marketerrors.ErrAuctionEnded):
		return http.StatusBadRequest, "this auction has ended"
	case errors.Is(err, marketerrors.ErrOwnAuction):
		return http.StatusBadRequest, "you cannot bid on your own auction"
	case errors.Is(err, marketerrors.ErrBidNotLower):
		return http.StatusBadRequest, "your bid must be lower than the current bid"
	case errors.Is(err, marketerrors.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, marketerrors.ErrUsernameTaken):
		return http.StatusBadRequest, "username already exists"
	case errors.Is(err, marketerrors.ErrEmailTaken):
		return http.StatusBadRequest, "email already exists"
	case errors.Is(err, marketerrors.ErrBadCredentials):
		return http.StatusUnauthorized, "invalid username or password"
	case errors.Is(err, marketerrors.ErrUnauthorized):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, marketerrors.ErrNotProvider):
		return http.StatusForbidden, "only service providers can create auctions"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
