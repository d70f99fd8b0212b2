package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONError sends the flat error envelope the marketplace API uses
func JSONError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// JSONMessage sends a bare confirmation message
func JSONMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}
