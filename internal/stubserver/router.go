package stubserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// handlerSet is what the router needs from the marketplace handler package;
// declared here to keep the dependency direction handler -> stubserver.
type handlerSet interface {
	RegisterHandler(c *gin.Context)
	LoginHandler(c *gin.Context)
	LogoutHandler(c *gin.Context)
	CurrentUserHandler(c *gin.Context)
	ListAuctionsHandler(c *gin.Context)
	GetAuctionHandler(c *gin.Context)
	CreateAuctionHandler(c *gin.Context)
	UpdateAuctionHandler(c *gin.Context)
	PlaceBidHandler(c *gin.Context)
	CategoriesHandler(c *gin.Context)
	StatesHandler(c *gin.Context)
	DashboardHandler(c *gin.Context)
}

// SetupRouter configures all Gin routes for the stub backend
func SetupRouter(repo *Repo, h handlerSet) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC().Format(time.RFC3339)})
	})

	auth := router.Group("/api/auth")
	{
		auth.POST("/register", h.RegisterHandler)
		auth.POST("/login", h.LoginHandler)
		auth.POST("/logout", h.LogoutHandler)
		auth.GET("/me", AuthRequired(repo), h.CurrentUserHandler)
	}

	auctions := router.Group("/api/auctions")
	{
		auctions.GET("", h.ListAuctionsHandler)
		auctions.GET("/:id", h.GetAuctionHandler)
		auctions.POST("", AuthRequired(repo), h.CreateAuctionHandler)
		auctions.PUT("/:id", AuthRequired(repo), h.UpdateAuctionHandler)
		auctions.POST("/:id/bid", AuthRequired(repo), h.PlaceBidHandler)
	}

	router.GET("/api/categories", h.CategoriesHandler)
	router.GET("/api/states", h.StatesHandler)
	router.GET("/api/dashboard", AuthRequired(repo), h.DashboardHandler)

	return router
}
