package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"soothely/handlers"
	"soothely/middleware"
	"soothely/utils"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Availability *handlers.AvailabilityHandler
	Booking      *handlers.BookingHandler
	Quote        *handlers.QuoteHandler
	Rules        *handlers.RulesHandler
	Provider     *handlers.ProviderHandler
}

// SetupRouter wires the gin engine: global middleware, the public booking
// and quote surfaces, and the JWT-guarded admin surface.
func SetupRouter(h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RateLimiter())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		avail := api.Group("/availability")
		{
			avail.POST("/search", h.Availability.Search)
			avail.GET("/providers/:id/slots", h.Availability.Slots)
		}

		bookings := api.Group("/bookings")
		{
			bookings.POST("/sessions", h.Booking.StartSession)
			bookings.PUT("/sessions/:id/provider", h.Booking.SelectProvider)
			bookings.POST("/sessions/:id/confirm", h.Booking.Confirm)
			bookings.DELETE("/commitments/:id", h.Booking.Cancel)
		}

		quotes := api.Group("/quotes")
		{
			quotes.POST("", h.Quote.Create)
			quotes.GET("/:id", h.Quote.Get)
			quotes.PUT("/:id/schedule", h.Quote.UpdateSchedule)
			quotes.POST("/:id/validate", h.Quote.Validate)
			quotes.POST("/:id/price", h.Quote.Price)
			quotes.POST("/:id/submit", h.Quote.Submit)
		}

		admin := api.Group("/admin", middleware.AdminAuth())
		{
			admin.GET("/rules/business", h.Rules.GetBusinessRules)
			admin.PUT("/rules/business", h.Rules.UpdateBusinessRules)
			admin.GET("/rules/pricing", h.Rules.ListPricingRules)
			admin.POST("/rules/pricing", h.Rules.CreatePricingRule)
			admin.DELETE("/rules/pricing/:id", h.Rules.DeletePricingRule)
			admin.GET("/rules/duration", h.Rules.ListDurationRules)
			admin.POST("/rules/duration", h.Rules.CreateDurationRule)
			admin.DELETE("/rules/duration/:id", h.Rules.DeleteDurationRule)

			admin.GET("/fees/preview", h.Rules.FeesPreview)

			admin.GET("/providers", h.Provider.List)
			admin.GET("/providers/:id", h.Provider.Get)
			admin.POST("/providers", h.Provider.Create)
			admin.PUT("/providers/:id", h.Provider.Update)
			admin.DELETE("/providers/:id", h.Provider.Delete)
		}
	}

	return router
}
