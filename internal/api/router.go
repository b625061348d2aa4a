package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hyein-dev/stayhub-backend/internal/booking"
	bookingHttp "github.com/hyein-dev/stayhub-backend/internal/booking/http"
	"github.com/hyein-dev/stayhub-backend/internal/listing"
	listingHttp "github.com/hyein-dev/stayhub-backend/internal/listing/http"
	"github.com/hyein-dev/stayhub-backend/internal/roomtype"
	roomtypeHttp "github.com/hyein-dev/stayhub-backend/internal/roomtype/http"
	"github.com/hyein-dev/stayhub-backend/internal/search"
	searchHttp "github.com/hyein-dev/stayhub-backend/internal/search/http"
	"github.com/hyein-dev/stayhub-backend/internal/waitlist"
	waitlistHttp "github.com/hyein-dev/stayhub-backend/internal/waitlist/http"
)

// Config carries the services the router exposes over HTTP.
type Config struct {
	IsProduction    bool
	ProdOrigins     string
	ListingService  listing.Service
	RoomTypeService roomtype.Service
	BookingService  booking.Service
	SearchService   search.Service
	WaitlistService waitlist.Service
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = []string{cfg.ProdOrigins}
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	listingHandler := listingHttp.NewHandler(cfg.ListingService)
	roomTypeHandler := roomtypeHttp.NewHandler(cfg.RoomTypeService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	searchHandler := searchHttp.NewHandler(cfg.SearchService)
	waitlistHandler := waitlistHttp.NewHandler(cfg.WaitlistService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		listingHttp.RegisterRoutes(v1, listingHandler)
		roomtypeHttp.RegisterRoutes(v1, roomTypeHandler)
		bookingHttp.RegisterRoutes(v1, bookingHandler)
		searchHttp.RegisterRoutes(v1, searchHandler)
		waitlistHttp.RegisterRoutes(v1, waitlistHandler)
	}

	return r
}
