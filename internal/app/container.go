package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hyein-dev/stayhub-backend/internal/api"
	"github.com/hyein-dev/stayhub-backend/internal/booking"
	"github.com/hyein-dev/stayhub-backend/internal/events"
	"github.com/hyein-dev/stayhub-backend/internal/listing"
	"github.com/hyein-dev/stayhub-backend/internal/pkg/cache"
	"github.com/hyein-dev/stayhub-backend/internal/roomtype"
	"github.com/hyein-dev/stayhub-backend/internal/search"
	"github.com/hyein-dev/stayhub-backend/internal/waitlist"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction         bool
	ProdOrigins          string
	DBPool               *pgxpool.Pool
	Publisher            events.Publisher
	MemcachedAddr        string
	CacheLocalTTL        time.Duration
	CacheSharedTTL       time.Duration
	RankingPriorWeight   float64
	RankingPriorMean     float64
	AdmissionLockTimeout time.Duration
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router          *gin.Engine
	WaitlistService waitlist.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Listing Module
	listingRepo := listing.NewPgxRepository(cfg.DBPool)
	listingService := listing.NewService(listingRepo)

	// RoomType Module
	rtRepo := roomtype.NewPgxRepository(cfg.DBPool)
	rtService := roomtype.NewService(rtRepo, listingService)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool, cfg.AdmissionLockTimeout)
	bookingService := booking.NewService(bookingRepo, rtService, cfg.Publisher)

	// Search Module
	searchCache := cache.New(cfg.MemcachedAddr, cfg.CacheLocalTTL, cfg.CacheSharedTTL)
	searchRepo := search.NewPgxRepository(cfg.DBPool)
	searchService := search.NewService(searchRepo, bookingRepo, searchCache, search.RankingConfig{
		PriorWeight: cfg.RankingPriorWeight,
		PriorMean:   cfg.RankingPriorMean,
	})

	// Waitlist Module
	waitlistRepo := waitlist.NewPgxRepository(cfg.DBPool)
	waitlistService := waitlist.NewService(waitlistRepo, rtService, waitlist.LogNotifier{})

	// API Router Config
	routerParams := api.Config{
		IsProduction:    cfg.IsProduction,
		ProdOrigins:     cfg.ProdOrigins,
		ListingService:  listingService,
		RoomTypeService: rtService,
		BookingService:  bookingService,
		SearchService:   searchService,
		WaitlistService: waitlistService,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:          router,
		WaitlistService: waitlistService,
	}
}
