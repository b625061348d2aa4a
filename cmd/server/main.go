package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hyein-dev/stayhub-backend/internal/app"
	"github.com/hyein-dev/stayhub-backend/internal/config"
	"github.com/hyein-dev/stayhub-backend/internal/db"
	"github.com/hyein-dev/stayhub-backend/internal/events"
	"github.com/hyein-dev/stayhub-backend/internal/pkg/daterange"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Connect DB
	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer pool.Close()

	// Event publisher. Without a broker URL cancellations simply skip
	// the capacity-released fanout.
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.AMQPURL != "" {
		publisher, err = events.NewPublisher(cfg.AMQPURL, cfg.AMQPQueue)
		if err != nil {
			log.Fatalf("failed to connect to broker: %v", err)
		}
		defer publisher.Close()
	}

	// Build modules
	container := app.NewContainer(app.Config{
		IsProduction:         cfg.IsProduction,
		ProdOrigins:          cfg.ProdOrigins,
		DBPool:               pool,
		Publisher:            publisher,
		MemcachedAddr:        cfg.MemcachedAddr,
		CacheLocalTTL:        cfg.CacheLocalTTL,
		CacheSharedTTL:       cfg.CacheSharedTTL,
		RankingPriorWeight:   cfg.RankingPriorWeight,
		RankingPriorMean:     cfg.RankingPriorMean,
		AdmissionLockTimeout: cfg.AdmissionLockTimeout,
	})

	// Waitlist consumer: capacity-released events wake waiters whose desired
	// window overlaps the freed one.
	if cfg.AMQPURL != "" {
		consumer, err := events.NewConsumer(cfg.AMQPURL, cfg.AMQPQueue, func(ctx context.Context, ev events.CapacityReleased) error {
			window, err := daterange.New(ev.Checkin, ev.Checkout)
			if err != nil {
				log.Printf("dropping capacity-released event with bad window: %v", err)
				return nil
			}
			_, err = container.WaitlistService.NotifyFreed(ctx, ev.RoomTypeID, window)
			return err
		})
		if err != nil {
			log.Fatalf("failed to start consumer: %v", err)
		}
		defer consumer.Close()

		go func() {
			if err := consumer.Start(ctx); err != nil {
				log.Printf("consumer stopped: %v", err)
			}
		}()
	}

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	// Run server in separate goroutine
	go func() {
		log.Printf("server running on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	log.Println("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}

	log.Println("server exited gracefully")
}
