package main // Entry point package

import (
	"context" // Context for startup deadlines
	"log"     // Logging library

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/travel-booking/internal/config"     // Internal config loader
	"github.com/iliyamo/travel-booking/internal/database"   // MySQL pool + schema bootstrap
	"github.com/iliyamo/travel-booking/internal/handler"    // HTTP handlers
	"github.com/iliyamo/travel-booking/internal/queue"      // Booking event consumer
	"github.com/iliyamo/travel-booking/internal/repository" // Data access layer
	"github.com/iliyamo/travel-booking/internal/router"     // Route registration
)

func main() {
	_ = godotenv.Load() // Load .env when present; real env vars win

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	if err := database.EnsureSchema(context.Background(), db); err != nil {
		log.Fatalf("schema bootstrap failed: %v", err)
	}

	// Redis is optional: a nil client disables the response cache and
	// the rate limiter without affecting the rest of the API.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}

	userRepo := repository.NewUserRepo(db)
	hotelRepo := repository.NewHotelRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	auditRepo := repository.NewAuditRepo(db)
	paymentRepo := repository.NewPaymentRepo(db)
	destRepo := repository.NewDestinationRepo(db)
	itineraryRepo := repository.NewItineraryRepo(db)
	reportRepo := repository.NewReportRepo(db)
	emailLogRepo := repository.NewEmailLogRepo(db)

	// Background consumer: booking.confirmed events become EmailLog rows.
	go func() {
		if err := queue.StartBookingConsumer(emailLogRepo); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.Register(e, router.Deps{
		Auth:         handler.NewAuthHandler(cfg, userRepo),
		Users:        handler.NewUserHandler(userRepo),
		Hotels:       handler.NewHotelHandler(hotelRepo),
		Bookings:     handler.NewBookingHandler(bookingRepo, hotelRepo, userRepo, auditRepo, paymentRepo),
		Audits:       handler.NewAuditHandler(auditRepo),
		Payments:     handler.NewPaymentHandler(paymentRepo),
		Destinations: handler.NewDestinationHandler(destRepo),
		Itineraries:  handler.NewItineraryHandler(itineraryRepo),
		Reports:      handler.NewReportHandler(reportRepo),
		JWTSecret:    cfg.JWTSecret,
		Redis:        rdb,
	})

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
