// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/travel-booking/internal/config"
	"github.com/iliyamo/travel-booking/internal/handler"
	"github.com/iliyamo/travel-booking/internal/middleware"
)

// Deps carries everything route registration needs: the handlers, the
// JWT secret for the protected group and the optional redis client for
// the response cache and rate limiter. A nil redis client disables both.
type Deps struct {
	Auth         *handler.AuthHandler
	Users        *handler.UserHandler
	Hotels       *handler.HotelHandler
	Bookings     *handler.BookingHandler
	Audits       *handler.AuditHandler
	Payments     *handler.PaymentHandler
	Destinations *handler.DestinationHandler
	Itineraries  *handler.ItineraryHandler
	Reports      *handler.ReportHandler
	JWTSecret    string
	Redis        *redis.Client
}

// Register wires every route of the API onto the provided Echo instance.
//
// The response cache only ever fronts read-only projections (listings,
// reports, the audit trail). Booking creation and cancellation are
// deliberately uncached and unbuffered: their conflict checks must see
// live rows.
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)

	// Global token-bucket rate limiting; a nil client turns it into a no-op.
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), d.Redis))

	cached := middleware.NewRedisCache(config.LoadCacheConfig(), d.Redis)

	// Auth: open register/login, JWT-protected identity.
	e.POST("/register", d.Auth.Register)
	e.POST("/login", d.Auth.Login)
	me := e.Group("/v1")
	me.Use(middleware.JWTAuth(d.JWTSecret))
	me.GET("/me", d.Auth.Me)

	// Users.
	e.GET("/user/profile/:id", d.Users.Profile)
	e.PUT("/user/update/:id", d.Users.Update)

	// Hotels.
	e.GET("/hotels", d.Hotels.List, cached)

	// Booking lifecycle. Mutations never go through the cache.
	e.POST("/booking/calculate-cost", d.Bookings.CalculateCost)
	e.POST("/booking/create", d.Bookings.Create)
	e.PUT("/booking/cancel/:id", d.Bookings.Cancel)
	e.GET("/booking/details/:id", d.Bookings.Details)
	e.GET("/bookings/user/:id", d.Bookings.ListByUser)

	// Audit trail (read-only).
	e.GET("/audit/bookings", d.Audits.List, cached)
	e.GET("/audit/bookings/booking/:id", d.Audits.ByBooking, cached)

	// Payments.
	e.GET("/payments/transactions", d.Payments.List)
	e.GET("/payments/booking/:id", d.Payments.ByBooking)
	e.GET("/payments/user/:id", d.Payments.ByUser)
	e.PUT("/payments/update-status/:id", d.Payments.UpdateStatus)

	// Destinations.
	e.GET("/destinations", d.Destinations.List, cached)
	e.POST("/destination/create", d.Destinations.Create)
	e.DELETE("/destination/delete/:id", d.Destinations.Delete)
	e.GET("/destination/popularity/:id", d.Destinations.Popularity)
	e.GET("/destination/itineraries/:id", d.Destinations.Itineraries)

	// Itineraries.
	e.POST("/itinerary/create", d.Itineraries.Create)
	e.GET("/itineraries/user/:id", d.Itineraries.ListByUser)
	e.DELETE("/itinerary/delete/:id", d.Itineraries.Delete)

	// Reports: derived read-only aggregates, all cacheable.
	r := e.Group("/reports", cached)
	r.GET("/user-spending/:id", d.Reports.UserSpending)
	r.GET("/popular-destinations", d.Reports.PopularDestinations)
	r.GET("/dashboard-stats", d.Reports.DashboardStats)
	r.GET("/hotels-above-average-price", d.Reports.HotelsAboveAveragePrice)
	r.GET("/users-with-bookings", d.Reports.UsersWithBookings)
	r.GET("/destinations-not-in-itineraries", d.Reports.DestinationsNotInItineraries)
	r.GET("/bookings-with-hotel-details", d.Reports.BookingsWithHotelDetails)
	r.GET("/users-booking-count", d.Reports.UsersBookingCount)
	r.GET("/hotels-booking-stats", d.Reports.HotelsBookingStats)
}
