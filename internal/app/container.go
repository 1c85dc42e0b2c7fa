package app

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/peerrent/rental-backend/internal/api"
	"github.com/peerrent/rental-backend/internal/booking"
	"github.com/peerrent/rental-backend/internal/clock"
	"github.com/peerrent/rental-backend/internal/item"
	"github.com/peerrent/rental-backend/internal/itemrequest"
	"github.com/peerrent/rental-backend/internal/photo"
	"github.com/peerrent/rental-backend/internal/pkg/storage"
	"github.com/peerrent/rental-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	PhotoDir     string
	MaxPhotoSize int64
	Logger       zerolog.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router *gin.Engine
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	clk := clock.NewSystem()

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo)

	// Item Module. Booking adjacency is injected through a lookup adapter so
	// the item package does not depend on the booking package.
	itemRepo := item.NewPgxRepository(cfg.DBPool)
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingLookup := booking.NewItemBookingLookup(bookingRepo)
	itemService := item.NewService(itemRepo, userService, bookingLookup, clk)

	// Booking Module
	bookingService := booking.NewService(bookingRepo, itemRepo, userService, clk)

	// Request Module
	requestRepo := itemrequest.NewPgxRepository(cfg.DBPool)
	requestService := itemrequest.NewService(requestRepo, userService)

	// Photo Module
	photoStore, err := storage.NewLocal(cfg.PhotoDir)
	if err != nil {
		return nil, fmt.Errorf("init photo storage: %w", err)
	}
	photoRepo := photo.NewPgxRepository(cfg.DBPool)
	photoService := photo.NewService(photoRepo, itemRepo, photoStore, cfg.MaxPhotoSize)

	// Router
	routerCfg := api.RouterConfig{
		IsProduction:   cfg.IsProduction,
		AllowedOrigins: splitOrigins(cfg.ProdOrigins),
		Logger:         cfg.Logger,
	}
	router := api.NewRouter(routerCfg, userService, itemService, bookingService, requestService, photoService)

	return &Container{Router: router}, nil
}

// splitOrigins parses a comma-separated origin list.
func splitOrigins(s string) []string {
	var origins []string
	for _, part := range strings.Split(s, ",") {
		if o := strings.TrimSpace(part); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
