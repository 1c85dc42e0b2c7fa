package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/peerrent/rental-backend/internal/booking"
	bookingHttp "github.com/peerrent/rental-backend/internal/booking/http"
	"github.com/peerrent/rental-backend/internal/identity"
	"github.com/peerrent/rental-backend/internal/item"
	itemHttp "github.com/peerrent/rental-backend/internal/item/http"
	"github.com/peerrent/rental-backend/internal/itemrequest"
	requestHttp "github.com/peerrent/rental-backend/internal/itemrequest/http"
	"github.com/peerrent/rental-backend/internal/photo"
	photoHttp "github.com/peerrent/rental-backend/internal/photo/http"
	"github.com/peerrent/rental-backend/internal/user"
	userHttp "github.com/peerrent/rental-backend/internal/user/http"
)

// RouterConfig carries the non-service knobs the router needs.
type RouterConfig struct {
	IsProduction   bool
	AllowedOrigins []string
	Logger         zerolog.Logger
}

// NewRouter assembles the HTTP engine: global middleware (request logging,
// recovery, CORS) and the routes of every module under /v1.
func NewRouter(
	cfg RouterConfig,
	userService user.Service,
	itemService item.Service,
	bookingService booking.Service,
	requestService itemrequest.Service,
	photoService photo.Service,
) *gin.Engine {

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(RequestLogger(cfg.Logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", identity.Header}
	r.Use(cors.New(corsConfig))

	identityMiddleware := identity.Required()

	userHandler := userHttp.NewHandler(userService)
	itemHandler := itemHttp.NewHandler(itemService)
	bookingHandler := bookingHttp.NewHandler(bookingService)
	requestHandler := requestHttp.NewHandler(requestService)
	photoHandler := photoHttp.NewHandler(photoService)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler)
		itemHttp.RegisterRoutes(v1, itemHandler, identityMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, identityMiddleware)
		requestHttp.RegisterRoutes(v1, requestHandler, identityMiddleware)
		photoHttp.RegisterRoutes(v1, photoHandler, identityMiddleware)
	}

	return r
}
