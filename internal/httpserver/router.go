package httpserver

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"iyan-ordering/internal/domain"
	ordersvc "iyan-ordering/internal/service/order"
	ttssvc "iyan-ordering/internal/service/tts"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type menuService interface {
	Menu(ctx context.Context) (domain.Menu, error)
	Soups(ctx context.Context) ([]domain.Soup, error)
	Proteins(ctx context.Context) ([]domain.Protein, error)
}

type orderService interface {
	Create(ctx context.Context, in ordersvc.CreateInput) (domain.Order, error)
	Get(ctx context.Context, id string) (domain.Order, error)
	List(ctx context.Context, limit int) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (domain.Order, error)
	Tracking(ctx context.Context, id string) (domain.Tracking, error)
}

type ttsService interface {
	Synthesize(ctx context.Context, text string) (ttssvc.Audio, error)
}

// Deps are the services behind the /api routes.
type Deps struct {
	MenuSvc  menuService
	OrderSvc orderService
	TTSSvc   ttsService
	// CORSOrigins lists allowed storefront origins; "*" allows any.
	CORSOrigins []string
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.MenuSvc == nil || deps.OrderSvc == nil || deps.TTSSvc == nil {
		return nil, errors.New("httpserver: menu, order and tts services are required")
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	if len(deps.CORSOrigins) > 0 {
		router.Use(cors.New(corsConfig(deps.CORSOrigins)))
	}

	var ready pinger
	if db != nil {
		ready = db
	}
	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(ready))

	h := &handlers{menus: deps.MenuSvc, orders: deps.OrderSvc, tts: deps.TTSSvc, logger: logger}
	api := router.Group("/api")
	{
		api.GET("/health", h.health)
		api.GET("/menu", h.getMenu)
		api.GET("/menu/soups", h.getSoups)
		api.GET("/menu/proteins", h.getProteins)
		api.POST("/menu/quote", h.quote)
		api.POST("/order", h.createOrder)
		api.GET("/order/:id", h.getOrder)
		api.PATCH("/order/:id/status", h.updateStatus)
		api.GET("/order/:id/tracking", h.tracking)
		api.GET("/orders", h.listOrders)
		api.GET("/bot/greeting", h.botGreeting)
		api.POST("/bot/process", h.botProcess)
		api.POST("/tts", h.synthesize)
	}

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}
