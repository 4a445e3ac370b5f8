package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"iyan-ordering/internal/config"
	"iyan-ordering/internal/db"
	"iyan-ordering/internal/httpserver"
	menurepo "iyan-ordering/internal/repository/menu"
	orderrepo "iyan-ordering/internal/repository/order"
	"iyan-ordering/internal/seed"
	menusvc "iyan-ordering/internal/service/menu"
	ordersvc "iyan-ordering/internal/service/order"
	ttssvc "iyan-ordering/internal/service/tts"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg := config.Load()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()

	var (
		dbpool    *pgxpool.Pool
		menuRepo  menurepo.Repository
		orderRepo orderrepo.Repository
	)
	switch cfg.StoreDriver {
	case config.StoreMemory:
		mem := menurepo.NewMemory()
		if _, err := seed.Apply(ctx, mem, false); err != nil {
			logger.Fatalf("seed memory menu: %v", err)
		}
		menuRepo = mem
		orderRepo = orderrepo.NewMemory()
		logger.Printf("using in-memory store")
	default:
		pool, err := db.Connect(ctx, cfg.DBConnString, db.WithMaxConns(cfg.DBMaxConns))
		if err != nil {
			logger.Fatalf("connect to db: %v", err)
		}
		defer pool.Close()
		dbpool = pool
		menuRepo = menurepo.NewPostgres(pool, logger)
		orderRepo = orderrepo.NewPostgres(pool, logger)
	}

	menuService := menusvc.New(menuRepo, cfg.MenuCacheTTL,
		menusvc.WithFallback(seed.DefaultMenu()),
		menusvc.WithLogger(logger),
	)
	orderService := ordersvc.New(orderRepo, menuService)
	ttsService := ttssvc.New(cfg.TTSUpstreamURL, nil)
	if !ttsService.Enabled() {
		logger.Printf("TTS_UPSTREAM_URL not set, /api/tts will answer 503")
	}

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		MenuSvc:     menuService,
		OrderSvc:    orderService,
		TTSSvc:      ttsService,
		CORSOrigins: cfg.CORSOrigins,
	}, cfg.ShutdownTimeout)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := srv.Run(runCtx); err != nil {
		logger.Printf("server: %v", err)
	}
}
