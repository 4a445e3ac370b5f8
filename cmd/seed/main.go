package main

import (
	"context"
	"flag"
	"log"
	"os"

	"iyan-ordering/internal/config"
	"iyan-ordering/internal/db"
	menurepo "iyan-ordering/internal/repository/menu"
	"iyan-ordering/internal/seed"
)

func main() {
	var force bool
	flag.BoolVar(&force, "force", false, "Replace the stored catalog with the default menu")
	flag.Parse()

	cfg := config.Load()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	applied, err := seed.Apply(ctx, menurepo.NewPostgres(pool, logger), force)
	if err != nil {
		logger.Fatalf("seed apply: %v", err)
	}
	if !applied {
		logger.Println("menu already present, use -force to replace it")
		return
	}
	logger.Println("seed applied")
}
