package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"iyan-ordering/internal/config"
	"iyan-ordering/internal/db"
	"iyan-ordering/internal/importer"
	menurepo "iyan-ordering/internal/repository/menu"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to catalog CSV (kind,id,name,description,price,multiplier,discount,tags,soups)")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString, db.WithApplicationName("iyan-importer"))
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatalf("open file: %v", err)
	}
	defer f.Close()

	imp := importer.NewCSVImporter(f, menurepo.NewPostgres(pool, logger))

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		logger.Fatalf("import failed: %v", err)
	}

	fmt.Printf("Imported %d catalog entries in %s\n", count, time.Since(start).Truncate(time.Millisecond))
}
