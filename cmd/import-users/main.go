package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/sportshub-india/sportshub-backend/internal/users"
	"github.com/sportshub-india/sportshub-backend/pkg/config"
	"github.com/sportshub-india/sportshub-backend/pkg/db"
	"github.com/sportshub-india/sportshub-backend/pkg/logger"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "import-users"})

	_ = godotenv.Load()

	file := flag.String("file", "", "path to the exported users JSON array (- for stdin)")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "missing -file")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "import-users",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "file": *file})

	var input io.Reader = os.Stdin
	if *file != "-" {
		f, err := os.Open(*file)
		if err != nil {
			logg.Error(ctx, "failed to open export", err)
			os.Exit(1)
		}
		defer f.Close()
		input = f
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	im := &importer{repo: users.NewRepository(dbClient.DB()), logg: logg}
	result, err := im.Run(ctx, input)
	for _, rowErr := range multierr.Errors(err) {
		fmt.Fprintln(os.Stderr, rowErr)
	}
	fmt.Printf("imported %d users, %d duplicates, %d failed\n", result.Imported, result.Duplicates, result.Failed)
	if result.Failed > 0 || (err != nil && result.Duplicates == 0) {
		os.Exit(1)
	}
}
