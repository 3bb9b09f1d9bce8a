package main

import (
	"context"
	"flag"
	"os"

	"PostDrafter/internal/app"
	"PostDrafter/internal/config"
	"PostDrafter/internal/logging"
)

func main() {
	mode := flag.String("run", app.ModeDraft, "run mode: draft, feedback, publish, or check")
	flag.Parse()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	application := app.New(cfg, logger)

	if err := application.Run(context.Background(), *mode); err != nil {
		logger.Error("run failed", "mode", *mode, "error", err)
		os.Exit(1)
	}
}
