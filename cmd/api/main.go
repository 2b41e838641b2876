package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"taskService/internal/app"
	"taskService/internal/config"
	"taskService/internal/logger"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Couldn't load config: %s", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(cfg).Init(ctx)
	if err != nil {
		log.Fatalf("Couldn't start: %s", err)
	}

	if err := a.Run(ctx); err != nil {
		logger.Error("App: stopped with error", err)
		logger.Sync()
		stop()
		os.Exit(1)
	}
}
