package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/moneytalk/internal/buildinfo"
	"github.com/dmitrijs2005/moneytalk/internal/client/cli"
	"github.com/dmitrijs2005/moneytalk/internal/client/config"
	"github.com/dmitrijs2005/moneytalk/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("%v", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
