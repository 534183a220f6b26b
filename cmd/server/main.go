package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/translingo/internal/buildinfo"
	"github.com/dmitrijs2005/translingo/internal/logging"
	"github.com/dmitrijs2005/translingo/internal/server"
	"github.com/dmitrijs2005/translingo/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
