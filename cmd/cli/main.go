package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/bookreviews/internal/buildinfo"
	"github.com/dmitrijs2005/bookreviews/internal/client/cli"
	"github.com/dmitrijs2005/bookreviews/internal/client/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.NewApp(cfg).Run(ctx)
}
