package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"profile_scraper/presentation/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.ExecuteContext(ctx)
}
