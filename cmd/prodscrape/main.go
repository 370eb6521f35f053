package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/use-agent/prodscrape/cmd/prodscrape/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := commands.ExecuteContext(ctx)
	stop()
	os.Exit(code)
}
