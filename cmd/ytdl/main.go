package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/yourusername/ytdl-go/internal/infrastructure"
)

var version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, infrastructure.NewDownloader)
	stop()
	os.Exit(code)
}
