package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cookiedeck/cookiedeck/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	browser := flag.String("browser", "", "browser to read: chrome, chromium, edge, brave, firefox (optional)")
	pollSeconds := flag.Int("poll", 0, "store poll interval in seconds (optional, defaults to 2s)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		Browser:    *browser,
	}
	if poll := *pollSeconds; poll > 0 {
		opts.PollEvery = poll
	}
	// An origin argument skips the startup prompt: cookiedeck https://example.com
	if args := flag.Args(); len(args) > 0 {
		opts.Origin = args[0]
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "cookiedeck: %v\n", err)
		return 1
	}
	return 0
}
