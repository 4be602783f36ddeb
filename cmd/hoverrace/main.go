// Command hoverrace runs a race in an OpenGL window.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"hoverrace/internal/app"
	"hoverrace/internal/config"
	"hoverrace/internal/game"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "hoverrace:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	s, err := config.FromArgs("hoverrace", args, os.Getenv)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Initialize(ctx, &s)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.Serve(gctx) })

	// GLFW must stay on the main goroutine.
	err = game.RunDesktop(gctx, a)
	cancel()
	return errors.Join(err, g.Wait(), a.Close())
}
