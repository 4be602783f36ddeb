// Command hoverrace-tty runs a race in the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"hoverrace/internal/app"
	"hoverrace/internal/config"
	"hoverrace/internal/tui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "hoverrace-tty:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	s, err := config.FromArgs("hoverrace-tty", args, os.Getenv)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}

	a, err := app.Initialize(ctx, &s)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.Serve(gctx) })
	g.Go(func() error {
		defer cancel()
		return tui.Run(gctx, a, screen)
	})
	return errors.Join(g.Wait(), a.Close())
}
