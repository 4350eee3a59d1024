package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/totegamma/purse/client"
	"github.com/totegamma/purse/core"
	"github.com/totegamma/purse/util"
	"github.com/totegamma/purse/x/board"
)

type options struct {
	Endpoint string `env:"PURSE_ENDPOINT" envDefault:"http://localhost:8000"`
	LogFile  string `env:"PURSE_LOG_FILE"`
	Live     bool   `env:"PURSE_LIVE" envDefault:"true"`
}

var version = "unknown"

func main() {
	_ = godotenv.Load()

	opts := options{}
	err := env.Parse(&opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to parse environment:", err)
		os.Exit(1)
	}

	flag.StringVar(&opts.Endpoint, "endpoint", opts.Endpoint, "purse API endpoint")
	flag.StringVar(&opts.LogFile, "log", opts.LogFile, "write logs to this file")
	flag.BoolVar(&opts.Live, "live", opts.Live, "refresh when other clients change characters")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("purse", util.GetBuildInfo(version))
		return
	}

	// the terminal belongs to the UI, so logs go to a file or nowhere
	var w io.Writer = io.Discard
	if opts.LogFile != "" {
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintln(os.Stderr, "failed to open log file:", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(w, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := client.NewClient(opts.Endpoint)
	p := tea.NewProgram(board.NewModel(ctx, board.New(c)), tea.WithAltScreen())

	if opts.Live {
		go subscribe(ctx, c, p)
	}

	_, err = p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// subscribe keeps the event socket open and asks the UI to refresh on every event
func subscribe(ctx context.Context, c client.Client, p *tea.Program) {
	events := make(chan core.CharacterEvent, 16)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event := <-events:
				slog.DebugContext(ctx, "character event", slog.String("type", event.Type), slog.String("id", event.ID))
				p.Send(board.RefreshMsg{})
			}
		}
	}()

	for {
		err := c.Subscribe(ctx, events)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			slog.WarnContext(ctx, "event socket closed", slog.String("error", err.Error()))
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(5 * time.Second):
		}
	}
}
