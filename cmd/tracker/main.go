package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"equiptrack/internal/client"
	"equiptrack/internal/config"
	"equiptrack/internal/domain"
)

func main() {
	// keep config and subscription logs off the terminal UI
	if f, err := tea.LogToFile("tracker.log", "tracker"); err == nil {
		defer f.Close()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	api := client.New(cfg.TrackerAPIURL, cfg.TrackerAPIToken)
	if err := api.CheckHealth(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "API server at %s is not available: %v\n", cfg.TrackerAPIURL, err)
		os.Exit(1)
	}

	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}

	p := tea.NewProgram(newModel(api, dir, clipboard.WriteAll), tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go subscribe(ctx, api, p)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v", err)
		os.Exit(1)
	}
}

// subscribe forwards pushed availability lists to the program, reconnecting
// with backoff until ctx is done.
func subscribe(ctx context.Context, api *client.Client, p *tea.Program) {
	backoff := time.Second
	for ctx.Err() == nil {
		err := api.SubscribeAvailability(ctx, func(rows []domain.EquipmentRecord) {
			backoff = time.Second
			p.Send(availableMsg(rows))
		})
		if ctx.Err() != nil {
			return
		}
		log.Printf("availability_subscription_lost error=%v retry_in=%s", err, backoff)

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
}
