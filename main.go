package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/avendal/marketclock/holiday"
	"github.com/avendal/marketclock/market"
	"github.com/avendal/marketclock/service"
	zlog "github.com/rs/zerolog/log"
)

// handleTermination processes context cancellation signals or interrupt signals from the OS.
func handleTermination(ctx context.Context, cancel context.CancelFunc) {
	// Listen for interrupt signals.
	signals := []os.Signal{os.Interrupt}
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, signals...)

	// Wait for the context to be cancelled or an interrupt signal.
	for {
		select {
		case <-ctx.Done():
			return

		case <-interrupt:
			cancel()
		}
	}
}

func main() {
	var cfg Config
	err := loadConfig(&cfg, "")
	if err != nil {
		log.Printf("loading config: %v", err)
		return
	}

	roster, err := market.LoadRoster(cfg.RosterPath)
	if err != nil {
		log.Printf("loading market roster: %v", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := zlog.With().Str("service", "marketclock").Logger()

	baseURL := cfg.HolidayBaseURL
	if baseURL == "" {
		baseURL = holiday.BaseURL
	}

	nagerLogger := logger.With().Str("component", "nager").Logger()
	nager, err := holiday.NewNagerClient(&holiday.NagerConfig{
		BaseURL: baseURL,
		Logger:  &nagerLogger,
	})
	if err != nil {
		log.Printf("creating nager client: %v", err)
		return
	}

	cacheLogger := logger.With().Str("component", "holidaycache").Logger()
	cache, err := holiday.NewCache(&holiday.CacheConfig{
		Timezones: market.Timezones(roster),
		Source:    nager,
		Logger:    &cacheLogger,
	})
	if err != nil {
		log.Printf("creating holiday cache: %v", err)
		return
	}

	clockLogger := logger.With().Str("component", "clock").Logger()
	clock, err := service.NewClock(&service.ClockConfig{
		Markets:        roster,
		Cache:          cache,
		StatusInterval: time.Duration(cfg.StatusIntervalMinutes) * time.Minute,
		Logger:         &clockLogger,
	})
	if err != nil {
		log.Printf("creating clock service: %v", err)
		return
	}

	go handleTermination(ctx, cancel)
	clock.Run(ctx)
}
