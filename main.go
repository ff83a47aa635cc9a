package main

import (
	"fmt"
	"os"
	"time"

	"crconbot/internal/bot"
	"crconbot/internal/common"
	"crconbot/internal/config"
	"crconbot/internal/crcon"
	"crconbot/internal/logging"
	"crconbot/internal/stats"

	"github.com/rs/zerolog/log"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Essential configuration missing: %v\n", err)
		os.Exit(1)
	}

	closer, err := logging.Setup(cfg.LogDir, cfg.Location(), true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not set up logging: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	// Rate limiting of outgoing API calls, if configured
	var restrictions []common.Restriction
	if cfg.RateLimitRequests > 0 && cfg.RateLimitWindowSeconds > 0 {
		restrictions = append(restrictions, common.Restriction{
			Requests: cfg.RateLimitRequests,
			Duration: time.Duration(cfg.RateLimitWindowSeconds) * time.Second,
		})
	}
	client := crcon.NewClient(cfg.APIBaseURL, cfg.APIBearerToken, restrictions)

	// Stats lookups are optional
	var statsStore *stats.Store
	if cfg.DatabaseURL != "" {
		statsStore, err = stats.Open(cfg.DatabaseURL)
		if err != nil {
			log.Error().Err(err).Msg("Could not open stats database, /playerstats disabled")
			statsStore = nil
		} else {
			defer statsStore.Close()
		}
	}

	log.Info().Msg("Starting discord bot")
	if err := bot.New(cfg, client, statsStore).Run(); err != nil {
		log.Error().Err(err).Msg("Bot stopped with an error")
		os.Exit(1)
	}
}
