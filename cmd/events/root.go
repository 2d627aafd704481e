package main

import (
	"log/slog"
	"time"

	"event-manager/internal/config"
	"event-manager/internal/events/adapters/apiclient"
	"event-manager/internal/events/core/usecase"

	"github.com/spf13/cobra"
)

var (
	configPath string
	apiURL     string
)

var rootCmd = &cobra.Command{
	Use:   "events",
	Short: "Manage events against the events API",
	Long: `events serves the event manager page and offers the same operations
from the command line.

  serve     Serve the event table page
  list      List events
  get       Show one event
  create    Create an event
  update    Change an event
  delete    Delete an event`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (defaults to $EVENTS_CONFIG or ./events.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Events resource URL, overrides config")
}

// loadConfig applies command line overrides on top of file and env.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.Web.APIURL = apiURL
	}
	return cfg, nil
}

// newStore builds an event store for one CLI invocation.
func newStore(cfg *config.Config) *usecase.EventStore {
	client := apiclient.New(cfg.Web.APIURL,
		apiclient.WithTimeout(10*time.Second),
		apiclient.WithUserAgent("events-cli"),
	)
	return usecase.NewEventStore(client, slog.Default())
}
