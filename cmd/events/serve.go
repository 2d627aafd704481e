package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"event-manager/internal/events/adapters/apiclient"
	"event-manager/internal/events/adapters/http/ui"
	"event-manager/internal/events/adapters/view"
	"event-manager/internal/events/core/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
)

var (
	serveAddr string
	servePage string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the event table page",
	Long: `Serve the event manager page. Every click on the table is posted back
and answered with the re-rendered page.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address, overrides config")
	serveCmd.Flags().StringVar(&servePage, "page", "", "Page skeleton file, overrides config")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Web.Addr = serveAddr
	}
	if servePage != "" {
		cfg.Web.PageTemplate = servePage
	}

	page, err := view.LoadPage(cfg.Web.PageTemplate)
	if err != nil {
		return err
	}

	componentLog := slog.Default()
	client := apiclient.New(cfg.Web.APIURL, apiclient.WithUserAgent("events-web"))
	store := usecase.NewEventStore(client, componentLog)
	ctrl := ui.NewController(store, page, componentLog)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(recover.New())
	app.Use(logger.New())
	ui.NewHandler(ctrl, componentLog).Register(app)

	// Graceful shutdown
	go func() {
		if err := app.Listen(cfg.Web.Addr); err != nil {
			log.Printf("fiber stopped: %v", err)
		}
	}()

	log.Printf("event manager started on %s (api %s)", cfg.Web.Addr, client.BaseURL())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("fiber shutdown error: %v", err)
	}

	log.Println("server exiting")
	return nil
}
