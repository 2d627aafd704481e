package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"event-manager/internal/config"
	eventsHttp "event-manager/internal/events/adapters/http/fiber"
	"event-manager/internal/events/adapters/sqlstore"
	eventsUsecase "event-manager/internal/events/core/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	_ "event-manager/docs"
)

// @title Events API
// @version 1.0
// @description CRUD resource for events consumed by the event manager page.
// @host localhost:3000
// @BasePath /
func main() {
	// Config
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// DB connection
	startCtx, cancelStart := context.WithTimeout(context.Background(), 10*time.Second)
	db, dialect, err := sqlstore.Open(startCtx, cfg.API.DBDriver, cfg.API.DBDSN)
	cancelStart()
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if dialect == sqlstore.DialectPostgres {
		db.SetMaxOpenConns(20)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	// Adapter-level DB wrapper
	eventsDB := sqlstore.NewSQLDB(db, dialect)
	if err := sqlstore.Migrate(context.Background(), eventsDB, dialect); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Repository + usecase
	eventRepository := sqlstore.NewEventRepository(eventsDB)
	manageEventsUC := eventsUsecase.NewManageEventsUseCase(eventRepository)

	// HTTP (Fiber) app + handlers
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.API.CORSOrigins, ","),
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
	}))

	// events endpoints
	eventsHandler := eventsHttp.NewEventHandler(manageEventsUC)
	eventsHandler.Register(app)

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Graceful shutdown
	go func() {
		if err := app.Listen(cfg.API.Addr); err != nil {
			log.Printf("fiber stopped: %v", err)
		}
	}()

	log.Printf("events api started on %s (%s)", cfg.API.Addr, dialect)

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
}
