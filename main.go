package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Adedunmol/pulso/api"
	mail "github.com/Adedunmol/pulso/api/email"
	"github.com/Adedunmol/pulso/api/results"
	"github.com/Adedunmol/pulso/config"
	"github.com/Adedunmol/pulso/database"
	"github.com/Adedunmol/pulso/queue"
)

func main() {
	configPath := flag.String("config", os.Getenv("PULSO_CONFIG"), "path to a yaml config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("error loading config: %s", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %s", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("error connecting to database: %s", err)
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, pool, cfg.MigrationsDir); err != nil {
		log.Fatalf("error running migrations: %s", err)
	}

	q, err := queue.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatal(fmt.Errorf("error creating new queue client: %w", err))
	}
	defer q.Close()

	var cache results.Cache
	redisClient, err := results.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Printf("results cache disabled: %s", err)
	} else {
		defer redisClient.Close()
		cache = results.NewRedisCache(redisClient, cfg.Results.CacheTTL)
	}

	r := api.Routes(cfg, pool, q, cache)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("starting web server on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(fmt.Errorf("error starting web server on port %s: %w", cfg.Port, err))
		}
	}()

	worker := queue.NewWorker(q, mail.NewMailer(cfg.SMTP, cfg.TemplatesDir))
	go func() {
		if err := worker.Run(ctx); err != nil {
			log.Fatal(fmt.Errorf("error starting queue worker: %w", err))
		}
	}()

	<-ctx.Done()

	// gracefully shutdown the server after 30 seconds
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shut down: %v", err)
	}

	log.Println("server exited properly")
}
