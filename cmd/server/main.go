package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"swapyard/config"
	"swapyard/internal/database"
	"swapyard/internal/router"
	"swapyard/pkg/gateway"
)

func main() {
	cfg := config.Load()
	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	var gw gateway.Gateway
	if cfg.Gateway.SecretKey != "" {
		gw = gateway.NewStripeGateway(cfg.Gateway.SecretKey, cfg.Gateway.WebhookSecret, cfg.Gateway.Currency, cfg.Gateway.Timeout)
	} else {
		log.Printf("[Gateway] no secret key configured, using stub gateway")
		gw = gateway.NewStubGateway(cfg.Gateway.WebhookSecret)
	}

	engine := router.Setup(cfg, db, gw)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		log.Printf("server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server shutdown:", err)
	}
	log.Println("server stopped")
}
