package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"shop/internal/app"
	"shop/internal/config"
)

func main() {
	// --- Configuration ---
	cfg := config.Load()

	// --- Storage, broker, handlers ---
	shop, err := app.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize shop: %v", err)
	}
	defer func() {
		if err := shop.Close(); err != nil {
			log.Printf("Error while closing resources: %v", err)
		}
	}()

	// --- Catalog event consumer ---
	if err := shop.StartEventConsumer(); err != nil {
		log.Printf("Catalog events will not be consumed: %v", err)
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s (driver %s)", cfg.AppPort, cfg.DBDriver)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := shop.Fiber.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := shop.Fiber.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
