package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/memecataloger/catalog-api/config"
	"github.com/memecataloger/catalog-api/consumer/worker"
	infraPkg "github.com/memecataloger/catalog-api/infra"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()
	infra := infraPkg.InitInfra(cfg)
	if infra.RabbitMQ == nil {
		log.Fatal("RabbitMQ connection is required for the cleanup consumer")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mediaConsumer := worker.NewMediaConsumer(infra.RabbitMQ.Channel, infra)
	if err := mediaConsumer.Start(ctx); err != nil {
		infra.Logger.ErrorWithContextf(ctx, err, "Failed to start Media consumer: %v", err)
		log.Fatalf("Failed to start Media consumer: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	infra.Logger.InfoWithContextf(ctx, "Shutting down consumer...")
	cancel()

	infra.Logger.InfoWithContextf(ctx, "Consumer exited properly")
}
