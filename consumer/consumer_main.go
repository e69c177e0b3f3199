package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/tnqbao/gau-vm-service/config"
	"github.com/tnqbao/gau-vm-service/consumer/worker"
	infraPkg "github.com/tnqbao/gau-vm-service/infra"
	"github.com/tnqbao/gau-vm-service/repository"
)

func main() {
	err := godotenv.Load("../staging.env")
	if err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()
	infra := infraPkg.InitInfra(cfg)
	repo := repository.InitRepository(infra, cfg.EnvConfig)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	vmConsumer := worker.NewVMConsumer(infra.RabbitMQ.Channel, infra, repo)
	if err := vmConsumer.Start(ctx); err != nil {
		infra.Logger.ErrorWithContextf(ctx, err, "Failed to start VM consumer: %v", err)
		log.Fatalf("Failed to start VM consumer: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	infra.Logger.InfoWithContextf(ctx, "Shutting down consumer...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := infra.Close(shutdownCtx); err != nil {
		log.Printf("Failed to close infra cleanly: %v", err)
	}

	log.Println("Consumer exited properly")
}
