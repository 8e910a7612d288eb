package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ridecarry/config"
	"ridecarry/pkg/api"
	"ridecarry/pkg/logger"
	"ridecarry/pkg/mq"
	"ridecarry/pkg/payment"
	"ridecarry/pkg/token"
	"ridecarry/pkg/ws"
	"ridecarry/service"
	"ridecarry/storage/postgres"
)

func main() {
	// 1. Load Config
	cfg := config.Load()

	// 2. Initialize Logger
	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)

	// 3. Initialize Storage (Postgres, runs migrations)
	pgStore, err := postgres.New(context.Background(), cfg, log)
	if err != nil {
		log.Error("Failed to connect to postgres", logger.Error(err))
		os.Exit(1)
	}
	defer pgStore.Close()

	// 4. Initialize RabbitMQ
	rabbit, err := mq.New(context.Background(), cfg.AMQPURL(), log)
	if err != nil {
		log.Error("Failed to connect to rabbitmq", logger.Error(err))
		os.Exit(1)
	}
	defer rabbit.Close()

	// 5. Wire services
	tokens := token.NewMaker(cfg.JWTSecret, cfg.JWTExpiryDays)
	events := service.NewMQEvents(rabbit, log)
	pay := payment.NewRazorpayClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	hub := ws.NewHub(log)
	svc := service.New(pgStore, tokens, events, pay, log)

	// 6. Start the notification worker
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	worker := service.NewNotificationWorker(pgStore, hub, log)
	if err := worker.Start(workerCtx, rabbit); err != nil {
		log.Error("Failed to start notification worker", logger.Error(err))
		os.Exit(1)
	}

	// 7. Run the HTTP server
	server := api.New(cfg, svc, hub, log)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.AppPort),
		Handler: server.Router(),
	}
	go func() {
		log.Info("HTTP server is starting", logger.Int("port", cfg.AppPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server stopped", logger.Error(err))
			os.Exit(1)
		}
	}()

	// 8. Graceful Shutdown listener
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	log.Info("Shutting down...")
	stopWorker()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP shutdown failed", logger.Error(err))
	}
}
