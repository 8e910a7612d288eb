package main

import (
	"context"
	"fmt"

	"ridecarry/config"
	"ridecarry/pkg/logger"
	"ridecarry/storage/postgres"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)
	pg, err := postgres.New(context.Background(), cfg, log)
	if err != nil {
		panic(err)
	}
	defer pg.Close()

	// CASCADE cleans up bookings, messages, notifications and reviews that
	// reference users and rides.
	_, err = pg.GetPool().Exec(context.Background(), "TRUNCATE TABLE users, rides CASCADE")
	if err != nil {
		log.Error(fmt.Sprintf("Failed to truncate tables: %v", err))
	} else {
		log.Info("Successfully truncated all domain tables.")
	}
}
