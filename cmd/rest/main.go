package main

import (
	"context"
	"log"

	"course-platform-be/internal/bootstrap"
	"course-platform-be/internal/config"
	"course-platform-be/internal/server"
	"course-platform-be/internal/tracer"
	"course-platform-be/pkg/database"
)

func main() {
	cfg := config.Load()

	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	// Outgoing email is drained by a single in-process worker.
	go func() {
		log.Println("Background: Starting mail worker...")
		if err := container.MailWorker.Consume(context.Background()); err != nil {
			log.Printf("Background mail worker error: %v", err)
		}
	}()

	srv := server.New(cfg, container)

	log.Fatal(srv.Run())
}
