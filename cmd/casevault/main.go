package main

import (
	"context"
	"log"
	"main/internal/config"
	"main/internal/database"
	"main/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.New(cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Client().Disconnect(context.Background())

	userStore := database.NewUserStore(db)

	srv, err := server.New(cfg, userStore)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}
	defer srv.Close()

	log.Println("Starting server on :3000")
	if err := srv.Run(":3000"); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
