package main

import (
	"fmt"

	"github.com/deepaksivamani/virtualgames/internal/config"
	"github.com/deepaksivamani/virtualgames/internal/game"
	"github.com/deepaksivamani/virtualgames/internal/logger"
	"github.com/deepaksivamani/virtualgames/internal/pool"
	"github.com/deepaksivamani/virtualgames/internal/store"
	"github.com/deepaksivamani/virtualgames/internal/transport"
)

func main() {
	cfg := config.Load()

	puzzles, err := pool.LoadPuzzles(cfg.PuzzleFile)
	if err != nil {
		logger.Fatalf("Failed to load puzzles: %v", err)
	}
	words, err := pool.LoadWords(cfg.WordFile)
	if err != nil {
		logger.Fatalf("Failed to load words: %v", err)
	}

	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		logger.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	hub := transport.NewHub()
	registry := game.NewRegistry(puzzles, words, hub, db, cfg.GraceWindow)
	go registry.Run()
	defer registry.Close()

	handler := transport.NewHandler(cfg, registry, db, hub)
	router := handler.Router()

	logger.Infof("Server listening on :%d", cfg.Port)
	if err := router.Run(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		logger.Fatalf("Server stopped: %v", err)
	}
}
