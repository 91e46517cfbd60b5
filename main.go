package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"kgchat/internal/api"
	"kgchat/internal/config"
	"kgchat/internal/docstore"
	"kgchat/internal/extract"
	"kgchat/internal/gateway"
	"kgchat/internal/relation"
	"kgchat/internal/session"
	"kgchat/internal/worker"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("KGCHAT_CONFIG")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	extractor, err := extract.NewExtractor(ctx)
	if err != nil {
		log.Fatalf("init extractor: %v", err)
	}

	docs := docstore.NewStore(cfg.BasicConfig.UploadDir, extractor)
	if err := docs.LoadDir(ctx); err != nil {
		// The store tolerates partial availability; start empty.
		log.Printf("preload uploads: %v", err)
	}

	gw, err := gateway.New(ctx, cfg)
	if err != nil {
		log.Fatalf("init gateway: %v", err)
	}

	sessions := session.NewStore()
	writer := relation.NewWriter(cfg.BasicConfig.OutputDir)
	turns := worker.NewDispatcher(cfg.BasicConfig.MaxConcurrentTurns)
	handlers := api.NewHandler(docs, sessions, gw, writer, turns)

	router := gin.Default()
	handlers.RegisterRoutes(router)

	if err := router.Run(cfg.BasicConfig.ServerAddress); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
