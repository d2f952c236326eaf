package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/docuchat/docuchat-go/internal/adapters/embedding"
	"github.com/docuchat/docuchat-go/internal/adapters/filewatcher"
	"github.com/docuchat/docuchat-go/internal/adapters/llm"
	"github.com/docuchat/docuchat-go/internal/adapters/loader"
	"github.com/docuchat/docuchat-go/internal/adapters/parser"
	"github.com/docuchat/docuchat-go/internal/adapters/vectordb"
	"github.com/docuchat/docuchat-go/internal/config"
	"github.com/docuchat/docuchat-go/internal/domain/ports"
	"github.com/docuchat/docuchat-go/internal/domain/usecases"
	httpserver "github.com/docuchat/docuchat-go/internal/infrastructure/http"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "config.yaml", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := newLogger()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Assemble adapters and usecases.
	extractor := parser.NewPDFParser()
	embedder := embedding.NewOpenAIAdapter(cfg.OpenAI.BaseURL, cfg.OpenAI.EmbeddingModel)
	chatService := llm.NewOpenAIChatAdapter(cfg.OpenAI.BaseURL)

	registry := usecases.NewDocumentRegistry()
	newIndex := func() ports.VectorIndex { return vectordb.NewMemoryIndex() }

	ingest := usecases.NewIngestUseCase(
		embedder, newIndex, registry,
		cfg.Chunking.Size, cfg.Chunking.Overlap,
		cfg.Ingest.StrictEmbedding,
		logger,
	)
	retrieve := usecases.NewRetrieveUseCase(embedder, registry, logger)
	chat := usecases.NewChatUseCase(retrieve, chatService, registry, cfg.Retrieval.TopK, cfg.OpenAI.ChatModel, logger)

	if cfg.Watch.Enabled {
		if err := startWatcher(ctx, cfg, extractor, ingest, logger); err != nil {
			logger.Warn("directory watcher disabled", zap.Error(err))
		}
	}

	server := httpserver.NewServer(ingest, chat, registry, extractor, cfg.Server.Addr, logger)
	if err := server.Start(ctx); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

// startWatcher re-ingests a PDF dropped into the watched directory using the
// server-side API key. The active document is simply replaced each time.
func startWatcher(
	ctx context.Context,
	cfg *config.AppConfig,
	extractor ports.TextExtractor,
	ingest *usecases.IngestUseCase,
	logger *zap.Logger,
) error {
	apiKey := cfg.OpenAI.APIKey()
	if apiKey == "" {
		logger.Warn("watcher enabled but no server-side API key is set",
			zap.String("env", cfg.OpenAI.APIKeyEnv))
	}

	watcher, err := filewatcher.NewFSNotifyWatcher(logger)
	if err != nil {
		return err
	}

	events, err := watcher.Watch(ctx, cfg.Watch.Dir)
	if err != nil {
		watcher.Stop()
		return err
	}

	pdfLoader := loader.NewPDFFileLoader(extractor)

	go func() {
		defer watcher.Stop()
		for event := range events {
			if event.Operation == ports.FileDeleted {
				continue
			}
			name, text, err := pdfLoader.Load(ctx, event.Path)
			if err != nil {
				logger.Warn("failed to load watched document", zap.String("path", event.Path), zap.Error(err))
				continue
			}
			count, err := ingest.Ingest(ctx, name, text, apiKey)
			if err != nil {
				logger.Warn("failed to ingest watched document", zap.String("document", name), zap.Error(err))
				continue
			}
			logger.Info("watched document indexed", zap.String("document", name), zap.Int("chunks", count))
		}
	}()

	logger.Info("watching for PDF drops", zap.String("dir", cfg.Watch.Dir))
	return nil
}

func newLogger() (*zap.Logger, error) {
	if os.Getenv("ENV") == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
