package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"portfolio-chatbot-be/internal/config"
	"portfolio-chatbot-be/internal/dto"
	"portfolio-chatbot-be/internal/pkg/logger"
	"portfolio-chatbot-be/internal/repository/implementation"
	"portfolio-chatbot-be/internal/service"
	"portfolio-chatbot-be/pkg/database"
	embeddingFactory "portfolio-chatbot-be/pkg/embedding/factory"
	"portfolio-chatbot-be/pkg/events"
	"portfolio-chatbot-be/pkg/rag/indexer"

	pktNats "portfolio-chatbot-be/pkg/nats"

	"github.com/alecthomas/kong"
)

var cli struct {
	File            string  `help:"JSON file holding an array of content records" type:"existingfile" required:""`
	ChunkSize       int     `help:"Records embedded concurrently per chunk" default:"10"`
	ChunksPerSecond float64 `help:"Maximum chunks started per second (0 means unlimited)" default:"0"`
	Verbose         bool    `help:"Log every SQL statement and indexing step"`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("ingest"),
		kong.Description("Embed portfolio content records into the vector store."),
	)

	cfg := config.Load()
	if cfg.Database.Connection == "" {
		kctx.Fatalf("DB_CONNECTION_STRING is not set")
	}

	var sysLogger logger.ILogger = logger.NewNopLogger()
	if cli.Verbose {
		sysLogger = logger.NewZapLogger(cfg.App.LogFilePath, false)
	}

	raw, err := os.ReadFile(cli.File)
	kctx.FatalIfErrorf(err)

	var records []dto.ContentRecordDTO
	if err := json.Unmarshal(raw, &records); err != nil {
		kctx.Fatalf("%s must contain a JSON array of content records: %v", cli.File, err)
	}

	ctx := context.Background()

	db, err := database.NewGormDBFromDSN(ctx, cfg.Database.Connection, cli.Verbose)
	kctx.FatalIfErrorf(err)
	defer database.Close(db)

	embedder, err := embeddingFactory.NewEmbeddingProvider(embeddingFactory.Params{
		Provider:      cfg.Ai.EmbeddingProvider,
		Model:         cfg.Ai.EmbeddingModel,
		OllamaBaseURL: cfg.Ai.OllamaBaseURL,
		BaseURL:       cfg.Ai.LLMBaseURL,
		GeminiApiKey:  cfg.Keys.GoogleGemini,
		OpenAIApiKey:  cfg.Keys.OpenAI,
		JinaApiKey:    cfg.Keys.Jina,
	})
	kctx.FatalIfErrorf(err)

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(ctx, cfg.App.NatsURL)
		if err != nil {
			log.Printf("Warn: NATS unavailable, events disabled: %v", err)
		} else {
			publisher = natsPub
			defer natsPub.Close()
		}
	}

	ix := indexer.NewIndexer(embedder, implementation.NewContentEmbeddingRepository(db), sysLogger,
		indexer.WithChunkSize(cli.ChunkSize),
		indexer.WithChunksPerSecond(cli.ChunksPerSecond),
	)
	ingestService := service.NewIngestService(ix, publisher, nil, "", sysLogger)

	res, err := ingestService.Ingest(ctx, records)
	kctx.FatalIfErrorf(err)

	fmt.Printf("Indexed %d records (%d succeeded, %d failed)\n", len(records), res.Succeeded, res.Failed)
	if res.Failed > 0 {
		os.Exit(1)
	}
}
