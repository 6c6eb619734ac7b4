package bootstrap

import (
	"context"
	"fmt"
	"io"

	"portfolio-chatbot-be/internal/config"
	"portfolio-chatbot-be/internal/controller"
	"portfolio-chatbot-be/internal/pkg/logger"
	"portfolio-chatbot-be/internal/repository/contract"
	"portfolio-chatbot-be/internal/repository/implementation"
	"portfolio-chatbot-be/internal/repository/memory"
	"portfolio-chatbot-be/internal/service"
	embeddingFactory "portfolio-chatbot-be/pkg/embedding/factory"
	"portfolio-chatbot-be/pkg/events"
	"portfolio-chatbot-be/pkg/llm"
	"portfolio-chatbot-be/pkg/llm/breaker"
	llmFactory "portfolio-chatbot-be/pkg/llm/factory"
	"portfolio-chatbot-be/pkg/rag/indexer"
	"portfolio-chatbot-be/pkg/rag/search"
	"portfolio-chatbot-be/pkg/rag/session"

	pktNats "portfolio-chatbot-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	ChatbotController controller.IChatbotController
	AdminController   controller.IAdminController
	HealthController  controller.IHealthController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	closers []func()
}

// Close releases connections opened by NewContainer, last opened first.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// NewContainer wires the application. db may be nil, in which case vectors
// live in process memory.
func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) (*Container, error) {
	c := &Container{Logger: sysLogger}

	// 1. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(ctx, cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("BOOTSTRAP", "NATS unavailable, events disabled", map[string]interface{}{"error": err})
		} else {
			publisher = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	// 2. Providers
	embeddingProvider, err := embeddingFactory.NewEmbeddingProvider(embeddingFactory.Params{
		Provider:      cfg.Ai.EmbeddingProvider,
		Model:         cfg.Ai.EmbeddingModel,
		OllamaBaseURL: cfg.Ai.OllamaBaseURL,
		BaseURL:       cfg.Ai.LLMBaseURL,
		GeminiApiKey:  cfg.Keys.GoogleGemini,
		OpenAIApiKey:  cfg.Keys.OpenAI,
		JinaApiKey:    cfg.Keys.Jina,
	})
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("embedding provider: %w", err)
	}

	llmProvider, err := c.newLLMProvider(ctx, cfg, sysLogger)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("llm provider: %w", err)
	}

	sysLogger.Info("BOOTSTRAP", "Providers ready", map[string]interface{}{
		"embedding": cfg.Ai.EmbeddingProvider,
		"llm":       cfg.Ai.LLMProvider,
		"model":     cfg.Ai.LLMModel,
	})

	// 3. Repositories
	var vectorRepo contract.ContentEmbeddingRepository
	if db != nil {
		vectorRepo = implementation.NewContentEmbeddingRepository(db)
	} else {
		sysLogger.Warn("BOOTSTRAP", "No database configured, using in-memory vector store", nil)
		vectorRepo = memory.NewContentEmbeddingRepository()
	}

	sessionRepo, err := c.newSessionRepository(ctx, db, cfg, sysLogger)
	if err != nil {
		c.Close()
		return nil, err
	}

	// 4. Domain components
	sessionStore := session.NewStore(sessionRepo)
	retriever := search.NewRetriever(embeddingProvider, vectorRepo, sysLogger)
	ix := indexer.NewIndexer(embeddingProvider, vectorRepo, sysLogger,
		indexer.WithChunkSize(cfg.Ingest.ChunkSize),
		indexer.WithChunksPerSecond(cfg.Ingest.ChunksPerSecond),
	)

	// 5. Services
	chatbotService := service.NewChatbotService(sessionStore, retriever, llmProvider, publisher, sysLogger)
	ingestService := service.NewIngestService(ix, publisher, pubSub, cfg.App.IngestTopic, sysLogger)
	c.ConsumerService = service.NewConsumerService(pubSub, cfg.App.IngestTopic, ix, publisher, sysLogger)

	// 6. Controllers
	c.ChatbotController = controller.NewChatbotController(chatbotService)
	c.AdminController = controller.NewAdminController(ingestService, cfg.App.AdminApiKey)
	c.HealthController = controller.NewHealthController()

	return c, nil
}

// addCloser registers v for Close when it owns a connection.
func (c *Container) addCloser(v interface{}) {
	if closer, ok := v.(io.Closer); ok {
		c.closers = append(c.closers, func() { _ = closer.Close() })
	}
}

func (c *Container) newLLMProvider(ctx context.Context, cfg *config.Config, sysLogger logger.ILogger) (llm.LLMProvider, error) {
	provider, err := llmFactory.NewLLMProvider(ctx, llmFactory.Params{
		Provider:        cfg.Ai.LLMProvider,
		Model:           cfg.Ai.LLMModel,
		BaseURL:         cfg.Ai.LLMBaseURL,
		OpenAIApiKey:    cfg.Keys.OpenAI,
		AnthropicApiKey: cfg.Keys.Anthropic,
		GeminiApiKey:    cfg.Keys.GoogleGemini,
		HuggingFaceKey:  cfg.Keys.HuggingFace,
	})
	if err != nil {
		return nil, err
	}
	c.addCloser(provider)

	if !cfg.Ai.CircuitBreaker {
		return provider, nil
	}

	bcfg := breaker.DefaultConfig()
	bcfg.OnStateChange = func(from, to string) {
		sysLogger.Warn("LLM", "Circuit breaker state changed", map[string]interface{}{"from": from, "to": to})
	}
	return breaker.Wrap(provider, bcfg), nil
}

func (c *Container) newSessionRepository(ctx context.Context, db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) (contract.SessionLogRepository, error) {
	switch cfg.Session.Backend {
	case "redis":
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			sysLogger.Warn("BOOTSTRAP", "Failed to parse Redis URL, using it as address", map[string]interface{}{"error": err})
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb := redis.NewClient(opt)
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("redis session backend: %w", err)
		}
		c.closers = append(c.closers, func() { _ = rdb.Close() })
		return implementation.NewRedisSessionLogRepository(rdb, cfg.Session.TTL), nil
	case "postgres":
		if db == nil {
			return nil, fmt.Errorf("postgres session backend requires DB_CONNECTION_STRING")
		}
		return implementation.NewSessionLogRepository(db), nil
	case "", "memory":
		return memory.NewSessionLogRepository(cfg.Session.TTL), nil
	default:
		return nil, fmt.Errorf("unsupported session backend: %s", cfg.Session.Backend)
	}
}
