package bootstrap

import (
	"context"
	"log"
	"math/rand"
	"os"
	"time"

	"sms-assistant-be/internal/config"
	"sms-assistant-be/internal/controller"
	"sms-assistant-be/internal/pkg/logger"
	"sms-assistant-be/internal/repository/memory"
	"sms-assistant-be/internal/repository/unitofwork"
	"sms-assistant-be/internal/service"
	"sms-assistant-be/pkg/embedding"
	"sms-assistant-be/pkg/llm/factory"
	"sms-assistant-be/pkg/rag/retrieval"
	"sms-assistant-be/pkg/rag/window"
	"sms-assistant-be/pkg/tone"

	pktNats "sms-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SmsController      controller.ISmsController
	ResourceController controller.IResourceController
	EventController    controller.IEventController
	PollController     controller.IPollController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Exposed for graceful shutdown
	SysLogger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis (inbound dedup)
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}
	dedup := memory.NewInboundDedup(rdb, time.Duration(cfg.Sms.DedupTTLMinutes)*time.Minute)

	// In-memory conversation state
	conversationRepo := memory.NewConversationRepository()

	// 5. Retrieval pipeline
	pipelineLogger := newPipelineLogger()

	sources := service.NewStorageSources(uowFactory)

	contentLayer := retrieval.NewContentLayer(
		sources,
		embeddingProvider,
		[]retrieval.Strategy{
			retrieval.NewTitleScan(sources, 10),
			retrieval.NewKeywordScan(sources, 10),
		},
		retrieval.DefaultContentConfig(),
		pipelineLogger,
	)

	enclaveSections := loadEnclaveCorpus(cfg.Sms.CorpusPath)

	retriever := retrieval.NewRetriever(
		[]retrieval.Layer{
			contentLayer,
			retrieval.NewConvoLayer(sources),
			retrieval.NewActionLayer(sources),
			retrieval.NewEnclaveLayer(enclaveSections),
		},
		retrieval.DefaultConfig(),
		pipelineLogger,
	)

	windowBuilder := window.NewBuilder(window.DefaultConfig())
	toneEngine := tone.NewEngine(rand.New(rand.NewSource(time.Now().UnixNano())))

	// 6. Services
	publisherService := service.NewPublisherService(cfg.Keys.EmbedTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.EmbedTopic,
		uowFactory,
		embeddingProvider,
		natsPub,
	)

	resourceService := service.NewResourceService(uowFactory, publisherService, natsPub)
	eventService := service.NewEventService(uowFactory)
	pollService := service.NewPollService(uowFactory)

	assistantService := service.NewAssistantService(
		uowFactory,
		retriever,
		windowBuilder,
		toneEngine,
		llmProvider,
		sources,
		dedup,
		conversationRepo,
		natsPub,
		cfg.Sms.MaxSegmentLength,
		sysLogger,
	)

	// 7. Controllers
	return &Container{
		SmsController:      controller.NewSmsController(assistantService),
		ResourceController: controller.NewResourceController(resourceService),
		EventController:    controller.NewEventController(eventService),
		PollController:     controller.NewPollController(pollService),

		ConsumerService: consumerService,
		SysLogger:       sysLogger,
	}
}

// newPipelineLogger writes retrieval traces to their own file so per-request
// fan-out noise stays out of the main log.
func newPipelineLogger() *log.Logger {
	if err := os.MkdirAll("logs", 0o755); err == nil {
		f, err := os.OpenFile("logs/pipeline.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			return log.New(f, "", log.LstdFlags)
		}
	}
	return log.New(os.Stdout, "[pipeline] ", log.LstdFlags)
}

// loadEnclaveCorpus reads the static reference corpus once at bootstrap. A
// missing file is not fatal; the enclave layer just stays empty.
func loadEnclaveCorpus(path string) []retrieval.CorpusSection {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Printf("[WARN] Enclave corpus not loaded from %s: %v", path, err)
		return nil
	}
	sections := retrieval.ParseCorpus(string(raw))
	log.Printf("[INFO] Enclave corpus loaded: %d sections", len(sections))
	return sections
}
