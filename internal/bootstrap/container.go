package bootstrap

import (
	"log"
	"time"

	"docqa-be/internal/config"
	"docqa-be/internal/controller"
	"docqa-be/internal/pkg/logger"
	"docqa-be/internal/repository/unitofwork"
	"docqa-be/internal/search"
	"docqa-be/internal/service"
	"docqa-be/internal/websocket"
	"docqa-be/pkg/extract"
	"docqa-be/pkg/llm/ollama"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/elastic/go-elasticsearch/v8"
	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	DocumentController *controller.DocumentController
	ChatController     *controller.ChatController
	SearchController   *controller.SearchController

	// WebSockets
	ChatWsHandler   *websocket.ChatHandler
	SearchWsHandler *websocket.SearchHandler

	// Background Services (Exposed for main.go to run)
	SyncConsumerService service.ISyncConsumerService
	SessionIndexer      search.SessionIndexer
	SearchClient        *elasticsearch.Client
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

	// 3. Infrastructure
	esClient, err := search.NewClient(cfg.Search)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize Elasticsearch client: %v", err)
	}

	llmProvider := ollama.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	log.Printf("[INFO] Using LLM Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)

	extractor := extract.NewPDFExtractor()
	documentCache := gocache.New(30*time.Minute, 10*time.Minute)

	syncer := search.NewSyncer(esClient, cfg.Search.SessionIndex, uowFactory, sysLogger)
	searcher := search.NewSearcher(esClient, cfg.Search.SessionIndex, cfg.Search.MaxResults, sysLogger)

	// 4. Services
	publisherService := service.NewPublisherService(
		pubSub,
		cfg.Search.SyncTopic,
		cfg.Search.DeleteTopic,
		sysLogger,
	)
	syncConsumerService := service.NewSyncConsumerService(
		pubSub,
		cfg.Search.SyncTopic,
		cfg.Search.DeleteTopic,
		uowFactory,
		syncer,
		sysLogger,
	)

	documentService := service.NewDocumentService(uowFactory, extractor, documentCache, sysLogger)
	chatService := service.NewChatService(uowFactory, llmProvider, publisherService, sysLogger)
	searchService := service.NewSearchService(searcher)

	// 5. Controllers & Handlers
	return &Container{
		DocumentController: controller.NewDocumentController(documentService, chatService, cfg.Upload, sysLogger),
		ChatController:     controller.NewChatController(chatService, sysLogger),
		SearchController:   controller.NewSearchController(searchService, sysLogger),

		ChatWsHandler:   websocket.NewChatHandler(chatService, sysLogger),
		SearchWsHandler: websocket.NewSearchHandler(searchService, sysLogger),

		SyncConsumerService: syncConsumerService,
		SessionIndexer:      syncer,
		SearchClient:        esClient,
	}
}
