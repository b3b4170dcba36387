package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"smartbiz-be/internal/config"
	"smartbiz-be/internal/controller"
	"smartbiz-be/internal/handler"
	"smartbiz-be/internal/pkg/logger"
	"smartbiz-be/internal/pkg/mailer"
	"smartbiz-be/internal/repository/memory"
	"smartbiz-be/internal/repository/unitofwork"
	"smartbiz-be/internal/service"
	"smartbiz-be/internal/websocket"
	"smartbiz-be/pkg/ai/composer"
	"smartbiz-be/pkg/ai/extractor"
	"smartbiz-be/pkg/ai/intent"
	"smartbiz-be/pkg/ai/orchestrator"
	"smartbiz-be/pkg/digilocker"
	"smartbiz-be/pkg/gstn"
	"smartbiz-be/pkg/llm/factory"
	pktNats "smartbiz-be/pkg/nats"
	"smartbiz-be/pkg/pdfgen"
	"smartbiz-be/pkg/udyam"
)

const sweepInterval = 6 * time.Hour

type Container struct {
	// Controllers
	AuthController      controller.IAuthController
	OAuthController     controller.IOAuthController
	UserController      controller.IUserController
	InvoiceController   controller.IInvoiceController
	GstController       controller.IGstController
	DashboardController controller.IDashboardController
	ChatController      controller.IChatController
	MemoryController    controller.IMemoryController

	// Background services, run by main.go.
	ConsumerService service.IConsumerService
	MemoryService   service.IMemoryService

	// WebSockets & notifications.
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
		cfg.App.ClientURL,
	)

	// In-process queue for async PDF rendering.
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Keys.OpenAI,
		cfg.Ai.LLMBaseURL,
		cfg.Ai.LLMModel,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	sessionRepo := memory.NewSessionRepository()

	// External registries
	gstnClient := gstn.NewClient(cfg.Gst.BaseURL, cfg.Gst.APIKey)
	udyamClient := udyam.NewClient(cfg.Udyam.BaseURL, cfg.Udyam.APIKey)
	digilockerClient := digilocker.NewClient()
	pdfRenderer := pdfgen.NewRenderer(cfg.App.PdfRendererURL)

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
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

	// WebSocket hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Services
	publisherService := service.NewPublisherService(pubSub, cfg.Keys.InvoiceCreatedTopic)
	invoiceService := service.NewInvoiceService(uowFactory, publisherService, natsPub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.InvoiceCreatedTopic,
		uowFactory,
		pdfRenderer,
		natsPub,
	)

	authService := service.NewAuthService(uowFactory, emailService)
	oauthService := service.NewOAuthService(uowFactory)
	userService := service.NewUserService(uowFactory)
	gstService := service.NewGstService(uowFactory, gstnClient)
	dashboardService := service.NewDashboardService(uowFactory)
	memoryService := service.NewMemoryService(uowFactory)

	// Chat pipeline
	toolRouter := service.NewToolRouter(invoiceService, gstService, dashboardService, udyamClient, digilockerClient)
	orch := orchestrator.New(
		intent.NewClassifier(),
		extractor.NewExtractor(),
		toolRouter,
		composer.NewComposer(llmProvider, cfg.Ai.MaxTokens),
		memoryService,
		sysLogger,
	)
	chatService := service.NewChatService(orch, sessionRepo, memoryService)

	// Notifications
	notifService := service.NewNotificationService(uowFactory, natsSub, wsHub, wsLogger)
	if natsSub != nil {
		go notifService.Start()
	}
	notifHandler := handler.NewNotificationHandler(notifService, wsHub, wsLogger)

	// Periodic expiry sweep for remembered context.
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for range ticker.C {
			if n, err := memoryService.SweepExpired(context.Background()); err != nil {
				sysLogger.Warn("MemorySweep", "Failed to sweep expired context", map[string]interface{}{"error": err.Error()})
			} else if n > 0 {
				sysLogger.Info("MemorySweep", "Removed expired context facts", map[string]interface{}{"count": n})
			}
		}
	}()

	return &Container{
		AuthController:      controller.NewAuthController(authService),
		OAuthController:     controller.NewOAuthController(oauthService),
		UserController:      controller.NewUserController(userService),
		InvoiceController:   controller.NewInvoiceController(invoiceService),
		GstController:       controller.NewGstController(gstService),
		DashboardController: controller.NewDashboardController(dashboardService),
		ChatController:      controller.NewChatController(chatService),
		MemoryController:    controller.NewMemoryController(memoryService),

		ConsumerService: consumerService,
		MemoryService:   memoryService,

		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
	}
}
