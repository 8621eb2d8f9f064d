package bootstrap

import (
	"context"
	"log"

	"socratic-notes-be/internal/config"
	"socratic-notes-be/internal/controller"
	"socratic-notes-be/internal/pkg/logger"
	"socratic-notes-be/internal/repository/implementation"
	"socratic-notes-be/internal/repository/memory"
	"socratic-notes-be/internal/repository/unitofwork"
	"socratic-notes-be/internal/service"
	"socratic-notes-be/pkg/llm/factory"

	pktNats "socratic-notes-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	NoteController     controller.INoteController
	DialogueController controller.IDialogueController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
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
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// LLM Provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		factory.Keys{
			Gemini:      cfg.Keys.GoogleGemini,
			OpenAI:      cfg.Keys.OpenAI,
			HuggingFace: cfg.Keys.HuggingFace,
		},
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// In-memory cache of parsed sessions per note
	dialogueCache := memory.NewDialogueCache()

	// 4. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Keys.ActivityTopic)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.ActivityTopic,
		uowFactory,
		natsPub,
	)

	sessionRepo := implementation.NewDialogueSessionRepository(uowFactory, dialogueCache)

	noteService := service.NewNoteService(uowFactory, natsPub)
	dialogueService := service.NewDialogueService(
		uowFactory,
		sessionRepo,
		llmProvider,
		publisherService,
		sysLogger,
	)

	// 5. Controllers
	return &Container{
		NoteController:     controller.NewNoteController(noteService),
		DialogueController: controller.NewDialogueController(dialogueService),

		ConsumerService: consumerService,
	}
}

// StartConsumers kicks off the background message consumers.
func (c *Container) StartConsumers(ctx context.Context) error {
	return c.ConsumerService.Consume(ctx)
}
