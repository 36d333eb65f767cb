package bootstrap

import (
	"log"
	"time"

	"student-coach-be/internal/config"
	"student-coach-be/internal/controller"
	"student-coach-be/internal/pkg/logger"
	"student-coach-be/internal/repository/implementation"
	"student-coach-be/internal/repository/memory"
	"student-coach-be/internal/service"
	"student-coach-be/pkg/benchmark"
	"student-coach-be/pkg/coachctx"
	"student-coach-be/pkg/knowledge"
	"student-coach-be/pkg/llm/factory"
	"student-coach-be/pkg/retrieval"
)

type Container struct {
	// Controllers
	CoachingController controller.ICoachingController
	ChatController     controller.IChatController
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Static Data
	// Benchmark tables and the knowledge catalogue are loaded once at
	// startup; both degrade to empty sets when files are missing.
	gradePoints := benchmark.LoadGradePoints(cfg.Data.BenchmarkDir, sysLogger)
	tables := benchmark.LoadTables(cfg.Data.BenchmarkDir, sysLogger)
	catalogue := knowledge.LoadCatalogue(cfg.Data.KnowledgeDir, sysLogger)
	questions := knowledge.LoadQuestionMap(cfg.Data.KnowledgeDir, sysLogger)

	resolver := benchmark.NewResolver(gradePoints, tables, sysLogger)
	retriever := retrieval.NewRetriever(catalogue, sysLogger)
	assembler := coachctx.NewAssembler(sysLogger)

	// 3. Record Store & Repositories
	knackStore := implementation.NewKnackStore(cfg.Knack, sysLogger)
	studentRepo := implementation.NewStudentRepository(knackStore, questions, sysLogger)
	chatRepo := implementation.NewChatLogRepository(knackStore, sysLogger)
	cohortRepo := memory.NewCachedCohortRepository(
		implementation.NewCohortRepository(knackStore, sysLogger),
		time.Duration(cfg.Data.CohortCacheTTLMn)*time.Minute,
	)

	// 4. LLM Provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.Provider,
		cfg.Ai.Model,
		cfg.Ai.OpenAIAPIKey,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.Model)

	// 5. Services
	coachingService := service.NewCoachingService(studentRepo, cohortRepo, resolver, llmProvider, cfg.Ai.Model, sysLogger)
	chatService := service.NewChatService(studentRepo, chatRepo, retriever, assembler, llmProvider, cfg.Ai.Model, sysLogger)

	// 6. Controllers
	return &Container{
		CoachingController: controller.NewCoachingController(coachingService),
		ChatController:     controller.NewChatController(chatService),
	}
}
