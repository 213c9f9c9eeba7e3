package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/skillbridge-assessment/internal/config"
	"alfredoptarigan/skillbridge-assessment/internal/handlers"
	"alfredoptarigan/skillbridge-assessment/internal/repositories"
	"alfredoptarigan/skillbridge-assessment/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	poolRepo := repositories.NewPoolRepository(db)
	blueprintRepo := repositories.NewBlueprintRepository(db)
	applicationRepo := repositories.NewApplicationRepository(db)
	skillRepo := repositories.NewSkillRepository(db)
	assessmentRepo := repositories.NewAssessmentRepository(db)
	responseRepo := repositories.NewResponseRepository(db)
	reportRepo := repositories.NewReportRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize storage
	storageService := services.NewArtifactStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	// Event publisher: mail API when configured, logging otherwise
	var publisher services.EventPublisher
	if cfg.Mail.APIURL != "" {
		publisher = services.NewMailPublisher(cfg.Mail.APIURL, cfg.Mail.APIKey, cfg.Mail.From)
		log.Println("✅ Mail publisher initialized")
	} else {
		publisher = services.NewLogPublisher()
		log.Println("✅ Log publisher initialized (no mail API configured)")
	}

	// Scorers: AI review when a Gemini key is configured, flat fallback
	// otherwise
	questionScorer := services.NewConstantQuestionScorer()
	taskScorer := services.NewConstantTaskScorer()
	if cfg.Gemini.APIKey != "" {
		geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
		}
		log.Println("✅ Gemini AI initialized successfully")

		rubricIndex, err := services.NewRubricIndexService(
			cfg.Qdrant.URL,
			cfg.Qdrant.APIKey,
			cfg.Qdrant.Collection,
		)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
		}
		if err := rubricIndex.EnsureCollection(); err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
		}
		log.Println("✅ Qdrant initialized successfully")

		artifactParser := services.NewArtifactParserService()

		questionScorer = services.NewAIQuestionScorer(geminiService, cfg.Scoring.RetryMaxAttempts)
		taskScorer = services.NewAITaskScorer(
			geminiService,
			rubricIndex,
			artifactParser,
			storageService,
			cfg.Scoring.RetryMaxAttempts,
		)
		log.Println("✅ AI scorers initialized")
	} else {
		log.Println("✅ Flat scorers initialized (no Gemini key configured)")
	}

	// Core services
	tokenService := services.NewTokenService(cfg.Token.Secret)
	selectorService := services.NewSelectorService(
		poolRepo,
		rand.New(rand.NewSource(time.Now().UnixNano())),
	)
	scoringService := services.NewScoringService(
		responseRepo,
		reportRepo,
		poolRepo,
		questionScorer,
		taskScorer,
		publisher,
	)
	assessmentService := services.NewAssessmentService(
		assessmentRepo,
		applicationRepo,
		blueprintRepo,
		skillRepo,
		selectorService,
		tokenService,
		publisher,
		cfg.Server.BaseURL,
	)
	collectorService := services.NewCollectorService(
		assessmentRepo,
		responseRepo,
		scoringService,
		publisher,
	)
	log.Println("✅ Services initialized successfully")

	// Initialize handlers
	assessmentHandler := handlers.NewAssessmentHandler(assessmentService)
	takeHandler := handlers.NewTakeHandler(collectorService)
	submitHandler := handlers.NewSubmitHandler(collectorService)
	reportHandler := handlers.NewReportHandler(assessmentRepo, reportRepo)
	blueprintHandler := handlers.NewBlueprintHandler(blueprintRepo)
	artifactHandler := handlers.NewArtifactHandler(storageService, cfg.Storage.MaxFileSize)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "SkillBridge Assessment API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/assessments", assessmentHandler.HandleCreate)
	api.Get("/assessments/take/:token", takeHandler.HandleTake)
	api.Post("/assessments/take/:token", takeHandler.HandleSaveAnswers)
	api.Post("/assessments/submit/:token", submitHandler.HandleSubmit)
	api.Get("/reports/:token", reportHandler.HandleGetReport)
	api.Post("/blueprints", blueprintHandler.HandleCreate)
	api.Get("/blueprints", blueprintHandler.HandleList)
	api.Post("/artifacts", artifactHandler.HandleUpload)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "SkillBridge Assessment API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/assessments",
				"GET /api/v1/assessments/take/:token",
				"POST /api/v1/assessments/take/:token",
				"POST /api/v1/assessments/submit/:token",
				"GET /api/v1/reports/:token",
				"POST /api/v1/blueprints",
				"GET /api/v1/blueprints",
				"POST /api/v1/artifacts",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
