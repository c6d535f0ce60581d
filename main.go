package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"

	"imovelmatch/config"
	imcron "imovelmatch/cron"
	"imovelmatch/database"
	propertyRepo "imovelmatch/database/repository/property"
	slotRepo "imovelmatch/database/repository/slot"
	"imovelmatch/handlers"
	"imovelmatch/middleware"
	"imovelmatch/routes"
	"imovelmatch/services/assistant"
	"imovelmatch/services/chat"
	"imovelmatch/services/guardrail"
	"imovelmatch/services/reminder"
	"imovelmatch/services/search"
	"imovelmatch/services/seed"
	"imovelmatch/services/session"
	"imovelmatch/services/slots"
	"imovelmatch/services/toolset"
	"imovelmatch/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	if config.AppConfig.GeminiAPIKey == "" {
		logger.Sugar().Fatal("main: GEMINI_API_KEY is not configured")
	}

	database.InitDB()
	db := database.GetDB()

	// repositories.
	propRepo := propertyRepo.NewGormPropertyRepo(db)
	slotsRepo := slotRepo.NewGormSlotRepo(db)

	// services.
	searchService := search.NewSearchService(propRepo)
	slotService := slots.NewSlotService(slotsRepo, config.AppConfig.SlotPageSize, config.AppConfig.StrictSlotStatus)

	// Session state: redis when configured, process memory otherwise.
	var sessionStore session.Store
	if config.AppConfig.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisSessionDB,
		})
		sessionStore = session.NewRedisStore(client, config.SessionTTL())
	} else {
		sessionStore = session.NewMemoryStore(config.SessionTTL())
	}

	// Viewing reminders need redis for the task queue.
	if config.AppConfig.RemindersEnabled && config.AppConfig.RedisAddr != "" {
		redisOpts := asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisReminderDB,
		}
		slotService.Reminders = reminder.NewScheduler(redisOpts)
		reminder.InitReminderWorker(redisOpts)
	}

	gate, err := guardrail.NewGeminiGate(
		config.AppConfig.GeminiAPIKey,
		config.AppConfig.GuardrailModel,
		int32(config.AppConfig.GuardrailMaxTokens),
		time.Duration(config.AppConfig.GuardrailTimeoutSec)*time.Second,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize guardrail gate: %v", err)
	}

	oracle, err := assistant.NewGeminiClient(
		config.AppConfig.GeminiAPIKey,
		config.AppConfig.AssistantModel,
		time.Duration(config.AppConfig.AssistantTimeoutSec)*time.Second,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize assistant client: %v", err)
	}

	dispatcher := toolset.NewDispatcher(searchService, slotService)
	orchestrator := chat.NewOrchestrator(gate, oracle, dispatcher, sessionStore, config.AppConfig.MaxToolRetries)

	// Keep the bookable slot window topped up.
	seeder := seed.NewSeeder(propRepo, slotsRepo, seed.Options{
		DaysAhead:   config.AppConfig.SlotDaysAhead,
		OpenHour:    config.AppConfig.SlotOpenHour,
		CloseHour:   config.AppConfig.SlotCloseHour,
		SlotMinutes: config.AppConfig.SlotMinutes,
		BookedRatio: 0, // the nightly job never pre-books new slots
		RandSeed:    time.Now().UnixNano(),
	})
	horizonJob := imcron.StartHorizonJob(seeder)
	defer horizonJob.Stop()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	chatHandler := handlers.NewChatHandler(orchestrator)
	routes.SetupRoutes(router, chatHandler, db)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("main: listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("main: shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: forced shutdown: %v", err)
	}
}
