// Command chat is the terminal front end of the real-estate assistant.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"imovelmatch/config"
	"imovelmatch/database"
	propertyRepo "imovelmatch/database/repository/property"
	slotRepo "imovelmatch/database/repository/slot"
	"imovelmatch/services/assistant"
	"imovelmatch/services/chat"
	"imovelmatch/services/guardrail"
	"imovelmatch/services/search"
	"imovelmatch/services/session"
	"imovelmatch/services/slots"
	"imovelmatch/services/toolset"
	"imovelmatch/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	if config.AppConfig.GeminiAPIKey == "" {
		logger.Sugar().Fatal("chat: GEMINI_API_KEY is not configured")
	}

	database.InitDB()
	db := database.GetDB()

	propRepo := propertyRepo.NewGormPropertyRepo(db)
	slotsRepo := slotRepo.NewGormSlotRepo(db)
	searchService := search.NewSearchService(propRepo)
	slotService := slots.NewSlotService(slotsRepo, config.AppConfig.SlotPageSize, config.AppConfig.StrictSlotStatus)

	gate, err := guardrail.NewGeminiGate(
		config.AppConfig.GeminiAPIKey,
		config.AppConfig.GuardrailModel,
		int32(config.AppConfig.GuardrailMaxTokens),
		time.Duration(config.AppConfig.GuardrailTimeoutSec)*time.Second,
	)
	if err != nil {
		logger.Sugar().Fatalf("chat: failed to initialize guardrail gate: %v", err)
	}

	oracle, err := assistant.NewGeminiClient(
		config.AppConfig.GeminiAPIKey,
		config.AppConfig.AssistantModel,
		time.Duration(config.AppConfig.AssistantTimeoutSec)*time.Second,
	)
	if err != nil {
		logger.Sugar().Fatalf("chat: failed to initialize assistant client: %v", err)
	}

	sessions := session.NewMemoryStore(config.SessionTTL())
	dispatcher := toolset.NewDispatcher(searchService, slotService)
	orchestrator := chat.NewOrchestrator(gate, oracle, dispatcher, sessions, config.AppConfig.MaxToolRetries)

	fmt.Println("Real Estate Assistant Chat")
	fmt.Println("Type 'exit' to end the conversation.")
	fmt.Println("--------------------")

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-interrupt
		fmt.Println("\nChat was stopped by the user")
		os.Exit(0)
	}()

	sessionID := ""
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			fmt.Println("\nExiting chat. Goodbye!")
			return
		}
		line := scanner.Text()
		if strings.EqualFold(strings.TrimSpace(line), "exit") {
			if sessionID != "" {
				_ = orchestrator.EndSession(context.Background(), sessionID)
			}
			fmt.Println("Exiting chat. Goodbye!")
			return
		}

		resp, err := orchestrator.HandleTurn(context.Background(), sessionID, "", line)
		if err != nil {
			fmt.Println("An error occurred while processing your request. Please try again later.")
			continue
		}
		if resp == nil {
			continue
		}
		sessionID = resp.SessionID

		fmt.Println("Agent:")
		fmt.Println(resp.Response)
		if resp.Properties != "" {
			fmt.Println("\nProperties found:")
			fmt.Println(resp.Properties)
		}
		if resp.Slots != "" {
			fmt.Println("\nAvailable slots:")
			fmt.Println(resp.Slots)
		}
	}
}
