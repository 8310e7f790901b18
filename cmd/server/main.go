package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/hogwash-crew/hogwash/internal/common/clock"
	commonUUID "github.com/hogwash-crew/hogwash/internal/common/uuid"
	"github.com/hogwash-crew/hogwash/internal/dice"
	"github.com/hogwash-crew/hogwash/internal/handlers/gateway"
	activityRepo "github.com/hogwash-crew/hogwash/internal/repositories/activity"
	broadcastRepo "github.com/hogwash-crew/hogwash/internal/repositories/broadcast"
	cooldownRepo "github.com/hogwash-crew/hogwash/internal/repositories/cooldown"
	creditsRepo "github.com/hogwash-crew/hogwash/internal/repositories/credits"
	ledgerRepo "github.com/hogwash-crew/hogwash/internal/repositories/ledger"
	activityService "github.com/hogwash-crew/hogwash/internal/services/activity"
	broadcastService "github.com/hogwash-crew/hogwash/internal/services/broadcast"
	cooldownService "github.com/hogwash-crew/hogwash/internal/services/cooldown"
	creditsService "github.com/hogwash-crew/hogwash/internal/services/credits"
	gameService "github.com/hogwash-crew/hogwash/internal/services/game"
	ledgerService "github.com/hogwash-crew/hogwash/internal/services/ledger"
	messagingService "github.com/hogwash-crew/hogwash/internal/services/messaging"
	outcomeService "github.com/hogwash-crew/hogwash/internal/services/outcome"
)

func main() {
	// Load .env if present; real env vars win
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       0,
	})

	// Test Redis connection
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Initialize repositories
	ledgers, err := ledgerRepo.NewRedis(&ledgerRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create ledger repository: %v", err)
	}

	cooldowns, err := cooldownRepo.NewRedis(&cooldownRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create cooldown repository: %v", err)
	}

	drinkCreditsRepo, err := creditsRepo.NewRedis(&creditsRepo.Config{
		RedisClient: redisClient,
		Key:         creditsRepo.DrinkSystemKey,
	})
	if err != nil {
		log.Fatalf("Failed to create drink credits repository: %v", err)
	}

	dangerCreditsRepo, err := creditsRepo.NewRedis(&creditsRepo.Config{
		RedisClient: redisClient,
		Key:         creditsRepo.DangerZoneSystemKey,
	})
	if err != nil {
		log.Fatalf("Failed to create danger credits repository: %v", err)
	}

	broadcasts, err := broadcastRepo.NewRedis(&broadcastRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create broadcast repository: %v", err)
	}

	activities, err := activityRepo.NewRedis(&activityRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create activity repository: %v", err)
	}

	// Shared collaborators
	systemClock := &clock.DefaultClock{}
	uuidGen := commonUUID.New()
	roller := dice.New(&dice.Config{})

	// Initialize services
	ledgerSvc, err := ledgerService.NewService(&ledgerService.Config{
		Repo:     ledgers,
		Fallback: ledgerRepo.NewMemory(),
	})
	if err != nil {
		log.Fatalf("Failed to create ledger service: %v", err)
	}

	cooldownSvc, err := cooldownService.NewService(&cooldownService.Config{
		Repo:  cooldowns,
		Local: cooldownRepo.NewMemory(),
		Clock: systemClock,
	})
	if err != nil {
		log.Fatalf("Failed to create cooldown service: %v", err)
	}

	drinkCredits, err := creditsService.NewService(&creditsService.Config{
		Repo:           drinkCreditsRepo,
		Clock:          systemClock,
		RefillInterval: creditsService.DrinkRefillInterval,
		Cap:            creditsService.DrinkCap,
		Grant:          creditsService.DrinkGrant,
	})
	if err != nil {
		log.Fatalf("Failed to create drink credit system: %v", err)
	}

	dangerCredits, err := creditsService.NewService(&creditsService.Config{
		Repo:            dangerCreditsRepo,
		Clock:           systemClock,
		RefillInterval:  creditsService.DangerRefillInterval,
		Cap:             creditsService.DangerCap,
		Grant:           creditsService.DangerGrant,
		WindowStartHour: creditsService.DangerWindowStartHour,
		WindowEndHour:   creditsService.DangerWindowEndHour,
	})
	if err != nil {
		log.Fatalf("Failed to create danger credit system: %v", err)
	}

	outcomeSvc, err := outcomeService.NewService(&outcomeService.Config{
		Roller: roller,
	})
	if err != nil {
		log.Fatalf("Failed to create outcome service: %v", err)
	}

	activitySvc, err := activityService.NewService(&activityService.Config{
		Repo:          activities,
		Clock:         systemClock,
		UUIDGenerator: uuidGen,
	})
	if err != nil {
		log.Fatalf("Failed to create activity service: %v", err)
	}

	messagingSvc, err := messagingService.NewService(&messagingService.ServiceConfig{})
	if err != nil {
		log.Fatalf("Failed to create messaging service: %v", err)
	}

	var gameSvc gameService.Service

	// The gateway receives bus events and pushes them to clients; the bus
	// asks the game service for the session identity
	broadcastSvc, err := broadcastService.NewService(&broadcastService.Config{
		Repo:          broadcasts,
		Clock:         systemClock,
		UUIDGenerator: uuidGen,
		Identity: func() string {
			if gameSvc == nil {
				return ""
			}
			name, _ := gameSvc.Identity()
			return name
		},
	})
	if err != nil {
		log.Fatalf("Failed to create broadcast service: %v", err)
	}

	gameSvc, err = gameService.NewService(&gameService.Config{
		LedgerService:    ledgerSvc,
		CooldownService:  cooldownSvc,
		DrinkCredits:     drinkCredits,
		DangerCredits:    dangerCredits,
		OutcomeService:   outcomeSvc,
		BroadcastService: broadcastSvc,
		ActivityService:  activitySvc,
		MessagingService: messagingSvc,
	})
	if err != nil {
		log.Fatalf("Failed to create game service: %v", err)
	}

	gw, err := gateway.New(&gateway.Config{
		Addr:            getEnv("LISTEN_ADDR", ":8080"),
		GameService:     gameSvc,
		ActivityService: activitySvc,
		CooldownService: cooldownSvc,
		DrinkCredits:    drinkCredits,
		DangerCredits:   dangerCredits,
		LedgerRepo:      ledgers,
	})
	if err != nil {
		log.Fatalf("Failed to create gateway: %v", err)
	}

	broadcastSvc.SetHandler(gw)
	broadcastSvc.SetNotifier(gw)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Seed the ledger so clients see the full roster immediately
	if _, err := ledgerSvc.Load(ctx); err != nil {
		log.Printf("Initial ledger load failed: %v", err)
	}

	// Start the refill schedulers
	sched, err := creditsService.StartScheduler(map[string]creditsService.Service{
		"drinks": drinkCredits,
		"danger": dangerCredits,
	})
	if err != nil {
		log.Fatalf("Failed to start credit scheduler: %v", err)
	}

	// Run the broadcast bus listener
	go func() {
		if err := broadcastSvc.Run(ctx); err != nil {
			log.Printf("Broadcast listener stopped: %v", err)
		}
	}()

	// Start the gateway
	go func() {
		log.Printf("Listening on %s", getEnv("LISTEN_ADDR", ":8080"))
		if err := gw.Start(ctx); err != nil {
			log.Fatalf("Gateway failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := gw.Stop(shutdownCtx); err != nil {
		log.Printf("Error stopping gateway: %v", err)
	}

	if err := sched.Shutdown(); err != nil {
		log.Printf("Error stopping scheduler: %v", err)
	}

	log.Println("Server has been shut down")
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
