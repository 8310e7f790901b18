package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/hogwash-crew/hogwash/internal/models"
	ledgerRepo "github.com/hogwash-crew/hogwash/internal/repositories/ledger"
	activitySvc "github.com/hogwash-crew/hogwash/internal/services/activity"
	cooldownSvc "github.com/hogwash-crew/hogwash/internal/services/cooldown"
	creditsSvc "github.com/hogwash-crew/hogwash/internal/services/credits"
	gameSvc "github.com/hogwash-crew/hogwash/internal/services/game"
)

// Config holds configuration for the HTTP/websocket gateway
type Config struct {
	// Addr is the listen address, e.g. ":8080"
	Addr string

	// Service dependencies
	GameService     gameSvc.Service
	ActivityService activitySvc.Service
	CooldownService cooldownSvc.Service
	DrinkCredits    creditsSvc.Service
	DangerCredits   creditsSvc.Service

	// LedgerRepo feeds ledger snapshots to connected websocket clients
	LedgerRepo ledgerRepo.Repository
}

// Gateway is the surface UI clients talk to. REST endpoints carry the
// commands; a websocket pushes ledger snapshots and broadcast events so
// every device re-renders from the same state.
type Gateway struct {
	game     gameSvc.Service
	activity activitySvc.Service
	cooldown cooldownSvc.Service
	drinks   creditsSvc.Service
	danger   creditsSvc.Service
	ledgers  ledgerRepo.Repository

	hub    *hub
	server *http.Server
}

// New creates a new gateway
func New(cfg *Config) (*Gateway, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.GameService == nil || cfg.ActivityService == nil || cfg.CooldownService == nil {
		return nil, errors.New("game, activity and cooldown services cannot be nil")
	}

	if cfg.DrinkCredits == nil || cfg.DangerCredits == nil {
		return nil, errors.New("credit services cannot be nil")
	}

	if cfg.LedgerRepo == nil {
		return nil, errors.New("ledger repository cannot be nil")
	}

	addr := cfg.Addr
	if addr == "" {
		addr = ":8080"
	}

	g := &Gateway{
		game:     cfg.GameService,
		activity: cfg.ActivityService,
		cooldown: cfg.CooldownService,
		drinks:   cfg.DrinkCredits,
		danger:   cfg.DangerCredits,
		ledgers:  cfg.LedgerRepo,
		hub:      newHub(),
	}

	router := mux.NewRouter()
	router.HandleFunc("/api/leaderboard", g.handleLeaderboard).Methods(http.MethodGet)
	router.HandleFunc("/api/activity", g.handleActivity).Methods(http.MethodGet)
	router.HandleFunc("/api/cooldown/{name}", g.handleCooldown).Methods(http.MethodGet)
	router.HandleFunc("/api/credits", g.handleCredits).Methods(http.MethodGet)
	router.HandleFunc("/api/gamble", g.handleGamble).Methods(http.MethodPost)
	router.HandleFunc("/api/transfer", g.handleTransfer).Methods(http.MethodPost)
	router.HandleFunc("/api/drinks/assign", g.handleAssignDrinks).Methods(http.MethodPost)
	router.HandleFunc("/api/danger", g.handleDangerZone).Methods(http.MethodPost)
	router.HandleFunc("/api/proof/request", g.handleRequestProof).Methods(http.MethodPost)
	router.HandleFunc("/api/proof/{id}/submit", g.handleSubmitProof).Methods(http.MethodPost)
	router.HandleFunc("/api/powerup", g.handleUsePowerUp).Methods(http.MethodPost)
	router.HandleFunc("/api/score", g.handleSetScore).Methods(http.MethodPost)
	router.HandleFunc("/api/reset", g.handleReset).Methods(http.MethodPost)
	router.HandleFunc("/api/force", g.handleForceOutcome).Methods(http.MethodPost)
	router.HandleFunc("/api/identity", g.handleIdentity).Methods(http.MethodPost)
	router.HandleFunc("/ws", g.handleWebsocket)

	g.server = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return g, nil
}

// Start runs the ledger feed and the HTTP server. It blocks until the
// server stops.
func (g *Gateway) Start(ctx context.Context) error {
	snapshots, err := g.ledgers.WatchLedger(ctx)
	if err != nil {
		return fmt.Errorf("failed to watch ledger: %w", err)
	}

	go func() {
		for ledger := range snapshots {
			g.hub.broadcast(wsMessage{
				Type:    "ledger",
				Payload: ledgerPayload(ledger),
			})
		}
	}()

	if err := g.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Stop shuts the HTTP server down gracefully
func (g *Gateway) Stop(ctx context.Context) error {
	return g.server.Shutdown(ctx)
}

// HandleDangerZone pushes an accepted danger-zone event to every
// connected client. The bus already applied freshness, dedup and
// self-suppression.
func (g *Gateway) HandleDangerZone(ctx context.Context, event *models.DangerZoneEvent) {
	g.hub.broadcast(wsMessage{
		Type:    "danger_zone",
		Payload: event,
	})
}

// HandleDrinkAssignment pushes an accepted drink assignment, annotated
// with this client's role
func (g *Gateway) HandleDrinkAssignment(ctx context.Context, event *models.DrinkAssignmentEvent, role string, drinks int) {
	g.hub.broadcast(wsMessage{
		Type: "drink_assignment",
		Payload: map[string]interface{}{
			"event":  event,
			"role":   role,
			"drinks": drinks,
		},
	})
}

// Notify pushes a notification payload to every connected client
func (g *Gateway) Notify(ctx context.Context, notification *models.Notification) error {
	g.hub.broadcast(wsMessage{
		Type:    "notification",
		Payload: notification,
	})
	return nil
}

// ledgerPayload shapes a snapshot for UI consumption: the raw ledger plus
// the derived leaderboard ordering
func ledgerPayload(ledger models.Ledger) map[string]interface{} {
	return map[string]interface{}{
		"players":     ledger,
		"leaderboard": ledger.Leaderboard(),
	}
}
