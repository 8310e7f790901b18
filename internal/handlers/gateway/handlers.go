package gateway

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/hogwash-crew/hogwash/internal/models"
	broadcastRepo "github.com/hogwash-crew/hogwash/internal/repositories/broadcast"
	activitySvc "github.com/hogwash-crew/hogwash/internal/services/activity"
	cooldownSvc "github.com/hogwash-crew/hogwash/internal/services/cooldown"
	creditsSvc "github.com/hogwash-crew/hogwash/internal/services/credits"
	gameSvc "github.com/hogwash-crew/hogwash/internal/services/game"
	ledgerSvc "github.com/hogwash-crew/hogwash/internal/services/ledger"
	outcomeSvc "github.com/hogwash-crew/hogwash/internal/services/outcome"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

// statusFor maps domain errors onto HTTP statuses. Anything unmapped is
// a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, gameSvc.ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, gameSvc.ErrUnknownPlayer),
		errors.Is(err, gameSvc.ErrHouseCannotGamble),
		errors.Is(err, ledgerSvc.ErrUnknownPlayer),
		errors.Is(err, ledgerSvc.ErrInvalidTarget),
		errors.Is(err, ledgerSvc.ErrInvalidAmount),
		errors.Is(err, creditsSvc.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, cooldownSvc.ErrOnCooldown),
		errors.Is(err, cooldownSvc.ErrWrongPlayer),
		errors.Is(err, ledgerSvc.ErrInsufficientFunds),
		errors.Is(err, ledgerSvc.ErrInsufficientPowerUps),
		errors.Is(err, creditsSvc.ErrInsufficientCredits),
		errors.Is(err, creditsSvc.ErrOutsideWindow):
		return http.StatusConflict
	case errors.Is(err, broadcastRepo.ErrProofRequestNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func decode(r *http.Request, dst interface{}) error {
	defer func() { _ = r.Body.Close() }()
	return json.NewDecoder(r.Body).Decode(dst)
}

func (g *Gateway) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	out, err := g.game.Leaderboard(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, out.Entries)
}

func (g *Gateway) handleActivity(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	out, err := g.activity.LoadRecent(r.Context(), &activitySvc.LoadRecentInput{
		Limit: limit,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, out.Entries)
}

func (g *Gateway) handleCooldown(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if !models.IsRosterMember(name) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "player is not on the roster"})
		return
	}

	out, err := g.cooldown.IsOnCooldown(r.Context(), &cooldownSvc.IsOnCooldownInput{
		Name: name,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"onCooldown":  out.OnCooldown,
		"remainingMs": out.Remaining.Milliseconds(),
	})
}

func (g *Gateway) handleCredits(w http.ResponseWriter, r *http.Request) {
	drinks, err := g.drinks.Load(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	danger, err := g.danger.Load(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"drinks": drinks,
		"danger": danger,
	})
}

func (g *Gateway) handleGamble(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlayerName string `json:"playerName"`
	}
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	out, err := g.game.Gamble(r.Context(), &gameSvc.GambleInput{
		PlayerName: req.PlayerName,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

func (g *Gateway) handleTransfer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		From   string `json:"from"`
		To     string `json:"to"`
		Amount int    `json:"amount"`
	}
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	out, err := g.game.Transfer(r.Context(), &gameSvc.TransferInput{
		From:   req.From,
		To:     req.To,
		Amount: req.Amount,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

func (g *Gateway) handleAssignDrinks(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Assignments map[string]int `json:"assignments"`
		AssignedBy  string         `json:"assignedBy"`
		Message     string         `json:"message"`
	}
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	out, err := g.game.AssignDrinks(r.Context(), &gameSvc.AssignDrinksInput{
		Assignments: req.Assignments,
		AssignedBy:  req.AssignedBy,
		Message:     req.Message,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

func (g *Gateway) handleDangerZone(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlayerName string `json:"playerName"`
	}
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	out, err := g.game.InitiateDangerZone(r.Context(), &gameSvc.InitiateDangerZoneInput{
		PlayerName: req.PlayerName,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

func (g *Gateway) handleRequestProof(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlayerName  string `json:"playerName"`
		RequestedBy string `json:"requestedBy"`
	}
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	out, err := g.game.RequestProof(r.Context(), &gameSvc.RequestProofInput{
		PlayerName:  req.PlayerName,
		RequestedBy: req.RequestedBy,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

func (g *Gateway) handleSubmitProof(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProofRef string `json:"proofRef"`
	}
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := g.game.SubmitProof(r.Context(), &gameSvc.SubmitProofInput{
		RequestID: mux.Vars(r)["id"],
		ProofRef:  req.ProofRef,
	}); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "submitted"})
}

func (g *Gateway) handleUsePowerUp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
		Kind string `json:"kind"`
	}
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	kind := models.PowerUpKind(req.Kind)
	switch kind {
	case models.PowerUpMulligan, models.PowerUpReverseMulligan, models.PowerUpGiveDrinks:
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown power-up kind"})
		return
	}

	if err := g.game.UsePowerUp(r.Context(), &gameSvc.UsePowerUpInput{
		Name: req.Name,
		Kind: kind,
	}); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "used"})
}

func (g *Gateway) handleSetScore(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string `json:"name"`
		Points int    `json:"points"`
	}
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := g.game.SetScore(r.Context(), &gameSvc.SetScoreInput{
		Name:   req.Name,
		Points: req.Points,
	}); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "set"})
}

func (g *Gateway) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := g.game.ResetScores(r.Context()); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (g *Gateway) handleForceOutcome(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Kind string `json:"kind"`
	}
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	kind := outcomeSvc.Kind(req.Kind)
	switch kind {
	case outcomeSvc.KindDrink, outcomeSvc.KindWin, outcomeSvc.KindLose,
		outcomeSvc.KindGiveDrinks, outcomeSvc.KindDanger,
		outcomeSvc.KindMulligan, outcomeSvc.KindReverseMulligan:
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown outcome kind"})
		return
	}

	if err := g.game.ForceNextOutcome(r.Context(), &gameSvc.ForceNextOutcomeInput{
		Kind: kind,
	}); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "armed"})
}

func (g *Gateway) handleIdentity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string `json:"name"`
		IsOperator bool   `json:"isOperator"`
	}
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Name != "" && !models.IsRosterMember(req.Name) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "player is not on the roster"})
		return
	}

	g.game.OnIdentityChange(req.Name, req.IsOperator)

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
