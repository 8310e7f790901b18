package game

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	clockMocks "github.com/hogwash-crew/hogwash/internal/common/clock/mocks"
	uuidMocks "github.com/hogwash-crew/hogwash/internal/common/uuid/mocks"
	diceMocks "github.com/hogwash-crew/hogwash/internal/dice/mocks"
	"github.com/hogwash-crew/hogwash/internal/models"
	activityRepo "github.com/hogwash-crew/hogwash/internal/repositories/activity"
	broadcastRepo "github.com/hogwash-crew/hogwash/internal/repositories/broadcast"
	cooldownRepo "github.com/hogwash-crew/hogwash/internal/repositories/cooldown"
	creditsRepo "github.com/hogwash-crew/hogwash/internal/repositories/credits"
	ledgerRepo "github.com/hogwash-crew/hogwash/internal/repositories/ledger"
	activitySvc "github.com/hogwash-crew/hogwash/internal/services/activity"
	broadcastSvc "github.com/hogwash-crew/hogwash/internal/services/broadcast"
	cooldownSvc "github.com/hogwash-crew/hogwash/internal/services/cooldown"
	creditsSvc "github.com/hogwash-crew/hogwash/internal/services/credits"
	ledgerSvc "github.com/hogwash-crew/hogwash/internal/services/ledger"
	messagingSvc "github.com/hogwash-crew/hogwash/internal/services/messaging"
	outcomeSvc "github.com/hogwash-crew/hogwash/internal/services/outcome"
)

// The game suite wires real services over miniredis with mocked clock,
// uuid and dice, exercising whole operations end to end.
type GameServiceTestSuite struct {
	suite.Suite
	mockCtrl   *gomock.Controller
	mockClock  *clockMocks.MockClock
	mockUUID   *uuidMocks.MockUUID
	mockRoller *diceMocks.MockRoller

	mr     *miniredis.Miniredis
	client *redis.Client

	ledgers    ledgerRepo.Repository
	cooldowns  cooldownRepo.Repository
	activities activityRepo.Repository
	broadcasts broadcastRepo.Repository

	service  Service
	ctx      context.Context
	testTime time.Time
}

func (s *GameServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.mockRoller = diceMocks.NewMockRoller(s.mockCtrl)

	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	s.ctx = context.Background()

	// 14:00 local keeps the danger-zone window open
	s.testTime = time.Date(2026, 8, 15, 14, 0, 0, 0, time.Local)
	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()
	s.mockUUID.EXPECT().NewUUID().Return("aaaabbbb-cccc-dddd-eeee-ffff00001111").AnyTimes()

	s.ledgers, err = ledgerRepo.NewRedis(&ledgerRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.cooldowns, err = cooldownRepo.NewRedis(&cooldownRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.activities, err = activityRepo.NewRedis(&activityRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.broadcasts, err = broadcastRepo.NewRedis(&broadcastRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)

	drinkRepo, err := creditsRepo.NewRedis(&creditsRepo.Config{
		RedisClient: s.client,
		Key:         creditsRepo.DrinkSystemKey,
	})
	s.Require().NoError(err)
	dangerRepo, err := creditsRepo.NewRedis(&creditsRepo.Config{
		RedisClient: s.client,
		Key:         creditsRepo.DangerZoneSystemKey,
	})
	s.Require().NoError(err)

	ledgerService, err := ledgerSvc.NewService(&ledgerSvc.Config{Repo: s.ledgers})
	s.Require().NoError(err)

	cooldownService, err := cooldownSvc.NewService(&cooldownSvc.Config{
		Repo:  s.cooldowns,
		Clock: s.mockClock,
	})
	s.Require().NoError(err)

	drinkCredits, err := creditsSvc.NewService(&creditsSvc.Config{
		Repo:           drinkRepo,
		Clock:          s.mockClock,
		RefillInterval: creditsSvc.DrinkRefillInterval,
		Cap:            creditsSvc.DrinkCap,
		Grant:          creditsSvc.DrinkGrant,
	})
	s.Require().NoError(err)

	dangerCredits, err := creditsSvc.NewService(&creditsSvc.Config{
		Repo:            dangerRepo,
		Clock:           s.mockClock,
		RefillInterval:  creditsSvc.DangerRefillInterval,
		Cap:             creditsSvc.DangerCap,
		Grant:           creditsSvc.DangerGrant,
		WindowStartHour: creditsSvc.DangerWindowStartHour,
		WindowEndHour:   creditsSvc.DangerWindowEndHour,
	})
	s.Require().NoError(err)

	outcomeService, err := outcomeSvc.NewService(&outcomeSvc.Config{
		Roller: s.mockRoller,
	})
	s.Require().NoError(err)

	broadcastService, err := broadcastSvc.NewService(&broadcastSvc.Config{
		Repo:          s.broadcasts,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)

	activityService, err := activitySvc.NewService(&activitySvc.Config{
		Repo:          s.activities,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)

	messagingService, err := messagingSvc.NewService(&messagingSvc.ServiceConfig{Seed: 1})
	s.Require().NoError(err)

	svc, err := NewService(&Config{
		LedgerService:    ledgerService,
		CooldownService:  cooldownService,
		DrinkCredits:     drinkCredits,
		DangerCredits:    dangerCredits,
		OutcomeService:   outcomeService,
		BroadcastService: broadcastService,
		ActivityService:  activityService,
		MessagingService: messagingService,
	})
	s.Require().NoError(err)
	s.service = svc
}

func (s *GameServiceTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
	s.mockCtrl.Finish()
}

func TestGameServiceTestSuite(t *testing.T) {
	suite.Run(t, new(GameServiceTestSuite))
}

func (s *GameServiceTestSuite) TestGambleForcedWin() {
	s.mockRoller.EXPECT().Roll(4).Return(3)

	out, err := s.service.Gamble(s.ctx, &GambleInput{
		PlayerName: "Evan",
		Forced:     outcomeSvc.KindWin,
	})
	s.Require().NoError(err)

	s.Equal(outcomeSvc.KindWin, out.Kind)
	s.Equal(3, out.PointsDelta)
	s.Equal(103, out.NewPoints)
	s.NotEmpty(out.Message)

	// The player/house pair stays conserved
	stored, err := s.ledgers.GetLedger(s.ctx)
	s.Require().NoError(err)
	s.Equal(103, stored.Ledger["Evan"].Points)
	s.Equal(997, stored.Ledger[models.HouseAccount].Points)

	// The attempt stamped the cooldown
	cooldowns, err := s.cooldowns.GetCooldowns(s.ctx)
	s.Require().NoError(err)
	s.Equal(s.testTime.UnixMilli(), cooldowns.Cooldowns["Evan"])

	// Exactly one feed entry was written
	feed, err := s.activities.GetActivities(s.ctx)
	s.Require().NoError(err)
	s.Len(feed.Entries, 1)
	s.Equal("hogwash", feed.Entries[0].Category)
}

func (s *GameServiceTestSuite) TestGambleRespectsCooldown() {
	s.mockRoller.EXPECT().Roll(4).Return(2)

	_, err := s.service.Gamble(s.ctx, &GambleInput{
		PlayerName: "Evan",
		Forced:     outcomeSvc.KindWin,
	})
	s.Require().NoError(err)

	// The second attempt inside the window is rejected before any draw
	_, err = s.service.Gamble(s.ctx, &GambleInput{
		PlayerName: "Evan",
		Forced:     outcomeSvc.KindWin,
	})
	s.Require().Error(err)
	s.ErrorIs(err, cooldownSvc.ErrOnCooldown)
}

func (s *GameServiceTestSuite) TestGambleHouseRejected() {
	_, err := s.service.Gamble(s.ctx, &GambleInput{
		PlayerName: models.HouseAccount,
	})
	s.Require().Error(err)
	s.ErrorIs(err, ErrHouseCannotGamble)
}

func (s *GameServiceTestSuite) TestGambleUnknownPlayer() {
	_, err := s.service.Gamble(s.ctx, &GambleInput{
		PlayerName: "Stranger",
	})
	s.Require().Error(err)
	s.ErrorIs(err, ErrUnknownPlayer)
}

func (s *GameServiceTestSuite) TestGambleAsSomebodyElseRejected() {
	s.service.OnIdentityChange("Alex", false)

	_, err := s.service.Gamble(s.ctx, &GambleInput{
		PlayerName: "Evan",
	})
	s.Require().Error(err)
	s.ErrorIs(err, cooldownSvc.ErrWrongPlayer)
}

func (s *GameServiceTestSuite) TestGambleMulliganGrantsPowerUp() {
	out, err := s.service.Gamble(s.ctx, &GambleInput{
		PlayerName: "Ian",
		Forced:     outcomeSvc.KindMulligan,
	})
	s.Require().NoError(err)

	s.Equal(models.PowerUpMulligan, out.PowerUp)
	s.Equal(1, out.PowerUpGain)

	stored, err := s.ledgers.GetLedger(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, stored.Ledger["Ian"].PowerUps.Mulligans)
}

func (s *GameServiceTestSuite) TestGambleDangerBroadcasts() {
	out, err := s.service.Gamble(s.ctx, &GambleInput{
		PlayerName: "Tyler",
		Forced:     outcomeSvc.KindDanger,
	})
	s.Require().NoError(err)
	s.Equal(outcomeSvc.KindDanger, out.Kind)

	event, err := s.broadcasts.GetDangerZone(s.ctx)
	s.Require().NoError(err)
	s.Equal("Tyler", event.Event.PlayerName)
}

func (s *GameServiceTestSuite) TestTransferWritesActivity() {
	out, err := s.service.Transfer(s.ctx, &TransferInput{
		From:   "Evan",
		To:     "Alex",
		Amount: 10,
	})
	s.Require().NoError(err)

	s.Equal(90, out.FromPoints)
	s.Equal(110, out.ToPoints)
	s.NotEmpty(out.Message)

	feed, err := s.activities.GetActivities(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(feed.Entries, 1)
	s.Equal("transfer", feed.Entries[0].Category)
}

func (s *GameServiceTestSuite) TestAssignDrinksSpendsCredits() {
	out, err := s.service.AssignDrinks(s.ctx, &AssignDrinksInput{
		Assignments: map[string]int{"Ian": 2, "Tyler": 1},
		AssignedBy:  "Alex",
	})
	s.Require().NoError(err)

	s.Equal(3, out.TotalDrinks)
	s.Equal(creditsSvc.DrinkCap-3, out.RemainingCredits)

	event, err := s.broadcasts.GetDrinkAssignment(s.ctx)
	s.Require().NoError(err)
	s.Equal("Alex", event.Event.AssignedBy)
}

func (s *GameServiceTestSuite) TestAssignDrinksIdentityOverridesInput() {
	s.service.OnIdentityChange("Marissa", false)

	_, err := s.service.AssignDrinks(s.ctx, &AssignDrinksInput{
		Assignments: map[string]int{"Ian": 1},
		AssignedBy:  "Alex",
	})
	s.Require().NoError(err)

	event, err := s.broadcasts.GetDrinkAssignment(s.ctx)
	s.Require().NoError(err)
	s.Equal("Marissa", event.Event.AssignedBy)
}

func (s *GameServiceTestSuite) TestInitiateDangerZone() {
	out, err := s.service.InitiateDangerZone(s.ctx, &InitiateDangerZoneInput{
		PlayerName: "Dutch",
	})
	s.Require().NoError(err)

	s.Equal(creditsSvc.DangerCap-1, out.RemainingCredits)

	event, err := s.broadcasts.GetDangerZone(s.ctx)
	s.Require().NoError(err)
	s.Equal("Dutch", event.Event.PlayerName)
}

func (s *GameServiceTestSuite) TestProofRequestLifecycle() {
	requested, err := s.service.RequestProof(s.ctx, &RequestProofInput{
		PlayerName:  "Dutch",
		RequestedBy: "Marissa",
	})
	s.Require().NoError(err)
	s.NotEmpty(requested.RequestID)

	err = s.service.SubmitProof(s.ctx, &SubmitProofInput{
		RequestID: requested.RequestID,
		ProofRef:  "photo-1",
	})
	s.Require().NoError(err)

	got, err := s.broadcasts.GetProofRequest(s.ctx, &broadcastRepo.GetProofRequestInput{
		RequestID: requested.RequestID,
	})
	s.Require().NoError(err)
	s.Equal(models.ProofStatusSubmitted, got.Status)
}

func (s *GameServiceTestSuite) TestOperatorGates() {
	err := s.service.SetScore(s.ctx, &SetScoreInput{Name: "Evan", Points: 50})
	s.Require().Error(err)
	s.ErrorIs(err, ErrNotAuthorized)

	err = s.service.ResetScores(s.ctx)
	s.Require().Error(err)
	s.ErrorIs(err, ErrNotAuthorized)

	err = s.service.ForceNextOutcome(s.ctx, &ForceNextOutcomeInput{Kind: outcomeSvc.KindWin})
	s.Require().Error(err)
	s.ErrorIs(err, ErrNotAuthorized)
}

func (s *GameServiceTestSuite) TestOperatorSetScoreAndReset() {
	s.service.OnIdentityChange("Alex", true)

	s.Require().NoError(s.service.SetScore(s.ctx, &SetScoreInput{Name: "Evan", Points: 50}))

	stored, err := s.ledgers.GetLedger(s.ctx)
	s.Require().NoError(err)
	s.Equal(50, stored.Ledger["Evan"].Points)

	s.Require().NoError(s.service.ResetScores(s.ctx))

	stored, err = s.ledgers.GetLedger(s.ctx)
	s.Require().NoError(err)
	s.Equal(models.DefaultPoints, stored.Ledger["Evan"].Points)
}

func (s *GameServiceTestSuite) TestForceNextOutcomeArmsOneDraw() {
	s.service.OnIdentityChange("Alex", true)
	s.Require().NoError(s.service.ForceNextOutcome(s.ctx, &ForceNextOutcomeInput{
		Kind: outcomeSvc.KindMulligan,
	}))
	s.service.OnIdentityChange("", false)

	out, err := s.service.Gamble(s.ctx, &GambleInput{PlayerName: "Evan"})
	s.Require().NoError(err)
	s.Equal(outcomeSvc.KindMulligan, out.Kind)
}

func (s *GameServiceTestSuite) TestUsePowerUp() {
	_, err := s.service.Gamble(s.ctx, &GambleInput{
		PlayerName: "Ian",
		Forced:     outcomeSvc.KindMulligan,
	})
	s.Require().NoError(err)

	s.Require().NoError(s.service.UsePowerUp(s.ctx, &UsePowerUpInput{
		Name: "Ian",
		Kind: models.PowerUpMulligan,
	}))

	stored, err := s.ledgers.GetLedger(s.ctx)
	s.Require().NoError(err)
	s.Zero(stored.Ledger["Ian"].PowerUps.Mulligans)
}

func (s *GameServiceTestSuite) TestLeaderboard() {
	s.mockRoller.EXPECT().Roll(4).Return(4)

	_, err := s.service.Gamble(s.ctx, &GambleInput{
		PlayerName: "Evan",
		Forced:     outcomeSvc.KindWin,
	})
	s.Require().NoError(err)

	out, err := s.service.Leaderboard(s.ctx)
	s.Require().NoError(err)

	s.Require().Len(out.Entries, len(models.Roster))
	s.Equal("Evan", out.Entries[0].Name)
	s.Equal(104, out.Entries[0].Points)
}
