package credits

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	clockMocks "github.com/hogwash-crew/hogwash/internal/common/clock/mocks"
	"github.com/hogwash-crew/hogwash/internal/models"
	creditsRepo "github.com/hogwash-crew/hogwash/internal/repositories/credits"
)

type CreditsServiceTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockClock *clockMocks.MockClock
	mr        *miniredis.Miniredis
	client    *redis.Client
	repo      creditsRepo.Repository
	ctx       context.Context
	testTime  time.Time
}

func (s *CreditsServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)

	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := creditsRepo.NewRedis(&creditsRepo.Config{
		RedisClient: s.client,
		Key:         creditsRepo.DrinkSystemKey,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.ctx = context.Background()

	// 14:00 falls inside any daily window used below
	s.testTime = time.Date(2026, 8, 15, 14, 0, 0, 0, time.Local)
}

func (s *CreditsServiceTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
	s.mockCtrl.Finish()
}

func TestCreditsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CreditsServiceTestSuite))
}

func (s *CreditsServiceTestSuite) newDrinkSystem() Service {
	svc, err := NewService(&Config{
		Repo:           s.repo,
		Clock:          s.mockClock,
		RefillInterval: DrinkRefillInterval,
		Cap:            DrinkCap,
		Grant:          DrinkGrant,
	})
	s.Require().NoError(err)
	return svc
}

func (s *CreditsServiceTestSuite) seed(credits int, lastRefill time.Time) {
	err := s.repo.SaveCredits(s.ctx, &creditsRepo.SaveCreditsInput{
		Balance: &models.CreditBalance{
			Credits:    credits,
			LastRefill: lastRefill.UnixMilli(),
		},
	})
	s.Require().NoError(err)
}

func (s *CreditsServiceTestSuite) TestFirstLoadInitializesAtCap() {
	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()
	svc := s.newDrinkSystem()

	out, err := svc.Load(s.ctx)
	s.Require().NoError(err)

	s.Equal(DrinkCap, out.Credits)
	s.Equal(s.testTime.UnixMilli(), out.LastRefill)

	// The initialization was persisted
	stored, err := s.repo.GetCredits(s.ctx)
	s.Require().NoError(err)
	s.Equal(DrinkCap, stored.Balance.Credits)
}

func (s *CreditsServiceTestSuite) TestTickBeforeIntervalGrantsNothing() {
	s.seed(5, s.testTime.Add(-30*time.Minute))
	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()
	svc := s.newDrinkSystem()

	out, err := svc.Tick(s.ctx)
	s.Require().NoError(err)

	s.False(out.Granted)
	s.Equal(5, out.Credits)
}

func (s *CreditsServiceTestSuite) TestTickGrantsAfterInterval() {
	s.seed(5, s.testTime.Add(-DrinkRefillInterval))
	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()
	svc := s.newDrinkSystem()

	out, err := svc.Tick(s.ctx)
	s.Require().NoError(err)

	s.True(out.Granted)
	s.Equal(15, out.Credits)

	stored, err := s.repo.GetCredits(s.ctx)
	s.Require().NoError(err)
	s.Equal(s.testTime.UnixMilli(), stored.Balance.LastRefill)
}

func (s *CreditsServiceTestSuite) TestTickClampsToCap() {
	s.seed(15, s.testTime.Add(-DrinkRefillInterval))
	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()
	svc := s.newDrinkSystem()

	out, err := svc.Tick(s.ctx)
	s.Require().NoError(err)

	s.True(out.Granted)
	s.Equal(DrinkCap, out.Credits)
}

func (s *CreditsServiceTestSuite) TestTickAtCapStillAdvancesLastRefill() {
	s.seed(DrinkCap, s.testTime.Add(-DrinkRefillInterval))
	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()
	svc := s.newDrinkSystem()

	out, err := svc.Tick(s.ctx)
	s.Require().NoError(err)

	s.False(out.Granted)
	s.Equal(DrinkCap, out.Credits)

	// A stuck lastRefill would re-grant the instant the holder spends
	stored, err := s.repo.GetCredits(s.ctx)
	s.Require().NoError(err)
	s.Equal(s.testTime.UnixMilli(), stored.Balance.LastRefill)
}

func (s *CreditsServiceTestSuite) TestSpend() {
	s.seed(10, s.testTime)
	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()
	svc := s.newDrinkSystem()

	out, err := svc.Spend(s.ctx, &SpendInput{Amount: 4})
	s.Require().NoError(err)
	s.Equal(6, out.Credits)
}

func (s *CreditsServiceTestSuite) TestSpendInsufficientCredits() {
	s.seed(2, s.testTime)
	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()
	svc := s.newDrinkSystem()

	_, err := svc.Spend(s.ctx, &SpendInput{Amount: 3})
	s.Require().Error(err)
	s.ErrorIs(err, ErrInsufficientCredits)
}

func (s *CreditsServiceTestSuite) TestSpendNonPositiveAmount() {
	svc := s.newDrinkSystem()

	_, err := svc.Spend(s.ctx, &SpendInput{Amount: 0})
	s.Require().Error(err)
	s.ErrorIs(err, ErrInvalidAmount)
}

func (s *CreditsServiceTestSuite) TestSpendOutsideDailyWindow() {
	svc, err := NewService(&Config{
		Repo:            s.repo,
		Clock:           s.mockClock,
		RefillInterval:  DangerRefillInterval,
		Cap:             DangerCap,
		Grant:           DangerGrant,
		WindowStartHour: DangerWindowStartHour,
		WindowEndHour:   DangerWindowEndHour,
	})
	s.Require().NoError(err)

	// 03:00 is outside the 10:00-23:00 window
	night := time.Date(2026, 8, 15, 3, 0, 0, 0, time.Local)
	s.mockClock.EXPECT().Now().Return(night).AnyTimes()

	_, err = svc.Spend(s.ctx, &SpendInput{Amount: 1})
	s.Require().Error(err)
	s.ErrorIs(err, ErrOutsideWindow)
}

func (s *CreditsServiceTestSuite) TestSpendInsideDailyWindow() {
	s.seed(3, s.testTime)

	svc, err := NewService(&Config{
		Repo:            s.repo,
		Clock:           s.mockClock,
		RefillInterval:  DangerRefillInterval,
		Cap:             DangerCap,
		Grant:           DangerGrant,
		WindowStartHour: DangerWindowStartHour,
		WindowEndHour:   DangerWindowEndHour,
	})
	s.Require().NoError(err)

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	out, err := svc.Spend(s.ctx, &SpendInput{Amount: 1})
	s.Require().NoError(err)
	s.Equal(2, out.Credits)
}
