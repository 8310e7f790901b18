package ledger

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/hogwash-crew/hogwash/internal/models"
	ledgerRepo "github.com/hogwash-crew/hogwash/internal/repositories/ledger"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    ledgerRepo.Repository
	service Service
	ctx     context.Context
}

func (s *LedgerServiceTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := ledgerRepo.NewRedis(&ledgerRepo.Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	svc, err := NewService(&Config{
		Repo: s.repo,
	})
	s.Require().NoError(err)
	s.service = svc

	s.ctx = context.Background()
}

func (s *LedgerServiceTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func (s *LedgerServiceTestSuite) TestLoadSynthesizesRoster() {
	out, err := s.service.Load(s.ctx)
	s.Require().NoError(err)

	// Every roster member plus the house gets a default record
	s.Len(out.Ledger, len(models.Roster)+1)
	s.Equal(models.DefaultPoints, out.Ledger["Evan"].Points)
	s.Equal(models.DefaultHousePoints, out.Ledger[models.HouseAccount].Points)

	// The synthesized document was written back
	stored, err := s.repo.GetLedger(s.ctx)
	s.Require().NoError(err)
	s.Len(stored.Ledger, len(models.Roster)+1)
}

func (s *LedgerServiceTestSuite) TestLoadMigratesLegacyDocument() {
	s.Require().NoError(s.mr.Set("players", `{"Evan": 120, "Alex": 80}`))

	out, err := s.service.Load(s.ctx)
	s.Require().NoError(err)

	// Legacy balances survive, missing members get defaults
	s.Equal(120, out.Ledger["Evan"].Points)
	s.Equal(80, out.Ledger["Alex"].Points)
	s.Equal(models.DefaultPoints, out.Ledger["Ian"].Points)

	// The write-back stored the canonical shape; a second load sees no
	// further normalization
	stored, err := s.repo.GetLedger(s.ctx)
	s.Require().NoError(err)
	s.False(stored.Normalized)
	s.Equal(120, stored.Ledger["Evan"].Points)
}

func (s *LedgerServiceTestSuite) TestTransfer() {
	_, err := s.service.Load(s.ctx)
	s.Require().NoError(err)

	out, err := s.service.Transfer(s.ctx, &TransferInput{
		From:   "Evan",
		To:     "Alex",
		Amount: 30,
	})
	s.Require().NoError(err)

	s.Equal(70, out.FromPoints)
	s.Equal(130, out.ToPoints)
}

func (s *LedgerServiceTestSuite) TestTransferToSelf() {
	_, err := s.service.Transfer(s.ctx, &TransferInput{
		From:   "Evan",
		To:     "Evan",
		Amount: 10,
	})
	s.Require().Error(err)
	s.ErrorIs(err, ErrInvalidTarget)
}

func (s *LedgerServiceTestSuite) TestTransferNonPositiveAmount() {
	_, err := s.service.Transfer(s.ctx, &TransferInput{
		From:   "Evan",
		To:     "Alex",
		Amount: 0,
	})
	s.Require().Error(err)
	s.ErrorIs(err, ErrInvalidAmount)
}

func (s *LedgerServiceTestSuite) TestTransferUnknownPlayer() {
	_, err := s.service.Transfer(s.ctx, &TransferInput{
		From:   "Stranger",
		To:     "Alex",
		Amount: 10,
	})
	s.Require().Error(err)
	s.ErrorIs(err, ErrUnknownPlayer)
}

func (s *LedgerServiceTestSuite) TestTransferInsufficientFunds() {
	_, err := s.service.Transfer(s.ctx, &TransferInput{
		From:   "Evan",
		To:     "Alex",
		Amount: 101,
	})
	s.Require().Error(err)
	s.ErrorIs(err, ErrInsufficientFunds)
}

func (s *LedgerServiceTestSuite) TestAdjustPointsConservesPair() {
	adjusted, err := s.service.AdjustPoints(s.ctx, &AdjustPointsInput{
		Deltas: map[string]int{
			"Evan":              3,
			models.HouseAccount: -3,
		},
	})
	s.Require().NoError(err)

	s.Equal(103, adjusted.Ledger["Evan"].Points)
	s.Equal(997, adjusted.Ledger[models.HouseAccount].Points)
}

func (s *LedgerServiceTestSuite) TestAdjustPointsAllowsNegativeBalance() {
	adjusted, err := s.service.AdjustPoints(s.ctx, &AdjustPointsInput{
		Deltas: map[string]int{
			"Evan":              -105,
			models.HouseAccount: 105,
		},
	})
	s.Require().NoError(err)

	s.Equal(-5, adjusted.Ledger["Evan"].Points)
}

func (s *LedgerServiceTestSuite) TestPowerUpLifecycle() {
	err := s.service.AddPowerUp(s.ctx, &AddPowerUpInput{
		Name:  "Evan",
		Kind:  models.PowerUpMulligan,
		Count: 2,
	})
	s.Require().NoError(err)

	err = s.service.SpendPowerUp(s.ctx, &SpendPowerUpInput{
		Name: "Evan",
		Kind: models.PowerUpMulligan,
	})
	s.Require().NoError(err)

	out, err := s.service.Load(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, out.Ledger["Evan"].PowerUps.Mulligans)
}

func (s *LedgerServiceTestSuite) TestSpendPowerUpWithoutInventory() {
	_, err := s.service.Load(s.ctx)
	s.Require().NoError(err)

	err = s.service.SpendPowerUp(s.ctx, &SpendPowerUpInput{
		Name: "Evan",
		Kind: models.PowerUpReverseMulligan,
	})
	s.Require().Error(err)
	s.ErrorIs(err, ErrInsufficientPowerUps)
}

func (s *LedgerServiceTestSuite) TestSetScoreAndReset() {
	err := s.service.SetScore(s.ctx, &SetScoreInput{
		Name:   "Evan",
		Points: 500,
	})
	s.Require().NoError(err)

	out, err := s.service.Load(s.ctx)
	s.Require().NoError(err)
	s.Equal(500, out.Ledger["Evan"].Points)

	s.Require().NoError(s.service.ResetScores(s.ctx))

	out, err = s.service.Load(s.ctx)
	s.Require().NoError(err)
	s.Equal(models.DefaultPoints, out.Ledger["Evan"].Points)
	s.Equal(models.DefaultHousePoints, out.Ledger[models.HouseAccount].Points)
}

func (s *LedgerServiceTestSuite) TestLeaderboardExcludesHouse() {
	out, err := s.service.Leaderboard(s.ctx)
	s.Require().NoError(err)

	s.Len(out.Entries, len(models.Roster))
	for _, entry := range out.Entries {
		s.NotEqual(models.HouseAccount, entry.Name)
	}
}

// Two clients that read the same snapshot and save independently: the
// second physical write wins in full, silently discarding the first.
func (s *LedgerServiceTestSuite) TestConcurrentSavesLastWriterWins() {
	base, err := s.service.Load(s.ctx)
	s.Require().NoError(err)

	first := base.Ledger.Clone()
	second := base.Ledger.Clone()

	first["Evan"].Points = 110
	second["Alex"].Points = 90

	s.Require().NoError(s.service.Save(s.ctx, &SaveInput{Ledger: first}))
	s.Require().NoError(s.service.Save(s.ctx, &SaveInput{Ledger: second}))

	out, err := s.service.Load(s.ctx)
	s.Require().NoError(err)

	// The second save carried the stale Evan balance
	s.Equal(models.DefaultPoints, out.Ledger["Evan"].Points)
	s.Equal(90, out.Ledger["Alex"].Points)
}

func (s *LedgerServiceTestSuite) TestSaveFallsBackWhenRemoteUnavailable() {
	fallback := ledgerRepo.NewMemory()

	svc, err := NewService(&Config{
		Repo:     s.repo,
		Fallback: fallback,
	})
	s.Require().NoError(err)

	ledger := models.NewDefaultLedger()
	ledger["Evan"].Points = 77

	// Kill the remote store
	s.mr.Close()

	err = svc.Save(s.ctx, &SaveInput{Ledger: ledger})
	s.Require().Error(err)
	s.ErrorIs(err, ErrStoreUnavailable)

	// The snapshot landed in the local fallback
	stored, err := fallback.GetLedger(s.ctx)
	s.Require().NoError(err)
	s.Equal(77, stored.Ledger["Evan"].Points)
}
