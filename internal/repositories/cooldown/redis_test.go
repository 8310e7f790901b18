package cooldown

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/hogwash-crew/hogwash/internal/models"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	repo   Repository
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetCooldowns() {
	cooldowns := models.Cooldowns{
		"Evan": 1700000000000,
		"Alex": 1700000001000,
	}

	err := s.repo.SaveCooldowns(context.Background(), &SaveCooldownsInput{
		Cooldowns: cooldowns,
	})
	s.Require().NoError(err)

	out, err := s.repo.GetCooldowns(context.Background())
	s.Require().NoError(err)

	s.Equal(int64(1700000000000), out.Cooldowns["Evan"])
	s.Equal(int64(1700000001000), out.Cooldowns["Alex"])
}

func (s *RedisRepositoryTestSuite) TestGetCooldownsNotFound() {
	_, err := s.repo.GetCooldowns(context.Background())
	s.Require().Error(err)
	s.Equal(ErrCooldownsNotFound, err)
}

func (s *RedisRepositoryTestSuite) TestSaveOverwritesWholeDocument() {
	err := s.repo.SaveCooldowns(context.Background(), &SaveCooldownsInput{
		Cooldowns: models.Cooldowns{"Evan": 100, "Alex": 200},
	})
	s.Require().NoError(err)

	// A second save replaces the document entirely, dropped stamps included
	err = s.repo.SaveCooldowns(context.Background(), &SaveCooldownsInput{
		Cooldowns: models.Cooldowns{"Evan": 300},
	})
	s.Require().NoError(err)

	out, err := s.repo.GetCooldowns(context.Background())
	s.Require().NoError(err)

	s.Equal(int64(300), out.Cooldowns["Evan"])
	s.NotContains(out.Cooldowns, "Alex")
}
