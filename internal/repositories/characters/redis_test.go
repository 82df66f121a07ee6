package characters

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/quest-chronicles/internal/entities"
	qcerr "github.com/KirkDiggler/quest-chronicles/internal/errors"
)

type RedisRepoTestSuite struct {
	suite.Suite
	mock redismock.ClientMock
	repo Repository
}

func (s *RedisRepoTestSuite) SetupTest() {
	client, mock := redismock.NewClientMock()
	s.mock = mock
	s.repo = NewRedisRepository(client)
}

func (s *RedisRepoTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestRedisRepoTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepoTestSuite))
}

func (s *RedisRepoTestSuite) testCharacter() *entities.Character {
	character, err := entities.NewCharacter("Hero", entities.ClassWarrior)
	s.Require().NoError(err)
	return character
}

func (s *RedisRepoTestSuite) marshal(character *entities.Character) string {
	jsonData, err := json.Marshal(toData(character))
	s.Require().NoError(err)
	return string(jsonData)
}

func (s *RedisRepoTestSuite) TestCreate() {
	ctx := context.Background()
	character := s.testCharacter()

	s.mock.ExpectExists("character:Hero").SetVal(0)
	s.mock.ExpectSet("character:Hero", s.marshal(character), 0).SetVal("OK")
	s.mock.ExpectSAdd("characters", "Hero").SetVal(1)

	s.NoError(s.repo.Create(ctx, character))
}

func (s *RedisRepoTestSuite) TestCreate_AlreadyExists() {
	ctx := context.Background()
	character := s.testCharacter()

	s.mock.ExpectExists("character:Hero").SetVal(1)

	err := s.repo.Create(ctx, character)
	s.Error(err)
	s.Equal(qcerr.CodeAlreadyExists, qcerr.GetCode(err))
}

func (s *RedisRepoTestSuite) TestGet() {
	ctx := context.Background()
	character := s.testCharacter()

	s.mock.ExpectGet("character:Hero").SetVal(s.marshal(character))

	loaded, err := s.repo.Get(ctx, "Hero")
	s.NoError(err)
	s.Equal(character, loaded)
}

func (s *RedisRepoTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	s.mock.ExpectGet("character:Nobody").RedisNil()

	_, err := s.repo.Get(ctx, "Nobody")
	s.Error(err)
	s.True(qcerr.IsNotFound(err))
}

func (s *RedisRepoTestSuite) TestList() {
	ctx := context.Background()
	character := s.testCharacter()

	// List fetches characters concurrently, so Get order is not fixed
	s.mock.MatchExpectationsInOrder(false)

	s.mock.ExpectSMembers("characters").SetVal([]string{"Hero"})
	s.mock.ExpectGet("character:Hero").SetVal(s.marshal(character))

	characters, err := s.repo.List(ctx)
	s.NoError(err)
	s.Len(characters, 1)
	s.Equal("Hero", characters[0].Name)
}

func (s *RedisRepoTestSuite) TestUpdate() {
	ctx := context.Background()
	character := s.testCharacter()
	character.Gold = 250

	s.mock.ExpectExists("character:Hero").SetVal(1)
	s.mock.ExpectSet("character:Hero", s.marshal(character), 0).SetVal("OK")
	s.mock.ExpectSAdd("characters", "Hero").SetVal(0)

	s.NoError(s.repo.Update(ctx, character))
}

func (s *RedisRepoTestSuite) TestUpdate_NotFound() {
	ctx := context.Background()
	character := s.testCharacter()

	s.mock.ExpectExists("character:Hero").SetVal(0)

	err := s.repo.Update(ctx, character)
	s.Error(err)
	s.True(qcerr.IsNotFound(err))
}

func (s *RedisRepoTestSuite) TestDelete() {
	ctx := context.Background()

	s.mock.ExpectDel("character:Hero").SetVal(1)
	s.mock.ExpectSRem("characters", "Hero").SetVal(1)

	s.NoError(s.repo.Delete(ctx, "Hero"))
}

func (s *RedisRepoTestSuite) TestDelete_NotFound() {
	ctx := context.Background()

	s.mock.ExpectDel("character:Nobody").SetVal(0)

	err := s.repo.Delete(ctx, "Nobody")
	s.Error(err)
	s.True(qcerr.IsNotFound(err))
}

func (s *RedisRepoTestSuite) TestDependencyError() {
	ctx := context.Background()

	s.mock.ExpectGet("character:Hero").SetErr(errors.New("redis error"))

	_, err := s.repo.Get(ctx, "Hero")
	s.Error(err)
}
