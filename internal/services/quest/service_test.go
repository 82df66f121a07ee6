package quest_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/quest-chronicles/internal/entities"
	qcerr "github.com/KirkDiggler/quest-chronicles/internal/errors"
	"github.com/KirkDiggler/quest-chronicles/internal/repositories/characters"
	charService "github.com/KirkDiggler/quest-chronicles/internal/services/character"
	"github.com/KirkDiggler/quest-chronicles/internal/services/quest"
)

type QuestServiceTestSuite struct {
	suite.Suite
	service quest.Service
	char    *entities.Character
}

func (s *QuestServiceTestSuite) SetupTest() {
	charSvc := charService.NewService(&charService.ServiceConfig{
		Repository: characters.NewInMemoryRepository(),
	})

	s.service = quest.NewService(&quest.ServiceConfig{
		CharacterService: charSvc,
		Quests: map[string]*entities.QuestDefinition{
			"slay_goblin": {
				ID:            "slay_goblin",
				Title:         "Slay the Goblin",
				RewardXP:      50,
				RewardGold:    20,
				RequiredLevel: 1,
				Prerequisite:  entities.QuestPrerequisiteNone,
			},
			"goblin_chief": {
				ID:            "goblin_chief",
				Title:         "The Goblin Chief",
				RewardXP:      120,
				RewardGold:    60,
				RequiredLevel: 2,
				Prerequisite:  "slay_goblin",
			},
			"dragon_hunt": {
				ID:            "dragon_hunt",
				Title:         "Dragon Hunt",
				RewardXP:      500,
				RewardGold:    300,
				RequiredLevel: 6,
				Prerequisite:  "goblin_chief",
			},
		},
	})

	char, err := entities.NewCharacter("Mira", entities.ClassCleric)
	s.Require().NoError(err)
	s.char = char
}

func TestQuestServiceSuite(t *testing.T) {
	suite.Run(t, new(QuestServiceTestSuite))
}

func (s *QuestServiceTestSuite) TestAcceptQuest() {
	quest, err := s.service.AcceptQuest(s.char, "slay_goblin")
	s.NoError(err)
	s.Equal("Slay the Goblin", quest.Title)
	s.Equal([]string{"slay_goblin"}, s.char.ActiveQuests)
}

func (s *QuestServiceTestSuite) TestAcceptQuestUnknown() {
	_, err := s.service.AcceptQuest(s.char, "lost_scroll")
	s.Error(err)
	s.Equal(qcerr.CodeQuestNotFound, qcerr.GetCode(err))
}

func (s *QuestServiceTestSuite) TestAcceptQuestLevelTooLow() {
	s.char.CompletedQuests = []string{"slay_goblin"}

	_, err := s.service.AcceptQuest(s.char, "goblin_chief")
	s.Error(err)
	s.Equal(qcerr.CodeInsufficientLevel, qcerr.GetCode(err))
	s.Empty(s.char.ActiveQuests)
}

func (s *QuestServiceTestSuite) TestAcceptQuestMissingPrerequisite() {
	s.char.Level = 3

	_, err := s.service.AcceptQuest(s.char, "goblin_chief")
	s.Error(err)
	s.Equal(qcerr.CodeQuestRequirements, qcerr.GetCode(err))
}

func (s *QuestServiceTestSuite) TestAcceptQuestLevelCheckedBeforePrerequisite() {
	// neither requirement holds; level failure wins
	_, err := s.service.AcceptQuest(s.char, "goblin_chief")
	s.Error(err)
	s.Equal(qcerr.CodeInsufficientLevel, qcerr.GetCode(err))
}

func (s *QuestServiceTestSuite) TestAcceptQuestAlreadyCompleted() {
	s.char.CompletedQuests = []string{"slay_goblin"}

	_, err := s.service.AcceptQuest(s.char, "slay_goblin")
	s.Error(err)
	s.Equal(qcerr.CodeQuestCompleted, qcerr.GetCode(err))
}

func (s *QuestServiceTestSuite) TestAcceptQuestAlreadyActive() {
	_, err := s.service.AcceptQuest(s.char, "slay_goblin")
	s.Require().NoError(err)

	_, err = s.service.AcceptQuest(s.char, "slay_goblin")
	s.Error(err)
	s.Equal(qcerr.CodeQuestRequirements, qcerr.GetCode(err))
	s.Equal([]string{"slay_goblin"}, s.char.ActiveQuests)
}

func (s *QuestServiceTestSuite) TestCompleteQuest() {
	_, err := s.service.AcceptQuest(s.char, "slay_goblin")
	s.Require().NoError(err)

	result, err := s.service.CompleteQuest(s.char, "slay_goblin")
	s.NoError(err)
	s.Equal(50, result.XPAwarded)
	s.Equal(20, result.GoldAwarded)
	s.Equal(0, result.LevelsGained)
	s.Equal(50, s.char.Experience)
	s.Equal(120, s.char.Gold)
	s.Empty(s.char.ActiveQuests)
	s.Equal([]string{"slay_goblin"}, s.char.CompletedQuests)
}

func (s *QuestServiceTestSuite) TestCompleteQuestLevelsUp() {
	s.char.CompletedQuests = []string{"slay_goblin"}
	s.char.Level = 2
	s.char.Health = 40
	_, err := s.service.AcceptQuest(s.char, "goblin_chief")
	s.Require().NoError(err)

	result, err := s.service.CompleteQuest(s.char, "goblin_chief")
	s.NoError(err)
	s.Equal(0, result.LevelsGained)
	s.Equal(120, s.char.Experience)
	s.Equal(2, s.char.Level)
	s.Equal(40, s.char.Health)
}

func (s *QuestServiceTestSuite) TestCompleteQuestRewardsLevelUp() {
	s.char.Experience = 60
	_, err := s.service.AcceptQuest(s.char, "slay_goblin")
	s.Require().NoError(err)

	result, err := s.service.CompleteQuest(s.char, "slay_goblin")
	s.NoError(err)
	s.Equal(1, result.LevelsGained)
	s.Equal(2, s.char.Level)
	s.Equal(10, s.char.Experience)
	s.Equal(100, s.char.MaxHealth)
	s.Equal(100, s.char.Health)
}

func (s *QuestServiceTestSuite) TestCompleteQuestNotActive() {
	_, err := s.service.CompleteQuest(s.char, "slay_goblin")
	s.Error(err)
	s.Equal(qcerr.CodeQuestNotActive, qcerr.GetCode(err))
}

func (s *QuestServiceTestSuite) TestCompleteQuestDeadCharacterKeepsQuest() {
	_, err := s.service.AcceptQuest(s.char, "slay_goblin")
	s.Require().NoError(err)
	s.char.Health = 0

	_, err = s.service.CompleteQuest(s.char, "slay_goblin")
	s.Error(err)
	s.True(qcerr.IsCharacterDead(err))
	s.Equal([]string{"slay_goblin"}, s.char.ActiveQuests)
	s.Empty(s.char.CompletedQuests)
}

func (s *QuestServiceTestSuite) TestAbandonQuest() {
	_, err := s.service.AcceptQuest(s.char, "slay_goblin")
	s.Require().NoError(err)

	s.NoError(s.service.AbandonQuest(s.char, "slay_goblin"))
	s.Empty(s.char.ActiveQuests)
	s.Equal(0, s.char.Experience)
}

func (s *QuestServiceTestSuite) TestAbandonQuestNotActive() {
	err := s.service.AbandonQuest(s.char, "slay_goblin")
	s.Error(err)
	s.Equal(qcerr.CodeQuestNotActive, qcerr.GetCode(err))
}

func (s *QuestServiceTestSuite) TestGetAvailableQuests() {
	available := s.service.GetAvailableQuests(s.char)
	s.Len(available, 1)
	s.Equal("slay_goblin", available[0].ID)

	s.char.Level = 2
	s.char.CompletedQuests = []string{"slay_goblin"}
	available = s.service.GetAvailableQuests(s.char)
	s.Len(available, 1)
	s.Equal("goblin_chief", available[0].ID)
}

func (s *QuestServiceTestSuite) TestGetActiveAndCompletedQuests() {
	_, err := s.service.AcceptQuest(s.char, "slay_goblin")
	s.Require().NoError(err)

	active := s.service.GetActiveQuests(s.char)
	s.Len(active, 1)
	s.Equal("Slay the Goblin", active[0].Title)

	_, err = s.service.CompleteQuest(s.char, "slay_goblin")
	s.Require().NoError(err)

	s.Empty(s.service.GetActiveQuests(s.char))
	s.Len(s.service.GetCompletedQuests(s.char), 1)
}

func (s *QuestServiceTestSuite) TestGetPrerequisiteChain() {
	chain, err := s.service.GetPrerequisiteChain("dragon_hunt")
	s.NoError(err)
	s.Equal([]string{"slay_goblin", "goblin_chief", "dragon_hunt"}, chain)
}

func (s *QuestServiceTestSuite) TestGetPrerequisiteChainRoot() {
	chain, err := s.service.GetPrerequisiteChain("slay_goblin")
	s.NoError(err)
	s.Equal([]string{"slay_goblin"}, chain)
}

func (s *QuestServiceTestSuite) TestGetPrerequisiteChainUnknownQuest() {
	_, err := s.service.GetPrerequisiteChain("lost_scroll")
	s.Error(err)
	s.Equal(qcerr.CodeQuestNotFound, qcerr.GetCode(err))
}

func (s *QuestServiceTestSuite) TestCompletionPercentage() {
	s.InDelta(0.0, s.service.CompletionPercentage(s.char), 0.001)

	s.char.CompletedQuests = []string{"slay_goblin"}
	s.InDelta(33.333, s.service.CompletionPercentage(s.char), 0.01)

	s.char.CompletedQuests = []string{"slay_goblin", "goblin_chief", "dragon_hunt"}
	s.InDelta(100.0, s.service.CompletionPercentage(s.char), 0.001)
}

func (s *QuestServiceTestSuite) TestTotalRewardsEarned() {
	s.char.CompletedQuests = []string{"slay_goblin", "goblin_chief"}

	xp, gold := s.service.TotalRewardsEarned(s.char)
	s.Equal(170, xp)
	s.Equal(80, gold)
}

func (s *QuestServiceTestSuite) TestQuestsByLevel() {
	quests := s.service.QuestsByLevel(1, 2)
	s.Len(quests, 2)
	s.Equal("slay_goblin", quests[0].ID)
	s.Equal("goblin_chief", quests[1].ID)
}

func (s *QuestServiceTestSuite) TestGetPrerequisiteChainCycle() {
	charSvc := charService.NewService(&charService.ServiceConfig{
		Repository: characters.NewInMemoryRepository(),
	})
	cyclic := quest.NewService(&quest.ServiceConfig{
		CharacterService: charSvc,
		Quests: map[string]*entities.QuestDefinition{
			"a": {ID: "a", Title: "A", RequiredLevel: 1, Prerequisite: "b"},
			"b": {ID: "b", Title: "B", RequiredLevel: 1, Prerequisite: "a"},
		},
	})

	_, err := cyclic.GetPrerequisiteChain("a")
	s.Error(err)
	s.Equal(qcerr.CodeDataFormat, qcerr.GetCode(err))
}
