package quest

import (
	"sort"

	"github.com/KirkDiggler/quest-chronicles/internal/entities"
	qcerr "github.com/KirkDiggler/quest-chronicles/internal/errors"
	charService "github.com/KirkDiggler/quest-chronicles/internal/services/character"
)

// Service defines the quest engine interface
type Service interface {
	// AcceptQuest adds a quest to the character's active list
	AcceptQuest(character *entities.Character, questID string) (*entities.QuestDefinition, error)

	// CompleteQuest moves an active quest to the completed list and
	// grants its rewards
	CompleteQuest(character *entities.Character, questID string) (*CompleteQuestResult, error)

	// AbandonQuest removes a quest from the active list without reward
	AbandonQuest(character *entities.Character, questID string) error

	// GetQuest looks up a quest definition in the catalog
	GetQuest(questID string) (*entities.QuestDefinition, error)

	// GetActiveQuests returns the definitions of the active quests
	GetActiveQuests(character *entities.Character) []*entities.QuestDefinition

	// GetCompletedQuests returns the definitions of the completed quests
	GetCompletedQuests(character *entities.Character) []*entities.QuestDefinition

	// GetAvailableQuests returns the catalog quests the character can
	// accept right now, sorted by quest ID
	GetAvailableQuests(character *entities.Character) []*entities.QuestDefinition

	// CanAcceptQuest reports whether AcceptQuest would succeed
	CanAcceptQuest(character *entities.Character, questID string) bool

	// GetPrerequisiteChain returns the quest IDs from the chain root
	// to the given quest, inclusive
	GetPrerequisiteChain(questID string) ([]string, error)

	// CompletionPercentage returns the share of catalog quests the
	// character has completed, in the 0..100 range
	CompletionPercentage(character *entities.Character) float64

	// TotalRewardsEarned sums the rewards of all completed quests
	TotalRewardsEarned(character *entities.Character) (xp int, gold int)

	// QuestsByLevel returns catalog quests whose required level falls
	// within the range, sorted by required level then quest ID
	QuestsByLevel(minLevel, maxLevel int) []*entities.QuestDefinition
}

// CompleteQuestResult describes the rewards granted by a completion
type CompleteQuestResult struct {
	Quest        *entities.QuestDefinition
	XPAwarded    int
	GoldAwarded  int
	LevelsGained int
}

// service implements the Service interface
type service struct {
	quests           map[string]*entities.QuestDefinition
	characterService charService.Service
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Quests           map[string]*entities.QuestDefinition // Required
	CharacterService charService.Service                  // Required
}

// NewService creates a new quest service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Quests == nil {
		panic("quest catalog is required")
	}
	if cfg.CharacterService == nil {
		panic("character service is required")
	}

	return &service{
		quests:           cfg.Quests,
		characterService: cfg.CharacterService,
	}
}

// GetQuest looks up a quest definition in the catalog
func (s *service) GetQuest(questID string) (*entities.QuestDefinition, error) {
	quest, ok := s.quests[questID]
	if !ok {
		return nil, qcerr.QuestNotFoundf("quest '%s' is not in the catalog", questID).
			WithMeta("quest_id", questID)
	}
	return quest, nil
}

// AcceptQuest adds a quest to the character's active list. The checks
// run in a fixed order: catalog membership, level, prerequisite,
// already completed, already active.
func (s *service) AcceptQuest(character *entities.Character, questID string) (*entities.QuestDefinition, error) {
	if character == nil {
		return nil, qcerr.InvalidArgument("character cannot be nil")
	}

	quest, err := s.GetQuest(questID)
	if err != nil {
		return nil, err
	}

	if character.Level < quest.RequiredLevel {
		return nil, qcerr.Newf(qcerr.CodeInsufficientLevel, "quest '%s' requires level %d, character is level %d", quest.Title, quest.RequiredLevel, character.Level).
			WithMeta("quest_id", questID).
			WithMeta("required_level", quest.RequiredLevel).
			WithMeta("level", character.Level)
	}

	if quest.HasPrerequisite() && !character.HasCompletedQuest(quest.Prerequisite) {
		return nil, qcerr.Newf(qcerr.CodeQuestRequirements, "quest '%s' requires completing '%s' first", quest.Title, quest.Prerequisite).
			WithMeta("quest_id", questID).
			WithMeta("prerequisite", quest.Prerequisite)
	}

	if character.HasCompletedQuest(questID) {
		return nil, qcerr.Newf(qcerr.CodeQuestCompleted, "quest '%s' was already completed", quest.Title).
			WithMeta("quest_id", questID)
	}

	if character.HasActiveQuest(questID) {
		return nil, qcerr.Newf(qcerr.CodeQuestRequirements, "quest '%s' is already active", quest.Title).
			WithMeta("quest_id", questID)
	}

	character.ActiveQuests = append(character.ActiveQuests, questID)
	return quest, nil
}

// CompleteQuest moves an active quest to the completed list and routes
// its rewards through the character service, so quest experience
// levels the character up like combat experience does. Reward grants
// run before the list mutation, keeping a failed completion (a dead
// character) from losing the quest.
func (s *service) CompleteQuest(character *entities.Character, questID string) (*CompleteQuestResult, error) {
	if character == nil {
		return nil, qcerr.InvalidArgument("character cannot be nil")
	}

	quest, err := s.GetQuest(questID)
	if err != nil {
		return nil, err
	}

	if !character.HasActiveQuest(questID) {
		return nil, qcerr.QuestNotActivef("quest '%s' is not active", quest.Title).
			WithMeta("quest_id", questID)
	}

	levels, err := s.characterService.GainExperience(character, quest.RewardXP)
	if err != nil {
		return nil, qcerr.Wrapf(err, "failed to grant rewards for quest '%s'", questID)
	}
	if err := s.characterService.AddGold(character, quest.RewardGold); err != nil {
		return nil, qcerr.Wrapf(err, "failed to grant rewards for quest '%s'", questID)
	}

	s.removeActive(character, questID)
	character.CompletedQuests = append(character.CompletedQuests, questID)

	return &CompleteQuestResult{
		Quest:        quest,
		XPAwarded:    quest.RewardXP,
		GoldAwarded:  quest.RewardGold,
		LevelsGained: levels,
	}, nil
}

// AbandonQuest removes a quest from the active list without reward
func (s *service) AbandonQuest(character *entities.Character, questID string) error {
	if character == nil {
		return qcerr.InvalidArgument("character cannot be nil")
	}

	if !character.HasActiveQuest(questID) {
		return qcerr.QuestNotActivef("quest '%s' is not active", questID).
			WithMeta("quest_id", questID)
	}

	s.removeActive(character, questID)
	return nil
}

// GetActiveQuests returns the definitions of the active quests
func (s *service) GetActiveQuests(character *entities.Character) []*entities.QuestDefinition {
	return s.lookupAll(character.ActiveQuests)
}

// GetCompletedQuests returns the definitions of the completed quests
func (s *service) GetCompletedQuests(character *entities.Character) []*entities.QuestDefinition {
	return s.lookupAll(character.CompletedQuests)
}

// GetAvailableQuests returns the catalog quests the character can
// accept right now
func (s *service) GetAvailableQuests(character *entities.Character) []*entities.QuestDefinition {
	available := make([]*entities.QuestDefinition, 0)
	for id, quest := range s.quests {
		if s.CanAcceptQuest(character, id) {
			available = append(available, quest)
		}
	}

	sort.Slice(available, func(i, j int) bool {
		return available[i].ID < available[j].ID
	})
	return available
}

// CanAcceptQuest reports whether AcceptQuest would succeed
func (s *service) CanAcceptQuest(character *entities.Character, questID string) bool {
	if character == nil {
		return false
	}

	quest, ok := s.quests[questID]
	if !ok {
		return false
	}
	if character.Level < quest.RequiredLevel {
		return false
	}
	if quest.HasPrerequisite() && !character.HasCompletedQuest(quest.Prerequisite) {
		return false
	}
	if character.HasCompletedQuest(questID) || character.HasActiveQuest(questID) {
		return false
	}
	return true
}

// GetPrerequisiteChain returns the quest IDs from the chain root to
// the given quest. The walk is bounded by the catalog size, so a
// prerequisite cycle in unvalidated data surfaces as an error instead
// of an infinite loop.
func (s *service) GetPrerequisiteChain(questID string) ([]string, error) {
	chain := []string{}
	current := questID

	for i := 0; i <= len(s.quests); i++ {
		quest, err := s.GetQuest(current)
		if err != nil {
			return nil, err
		}

		chain = append(chain, current)
		if !quest.HasPrerequisite() {
			// reverse to root-first order
			for l, r := 0, len(chain)-1; l < r; l, r = l+1, r-1 {
				chain[l], chain[r] = chain[r], chain[l]
			}
			return chain, nil
		}
		current = quest.Prerequisite
	}

	return nil, qcerr.DataFormatf("prerequisite cycle detected walking from quest '%s'", questID).
		WithMeta("quest_id", questID)
}

// CompletionPercentage returns the share of catalog quests completed
func (s *service) CompletionPercentage(character *entities.Character) float64 {
	if len(s.quests) == 0 {
		return 0
	}

	completed := 0
	for id := range s.quests {
		if character.HasCompletedQuest(id) {
			completed++
		}
	}
	return float64(completed) / float64(len(s.quests)) * 100
}

// TotalRewardsEarned sums the rewards of all completed quests
func (s *service) TotalRewardsEarned(character *entities.Character) (xp int, gold int) {
	for _, id := range character.CompletedQuests {
		if quest, ok := s.quests[id]; ok {
			xp += quest.RewardXP
			gold += quest.RewardGold
		}
	}
	return xp, gold
}

// QuestsByLevel returns catalog quests in the required-level range
func (s *service) QuestsByLevel(minLevel, maxLevel int) []*entities.QuestDefinition {
	matched := make([]*entities.QuestDefinition, 0)
	for _, quest := range s.quests {
		if quest.RequiredLevel >= minLevel && quest.RequiredLevel <= maxLevel {
			matched = append(matched, quest)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].RequiredLevel != matched[j].RequiredLevel {
			return matched[i].RequiredLevel < matched[j].RequiredLevel
		}
		return matched[i].ID < matched[j].ID
	})
	return matched
}

// removeActive drops a quest ID from the active list
func (s *service) removeActive(character *entities.Character, questID string) {
	for i, id := range character.ActiveQuests {
		if id == questID {
			character.ActiveQuests = append(character.ActiveQuests[:i], character.ActiveQuests[i+1:]...)
			return
		}
	}
}

// lookupAll maps quest IDs to catalog definitions, skipping IDs no
// longer present in the catalog
func (s *service) lookupAll(ids []string) []*entities.QuestDefinition {
	quests := make([]*entities.QuestDefinition, 0, len(ids))
	for _, id := range ids {
		if quest, ok := s.quests[id]; ok {
			quests = append(quests, quest)
		}
	}
	return quests
}
