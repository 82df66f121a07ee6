package entities

// QuestPrerequisiteNone is the sentinel for quests without a prerequisite
const QuestPrerequisiteNone = "NONE"

// QuestDefinition is a read-only catalog entry for a quest
type QuestDefinition struct {
	ID            string
	Title         string
	Description   string
	RewardXP      int
	RewardGold    int
	RequiredLevel int
	Prerequisite  string // quest ID, or QuestPrerequisiteNone
}

// HasPrerequisite reports whether the quest requires another quest first
func (q *QuestDefinition) HasPrerequisite() bool {
	return q.Prerequisite != "" && q.Prerequisite != QuestPrerequisiteNone
}
