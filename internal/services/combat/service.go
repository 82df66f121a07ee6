package combat

import (
	"github.com/KirkDiggler/quest-chronicles/internal/dice"
	"github.com/KirkDiggler/quest-chronicles/internal/entities"
	qcerr "github.com/KirkDiggler/quest-chronicles/internal/errors"
	charService "github.com/KirkDiggler/quest-chronicles/internal/services/character"
	"github.com/KirkDiggler/quest-chronicles/internal/uuid"
)

// CriticalMultiplier is the damage multiplier on a sneak attack crit
const CriticalMultiplier = 3

// ClericHealAmount is the health restored by the cleric special
const ClericHealAmount = 30

// Service defines the combat engine interface
type Service interface {
	// CreateBattle pairs the character against an enemy tiered to
	// their level
	CreateBattle(character *entities.Character) (*entities.Battle, error)

	// Start moves a battle into the player turn
	Start(battle *entities.Battle) error

	// TakeTurn resolves one full combat round: the player action and,
	// when the battle is still live, the enemy counterattack
	TakeTurn(battle *entities.Battle, action entities.PlayerAction) (*TurnResult, error)
}

// TurnResult describes one resolved combat round
type TurnResult struct {
	PlayerDamage int  // damage dealt to the enemy
	EnemyDamage  int  // damage dealt to the character
	Healed       int  // health restored by the cleric special
	Critical     bool // sneak attack crit landed
	Escaped      bool
	Outcome      entities.BattleOutcome // terminal outcome, empty while live
	Rewards      *VictoryRewards        // set on player victory
	Events       []string               // log entries added this round
}

// VictoryRewards describes the spoils of a won battle
type VictoryRewards struct {
	XP           int
	Gold         int
	LevelsGained int
}

// service implements the Service interface
type service struct {
	characterService charService.Service
	roller           dice.Roller
	uuidGenerator    uuid.Generator
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	CharacterService charService.Service // Required
	Roller           dice.Roller         // Optional, defaults to random
	UUIDGenerator    uuid.Generator      // Optional, defaults to google uuid
}

// NewService creates a new combat service
func NewService(cfg *ServiceConfig) Service {
	if cfg.CharacterService == nil {
		panic("character service is required")
	}

	svc := &service{
		characterService: cfg.CharacterService,
		roller:           cfg.Roller,
		uuidGenerator:    cfg.UUIDGenerator,
	}

	if svc.roller == nil {
		svc.roller = dice.NewRandomRoller()
	}
	if svc.uuidGenerator == nil {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}

	return svc
}

// CreateBattle pairs the character against a level-tiered enemy
func (s *service) CreateBattle(character *entities.Character) (*entities.Battle, error) {
	if character == nil {
		return nil, qcerr.InvalidArgument("character cannot be nil")
	}

	enemy, err := entities.NewEnemy(entities.EnemyTypeForLevel(character.Level))
	if err != nil {
		return nil, err
	}

	return entities.NewBattle(s.uuidGenerator.New(), character, enemy), nil
}

// Start moves a battle into the player turn. A dead character cannot
// start a fight.
func (s *service) Start(battle *entities.Battle) error {
	if battle == nil {
		return qcerr.InvalidArgument("battle cannot be nil")
	}
	if battle.State != entities.BattleStateNotStarted {
		return qcerr.Newf(qcerr.CodeCombatNotActive, "battle '%s' was already started", battle.ID).
			WithMeta("battle_id", battle.ID).
			WithMeta("state", string(battle.State))
	}
	if battle.Character.IsDead() {
		return qcerr.CharacterDeadf("'%s' is dead and cannot fight", battle.Character.Name).
			WithMeta("character_name", battle.Character.Name)
	}

	battle.State = entities.BattleStatePlayerTurn
	battle.Round = 1
	battle.Logf("%s faces a %s!", battle.Character.Name, battle.Enemy.Name)
	return nil
}

// TakeTurn resolves one full combat round
func (s *service) TakeTurn(battle *entities.Battle, action entities.PlayerAction) (*TurnResult, error) {
	if battle == nil {
		return nil, qcerr.InvalidArgument("battle cannot be nil")
	}
	if battle.State != entities.BattleStatePlayerTurn {
		return nil, qcerr.Newf(qcerr.CodeCombatNotActive, "battle '%s' is not awaiting a player action", battle.ID).
			WithMeta("battle_id", battle.ID).
			WithMeta("state", string(battle.State))
	}

	logStart := len(battle.Log)
	result := &TurnResult{}

	if err := s.playerAction(battle, action, result); err != nil {
		return nil, err
	}

	if result.Escaped {
		battle.Resolve(entities.BattleOutcomeEscaped)
		battle.Logf("%s escapes from the %s!", battle.Character.Name, battle.Enemy.Name)
		result.Outcome = battle.Outcome
		result.Events = battle.Log[logStart:]
		return result, nil
	}

	if battle.Enemy.IsDefeated() {
		rewards, err := s.grantVictoryRewards(battle)
		if err != nil {
			return nil, err
		}
		battle.Resolve(entities.BattleOutcomePlayerVictory)
		battle.Logf("%s is defeated! %s gains %d XP and %d gold.",
			battle.Enemy.Name, battle.Character.Name, rewards.XP, rewards.Gold)
		result.Outcome = battle.Outcome
		result.Rewards = rewards
		result.Events = battle.Log[logStart:]
		return result, nil
	}

	battle.State = entities.BattleStateEnemyTurn
	s.enemyAction(battle, result)

	if battle.Character.IsDead() {
		battle.Resolve(entities.BattleOutcomeEnemyVictory)
		battle.Logf("%s falls to the %s...", battle.Character.Name, battle.Enemy.Name)
	} else {
		battle.State = entities.BattleStatePlayerTurn
		battle.Round++
	}

	result.Outcome = battle.Outcome
	result.Events = battle.Log[logStart:]
	return result, nil
}

// playerAction applies the chosen action to the enemy
func (s *service) playerAction(battle *entities.Battle, action entities.PlayerAction, result *TurnResult) error {
	char := battle.Character
	enemy := battle.Enemy

	switch action {
	case entities.ActionAttack:
		damage := calculateDamage(char.Strength, enemy.Strength)
		enemy.TakeDamage(damage)
		result.PlayerDamage = damage
		battle.Logf("%s attacks the %s for %d damage.", char.Name, enemy.Name, damage)
		return nil

	case entities.ActionSpecial:
		return s.specialAbility(battle, result)

	case entities.ActionEscape:
		roll, err := s.roller.Roll(1, 2, 0)
		if err != nil {
			return qcerr.Wrap(err, "failed to roll escape attempt")
		}
		if roll.Total == 2 {
			result.Escaped = true
			return nil
		}
		battle.Logf("%s fails to escape!", char.Name)
		return nil

	default:
		return qcerr.InvalidArgumentf("unknown combat action '%s'", action)
	}
}

// specialAbility resolves the class special attack
func (s *service) specialAbility(battle *entities.Battle, result *TurnResult) error {
	char := battle.Character
	enemy := battle.Enemy

	switch char.Class {
	case entities.ClassWarrior:
		// Power Strike: raw strength, armor ignored
		damage := atLeastOne(char.Strength * 2)
		enemy.TakeDamage(damage)
		result.PlayerDamage = damage
		battle.Logf("%s unleashes a Power Strike for %d damage!", char.Name, damage)

	case entities.ClassMage:
		damage := atLeastOne(char.Magic * 2)
		enemy.TakeDamage(damage)
		result.PlayerDamage = damage
		battle.Logf("%s hurls a Fireball for %d damage!", char.Name, damage)

	case entities.ClassRogue:
		damage := calculateDamage(char.Strength, enemy.Strength)
		roll, err := s.roller.Roll(1, 2, 0)
		if err != nil {
			return qcerr.Wrap(err, "failed to roll sneak attack crit")
		}
		if roll.Total == 2 {
			damage *= CriticalMultiplier
			result.Critical = true
			battle.Logf("%s lands a critical Sneak Attack for %d damage!", char.Name, damage)
		} else {
			battle.Logf("%s sneak attacks for %d damage.", char.Name, damage)
		}
		enemy.TakeDamage(damage)
		result.PlayerDamage = damage

	case entities.ClassCleric:
		healed := char.Heal(ClericHealAmount)
		result.Healed = healed
		battle.Logf("%s prays, restoring %d health.", char.Name, healed)

	default:
		return qcerr.InvalidTargetf("class '%s' has no special ability", char.Class).
			WithMeta("class", string(char.Class))
	}

	return nil
}

// enemyAction is always a basic attack
func (s *service) enemyAction(battle *entities.Battle, result *TurnResult) {
	damage := calculateDamage(battle.Enemy.Strength, battle.Character.Strength)
	battle.Character.TakeDamage(damage)
	result.EnemyDamage = damage
	battle.Logf("The %s strikes back for %d damage.", battle.Enemy.Name, damage)
}

// grantVictoryRewards routes the enemy's spoils through the character
// service so combat experience levels the character up
func (s *service) grantVictoryRewards(battle *entities.Battle) (*VictoryRewards, error) {
	levels, err := s.characterService.GainExperience(battle.Character, battle.Enemy.XPReward)
	if err != nil {
		return nil, qcerr.Wrap(err, "failed to grant victory experience")
	}
	if err := s.characterService.AddGold(battle.Character, battle.Enemy.GoldReward); err != nil {
		return nil, qcerr.Wrap(err, "failed to grant victory gold")
	}

	return &VictoryRewards{
		XP:           battle.Enemy.XPReward,
		Gold:         battle.Enemy.GoldReward,
		LevelsGained: levels,
	}, nil
}

// calculateDamage applies the defender's strength as armor: a quarter
// of it absorbs damage, with a minimum of 1 going through
func calculateDamage(attackerStrength, defenderStrength int) int {
	return atLeastOne(attackerStrength - defenderStrength/4)
}

func atLeastOne(damage int) int {
	if damage < 1 {
		return 1
	}
	return damage
}
