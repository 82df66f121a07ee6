package services

import (
	"github.com/KirkDiggler/quest-chronicles/internal/dice"
	"github.com/KirkDiggler/quest-chronicles/internal/entities"
	"github.com/KirkDiggler/quest-chronicles/internal/repositories/characters"
	characterService "github.com/KirkDiggler/quest-chronicles/internal/services/character"
	combatService "github.com/KirkDiggler/quest-chronicles/internal/services/combat"
	inventoryService "github.com/KirkDiggler/quest-chronicles/internal/services/inventory"
	questService "github.com/KirkDiggler/quest-chronicles/internal/services/quest"
)

// Provider holds all service instances
type Provider struct {
	CharacterService characterService.Service
	InventoryService inventoryService.Service
	QuestService     questService.Service
	CombatService    combatService.Service
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	CharacterRepository characters.Repository
	Items               map[string]*entities.ItemDefinition
	Quests              map[string]*entities.QuestDefinition
	Roller              dice.Roller // Optional, defaults to random
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) *Provider {
	// Use in-memory repository if none provided
	charRepo := cfg.CharacterRepository
	if charRepo == nil {
		charRepo = characters.NewInMemoryRepository()
	}

	charService := characterService.NewService(&characterService.ServiceConfig{
		Repository: charRepo,
	})

	invService := inventoryService.NewService(&inventoryService.ServiceConfig{
		Items: cfg.Items,
	})

	qService := questService.NewService(&questService.ServiceConfig{
		Quests:           cfg.Quests,
		CharacterService: charService,
	})

	cmbService := combatService.NewService(&combatService.ServiceConfig{
		CharacterService: charService,
		Roller:           cfg.Roller,
	})

	return &Provider{
		CharacterService: charService,
		InventoryService: invService,
		QuestService:     qService,
		CombatService:    cmbService,
	}
}
