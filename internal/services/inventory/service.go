package inventory

import (
	"github.com/KirkDiggler/quest-chronicles/internal/entities"
	qcerr "github.com/KirkDiggler/quest-chronicles/internal/errors"
)

// Service defines the inventory and equipment service interface
type Service interface {
	// GetItem looks up an item definition in the catalog
	GetItem(itemID string) (*entities.ItemDefinition, error)

	// Catalog returns the full item catalog
	Catalog() map[string]*entities.ItemDefinition

	// AddItem places an item into the inventory
	AddItem(character *entities.Character, itemID string) error

	// RemoveItem removes the first matching item from the inventory
	RemoveItem(character *entities.Character, itemID string) error

	// UseItem consumes a consumable, applying its stat effect
	UseItem(character *entities.Character, itemID string) (*UseItemResult, error)

	// EquipWeapon equips a weapon from the inventory, swapping out
	// any currently equipped weapon
	EquipWeapon(character *entities.Character, itemID string) (*EquipResult, error)

	// EquipArmor equips armor from the inventory, swapping out any
	// currently equipped armor
	EquipArmor(character *entities.Character, itemID string) (*EquipResult, error)

	// UnequipWeapon returns the equipped weapon to the inventory,
	// reversing its stat effect. Returns the item ID, or empty when
	// no weapon was equipped.
	UnequipWeapon(character *entities.Character) (string, error)

	// UnequipArmor returns the equipped armor to the inventory,
	// reversing its stat effect. Returns the item ID, or empty when
	// no armor was equipped.
	UnequipArmor(character *entities.Character) (string, error)

	// Purchase buys a catalog item, deducting its cost
	Purchase(character *entities.Character, itemID string) (*entities.ItemDefinition, error)

	// Sell removes an item from the inventory, crediting half its
	// catalog cost. Returns the gold credited.
	Sell(character *entities.Character, itemID string) (int, error)

	// ClearInventory empties the inventory, returning the number of
	// items discarded. Equipped items are untouched.
	ClearInventory(character *entities.Character) int
}

// UseItemResult describes the outcome of consuming an item
type UseItemResult struct {
	ItemName string
	Effect   entities.Effect
}

// EquipResult describes the outcome of an equip operation
type EquipResult struct {
	Equipped   *entities.ItemDefinition
	Unequipped string // previous item ID, empty when the slot was free
}

// service implements the Service interface
type service struct {
	items map[string]*entities.ItemDefinition
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Items map[string]*entities.ItemDefinition // Required
}

// NewService creates a new inventory service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Items == nil {
		panic("item catalog is required")
	}

	return &service{
		items: cfg.Items,
	}
}

// Catalog returns the full item catalog
func (s *service) Catalog() map[string]*entities.ItemDefinition {
	return s.items
}

// GetItem looks up an item definition in the catalog
func (s *service) GetItem(itemID string) (*entities.ItemDefinition, error) {
	item, ok := s.items[itemID]
	if !ok {
		return nil, qcerr.ItemNotFoundf("item '%s' is not in the catalog", itemID).
			WithMeta("item_id", itemID)
	}
	return item, nil
}

// AddItem places an item into the inventory
func (s *service) AddItem(character *entities.Character, itemID string) error {
	if character == nil {
		return qcerr.InvalidArgument("character cannot be nil")
	}
	if itemID == "" {
		return qcerr.InvalidArgument("item ID is required")
	}

	if len(character.Inventory) >= entities.MaxInventorySize {
		return qcerr.InventoryFull("inventory is full").
			WithMeta("capacity", entities.MaxInventorySize)
	}

	character.Inventory = append(character.Inventory, itemID)
	return nil
}

// RemoveItem removes the first matching item from the inventory
func (s *service) RemoveItem(character *entities.Character, itemID string) error {
	if character == nil {
		return qcerr.InvalidArgument("character cannot be nil")
	}

	for i, id := range character.Inventory {
		if id == itemID {
			character.Inventory = append(character.Inventory[:i], character.Inventory[i+1:]...)
			return nil
		}
	}

	return qcerr.ItemNotFoundf("item '%s' is not in the inventory", itemID).
		WithMeta("item_id", itemID)
}

// UseItem consumes a consumable, applying its stat effect. Health
// effects are clamped to the 0..max health range.
func (s *service) UseItem(character *entities.Character, itemID string) (*UseItemResult, error) {
	if character == nil {
		return nil, qcerr.InvalidArgument("character cannot be nil")
	}

	if !character.HasItem(itemID) {
		return nil, qcerr.ItemNotFoundf("item '%s' is not in the inventory", itemID).
			WithMeta("item_id", itemID)
	}

	item, err := s.GetItem(itemID)
	if err != nil {
		return nil, err
	}

	if item.Type != entities.ItemTypeConsumable {
		return nil, qcerr.InvalidItemTypef("'%s' is a %s and cannot be consumed", item.Name, item.Type).
			WithMeta("item_id", itemID).
			WithMeta("item_type", string(item.Type))
	}

	if err := character.ApplyStat(item.Effect.Stat, item.Effect.Delta); err != nil {
		return nil, err
	}

	if err := s.RemoveItem(character, itemID); err != nil {
		return nil, err
	}

	return &UseItemResult{
		ItemName: item.Name,
		Effect:   item.Effect,
	}, nil
}

// EquipWeapon equips a weapon from the inventory
func (s *service) EquipWeapon(character *entities.Character, itemID string) (*EquipResult, error) {
	if character == nil {
		return nil, qcerr.InvalidArgument("character cannot be nil")
	}
	return s.equip(character, itemID, entities.ItemTypeWeapon, &character.EquippedWeapon)
}

// EquipArmor equips armor from the inventory
func (s *service) EquipArmor(character *entities.Character, itemID string) (*EquipResult, error) {
	if character == nil {
		return nil, qcerr.InvalidArgument("character cannot be nil")
	}
	return s.equip(character, itemID, entities.ItemTypeArmor, &character.EquippedArmor)
}

// equip swaps an item into an equipment slot. All failure checks run
// before any mutation so a failed equip leaves the character unchanged.
func (s *service) equip(character *entities.Character, itemID string, wantType entities.ItemType, slot *string) (*EquipResult, error) {
	if !character.HasItem(itemID) {
		return nil, qcerr.ItemNotFoundf("item '%s' is not in the inventory", itemID).
			WithMeta("item_id", itemID)
	}

	item, err := s.GetItem(itemID)
	if err != nil {
		return nil, err
	}

	if item.Type != wantType {
		return nil, qcerr.InvalidItemTypef("'%s' is a %s, not a %s", item.Name, item.Type, wantType).
			WithMeta("item_id", itemID).
			WithMeta("item_type", string(item.Type))
	}

	previous := *slot
	var previousItem *entities.ItemDefinition
	if previous != "" {
		previousItem, err = s.GetItem(previous)
		if err != nil {
			return nil, err
		}

		// The old item goes back into the inventory before the new
		// one is removed, so a full inventory cannot receive it.
		if len(character.Inventory) >= entities.MaxInventorySize {
			return nil, qcerr.InventoryFull("no room to receive the unequipped item").
				WithMeta("capacity", entities.MaxInventorySize)
		}
	}

	if previousItem != nil {
		if err := character.ApplyStat(previousItem.Effect.Stat, -previousItem.Effect.Delta); err != nil {
			return nil, err
		}
		character.Inventory = append(character.Inventory, previous)
	}

	if err := s.RemoveItem(character, itemID); err != nil {
		return nil, err
	}
	if err := character.ApplyStat(item.Effect.Stat, item.Effect.Delta); err != nil {
		return nil, err
	}
	*slot = itemID

	return &EquipResult{
		Equipped:   item,
		Unequipped: previous,
	}, nil
}

// UnequipWeapon returns the equipped weapon to the inventory
func (s *service) UnequipWeapon(character *entities.Character) (string, error) {
	if character == nil {
		return "", qcerr.InvalidArgument("character cannot be nil")
	}
	return s.unequip(character, &character.EquippedWeapon)
}

// UnequipArmor returns the equipped armor to the inventory
func (s *service) UnequipArmor(character *entities.Character) (string, error) {
	if character == nil {
		return "", qcerr.InvalidArgument("character cannot be nil")
	}
	return s.unequip(character, &character.EquippedArmor)
}

// unequip clears a slot, reversing the item's stat effect and placing
// the item back into the inventory. An empty slot is a no-op.
func (s *service) unequip(character *entities.Character, slot *string) (string, error) {
	itemID := *slot
	if itemID == "" {
		return "", nil
	}

	item, err := s.GetItem(itemID)
	if err != nil {
		return "", err
	}

	if len(character.Inventory) >= entities.MaxInventorySize {
		return "", qcerr.InventoryFull("no room to receive the unequipped item").
			WithMeta("capacity", entities.MaxInventorySize)
	}

	if err := character.ApplyStat(item.Effect.Stat, -item.Effect.Delta); err != nil {
		return "", err
	}
	character.Inventory = append(character.Inventory, itemID)
	*slot = ""

	return itemID, nil
}

// Purchase buys a catalog item. The gold check runs before the
// capacity check, and a failure on either leaves the character
// unchanged.
func (s *service) Purchase(character *entities.Character, itemID string) (*entities.ItemDefinition, error) {
	if character == nil {
		return nil, qcerr.InvalidArgument("character cannot be nil")
	}

	item, err := s.GetItem(itemID)
	if err != nil {
		return nil, err
	}

	if character.Gold < item.Cost {
		return nil, qcerr.InsufficientResourcesf("'%s' costs %d gold, have %d", item.Name, item.Cost, character.Gold).
			WithMeta("item_id", itemID).
			WithMeta("cost", item.Cost).
			WithMeta("gold", character.Gold)
	}

	if len(character.Inventory) >= entities.MaxInventorySize {
		return nil, qcerr.InventoryFull("inventory is full").
			WithMeta("capacity", entities.MaxInventorySize)
	}

	character.Gold -= item.Cost
	character.Inventory = append(character.Inventory, itemID)
	return item, nil
}

// Sell removes an item from the inventory, crediting half its cost
func (s *service) Sell(character *entities.Character, itemID string) (int, error) {
	if character == nil {
		return 0, qcerr.InvalidArgument("character cannot be nil")
	}

	item, err := s.GetItem(itemID)
	if err != nil {
		return 0, err
	}

	if err := s.RemoveItem(character, itemID); err != nil {
		return 0, err
	}

	price := item.Cost / 2
	character.Gold += price
	return price, nil
}

// ClearInventory empties the inventory
func (s *service) ClearInventory(character *entities.Character) int {
	if character == nil {
		return 0
	}

	discarded := len(character.Inventory)
	character.Inventory = []string{}
	return discarded
}
