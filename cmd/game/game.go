package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/KirkDiggler/quest-chronicles/internal/entities"
	qcerr "github.com/KirkDiggler/quest-chronicles/internal/errors"
	"github.com/KirkDiggler/quest-chronicles/internal/services"
	characterService "github.com/KirkDiggler/quest-chronicles/internal/services/character"
	inventoryService "github.com/KirkDiggler/quest-chronicles/internal/services/inventory"
)

// game drives the interactive menu loop
type game struct {
	provider   *services.Provider
	reviveCost int
	reader     *bufio.Reader
	out        io.Writer
	character  *entities.Character
	readErr    error // set once input is exhausted or broken
}

// gameConfig holds configuration for the game loop
type gameConfig struct {
	Provider   *services.Provider
	ReviveCost int
	Input      io.Reader
	Output     io.Writer
}

func newGame(cfg *gameConfig) *game {
	if cfg.Provider == nil {
		panic("service provider is required")
	}

	return &game{
		provider:   cfg.Provider,
		reviveCost: cfg.ReviveCost,
		reader:     bufio.NewReader(cfg.Input),
		out:        cfg.Output,
	}
}

// Run shows the title menu until the player quits or input runs out
func (g *game) Run(ctx context.Context) error {
	g.printf("=== Quest Chronicles ===\n")

	for {
		if g.readErr != nil {
			if errors.Is(g.readErr, io.EOF) {
				g.printf("\nFarewell, adventurer.\n")
				return nil
			}
			return g.readErr
		}

		g.printf("\n1) New game\n2) Load game\n3) Quit\n")
		switch g.prompt("> ") {
		case "1":
			if err := g.newCharacter(ctx); err != nil {
				g.printf("Could not create character: %v\n", err)
				continue
			}
			g.play(ctx)
		case "2":
			if err := g.loadCharacter(ctx); err != nil {
				g.printf("Could not load character: %v\n", err)
				continue
			}
			g.play(ctx)
		case "3":
			g.printf("Farewell, adventurer.\n")
			return nil
		}
	}
}

func (g *game) newCharacter(ctx context.Context) error {
	name := g.prompt("Character name: ")

	classes := entities.Classes()
	for i, class := range classes {
		stats, _ := entities.BaseStatsFor(class)
		g.printf("%d) %-8s HP %d, STR %d, MAG %d\n", i+1, class, stats.MaxHealth, stats.Strength, stats.Magic)
	}

	choice, err := strconv.Atoi(g.prompt("Class: "))
	if err != nil || choice < 1 || choice > len(classes) {
		return qcerr.InvalidArgument("pick a class by number")
	}

	char, err := g.provider.CharacterService.CreateCharacter(ctx, &characterService.CreateCharacterInput{
		Name:  name,
		Class: classes[choice-1],
	})
	if err != nil {
		return err
	}

	g.character = char
	g.printf("Welcome, %s the %s!\n", char.Name, char.Class)
	return nil
}

func (g *game) loadCharacter(ctx context.Context) error {
	saved, err := g.provider.CharacterService.ListCharacters(ctx)
	if err != nil {
		return err
	}
	if len(saved) == 0 {
		return qcerr.NotFound("no saved characters")
	}

	sort.Slice(saved, func(i, j int) bool { return saved[i].Name < saved[j].Name })
	for i, char := range saved {
		g.printf("%d) %s - level %d %s\n", i+1, char.Name, char.Level, char.Class)
	}

	choice, err := strconv.Atoi(g.prompt("Load: "))
	if err != nil || choice < 1 || choice > len(saved) {
		return qcerr.InvalidArgument("pick a save by number")
	}

	g.character = saved[choice-1]
	g.printf("Welcome back, %s!\n", g.character.Name)
	return nil
}

// play runs the in-game menu until the player saves and exits
func (g *game) play(ctx context.Context) {
	for {
		if g.readErr != nil {
			return
		}

		if g.character.IsDead() {
			if !g.deathMenu() {
				return
			}
		}

		g.printf("\n-- %s, level %d %s | HP %d/%d | %d gold --\n",
			g.character.Name, g.character.Level, g.character.Class,
			g.character.Health, g.character.MaxHealth, g.character.Gold)
		g.printf("1) Stats\n2) Inventory\n3) Quest board\n4) Quest log\n5) Explore\n6) Shop\n7) Save\n8) Save and exit\n")

		switch g.prompt("> ") {
		case "1":
			g.showStats()
		case "2":
			g.inventoryMenu()
		case "3":
			g.questBoard()
		case "4":
			g.questLog()
		case "5":
			g.explore()
		case "6":
			g.shop()
		case "7":
			g.save(ctx)
		case "8":
			g.save(ctx)
			return
		}
	}
}

func (g *game) showStats() {
	c := g.character
	g.printf("\n%s the %s\n", c.Name, c.Class)
	g.printf("Level %d (%d/%d XP)\n", c.Level, c.Experience, c.Level*100)
	g.printf("HP %d/%d  STR %d  MAG %d  Gold %d\n", c.Health, c.MaxHealth, c.Strength, c.Magic, c.Gold)
	g.printf("Weapon: %s\n", orNone(c.EquippedWeapon))
	g.printf("Armor:  %s\n", orNone(c.EquippedArmor))
}

func (g *game) inventoryMenu() {
	c := g.character
	if len(c.Inventory) == 0 {
		g.printf("Your pack is empty (%d slots free).\n", c.InventorySpaceRemaining())
	} else {
		g.printf("\nPack (%d/%d):\n", len(c.Inventory), entities.MaxInventorySize)
		for i, itemID := range c.Inventory {
			g.printf("%d) %s\n", i+1, g.itemLabel(itemID))
		}
	}

	g.printf("u <n>) use  e <n>) equip  w) unequip weapon  a) unequip armor  b) back\n")
	input := g.prompt("> ")

	switch {
	case input == "w":
		if itemID, err := g.provider.InventoryService.UnequipWeapon(c); err != nil {
			g.printf("%v\n", err)
		} else if itemID != "" {
			g.printf("Unequipped %s.\n", g.itemLabel(itemID))
		}
	case input == "a":
		if itemID, err := g.provider.InventoryService.UnequipArmor(c); err != nil {
			g.printf("%v\n", err)
		} else if itemID != "" {
			g.printf("Unequipped %s.\n", g.itemLabel(itemID))
		}
	case strings.HasPrefix(input, "u "):
		g.useItem(strings.TrimSpace(input[2:]))
	case strings.HasPrefix(input, "e "):
		g.equipItem(strings.TrimSpace(input[2:]))
	}
}

func (g *game) useItem(arg string) {
	itemID, ok := g.itemAt(arg)
	if !ok {
		return
	}

	result, err := g.provider.InventoryService.UseItem(g.character, itemID)
	if err != nil {
		g.printf("%v\n", err)
		return
	}
	g.printf("Used %s (%s %+d).\n", result.ItemName, result.Effect.Stat, result.Effect.Delta)
}

func (g *game) equipItem(arg string) {
	itemID, ok := g.itemAt(arg)
	if !ok {
		return
	}

	item, err := g.provider.InventoryService.GetItem(itemID)
	if err != nil {
		g.printf("%v\n", err)
		return
	}

	var result *inventoryService.EquipResult
	switch item.Type {
	case entities.ItemTypeWeapon:
		result, err = g.provider.InventoryService.EquipWeapon(g.character, itemID)
	case entities.ItemTypeArmor:
		result, err = g.provider.InventoryService.EquipArmor(g.character, itemID)
	default:
		g.printf("%s cannot be equipped.\n", item.Name)
		return
	}
	if err != nil {
		g.printf("%v\n", err)
		return
	}

	g.printf("Equipped %s.\n", result.Equipped.Name)
	if result.Unequipped != "" {
		g.printf("%s returned to your pack.\n", g.itemLabel(result.Unequipped))
	}
}

func (g *game) itemAt(arg string) (string, bool) {
	index, err := strconv.Atoi(arg)
	if err != nil || index < 1 || index > len(g.character.Inventory) {
		g.printf("Pick an item by number.\n")
		return "", false
	}
	return g.character.Inventory[index-1], true
}

func (g *game) questBoard() {
	available := g.provider.QuestService.GetAvailableQuests(g.character)
	if len(available) == 0 {
		g.printf("No quests available right now.\n")
		return
	}

	g.printf("\nQuest board:\n")
	for i, quest := range available {
		g.printf("%d) %s (level %d) - %d XP, %d gold\n",
			i+1, quest.Title, quest.RequiredLevel, quest.RewardXP, quest.RewardGold)
		g.printf("   %s\n", quest.Description)
	}

	input := g.prompt("Accept (number, or enter to go back): ")
	if input == "" {
		return
	}
	choice, err := strconv.Atoi(input)
	if err != nil || choice < 1 || choice > len(available) {
		return
	}

	if _, err := g.provider.QuestService.AcceptQuest(g.character, available[choice-1].ID); err != nil {
		g.printf("%v\n", err)
		return
	}
	g.printf("Accepted: %s\n", available[choice-1].Title)
}

func (g *game) questLog() {
	active := g.provider.QuestService.GetActiveQuests(g.character)
	completed := g.provider.QuestService.GetCompletedQuests(g.character)

	g.printf("\nQuest log (%.0f%% complete):\n", g.provider.QuestService.CompletionPercentage(g.character))
	if len(active) == 0 {
		g.printf("No active quests.\n")
	}
	for i, quest := range active {
		g.printf("%d) %s - %d XP, %d gold\n", i+1, quest.Title, quest.RewardXP, quest.RewardGold)
	}
	for _, quest := range completed {
		g.printf("   [done] %s\n", quest.Title)
	}
	if len(active) == 0 {
		return
	}

	g.printf("t <n>) turn in  d <n>) abandon  b) back\n")
	input := g.prompt("> ")

	questAt := func(arg string) (string, bool) {
		index, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil || index < 1 || index > len(active) {
			return "", false
		}
		return active[index-1].ID, true
	}

	switch {
	case strings.HasPrefix(input, "t "):
		questID, ok := questAt(input[2:])
		if !ok {
			return
		}
		result, err := g.provider.QuestService.CompleteQuest(g.character, questID)
		if err != nil {
			g.printf("%v\n", err)
			return
		}
		g.printf("Completed %s! +%d XP, +%d gold.\n", result.Quest.Title, result.XPAwarded, result.GoldAwarded)
		if result.LevelsGained > 0 {
			g.printf("Level up! You are now level %d.\n", g.character.Level)
		}
	case strings.HasPrefix(input, "d "):
		questID, ok := questAt(input[2:])
		if !ok {
			return
		}
		if err := g.provider.QuestService.AbandonQuest(g.character, questID); err != nil {
			g.printf("%v\n", err)
		}
	}
}

func (g *game) explore() {
	battle, err := g.provider.CombatService.CreateBattle(g.character)
	if err != nil {
		g.printf("%v\n", err)
		return
	}
	if err := g.provider.CombatService.Start(battle); err != nil {
		g.printf("%v\n", err)
		return
	}

	g.printf("\nA wild %s appears! (%d HP)\n", battle.Enemy.Name, battle.Enemy.Health)

	for battle.IsActive() {
		if g.readErr != nil {
			return
		}

		g.printf("\nRound %d - you %d/%d HP, %s %d/%d HP\n", battle.Round,
			g.character.Health, g.character.MaxHealth,
			battle.Enemy.Name, battle.Enemy.Health, battle.Enemy.MaxHealth)
		g.printf("1) Attack\n2) Special ability\n3) Run\n")

		var action entities.PlayerAction
		switch g.prompt("> ") {
		case "1":
			action = entities.ActionAttack
		case "2":
			action = entities.ActionSpecial
		case "3":
			action = entities.ActionEscape
		default:
			continue
		}

		result, err := g.provider.CombatService.TakeTurn(battle, action)
		if err != nil {
			g.printf("%v\n", err)
			continue
		}
		for _, event := range result.Events {
			g.printf("%s\n", event)
		}
		if result.Rewards != nil && result.Rewards.LevelsGained > 0 {
			g.printf("Level up! You are now level %d.\n", g.character.Level)
		}
	}
}

func (g *game) shop() {
	items := g.provider.InventoryService.Catalog()
	catalog := make([]string, 0, len(items))
	for id := range items {
		catalog = append(catalog, id)
	}
	sort.Strings(catalog)

	g.printf("\nShop:\n")
	for i, id := range catalog {
		item := items[id]
		g.printf("%d) %-18s %4d gold - %s\n", i+1, item.Name, item.Cost, item.Description)
	}
	g.printf("You have %d gold. b <n>) buy  s <n>) sell from pack  q) leave\n", g.character.Gold)

	input := g.prompt("> ")
	switch {
	case strings.HasPrefix(input, "b "):
		choice, err := strconv.Atoi(strings.TrimSpace(input[2:]))
		if err != nil || choice < 1 || choice > len(catalog) {
			return
		}
		item, err := g.provider.InventoryService.Purchase(g.character, catalog[choice-1])
		if err != nil {
			g.printf("%v\n", err)
			return
		}
		g.printf("Bought %s for %d gold.\n", item.Name, item.Cost)
	case strings.HasPrefix(input, "s "):
		itemID, ok := g.itemAt(strings.TrimSpace(input[2:]))
		if !ok {
			return
		}
		price, err := g.provider.InventoryService.Sell(g.character, itemID)
		if err != nil {
			g.printf("%v\n", err)
			return
		}
		g.printf("Sold for %d gold.\n", price)
	}
}

// deathMenu offers revival. Returns false when the player gives up and
// leaves for the title menu.
func (g *game) deathMenu() bool {
	g.printf("\nYou have fallen...\n")
	g.printf("1) Revive (%d gold)\n2) Return to title\n", g.reviveCost)

	for {
		if g.readErr != nil {
			return false
		}

		switch g.prompt("> ") {
		case "1":
			revived, err := g.provider.CharacterService.ReviveCharacter(g.character, g.reviveCost)
			if err != nil {
				g.printf("%v\n", err)
				continue
			}
			if revived {
				g.printf("You awaken with %d HP.\n", g.character.Health)
			}
			return true
		case "2":
			return false
		}
	}
}

func (g *game) save(ctx context.Context) {
	if err := g.provider.CharacterService.SaveCharacter(ctx, g.character); err != nil {
		g.printf("Save failed: %v\n", err)
		return
	}
	g.printf("Game saved.\n")
}

func (g *game) itemLabel(itemID string) string {
	if item, err := g.provider.InventoryService.GetItem(itemID); err == nil {
		return item.Name
	}
	return itemID
}

// prompt reads one line of input. A read failure is remembered so the
// menu loops can wind down instead of replaying forever on closed
// stdin; the final unterminated line is still honored.
func (g *game) prompt(label string) string {
	if g.readErr != nil {
		return ""
	}

	g.printf("%s", label)
	line, err := g.reader.ReadString('\n')
	if err != nil {
		g.readErr = err
	}
	return strings.TrimSpace(line)
}

func (g *game) printf(format string, args ...any) {
	fmt.Fprintf(g.out, format, args...)
}

func orNone(itemID string) string {
	if itemID == "" {
		return "(none)"
	}
	return itemID
}
