package db

import (
	"log"
	"time"

	"campaignkeeper/models"

	"golang.org/x/crypto/bcrypt"
)

var seedCategoryNames = []string{
	"Weapons", "Armor", "Potions", "Scrolls", "Tools",
	"Food", "Trinkets", "Quest Items", "Materials", "Misc",
}

var seedItemNames = map[string][]string{
	"Stormreach": {
		"Longsword", "Shield", "Shortbow", "Dagger", "Quarterstaff",
		"Healing Potion", "Mana Potion", "Rope", "Lockpick Set", "Torch",
		"Map", "Silver Ring", "Chain Shirt", "Bag of Holding", "Scroll of Fireball",
	},
	"Duskhaven": {
		"Battleaxe", "Buckler", "Crossbow", "Stiletto", "Wand",
		"Elixir of Health", "Stamina Draught", "Grappling Hook", "Thieves' Tools", "Lantern",
		"Compass", "Gold Amulet", "Scale Mail", "Handy Haversack", "Scroll of Lightning",
	},
}

var seedCharacters = map[string][][2]string{
	"Stormreach": {{"Aria", "Ranger"}, {"Bram", "Cleric"}, {"Celeste", "Wizard"}},
	"Duskhaven":  {{"Dante", "Fighter"}, {"Elara", "Druid"}, {"Felix", "Rogue"}},
}

// SeedDB populates demo data on an empty database: two users, each with a
// campaign full of categories, items, and characters.
func SeedDB() {
	var count int64
	if err := DB.Model(&models.User{}).Count(&count).Error; err != nil {
		log.Println("seed skipped:", err)
		return
	}
	if count > 0 {
		return
	}

	alice := seedUser("Alice", "alice@example.com", "Password123!")
	bob := seedUser("Bob", "bob@example.com", "Swordfish1!")
	if alice == nil || bob == nil {
		return
	}

	seedGame(alice, "Stormreach", "Alice's campaign", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	seedGame(bob, "Duskhaven", "Bob's campaign", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))

	log.Println("Database seeded with demo data")
}

func seedUser(name, email, password string) *models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Println("seed user:", err)
		return nil
	}
	user := &models.User{Name: name, Email: email, PasswordHash: string(hash)}
	if err := DB.Create(user).Error; err != nil {
		log.Println("seed user:", err)
		return nil
	}
	return user
}

func seedGame(owner *models.User, name, description string, createdAt time.Time) {
	game := &models.Game{
		Name:            name,
		Description:     description,
		CreatedAt:       createdAt,
		CreatedByUserID: owner.ID,
	}
	if err := DB.Create(game).Error; err != nil {
		log.Println("seed game:", err)
		return
	}
	membership := &models.UserGameRole{
		GameID:     game.ID,
		UserID:     owner.ID,
		IsOwner:    true,
		Privileges: models.OwnerPrivileges,
	}
	if err := DB.Create(membership).Error; err != nil {
		log.Println("seed membership:", err)
		return
	}

	categories := make([]models.Category, 0, len(seedCategoryNames))
	for _, categoryName := range seedCategoryNames {
		category := models.Category{
			Name:            categoryName,
			GameID:          game.ID,
			CreatedByUserID: owner.ID,
		}
		if err := DB.Create(&category).Error; err != nil {
			log.Println("seed category:", err)
			return
		}
		categories = append(categories, category)
	}

	for i, itemName := range seedItemNames[name] {
		item := models.Item{
			Name:              itemName,
			Description:       itemName + " description",
			ViewableToPlayers: true,
			GameID:            game.ID,
			CreatedByUserID:   owner.ID,
			CategoryID:        &categories[i%len(categories)].ID,
		}
		if err := DB.Create(&item).Error; err != nil {
			log.Println("seed item:", err)
			return
		}
	}

	for _, c := range seedCharacters[name] {
		character := models.Character{
			Name:              c[0],
			Description:       c[1],
			ViewableToPlayers: true,
			GameID:            game.ID,
			CreatedByUserID:   owner.ID,
			OwnerUserID:       owner.ID,
		}
		if err := DB.Create(&character).Error; err != nil {
			log.Println("seed character:", err)
			return
		}
	}
}
