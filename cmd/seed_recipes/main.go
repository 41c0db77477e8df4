package main

import (
	"errors"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/forkfeed/backend/config"
	"github.com/forkfeed/backend/internal/database"
	"github.com/forkfeed/backend/internal/models"
	"github.com/forkfeed/backend/internal/service"
)

// seedAuthorEmail owns all seeded recipes so they are easy to wipe.
const seedAuthorEmail = "kitchen@forkfeed.dev"

type seedRecipe struct {
	Title       string
	Ingredients []string
	Steps       []string
	Tags        []string
	Hours       int
	Minutes     int
	Difficulty  string
}

var seedRecipes = []seedRecipe{
	{
		Title:       "Weeknight Tomato Basil Pasta",
		Ingredients: []string{"spaghetti", "tomato", "garlic", "basil", "olive oil", "parmesan"},
		Steps: []string{
			"Boil the spaghetti in salted water until al dente.",
			"Soften the garlic in olive oil, then add chopped tomatoes.",
			"Toss the pasta through the sauce with torn basil and parmesan.",
		},
		Tags:       []string{"italian", "vegetarian", "quick"},
		Minutes:    25,
		Difficulty: models.DifficultyEasy,
	},
	{
		Title:       "Chickpea Coconut Curry",
		Ingredients: []string{"chickpeas", "coconut milk", "onion", "garlic", "ginger", "curry powder", "spinach"},
		Steps: []string{
			"Fry the onion, garlic and ginger until fragrant.",
			"Stir in curry powder, then the chickpeas and coconut milk.",
			"Simmer 15 minutes and fold in the spinach to wilt.",
		},
		Tags:       []string{"vegan", "curry"},
		Minutes:    35,
		Difficulty: models.DifficultyEasy,
	},
	{
		Title:       "Honey Garlic Salmon",
		Ingredients: []string{"salmon", "honey", "garlic", "soy sauce", "lemon", "butter"},
		Steps: []string{
			"Whisk honey, soy sauce, garlic and lemon juice.",
			"Sear the salmon skin side down in butter.",
			"Glaze with the sauce and baste until sticky.",
		},
		Tags:       []string{"seafood", "dinner"},
		Minutes:    20,
		Difficulty: models.DifficultyMedium,
	},
	{
		Title:       "Overnight Oats with Berries",
		Ingredients: []string{"rolled oats", "milk", "yogurt", "honey", "blueberries", "strawberries"},
		Steps: []string{
			"Stir oats, milk, yogurt and honey in a jar.",
			"Refrigerate overnight.",
			"Top with berries before serving.",
		},
		Tags:       []string{"breakfast", "no-cook"},
		Hours:      8,
		Difficulty: models.DifficultyEasy,
	},
	{
		Title:       "Beef Bourguignon",
		Ingredients: []string{"beef chuck", "red wine", "bacon", "pearl onions", "mushrooms", "carrot", "thyme", "beef stock"},
		Steps: []string{
			"Brown the bacon and beef in batches.",
			"Deglaze with red wine and add stock, carrot and thyme.",
			"Braise for three hours, adding onions and mushrooms near the end.",
		},
		Tags:       []string{"french", "braise", "winter"},
		Hours:      3,
		Minutes:    30,
		Difficulty: models.DifficultyHard,
	},
	{
		Title:       "Shakshuka",
		Ingredients: []string{"eggs", "tomato", "red pepper", "onion", "cumin", "paprika", "feta"},
		Steps: []string{
			"Stew the onion, pepper and tomato with the spices.",
			"Make wells and crack in the eggs.",
			"Cover until the whites set, then crumble feta over.",
		},
		Tags:       []string{"breakfast", "vegetarian", "middle-eastern"},
		Minutes:    30,
		Difficulty: models.DifficultyMedium,
	},
	{
		Title:       "Miso Ramen Bowl",
		Ingredients: []string{"ramen noodles", "miso paste", "chicken stock", "soft boiled egg", "scallion", "corn", "nori"},
		Steps: []string{
			"Whisk miso into hot chicken stock.",
			"Cook the noodles separately and drain.",
			"Assemble bowls with egg, corn, scallion and nori.",
		},
		Tags:       []string{"japanese", "soup"},
		Minutes:    40,
		Difficulty: models.DifficultyMedium,
	},
	{
		Title:       "Classic Guacamole",
		Ingredients: []string{"avocado", "lime", "red onion", "cilantro", "jalapeno", "salt"},
		Steps: []string{
			"Mash the avocados with lime juice and salt.",
			"Fold in onion, cilantro and jalapeno.",
		},
		Tags:       []string{"mexican", "snack", "no-cook"},
		Minutes:    10,
		Difficulty: models.DifficultyEasy,
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	author, err := ensureSeedAuthor(db)
	if err != nil {
		log.Fatalf("Failed to ensure seed author: %v", err)
	}

	created := 0
	for _, seed := range seedRecipes {
		var count int64
		if err := db.Model(&models.Recipe{}).Where("title = ?", seed.Title).Count(&count).Error; err != nil {
			log.Fatalf("Failed to check for existing recipe: %v", err)
		}
		if count > 0 {
			continue
		}

		recipe := models.Recipe{
			Title:          seed.Title,
			Ingredients:    seed.Ingredients,
			Steps:          seed.Steps,
			Tags:           seed.Tags,
			CookingHours:   seed.Hours,
			CookingMinutes: seed.Minutes,
			Difficulty:     seed.Difficulty,
			Embedding:      service.GenerateEmbedding(seed.Title + " " + strings.Join(seed.Ingredients, " ")),
			AuthorID:       author.ID,
		}
		if err := db.Create(&recipe).Error; err != nil {
			log.Fatalf("Failed to create recipe %q: %v", seed.Title, err)
		}
		created++
	}

	log.Printf("Seeded %d recipes (%d already present)", created, len(seedRecipes)-created)
}

// ensureSeedAuthor finds or creates the verified house account that owns
// the sample catalog.
func ensureSeedAuthor(db *gorm.DB) (*models.User, error) {
	var author models.User
	err := db.Where("email = ?", seedAuthorEmail).First(&author).Error
	if err == nil {
		return &author, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("forkfeed-seed"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	author = models.User{
		Username:      "forkfeed_kitchen",
		Email:         seedAuthorEmail,
		PasswordHash:  string(hash),
		Bio:           "Official ForkFeed test kitchen.",
		EmailVerified: true,
	}
	if err := db.Create(&author).Error; err != nil {
		return nil, err
	}
	return &author, nil
}
