package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"ladle/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumRecipes  int
	ShouldClean bool
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d recipes...", opts.NumUsers, opts.NumRecipes)

	// Clear existing data to avoid conflicts if requested
	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	factory := NewFactory(db, SeedOptions{})

	users, err := createUsers(factory, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d test users created", len(users))

	recipes, err := createRecipes(factory, users, opts.NumRecipes)
	if err != nil {
		return fmt.Errorf("failed to create recipes: %w", err)
	}
	log.Printf("%d recipes created", len(recipes))

	if err := createComments(db, factory, users, recipes); err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE comments, media, recipes, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(factory *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// Always include a known account for manual testing
	if count >= 1 {
		known, err := factory.CreateUser(func(u *models.User) {
			u.FullName = "Test Cook"
			u.Email = "test@example.com"
		})
		if err == nil {
			users = append(users, known)
		}
	}

	for i := len(users); i < count; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			log.Printf("Failed to create user %d: %v", i, err)
			continue
		}
		users = append(users, user)

		if i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}

	return users, nil
}

func createRecipes(factory *Factory, users []*models.User, count int) ([]*models.Recipe, error) {
	// #nosec G404: acceptable for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	recipes := make([]*models.Recipe, 0, count)

	for i := 0; i < count; i++ {
		author := users[r.Intn(len(users))]
		recipe := factory.BuildRecipe(author, func(rec *models.Recipe) {
			rec.LikeCount = int64(r.Intn(500))
			rec.ShareCount = int64(r.Intn(50))
		})
		recipes = append(recipes, recipe)
	}

	// chunked batch insert keeps statement size bounded
	const chunk = 100
	for start := 0; start < len(recipes); start += chunk {
		end := start + chunk
		if end > len(recipes) {
			end = len(recipes)
		}
		if err := factory.CreateRecipesBatch(recipes[start:end]); err != nil {
			return nil, err
		}
		log.Printf("Created %d recipes...", end)
	}

	return recipes, nil
}

// createComments attaches a small random number of comments to each recipe
// and keeps the denormalized comment_count consistent with what was written.
func createComments(db *gorm.DB, factory *Factory, users []*models.User, recipes []*models.Recipe) error {
	// #nosec G404: acceptable for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	total := 0
	for _, recipe := range recipes {
		n := r.Intn(6)
		for i := 0; i < n; i++ {
			author := users[r.Intn(len(users))]
			if _, err := factory.CreateComment(author, recipe); err != nil {
				return err
			}
			total++
		}
		if n > 0 {
			if err := db.Model(&models.Recipe{}).
				Where("id = ?", recipe.ID).
				UpdateColumn("comment_count", n).Error; err != nil {
				return err
			}
		}
	}

	log.Printf("%d comments created", total)
	return nil
}
