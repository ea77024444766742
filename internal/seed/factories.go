// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"ladle/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedOptions tune factory behavior.
type SeedOptions struct {
	// DryRun builds entities without touching the database.
	DryRun bool
	// SkipBcrypt stores a plaintext placeholder password for faster dev seeding.
	SkipBcrypt bool
	// MaxDays is the maximum age spread for generated created_at timestamps.
	MaxDays int
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts SeedOptions
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts SeedOptions) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, opts: opts, nextID: 1000}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		FullName: gofakeit.Name(),
		Email:    fmt.Sprintf("%d.%s", gofakeit.Number(100, 999), gofakeit.Email()),
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s <%s>", user.FullName, user.Email)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildRecipe constructs a recipe struct for the given author but does not
// persist it. Useful for batching.
func (f *Factory) BuildRecipe(author *models.User, overrides ...func(*models.Recipe)) *models.Recipe {
	recipe := &models.Recipe{
		UserID:      author.ID,
		AuthorName:  author.FullName,
		Name:        recipeName(),
		Ingredients: models.StringList(generateIngredients()),
		Steps:       models.StringList(generateSteps()),
	}

	// realistic created_at spread
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	// #nosec G404: acceptable for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	daysBack := r.Intn(maxDays)
	hoursBack := r.Intn(24)
	minsBack := r.Intn(60)
	recipe.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)

	for _, override := range overrides {
		override(recipe)
	}
	return recipe
}

// CreateRecipe constructs and persists a sample `models.Recipe` for the given author.
func (f *Factory) CreateRecipe(author *models.User, overrides ...func(*models.Recipe)) (*models.Recipe, error) {
	recipe := f.BuildRecipe(author, overrides...)

	if f.opts.DryRun {
		f.nextID++
		recipe.ID = f.nextID
		log.Printf("[dry-run] CreateRecipe: author=%d name=%q", recipe.UserID, recipe.Name)
		return recipe, nil
	}

	if err := f.db.Create(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

// CreateRecipesBatch persists multiple recipes in a single DB call when possible.
func (f *Factory) CreateRecipesBatch(recipes []*models.Recipe) error {
	if f.opts.DryRun {
		for _, rec := range recipes {
			f.nextID++
			rec.ID = f.nextID
		}
		log.Printf("[dry-run] CreateRecipesBatch: %d recipes (no DB write)", len(recipes))
		return nil
	}
	return f.db.Create(&recipes).Error
}

// CreateComment constructs and persists a sample `models.Comment` on the
// provided recipe authored by the provided user. The recipe's comment_count
// is NOT adjusted here; callers that care should bump it themselves.
func (f *Factory) CreateComment(author *models.User, recipe *models.Recipe, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		RecipeID:   recipe.ID,
		UserID:     author.ID,
		AuthorName: author.FullName,
		Text:       gofakeit.Sentence(8),
	}

	for _, override := range overrides {
		override(comment)
	}

	if f.opts.DryRun {
		f.nextID++
		comment.ID = f.nextID
		return comment, nil
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

func recipeName() string {
	dishes := []func() string{
		gofakeit.Dinner,
		gofakeit.Lunch,
		gofakeit.Breakfast,
		gofakeit.Dessert,
		gofakeit.Snack,
	}
	// #nosec G404: acceptable for seeding
	return dishes[rand.Intn(len(dishes))]()
}

func generateIngredients() []string {
	// #nosec G404: acceptable for seeding
	n := rand.Intn(8) + 3
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		var item string
		switch rand.Intn(3) {
		case 0:
			item = gofakeit.Vegetable()
		case 1:
			item = gofakeit.Fruit()
		default:
			item = gofakeit.Noun()
		}
		qty := rand.Intn(4) + 1
		units := []string{"cup", "tbsp", "tsp", "oz", "clove", "pinch"}
		out = append(out, fmt.Sprintf("%d %s %s", qty, units[rand.Intn(len(units))], strings.ToLower(item)))
	}
	return out
}

func generateSteps() []string {
	// #nosec G404: acceptable for seeding
	n := rand.Intn(6) + 2
	out := make([]string, 0, n)
	verbs := []string{"Chop", "Whisk", "Simmer", "Fold in", "Sear", "Season", "Rest", "Plate"}
	for i := 0; i < n; i++ {
		out = append(out, fmt.Sprintf("%s the %s for %d minutes.",
			verbs[rand.Intn(len(verbs))], strings.ToLower(gofakeit.Noun()), rand.Intn(20)+1))
	}
	return out
}
