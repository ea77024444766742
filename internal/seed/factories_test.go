package seed

import (
	"strings"
	"testing"
	"time"

	"ladle/internal/models"
)

func TestFactory_DryRunCreateUser(t *testing.T) {
	f := NewFactory(nil, SeedOptions{DryRun: true, SkipBcrypt: true})

	user, err := f.CreateUser()
	if err != nil {
		t.Fatalf("dry-run CreateUser failed: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected synthetic ID in dry-run mode")
	}
	if user.FullName == "" || user.Email == "" {
		t.Fatalf("expected generated identity, got name=%q email=%q", user.FullName, user.Email)
	}
	if user.Password != "password123" {
		t.Fatalf("SkipBcrypt should store the plaintext placeholder, got %q", user.Password)
	}

	second, err := f.CreateUser()
	if err != nil {
		t.Fatalf("dry-run CreateUser failed: %v", err)
	}
	if second.ID == user.ID {
		t.Fatalf("synthetic IDs must be unique, got %d twice", user.ID)
	}
}

func TestFactory_CreateUserOverrides(t *testing.T) {
	f := NewFactory(nil, SeedOptions{DryRun: true, SkipBcrypt: true})

	user, err := f.CreateUser(func(u *models.User) {
		u.FullName = "Test Cook"
		u.Email = "test@example.com"
	})
	if err != nil {
		t.Fatalf("dry-run CreateUser failed: %v", err)
	}
	if user.FullName != "Test Cook" || user.Email != "test@example.com" {
		t.Fatalf("overrides not applied: %+v", user)
	}
}

func TestFactory_BuildRecipe_TimestampsAndContent(t *testing.T) {
	opts := SeedOptions{DryRun: true, MaxDays: 30}
	f := NewFactory(nil, opts)
	author := &models.User{ID: 1, FullName: "Julia Child"}

	recipe := f.BuildRecipe(author)
	if recipe.UserID != 1 || recipe.AuthorName != "Julia Child" {
		t.Fatalf("author not carried onto recipe: %+v", recipe)
	}
	if recipe.Name == "" {
		t.Fatalf("expected generated recipe name")
	}
	if len(recipe.Ingredients) < 3 {
		t.Fatalf("expected at least 3 ingredients, got %d", len(recipe.Ingredients))
	}
	for _, ing := range recipe.Ingredients {
		if strings.TrimSpace(ing) == "" {
			t.Fatalf("blank ingredient generated: %q", recipe.Ingredients)
		}
	}
	if len(recipe.Steps) < 2 {
		t.Fatalf("expected at least 2 steps, got %d", len(recipe.Steps))
	}

	// timestamp should be within MaxDays
	if time.Since(recipe.CreatedAt) > (time.Duration(opts.MaxDays)+1)*24*time.Hour {
		t.Fatalf("created_at too old: %v", recipe.CreatedAt)
	}
	if recipe.CreatedAt.After(time.Now()) {
		t.Fatalf("created_at in the future: %v", recipe.CreatedAt)
	}
}

func TestFactory_CreateRecipesBatch_DryRunAssignsIDs(t *testing.T) {
	f := NewFactory(nil, SeedOptions{DryRun: true})
	author := &models.User{ID: 3, FullName: "Test Cook"}

	recipes := []*models.Recipe{
		f.BuildRecipe(author),
		f.BuildRecipe(author),
		f.BuildRecipe(author),
	}
	if err := f.CreateRecipesBatch(recipes); err != nil {
		t.Fatalf("dry-run batch failed: %v", err)
	}

	seen := map[uint]bool{}
	for _, rec := range recipes {
		if rec.ID == 0 {
			t.Fatalf("batch recipe missing synthetic ID")
		}
		if seen[rec.ID] {
			t.Fatalf("duplicate synthetic ID %d", rec.ID)
		}
		seen[rec.ID] = true
	}
}

func TestFactory_CreateComment_DenormalizesAuthor(t *testing.T) {
	f := NewFactory(nil, SeedOptions{DryRun: true})
	author := &models.User{ID: 4, FullName: "Anthony B."}
	recipe := &models.Recipe{ID: 9}

	comment, err := f.CreateComment(author, recipe)
	if err != nil {
		t.Fatalf("dry-run CreateComment failed: %v", err)
	}
	if comment.RecipeID != 9 || comment.UserID != 4 {
		t.Fatalf("comment not linked to recipe/author: %+v", comment)
	}
	if comment.AuthorName != "Anthony B." {
		t.Fatalf("author name not denormalized: %q", comment.AuthorName)
	}
	if comment.Text == "" {
		t.Fatalf("expected generated comment text")
	}
}
