package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserNameKeyPrefix = "user:%d:fullname"
	RecipeKeyPrefix   = "recipe:%d"
	RecipeListKey     = "recipes:list"
	CommentsKeyPrefix = "recipe:%d:comments"
)

const (
	UserNameTTL   = 10 * time.Minute
	RecipeTTL     = 5 * time.Minute
	RecipeListTTL = 30 * time.Second
	CommentsTTL   = 30 * time.Second
)

func UserNameKey(userID uint) string {
	return fmt.Sprintf(UserNameKeyPrefix, userID)
}

func RecipeKey(recipeID uint) string {
	return fmt.Sprintf(RecipeKeyPrefix, recipeID)
}

func CommentsKey(recipeID uint) string {
	return fmt.Sprintf(CommentsKeyPrefix, recipeID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateRecipe drops the cached record and the list view that embeds its
// counters. Comment listings are invalidated separately on comment writes.
func InvalidateRecipe(ctx context.Context, recipeID uint) {
	Invalidate(ctx, RecipeKey(recipeID))
	Invalidate(ctx, RecipeListKey)
}

func InvalidateComments(ctx context.Context, recipeID uint) {
	Invalidate(ctx, CommentsKey(recipeID))
}
