package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeedOptions_AppliesDefaults(t *testing.T) {
	opts := seedOptions(Options{SeedDemoData: true})
	assert.Equal(t, 10, opts.NumUsers)
	assert.Equal(t, 50, opts.NumRecipes)
	assert.False(t, opts.ShouldClean)
}

func TestSeedOptions_PassesThroughExplicitValues(t *testing.T) {
	opts := seedOptions(Options{
		SeedDemoData: true,
		DemoUsers:    7,
		DemoRecipes:  3,
		CleanFirst:   true,
	})
	assert.Equal(t, 7, opts.NumUsers)
	assert.Equal(t, 3, opts.NumRecipes)
	assert.True(t, opts.ShouldClean)
}

func TestSeedOptions_NegativeCountsFallBack(t *testing.T) {
	opts := seedOptions(Options{DemoUsers: -1, DemoRecipes: -5})
	assert.Equal(t, 10, opts.NumUsers)
	assert.Equal(t, 50, opts.NumRecipes)
}
