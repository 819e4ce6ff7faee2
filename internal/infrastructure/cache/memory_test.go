package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eatwise/backend/internal/domain"
)

func sampleAnalysis(id string) *domain.MealAnalysis {
	return &domain.MealAnalysis{
		ID:          id,
		Description: "grilled chicken",
		Total: domain.MealTotal{
			Profile: domain.NutritionProfile{Calories: 247.5, Protein: 46.5, Fat: 5.4, Sodium: 111},
			Ingredients: []domain.IngredientProvenance{
				{Name: "chicken breast", Grams: 150, Source: domain.SourceReference, MatchedKey: "chicken breast"},
			},
		},
		Narrative: "Health Rating: 8/10",
		Source:    "text",
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("set and get round-trips the analysis", func(t *testing.T) {
		c := NewMemoryCache()
		analysis := sampleAnalysis("abc-123")

		if err := c.Set(ctx, "analysis:grilled chicken", analysis, time.Minute); err != nil {
			t.Fatalf("Set failed: %v", err)
		}

		got, err := c.Get(ctx, "analysis:grilled chicken")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.ID != "abc-123" {
			t.Errorf("id = %q, want abc-123", got.ID)
		}
		if got.Total.Profile != analysis.Total.Profile {
			t.Errorf("profile = %+v, want %+v", got.Total.Profile, analysis.Total.Profile)
		}
		if len(got.Total.Ingredients) != 1 || got.Total.Ingredients[0].MatchedKey != "chicken breast" {
			t.Errorf("ingredients = %+v, want the stored provenance", got.Total.Ingredients)
		}
	})

	t.Run("cached entries are isolated from later mutation", func(t *testing.T) {
		c := NewMemoryCache()
		analysis := sampleAnalysis("abc-123")
		if err := c.Set(ctx, "k", analysis, time.Minute); err != nil {
			t.Fatalf("Set failed: %v", err)
		}

		analysis.Narrative = "tampered"

		got, err := c.Get(ctx, "k")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got == analysis {
			t.Fatal("Get returned the caller's pointer instead of a copy")
		}
		if got.Narrative != "Health Rating: 8/10" {
			t.Errorf("narrative = %q, mutation of the stored value leaked into the cache", got.Narrative)
		}
	})

	t.Run("missing key is a cache miss", func(t *testing.T) {
		c := NewMemoryCache()
		if _, err := c.Get(ctx, "nope"); !errors.Is(err, domain.ErrCacheMiss) {
			t.Errorf("error = %v, want ErrCacheMiss", err)
		}
	})

	t.Run("expired key is a cache miss", func(t *testing.T) {
		c := NewMemoryCache()
		if err := c.Set(ctx, "k", sampleAnalysis("x"), time.Millisecond); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		time.Sleep(5 * time.Millisecond)
		if _, err := c.Get(ctx, "k"); !errors.Is(err, domain.ErrCacheMiss) {
			t.Errorf("error = %v, want ErrCacheMiss for expired key", err)
		}
		if exists, _ := c.Exists(ctx, "k"); exists {
			t.Error("Exists reported true for expired key")
		}
	})

	t.Run("delete removes the key", func(t *testing.T) {
		c := NewMemoryCache()
		c.Set(ctx, "k", sampleAnalysis("x"), time.Minute)
		if err := c.Delete(ctx, "k"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if exists, _ := c.Exists(ctx, "k"); exists {
			t.Error("key still exists after delete")
		}
	})

	t.Run("size and clear", func(t *testing.T) {
		c := NewMemoryCache()
		c.Set(ctx, "a", sampleAnalysis("a"), time.Minute)
		c.Set(ctx, "b", sampleAnalysis("b"), time.Minute)
		if c.Size() != 2 {
			t.Errorf("size = %d, want 2", c.Size())
		}
		c.Clear()
		if c.Size() != 0 {
			t.Errorf("size after clear = %d, want 0", c.Size())
		}
	})
}
