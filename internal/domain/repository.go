package domain

import (
	"context"
	"time"
)

// CacheRepository memoizes completed meal analyses by cache key. Get
// returns ErrCacheMiss for absent or expired entries.
type CacheRepository interface {
	Get(ctx context.Context, key string) (*MealAnalysis, error)
	Set(ctx context.Context, key string, analysis *MealAnalysis, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// NarrativeClient defines the interface to the language-model backend.
// It turns raw meal input into a structured ingredient list, and corrected
// totals into personalized prose. Both operations are opaque to the
// estimation core.
type NarrativeClient interface {
	ExtractIngredients(ctx context.Context, description string) (*ExtractionResult, error)
	ExtractIngredientsFromImage(ctx context.Context, imageData []byte) (*ExtractionResult, error)
	GenerateAdvice(ctx context.Context, mealDescription string, total NutritionProfile, profile UserProfile) (string, error)
}

// AnalysisRepository defines the interface for analysis history persistence
type AnalysisRepository interface {
	Save(ctx context.Context, analysis *MealAnalysis) error
	GetByID(ctx context.Context, id string) (*MealAnalysis, error)
	ListRecent(ctx context.Context, limit int) ([]*MealAnalysis, error)
}
