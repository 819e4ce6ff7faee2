package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eatwise/backend/internal/domain"
)

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	data      map[string]*domain.MealAnalysis
	getError  error
	setError  error
	setCalled bool
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{data: make(map[string]*domain.MealAnalysis)}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) (*domain.MealAnalysis, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	if analysis, ok := m.data[key]; ok {
		return analysis, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, analysis *domain.MealAnalysis, ttl time.Duration) error {
	m.setCalled = true
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = analysis
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.data[key]
	return ok, nil
}

// MockNarrativeClient is a mock implementation of domain.NarrativeClient
type MockNarrativeClient struct {
	extraction   *domain.ExtractionResult
	extractError error
	advice       string
	adviceError  error
	extractCalls int
	adviceMeal   string
}

func (m *MockNarrativeClient) ExtractIngredients(ctx context.Context, description string) (*domain.ExtractionResult, error) {
	m.extractCalls++
	if m.extractError != nil {
		return nil, m.extractError
	}
	return m.extraction, nil
}

func (m *MockNarrativeClient) ExtractIngredientsFromImage(ctx context.Context, imageData []byte) (*domain.ExtractionResult, error) {
	m.extractCalls++
	if m.extractError != nil {
		return nil, m.extractError
	}
	return m.extraction, nil
}

func (m *MockNarrativeClient) GenerateAdvice(ctx context.Context, mealDescription string, total domain.NutritionProfile, profile domain.UserProfile) (string, error) {
	m.adviceMeal = mealDescription
	if m.adviceError != nil {
		return "", m.adviceError
	}
	return m.advice, nil
}

// MockAnalysisRepository is a mock implementation of domain.AnalysisRepository
type MockAnalysisRepository struct {
	saved     []*domain.MealAnalysis
	saveError error
}

func (m *MockAnalysisRepository) Save(ctx context.Context, analysis *domain.MealAnalysis) error {
	if m.saveError != nil {
		return m.saveError
	}
	m.saved = append(m.saved, analysis)
	return nil
}

func (m *MockAnalysisRepository) GetByID(ctx context.Context, id string) (*domain.MealAnalysis, error) {
	for _, a := range m.saved {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, domain.ErrAnalysisNotFound
}

func (m *MockAnalysisRepository) ListRecent(ctx context.Context, limit int) ([]*domain.MealAnalysis, error) {
	if limit > len(m.saved) {
		limit = len(m.saved)
	}
	return m.saved[:limit], nil
}

func newTestService(narrative *MockNarrativeClient) (*AnalysisService, *MockCacheRepository, *MockAnalysisRepository) {
	cache := NewMockCacheRepository()
	history := &MockAnalysisRepository{}
	svc := NewAnalysisService(cache, narrative, history, AnalysisServiceConfig{})
	return svc, cache, history
}

func TestAnalyzeText(t *testing.T) {
	ctx := context.Background()

	t.Run("returns error for empty description", func(t *testing.T) {
		svc, _, _ := newTestService(&MockNarrativeClient{})
		_, err := svc.AnalyzeText(ctx, "   ", domain.UserProfile{})
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("full flow: extract, estimate, narrate, persist", func(t *testing.T) {
		narrative := &MockNarrativeClient{
			extraction: &domain.ExtractionResult{
				Items: []domain.DetectedIngredient{
					{Name: "chicken breast", Quantity: 150, Unit: "g", Preparation: "grilled"},
				},
				MealDescription: "grilled chicken",
			},
			advice: "Health Rating: 8/10",
		}
		svc, cache, history := newTestService(narrative)

		analysis, err := svc.AnalyzeText(ctx, "150g grilled chicken breast", domain.UserProfile{HealthGoal: "muscle gain"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if analysis.ID == "" {
			t.Error("analysis has no ID")
		}
		if analysis.Total.Profile.Protein != 46.5 {
			t.Errorf("protein = %v, want 46.5", analysis.Total.Profile.Protein)
		}
		if analysis.Narrative != "Health Rating: 8/10" {
			t.Errorf("narrative = %q, want advice text", analysis.Narrative)
		}
		if len(history.saved) != 1 {
			t.Errorf("history saves = %d, want 1", len(history.saved))
		}
		if !cache.setCalled {
			t.Error("result was not cached")
		}
	})

	t.Run("cache hit skips a second extraction", func(t *testing.T) {
		narrative := &MockNarrativeClient{
			extraction: &domain.ExtractionResult{
				Items: []domain.DetectedIngredient{{Name: "banana", Quantity: 1, Unit: "medium"}},
			},
			advice: "ok",
		}
		svc, _, _ := newTestService(narrative)

		first, err := svc.AnalyzeText(ctx, "a banana", domain.UserProfile{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := svc.AnalyzeText(ctx, "a banana", domain.UserProfile{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if narrative.extractCalls != 1 {
			t.Errorf("extraction calls = %d, want 1 (second request served from cache)", narrative.extractCalls)
		}
		if first.Total.Profile != second.Total.Profile {
			t.Errorf("cached totals differ: %+v vs %+v", first.Total.Profile, second.Total.Profile)
		}
	})

	t.Run("model API failure surfaces as ErrModelAPIFailure", func(t *testing.T) {
		narrative := &MockNarrativeClient{extractError: errors.New("boom")}
		svc, _, _ := newTestService(narrative)

		_, err := svc.AnalyzeText(ctx, "pasta", domain.UserProfile{})
		if !errors.Is(err, domain.ErrModelAPIFailure) {
			t.Errorf("error = %v, want ErrModelAPIFailure", err)
		}
	})

	t.Run("empty extraction yields valid all-zero total", func(t *testing.T) {
		narrative := &MockNarrativeClient{
			extraction: &domain.ExtractionResult{},
			advice:     "ok",
		}
		svc, _, _ := newTestService(narrative)

		analysis, err := svc.AnalyzeText(ctx, "indescribable meal", domain.UserProfile{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !analysis.Total.Profile.IsZero() {
			t.Errorf("total = %+v, want all-zero", analysis.Total.Profile)
		}
	})

	t.Run("narrative failure degrades instead of failing the analysis", func(t *testing.T) {
		narrative := &MockNarrativeClient{
			extraction: &domain.ExtractionResult{
				Items: []domain.DetectedIngredient{{Name: "potato", Quantity: 150, Unit: "g"}},
			},
			adviceError: errors.New("model timeout"),
		}
		svc, _, _ := newTestService(narrative)

		analysis, err := svc.AnalyzeText(ctx, "a potato", domain.UserProfile{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if analysis.Narrative != "" {
			t.Errorf("narrative = %q, want empty on generation failure", analysis.Narrative)
		}
		if analysis.Total.Profile.IsZero() {
			t.Error("totals should still be computed when narrative fails")
		}
	})
}

func TestAnalyzeImage(t *testing.T) {
	ctx := context.Background()

	t.Run("returns error for empty image", func(t *testing.T) {
		svc, _, _ := newTestService(&MockNarrativeClient{})
		_, err := svc.AnalyzeImage(ctx, nil, domain.UserProfile{})
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("uses the model's meal description", func(t *testing.T) {
		narrative := &MockNarrativeClient{
			extraction: &domain.ExtractionResult{
				Items:           []domain.DetectedIngredient{{Name: "salmon", Quantity: 120, Unit: "g"}},
				MealDescription: "pan-seared salmon",
			},
			advice: "ok",
		}
		svc, _, _ := newTestService(narrative)

		analysis, err := svc.AnalyzeImage(ctx, []byte{0xff, 0xd8}, domain.UserProfile{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if analysis.Description != "pan-seared salmon" {
			t.Errorf("description = %q, want model description", analysis.Description)
		}
		if analysis.Source != "image" {
			t.Errorf("source = %q, want image", analysis.Source)
		}
	})

	t.Run("substitutes a placeholder when the model gives no description", func(t *testing.T) {
		// The shape a failed extraction parse arrives in: no items, no
		// meal description.
		narrative := &MockNarrativeClient{
			extraction: &domain.ExtractionResult{},
			advice:     "ok",
		}
		svc, _, _ := newTestService(narrative)

		analysis, err := svc.AnalyzeImage(ctx, []byte{0xff, 0xd8}, domain.UserProfile{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if analysis.Description != "food photo" {
			t.Errorf("description = %q, want the placeholder", analysis.Description)
		}
		if narrative.adviceMeal != "food photo" {
			t.Errorf("narrative prompt meal = %q, want the placeholder", narrative.adviceMeal)
		}
	})
}

func TestGetAnalysisAndHistory(t *testing.T) {
	ctx := context.Background()
	narrative := &MockNarrativeClient{
		extraction: &domain.ExtractionResult{
			Items: []domain.DetectedIngredient{{Name: "oats", Quantity: 50, Unit: "g"}},
		},
		advice: "ok",
	}
	svc, _, _ := newTestService(narrative)

	analysis, err := svc.AnalyzeText(ctx, "bowl of oats", domain.UserProfile{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("fetches stored analysis by ID", func(t *testing.T) {
		got, err := svc.GetAnalysis(ctx, analysis.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ID != analysis.ID {
			t.Errorf("ID = %q, want %q", got.ID, analysis.ID)
		}
	})

	t.Run("empty ID is invalid", func(t *testing.T) {
		_, err := svc.GetAnalysis(ctx, "")
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("lists recent analyses", func(t *testing.T) {
		analyses, err := svc.ListRecent(ctx, 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(analyses) != 1 {
			t.Errorf("analyses = %d, want 1", len(analyses))
		}
	})
}
