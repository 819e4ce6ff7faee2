package usecase

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eatwise/backend/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

// AnalysisServiceConfig holds configuration for the analysis service
type AnalysisServiceConfig struct {
	CacheTTL           time.Duration
	MinSharedTokens    int
	EnableDebugLogging bool
}

// AnalysisService runs the full meal-analysis flow: ingredient extraction
// via the language model, hybrid nutrition estimation, narrative
// generation, caching, and history persistence.
type AnalysisService struct {
	cache     domain.CacheRepository
	narrative domain.NarrativeClient
	history   domain.AnalysisRepository
	analyzer  *Analyzer
	cacheTTL  time.Duration
	debug     bool
}

// NewAnalysisService creates the analysis service with dependencies
func NewAnalysisService(
	cache domain.CacheRepository,
	narrative domain.NarrativeClient,
	history domain.AnalysisRepository,
	config AnalysisServiceConfig,
) *AnalysisService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	return &AnalysisService{
		cache:     cache,
		narrative: narrative,
		history:   history,
		analyzer: NewAnalyzer(AnalyzerConfig{
			MinSharedTokens:    config.MinSharedTokens,
			EnableDebugLogging: config.EnableDebugLogging,
		}),
		cacheTTL: cacheTTL,
		debug:    config.EnableDebugLogging,
	}
}

// AnalyzeText analyzes a meal from a free-text description.
// Flow: check cache -> extract ingredients -> estimate -> narrative -> persist.
func (s *AnalysisService) AnalyzeText(
	ctx context.Context,
	description string,
	profile domain.UserProfile,
) (*domain.MealAnalysis, error) {
	if strings.TrimSpace(description) == "" {
		return nil, domain.ErrInvalidRequest
	}

	cacheKey := s.generateCacheKey(description)
	if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != nil {
		if s.debug {
			log.Printf("[ANALYSIS] cache hit for %q", cacheKey)
		}
		return cached, nil
	}

	extraction, err := s.narrative.ExtractIngredients(ctx, description)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrModelAPIFailure, err)
	}

	analysis := s.buildAnalysis(ctx, extraction, description, "text", profile)

	if err := s.cache.Set(ctx, cacheKey, analysis, s.cacheTTL); err != nil && s.debug {
		log.Printf("[ANALYSIS] cache set failed: %v", err)
	}

	return analysis, nil
}

// AnalyzeImage analyzes a meal from a food photo. Image analyses are not
// cached: raw image bytes make a poor cache key.
func (s *AnalysisService) AnalyzeImage(
	ctx context.Context,
	imageData []byte,
	profile domain.UserProfile,
) (*domain.MealAnalysis, error) {
	if len(imageData) == 0 {
		return nil, domain.ErrInvalidRequest
	}

	extraction, err := s.narrative.ExtractIngredientsFromImage(ctx, imageData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrModelAPIFailure, err)
	}

	// Unlike the text flow there is no caller-supplied description to fall
	// back on, so a failed extraction parse would otherwise persist an
	// empty one and feed an empty meal line to the narrative prompt.
	description := extraction.MealDescription
	if description == "" {
		description = "food photo"
	}

	return s.buildAnalysis(ctx, extraction, description, "image", profile), nil
}

// buildAnalysis runs the estimation core over the extracted items and
// attaches the narrative and persistence concerns around it. A failed
// extraction parse arrives here as an empty item list and still produces a
// valid all-zero total.
func (s *AnalysisService) buildAnalysis(
	ctx context.Context,
	extraction *domain.ExtractionResult,
	description string,
	source string,
	profile domain.UserProfile,
) *domain.MealAnalysis {
	total := s.analyzer.Analyze(extraction.Items)

	mealDescription := extraction.MealDescription
	if mealDescription == "" {
		mealDescription = description
	}

	narrative, err := s.narrative.GenerateAdvice(ctx, mealDescription, total.Profile, profile)
	if err != nil {
		// The totals are still useful without prose; degrade instead of
		// failing the whole analysis.
		log.Printf("[ANALYSIS] narrative generation failed: %v", err)
		narrative = ""
	}

	analysis := &domain.MealAnalysis{
		ID:          uuid.NewString(),
		Description: description,
		Total:       total,
		Narrative:   narrative,
		Source:      source,
		CreatedAt:   time.Now().UTC(),
	}

	if s.history != nil {
		if err := s.history.Save(ctx, analysis); err != nil {
			log.Printf("[ANALYSIS] history save failed: %v", err)
		}
	}

	return analysis
}

// GetAnalysis returns one stored analysis by ID.
func (s *AnalysisService) GetAnalysis(ctx context.Context, id string) (*domain.MealAnalysis, error) {
	if id == "" {
		return nil, domain.ErrInvalidRequest
	}
	if s.history == nil {
		return nil, domain.ErrAnalysisNotFound
	}
	return s.history.GetByID(ctx, id)
}

// ListRecent returns the most recent stored analyses.
func (s *AnalysisService) ListRecent(ctx context.Context, limit int) ([]*domain.MealAnalysis, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if s.history == nil {
		return nil, nil
	}
	return s.history.ListRecent(ctx, limit)
}

// generateCacheKey creates a normalized cache key from a meal description.
// Format: "analysis:{normalized_description}"
func (s *AnalysisService) generateCacheKey(description string) string {
	normalized := strings.ToLower(description)
	normalized = nonAlphanumericRegex.ReplaceAllString(normalized, "")
	normalized = multipleSpacesRegex.ReplaceAllString(normalized, " ")
	return "analysis:" + strings.TrimSpace(normalized)
}
