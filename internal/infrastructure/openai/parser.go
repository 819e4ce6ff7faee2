package openai

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/eatwise/backend/internal/domain"
)

// The model wraps its JSON in prose more often than not; grab the widest
// brace-delimited block and parse that.
var jsonBlockRegex = regexp.MustCompile(`\{[\s\S]*\}`)

// ParseExtraction recovers a structured ingredient list from free-form
// model output. The returned result is never nil; on error it is empty so
// callers can degrade to an all-zero estimate.
func ParseExtraction(text string) (*domain.ExtractionResult, error) {
	block := jsonBlockRegex.FindString(text)
	if block == "" {
		return &domain.ExtractionResult{}, fmt.Errorf("%w: no JSON object in response", domain.ErrModelOutputUnparseable)
	}

	var result domain.ExtractionResult
	if err := json.Unmarshal([]byte(block), &result); err != nil {
		return &domain.ExtractionResult{}, fmt.Errorf("%w: %v", domain.ErrModelOutputUnparseable, err)
	}

	return &result, nil
}
