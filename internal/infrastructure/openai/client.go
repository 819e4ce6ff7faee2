// Package openai implements the narrative requester against an Azure
// OpenAI chat-completions deployment.
package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/eatwise/backend/internal/domain"
)

// Client handles communication with the Azure OpenAI chat completions API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	endpoint    string
	deployment  string
	apiVersion  string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new Azure OpenAI client. requestsPerMinute bounds
// outbound call rate; zero or negative falls back to 60.
func NewClient(apiKey, endpoint, deployment, apiVersion string, requestsPerMinute int) *Client {
	if !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}
	limiter := rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		apiKey:      apiKey,
		endpoint:    endpoint,
		deployment:  deployment,
		apiVersion:  apiVersion,
		rateLimiter: limiter,
	}
}

// SetDebug enables request/response logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatRequest struct {
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// ExtractIngredients asks the model to turn a free-text meal description
// into a structured ingredient list. A response that carries no parseable
// JSON yields an empty item list, not an error: downstream estimation must
// still produce a valid all-zero total.
func (c *Client) ExtractIngredients(ctx context.Context, description string) (*domain.ExtractionResult, error) {
	prompt := fmt.Sprintf(textExtractionPrompt, description)

	content, err := c.createChatCompletion(ctx, []chatMessage{
		{Role: "system", Content: extractionSystemPrompt},
		{Role: "user", Content: prompt},
	}, 0.3, 500)
	if err != nil {
		return nil, err
	}

	result, err := ParseExtraction(content)
	if err != nil {
		if c.debug {
			log.Printf("[OPENAI] extraction parse failed, proceeding with empty items: %v", err)
		}
		return &domain.ExtractionResult{MealDescription: description}, nil
	}
	return result, nil
}

// ExtractIngredientsFromImage detects food items and portions in a photo.
func (c *Client) ExtractIngredientsFromImage(ctx context.Context, imageData []byte) (*domain.ExtractionResult, error) {
	encoded := base64.StdEncoding.EncodeToString(imageData)

	content, err := c.createChatCompletion(ctx, []chatMessage{
		{
			Role: "user",
			Content: []contentPart{
				{Type: "text", Text: imageDetectionPrompt},
				{Type: "image_url", ImageURL: &imageURL{
					URL: "data:image/jpeg;base64," + encoded,
				}},
			},
		},
	}, 0.3, 400)
	if err != nil {
		return nil, err
	}

	result, err := ParseExtraction(content)
	if err != nil {
		if c.debug {
			log.Printf("[OPENAI] image extraction parse failed, proceeding with empty items: %v", err)
		}
		return &domain.ExtractionResult{}, nil
	}
	return result, nil
}

// GenerateAdvice turns the corrected totals and the user profile into a
// personalized narrative.
func (c *Client) GenerateAdvice(
	ctx context.Context,
	mealDescription string,
	total domain.NutritionProfile,
	profile domain.UserProfile,
) (string, error) {
	prompt := fmt.Sprintf(advicePrompt,
		mealDescription,
		total.Calories, total.Protein, total.Carbs, total.Fat,
		total.Fiber, total.Sodium, total.Sugar,
		buildProfileContext(profile),
	)

	return c.createChatCompletion(ctx, []chatMessage{
		{Role: "system", Content: adviceSystemPrompt},
		{Role: "user", Content: prompt},
	}, 0.7, 800)
}

// createChatCompletion executes one chat completion with rate limiting and
// bounded retries for transient failures.
func (c *Client) createChatCompletion(
	ctx context.Context,
	messages []chatMessage,
	temperature float64,
	maxTokens int,
) (string, error) {
	reqURL := fmt.Sprintf("%sopenai/deployments/%s/chat/completions?api-version=%s",
		c.endpoint, c.deployment, c.apiVersion)

	payload, err := json.Marshal(chatRequest{
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
		if err != nil {
			return "", fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("api-key", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if c.debug {
				log.Printf("[OPENAI] request error (attempt %d): %v", attempt, err)
			}
			lastErr = fmt.Errorf("%w: %v", domain.ErrModelAPIFailure, err)
			if !sleepBackoff(ctx, attempt) {
				return "", lastErr
			}
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			if c.debug {
				log.Printf("[OPENAI] API error (attempt %d) - status %d: %s", attempt, resp.StatusCode, string(body))
			}
			lastErr = fmt.Errorf("%w: status %d", domain.ErrModelAPIFailure, resp.StatusCode)
			// Client errors other than rate limiting will not heal on retry.
			if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return "", lastErr
			}
			if !sleepBackoff(ctx, attempt) {
				return "", lastErr
			}
			continue
		}

		var parsed chatResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			return "", fmt.Errorf("failed to decode response: %w", err)
		}
		if parsed.Error != nil {
			return "", fmt.Errorf("%w: %s", domain.ErrModelAPIFailure, parsed.Error.Message)
		}
		if len(parsed.Choices) == 0 {
			return "", fmt.Errorf("%w: empty choices", domain.ErrModelOutputUnparseable)
		}

		return parsed.Choices[0].Message.Content, nil
	}

	return "", lastErr
}

// sleepBackoff waits before the next retry; returns false when the context
// expires first.
func sleepBackoff(ctx context.Context, attempt int) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(time.Duration(attempt*500) * time.Millisecond):
		return true
	}
}

// buildProfileContext renders the user profile into prompt lines, skipping
// unset fields.
func buildProfileContext(profile domain.UserProfile) string {
	var lines []string
	if profile.AgeGroup != "" {
		lines = append(lines, "- Age Group: "+profile.AgeGroup)
	}
	if len(profile.HealthConditions) > 0 {
		lines = append(lines, "- Health Conditions: "+strings.Join(profile.HealthConditions, ", "))
	}
	if len(profile.DietaryPreferences) > 0 {
		lines = append(lines, "- Dietary Preferences: "+strings.Join(profile.DietaryPreferences, ", "))
	}
	if profile.HealthGoal != "" {
		lines = append(lines, "- Health Goal: "+profile.HealthGoal)
	}
	if len(lines) == 0 {
		return "No profile information provided"
	}
	return strings.Join(lines, "\n")
}
