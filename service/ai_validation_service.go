package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// MediaVerdict is the media validator's answer for one media reference.
type MediaVerdict struct {
	IsValid   bool   `json:"is_valid"`
	Reasoning string `json:"ai_reasoning"`
}

// MediaValidator pre-screens complaint media. A non-nil error means
// the validator was unreachable and no verdict exists; callers treat
// that case as fail-open.
type MediaValidator interface {
	Verify(ctx context.Context, mediaURL, category, description string) (*MediaVerdict, error)
}

// AIValidationService calls the external AI microservice over HTTP.
// A single attempt per media reference, bounded by the client timeout;
// timeouts and transport failures surface as errors (no verdict).
type AIValidationService struct {
	serviceURL string
	client     *http.Client
	cache      *redis.Client // optional; nil disables caching
	cacheTTL   time.Duration
}

// NewAIValidationService creates a validator client. cache may be nil.
func NewAIValidationService(serviceURL string, timeout time.Duration, cache *redis.Client, cacheTTL time.Duration) *AIValidationService {
	return &AIValidationService{
		serviceURL: serviceURL,
		client:     &http.Client{Timeout: timeout},
		cache:      cache,
		cacheTTL:   cacheTTL,
	}
}

type verifyRequest struct {
	VideoURL    string `json:"video_url"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// Verify asks the AI service for a verdict on the given media.
// Successful verdicts are cached by media URL, so re-submitting the
// same media does not re-invoke the validator. Cache failures are
// ignored: the cache is an optimization, never a gate.
func (s *AIValidationService) Verify(ctx context.Context, mediaURL, category, description string) (*MediaVerdict, error) {
	if verdict := s.cachedVerdict(ctx, mediaURL); verdict != nil {
		return verdict, nil
	}

	payload, err := json.Marshal(verifyRequest{
		VideoURL:    mediaURL,
		Category:    category,
		Description: description,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode validation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.serviceURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build validation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ai service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ai service returned status %d", resp.StatusCode)
	}

	var verdict MediaVerdict
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return nil, fmt.Errorf("failed to decode validation response: %w", err)
	}

	s.storeVerdict(ctx, mediaURL, &verdict)
	return &verdict, nil
}

func (s *AIValidationService) cachedVerdict(ctx context.Context, mediaURL string) *MediaVerdict {
	if s.cache == nil {
		return nil
	}
	data, err := s.cache.Get(ctx, verdictCacheKey(mediaURL)).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		log.Printf("[ai] verdict cache read failed: %v", err)
		return nil
	}
	var verdict MediaVerdict
	if err := json.Unmarshal([]byte(data), &verdict); err != nil {
		log.Printf("[ai] dropping unreadable cached verdict for %s: %v", mediaURL, err)
		return nil
	}
	return &verdict
}

func (s *AIValidationService) storeVerdict(ctx context.Context, mediaURL string, verdict *MediaVerdict) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(verdict)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, verdictCacheKey(mediaURL), data, s.cacheTTL).Err(); err != nil {
		log.Printf("[ai] verdict cache write failed: %v", err)
	}
}

func verdictCacheKey(mediaURL string) string {
	return "ai:verdict:" + mediaURL
}
