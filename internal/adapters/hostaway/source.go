package hostaway

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"flex_reviews/internal/adapters/httpapi"
	"flex_reviews/internal/domain"
)

const rawCacheKey = "hostaway:raw"

// Client fetches reviews from the live Hostaway API.
type Client struct {
	base string
	api  *httpapi.Client
}

func NewClient(base, key, accountID string, rps int) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	headers := map[string]string{"Authorization": "Bearer " + key}
	if accountID != "" {
		headers["X-Account-Id"] = accountID
	}
	return &Client{base: base, api: httpapi.New("hostaway", rps, headers)}, nil
}

func (c *Client) ListReviews(ctx context.Context) ([]domain.HostawayReview, error) {
	var out reviewsEnvelope
	if err := c.api.GetJSON(ctx, c.base+"/reviews", "list_reviews", &out); err != nil {
		return nil, err
	}
	return out.Result, nil
}

// reviewsEnvelope is the Hostaway response wrapper; the mock file uses the
// same shape.
type reviewsEnvelope struct {
	Status string                  `json:"status"`
	Result []domain.HostawayReview `json:"result"`
}

// Source supplies the hostaway channel to the pipeline. It reads the live API
// when a client is configured, else the bundled mock payload, and memoizes
// the raw (pre-normalization) records in the cache. Approval stamps are never
// cached; only the raw upstream payload is.
type Source struct {
	client   *Client // nil = mock mode
	mockPath string
	cache    domain.Cache
	ttlSec   int
}

func NewSource(client *Client, mockPath string, cache domain.Cache, ttl time.Duration) *Source {
	return &Source{client: client, mockPath: mockPath, cache: cache, ttlSec: int(ttl.Seconds())}
}

func (s *Source) Channel() domain.Channel { return domain.ChannelHostaway }

func (s *Source) Fetch(ctx context.Context) ([]domain.RawReview, error) {
	var recs []domain.HostawayReview
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, rawCacheKey, &recs); ok {
			return wrapRaw(recs), nil
		}
	}
	recs, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, rawCacheKey, recs, s.ttlSec)
	}
	return wrapRaw(recs), nil
}

func (s *Source) load(ctx context.Context) ([]domain.HostawayReview, error) {
	if s.client != nil {
		return s.client.ListReviews(ctx)
	}
	return readMockFile(s.mockPath)
}

func readMockFile(path string) ([]domain.HostawayReview, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read hostaway mock: %w", err)
	}
	var env reviewsEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("decode hostaway mock: %w", err)
	}
	return env.Result, nil
}

func wrapRaw(recs []domain.HostawayReview) []domain.RawReview {
	out := make([]domain.RawReview, 0, len(recs))
	for i := range recs {
		out = append(out, domain.RawReview{Channel: domain.ChannelHostaway, Hostaway: &recs[i]})
	}
	return out
}
