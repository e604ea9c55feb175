package elastic

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"collection-search-service/internal/domain"
)

// Store implements domain.DocumentStore against an Elasticsearch-compatible
// HTTP API. All calls honor the caller's context; a canceled request aborts
// the in-flight HTTP call.
type Store struct {
	client *resty.Client
	cb     *gobreaker.CircuitBreaker[*resty.Response]
	logger *zap.Logger
}

// NewStore creates a new document store client.
func NewStore(cfg Config, logger *zap.Logger) *Store {
	return &Store{
		client: newRestyClient(cfg),
		cb:     newCircuitBreaker(cfg.CB),
		logger: logger,
	}
}

// Search executes a structured query against the request's indices.
func (s *Store) Search(ctx context.Context, req *domain.SearchRequest) (*domain.RawSearchResponse, error) {
	path := "/" + strings.Join(req.Indices, ",") + "/_search"

	var result domain.RawSearchResponse
	if err := s.execute(ctx, path, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// getResponse is the store's point-lookup wire format.
type getResponse struct {
	ID     string         `json:"_id"`
	Index  string         `json:"_index"`
	Found  bool           `json:"found"`
	Source map[string]any `json:"_source"`
}

// Get fetches a single document. A missing document returns
// domain.ErrNotFound; store failures return domain.ErrStoreUnavailable.
func (s *Store) Get(ctx context.Context, index, id string) (domain.Document, error) {
	var result getResponse
	resp, err := s.cb.Execute(func() (*resty.Response, error) {
		return s.client.R().
			SetContext(ctx).
			SetPathParams(map[string]string{"index": index, "id": id}).
			SetResult(&result).
			Get("/{index}/_doc/{id}")
	})
	if err != nil {
		return nil, fmt.Errorf("%w: getting %s/%s: %v", domain.ErrStoreUnavailable, index, id, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, domain.ErrNotFound
	}
	if resp.IsError() {
		return nil, s.statusError(resp, "get")
	}
	if !result.Found {
		return nil, domain.ErrNotFound
	}

	return domain.RawHit{ID: result.ID, Index: result.Index, Source: result.Source}.Document(), nil
}

// OpenScroll starts a cursor-based bulk export.
func (s *Store) OpenScroll(ctx context.Context, req *domain.SearchRequest, keepAlive time.Duration) (*domain.RawSearchResponse, error) {
	path := "/" + strings.Join(req.Indices, ",") + "/_search?scroll=" + scrollParam(keepAlive)

	var result domain.RawSearchResponse
	if err := s.execute(ctx, path, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ContinueScroll fetches the next page for a cursor token.
func (s *Store) ContinueScroll(ctx context.Context, scrollID string, keepAlive time.Duration) (*domain.RawSearchResponse, error) {
	body := map[string]string{
		"scroll_id": scrollID,
		"scroll":    scrollParam(keepAlive),
	}

	var result domain.RawSearchResponse
	if err := s.execute(ctx, "/_search/scroll", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Ping verifies the store is reachable. Used by the readiness probe.
func (s *Store) Ping(ctx context.Context) error {
	resp, err := s.client.R().SetContext(ctx).Get("/")
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: store returned status %d", domain.ErrStoreUnavailable, resp.StatusCode())
	}
	return nil
}

// execute POSTs body to path through the circuit breaker, decoding the
// response into result. Transport failures and 5xx responses wrap
// ErrStoreUnavailable so callers can treat them as retryable; 4xx responses
// mean the store rejected the request and are not retryable.
func (s *Store) execute(ctx context.Context, path string, body, result any) error {
	resp, err := s.cb.Execute(func() (*resty.Response, error) {
		return s.client.R().
			SetContext(ctx).
			SetBody(body).
			SetResult(result).
			Post(path)
	})
	if err != nil {
		s.logger.Warn("store call failed",
			zap.String("path", path),
			zap.String("state", s.cb.State().String()),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if resp.IsError() {
		return s.statusError(resp, path)
	}
	return nil
}

func (s *Store) statusError(resp *resty.Response, op string) error {
	if resp.StatusCode() >= 500 {
		return fmt.Errorf("%w: %s returned status %d", domain.ErrStoreUnavailable, op, resp.StatusCode())
	}
	return fmt.Errorf("store rejected %s request: status %d: %s", op, resp.StatusCode(), resp.String())
}

func scrollParam(keepAlive time.Duration) string {
	return fmt.Sprintf("%ds", int(keepAlive.Seconds()))
}
