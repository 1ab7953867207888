package artifact

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/trilhasedu/interest-engine/internal/resilience"
)

// HTTPEmbedder calls a sentence-embedding sidecar over HTTP. The sidecar
// contract is a POST of {"texts": [...], "normalize": true} answered with
// {"embeddings": [[...]]}.
type HTTPEmbedder struct {
	name     string
	endpoint string
	client   *http.Client
	retry    resilience.RetryConfig
}

// NewHTTPEmbedder creates an embedder for one sidecar endpoint. The name
// is matched against the artifact's embedder descriptor during
// resolution.
func NewHTTPEmbedder(name, endpoint string, timeout time.Duration) *HTTPEmbedder {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPEmbedder{
		name:     name,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		retry:    resilience.DefaultRetryConfig(),
	}
}

// Name returns the provider identity.
func (e *HTTPEmbedder) Name() string { return e.name }

type embedRequest struct {
	Texts     []string `json:"texts"`
	Normalize bool     `json:"normalize"`
}

type embedResponse struct {
	Embeddings [][]float64 `json:"embeddings"`
}

// Embed requests a normalized embedding for one text.
func (e *HTTPEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	payload, err := json.Marshal(embedRequest{Texts: []string{text}, Normalize: true})
	if err != nil {
		return nil, fmt.Errorf("embedder %s: encode request: %w", e.name, err)
	}

	var vec []float64
	err = resilience.Retry(ctx, e.retry, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := e.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return fmt.Errorf("embedder %s: status %d: %s", e.name, resp.StatusCode, body)
		}

		var decoded embedResponse
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return fmt.Errorf("embedder %s: decode response: %w", e.name, err)
		}
		if len(decoded.Embeddings) != 1 {
			return fmt.Errorf("embedder %s: expected 1 embedding, got %d", e.name, len(decoded.Embeddings))
		}
		vec = decoded.Embeddings[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return vec, nil
}
