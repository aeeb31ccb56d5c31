package social

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"cms-service/pkg/config"
)

// APIFetcher pulls channel metrics from a stats aggregation API over HTTP.
// It satisfies the service layer's StatsFetcher interface.
type APIFetcher struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIFetcher creates a fetcher from the social config. Returns nil when no
// base URL is configured so cached stats are served without refreshing.
func NewAPIFetcher(cfg *config.SocialConfig) *APIFetcher {
	if cfg.APIBaseURL == "" {
		return nil
	}
	return &APIFetcher{
		baseURL:    cfg.APIBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// statsResponse is the aggregation API's payload
type statsResponse struct {
	Stats map[string]string `json:"stats"`
}

// FetchStats requests current metrics for one channel
func (f *APIFetcher) FetchStats(ctx context.Context, platform, externalID string) (map[string]string, error) {
	endpoint := fmt.Sprintf("%s/v1/channels/%s/%s/stats",
		f.baseURL, url.PathEscape(platform), url.PathEscape(externalID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building stats request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stats request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stats API returned status %d", resp.StatusCode)
	}

	var payload statsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding stats response: %w", err)
	}
	return payload.Stats, nil
}
