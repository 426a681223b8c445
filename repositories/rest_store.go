// repositories/rest_store.go
package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// RESTStore serves the collections still living behind the legacy Node
// backend. Filters become query-string parameters; the external contract
// is the same as the Mongo store's.
type RESTStore struct {
	BaseURL string
	Client  *http.Client
}

func NewRESTStore() *RESTStore {
	baseURL := os.Getenv("LEGACY_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000/api"
	}
	return &RESTStore{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type legacyListResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    []bson.M `json:"data"`
}

func (s *RESTStore) List(ctx context.Context, collection string, q ListQuery) ([]bson.M, error) {
	params := url.Values{}
	if q.Country != "" {
		params.Set("country", q.Country)
	}
	if q.Status != "" {
		params.Set("status", q.Status)
	}

	endpoint := fmt.Sprintf("%s/%s", s.BaseURL, collection)
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build legacy request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("legacy backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("legacy backend returned status %d for %s", resp.StatusCode, collection)
	}

	var body legacyListResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode legacy response for %s: %w", collection, err)
	}
	if !body.Success {
		return nil, fmt.Errorf("legacy backend error for %s: %s", collection, body.Message)
	}
	return body.Data, nil
}

func (s *RESTStore) SetCountry(ctx context.Context, collection, id, country string) error {
	endpoint := fmt.Sprintf("%s/%s/%s/country", s.BaseURL, collection, url.PathEscape(id))
	payload := strings.NewReader(fmt.Sprintf(`{"country":%q}`, country))

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, payload)
	if err != nil {
		return fmt.Errorf("failed to build legacy request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("legacy backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("legacy backend returned status %d updating %s/%s", resp.StatusCode, collection, id)
	}
	return nil
}
