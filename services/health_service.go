package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HealthService proxies metric requests to the external ML service. The
// upstream has shipped under two contracts (a JSON API under /api and a
// legacy query-parameter UI), so every call walks a ladder of attempts and
// the first parseable JSON response wins.
type HealthService struct {
	BaseURL string
	Client  *http.Client
}

func NewHealthService(baseURL string) *HealthService {
	return &HealthService{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// queryAliases maps the app's field names onto the legacy upstream's.
var queryAliases = map[string]string{
	"height_cm":            "height",
	"weight_kg":            "weight",
	"training_intensity":   "intensity",
	"session_duration_min": "duration",
}

// Predict forwards the payload for one metric path (e.g. "/bmi") and
// returns the upstream's parsed JSON body.
func (hs *HealthService) Predict(ctx context.Context, path string, payload map[string]interface{}) (map[string]interface{}, error) {
	attempts := []func(context.Context) (map[string]interface{}, error){
		func(ctx context.Context) (map[string]interface{}, error) {
			return hs.postJSON(ctx, hs.BaseURL+"/api"+path, payload)
		},
		func(ctx context.Context) (map[string]interface{}, error) {
			return hs.postJSON(ctx, hs.BaseURL+path, payload)
		},
		func(ctx context.Context) (map[string]interface{}, error) {
			return hs.getQuery(ctx, hs.BaseURL+path, aliasPayload(payload))
		},
	}

	var lastErr error = fmt.Errorf("no response from ML service")
	for _, attempt := range attempts {
		parsed, err := attempt(ctx)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("ML upstream error: %w", lastErr)
}

func aliasPayload(payload map[string]interface{}) map[string]interface{} {
	mapped := make(map[string]interface{}, len(payload))
	for k, v := range payload {
		mapped[k] = v
	}
	for from, to := range queryAliases {
		if v, ok := mapped[from]; ok {
			if _, exists := mapped[to]; !exists {
				mapped[to] = v
			}
		}
	}
	return mapped
}

func (hs *HealthService) postJSON(ctx context.Context, rawURL string, payload map[string]interface{}) (map[string]interface{}, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return hs.do(req)
}

func (hs *HealthService) getQuery(ctx context.Context, rawURL string, payload map[string]interface{}) (map[string]interface{}, error) {
	values := url.Values{}
	for k, v := range payload {
		values.Set(k, fmt.Sprint(v))
	}
	if encoded := values.Encode(); encoded != "" {
		rawURL += "?" + encoded
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	return hs.do(req)
}

func (hs *HealthService) do(req *http.Request) (map[string]interface{}, error) {
	resp, err := hs.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("unparseable upstream body: %w", err)
	}
	return parsed, nil
}
