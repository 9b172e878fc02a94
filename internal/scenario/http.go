package scenario

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"

	"FOMCPulse/internal/model"
)

// StatusError is returned when the scenario backend answers with a non-200 status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("scenario backend: status %d, body: %s", e.StatusCode, e.Body)
}

// HTTPProvider fetches scenarios from a remote backend.
type HTTPProvider struct {
	BaseURL        string
	APIKey         string
	Client         *http.Client
	Limiter        *rate.Limiter
	MaxElapsedTime time.Duration
}

// NewHTTPProvider creates a provider with optional proxy support, limited to a
// few requests per second.
func NewHTTPProvider(baseURL, apiKey, proxyURL string) *HTTPProvider {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &HTTPProvider{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		Limiter:        rate.NewLimiter(rate.Every(time.Second), 5),
		MaxElapsedTime: 30 * time.Second,
	}
}

func (p *HTTPProvider) Name() string { return "http" }

func (p *HTTPProvider) FetchScenario(ctx context.Context) (*model.Scenario, error) {
	var s model.Scenario
	if err := p.getJSON(ctx, "/api/v1/scenarios/current", &s); err != nil {
		return nil, fmt.Errorf("fetch scenario: %w", err)
	}
	if err := Validate([]model.Scenario{s}); err != nil {
		return nil, fmt.Errorf("fetch scenario: %w", err)
	}
	return &s, nil
}

func (p *HTTPProvider) ListScenarios(ctx context.Context) ([]model.Scenario, error) {
	var list []model.Scenario
	if err := p.getJSON(ctx, "/api/v1/scenarios", &list); err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}
	if err := Validate(list); err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}
	return list, nil
}

func (p *HTTPProvider) getJSON(ctx context.Context, path string, out any) error {
	if p.Limiter != nil {
		if err := p.Limiter.Wait(ctx); err != nil {
			return err
		}
	}

	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+path, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")
		if p.APIKey != "" {
			req.Header.Set("Authorization", "Bearer "+p.APIKey)
		}
		resp, err := p.Client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if resp.StatusCode != http.StatusOK {
			serr := &StatusError{StatusCode: resp.StatusCode, Body: string(data)}
			// Client errors will not fix themselves on retry.
			if resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return backoff.Permanent(serr)
			}
			return serr
		}
		body = data
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = p.MaxElapsedTime
	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
