package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/spacesedan/sentidesk/config"
	"github.com/spacesedan/sentidesk/internal/models"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// AnalyzerClient talks to a remote polarity service over JSON.
type AnalyzerClient struct {
	Client     *http.Client
	URL        string
	HealthURL  string
	MaxRetries int
	Backoff    time.Duration
}

// NewAnalyzerClient authenticates with client credentials when a client ID is
// configured and falls back to a plain HTTP client otherwise.
func NewAnalyzerClient(ctx context.Context, cfg config.AnalyzerConfig) *AnalyzerClient {
	httpClient := &http.Client{}
	if cfg.ClientID != "" && cfg.TokenURL != "" {
		oauthConf := &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
			AuthStyle:    oauth2.AuthStyleInHeader,
		}
		httpClient = oauthConf.Client(ctx)
	}
	httpClient.Timeout = cfg.Timeout

	slog.Info("[AnalyzerClient] Initializing Client",
		slog.String("url", cfg.URL),
		slog.Duration("timeout", cfg.Timeout),
		slog.Bool("oauth", cfg.ClientID != ""))

	return &AnalyzerClient{
		Client:     httpClient,
		URL:        cfg.URL,
		HealthURL:  cfg.HealthURL,
		MaxRetries: MAX_RETRIES,
		Backoff:    INITIAL_BACKOFF,
	}
}

// DoWithRetry retries transport errors and 5xx responses with exponential
// backoff. newReq is called once per attempt so request bodies can be replayed.
func (a *AnalyzerClient) DoWithRetry(ctx context.Context, newReq func() (*http.Request, error)) (*http.Response, error) {
	var resp *http.Response
	var err error
	backoff := a.Backoff
	attempts := max(a.MaxRetries, 1)

	for attempt := 0; attempt < attempts; attempt++ {
		req, buildErr := newReq()
		if buildErr != nil {
			return nil, fmt.Errorf("failed to build request: %w", buildErr)
		}

		resp, err = a.Client.Do(req)
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}

		slog.Warn("[AnalyzerClient] Request failed, will retry",
			slog.Int("attempt", attempt+1),
			slog.String("error", errMsg(err, resp)))

		if resp != nil {
			resp.Body.Close()
			if err == nil {
				err = fmt.Errorf("status code %d", resp.StatusCode)
			}
			resp = nil
		}

		if attempt == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, MAX_BACKOFF)
	}

	return resp, err
}

// Polarity implements sentiment.Analyzer.
func (a *AnalyzerClient) Polarity(ctx context.Context, text string) (float64, error) {
	var result models.PolarityResponse
	start := time.Now()

	if err := a.postJSON(ctx, a.URL, models.PolarityRequest{Text: text}, &result); err != nil {
		slog.Error("[AnalyzerClient] Polarity request failed",
			slog.Duration("elapsed", time.Since(start)))
		return 0, err
	}

	slog.Debug("[AnalyzerClient] Polarity request successful",
		slog.Duration("elapsed", time.Since(start)),
		slog.Float64("polarity", result.Polarity))
	return result.Polarity, nil
}

// HealthCheck reports whether the service answers its health endpoint with 200.
func (a *AnalyzerClient) HealthCheck(ctx context.Context) error {
	if a.HealthURL == "" {
		return errors.New("no health url configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.HealthURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := a.Client.Do(req)
	if err != nil {
		return fmt.Errorf("health request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

func (a *AnalyzerClient) postJSON(ctx context.Context, endpoint string, input any, output any) error {
	body, err := json.Marshal(input)
	if err != nil {
		slog.Error("[AnalyzerClient] Failed to marshal input",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to marshal input: %w", err)
	}

	resp, err := a.DoWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", USER_AGENT)
		return req, nil
	})
	if err != nil {
		slog.Error("[AnalyzerClient] Failed request after retries",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()))
		return fmt.Errorf("request failed after retries: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		slog.Error("[AnalyzerClient] Unexpected status",
			slog.String("endpoint", endpoint),
			slog.Int("status", resp.StatusCode),
			getPreview(respBody))
		return fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	if err := json.Unmarshal(respBody, output); err != nil {
		slog.Error("[AnalyzerClient] Failed to unmarshal response",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()),
			getPreview(respBody),
			slog.Int("raw_response_length", len(respBody)))
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}

func getPreview(respBody []byte) slog.Attr {
	raw := string(respBody)
	if len(raw) > 50 {
		raw = raw[:50]
	}
	return slog.String("raw_response", raw)
}

func errMsg(err error, resp *http.Response) string {
	if err != nil {
		return err.Error()
	}
	if resp != nil {
		return fmt.Sprintf("status code %d", resp.StatusCode)
	}
	return "unknown error"
}
