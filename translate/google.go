// Package translate implements machine translation of JSON localization
// documents through the Google Cloud Translation v3 API.
//
// GoogleClient talks to the translateText RPC. Adapter wraps any Service so
// that a failed call degrades to the untranslated text instead of an error,
// and Tree applies an Adapter to every string leaf of a jsontree.Value.
package translate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	// DefaultEndpoint is the public Cloud Translation API host.
	DefaultEndpoint = "https://translation.googleapis.com"
	// DefaultLocation is the API location used for translateText.
	DefaultLocation = "global"
	// DefaultTimeout bounds a single translateText request.
	DefaultTimeout = 60 * time.Second
)

// Service translates a single text into targetLang.
type Service interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// TranslationError reports a failed translation of one text.
type TranslationError struct {
	Text string
	Lang string
	Err  error
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("translating %q to %s: %v", truncate(e.Text, 80), e.Lang, e.Err)
}

func (e *TranslationError) Unwrap() error { return e.Err }

// ---------------------------------------------------------------------------
// Google Cloud Translation v3 client
// ---------------------------------------------------------------------------

// GoogleConfig holds the settings for a GoogleClient.
type GoogleConfig struct {
	// ProjectID is the Google Cloud project that owns the API usage.
	ProjectID string
	// APIKey is sent in the x-goog-api-key header.
	APIKey string
	// SourceLang is the language of every input text (e.g. "en").
	SourceLang string
	// Endpoint overrides DefaultEndpoint.
	Endpoint string
	// Location overrides DefaultLocation.
	Location string
	// Proxy is an optional HTTP/HTTPS proxy URL. When empty the
	// HTTP_PROXY/HTTPS_PROXY environment variables apply.
	Proxy string
	// Timeout overrides DefaultTimeout.
	Timeout time.Duration
}

// GoogleClient calls the translateText RPC of Cloud Translation v3.
type GoogleClient struct {
	cfg  GoogleConfig
	http *resty.Client
}

// NewGoogleClient returns a client for cfg, filling in defaults.
func NewGoogleClient(cfg GoogleConfig) *GoogleClient {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Location == "" {
		cfg.Location = DefaultLocation
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	c := resty.New().
		SetTimeout(cfg.Timeout).
		SetBaseURL(strings.TrimRight(cfg.Endpoint, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-goog-api-key", cfg.APIKey)
	if cfg.Proxy != "" {
		c.SetProxy(cfg.Proxy)
	}

	return &GoogleClient{cfg: cfg, http: c}
}

type translateTextRequest struct {
	Contents           []string `json:"contents"`
	MimeType           string   `json:"mimeType"`
	SourceLanguageCode string   `json:"sourceLanguageCode,omitempty"`
	TargetLanguageCode string   `json:"targetLanguageCode"`
}

type translateTextResponse struct {
	Translations []struct {
		TranslatedText string `json:"translatedText"`
	} `json:"translations"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// endpointPath returns the RPC path relative to the endpoint.
func (c *GoogleClient) endpointPath() string {
	return fmt.Sprintf("/v3/projects/%s/locations/%s:translateText", c.cfg.ProjectID, c.cfg.Location)
}

// Translate translates one text. Any failure is returned as a
// *TranslationError.
func (c *GoogleClient) Translate(ctx context.Context, text, targetLang string) (string, error) {
	out, err := c.TranslateBatch(ctx, []string{text}, targetLang)
	if err != nil {
		return "", &TranslationError{Text: text, Lang: targetLang, Err: err}
	}
	return out[0], nil
}

// TranslateBatch translates texts in one request and returns the
// translations in the same order.
func (c *GoogleClient) TranslateBatch(ctx context.Context, texts []string, targetLang string) ([]string, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	body := translateTextRequest{
		Contents:           texts,
		MimeType:           "text/plain",
		SourceLanguageCode: c.cfg.SourceLang,
		TargetLanguageCode: targetLang,
	}

	var result translateTextResponse
	var apiErr apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		SetError(&apiErr).
		Post(c.endpointPath())
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}

	if resp.IsError() {
		if apiErr.Error.Message != "" {
			return nil, fmt.Errorf("API returned status %d (%s): %s",
				resp.StatusCode(), apiErr.Error.Status, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode(), truncate(resp.String(), 500))
	}

	if len(result.Translations) != len(texts) {
		return nil, fmt.Errorf("malformed response: got %d translations, expected %d: %s",
			len(result.Translations), len(texts), truncate(resp.String(), 500))
	}

	out := make([]string, len(result.Translations))
	for i, t := range result.Translations {
		out[i] = t.TranslatedText
	}
	return out, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
