package elf

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/suavecitoo1998-ship-it/Santa/internal/metrics"
)

// Fallback texts shown when no generated description is available. Each
// failure class has its own text so the UI always has something to display.
const (
	FallbackNoKey       = "Ho ho ho! I need my magic API key to write this!"
	FallbackUnreachable = "The elves are on a break! (Error connecting to magic cloud)"
	FallbackGarbled     = "The elves scribbled something I can't read. Ask me again!"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	requestTimeout = 30 * time.Second
)

// Client asks the Gemini API for a playful gift description. It makes a
// single round trip per request, no retries, and never returns an error:
// every failure maps to one of the fallback texts above.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates a new Client. An empty apiKey is allowed; Describe then
// answers with FallbackNoKey without touching the network.
func NewClient(apiKey, model string, logger *logrus.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		logger: logger,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Describe returns a short, funny reason why the given item belongs on the
// wishlist. It always returns usable text.
func (c *Client) Describe(ctx context.Context, label string) string {
	metrics.EnrichmentRequests.Inc()

	if c.apiKey == "" {
		c.logger.Warn("Gemini API key not set, using fallback description")
		metrics.EnrichmentFallbacks.WithLabelValues("no_key").Inc()
		return FallbackNoKey
	}

	prompt := fmt.Sprintf(`You are a cheeky Christmas Elf writing a letter to Santa Claus.
Write a very short (max 2 sentences), funny, and persuasive reason why I absolutely deserve this item: %q.
Be playful.`, label)

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		c.logger.WithError(err).Error("Failed to encode description request")
		metrics.EnrichmentFallbacks.WithLabelValues("encode").Inc()
		return FallbackUnreachable
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		c.logger.WithError(err).Error("Failed to build description request")
		metrics.EnrichmentFallbacks.WithLabelValues("encode").Inc()
		return FallbackUnreachable
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).Warn("Description request failed")
		metrics.EnrichmentFallbacks.WithLabelValues("unreachable").Inc()
		return FallbackUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.WithField("status", resp.StatusCode).Warn("Description request rejected")
		metrics.EnrichmentFallbacks.WithLabelValues("unreachable").Inc()
		return FallbackUnreachable
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.logger.WithError(err).Warn("Failed to decode description response")
		metrics.EnrichmentFallbacks.WithLabelValues("malformed").Inc()
		return FallbackGarbled
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		c.logger.Warn("Description response contained no text")
		metrics.EnrichmentFallbacks.WithLabelValues("malformed").Inc()
		return FallbackGarbled
	}

	text := strings.TrimSpace(result.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		metrics.EnrichmentFallbacks.WithLabelValues("malformed").Inc()
		return FallbackGarbled
	}
	return text
}
