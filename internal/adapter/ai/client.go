// Package ai talks to the OpenAI-compatible chat completion gateway that
// produces loan decisions.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"loanreview-backend/internal/domain/apperr"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

const maxErrBody = 512

type Config struct {
	Endpoint      string
	APIKey        string
	Model         string
	Timeout       time.Duration
	RatePerSecond float64
	Burst         int
}

type Client struct {
	http     *http.Client
	endpoint string
	apiKey   string
	model    string
	limiter  *rate.Limiter
	log      *logrus.Logger
}

func NewClient(cfg Config, log *logrus.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return NewClientWithHTTP(cfg, &http.Client{Timeout: timeout}, log)
}

func NewClientWithHTTP(cfg Config, hc *http.Client, log *logrus.Logger) *Client {
	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &Client{
		http:     hc,
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		limiter:  rate.NewLimiter(limit, burst),
		log:      log,
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
}

// Complete sends one system+user exchange and returns the assistant text.
// There is no retry; every failure is returned as a typed *apperr.Error.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	if c.apiKey == "" {
		return "", apperr.New(apperr.KindConfiguration, "AI gateway credential is not configured")
	}
	if c.endpoint == "" {
		return "", apperr.New(apperr.KindConfiguration, "AI gateway endpoint is not configured")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", apperr.Wrap(apperr.KindUpstream, "ai gateway throttle", err)
	}

	payload, err := json.Marshal(completionRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", apperr.Wrap(apperr.KindUpstream, "encode ai request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", apperr.Wrap(apperr.KindConfiguration, "build ai request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return "", apperr.Wrap(apperr.KindUpstream, "ai gateway request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperr.Wrap(apperr.KindUpstream, "read ai response", err)
	}

	c.log.WithFields(logrus.Fields{
		"status":      resp.StatusCode,
		"model":       c.model,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("ai gateway call")

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", apperr.New(apperr.KindRateLimited, "Rate limits exceeded, please try again later.")
	case resp.StatusCode == http.StatusPaymentRequired:
		return "", apperr.New(apperr.KindPaymentRequired, "Payment required, please add funds to your AI workspace.")
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.log.WithField("status", resp.StatusCode).Warnf("ai gateway error body: %s", truncate(body))
		return "", apperr.New(apperr.KindUpstream, fmt.Sprintf("AI gateway error: status %d", resp.StatusCode))
	}

	if !gjson.ValidBytes(body) {
		return "", apperr.New(apperr.KindUpstream, "AI gateway returned malformed JSON")
	}
	content := gjson.GetBytes(body, "choices.0.message.content")
	if content.Type != gjson.String {
		return "", apperr.New(apperr.KindUpstream, "AI gateway response has no message content")
	}
	return content.String(), nil
}

func truncate(b []byte) string {
	if len(b) > maxErrBody {
		return string(b[:maxErrBody]) + "..."
	}
	return string(b)
}
