// Package client talks to the verification server that holds test results.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/d4rken/cwa-app-android/internal/testresult/models"
	"github.com/d4rken/cwa-app-android/pkg/platform/circuit"
	"github.com/d4rken/cwa-app-android/pkg/platform/sentinel"
)

const testResultPath = "/version/v1/testresult"

// ErrRejected marks a 4xx answer. Retrying the same token will not help.
var ErrRejected = errors.New("verification server rejected request")

type testResultRequest struct {
	RegistrationToken string `json:"registrationToken"`
}

type testResultResponse struct {
	TestResult *int `json:"testResult"`
}

// VerificationServer fetches test results for a registration token.
type VerificationServer struct {
	baseURL string
	client  *http.Client
	breaker *circuit.Breaker
	logger  *slog.Logger
}

type Option func(*VerificationServer)

func WithHTTPClient(c *http.Client) Option {
	return func(v *VerificationServer) {
		if c != nil {
			v.client = c
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(v *VerificationServer) {
		if d > 0 {
			v.client = &http.Client{Timeout: d, Transport: v.client.Transport}
		}
	}
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(v *VerificationServer) {
		if b != nil {
			v.breaker = b
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(v *VerificationServer) {
		v.logger = logger
	}
}

func NewVerificationServer(baseURL string, opts ...Option) (*VerificationServer, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("verification server URL is required")
	}
	v := &VerificationServer{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 20 * time.Second},
		breaker: circuit.New("verification-server"),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// FetchTestResult asks for the current result of token. While the breaker is
// open calls fail fast with sentinel.ErrUnavailable.
func (v *VerificationServer) FetchTestResult(ctx context.Context, token string) (models.TestResult, error) {
	if !v.breaker.Allow() {
		return 0, fmt.Errorf("%s circuit open: %w", v.breaker.Name(), sentinel.ErrUnavailable)
	}

	result, err := v.fetch(ctx, token)
	switch {
	case err == nil, errors.Is(err, ErrRejected):
		if _, change := v.breaker.RecordSuccess(); change.Closed {
			v.logger.InfoContext(ctx, "verification server circuit closed")
		}
	case ctx.Err() != nil:
		// Our own cancellation says nothing about the server.
	default:
		if _, change := v.breaker.RecordFailure(); change.Opened {
			v.logger.WarnContext(ctx, "verification server circuit opened", "error", err)
		}
	}
	return result, err
}

func (v *VerificationServer) fetch(ctx context.Context, token string) (models.TestResult, error) {
	body, err := json.Marshal(testResultRequest{RegistrationToken: token})
	if err != nil {
		return 0, fmt.Errorf("encode test result request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.baseURL+testResultPath, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build test result request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("test result request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return 0, fmt.Errorf("test result request returned %s: %w", resp.Status, sentinel.ErrUnavailable)
	case resp.StatusCode >= 400:
		return 0, fmt.Errorf("%w: %s", ErrRejected, resp.Status)
	case resp.StatusCode != http.StatusOK:
		return 0, fmt.Errorf("test result request returned %s", resp.Status)
	}

	var decoded testResultResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, fmt.Errorf("decode test result response: %w", err)
	}
	if decoded.TestResult == nil {
		return 0, fmt.Errorf("test result response has no testResult")
	}
	return models.ParseTestResult(*decoded.TestResult)
}
