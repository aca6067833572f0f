package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	m "zipcull.dev/pkg/zipcull/internal/model"
)

// systemInstruction is the fixed prompt sent with every classification
// request. The service is asked for a single-word answer.
const systemInstruction = "You are a helpful assistant. " +
	"Determine if the filename suggests a Japanese, Chinese, or English game. " +
	"If the filename suggests Japanese or Chinese, respond with 'Japanese' or 'Chinese'. " +
	"If it's English, respond with 'English'. Only answer one word."

// Doer is the subset of *http.Client the classifier needs. It exists so
// tests can substitute a deterministic transport.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// chatMessage is one entry of the two-message request array.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// completionRequest is the JSON body posted to the remote endpoint.
type completionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

// RemoteClassifier asks a remote text-completion endpoint which language a
// filename suggests. Calls are blocking and sequential; transport failures
// are retried a fixed number of times with a fixed sleep in between.
type RemoteClassifier struct {
	endpoint string
	model    string
	client   Doer
	attempts int
	delay    time.Duration

	// sleep is time.Sleep unless a test injects its own.
	sleep func(time.Duration)
}

// NewRemoteClassifier constructs a RemoteClassifier. The timeout per attempt
// is fixed on the supplied http client.
func NewRemoteClassifier(endpoint, model string, attempts int, delay, timeout time.Duration) *RemoteClassifier {
	return &RemoteClassifier{
		endpoint: endpoint,
		model:    model,
		client:   &http.Client{Timeout: timeout},
		attempts: attempts,
		delay:    delay,
		sleep:    time.Sleep,
	}
}

// WithClient swaps the HTTP client. Used by tests.
func (c *RemoteClassifier) WithClient(client Doer) *RemoteClassifier {
	c.client = client
	return c
}

// WithSleep swaps the inter-attempt sleep. Used by tests.
func (c *RemoteClassifier) WithSleep(sleep func(time.Duration)) *RemoteClassifier {
	c.sleep = sleep
	return c
}

// Answer posts the filename and returns the whole response body trimmed and
// lower-cased. The answer is not validated against the known labels; the
// caller matches it verbatim against the keep-set. After exhausting all
// attempts the last transport error is returned.
func (c *RemoteClassifier) Answer(ctx context.Context, filename string) (m.Language, error) {
	var lastErr error

	for attempt := 1; attempt <= c.attempts; attempt++ {
		answer, err := c.post(ctx, filename)
		if err == nil {
			slog.Info("classifier answer", "filename", filename, "answer", answer)
			return answer, nil
		}

		lastErr = err
		slog.Error("classifier attempt failed",
			"filename", filename, "attempt", attempt, "attempts", c.attempts, "error", err)

		if attempt < c.attempts {
			slog.Info("retrying classifier", "delay", c.delay)
			c.sleep(c.delay)
		}
	}

	slog.Error("all classifier attempts failed", "filename", filename)

	return "", fmt.Errorf("classify %s: %w", filename, lastErr)
}

// post performs one request/response round trip.
func (c *RemoteClassifier) post(ctx context.Context, filename string) (m.Language, error) {
	payload := completionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemInstruction},
			{Role: "user", Content: fmt.Sprintf("Filename: %s", filename)},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}

	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		// Drain so the connection can be reused across retries.
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	return m.Language(strings.ToLower(strings.TrimSpace(string(text)))), nil
}
