// Package openrouter is a small client for the OpenRouter chat API: the
// model listing and a fixed two-message chat completion.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const (
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	DefaultModel   = "qwen/qwen3-32b:free"
	DefaultTimeout = 60 * time.Second

	siteURL  = "https://github.com/kevinzwang/randy"
	siteName = "randy"

	maxResponseSize = 4 << 20
)

// SystemPrompt is sent ahead of every outcome.
const SystemPrompt = `You will answer only to "Correct" or "Incorrect." These correspond to either a ` +
	`notification that a user got a number right in a number guessing game or not, respectively. ` +
	`Your task is to, depending on whether you were notified they got it right, or not, to return a ` +
	`cowboy-like answer to the user. Make it a short text. Include just your answer and nothing more. ` +
	`Don't include emoji or otherwise non-verbal content.`

// Message is one entry of a chat request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

type modelsResponse struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

type apiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Client talks to the OpenRouter REST API
type Client struct {
	apiKey    string
	baseURL   string
	userAgent string
	http      *http.Client
	logger    *log.Logger
}

// NewClient creates a client using the default endpoint and timeout.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:    apiKey,
		baseURL:   DefaultBaseURL,
		userAgent: siteName,
		http:      &http.Client{Timeout: DefaultTimeout},
		logger:    log.New(io.Discard),
	}
}

func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = strings.TrimRight(u, "/")
	return c
}

// WithTimeout bounds every request. Zero disables the client-side timeout.
func (c *Client) WithTimeout(d time.Duration) *Client {
	c.http.Timeout = d
	return c
}

func (c *Client) WithLogger(l *log.Logger) *Client {
	if l != nil {
		c.logger = l
	}
	return c
}

func (c *Client) WithUserAgent(ua string) *Client {
	c.userAgent = ua
	return c
}

// ListModels returns the identifiers of every model OpenRouter offers, in
// the order the API lists them.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	body, err := c.do(ctx, http.MethodGet, "/models", nil)
	if err != nil {
		return nil, err
	}

	var resp modelsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse models response: %w", err)
	}

	ids := make([]string, 0, len(resp.Data))
	for _, m := range resp.Data {
		ids = append(ids, m.ID)
	}
	c.logger.Debug("listed models", "count", len(ids))
	return ids, nil
}

// Respond sends the system prompt and outcome to model and returns the
// content of the last choice. A response with no choices yields "".
func (c *Client) Respond(ctx context.Context, model, outcome string) (string, error) {
	return c.Chat(ctx, model, []Message{
		{Role: "system", Content: SystemPrompt},
		{Role: "user", Content: outcome},
	})
}

// Chat performs one chat completion request.
func (c *Client) Chat(ctx context.Context, model string, messages []Message) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}

	payload, err := json.Marshal(chatRequest{Model: model, Messages: messages})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, "/chat/completions", payload)
	if err != nil {
		return "", err
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to parse chat response: %w", err)
	}
	if len(resp.Choices) == 0 {
		c.logger.Debug("chat response had no choices", "model", model)
		return "", nil
	}
	return resp.Choices[len(resp.Choices)-1].Message.Content, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req, payload != nil)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Info("openrouter request", "method", method, "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	body, err := readResponse(resp)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode, body)
	}
	return body, nil
}

func (c *Client) setHeaders(req *http.Request, hasBody bool) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("HTTP-Referer", siteURL)
	req.Header.Set("X-Title", siteName)
}

func readResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if len(body) > maxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", maxResponseSize)
	}
	return body, nil
}

func statusError(status int, body []byte) error {
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return &StatusError{Status: status, Code: apiErr.Error.Code, Message: apiErr.Error.Message}
	}
	return &StatusError{Status: status, Message: strings.TrimSpace(string(body))}
}
