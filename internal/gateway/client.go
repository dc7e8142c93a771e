// Package gateway is the typed HTTP client for the remote assistant
// service. It holds no state beyond the base address; every operation is
// a single request/response exchange.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Client talks to the assistant service over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a Client for the service at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// NewWithHTTPClient creates a Client using the given http.Client,
// useful for tests and custom timeouts.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), client: hc}
}

// BaseURL returns the configured service address.
func (c *Client) BaseURL() string { return c.baseURL }

// CheckHealth verifies the service is reachable.
func (c *Client) CheckHealth(ctx context.Context) error {
	return c.getJSON(ctx, "/health", nil)
}

// ListDocuments returns the names of all uploaded documents.
func (c *Client) ListDocuments(ctx context.Context) ([]string, error) {
	var resp struct {
		Documents []string `json:"documents"`
	}
	if err := c.getJSON(ctx, "/documents", &resp); err != nil {
		return nil, err
	}
	return resp.Documents, nil
}

// Upload sends the given files as one multipart request. The service
// parses and indexes them before acknowledging.
func (c *Client) Upload(ctx context.Context, files []File) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := writer.CreateFormFile("files", f.Name)
		if err != nil {
			return fmt.Errorf("creating form file %s: %w", f.Name, err)
		}
		if _, err := io.Copy(part, f.Reader); err != nil {
			return fmt.Errorf("reading %s: %w", f.Name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalizing multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &body)
	if err != nil {
		return fmt.Errorf("creating upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}

// DeleteAllDocuments removes every uploaded document from the service.
func (c *Client) DeleteAllDocuments(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/documents", nil)
	if err != nil {
		return fmt.Errorf("creating delete request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("delete request failed: %w", err)
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}

// Query asks a free-form question grounded in the uploaded documents.
func (c *Client) Query(ctx context.Context, req QueryRequest) (*QueryResponse, error) {
	var resp QueryResponse
	if err := c.postJSON(ctx, "/query", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GenerateQuiz requests a batch of quiz questions.
func (c *Client) GenerateQuiz(ctx context.Context, req QuizRequest) ([]QuizQuestion, error) {
	var resp struct {
		Questions []QuizQuestion `json:"questions"`
	}
	if err := c.postJSON(ctx, "/quiz/generate", req, &resp); err != nil {
		return nil, err
	}
	return resp.Questions, nil
}

// CheckAnswer grades a free-text answer against a quiz question.
func (c *Client) CheckAnswer(ctx context.Context, req AnswerCheckRequest) (*AnswerResult, error) {
	var resp AnswerResult
	if err := c.postJSON(ctx, "/quiz/check", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GenerateFlashcards requests a batch of two-sided revision cards.
func (c *Client) GenerateFlashcards(ctx context.Context, req FlashcardRequest) ([]Flashcard, error) {
	var resp struct {
		Flashcards []Flashcard `json:"flashcards"`
	}
	if err := c.postJSON(ctx, "/flashcards/generate", req, &resp); err != nil {
		return nil, err
	}
	return resp.Flashcards, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", path, err)
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshalling request for %s: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response from %s: %w", req.URL.Path, err)
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshalling response from %s: %w", req.URL.Path, err)
	}
	return nil
}

// checkStatus maps a non-2xx response to an *APIError, extracting the
// service's {"detail": ...} message when one is present.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode}
	body, err := io.ReadAll(resp.Body)
	if err == nil && len(body) > 0 {
		var payload struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.Detail != "" {
			apiErr.Detail = payload.Detail
		} else {
			apiErr.Detail = strings.TrimSpace(string(body))
		}
	}
	return apiErr
}
