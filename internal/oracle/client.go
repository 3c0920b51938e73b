package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to an OpenAI-compatible chat completions API. It exposes the
// three judgment calls the classroom core depends on plus notes generation
// for the transcript service.
type Client struct {
	httpClient *http.Client
	apiKey     string
	apiURL     string
	model      string
	timeout    time.Duration
}

// SafetyVerdict is the structured result of a content-safety classification.
type SafetyVerdict struct {
	IsSafe     bool    `json:"is_safe"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
	Category   string  `json:"category"`
}

// DoubtVerdict is the structured result of a doubt classification.
type DoubtVerdict struct {
	IsGenuineDoubt bool    `json:"is_genuine_doubt"`
	Confidence     float64 `json:"confidence"`
	Reason         string  `json:"reason"`
	Category       string  `json:"category"`
}

func NewClient(apiKey, apiURL, model string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     apiKey,
		apiURL:     apiURL,
		model:      model,
		timeout:    timeout,
	}
}

func (c *Client) IsAvailable() bool {
	return c.apiKey != ""
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// ClassifySafety asks the oracle whether text is safe for a classroom.
func (c *Client) ClassifySafety(ctx context.Context, text string) (*SafetyVerdict, error) {
	content, err := c.complete(ctx, safetySystemPrompt, fmt.Sprintf("Message: %q", text))
	if err != nil {
		return nil, err
	}

	var verdict SafetyVerdict
	if err := json.Unmarshal([]byte(extractJSON(content)), &verdict); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &verdict, nil
}

// ClassifyDoubt asks the oracle whether a student message is a genuine
// academic doubt, given recent teacher context.
func (c *Client) ClassifyDoubt(ctx context.Context, text, classContext string) (*DoubtVerdict, error) {
	if classContext == "" {
		classContext = "No recent context available"
	}
	user := fmt.Sprintf("Context from recent class discussion:\n%s\n\nStudent message: %q", classContext, text)

	content, err := c.complete(ctx, doubtSystemPrompt, user)
	if err != nil {
		return nil, err
	}

	var verdict DoubtVerdict
	if err := json.Unmarshal([]byte(extractJSON(content)), &verdict); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &verdict, nil
}

// GenerateAnswer produces an assistant answer to a student query. The
// caller is responsible for moderating both the query and the answer.
func (c *Client) GenerateAnswer(ctx context.Context, query, lectureContext string) (string, error) {
	if lectureContext == "" {
		lectureContext = "No specific lecture context available"
	}
	user := fmt.Sprintf("Current class context:\n%s\n\nStudent question: %s", lectureContext, query)
	return c.complete(ctx, answerSystemPrompt, user)
}

// GenerateNotes produces structured markdown notes from a class transcript.
func (c *Client) GenerateNotes(ctx context.Context, transcript string) (string, error) {
	return c.complete(ctx, notesSystemPrompt, "Transcription:\n"+transcript)
}

func (c *Client) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if !c.IsAvailable() {
		return "", fmt.Errorf("%w: no API key configured", ErrUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: API returned status %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("%w: API error: %s", ErrUnavailable, chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrUnavailable)
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

// extractJSON strips markdown code fences and returns the outermost JSON
// object in content. Models wrap verdicts in fences or prose often enough
// that parsing the raw content directly is unreliable.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
	}
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
	}
	if strings.HasSuffix(content, "```") {
		content = strings.TrimSuffix(content, "```")
	}
	content = strings.TrimSpace(content)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end < start {
		return content
	}
	return content[start : end+1]
}
