// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"text/template"

	"golang.org/x/time/rate"

	"github.com/pdiddy/paper-digest/internal/httputil"
	"github.com/pdiddy/paper-digest/pkg/types"
)

// completionsAPIURL is the chat completions endpoint. Package-level var for
// test substitution.
var completionsAPIURL = "https://api.openai.com/v1/chat/completions"

// systemInstruction is the fixed system message sent with every request.
const systemInstruction = "You are an expert research paper summarizer."

// summaryPromptTmpl is the user prompt embedding the word budget and the
// paper content.
var summaryPromptTmpl = template.Must(template.New("summary").Parse(
	`Summarize the following research paper in clear bullet points, highlighting the main contributions, methodology, and results. Limit to {{.MaxWords}} words.

Paper Content:
{{.Content}}`))

const (
	defaultModel    = "gpt-5"
	defaultMaxWords = 200

	// defaultRate paces outbound completion calls, requests per second.
	defaultRate = 2.0

	// temperature is fixed: summaries should stay close to the source text.
	temperature = 0.3
)

// ErrNoAPIKey indicates the completion credential is absent. It is checked
// before any network call and is isolated to the affected summary item.
var ErrNoAPIKey = errors.New("completion API key not configured")

// UpstreamError reports a non-success status from the completion API,
// carrying the status code and response body.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("completion API returned HTTP %d: %s", e.Status, e.Body)
}

// OpenAIBackend calls an OpenAI-style chat completions API.
type OpenAIBackend struct {
	client  *http.Client
	limiter *rate.Limiter
	cfg     types.SummaryConfig
}

// NewOpenAIBackend returns a backend configured from cfg. The credential is
// injected here rather than read from process globals so a fake or failing
// one can be supplied in tests.
func NewOpenAIBackend(cfg types.SummaryConfig) *OpenAIBackend {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRate
	}
	return &OpenAIBackend{
		client:  httputil.NewClient(0),
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		cfg:     cfg,
	}
}

// chat completions API JSON structures.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

// Summarize sends one paper's content to the completion API and returns the
// trimmed text of the model's reply.
func (b *OpenAIBackend) Summarize(ctx context.Context, content string, maxWords int) (string, error) {
	if b.cfg.APIKey == "" {
		return "", ErrNoAPIKey
	}
	if maxWords <= 0 {
		maxWords = b.cfg.MaxWords
	}
	if maxWords <= 0 {
		maxWords = defaultMaxWords
	}

	prompt, err := renderPrompt(content, maxWords)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}

	if err := b.limiter.Wait(ctx); err != nil {
		return "", err
	}

	reqBody := chatRequest{
		Model: b.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemInstruction},
			{Role: "user", Content: prompt},
		},
		Temperature: temperature,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, completionsAPIURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.cfg.APIKey)

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling completion API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &UpstreamError{Status: resp.StatusCode, Body: httputil.ErrorBody(resp.Body)}
	}

	var cResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return "", fmt.Errorf("decoding completion response: %w", err)
	}
	if len(cResp.Choices) == 0 {
		return "", fmt.Errorf("completion API returned no choices")
	}

	return strings.TrimSpace(cResp.Choices[0].Message.Content), nil
}

// renderPrompt executes the summary prompt template.
func renderPrompt(content string, maxWords int) (string, error) {
	var buf bytes.Buffer
	err := summaryPromptTmpl.Execute(&buf, struct {
		MaxWords int
		Content  string
	}{MaxWords: maxWords, Content: content})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
