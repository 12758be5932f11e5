// Package analysis talks to the Gemini generateContent API to score meal
// photos against a plan and to read uploaded plan documents.
package analysis

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/tanmald/plate-check-mvp/domain"
)

const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

var jsonPattern = regexp.MustCompile(`(?s)\{.*\}`)

type (
	GeminiConfig struct {
		APIKey  string
		Model   string
		BaseURL string
		Timeout time.Duration
	}

	geminiClient struct {
		apiKey     string
		model      string
		baseURL    string
		httpClient *http.Client
		log        *zap.Logger
	}

	geminiResponse struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
)

func newGeminiClient(cfg GeminiConfig, log *zap.Logger) *geminiClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &geminiClient{
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log,
	}
}

func (c *geminiClient) enabled() bool {
	return c.apiKey != "" && c.model != ""
}

// generate sends one prompt with an optional inline file and returns the
// text of the first candidate.
func (c *geminiClient) generate(ctx context.Context, prompt string, data []byte, mimeType string) (string, error) {
	if !c.enabled() {
		return "", domain.ErrAnalysisNotEnabled
	}

	parts := []map[string]interface{}{
		{"text": prompt},
	}
	if len(data) > 0 {
		if mimeType == "" {
			mimeType = mimetype.Detect(data).String()
		}
		parts = append(parts, map[string]interface{}{
			"inline_data": map[string]interface{}{
				"mime_type": mimeType,
				"data":      base64.StdEncoding.EncodeToString(data),
			},
		})
	}

	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": parts},
		},
		"generationConfig": map[string]interface{}{
			"temperature":      0.1,
			"topP":             0.8,
			"topK":             40,
			"responseMimeType": "application/json",
		},
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(requestJSON))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("gemini API error: %s - %s", resp.Status, string(bodyBytes))
	}

	var geminiResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return "", err
	}
	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini API error: empty candidates")
	}

	text := geminiResp.Candidates[0].Content.Parts[0].Text
	c.log.Debug("gemini raw response", zap.String("model", c.model), zap.Int("length", len(text)))
	return text, nil
}

// cleanJSON pulls the JSON object out of a model reply that may be wrapped
// in prose or a markdown fence.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	if match := jsonPattern.FindString(text); match != "" {
		text = match
	}
	return strings.TrimSpace(text)
}
