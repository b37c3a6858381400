package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/docsieve/docsieve/internal/logger"
)

// GeminiProvider talks to the generateContent endpoint directly. The request
// and response shapes are a compatibility contract: prompt text travels as
// contents[].parts[].text and the generated payload is read back from
// candidates[0].content.parts[0].text, with the credential passed as the
// key query parameter.
type GeminiProvider struct {
	baseURL string
	model   string
	apiKey  string
	client  *http.Client
}

// NewGeminiProvider creates a new Gemini provider.
func NewGeminiProvider(cfg ProviderConfig) (*GeminiProvider, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModels["gemini"]
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
		if cfg.Timeout > 0 {
			client.Timeout = cfg.Timeout
		}
	}

	return &GeminiProvider{
		baseURL: baseURL,
		model:   model,
		apiKey:  cfg.APIKey,
		client:  client,
	}, nil
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	ResponseMIMEType string   `json:"responseMimeType,omitempty"`
	Temperature      *float64 `json:"temperature,omitempty"`
	MaxOutputTokens  int      `json:"maxOutputTokens,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	ModelVersion string `json:"modelVersion"`
}

// Generate sends one generateContent request.
func (p *GeminiProvider) Generate(ctx context.Context, req Request) (Response, error) {
	genCfg := &geminiGenerationConfig{}
	if req.JSONSchema != nil {
		genCfg.ResponseMIMEType = "application/json"
	}
	if req.Temperature > 0 {
		genCfg.Temperature = &req.Temperature
	}
	if req.MaxTokens > 0 {
		genCfg.MaxOutputTokens = req.MaxTokens
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: req.Prompt}}},
		},
		GenerationConfig: genCfg,
	})
	if err != nil {
		return Response{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		p.baseURL, p.model, url.QueryEscape(p.apiKey))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	logger.Debug("gemini request", "model", p.model, "content_length", len(body))

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	logger.Debug("gemini response",
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds())

	if resp.StatusCode/100 != 2 {
		return Response{}, fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, truncate(raw, 200))
	}

	var geminiResp geminiResponse
	if err := json.Unmarshal(raw, &geminiResp); err != nil {
		return Response{}, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return Response{}, fmt.Errorf("no candidates in response")
	}
	text := geminiResp.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return Response{}, fmt.Errorf("empty payload in response")
	}

	model := geminiResp.ModelVersion
	if model == "" {
		model = p.model
	}

	return Response{Content: text, Model: model}, nil
}

// Name returns the provider identifier.
func (p *GeminiProvider) Name() string {
	return "gemini"
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

func init() {
	RegisterProvider("gemini", func(cfg ProviderConfig) (Provider, error) {
		return NewGeminiProvider(cfg)
	})
}
