package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func geminiSuccess(text string) string {
	resp := map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{map[string]any{"text": text}},
				},
			},
		},
		"modelVersion": "gemini-2.0-flash-001",
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestGeminiProvider_RequestShape(t *testing.T) {
	var gotPath, gotKey string
	var gotBody geminiRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("request body is not valid JSON: %v", err)
		}
		w.Write([]byte(geminiSuccess(`{"applicantName":"Jane Doe"}`)))
	}))
	defer srv.Close()

	p, err := NewGeminiProvider(ProviderConfig{
		APIKey:  "secret-key",
		BaseURL: srv.URL,
		Model:   "gemini-2.0-flash",
	})
	if err != nil {
		t.Fatalf("NewGeminiProvider: %v", err)
	}

	resp, err := p.Generate(context.Background(), Request{
		Prompt:     "extract things",
		JSONSchema: map[string]any{"type": "object"},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if gotPath != "/models/gemini-2.0-flash:generateContent" {
		t.Errorf("unexpected path: %q", gotPath)
	}
	if gotKey != "secret-key" {
		t.Errorf("credential should travel as the key query parameter, got %q", gotKey)
	}
	if len(gotBody.Contents) != 1 || len(gotBody.Contents[0].Parts) != 1 {
		t.Fatalf("expected one content with one part, got %+v", gotBody.Contents)
	}
	if gotBody.Contents[0].Parts[0].Text != "extract things" {
		t.Errorf("prompt should travel verbatim, got %q", gotBody.Contents[0].Parts[0].Text)
	}
	if gotBody.GenerationConfig == nil || gotBody.GenerationConfig.ResponseMIMEType != "application/json" {
		t.Error("JSON output directive missing from generationConfig")
	}

	if resp.Content != `{"applicantName":"Jane Doe"}` {
		t.Errorf("unexpected content: %q", resp.Content)
	}
	if resp.Model != "gemini-2.0-flash-001" {
		t.Errorf("unexpected model: %q", resp.Model)
	}
}

func TestGeminiProvider_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p, _ := NewGeminiProvider(ProviderConfig{APIKey: "k", BaseURL: srv.URL})

	_, err := p.Generate(context.Background(), Request{Prompt: "x"})
	if err == nil {
		t.Fatal("expected error for non-2xx status")
	}
}

func TestGeminiProvider_EmptyPayload(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"no candidates", `{"candidates":[]}`},
		{"no parts", `{"candidates":[{"content":{"parts":[]}}]}`},
		{"empty text", geminiSuccess("")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			p, _ := NewGeminiProvider(ProviderConfig{APIKey: "k", BaseURL: srv.URL})
			_, err := p.Generate(context.Background(), Request{Prompt: "x"})
			if err == nil {
				t.Fatal("expected error for empty payload")
			}
		})
	}
}

func TestGeminiProvider_ContextCancellation(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	p, _ := NewGeminiProvider(ProviderConfig{APIKey: "k", BaseURL: srv.URL})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Generate(ctx, Request{Prompt: "x"})
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	_, err := NewProvider("nope", ProviderConfig{})
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestAvailableProviders_Registered(t *testing.T) {
	got := AvailableProviders()

	want := map[string]bool{"gemini": false, "openai": false, "anthropic": false}
	for _, name := range got {
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("provider %q not registered", name)
		}
	}
}
