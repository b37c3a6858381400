package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/docsieve/docsieve/internal/llm"
	"github.com/docsieve/docsieve/internal/logger"
	"github.com/docsieve/docsieve/internal/retry"
	"github.com/docsieve/docsieve/pkg/schema"
)

// ErrNoCredential signals that the remote path is unavailable. It is a
// normal outcome, not a failure: callers fall back to the local extractor
// without any network attempt having been made.
var ErrNoCredential = errors.New("no credential provided")

// Remote performs structured extraction through a provider, retrying
// transient failures with exponential backoff.
type Remote struct {
	provider    llm.Provider
	schema      schema.Schema
	credential  string
	policy      retry.Policy
	temperature float64
	maxTokens   int
	retryOpts   []retry.Option
}

// RemoteOption configures a Remote.
type RemoteOption func(*Remote)

// WithRetryPolicy overrides the retry policy.
func WithRetryPolicy(p retry.Policy) RemoteOption {
	return func(r *Remote) {
		r.policy = p
	}
}

// WithSleep overrides the backoff sleeper, letting tests simulate delays.
func WithSleep(s retry.SleepFunc) RemoteOption {
	return func(r *Remote) {
		r.retryOpts = append(r.retryOpts, retry.WithSleep(s))
	}
}

// NewRemote creates a remote extractor for the fixed document schema.
func NewRemote(provider llm.Provider, credential string, opts ...RemoteOption) *Remote {
	r := &Remote{
		provider:    provider,
		schema:      schema.Document(),
		credential:  credential,
		policy:      retry.DefaultPolicy(),
		temperature: 0.1,
		maxTokens:   1024,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Source returns the remote-service identifier for tagging results.
func (r *Remote) Source() string {
	return r.provider.Name()
}

// Extract sends the prompt to the provider and decodes the fields. Transport
// errors, non-success statuses and empty payloads are retried under the
// backoff policy; a payload that fails to parse or validate is deterministic
// per response and fails fast instead of burning the retry budget. The error
// from the final attempt is propagated; fallback is the caller's decision.
func (r *Remote) Extract(ctx context.Context, prompt string) (Fields, error) {
	if strings.TrimSpace(r.credential) == "" {
		return Fields{}, ErrNoCredential
	}

	var fields Fields
	err := retry.Do(ctx, r.policy, func(ctx context.Context) error {
		resp, err := r.provider.Generate(ctx, llm.Request{
			Prompt:      prompt,
			Temperature: r.temperature,
			MaxTokens:   r.maxTokens,
			JSONSchema:  r.schema.JSONSchema(),
		})
		if err != nil {
			return err
		}

		var decoded Fields
		if err := json.Unmarshal([]byte(resp.Content), &decoded); err != nil {
			return retry.Permanent(fmt.Errorf("payload is not valid JSON: %w", err))
		}
		if verrs := r.schema.Validate(decoded); len(verrs) > 0 {
			return retry.Permanent(fmt.Errorf("payload failed validation: %s", verrs[0]))
		}

		logger.Debug("remote extraction succeeded",
			"provider", r.provider.Name(),
			"model", resp.Model)
		fields = decoded
		return nil
	}, r.retryOpts...)
	if err != nil {
		return Fields{}, err
	}

	return fields, nil
}
