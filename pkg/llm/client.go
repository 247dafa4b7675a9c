// Package llm wraps an OpenAI-compatible API for digest generation and text embeddings
package llm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"sort"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/umputun/curator/pkg/config"
)

// Request is a single chat completion call
type Request struct {
	System string
	User   string
}

// Client talks to an OpenAI-compatible endpoint. It is safe for concurrent use.
type Client struct {
	client         *openai.Client
	config         config.LLMConfig
	embeddingModel string
	limiter        *rate.Limiter
	retryDelay     time.Duration
}

// NewClient creates a new LLM client. embeddingModel is used by Embed.
func NewClient(cfg config.LLMConfig, embeddingModel string) *Client {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1)
	}
	if cfg.Retries < 1 {
		cfg.Retries = 1
	}

	return &Client{
		client:         openai.NewClientWithConfig(clientConfig),
		config:         cfg,
		embeddingModel: embeddingModel,
		limiter:        limiter,
		retryDelay:     500 * time.Millisecond,
	}
}

// Model returns the chat model name
func (c *Client) Model() string { return c.config.Model }

// temperature returns the configured temperature. Zero is sent as the smallest non-zero value
// because go-openai omits a zero temperature and the server would apply its own default.
func (c *Client) temperature() float32 {
	if c.config.Temperature == 0 {
		return math.SmallestNonzeroFloat32
	}
	return float32(c.config.Temperature)
}

// Complete sends the prompts and returns the text of the first choice.
// Rate limits and server errors are retried, other failures are returned as *Error right away.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:       c.config.Model,
		Temperature: c.temperature(),
		MaxTokens:   c.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
	}

	var text string
	err := c.retry(ctx, "complete", func(ctx context.Context) error {
		resp, err := c.client.CreateChatCompletion(ctx, chatReq)
		if err != nil {
			return wrapError(err)
		}
		if len(resp.Choices) == 0 {
			return &Error{Kind: KindEmpty, Err: errors.New("no choices in response")}
		}
		text = resp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

// Embed returns embedding vectors for the texts, in input order
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	req := openai.EmbeddingRequest{Input: texts, Model: openai.EmbeddingModel(c.embeddingModel)}
	var res [][]float32
	err := c.retry(ctx, "embed", func(ctx context.Context) error {
		resp, err := c.client.CreateEmbeddings(ctx, req)
		if err != nil {
			return wrapError(err)
		}
		if len(resp.Data) != len(texts) {
			return &Error{Kind: KindEmpty, Err: fmt.Errorf("got %d embeddings for %d inputs", len(resp.Data), len(texts))}
		}
		data := resp.Data
		sort.Slice(data, func(i, j int) bool { return data[i].Index < data[j].Index })
		res = make([][]float32, len(data))
		for i, d := range data {
			res[i] = d.Embedding
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// retry runs fn with rate limiting, per-attempt timeout and backoff on temporary errors
func (c *Client) retry(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	rpt := repeater.NewBackoff(c.config.Retries, c.retryDelay, repeater.WithMaxDelay(10*time.Second))
	attempt := 0
	err := rpt.Do(ctx, func() error {
		attempt++
		if err := c.limiter.Wait(ctx); err != nil {
			return &Error{Kind: KindCanceled, Err: err}
		}
		attemptCtx := ctx
		if c.config.Timeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, c.config.Timeout)
			defer cancel()
		}
		err := fn(attemptCtx)
		if err != nil && attempt < c.config.Retries && isTemporary(err) {
			lgr.Printf("[WARN] llm %s attempt %d failed, retrying: %v", op, attempt, err)
		}
		return err
	}, errPermanent)
	if err == nil {
		return nil
	}

	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr
	}
	if ctx.Err() != nil {
		return &Error{Kind: KindCanceled, Err: ctx.Err()}
	}
	return &Error{Kind: KindTransport, Err: err}
}

// wrapError converts go-openai errors to *Error with a kind used for retry decisions
func wrapError(err error) *Error {
	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	switch {
	case errors.Is(err, context.Canceled):
		return &Error{Kind: KindCanceled, Err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &Error{Kind: KindTimeout, Err: err}
	case status == http.StatusTooManyRequests:
		return &Error{Kind: KindRateLimit, StatusCode: status, Err: err}
	case status >= 500:
		return &Error{Kind: KindServer, StatusCode: status, Err: err}
	case status > 0:
		return &Error{Kind: KindRequest, StatusCode: status, Err: err}
	default:
		return &Error{Kind: KindTransport, Err: err}
	}
}
