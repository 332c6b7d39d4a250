package agent

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/GriffinCanCode/AgentOS/uirender/internal/infrastructure/resilience"
)

var (
	ErrTimeout       = errors.New("agent job timed out")
	ErrJobFailed     = errors.New("agent job failed")
	ErrUnknownStatus = errors.New("unknown agent job status")
	ErrUpstream      = errors.New("agent request rejected")
	ErrMissingJobID  = errors.New("agent returned no job id")
)

// Fetcher produces a raw UI specification for a prompt
type Fetcher interface {
	Fetch(ctx context.Context, prompt string) (any, error)
}

// Recorder receives job outcomes
type Recorder interface {
	RecordAgentJob(status string, duration time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) RecordAgentJob(string, time.Duration) {}

// Job statuses reported by the agent
const (
	StatusQueued    = "queued"
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Job is the agent's view of a submitted prompt
type Job struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Config configures the agent client
type Config struct {
	BaseURL      string
	PollInterval time.Duration
	Timeout      time.Duration
	// RPS limits outgoing requests; zero or less disables the limit
	RPS          float64
	MaxRetries   int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

// DefaultConfig returns production settings for baseURL
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:      baseURL,
		PollInterval: time.Second,
		Timeout:      2 * time.Minute,
		RPS:          5,
		MaxRetries:   3,
		RetryWaitMin: 500 * time.Millisecond,
		RetryWaitMax: 10 * time.Second,
	}
}

// Client submits prompts to the agent and polls for the result
type Client struct {
	cfg      Config
	http     *resty.Client
	limiter  *rate.Limiter
	breaker  *resilience.Breaker
	logger   *zap.Logger
	recorder Recorder
}

var _ Fetcher = (*Client)(nil)

// Option configures a Client
type Option func(*Client)

// WithLogger sets the client logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRecorder sets the job outcome recorder
func WithRecorder(r Recorder) Option {
	return func(c *Client) {
		if r != nil {
			c.recorder = r
		}
	}
}

// New creates an agent client
func New(cfg Config, opts ...Option) *Client {
	defaults := DefaultConfig(cfg.BaseURL)
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaults.PollInterval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryWaitMin <= 0 {
		cfg.RetryWaitMin = defaults.RetryWaitMin
	}
	if cfg.RetryWaitMax < cfg.RetryWaitMin {
		cfg.RetryWaitMax = cfg.RetryWaitMin
	}

	c := &Client{
		cfg:      cfg,
		logger:   zap.NewNop(),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.Logger = retryLogger{c.logger.Sugar()}
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	c.http = resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTransport(retryClient.StandardClient().Transport).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "uirender-agent/1.0").
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal)

	if cfg.RPS > 0 {
		burst := int(cfg.RPS)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RPS), burst)
	} else {
		c.limiter = rate.NewLimiter(rate.Inf, 0)
	}

	c.breaker = resilience.New("agent", resilience.Settings{
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to resilience.State) {
			c.logger.Warn("Agent circuit breaker changed state",
				zap.String("breaker", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
		},
	})

	return c
}

// BreakerState reports the state of the agent circuit breaker
func (c *Client) BreakerState() resilience.State {
	return c.breaker.State()
}

// Fetch submits prompt and waits for the job result
func (c *Client) Fetch(ctx context.Context, prompt string) (any, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	job, err := c.submit(ctx, prompt)
	if err == nil {
		c.logger.Debug("Agent job submitted", zap.String("job_id", job.ID), zap.String("status", job.Status))
		job, err = c.await(ctx, job)
	}

	status := outcome(err)
	c.recorder.RecordAgentJob(status, time.Since(start))
	if err != nil {
		c.logger.Warn("Agent job did not complete",
			zap.String("outcome", status),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return nil, err
	}
	c.logger.Info("Agent job completed",
		zap.String("job_id", job.ID),
		zap.Duration("elapsed", time.Since(start)),
	)
	return job.Result, nil
}

func (c *Client) submit(ctx context.Context, prompt string) (*Job, error) {
	job, err := c.send(ctx, http.MethodPost, "/jobs", map[string]string{"prompt": prompt})
	if err != nil {
		return nil, err
	}
	if job.ID == "" {
		return nil, ErrMissingJobID
	}
	return job, nil
}

// await polls until the job reaches a terminal status
func (c *Client) await(ctx context.Context, job *Job) (*Job, error) {
	ticker := time.NewTicker(c.cfg.PollInterval)
	defer ticker.Stop()

	id := job.ID
	for {
		switch job.Status {
		case StatusCompleted:
			return job, nil
		case StatusFailed:
			msg := job.Error
			if msg == "" {
				msg = "no error message"
			}
			return nil, fmt.Errorf("%w: job %s: %s", ErrJobFailed, id, msg)
		case StatusQueued, StatusPending, StatusRunning, "":
		default:
			return nil, fmt.Errorf("%w: %q for job %s", ErrUnknownStatus, job.Status, id)
		}

		select {
		case <-ctx.Done():
			return nil, c.contextError(ctx, id)
		case <-ticker.C:
		}

		next, err := c.send(ctx, http.MethodGet, "/jobs/"+url.PathEscape(id), nil)
		if err != nil {
			if ctx.Err() != nil {
				return nil, c.contextError(ctx, id)
			}
			return nil, err
		}
		if next.ID == "" {
			next.ID = id
		}
		job = next
	}
}

func (c *Client) contextError(ctx context.Context, id string) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: job %s after %s", ErrTimeout, id, c.cfg.Timeout)
	}
	return ctx.Err()
}

// send performs one rate-limited request through the breaker
func (c *Client) send(ctx context.Context, method, path string, body any) (*Job, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return nil, c.contextError(ctx, path)
		}
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	return resilience.Call(c.breaker, func() (*Job, error) {
		var job Job
		req := c.http.R().SetContext(ctx).SetResult(&job)
		if body != nil {
			req.SetBody(body)
		}
		resp, err := req.Execute(method, path)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", method, path, err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("%w: %s %s returned %d", ErrUpstream, method, path, resp.StatusCode())
		}
		return &job, nil
	})
}

func outcome(err error) string {
	switch {
	case err == nil:
		return StatusCompleted
	case errors.Is(err, ErrJobFailed):
		return StatusFailed
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "error"
	}
}

// retryLogger adapts zap to the retryablehttp leveled logger
type retryLogger struct {
	s *zap.SugaredLogger
}

func (l retryLogger) Error(msg string, kv ...interface{}) { l.s.Errorw(msg, kv...) }
func (l retryLogger) Warn(msg string, kv ...interface{})  { l.s.Warnw(msg, kv...) }
func (l retryLogger) Info(msg string, kv ...interface{})  { l.s.Debugw(msg, kv...) }
func (l retryLogger) Debug(msg string, kv ...interface{}) { l.s.Debugw(msg, kv...) }
