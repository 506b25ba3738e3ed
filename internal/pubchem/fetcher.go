package pubchem

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ppiankov/compoundscan/internal/cache"
	"github.com/ppiankov/compoundscan/internal/logging"
	"github.com/ppiankov/compoundscan/internal/model"
	"github.com/ppiankov/compoundscan/internal/util"
	"github.com/ppiankov/compoundscan/internal/worker"
)

// fetchSleepFunc is replaceable in tests
var fetchSleepFunc = time.Sleep

// Fetcher performs GETs against PubChem with caching, throttling and optional retries.
// Every failure it returns is a *FetchError.
type Fetcher struct {
	client     *resty.Client
	cache      cache.Cache
	limiter    *worker.Limiter
	robots     *util.RobotsChecker
	logger     *logging.Logger
	maxBytes   int64
	maxRetries int
}

// NewFetcher builds a Fetcher from the HTTP section of the config.
// A nil cache, limiter or logger disables that concern.
func NewFetcher(cfg model.HTTPConfig, c cache.Cache, limiter *worker.Limiter, logger *logging.Logger) *Fetcher {
	if c == nil {
		c = cache.Nop{}
	}
	if logger == nil {
		logger = logging.Noop()
	}

	transport := &http.Transport{
		Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
	}
	if cfg.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}

	client := resty.New().
		SetTransport(transport).
		SetTimeout(cfg.RequestTimeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(3)).
		SetHeader("User-Agent", cfg.UserAgent)

	f := &Fetcher{
		client:     client,
		cache:      c,
		limiter:    limiter,
		logger:     logger,
		maxBytes:   cfg.MaxBodyBytes,
		maxRetries: cfg.MaxRetries,
	}
	if cfg.RespectRobots {
		f.robots = util.NewRobotsChecker(cfg.UserAgent, cfg.RequestTimeout)
	}
	return f
}

// Get returns the body of a 2xx response for rawURL.
// endpoint names the call in errors and diagnostics.
func (f *Fetcher) Get(ctx context.Context, endpoint, rawURL string) ([]byte, error) {
	key := cache.Key(rawURL)
	if body, ok := f.cache.Get(key); ok {
		f.logger.LogFetch(ctx, endpoint, http.StatusOK, len(body), true, 0)
		return body, nil
	}

	if err := f.checkRobots(ctx, endpoint, rawURL); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			fetchSleepFunc(backoff)
		}

		body, err := f.fetchOnce(ctx, endpoint, rawURL)
		if err == nil {
			if setErr := f.cache.Set(key, body, 0); setErr != nil {
				f.logger.DebugContext(ctx, "cache write failed", "endpoint", endpoint, "error", setErr)
			}
			return body, nil
		}
		lastErr = err

		if !isRetryableFetchError(ctx, err) {
			return nil, err
		}
	}
	return nil, lastErr
}

func (f *Fetcher) fetchOnce(ctx context.Context, endpoint, rawURL string) ([]byte, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, rawURL); err != nil {
			return nil, &FetchError{Kind: Transport, Endpoint: endpoint, Err: fmt.Errorf("rate limit: %w", err)}
		}
	}

	start := time.Now()
	resp, err := f.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(rawURL)
	if err != nil {
		return nil, &FetchError{Kind: Transport, Endpoint: endpoint, Err: err}
	}
	raw := resp.RawBody()
	defer func() { _ = raw.Close() }()

	body, err := f.readBody(raw)
	if err != nil {
		return nil, &FetchError{Kind: Transport, Endpoint: endpoint, Err: err}
	}
	f.logger.LogFetch(ctx, endpoint, resp.StatusCode(), len(body), false, time.Since(start))

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		fe := &FetchError{Kind: HTTPStatus, Endpoint: endpoint, StatusCode: resp.StatusCode()}
		if msg := faultMessage(body); msg != "" {
			fe.Err = errors.New(msg)
		}
		return nil, fe
	}
	return body, nil
}

// readBody reads at most maxBytes; a longer body is an error rather than a silent truncation
func (f *Fetcher) readBody(r io.Reader) ([]byte, error) {
	if f.maxBytes <= 0 {
		return io.ReadAll(r)
	}
	body, err := io.ReadAll(io.LimitReader(r, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, fmt.Errorf("read body: exceeds %d bytes", f.maxBytes)
	}
	return body, nil
}

func (f *Fetcher) checkRobots(ctx context.Context, endpoint, rawURL string) error {
	if f.robots == nil {
		return nil
	}
	allowed, delay, err := f.robots.CanFetch(ctx, rawURL)
	if err != nil {
		return &FetchError{Kind: Transport, Endpoint: endpoint, Err: err}
	}
	if !allowed {
		return &FetchError{Kind: Transport, Endpoint: endpoint, Err: errors.New("disallowed by robots.txt")}
	}
	if delay > 0 && f.limiter != nil {
		if u, err := url.Parse(rawURL); err == nil {
			f.limiter.SetCrawlDelay(u.Host, delay)
		}
	}
	return nil
}

// isRetryableFetchError is true for 429, 5xx and transport failures not caused by ctx
func isRetryableFetchError(ctx context.Context, err error) bool {
	if err == nil || ctx.Err() != nil {
		return false
	}
	var fe *FetchError
	if !errors.As(err, &fe) {
		return false
	}
	return fe.Retryable()
}
