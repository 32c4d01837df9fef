// Package session provides the HTTP transport used by the Last.fm client: a
// pooled http.Client optionally fronted by a cache.Store.
package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/sydlexius/lastfm-client/cache"
	"github.com/sydlexius/lastfm-client/internal/logging"
)

// maxBodySize bounds how much of a response body is read.
const maxBodySize = 8 << 20

// ErrClosed is returned by Get after Close.
var ErrClosed = errors.New("session: closed")

// Session performs GET requests against an endpoint with query parameters
// and returns the raw response body.
type Session interface {
	Get(ctx context.Context, endpoint string, params url.Values) ([]byte, error)
	Close() error
}

type cacheDisabledKey struct{}

// WithCacheDisabled returns a child context that makes a caching session
// skip its store for calls made with it: the request always goes to the
// network and the response is not stored. Sessions without a cache ignore
// the marker.
func WithCacheDisabled(ctx context.Context) context.Context {
	return context.WithValue(ctx, cacheDisabledKey{}, true)
}

// CacheDisabled reports whether ctx carries the WithCacheDisabled marker.
func CacheDisabled(ctx context.Context) bool {
	v, _ := ctx.Value(cacheDisabledKey{}).(bool)
	return v
}

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	snippet := bytes.TrimSpace(e.Body)
	if len(snippet) > 200 {
		snippet = snippet[:200]
	}
	if len(snippet) == 0 {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, snippet)
}

// CachedSession is a Session that serves repeated requests from a
// cache.Store. Cache hits never touch the network. Concurrent misses for
// the same key share one network fetch.
type CachedSession struct {
	client    *http.Client
	store     cache.Store
	ttl       time.Duration
	headers   http.Header
	cacheable func(body []byte) bool
	logger    *slog.Logger

	group  singleflight.Group
	closed atomic.Bool
}

// Option configures a CachedSession.
type Option func(*CachedSession)

// WithHTTPClient sets the underlying client. Timeouts, TLS and redirects are
// its concern.
func WithHTTPClient(c *http.Client) Option {
	return func(s *CachedSession) {
		if c != nil {
			s.client = c
		}
	}
}

// WithHeaders sets headers sent on every request.
func WithHeaders(h http.Header) Option {
	return func(s *CachedSession) { s.headers = h.Clone() }
}

// WithCacheable sets a predicate deciding whether a successful body may be
// stored. Bodies it rejects are returned to the caller but not cached.
func WithCacheable(fn func(body []byte) bool) Option {
	return func(s *CachedSession) { s.cacheable = fn }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *CachedSession) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewCachedSession creates a session storing successful responses in store
// for ttl. A nil store disables caching entirely.
func NewCachedSession(store cache.Store, ttl time.Duration, opts ...Option) *CachedSession {
	s := &CachedSession{
		client:  &http.Client{Timeout: 30 * time.Second},
		store:   store,
		ttl:     ttl,
		headers: http.Header{},
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(slog.String("component", "session"))
	return s
}

// Get returns the body of GET endpoint?params.
func (s *CachedSession) Get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}

	reqURL := endpoint + "?" + params.Encode()
	if s.store == nil || CacheDisabled(ctx) {
		return s.fetch(ctx, reqURL)
	}

	key := cache.Key(endpoint, params)
	if body, ok := s.lookup(ctx, key); ok {
		return body, nil
	}

	// The shared fetch is detached from the caller that started it so one
	// caller giving up does not fail the others waiting on the same key.
	ch := s.group.DoChan(key, func() (any, error) {
		fctx := context.WithoutCancel(ctx)
		body, err := s.fetch(fctx, reqURL)
		if err != nil {
			return nil, err
		}
		s.save(fctx, key, body)
		return body, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return bytes.Clone(res.Val.([]byte)), nil
	}
}

// Close releases idle pooled connections. The store is not closed; it
// belongs to whoever created it.
func (s *CachedSession) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	s.client.CloseIdleConnections()
	return nil
}

func (s *CachedSession) lookup(ctx context.Context, key string) ([]byte, bool) {
	body, ok, err := s.store.Get(ctx, key)
	if err != nil {
		s.logger.Warn("cache read failed, fetching from network", slog.Any("error", err))
		return nil, false
	}
	if ok {
		s.logger.Debug("cache hit", slog.String("key", key))
	}
	return body, ok
}

func (s *CachedSession) save(ctx context.Context, key string, body []byte) {
	if s.cacheable != nil && !s.cacheable(body) {
		s.logger.Debug("response not cacheable", slog.String("key", key))
		return
	}
	if err := s.store.Put(ctx, key, body, s.ttl); err != nil {
		s.logger.Warn("cache write failed", slog.Any("error", err))
	}
}

func (s *CachedSession) fetch(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for k, vs := range s.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := s.client.Do(req) //nolint:gosec // URL built from configured endpoint + API params
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: body}
	}
	return body, nil
}
