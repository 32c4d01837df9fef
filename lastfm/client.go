// Package lastfm is a typed client for the Last.fm web API.
//
// A Client owns (or borrows) a session.Session. Requests are cached through
// the session's cache.Store unless a call opts out with WithoutCache, API
// error payloads surface as *APIError, and every response is normalized into
// the typed records in types.go.
package lastfm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sydlexius/lastfm-client/cache"
	"github.com/sydlexius/lastfm-client/internal/logging"
	"github.com/sydlexius/lastfm-client/session"
)

// Defaults applied by New.
const (
	DefaultBaseURL   = "https://ws.audioscrobbler.com/2.0"
	DefaultCacheTTL  = time.Hour
	DefaultCachePath = "./.cache/lastfm/cache.db"
	DefaultUserAgent = "lastfm-client/1.0"
)

// Params are the query parameters of one API call. Nil values, including
// nil *string, are dropped. Strings are sent verbatim, integers in base 10
// and booleans as 0/1.
type Params map[string]any

// RawResponse is a decoded JSON response object. Numbers are json.Number.
type RawResponse map[string]any

// Options configures a Client.
type Options struct {
	// APIKey is required.
	APIKey string

	// BaseURL defaults to DefaultBaseURL.
	BaseURL string

	// CacheTTL is how long responses stay cached. Defaults to
	// DefaultCacheTTL.
	CacheTTL time.Duration

	// Session, when set, is used as-is and never closed by the Client.
	Session session.Session

	// Store backs the session created by Start. When nil, Start opens a
	// SQLite store at CachePath and closes it again in Close.
	Store cache.Store

	// CachePath defaults to DefaultCachePath.
	CachePath string

	// Headers are sent on every request of a session created by Start.
	// Defaults to a User-Agent of DefaultUserAgent.
	Headers http.Header

	// HTTPClient is the transport of a session created by Start.
	HTTPClient *http.Client

	Logger *slog.Logger
}

// Client issues Last.fm API calls. It is safe for concurrent use; calls share
// the session and its connection pool without extra locking.
type Client struct {
	apiKey     string
	endpoint   string
	ttl        time.Duration
	cachePath  string
	store      cache.Store
	headers    http.Header
	httpClient *http.Client
	logger     *slog.Logger

	mu         sync.RWMutex
	session    session.Session
	external   bool
	ownedStore io.Closer
}

// New validates opts and returns a Client. No I/O happens until Start,
// unless opts.Session is supplied, in which case the Client is ready
// immediately.
func New(opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, errors.New("lastfm: API key is required")
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	cachePath := opts.CachePath
	if cachePath == "" {
		cachePath = DefaultCachePath
	}
	headers := opts.Headers.Clone()
	if headers == nil {
		headers = http.Header{}
	}
	if headers.Get("User-Agent") == "" {
		headers.Set("User-Agent", DefaultUserAgent)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Client{
		apiKey:     opts.APIKey,
		endpoint:   strings.TrimRight(baseURL, "/") + "/",
		ttl:        ttl,
		cachePath:  cachePath,
		store:      opts.Store,
		headers:    headers,
		httpClient: opts.HTTPClient,
		logger:     logger.With(slog.String("component", "lastfm")),
		session:    opts.Session,
		external:   opts.Session != nil,
	}, nil
}

// Start creates the client's own cached session if none was supplied.
// Calling it again is a no-op.
func (c *Client) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != nil {
		return nil
	}

	store := c.store
	if store == nil {
		s, err := cache.OpenSQLiteStore(ctx, c.cachePath)
		if err != nil {
			return fmt.Errorf("opening cache store: %w", err)
		}
		store = s
		c.ownedStore = s
	}

	c.session = session.NewCachedSession(store, c.ttl,
		session.WithHTTPClient(c.httpClient),
		session.WithHeaders(c.headers),
		session.WithCacheable(cacheable),
		session.WithLogger(c.logger),
	)
	c.logger.Debug("session started", slog.Duration("ttl", c.ttl))
	return nil
}

// Close releases a session created by Start, along with the store Start
// opened. A supplied session is left untouched. Close is idempotent.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.external || c.session == nil {
		return nil
	}

	var errs []error
	if err := c.session.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing session: %w", err))
	}
	if c.ownedStore != nil {
		if err := c.ownedStore.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing cache store: %w", err))
		}
		c.ownedStore = nil
	}
	c.session = nil
	return errors.Join(errs...)
}

// Use starts the client, runs fn and closes the client on every exit path,
// panics included. A Close error is joined with fn's error.
func (c *Client) Use(ctx context.Context, fn func(context.Context, *Client) error) (err error) {
	if err := c.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if cerr := c.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()
	return fn(ctx, c)
}

// Request performs one API call and returns the decoded response object.
// With useCache false the call bypasses the cache for this call only: it is
// always fetched from the network and does not replace a cached entry.
func (c *Client) Request(ctx context.Context, params Params, useCache bool) (RawResponse, error) {
	c.mu.RLock()
	sess := c.session
	c.mu.RUnlock()
	if sess == nil {
		return nil, ErrNotStarted
	}

	query := c.buildQuery(params)
	method := query.Get("method")

	c.logger.Debug("requesting",
		slog.String("method", method),
		slog.String("params", redact(query).Encode()),
		slog.Bool("use_cache", useCache),
	)

	if !useCache {
		ctx = session.WithCacheDisabled(ctx)
	}
	body, err := sess.Get(ctx, c.endpoint, query)
	if err != nil {
		return nil, &TransportError{Method: method, Cause: err}
	}

	raw, err := decode(body)
	if err != nil {
		return nil, &TransportError{Method: method, Cause: err}
	}

	if _, ok := raw["error"]; ok {
		err := parseAPIError(raw)
		c.logger.Debug("api error", slog.String("method", method), slog.Any("error", err))
		return nil, err
	}
	return raw, nil
}

// buildQuery drops nil params and adds api_key and format last, so they
// always override caller values of the same name.
func (c *Client) buildQuery(params Params) url.Values {
	q := url.Values{}
	for k, v := range params {
		if s, ok := encodeParam(v); ok {
			q.Set(k, s)
		}
	}
	q.Set("api_key", c.apiKey)
	q.Set("format", "json")
	return q
}

func encodeParam(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, true
	case *string:
		if t == nil {
			return "", false
		}
		return *t, true
	case bool:
		if t {
			return "1", true
		}
		return "0", true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case fmt.Stringer:
		return t.String(), true
	default:
		return fmt.Sprint(t), true
	}
}

func redact(q url.Values) url.Values {
	out := make(url.Values, len(q))
	for k, v := range q {
		out[k] = v
	}
	out.Set("api_key", "REDACTED")
	return out
}

// decode parses body as exactly one JSON object.
func decode(body []byte) (RawResponse, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw RawResponse
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if raw == nil {
		return nil, errors.New("decoding response: body is not a JSON object")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("decoding response: trailing data after JSON object")
	}
	return raw, nil
}

// cacheable rejects API error payloads and bodies that are not JSON objects.
func cacheable(body []byte) bool {
	var probe struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return false
	}
	return probe.Error == nil
}
