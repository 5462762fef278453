package sensor

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// defaultTimeout is the fixed request timeout applied to every fetch.
// A request that has not completed within this window is treated as a connection failure.
const defaultTimeout = 10 * time.Second

// defaultMinInterval is the minimum time between consecutive fetch attempts.
// Updates requested inside this window return the cached result unchanged, which keeps
// frequent host polling from hammering the remote endpoint.
const defaultMinInterval = 60 * time.Second

// RestFetcher struct provides an HTTP-backed mechanism for polling a single resource.
// It encapsulates the resource URL, the request shape (method, fixed POST payload, TLS
// verification), an interval gate that throttles fetch attempts, and the one cached
// Result every attempt overwrites in place.
// All configuration fields are set during construction and are not modified afterward.
type RestFetcher struct {
	resource    string
	method      string
	payload     string
	skipVerify  bool
	timeout     time.Duration
	minInterval time.Duration
	client      *http.Client
	throttle    *Throttle
	logger      zerolog.Logger

	mu     sync.Mutex
	result Result
}

// NewRestFetcher function constructs a fully configured RestFetcher instance.
// It applies all provided functional options, validates the resource and method,
// and initializes default values for any optional configuration not explicitly set.
// The function returns an error only when mandatory configuration is missing or invalid.
func NewRestFetcher(resource string, opts ...options) (*RestFetcher, error) {
	fetcher := &RestFetcher{
		resource:    resource,
		method:      http.MethodGet,
		timeout:     defaultTimeout,
		minInterval: defaultMinInterval,
		logger:      zerolog.New(os.Stderr).With().Timestamp().Logger(),
	}

	for _, opt := range opts {
		opt(fetcher)
	}

	if fetcher.resource == "" {
		return nil, ErrEmptyResource
	}

	if fetcher.method != http.MethodGet && fetcher.method != http.MethodPost {
		return nil, ErrUnsupportedMethod
	}

	if fetcher.client == nil {
		fetcher.client = &http.Client{Timeout: fetcher.timeout}
		if fetcher.skipVerify {
			fetcher.client.Transport = &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			}
		}
	}

	fetcher.throttle = NewThrottle(fetcher.minInterval)

	return fetcher, nil
}

// Update is a method on the RestFetcher struct that conditionally refreshes the cached result.
// The fetch is gated by the minimum interval: if the window since the last completed fetch
// has not elapsed, the call is a no-op and the method returns false with the cache untouched.
// When the gate passes, exactly one HTTP request is issued. A transport-level failure
// (refused connection, unresolvable host, timeout) is recovered locally: it is logged,
// the cache is overwritten with the failure marker, and the method still returns nil.
// Any other error, such as a failure while reading the response body, propagates unhandled.
func (f *RestFetcher) Update(ctx context.Context) (bool, error) {
	return f.throttle.Run(func() error {
		return f.fetch(ctx)
	})
}

// Result returns the cached result of the most recent fetch attempt.
// The cache holds exactly one value at a time and is safe to read concurrently with updates.
func (f *RestFetcher) Result() Result {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.result
}

// fetch performs one HTTP request against the resource and overwrites the cached result.
// GET requests carry no body; POST requests carry the fixed construction-time payload.
// Only the body of the response is consumed — headers and status are not interpreted here,
// matching the contract that steady-state polling trusts whatever the endpoint returns.
func (f *RestFetcher) fetch(ctx context.Context) error {
	// Build the request body only for POST. Passing a nil reader for GET guarantees the
	// request goes out with no body at all rather than an empty one.
	var body io.Reader
	if f.method == http.MethodPost {
		body = strings.NewReader(f.payload)
	}

	req, err := http.NewRequestWithContext(ctx, f.method, f.resource, body)
	if err != nil {
		// A resource that cannot even form a request is a configuration problem, not a
		// transport hiccup. It is not recovered here and propagates to the caller.
		return err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		// Every transport-level failure surfaces from Do as a *url.Error, timeouts
		// included. Degrade to the failure marker and keep polling on the next cycle.
		f.logger.Error().Err(err).Str("resource", f.resource).Msg("no route to resource/endpoint")
		f.store(Failure())
		return nil
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		// A connection that was established but died mid-body is outside the narrow
		// recovery scope above; the error propagates to the caller.
		return err
	}

	f.store(Success(string(raw)))
	return nil
}

// store overwrites the cached result under the fetcher's mutex.
func (f *RestFetcher) store(result Result) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.result = result
}
