package sensor

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// options type defines the functional options pattern used to configure a RestFetcher instance.
type options func(f *RestFetcher)

// WithMethod option selects the HTTP method used to poll the resource.
// Only GET and POST are supported; the choice is validated during construction.
// When this option is omitted the fetcher polls with GET.
func WithMethod(method string) options {
	return func(f *RestFetcher) {
		f.method = method
	}
}

// WithPayload option assigns the fixed body carried by every POST request.
// The payload is set once at construction and never varies per call.
// It is ignored for GET fetchers, whose requests carry no body at all.
func WithPayload(payload string) options {
	return func(f *RestFetcher) {
		f.payload = payload
	}
}

// WithInsecureSkipVerify option disables TLS certificate verification for the resource.
// Certificates are verified by default; this option exists for endpoints behind
// self-signed certificates and should be used deliberately.
// It has no effect when a custom HTTP client is supplied via WithHTTPClient.
func WithInsecureSkipVerify(skip bool) options {
	return func(f *RestFetcher) {
		f.skipVerify = skip
	}
}

// WithTimeout option overrides the fixed request timeout applied to every fetch.
// A fetch exceeding the timeout is treated exactly like a connection failure:
// logged, cached as the failure marker, and never raised to the caller.
// When this option is omitted the fetcher uses its default of ten seconds.
func WithTimeout(timeout time.Duration) options {
	return func(f *RestFetcher) {
		f.timeout = timeout
	}
}

// WithMinInterval option configures the minimum time between consecutive fetches.
// Calls arriving inside the window are no-ops that leave the cached result unchanged.
// When this option is omitted the fetcher uses its default window of sixty seconds.
func WithMinInterval(interval time.Duration) options {
	return func(f *RestFetcher) {
		f.minInterval = interval
	}
}

// WithHTTPClient option replaces the HTTP client the fetcher would otherwise build.
// The supplied client is used as-is, including its own timeout and TLS settings,
// which makes this option the seam tests use to inject short timeouts.
func WithHTTPClient(client *http.Client) options {
	return func(f *RestFetcher) {
		f.client = client
	}
}

// WithLogger option assigns the logger used for recovered fetch failures.
// When this option is omitted the fetcher logs to stderr with timestamps.
func WithLogger(logger zerolog.Logger) options {
	return func(f *RestFetcher) {
		f.logger = logger
	}
}

// pollerOptions type defines the functional options pattern used to configure a Poller instance.
type pollerOptions func(p *Poller)

// WithStore option attaches a reading store the poller mirrors every reading into.
// Without a store the poller only refreshes the sensors in its registry.
func WithStore(store Store) pollerOptions {
	return func(p *Poller) {
		p.store = store
	}
}

// WithPollInterval option configures the length of the poller's update cycle.
// When this option is omitted the poller uses its default of thirty seconds.
func WithPollInterval(interval time.Duration) pollerOptions {
	return func(p *Poller) {
		p.interval = interval
	}
}

// WithPollLogger option assigns the logger used for per-sensor update and store errors.
// When this option is omitted the poller logs to stderr with timestamps.
func WithPollLogger(logger zerolog.Logger) pollerOptions {
	return func(p *Poller) {
		p.logger = logger
	}
}
