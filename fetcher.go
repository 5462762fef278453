package sensor

import "context"

// Fetcher is the interface defining a contract for types that poll a remote data source
// and keep exactly one cached result. It decouples the sensor from the concrete transport,
// which allows tests to inject a fake and alternative transports to be added later.
// The interface is intentionally minimal: one gated update plus access to the cache.
type Fetcher interface {
	// Update conditionally refreshes the cached result from the remote source.
	// It returns true when a fetch attempt was actually performed and false when the
	// call was suppressed by the minimum-interval gate, in which case the cached
	// result is returned unchanged by Result. Recovered transport failures are stored
	// in the cache and reported as a nil error; only unanticipated errors propagate.
	Update(ctx context.Context) (bool, error)

	// Result returns the cached result of the most recent fetch attempt: the raw
	// response body on success or the failure marker after a transport-level error.
	Result() Result
}
