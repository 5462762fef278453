package sensor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// TestNewSensor verifies sensor construction and the immediate first publish.
// A sensor must come back with real state already derived from one synchronous fetch,
// and must refuse to exist without a fetcher behind it.
func TestNewSensor(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	// NilFetcher verifies that construction fails without a fetcher.
	t.Run("NilFetcher", func(t *testing.T) {
		s, err := NewSensor(ctx, nil, "test", "", nil)
		assert.ErrorIs(t, err, ErrEmptyFetcher, "Nil fetcher must be rejected")
		assert.Nil(t, s, "No sensor may be returned on a construction error")
	})

	// ImmediateFirstPublish verifies the first state is never a placeholder.
	t.Run("ImmediateFirstPublish", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("42.5"))
		}))
		defer server.Close()

		fetcher, err := NewRestFetcher(server.URL, WithLogger(zerolog.Nop()))
		assert.NoError(t, err, "Failed to create rest fetcher")

		s, err := NewSensor(ctx, fetcher, "power", "W", nil)
		assert.NoError(t, err, "Failed to create sensor")
		assert.NotNil(t, s, "Expected sensor instance to be initialized and not nil")

		// The state must already reflect the fetched body before any explicit update.
		assert.Equal(t, "42.5", s.State(), "First published state must come from the initial fetch")
		assert.Equal(t, "power", s.Name(), "Sensor must carry its configured name")
		assert.Equal(t, "W", s.UnitOfMeasurement(), "Sensor must carry its configured unit")
		assert.False(t, s.LastUpdated().IsZero(), "Initial publish must stamp the reading")
	})

	// EmptyNameDefaults verifies the fallback to the package default name.
	t.Run("EmptyNameDefaults", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		fetcher, err := NewRestFetcher(server.URL, WithLogger(zerolog.Nop()))
		assert.NoError(t, err, "Failed to create rest fetcher")

		s, err := NewSensor(ctx, fetcher, "", "", nil)
		assert.NoError(t, err, "Failed to create sensor")
		assert.Equal(t, DefaultName, s.Name(), "Empty name must fall back to the default")
	})
}

// TestSensorUpdate verifies how the published state is derived from the cached result.
// It covers raw publication without a renderer, template extraction from a JSON body,
// the default when rendering yields nothing, degradation to the sentinel on failure,
// and the idempotence of updates inside the throttle window.
func TestSensorUpdate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	// RawBodyWithoutRenderer verifies the body is published as-is when no template is set.
	// No JSON parsing and no trimming may happen on this path.
	t.Run("RawBodyWithoutRenderer", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(" 42.5\n"))
		}))
		defer server.Close()

		fetcher, err := NewRestFetcher(server.URL, WithLogger(zerolog.Nop()))
		assert.NoError(t, err, "Failed to create rest fetcher")

		s, err := NewSensor(ctx, fetcher, "raw", "", nil)
		assert.NoError(t, err, "Failed to create sensor")
		assert.Equal(t, " 42.5\n", s.State(), "Raw body must be published without trimming")
	})

	// RenderedValue verifies template extraction from a JSON body.
	t.Run("RenderedValue", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"value": 10}`))
		}))
		defer server.Close()

		fetcher, err := NewRestFetcher(server.URL, WithLogger(zerolog.Nop()))
		assert.NoError(t, err, "Failed to create rest fetcher")

		s, err := NewSensor(ctx, fetcher, "templated", "", NewJSONRenderer("value"))
		assert.NoError(t, err, "Failed to create sensor")
		assert.Equal(t, "10", s.State(), "Rendered state must be the extracted scalar")
	})

	// RendererYieldsNothing verifies the default when the template extracts no value.
	t.Run("RendererYieldsNothing", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"other": 1}`))
		}))
		defer server.Close()

		fetcher, err := NewRestFetcher(server.URL, WithLogger(zerolog.Nop()))
		assert.NoError(t, err, "Failed to create rest fetcher")

		s, err := NewSensor(ctx, fetcher, "templated", "", NewJSONRenderer("value"))
		assert.NoError(t, err, "Failed to create sensor")
		assert.Equal(t, Sentinel, s.State(), "An empty render must publish the default")
	})

	// FailureSentinel verifies the sentinel is published verbatim on a poll failure and
	// that no error escapes Update.
	t.Run("FailureSentinel", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		fetcher, err := NewRestFetcher(server.URL,
			WithLogger(zerolog.Nop()),
			// A renderer is configured on purpose: it must be bypassed for failures.
			WithMinInterval(0))
		assert.NoError(t, err, "Failed to create rest fetcher")

		s, err := NewSensor(ctx, fetcher, "down", "", NewJSONRenderer("value"))
		assert.NoError(t, err, "Sensor construction must survive a failing endpoint")
		assert.Equal(t, Sentinel, s.State(), "Failure must publish the sentinel verbatim")

		// A further update against the dead endpoint must stay quiet as well.
		assert.NoError(t, s.Update(ctx), "No exception may escape a polling failure")
		assert.Equal(t, Sentinel, s.State(), "State must remain the sentinel")
	})

	// ThrottledUpdatesAreIdempotent verifies idempotence inside the window:
	// two updates in quick succession must publish identical readings, the last-updated
	// timestamp included, because the second call never touches the cache.
	t.Run("ThrottledUpdatesAreIdempotent", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("42.5"))
		}))
		defer server.Close()

		fetcher, err := NewRestFetcher(server.URL,
			WithMinInterval(time.Hour),
			WithLogger(zerolog.Nop()))
		assert.NoError(t, err, "Failed to create rest fetcher")

		s, err := NewSensor(ctx, fetcher, "idempotent", "", nil)
		assert.NoError(t, err, "Failed to create sensor")

		first := s.Reading()

		assert.NoError(t, s.Update(ctx), "Throttled update must not fail")
		second := s.Reading()

		assert.Equal(t, first, second, "Readings inside the window must be identical, timestamp included")
	})
}
