package sensor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Config is the inbound configuration schema for one REST sensor.
// Parsing it from any host format is out of scope here; callers hand over the
// already-decoded values and Setup applies the documented defaults.
// The struct is treated as immutable once passed to Setup.
type Config struct {
	// Resource is the URL being polled. Required, must carry an http or https schema.
	Resource string
	// Method selects GET or POST. Defaults to GET when empty.
	Method string
	// Payload is the fixed body sent with every POST request. Ignored for GET.
	Payload string
	// SkipTLSVerify disables certificate verification. The default (false) verifies,
	// the inverse of the usual verify_ssl=true flag so the zero value is the safe
	// choice.
	SkipTLSVerify bool
	// Name labels the published reading. Defaults to DefaultName when empty.
	Name string
	// UnitOfMeasurement optionally tags the reading with a unit.
	UnitOfMeasurement string
	// ValueTemplate is an optional dot-separated key path handed to the default JSON
	// renderer, e.g. "data.value". Empty means the raw body is published as-is.
	ValueTemplate string
}

// withDefaults returns a copy of the config with the documented defaults applied.
func (c Config) withDefaults() Config {
	if c.Method == "" {
		c.Method = http.MethodGet
	}
	if c.Name == "" {
		c.Name = DefaultName
	}
	return c
}

// Setup validates the configuration, preflights the resource once, and on success
// constructs the fetcher and sensor and registers the sensor with the registry.
// Extra fetcher options are applied after those derived from the config, which is the
// seam tests use to shrink timeouts and intervals.
//
// Setup failures follow a stricter taxonomy than steady-state polling: a malformed
// resource URL, an unreachable endpoint, or a non-2xx preflight status each abort
// setup with a logged diagnostic and create no sensor. Once a sensor exists, the same
// connectivity problems merely degrade its state to the sentinel.
func Setup(ctx context.Context, cfg Config, registry *Registry, opts ...options) (*Sensor, error) {
	if registry == nil {
		return nil, ErrEmptyRegistry
	}

	cfg = cfg.withDefaults()

	logger := zerolog.New(os.Stderr).With().Timestamp().Str("sensor", cfg.Name).Logger()

	if cfg.Resource == "" {
		logger.Error().Msg("missing resource in configuration")
		return nil, ErrEmptyResource
	}

	target, err := url.Parse(cfg.Resource)
	if err != nil || (target.Scheme != "http" && target.Scheme != "https") || target.Host == "" {
		logger.Error().Str("resource", cfg.Resource).Msg("missing resource or schema in configuration, add http:// to your URL")
		return nil, fmt.Errorf("%w: %q", ErrMalformedResource, cfg.Resource)
	}

	fetcherOpts := append([]options{
		WithMethod(cfg.Method),
		WithPayload(cfg.Payload),
		WithInsecureSkipVerify(cfg.SkipTLSVerify),
	}, opts...)

	fetcher, err := NewRestFetcher(cfg.Resource, fetcherOpts...)
	if err != nil {
		return nil, err
	}

	if err := preflight(ctx, fetcher, logger); err != nil {
		return nil, err
	}

	var renderer Renderer
	if cfg.ValueTemplate != "" {
		renderer = NewJSONRenderer(cfg.ValueTemplate)
	}

	s, err := NewSensor(ctx, fetcher, cfg.Name, cfg.UnitOfMeasurement, renderer)
	if err != nil {
		return nil, err
	}

	if err := registry.Add(s); err != nil {
		return nil, err
	}

	return s, nil
}

// preflight issues one validation request before any sensor exists.
// Unlike steady-state fetches it does inspect the status code: the endpoint must answer
// with a 2xx for setup to proceed, and the numeric code is logged when it does not.
func preflight(ctx context.Context, f *RestFetcher, logger zerolog.Logger) error {
	var body io.Reader
	if f.method == http.MethodPost {
		body = strings.NewReader(f.payload)
	}

	req, err := http.NewRequestWithContext(ctx, f.method, f.resource, body)
	if err != nil {
		logger.Error().Err(err).Msg("missing resource or schema in configuration, add http:// to your URL")
		return fmt.Errorf("%w: %v", ErrMalformedResource, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		logger.Error().Err(err).Str("resource", f.resource).Msg("no route to resource/endpoint, please check the URL in the configuration file")
		return fmt.Errorf("%w: %v", ErrResourceUnreachable, err)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused by the first real fetch.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Error().Int("status", resp.StatusCode).Msg("response status is not ok")
		return fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	return nil
}
