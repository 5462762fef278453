package sensor

import "errors"

// ErrEmptyResource is returned when attempting to create a fetcher without providing a resource URL.
// The resource is the endpoint being polled and is mandatory — construction fails if it is missing.
var ErrEmptyResource = errors.New("resource is empty")

// ErrUnsupportedMethod is returned when a fetcher is configured with an HTTP method other than GET or POST.
// Only these two methods are supported for polling a resource; anything else is rejected at construction.
var ErrUnsupportedMethod = errors.New("unsupported http method")

// ErrEmptyFetcher is returned when attempting to create a sensor without providing a fetcher.
// The fetcher supplies the cached result the sensor publishes — construction fails if it is missing.
var ErrEmptyFetcher = errors.New("fetcher is empty")

// ErrEmptyRegistry is returned when an operation that publishes sensors is given a nil registry.
// The registry is the in-process stand-in for the host entity registry and is mandatory.
var ErrEmptyRegistry = errors.New("registry is empty")

// ErrDuplicateSensor is returned when registering a sensor under a name that is already taken.
// Sensor names identify readings to consumers, so the registry enforces uniqueness.
var ErrDuplicateSensor = errors.New("sensor already registered")

// ErrEmptyRedisClient is returned when attempting to create a reading store without providing a Redis client.
// The Redis client is mandatory for all store operations — construction fails if it is missing.
var ErrEmptyRedisClient = errors.New("redis client is empty")

// ErrMalformedResource is returned by Setup when the configured resource is not a valid http or https URL.
// It signals a configuration error: the URL is missing a schema or cannot be parsed at all.
var ErrMalformedResource = errors.New("missing resource or schema in configuration")

// ErrResourceUnreachable is returned by Setup when the preflight request cannot reach the resource.
// It covers refused connections, unresolvable hosts and timeouts observed before the sensor exists.
var ErrResourceUnreachable = errors.New("no route to resource/endpoint")

// ErrBadStatus is returned by Setup when the preflight request completes with a non-2xx status.
// The numeric status code is attached to the wrapping error for diagnostics.
var ErrBadStatus = errors.New("response status is not ok")
