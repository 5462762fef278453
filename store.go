package sensor

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// defaultKeyPrefix namespaces reading keys when the caller does not provide a prefix.
const defaultKeyPrefix = "sensor.rest"

// Store defines the contract for sinks that persist published readings outside the
// process, making the current state of every sensor visible to external consumers.
// Implementations must tolerate being called once per sensor per poll cycle.
type Store interface {
	// Save persists one reading snapshot. The reading's name identifies the slot being
	// overwritten; only the latest reading per sensor is retained.
	Save(ctx context.Context, reading Reading) error
}

// RedisStore is the built-in Store backed by Redis. Each reading is serialized as JSON
// and written to a key derived from the configured prefix and the sensor name, so the
// store holds exactly one current reading per sensor at any time.
type RedisStore struct {
	rdb    redis.UniversalClient
	prefix string
}

// NewRedisStore constructs a reading store on top of the given Redis client.
// The client is mandatory; an empty prefix falls back to the package default.
func NewRedisStore(rdb redis.UniversalClient, prefix string) (*RedisStore, error) {
	if rdb == nil {
		return nil, ErrEmptyRedisClient
	}

	if prefix == "" {
		prefix = defaultKeyPrefix
	}

	return &RedisStore{rdb: rdb, prefix: prefix}, nil
}

// Save method serializes the reading as JSON and overwrites the sensor's key in Redis.
// Readings never expire on their own — the key always reflects the last published state,
// the same overwrite-in-place lifecycle the fetcher cache follows.
func (s *RedisStore) Save(ctx context.Context, reading Reading) error {
	payload, err := json.Marshal(reading)
	if err != nil {
		return err
	}

	return s.rdb.Set(ctx, s.key(reading.Name), payload, 0).Err()
}

// key derives the Redis key holding the current reading of the named sensor.
func (s *RedisStore) key(name string) string {
	return s.prefix + "::" + name
}
