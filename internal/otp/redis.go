package otp

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL bounds the lifetime of a pending code in the Redis store.
// The original system kept codes forever; ten minutes is plenty for a
// signup handshake and prevents stale entries from accumulating.
const DefaultTTL = 10 * time.Minute

// RedisStore keeps pending codes in Redis so they survive process
// restarts and are shared across replicas.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore returns a store backed by the given client. A zero ttl
// falls back to DefaultTTL.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, prefix: "otp:", ttl: ttl}
}

// Issue generates a code and stores it under the email key, replacing any
// pending one and resetting the TTL.
func (s *RedisStore) Issue(ctx context.Context, email string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, s.prefix+email, code, s.ttl).Err(); err != nil {
		return "", err
	}
	return code, nil
}

// verifyScript compares and deletes in one round trip: the entry is
// removed only on an exact match, so a mistyped submission leaves the
// pending code intact while a successful one stays single-use even under
// concurrent submissions.
var verifyScript = redis.NewScript(`
	local pending = redis.call('GET', KEYS[1])
	if not pending then
		return -1
	end
	if pending == ARGV[1] then
		redis.call('DEL', KEYS[1])
		return 1
	end
	return 0
`)

// Verify consumes the pending code for the email when the submission
// matches exactly; a mismatch or an unknown email returns ErrCodeMismatch
// and does not disturb the entry.
func (s *RedisStore) Verify(ctx context.Context, email, code string) error {
	n, err := verifyScript.Run(ctx, s.client, []string{s.prefix + email}, code).Int()
	if err != nil {
		return err
	}
	if n != 1 {
		return ErrCodeMismatch
	}
	return nil
}
