package middleware

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const defaultIdempotencyTTL = 24 * time.Hour

var (
	_ IdempotencyCache = (*MemoryCache)(nil)
	_ IdempotencyCache = RedisCache{}
)

// An IdempotencyRecord is data from an HTTP response
// that can be reused when another request
// matches the same idempotency key.
type IdempotencyRecord struct {
	Body    []byte `json:"body"`
	ReqHash []byte `json:"reqHash"`
	Status  int    `json:"status"`
	URI     string `json:"uri"`
}

// NewIdempotencyRecord constructs an IdempotencyRecord for a request not yet answered.
func NewIdempotencyRecord(uri string, reqHash []byte) IdempotencyRecord {
	return IdempotencyRecord{URI: uri, ReqHash: reqHash}
}

// An IdempotencyCache can store responses paired to idempotency keys.
//
// SetNX pairs rec to key only if key holds no unexpired record,
// reporting whether it did; of concurrent callers at most one succeeds.
type IdempotencyCache interface {
	Get(ctx context.Context, key string) (IdempotencyRecord, bool)
	Set(ctx context.Context, key string, rec IdempotencyRecord)
	SetNX(ctx context.Context, key string, rec IdempotencyRecord) (bool, error)
	Delete(ctx context.Context, key string)
}

// A MemoryCache stores IdempotencyRecords in a map.
//
// Server restarts reset this map;
// prefer a RedisCache when running more than one server.
type MemoryCache struct {
	mu  sync.Mutex
	ttl time.Duration
	val map[string]memoryCacheVal
}

type memoryCacheVal struct {
	rec IdempotencyRecord
	at  time.Time
}

// NewMemoryCache constructs a *MemoryCache keeping records for ttl,
// or 24 hours when ttl is not positive.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}

	return &MemoryCache{ttl: ttl, val: make(map[string]memoryCacheVal)}
}

// Get retrieves the record paired to key.
func (c *MemoryCache) Get(ctx context.Context, key string) (IdempotencyRecord, bool) {
	if key == "" || ctx.Err() != nil {
		return IdempotencyRecord{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.val[key]
	if !ok || time.Since(v.at) > c.ttl {
		return IdempotencyRecord{}, false
	}

	return v.rec, true
}

// Set overwrites the record paired to key.
//
// For each call to Set, expired keys are evicted.
func (c *MemoryCache) Set(ctx context.Context, key string, rec IdempotencyRecord) {
	if ctx.Err() != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for k, v := range c.val {
		if now.Sub(v.at) > c.ttl {
			delete(c.val, k)
		}
	}

	at := now
	if prev, ok := c.val[key]; ok {
		at = prev.at
	}

	rec.Body = append([]byte(nil), rec.Body...)
	c.val[key] = memoryCacheVal{rec: rec, at: at}
}

// SetNX pairs rec to key unless key already holds an unexpired record.
func (c *MemoryCache) SetNX(ctx context.Context, key string, rec IdempotencyRecord) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.val[key]; ok && time.Since(v.at) <= c.ttl {
		return false, nil
	}

	rec.Body = append([]byte(nil), rec.Body...)
	c.val[key] = memoryCacheVal{rec: rec, at: time.Now()}

	return true, nil
}

// Delete removes the record paired to key.
func (c *MemoryCache) Delete(_ context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.val, key)
}

// A RedisCache connects to a Redis backend
// for the purposes of caching idempotent responses.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache constructs a RedisCache with the options passed in,
// keeping records for 24 hours.
func NewRedisCache(opts *redis.Options) RedisCache {
	return RedisCache{client: redis.NewClient(opts), ttl: defaultIdempotencyTTL}
}

// Close releases the connections to the Redis backend.
func (c RedisCache) Close() error { return c.client.Close() }

// Get retrieves the record paired to key from the connected Redis backend.
func (c RedisCache) Get(ctx context.Context, key string) (IdempotencyRecord, bool) {
	b, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		return IdempotencyRecord{}, false
	}

	var rec IdempotencyRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return IdempotencyRecord{}, false
	}

	return rec, true
}

// Set saves the record by pairing it to the key in the Redis backend.
func (c RedisCache) Set(ctx context.Context, key string, rec IdempotencyRecord) {
	b, err := json.Marshal(rec)
	if err != nil {
		return
	}

	c.client.Set(ctx, c.key(key), b, c.ttl)
}

// SetNX saves the record only if the key is absent from the Redis backend.
func (c RedisCache) SetNX(ctx context.Context, key string, rec IdempotencyRecord) (bool, error) {
	b, err := json.Marshal(rec)
	if err != nil {
		return false, err
	}

	return c.client.SetNX(ctx, c.key(key), b, c.ttl).Result()
}

// Delete removes the key from the Redis backend.
func (c RedisCache) Delete(ctx context.Context, key string) { c.client.Del(ctx, c.key(key)) }

func (c RedisCache) key(k string) string { return "switchback:idempotency:" + k }
