package redisstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hawker/internal/adapters/out/redisstore"
	"hawker/internal/core/domain/model/kernel"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCmdable keeps values in memory and records TTLs.
type fakeCmdable struct {
	values   map[string]string
	counters map[string]int64
	ttls     map[string]time.Duration
	incrErr  error

	scriptCached bool
	evalShaCalls int
}

func newFakeCmdable() *fakeCmdable {
	return &fakeCmdable{
		values:   map[string]string{},
		counters: map[string]int64{},
		ttls:     map[string]time.Duration{},
	}
}

func (f *fakeCmdable) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeCmdable) SetNX(ctx context.Context, key string, value any, ttl time.Duration) *redis.BoolCmd {
	if _, ok := f.values[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.values[key] = value.(string)
	f.ttls[key] = ttl
	return redis.NewBoolResult(true, nil)
}

func (f *fakeCmdable) Incr(ctx context.Context, key string) *redis.IntCmd {
	if f.incrErr != nil {
		return redis.NewIntResult(0, f.incrErr)
	}
	f.counters[key]++
	return redis.NewIntResult(f.counters[key], nil)
}

func (f *fakeCmdable) Expire(ctx context.Context, key string, ttl time.Duration) *redis.BoolCmd {
	f.ttls[key] = ttl
	return redis.NewBoolResult(true, nil)
}

// replyError satisfies redis.Error so the client treats it as a server reply.
type replyError string

func (e replyError) Error() string { return string(e) }

func (replyError) RedisError() {}

// The fake only knows the compare-and-delete script, so every eval runs it.
func (f *fakeCmdable) compareAndDelete(keys []string, args []interface{}) *redis.Cmd {
	if current, ok := f.values[keys[0]]; ok && current == args[0] {
		delete(f.values, keys[0])
		return redis.NewCmdResult(int64(1), nil)
	}
	return redis.NewCmdResult(int64(0), nil)
}

func (f *fakeCmdable) Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	return f.compareAndDelete(keys, args)
}

func (f *fakeCmdable) EvalSha(ctx context.Context, sha1 string, keys []string, args ...interface{}) *redis.Cmd {
	f.evalShaCalls++
	if !f.scriptCached {
		return redis.NewCmdResult(nil, replyError("NOSCRIPT No matching script. Please use EVAL."))
	}
	return f.compareAndDelete(keys, args)
}

func (f *fakeCmdable) EvalRO(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	return redis.NewCmdResult(nil, errors.New("not supported"))
}

func (f *fakeCmdable) EvalShaRO(ctx context.Context, sha1 string, keys []string, args ...interface{}) *redis.Cmd {
	return redis.NewCmdResult(nil, errors.New("not supported"))
}

func (f *fakeCmdable) ScriptExists(ctx context.Context, hashes ...string) *redis.BoolSliceCmd {
	return redis.NewBoolSliceResult([]bool{f.scriptCached}, nil)
}

func (f *fakeCmdable) ScriptLoad(ctx context.Context, script string) *redis.StringCmd {
	f.scriptCached = true
	return redis.NewStringResult("sha", nil)
}

func TestClient_FixedWindowAllow(t *testing.T) {
	ctx := context.Background()
	fake := newFakeCmdable()
	client := redisstore.NewWithCmdable(fake)

	allowed, count, err := client.FixedWindowAllow(ctx, "scope", 2, time.Second)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.EqualValues(t, 1, count)
	assert.Equal(t, time.Second, fake.ttls["hawker:rate_limit:scope"])

	delete(fake.ttls, "hawker:rate_limit:scope")
	allowed, count, err = client.FixedWindowAllow(ctx, "scope", 2, time.Second)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.EqualValues(t, 2, count)
	assert.NotContains(t, fake.ttls, "hawker:rate_limit:scope", "ttl is only set on the first hit")

	allowed, _, err = client.FixedWindowAllow(ctx, "scope", 2, time.Second)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestClient_Keys(t *testing.T) {
	client := redisstore.NewWithCmdable(newFakeCmdable())
	assert.Equal(t, "hawker:rate_limit:collect:abc", client.RateLimitKey("collect:abc"))
	assert.Equal(t, "hawker:lock:expire", client.LockKey(" expire "))
}

func TestClient_NotInitialized(t *testing.T) {
	var client redisstore.Client
	require.Error(t, client.Ping(context.Background()))
	_, err := client.DelIfEquals(context.Background(), "k", "v")
	require.Error(t, err)
	require.NoError(t, client.Close())
}

func TestClient_DelIfEquals(t *testing.T) {
	ctx := context.Background()
	fake := newFakeCmdable()
	client := redisstore.NewWithCmdable(fake)

	ok, err := client.SetNX(ctx, "hawker:lock:order_expiry", "replica-b", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	// a stale owner leaves the key alone
	deleted, err := client.DelIfEquals(ctx, "hawker:lock:order_expiry", "replica-a")
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, "replica-b", fake.values["hawker:lock:order_expiry"])

	// the current owner removes it; the script falls back to EVAL on NOSCRIPT
	deleted, err = client.DelIfEquals(ctx, "hawker:lock:order_expiry", "replica-b")
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.NotContains(t, fake.values, "hawker:lock:order_expiry")
	assert.Equal(t, 2, fake.evalShaCalls)
}

func TestCollectLimiter_Allow(t *testing.T) {
	ctx := context.Background()
	limiter := redisstore.NewCollectLimiter(redisstore.NewWithCmdable(newFakeCmdable()), 3, time.Minute)
	orderID := kernel.NewUUID()

	for range 3 {
		require.NoError(t, limiter.Allow(ctx, orderID))
	}
	require.ErrorIs(t, limiter.Allow(ctx, orderID), redisstore.ErrTooManyAttempts)

	require.NoError(t, limiter.Allow(ctx, kernel.NewUUID()), "limits are per order")
}

func TestCollectLimiter_Defaults(t *testing.T) {
	ctx := context.Background()
	limiter := redisstore.NewCollectLimiter(redisstore.NewWithCmdable(newFakeCmdable()), 0, 0)
	orderID := kernel.NewUUID()

	for range redisstore.DefaultCollectMaxAttempts {
		require.NoError(t, limiter.Allow(ctx, orderID))
	}
	require.ErrorIs(t, limiter.Allow(ctx, orderID), redisstore.ErrTooManyAttempts)
}

func TestCollectLimiter_StoreFailure(t *testing.T) {
	fake := newFakeCmdable()
	fake.incrErr = errors.New("connection refused")
	limiter := redisstore.NewCollectLimiter(redisstore.NewWithCmdable(fake), 3, time.Minute)

	require.EqualError(t, limiter.Allow(context.Background(), kernel.NewUUID()), "connection refused")
}
