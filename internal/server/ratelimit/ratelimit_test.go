package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBucket_BurstThenBlocked(t *testing.T) {
	// 2 requests per hour, burst 2: third request must be refused.
	bucket := newTokenBucket(2, 2.0/3600)
	assert.True(t, bucket.allow())
	assert.True(t, bucket.allow())
	assert.False(t, bucket.allow())
}

func TestTokenBucket_Refills(t *testing.T) {
	// 100 tokens per second: after draining, a short wait restores capacity.
	bucket := newTokenBucket(1, 100)
	assert.True(t, bucket.allow())
	assert.False(t, bucket.allow())

	time.Sleep(20 * time.Millisecond)
	assert.True(t, bucket.allow())
}

func TestLimiter_DisabledAllowsEverything(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := limiter.Allow("1.2.3.4", "/jobs", "POST")
		assert.True(t, allowed)
	}
}

func TestLimiter_EnforcesEndpointLimit(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{},
		Blacklist:     map[string]bool{},
		EndpointConfigs: []EndpointConfig{
			{Path: "/admin/backfill-embeddings", Method: "POST", Limit: 2, Window: time.Hour, Burst: 1},
		},
	})
	defer limiter.Stop()

	allowed, info := limiter.Allow("1.2.3.4", "/admin/backfill-embeddings", "POST")
	assert.True(t, allowed)
	assert.Equal(t, 2, info.Limit)

	allowed, info = limiter.Allow("1.2.3.4", "/admin/backfill-embeddings", "POST")
	assert.False(t, allowed)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{},
		Blacklist:     map[string]bool{},
		EndpointConfigs: []EndpointConfig{
			{Path: "/jobs", Method: "POST", Limit: 1, Window: time.Hour, Burst: 1},
		},
	})
	defer limiter.Stop()

	allowed, _ := limiter.Allow("1.1.1.1", "/jobs", "POST")
	require.True(t, allowed)
	allowed, _ = limiter.Allow("1.1.1.1", "/jobs", "POST")
	require.False(t, allowed)

	allowed, _ = limiter.Allow("2.2.2.2", "/jobs", "POST")
	assert.True(t, allowed)
}

func TestLimiter_WhitelistAndBlacklist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Hour,
		Whitelist:     map[string]bool{"10.0.0.1": true},
		Blacklist:     map[string]bool{"10.0.0.2": true},
	})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := limiter.Allow("10.0.0.1", "/jobs", "POST")
		assert.True(t, allowed)
	}

	allowed, _ := limiter.Allow("10.0.0.2", "/jobs", "POST")
	assert.False(t, allowed)
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/jobs", Method: "POST", Limit: 30, Window: time.Minute},
		{Path: "/intake/sessions/", Method: "POST", Limit: 60, Window: time.Minute},
	}

	exact := MatchEndpoint("/jobs", "POST", configs)
	require.NotNil(t, exact)
	assert.Equal(t, 30, exact.Limit)

	prefix := MatchEndpoint("/intake/sessions/abc/messages", "POST", configs)
	require.NotNil(t, prefix)
	assert.Equal(t, 60, prefix.Limit)

	assert.Nil(t, MatchEndpoint("/freelancers", "GET", configs))

	health := MatchEndpoint("/health", "GET", configs)
	require.NotNil(t, health)
	assert.Equal(t, 0, health.Limit)

	// Method must match for prefixes
	assert.Nil(t, MatchEndpoint("/intake/sessions/abc/messages", "GET", configs))
}

func TestParseIPList(t *testing.T) {
	assert.Empty(t, parseIPList(""))
	list := parseIPList(" 1.1.1.1, 2.2.2.2 ,")
	assert.True(t, list["1.1.1.1"])
	assert.True(t, list["2.2.2.2"])
	assert.Len(t, list, 2)
}
