package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/tsma-calendar-client/pkg/config"
)

func TestOptions(t *testing.T) {
	opts := Options(config.RedisConfig{Host: "cache.local", Port: 6380, Password: "pw", DB: 3})
	assert.Equal(t, "cache.local:6380", opts.Addr)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 3, opts.DB)
	assert.Equal(t, 2, opts.PoolSize)
}
