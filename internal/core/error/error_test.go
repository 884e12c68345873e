package errx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessageFormatting(t *testing.T) {
	e := New(errors.New("boom"), http.StatusInternalServerError, "something failed")
	assert.Equal(t, "something failed: boom", e.Error())

	e = New(nil, http.StatusInternalServerError, "something failed")
	assert.Equal(t, "something failed", e.Error())
}

func TestIsKindThroughWrapping(t *testing.T) {
	base := NewKind(errors.New("deadline"), KindProviderTimeout, http.StatusGatewayTimeout, "timed out")
	wrapped := fmt.Errorf("invoking search: %w", base)

	assert.True(t, IsKind(wrapped, KindProviderTimeout))
	assert.False(t, IsKind(wrapped, KindUnknownTool))
	assert.False(t, IsKind(errors.New("plain"), KindProviderTimeout))
	assert.False(t, IsKind(nil, KindProviderTimeout))
}

func TestUnknownTool(t *testing.T) {
	err := UnknownTool("bogus_tool")
	assert.True(t, IsKind(err, KindUnknownTool))
	assert.Contains(t, err.Error(), "bogus_tool")
	assert.Equal(t, http.StatusBadRequest, err.Status)
}

func TestWrapRedis(t *testing.T) {
	e := WrapRedis(redis.Nil)
	require.NotNil(t, e)
	assert.Equal(t, http.StatusNotFound, e.Status)
	assert.Equal(t, RedisNotFoundMessage, e.Message)
	assert.True(t, errors.Is(e, redis.Nil))

	e = WrapRedis(errors.New("connection refused"))
	require.NotNil(t, e)
	assert.Equal(t, http.StatusBadGateway, e.Status)
	assert.Equal(t, RedisErrorMessage, e.Message)
	assert.True(t, IsKind(e, KindRedis))
}
