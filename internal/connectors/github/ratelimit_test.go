package github

import (
	"context"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func rateResponse(remaining int, reset time.Time) *http.Response {
	h := http.Header{}
	h.Set(HeaderRateRemaining, strconv.Itoa(remaining))
	h.Set(HeaderRateReset, strconv.FormatInt(reset.Unix(), 10))
	return &http.Response{Header: h}
}

func TestRateLimiter_UpdateFromResponse(t *testing.T) {
	r := NewRateLimiterWithRate(rate.Inf)
	assert.Equal(t, GitHubRateLimit, r.Remaining())

	reset := time.Unix(1_900_000_000, 0)
	r.UpdateFromResponse(rateResponse(42, reset))
	assert.Equal(t, 42, r.Remaining())
	assert.True(t, r.ResetTime().Equal(reset))

	// Missing or malformed headers leave the state alone.
	r.UpdateFromResponse(&http.Response{Header: http.Header{HeaderRateRemaining: {"many"}}})
	r.UpdateFromResponse(nil)
	assert.Equal(t, 42, r.Remaining())
}

func TestRateLimiter_Wait(t *testing.T) {
	t.Run("quota available", func(t *testing.T) {
		r := NewRateLimiterWithRate(rate.Inf)
		require.NoError(t, r.Wait(context.Background()))
	})

	t.Run("quota exhausted waits for reset", func(t *testing.T) {
		r := NewRateLimiterWithRate(rate.Inf)
		r.UpdateFromResponse(rateResponse(0, time.Now().Add(time.Hour)))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		assert.ErrorIs(t, r.Wait(ctx), context.DeadlineExceeded)
	})

	t.Run("reset already passed", func(t *testing.T) {
		r := NewRateLimiterWithRate(rate.Inf)
		r.UpdateFromResponse(rateResponse(0, time.Now().Add(-time.Minute)))
		require.NoError(t, r.Wait(context.Background()))
	})
}
