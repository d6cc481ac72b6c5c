package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profilePayload struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })

	return mr
}

func TestAsideMissFetchesAndStores(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func() (profilePayload, error) {
		fetches++
		return profilePayload{Username: "inkling", Name: "Ink Ling"}, nil
	}

	got, err := Aside(ctx, ProfileKey("inkling"), ProfileTTL, fetch)
	require.NoError(t, err)
	assert.Equal(t, "inkling", got.Username)
	assert.Equal(t, 1, fetches)

	// Value must now be stored in Redis with the configured TTL.
	raw, err := mr.Get(ProfileKey("inkling"))
	require.NoError(t, err)
	var stored profilePayload
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Equal(t, got, stored)
	assert.Equal(t, ProfileTTL, mr.TTL(ProfileKey("inkling")))

	// Second call is served from cache without another fetch.
	got, err = Aside(ctx, ProfileKey("inkling"), ProfileTTL, fetch)
	require.NoError(t, err)
	assert.Equal(t, "inkling", got.Username)
	assert.Equal(t, 1, fetches)
}

func TestAsideCorruptEntryRefetches(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(ProfileKey("broken"), "{not json"))

	got, err := Aside(ctx, ProfileKey("broken"), ProfileTTL, func() (profilePayload, error) {
		return profilePayload{Username: "broken"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "broken", got.Username)

	raw, err := mr.Get(ProfileKey("broken"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"broken","name":""}`, raw)
}

func TestAsideFetchErrorNotCached(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	wantErr := errors.New("database unavailable")
	_, err := Aside(ctx, ProfileKey("ghost"), ProfileTTL, func() (profilePayload, error) {
		return profilePayload{}, wantErr
	})
	assert.ErrorIs(t, err, wantErr)
	assert.False(t, mr.Exists(ProfileKey("ghost")))
}

func TestAsideWithoutRedisFallsThrough(t *testing.T) {
	SetClient(nil)

	got, err := Aside(context.Background(), ProfileKey("plain"), time.Minute, func() (profilePayload, error) {
		return profilePayload{Username: "plain"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "plain", got.Username)
}

func TestInvalidateRemovesKey(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(PostCommentsKey(42), `[]`))
	InvalidatePostComments(ctx, 42)
	assert.False(t, mr.Exists(PostCommentsKey(42)))

	// Invalidating an unset profile name is a no-op.
	InvalidateProfile(ctx, "")
}
