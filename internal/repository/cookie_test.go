package repository

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-client/pkg/cookie"
	"github.com/rocketscienceinc/tictactoe-client/testing/suite"
)

func TestCookieRepository_SetAndGet(t *testing.T) {
	t.Run("Get_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		cookieRepo := NewCookieRepository(st.Storage, "player1", time.Hour)

		// Given: a stored access token
		err := cookieRepo.Set(ctx, cookie.AccessToken, "token-123")
		require.NoError(t, err)

		// When: Get is called with the cookie name
		value, err := cookieRepo.Get(ctx, cookie.AccessToken)

		// Then: the stored value is returned
		require.NoError(t, err)
		assert.Equal(t, "token-123", value)
	})

	t.Run("Get_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		cookieRepo := NewCookieRepository(st.Storage, "player1", time.Hour)

		// When: Get is called for a cookie that was never set
		value, err := cookieRepo.Get(ctx, cookie.SessionID)

		// Then: ErrCookieNotFound is returned
		require.ErrorIs(t, err, ErrCookieNotFound)
		assert.Empty(t, value)
	})

	t.Run("Set_RefreshesTTL", func(t *testing.T) {
		ctx, st := suite.New(t)

		cookieRepo := NewCookieRepository(st.Storage, "player1", time.Hour)

		require.NoError(t, cookieRepo.Set(ctx, cookie.SessionID, "7"))

		// Then: the jar expires
		ttl, err := st.Storage.TTL(ctx, "cookies:player1").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
	})
}

func TestCookieRepository_Header(t *testing.T) {
	ctx, st := suite.New(t)

	cookieRepo := NewCookieRepository(st.Storage, "player1", time.Hour)
	otherRepo := NewCookieRepository(st.Storage, "player2", time.Hour)

	// Given: cookies in two profiles
	require.NoError(t, cookieRepo.Set(ctx, cookie.AccessToken, "a b"))
	require.NoError(t, cookieRepo.Set(ctx, cookie.UnfinishedGameID, "3"))
	require.NoError(t, otherRepo.Set(ctx, cookie.AccessToken, "other"))

	// When: the header of the first profile is rendered
	header, err := cookieRepo.Header(ctx)

	// Then: it only carries that profile and the accessor can read it
	require.NoError(t, err)
	assert.Equal(t, "a b", cookie.Get(header, cookie.AccessToken))
	assert.Equal(t, "3", cookie.Get(header, cookie.UnfinishedGameID))
	assert.Empty(t, cookie.Get(header, cookie.SessionID))
}

func TestCookieRepository_Clear(t *testing.T) {
	ctx, st := suite.New(t)

	cookieRepo := NewCookieRepository(st.Storage, "player1", 0)

	require.NoError(t, cookieRepo.Set(ctx, cookie.AccessToken, "token"))

	// When: the jar is cleared
	require.NoError(t, cookieRepo.Clear(ctx))

	// Then: nothing is left
	header, err := cookieRepo.Header(ctx)
	require.NoError(t, err)
	assert.Empty(t, header)
}

func TestCookieRepository_SetRejectsSeparator(t *testing.T) {
	// Given: a jar whose redis is never reached
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { _ = client.Close() })

	cookieRepo := NewCookieRepository(client, "player1", time.Hour)

	// When: a value that would split the cookie header is stored
	err := cookieRepo.Set(context.Background(), cookie.SessionID, "7; unfinishedGameID=1")

	// Then: it is refused before any command is sent
	require.ErrorIs(t, err, ErrInvalidCookieValue)
}
