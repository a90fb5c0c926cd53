package cache_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/frameart/storefront/internal/cache"
	"github.com/frameart/storefront/internal/config"
	"github.com/frameart/storefront/internal/models"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catalogPage struct {
	Query string                  `json:"query"`
	Page  int                     `json:"page"`
	Items []models.CatalogArtwork `json:"items,omitempty"`
}

func setup(t *testing.T) (cache.Cache, redismock.ClientMock, *config.CacheConfig) {
	t.Helper()

	client, mock := redismock.NewClientMock()
	cfg := &config.CacheConfig{DefaultTTL: 10 * time.Minute}

	return cache.NewRedisCache(client, cfg), mock, cfg
}

func TestRedisCacheGet(t *testing.T) {
	key := cache.Key(cache.CatalogKeyPrefix, "search:ocean:1")
	stored := catalogPage{
		Query: "ocean",
		Page:  1,
		Items: []models.CatalogArtwork{{ID: "ph-1", Title: "Low tide"}},
	}
	storedJSON, err := json.Marshal(stored)
	require.NoError(t, err)

	tests := []struct {
		name      string
		arrange   func(mock redismock.ClientMock)
		wantFound bool
		want      catalogPage
		wantErr   string
	}{
		{
			name:      "Success - Cached page decoded",
			arrange:   func(mock redismock.ClientMock) { mock.ExpectGet(key).SetVal(string(storedJSON)) },
			wantFound: true,
			want:      stored,
		},
		{
			name:    "Success - Miss is not an error",
			arrange: func(mock redismock.ClientMock) { mock.ExpectGet(key).SetErr(redis.Nil) },
		},
		{
			name:    "Failure - Redis unavailable",
			arrange: func(mock redismock.ClientMock) { mock.ExpectGet(key).SetErr(errors.New("connection refused")) },
			wantErr: "failed to get key " + key + " from redis",
		},
		{
			name: "Success - Undecodable entry is dropped as a miss",
			arrange: func(mock redismock.ClientMock) {
				mock.ExpectGet(key).SetVal(`{"query":"ocean","page":"one"}`)
				mock.ExpectDel(key).SetVal(1)
			},
		},
		{
			name: "Failure - Undecodable entry cannot be dropped",
			arrange: func(mock redismock.ClientMock) {
				mock.ExpectGet(key).SetVal(`[1,2,3]`)
				mock.ExpectDel(key).SetErr(errors.New("READONLY"))
			},
			wantErr: "failed to drop stale cache entry " + key,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			redisCache, mock, _ := setup(t)
			tc.arrange(mock)

			var got catalogPage

			// Act
			found, err := redisCache.Get(t.Context(), key, &got)

			// Assert
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
			} else {
				require.NoError(t, err)
			}

			if tc.wantFound {
				assert.Equal(t, tc.want, got)
			}

			assert.Equal(t, tc.wantFound, found)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRedisCacheSet(t *testing.T) {
	key := cache.Key(cache.CatalogKeyPrefix, "photo:ph-1")
	item := models.CatalogArtwork{ID: "ph-1", Title: "Low tide"}
	itemJSON, err := json.Marshal(item)
	require.NoError(t, err)

	t.Run("Success - Explicit TTL", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)
		mock.ExpectSet(key, itemJSON, time.Minute).SetVal("OK")

		// Act
		err := redisCache.Set(t.Context(), key, item, time.Minute)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Non-positive TTL uses default", func(t *testing.T) {
		for _, ttl := range []time.Duration{0, -time.Second} {
			// Arrange
			redisCache, mock, cfg := setup(t)
			mock.ExpectSet(key, itemJSON, cfg.DefaultTTL).SetVal("OK")

			// Act
			err := redisCache.Set(t.Context(), key, item, ttl)

			// Assert
			require.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		}
	})

	t.Run("Failure - Value cannot be encoded", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)

		// Act
		err := redisCache.Set(t.Context(), key, map[string]any{"fn": func() {}}, time.Minute)

		// Assert
		var typeErr *json.UnsupportedTypeError

		require.ErrorAs(t, err, &typeErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis error is wrapped", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)
		redisErr := errors.New("OOM command not allowed")
		mock.ExpectSet(key, itemJSON, time.Minute).SetErr(redisErr)

		// Act
		err := redisCache.Set(t.Context(), key, item, time.Minute)

		// Assert
		require.ErrorIs(t, err, redisErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisCacheDelete(t *testing.T) {
	key := cache.Key(cache.CatalogKeyPrefix, "photo:ph-1")

	t.Run("Success", func(t *testing.T) {
		redisCache, mock, _ := setup(t)
		mock.ExpectDel(key).SetVal(1)

		require.NoError(t, redisCache.Delete(t.Context(), key))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis error is wrapped", func(t *testing.T) {
		redisCache, mock, _ := setup(t)
		redisErr := errors.New("READONLY")
		mock.ExpectDel(key).SetErr(redisErr)

		err := redisCache.Delete(t.Context(), key)

		require.ErrorIs(t, err, redisErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Close leaves the shared client open", func(t *testing.T) {
		redisCache, _, _ := setup(t)

		assert.NoError(t, redisCache.Close())
	})
}

func TestRedisCacheNamespace(t *testing.T) {
	// Arrange
	client, mock := redismock.NewClientMock()
	redisCache := cache.NewRedisCache(client, &config.CacheConfig{DefaultTTL: time.Minute, Namespace: "v2"})

	key := cache.Key(cache.CatalogKeyPrefix, "photo:ph-1")
	item := models.CatalogArtwork{ID: "ph-1", Title: "Low tide"}
	itemJSON, err := json.Marshal(item)
	require.NoError(t, err)

	mock.ExpectSet("v2:catalog:photo:ph-1", itemJSON, time.Minute).SetVal("OK")
	mock.ExpectGet("v2:catalog:photo:ph-1").SetVal(string(itemJSON))
	mock.ExpectDel("v2:catalog:photo:ph-1").SetVal(1)

	// Act
	setErr := redisCache.Set(t.Context(), key, item, 0)

	var got models.CatalogArtwork
	found, getErr := redisCache.Get(t.Context(), key, &got)
	delErr := redisCache.Delete(t.Context(), key)

	// Assert
	require.NoError(t, setErr)
	require.NoError(t, getErr)
	require.NoError(t, delErr)
	assert.True(t, found)
	assert.Equal(t, item, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKey(t *testing.T) {
	assert.Equal(t, "catalog:search:ocean:1", cache.Key(cache.CatalogKeyPrefix, "search:ocean:1"))
	assert.Equal(t, "guest:abc:cart", cache.Key(cache.GuestKeyPrefix, "abc:cart"))
	assert.Equal(t, "revoked:jti-1", cache.Key(cache.RevokedTokenKeyPrefix, "jti-1"))
	assert.Equal(t, "login_attempts:", cache.Key(cache.LoginAttemptsKeyPrefix, ""))
}
