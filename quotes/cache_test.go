package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Lookup(ctx context.Context, symbol string) (Quote, error) {
	args := m.Called(ctx, symbol)
	return args.Get(0).(Quote), args.Error(1)
}

func quietLogger() *log.Logger {
	l := log.New()
	l.SetOutput(io.Discard)
	return l
}

func TestCache_Lookup(t *testing.T) {
	ctx := context.Background()
	quote := Quote{Symbol: "AAPL", Name: "Apple Inc", Price: decimal.RequireFromString("189.84")}
	data, err := json.Marshal(quote)
	require.NoError(t, err)

	t.Run("miss fills the cache", func(t *testing.T) {
		rdb, rmock := redismock.NewClientMock()
		next := new(mockProvider)
		cache := NewCache(next, rdb, time.Minute, quietLogger())

		rmock.ExpectGet("stock:AAPL:quote").RedisNil()
		next.On("Lookup", ctx, "AAPL").Return(quote, nil).Once()
		rmock.ExpectSet("stock:AAPL:quote", string(data), time.Minute).SetVal("OK")

		got, err := cache.Lookup(ctx, "aapl")

		require.NoError(t, err)
		assert.Equal(t, "AAPL", got.Symbol)
		next.AssertExpectations(t)
		assert.NoError(t, rmock.ExpectationsWereMet())
	})

	t.Run("hit skips the provider", func(t *testing.T) {
		rdb, rmock := redismock.NewClientMock()
		next := new(mockProvider)
		cache := NewCache(next, rdb, time.Minute, quietLogger())

		rmock.ExpectGet("stock:AAPL:quote").SetVal(string(data))

		got, err := cache.Lookup(ctx, "AAPL")

		require.NoError(t, err)
		assert.Equal(t, "Apple Inc", got.Name)
		assert.True(t, got.Price.Equal(quote.Price))
		next.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything)
	})

	t.Run("redis down falls through", func(t *testing.T) {
		rdb, rmock := redismock.NewClientMock()
		next := new(mockProvider)
		cache := NewCache(next, rdb, time.Minute, quietLogger())

		rmock.ExpectGet("stock:AAPL:quote").SetErr(errors.New("connection refused"))
		next.On("Lookup", ctx, "AAPL").Return(quote, nil).Once()
		rmock.ExpectSet("stock:AAPL:quote", string(data), time.Minute).SetErr(errors.New("connection refused"))

		got, err := cache.Lookup(ctx, "AAPL")

		require.NoError(t, err)
		assert.Equal(t, "AAPL", got.Symbol)
		next.AssertExpectations(t)
	})

	t.Run("provider errors are not cached", func(t *testing.T) {
		rdb, rmock := redismock.NewClientMock()
		next := new(mockProvider)
		cache := NewCache(next, rdb, time.Minute, quietLogger())

		rmock.ExpectGet("stock:NOPE:quote").RedisNil()
		next.On("Lookup", ctx, "NOPE").Return(Quote{}, ErrSymbolNotFound).Once()

		_, err := cache.Lookup(ctx, "NOPE")

		assert.ErrorIs(t, err, ErrSymbolNotFound)
		assert.NoError(t, rmock.ExpectationsWereMet())
	})

	t.Run("zero ttl disables caching", func(t *testing.T) {
		rdb, rmock := redismock.NewClientMock()
		next := new(mockProvider)
		cache := NewCache(next, rdb, 0, quietLogger())

		next.On("Lookup", ctx, "AAPL").Return(quote, nil).Once()

		_, err := cache.Lookup(ctx, "AAPL")

		require.NoError(t, err)
		assert.NoError(t, rmock.ExpectationsWereMet())
	})
}
