package quotes

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) RecordPrice(ctx context.Context, symbol string, price decimal.Decimal) error {
	args := m.Called(ctx, symbol, price)
	return args.Error(0)
}

func TestArchive_Lookup(t *testing.T) {
	ctx := context.Background()
	quote := Quote{Symbol: "AAPL", Name: "Apple Inc", Price: decimal.NewFromInt(50)}

	t.Run("records fetched price", func(t *testing.T) {
		next := new(mockProvider)
		recorder := new(mockRecorder)
		next.On("Lookup", ctx, "AAPL").Return(quote, nil)
		recorder.On("RecordPrice", ctx, "AAPL", quote.Price).Return(nil)

		got, err := NewArchive(next, recorder, quietLogger()).Lookup(ctx, "AAPL")

		require.NoError(t, err)
		assert.Equal(t, "AAPL", got.Symbol)
		recorder.AssertExpectations(t)
	})

	t.Run("archive failure is ignored", func(t *testing.T) {
		next := new(mockProvider)
		recorder := new(mockRecorder)
		next.On("Lookup", ctx, "AAPL").Return(quote, nil)
		recorder.On("RecordPrice", ctx, "AAPL", quote.Price).Return(errors.New("db down"))

		_, err := NewArchive(next, recorder, quietLogger()).Lookup(ctx, "AAPL")

		assert.NoError(t, err)
	})

	t.Run("lookup failure is not archived", func(t *testing.T) {
		next := new(mockProvider)
		recorder := new(mockRecorder)
		next.On("Lookup", ctx, "NOPE").Return(Quote{}, ErrSymbolNotFound)

		_, err := NewArchive(next, recorder, quietLogger()).Lookup(ctx, "NOPE")

		assert.ErrorIs(t, err, ErrSymbolNotFound)
		recorder.AssertNotCalled(t, "RecordPrice", mock.Anything, mock.Anything, mock.Anything)
	})
}
