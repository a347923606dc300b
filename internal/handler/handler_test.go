package handler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuncAdapter(t *testing.T) {
	h := Func(func(_ context.Context, params map[string]string) (Result, error) {
		return Result{"symbol": params["symbol"], "price": 3521.4}, nil
	})

	res, err := h.Execute(context.Background(), map[string]string{"symbol": "TCS"})
	require.NoError(t, err)
	assert.Equal(t, "TCS", res["symbol"])
	assert.Equal(t, 3521.4, res["price"])
}

func TestRegistryExecute(t *testing.T) {
	reg := NewRegistry()
	reg.Register("stock_price", Func(func(context.Context, map[string]string) (Result, error) {
		return Result{"price": 100}, nil
	}))

	res, err := reg.Execute(context.Background(), "stock_price", nil)
	require.NoError(t, err)
	assert.Equal(t, 100, res["price"])
}

func TestRegistryNotRegistered(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Execute(context.Background(), "fund_nav", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotRegistered)
	assert.Contains(t, err.Error(), "fund_nav")
}

func TestRegistryWrapsHandlerError(t *testing.T) {
	cause := errors.New("upstream API returned 503")
	reg := NewRegistry()
	reg.Register("stock_price", Func(func(context.Context, map[string]string) (Result, error) {
		return nil, cause
	}))

	_, err := reg.Execute(context.Background(), "stock_price", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, cause)
}

func TestRegistryTreatsContextErrorAsUnavailable(t *testing.T) {
	reg := NewRegistry()
	reg.Register("slow", Func(func(ctx context.Context, _ map[string]string) (Result, error) {
		return nil, ctx.Err()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := reg.Execute(ctx, "slow", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRegistryReplacesBinding(t *testing.T) {
	reg := NewRegistry()
	reg.Register("x", Func(func(context.Context, map[string]string) (Result, error) {
		return Result{"v": 1}, nil
	}))
	reg.Register("x", Func(func(context.Context, map[string]string) (Result, error) {
		return Result{"v": 2}, nil
	}))

	res, err := reg.Execute(context.Background(), "x", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res["v"])
	assert.Equal(t, 1, reg.Len())
}

func TestRegistryIntentsSorted(t *testing.T) {
	reg := NewRegistry()
	for _, intent := range []string{"sip_calculator", "fund_nav", "stock_price"} {
		reg.Register(intent, Func(func(context.Context, map[string]string) (Result, error) {
			return nil, nil
		}))
	}
	assert.Equal(t, []string{"fund_nav", "sip_calculator", "stock_price"}, reg.Intents())
}
