package event_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mpjsonapi/pkg/event"
)

func TestManager_Dispatch(t *testing.T) {
	t.Parallel()

	t.Run("listeners run in registration order", func(t *testing.T) {
		t.Parallel()
		m := event.NewManager()

		var calls []string
		m.On("saved", func(ctx context.Context, e *event.Event) error {
			calls = append(calls, "first")
			return nil
		})
		m.On("saved", func(ctx context.Context, e *event.Event) error {
			calls = append(calls, "second")
			return nil
		})

		require.NoError(t, m.Dispatch(context.Background(), event.New("saved", nil, nil)))
		assert.Equal(t, []string{"first", "second"}, calls)
	})

	t.Run("listener error is returned unmodified", func(t *testing.T) {
		t.Parallel()
		m := event.NewManager()
		boom := errors.New("storage offline")

		secondCalled := false
		m.On("uploaded", func(ctx context.Context, e *event.Event) error { return boom })
		m.On("uploaded", func(ctx context.Context, e *event.Event) error {
			secondCalled = true
			return nil
		})

		err := m.Dispatch(context.Background(), event.New("uploaded", nil, nil))
		assert.Same(t, boom, err)
		assert.False(t, secondCalled)
	})

	t.Run("stop skips remaining listeners", func(t *testing.T) {
		t.Parallel()
		m := event.NewManager()

		secondCalled := false
		m.On("saved", func(ctx context.Context, e *event.Event) error {
			e.Stop()
			return nil
		})
		m.On("saved", func(ctx context.Context, e *event.Event) error {
			secondCalled = true
			return nil
		})

		e := event.New("saved", nil, nil)
		require.NoError(t, m.Dispatch(context.Background(), e))
		assert.True(t, e.IsStopped())
		assert.False(t, secondCalled)
	})

	t.Run("no listeners is not an error", func(t *testing.T) {
		t.Parallel()
		m := event.NewManager()
		assert.NoError(t, m.Dispatch(context.Background(), event.New("nobody", nil, nil)))
	})

	t.Run("invalid events", func(t *testing.T) {
		t.Parallel()
		m := event.NewManager()
		assert.ErrorIs(t, m.Dispatch(context.Background(), nil), event.ErrNilEvent)
		assert.ErrorIs(t, m.Dispatch(context.Background(), event.New("", nil, nil)), event.ErrEmptyName)
	})

	t.Run("listener registered during dispatch runs next time", func(t *testing.T) {
		t.Parallel()
		m := event.NewManager()

		lateCalls := 0
		m.On("tick", func(ctx context.Context, e *event.Event) error {
			m.On("tick", func(ctx context.Context, e *event.Event) error {
				lateCalls++
				return nil
			})
			return nil
		})

		require.NoError(t, m.Dispatch(context.Background(), event.New("tick", nil, nil)))
		assert.Equal(t, 0, lateCalls)

		require.NoError(t, m.Dispatch(context.Background(), event.New("tick", nil, nil)))
		assert.Equal(t, 1, lateCalls)
	})

	t.Run("closed manager rejects dispatch", func(t *testing.T) {
		t.Parallel()
		m := event.NewManager()
		m.On("saved", func(ctx context.Context, e *event.Event) error { return nil })

		require.NoError(t, m.Close())
		require.NoError(t, m.Close())

		assert.False(t, m.Has("saved"))
		assert.ErrorIs(t, m.Dispatch(context.Background(), event.New("saved", nil, nil)), event.ErrManagerClosed)
	})
}

func TestManager_On(t *testing.T) {
	t.Parallel()

	m := event.NewManager()
	m.On("saved", nil)
	m.On("", func(ctx context.Context, e *event.Event) error { return nil })
	assert.False(t, m.Has("saved"))

	m.On("saved", func(ctx context.Context, e *event.Event) error { return nil })
	assert.True(t, m.Has("saved"))
}

func TestManager_ConcurrentRegistration(t *testing.T) {
	t.Parallel()

	m := event.NewManager()
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		count int
	)

	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.On("saved", func(ctx context.Context, e *event.Event) error {
				mu.Lock()
				count++
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	require.NoError(t, m.Dispatch(context.Background(), event.New("saved", nil, nil)))
	assert.Equal(t, 50, count)
}

func TestDataAs(t *testing.T) {
	t.Parallel()

	e := event.New("processed", nil, map[string]any{"fileUrl": "http://x/a.png"})

	fields, ok := event.DataAs[map[string]any](e)
	require.True(t, ok)
	assert.Equal(t, "http://x/a.png", fields["fileUrl"])

	_, ok = event.DataAs[string](e)
	assert.False(t, ok)

	_, ok = event.DataAs[string](nil)
	assert.False(t, ok)
}
