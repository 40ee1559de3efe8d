package queue

import (
	"context"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_FIFO(t *testing.T) {
	q := New[int]()
	for i := range 5 {
		require.NoError(t, q.Put(i))
	}
	assert.Equal(t, 5, q.Len())

	for i := range 5 {
		v, err := q.Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, i, v)
	}
	assert.Equal(t, 0, q.Len())
}

func TestQueue_GetWaitsForPut(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		q := New[string]()
		got := make(chan string, 1)

		go func() {
			v, err := q.Get(t.Context())
			if err == nil {
				got <- v
			}
		}()

		synctest.Wait()
		assert.Empty(t, got, "Get returned before Put")

		require.NoError(t, q.Put("hello"))
		assert.Equal(t, "hello", <-got)
	})
}

func TestQueue_GetHonorsContext(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		q := New[int]()
		ctx, cancel := context.WithTimeout(t.Context(), time.Second)
		defer cancel()

		_, err := q.Get(ctx)

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestQueue_CloseDrainsThenFails(t *testing.T) {
	q := New[int]()
	require.NoError(t, q.Put(1))
	require.NoError(t, q.Put(2))
	q.Close()
	q.Close()

	assert.ErrorIs(t, q.Put(3), ErrClosed)

	v, err := q.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	v, err = q.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	_, err = q.Get(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
	_, err = q.Get(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestQueue_CloseWakesWaiters(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		q := New[int]()
		errs := make(chan error, 2)
		for range 2 {
			go func() {
				_, err := q.Get(t.Context())
				errs <- err
			}()
		}
		synctest.Wait()

		q.Close()

		assert.ErrorIs(t, <-errs, ErrClosed)
		assert.ErrorIs(t, <-errs, ErrClosed)
	})
}

func TestQueue_ConcurrentProducers(t *testing.T) {
	q := New[int]()
	const producers, perProducer = 8, 100

	var wg sync.WaitGroup
	for p := range producers {
		wg.Go(func() {
			for i := range perProducer {
				_ = q.Put(p*perProducer + i)
			}
		})
	}
	wg.Wait()
	q.Close()

	seen := make(map[int]bool)
	for {
		v, err := q.Get(context.Background())
		if err != nil {
			assert.ErrorIs(t, err, ErrClosed)
			break
		}
		seen[v] = true
	}
	assert.Len(t, seen, producers*perProducer)
}
