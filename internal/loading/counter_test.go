package loading

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeginEndBalances(t *testing.T) {
	counter := NewCounter()

	endFirst := counter.Begin()
	endSecond := counter.Begin()
	assert.Equal(t, 2, counter.Count())

	endSecond()
	assert.Equal(t, 1, counter.Count())
	endFirst()
	assert.Equal(t, 0, counter.Count())
}

func TestEndIsIdempotent(t *testing.T) {
	counter := NewCounter()

	end := counter.Begin()
	other := counter.Begin()
	end()
	end()
	end()
	assert.Equal(t, 1, counter.Count(), "repeated end calls must decrement once")

	other()
	assert.Equal(t, 0, counter.Count())
}

func TestCountNeverGoesNegative(t *testing.T) {
	counter := NewCounter()
	end := counter.Begin()
	end()
	assert.Equal(t, 0, counter.Count())

	// A second distinct end after reaching zero stays at zero.
	again := counter.Begin()
	again()
	again()
	assert.Equal(t, 0, counter.Count())
}

func TestOutOfOrderRelease(t *testing.T) {
	counter := NewCounter()
	ends := make([]func(), 0, 5)
	for i := 0; i < 5; i++ {
		ends = append(ends, counter.Begin())
	}
	// Release in arbitrary order.
	for _, i := range []int{3, 0, 4, 1, 2} {
		ends[i]()
	}
	assert.Equal(t, 0, counter.Count())
}

func TestSubscribeDeliversCurrentCountImmediately(t *testing.T) {
	counter := NewCounter()
	end := counter.Begin()

	var got []int
	cancel := counter.Subscribe(func(count int) { got = append(got, count) })
	require.Equal(t, []int{1}, got)

	end()
	assert.Equal(t, []int{1, 0}, got)

	cancel()
	done := counter.Begin()
	done()
	assert.Equal(t, []int{1, 0}, got, "no deliveries after cancel")
}

func TestConcurrentBeginEnd(t *testing.T) {
	counter := NewCounter()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			end := counter.Begin()
			end()
			end()
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, counter.Count())
}

func TestDeliveriesArriveInCountOrder(t *testing.T) {
	counter := NewCounter()

	// Deliveries are serialized, so the subscriber needs no locking.
	var got []int
	counter.Subscribe(func(count int) { got = append(got, count) })

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			end := counter.Begin()
			end()
		}()
	}
	wg.Wait()

	require.NotEmpty(t, got)
	assert.Equal(t, 0, got[0], "initial snapshot")
	assert.Equal(t, 0, got[len(got)-1], "final delivery must be the settled count")
	for i := 1; i < len(got); i++ {
		delta := got[i] - got[i-1]
		require.True(t, delta == 1 || delta == -1,
			"delivery %d jumped from %d to %d", i, got[i-1], got[i])
	}
}
