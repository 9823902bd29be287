package readyq

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(w io.Writer, level logiface.Level) *logiface.Logger[logiface.Event] {
	return stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithWriter(w), stumpy.WithTimeField(``)),
		stumpy.L.WithLevel(level),
	).Logger()
}

func TestQueue_invalidStrategy_reported(t *testing.T) {
	var buf bytes.Buffer
	q := newTestQueue[string](t, WithLogger(newTestLogger(&buf, logiface.LevelInformational)))
	q.EnqueueFIFO(`a`)

	// default rates allow one per second, per strategy
	for i := 0; i < 5; i++ {
		require.ErrorIs(t, q.Enqueue(`bad`, 1, 0, nil), ErrInvalidStrategy)
	}
	require.ErrorIs(t, q.Enqueue(`bad`, 42, 0, nil), ErrInvalidStrategy)

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, `readyq: invalid queueing strategy, item dropped`), out)
	assert.Contains(t, out, `"strategy":"Strategy(1)"`)
	assert.Contains(t, out, `"strategy":"Strategy(42)"`)
	assert.Contains(t, out, `"lvl":"err"`)
	assert.Equal(t, 1, q.Len())
}

func TestQueue_invalidStrategy_unlimited(t *testing.T) {
	var buf bytes.Buffer
	q := newTestQueue[string](t,
		WithLogger(newTestLogger(&buf, logiface.LevelInformational)),
		WithReportRates(nil),
	)
	for i := 0; i < 5; i++ {
		require.ErrorIs(t, q.Enqueue(`bad`, 0, 0, nil), ErrInvalidStrategy)
	}
	assert.Equal(t, 5, strings.Count(buf.String(), `invalid queueing strategy`))
}

func TestQueue_invalidStrategy_customRates(t *testing.T) {
	var buf bytes.Buffer
	q := newTestQueue[string](t,
		WithLogger(newTestLogger(&buf, logiface.LevelInformational)),
		WithReportRates(map[time.Duration]int{time.Hour: 3}),
	)
	for i := 0; i < 10; i++ {
		require.ErrorIs(t, q.Enqueue(`bad`, 10, 0, nil), ErrInvalidStrategy)
	}
	assert.Equal(t, 3, strings.Count(buf.String(), `invalid queueing strategy`))
}

func TestQueue_growthReported(t *testing.T) {
	var buf bytes.Buffer
	q := newTestQueue[int](t,
		WithLogger(newTestLogger(&buf, logiface.LevelDebug)),
		WithInitialHeapSize(2),
		WithInitialTableSize(1),
	)
	for i := int32(1); i <= 3; i++ {
		require.NoError(t, q.EnqueueInt(int(i), IntegerFIFO, i))
	}
	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, `readyq: bucket heap grown`), out)
	assert.Equal(t, 1, strings.Count(out, `readyq: bucket table rehashed`), out)
	assert.Contains(t, out, `"tier":"positive"`)
	assert.Equal(t, 2, q.Stats().PositiveTableSize)
	require.NoError(t, q.verify())
}

func TestQueue_growthNotReportedAboveDebug(t *testing.T) {
	var buf bytes.Buffer
	q := newTestQueue[int](t,
		WithLogger(newTestLogger(&buf, logiface.LevelInformational)),
		WithInitialHeapSize(2),
		WithInitialTableSize(1),
	)
	for i := int32(-1); i >= -20; i-- {
		require.NoError(t, q.EnqueueInt(int(i), IntegerLIFO, i))
	}
	assert.Empty(t, buf.String())
	assert.Greater(t, q.Stats().NegativeTableSize, 1)
}

func TestReporter_noLogger(t *testing.T) {
	r := newReporter(&queueOptions{reportRates: map[time.Duration]int{time.Second: 1}})
	assert.Nil(t, r.limiter)
	r.invalidStrategy(0, 0)
	r.heapGrown(tierNegative, 4)
	r.rehashed(tierPositive, 2, 3)
}
