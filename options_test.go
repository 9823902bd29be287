package readyq

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/joeycumines/logiface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveOptions_defaults(t *testing.T) {
	cfg, err := resolveOptions(nil)
	require.NoError(t, err)
	assert.Nil(t, cfg.logger)
	assert.Equal(t, defaultHeapSize, cfg.heapSize)
	assert.Equal(t, defaultTableSize, cfg.tableSize)
	assert.Equal(t, map[time.Duration]int{time.Second: 1, time.Minute: 10}, cfg.reportRates)
}

func TestResolveOptions_nilOption(t *testing.T) {
	cfg, err := resolveOptions([]Option{nil, WithInitialHeapSize(8), nil})
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.heapSize)
}

func TestResolveOptions_invalid(t *testing.T) {
	for _, tc := range [...]struct {
		name string
		opt  Option
	}{
		{`heap size 1`, WithInitialHeapSize(1)},
		{`heap size negative`, WithInitialHeapSize(-5)},
		{`table size 0`, WithInitialTableSize(0)},
		{`rates zero count`, WithReportRates(map[time.Duration]int{time.Second: 0})},
		{`rates not increasing`, WithReportRates(map[time.Duration]int{time.Second: 5, time.Minute: 5})},
		{`rates negative duration`, WithReportRates(map[time.Duration]int{-time.Second: 1})},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := resolveOptions([]Option{tc.opt})
			assert.True(t, errors.Is(err, ErrInvalidOption), err)
			q, err := New[int](tc.opt)
			assert.Nil(t, q)
			assert.ErrorIs(t, err, ErrInvalidOption)
			p, err := NewPool[int](tc.opt)
			assert.Nil(t, p)
			assert.ErrorIs(t, err, ErrInvalidOption)
		})
	}
}

func TestResolveOptions_applied(t *testing.T) {
	logger := newTestLogger(io.Discard, logiface.LevelInformational)
	cfg, err := resolveOptions([]Option{
		WithLogger(logger),
		WithInitialHeapSize(2),
		WithInitialTableSize(1),
		WithReportRates(map[time.Duration]int{}),
	})
	require.NoError(t, err)
	assert.Same(t, logger, cfg.logger)
	assert.Equal(t, 2, cfg.heapSize)
	assert.Equal(t, 1, cfg.tableSize)
	assert.Empty(t, cfg.reportRates)

	q := newQueue[int](cfg)
	assert.Equal(t, 1, q.Stats().NegativeTableSize)
	assert.Equal(t, 2, cap(q.pos.heap))
	assert.Nil(t, q.report.limiter)
}
