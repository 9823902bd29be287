// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package readyq

import (
	"fmt"
	"time"

	"github.com/joeycumines/go-catrate"
	"github.com/joeycumines/logiface"
)

const (
	// defaultHeapSize is the initial capacity of each bucket heap, including
	// the unused slot 0.
	defaultHeapSize = 100

	// defaultTableSize is the initial number of hash chains per bucket index.
	defaultTableSize = 1017
)

// queueOptions holds configuration options for Queue and Pool creation.
type queueOptions struct {
	logger      *logiface.Logger[logiface.Event]
	reportRates map[time.Duration]int
	heapSize    int
	tableSize   int
}

// --- Queue Options ---

// Option configures a Queue or Pool instance.
type Option interface {
	applyQueue(*queueOptions) error
}

// optionImpl implements Option.
type optionImpl struct {
	applyQueueFunc func(*queueOptions) error
}

func (o *optionImpl) applyQueue(opts *queueOptions) error {
	return o.applyQueueFunc(opts)
}

// WithLogger sets the logger, used to report invalid strategies, and (at
// debug level) bucket index growth. Defaults to no logging.
func WithLogger(logger *logiface.Logger[logiface.Event]) Option {
	return &optionImpl{func(opts *queueOptions) error {
		opts.logger = logger
		return nil
	}}
}

// WithInitialHeapSize sets the initial capacity of each tier's bucket heap.
// The heap doubles when full. Must be at least 2.
func WithInitialHeapSize(n int) Option {
	return &optionImpl{func(opts *queueOptions) error {
		if n < 2 {
			return fmt.Errorf(`%w: initial heap size %d < 2`, ErrInvalidOption, n)
		}
		opts.heapSize = n
		return nil
	}}
}

// WithInitialTableSize sets the initial number of hash chains of each tier's
// bucket index. The table doubles once it holds more than two buckets per
// chain. Must be at least 1.
func WithInitialTableSize(n int) Option {
	return &optionImpl{func(opts *queueOptions) error {
		if n < 1 {
			return fmt.Errorf(`%w: initial table size %d < 1`, ErrInvalidOption, n)
		}
		opts.tableSize = n
		return nil
	}}
}

// WithReportRates sets the rate limits applied to invalid strategy reports,
// per strategy value, as accepted by catrate.NewLimiter. A nil or empty map
// disables limiting. Defaults to one per second, and ten per minute.
func WithReportRates(rates map[time.Duration]int) Option {
	return &optionImpl{func(opts *queueOptions) (err error) {
		if len(rates) != 0 {
			// catrate panics on invalid rates
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf(`%w: report rates: %v`, ErrInvalidOption, r)
				}
			}()
			_ = catrate.NewLimiter(rates)
		}
		opts.reportRates = rates
		return nil
	}}
}

// resolveOptions applies Option instances to queueOptions.
func resolveOptions(opts []Option) (*queueOptions, error) {
	cfg := &queueOptions{
		heapSize:  defaultHeapSize,
		tableSize: defaultTableSize,
		reportRates: map[time.Duration]int{
			time.Second: 1,
			time.Minute: 10,
		},
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.applyQueue(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
