package readyq

import (
	"github.com/joeycumines/go-catrate"
	"github.com/joeycumines/logiface"
)

// reporter emits the caller-facing diagnostics of a Queue. A nil logger
// disables all output, and a nil limiter disables rate limiting.
type reporter struct {
	logger  *logiface.Logger[logiface.Event]
	limiter *catrate.Limiter
}

func newReporter(cfg *queueOptions) *reporter {
	r := reporter{logger: cfg.logger}
	if r.logger != nil && len(cfg.reportRates) != 0 {
		r.limiter = catrate.NewLimiter(cfg.reportRates)
	}
	return &r
}

// invalidStrategy reports an integration bug: an enqueue with an unknown
// strategy, which was dropped. Reports are limited per strategy value.
func (x *reporter) invalidStrategy(strategy Strategy, length int) {
	b := x.logger.Err()
	if !b.Enabled() {
		return
	}
	if _, ok := x.limiter.Allow(strategy); !ok {
		b.Release()
		return
	}
	b.Stringer(`strategy`, strategy).
		Int(`length`, length).
		Log(`readyq: invalid queueing strategy, item dropped`)
}

func (x *reporter) heapGrown(tier string, size int) {
	x.logger.Debug().
		Str(`tier`, tier).
		Int(`size`, size).
		Log(`readyq: bucket heap grown`)
}

func (x *reporter) rehashed(tier string, size, entries int) {
	x.logger.Debug().
		Str(`tier`, tier).
		Int(`size`, size).
		Int(`entries`, entries).
		Log(`readyq: bucket table rehashed`)
}
