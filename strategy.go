package readyq

import (
	"strconv"
)

// Strategy selects the tier and push end used by Queue.Enqueue. The values
// are stable, and may be passed through from other integrations.
type Strategy int

const (
	// FIFO appends to the zero priority tier.
	FIFO Strategy = iota + 2
	// LIFO prepends to the zero priority tier.
	LIFO
	// IntegerFIFO appends to the bucket for a signed 32-bit priority.
	IntegerFIFO
	// IntegerLIFO prepends to the bucket for a signed 32-bit priority.
	IntegerLIFO
	// BitfieldFIFO appends to the bucket for an arbitrary width bit vector
	// priority. The words are most significant first and left-aligned, and
	// are used as-is: the midpoint (only the top bit set) orders like zero.
	BitfieldFIFO
	// BitfieldLIFO prepends to the bucket for a bit vector priority.
	BitfieldLIFO
	// LongFIFO appends to the bucket for a signed 64-bit priority, provided
	// as two words in host memory order, see SplitInt64.
	LongFIFO
	// LongLIFO prepends to the bucket for a signed 64-bit priority.
	LongLIFO
)

var strategyNames = [...]string{
	FIFO - FIFO:         `FIFO`,
	LIFO - FIFO:         `LIFO`,
	IntegerFIFO - FIFO:  `IntegerFIFO`,
	IntegerLIFO - FIFO:  `IntegerLIFO`,
	BitfieldFIFO - FIFO: `BitfieldFIFO`,
	BitfieldLIFO - FIFO: `BitfieldLIFO`,
	LongFIFO - FIFO:     `LongFIFO`,
	LongLIFO - FIFO:     `LongLIFO`,
}

// Valid reports whether s is one of the defined strategies.
func (s Strategy) Valid() bool {
	return s >= FIFO && s <= LongLIFO
}

func (s Strategy) String() string {
	if s.Valid() {
		return strategyNames[s-FIFO]
	}
	return `Strategy(` + strconv.Itoa(int(s)) + `)`
}

// lifo reports whether s pushes to the front of its bucket.
func (s Strategy) lifo() bool {
	switch s {
	case LIFO, IntegerLIFO, BitfieldLIFO, LongLIFO:
		return true
	default:
		return false
	}
}
