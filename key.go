package readyq

import (
	"fmt"
	"math"
	"strings"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// wordBits is the width of a single key word.
const wordBits = 32

type (
	// Key is an immutable, arbitrary-width unsigned priority, stored as 32-bit
	// words, most significant first. Smaller keys are dequeued first.
	//
	// The zero value is equivalent to ZeroKey.
	Key struct {
		words []uint32
		bits  uint16
	}
)

var (
	// ZeroKey is reported by Queue.PeekPriority when the zero priority tier
	// is at the head of the queue.
	ZeroKey = Key{}

	// MaxKey is reported by Queue.PeekPriority when the queue is empty.
	MaxKey = Key{bits: wordBits, words: []uint32{math.MaxUint32}}
)

// NewKey builds a Key of the given bit width, copying the first
// ceil(bits/32) words. An ErrInvalidPriority error is returned if bits is out
// of range, or too few words are provided.
func NewKey(bits int, words []uint32) (Key, error) {
	if bits < 0 || bits > math.MaxUint16 {
		return Key{}, fmt.Errorf(`%w: bit width %d out of range`, ErrInvalidPriority, bits)
	}
	n := wordCount(bits)
	if len(words) < n {
		return Key{}, fmt.Errorf(`%w: %d bits requires %d words, got %d`, ErrInvalidPriority, bits, n, len(words))
	}
	return newKey(uint16(bits), words[:n]), nil
}

func newKey(bits uint16, words []uint32) Key {
	k := Key{bits: bits}
	if len(words) != 0 {
		k.words = append(make([]uint32, 0, len(words)), words...)
	}
	return k
}

func wordCount(bits int) int {
	return (bits + wordBits - 1) / wordBits
}

// SignedKey returns the biased key for a signed integer, using the width of
// T. The bias (2^(width-1)) maps two's complement order onto unsigned order,
// so SignedKey(a) < SignedKey(b) iff a < b. Keys narrower than a word are
// left-aligned, like bit vector priorities, so the sign bit is always the top
// bit of the first word.
func SignedKey[T constraints.Signed](v T) Key {
	width := uint(unsafe.Sizeof(v)) * 8
	u := uint64(int64(v)) + 1<<(width-1)
	if width < 64 {
		u &= 1<<width - 1
	}
	if width <= wordBits {
		return Key{bits: uint16(width), words: []uint32{uint32(u) << (wordBits - width)}}
	}
	return Key{bits: uint16(width), words: []uint32{uint32(u >> wordBits), uint32(u)}}
}

// Bits returns the declared bit width of the key.
func (k Key) Bits() int { return int(k.bits) }

// Words returns a copy of the key's words, most significant first.
func (k Key) Words() []uint32 {
	if len(k.words) == 0 {
		return nil
	}
	return append([]uint32(nil), k.words...)
}

// Equal reports whether k and o identify the same bucket, i.e. have the same
// bit width and the same words.
func (k Key) Equal(o Key) bool {
	if k.bits != o.bits || len(k.words) != len(o.words) {
		return false
	}
	for i, w := range k.words {
		if o.words[i] != w {
			return false
		}
	}
	return true
}

// String formats the key as its bit width and hex words, e.g. "32:0x7ffffffb".
func (k Key) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, `%d:`, k.bits)
	if len(k.words) == 0 {
		b.WriteString(`-`)
	}
	for i, w := range k.words {
		if i == 0 {
			fmt.Fprintf(&b, `0x%x`, w)
		} else {
			fmt.Fprintf(&b, `_%08x`, w)
		}
	}
	return b.String()
}

func (k Key) hash() uint32 {
	h := uint32(k.bits)
	for _, w := range k.words {
		h ^= w
	}
	return h & 0x7FFFFFFF
}

// negative reports whether a biased key belongs to the negative tier, i.e.
// whether its sign bit (bit 31 of the first word) is clear.
func (k Key) negative() bool {
	return k.bits == 0 || len(k.words) == 0 || k.words[0]&(1<<(wordBits-1)) == 0
}

// Compare orders two keys as unsigned values, returning -1, 0 or +1. Words
// are compared from the most significant. If one key runs out of words
// first it is the smaller, unless both run out together, in which case they
// are equal.
func Compare(a, b Key) int {
	n := min(len(a.words), len(b.words))
	for i := 0; i < n; i++ {
		switch x, y := a.words[i], b.words[i]; {
		case x < y:
			return -1
		case x > y:
			return 1
		}
	}
	switch {
	case len(a.words) < len(b.words):
		return -1
	case len(a.words) > len(b.words):
		return 1
	default:
		return 0
	}
}
