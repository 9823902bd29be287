package readyq

import (
	"sync"

	"golang.org/x/sys/cpu"
)

// hostBigEndian reports the host byte order, resolved once on first use.
var hostBigEndian = sync.OnceValue(func() bool {
	return cpu.IsBigEndian
})

// SplitInt64 returns v as two 32-bit words, in host memory order, i.e. as if
// the int64 were reinterpreted as a [2]uint32. This is the layout expected
// by the LongFIFO and LongLIFO strategies.
func SplitInt64(v int64) [2]uint32 {
	u := uint64(v)
	if hostBigEndian() {
		return [2]uint32{uint32(u >> wordBits), uint32(u)}
	}
	return [2]uint32{uint32(u), uint32(u >> wordBits)}
}

// joinHostWords is the inverse of SplitInt64.
func joinHostWords(w [2]uint32) uint64 {
	if hostBigEndian() {
		return uint64(w[0])<<wordBits | uint64(w[1])
	}
	return uint64(w[1])<<wordBits | uint64(w[0])
}
