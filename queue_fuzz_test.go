package readyq

import (
	"math/rand"
	"testing"
)

// FuzzQueue compares random operation sequences against a sorted list
// model, verifying the bucket index invariants along the way.
func FuzzQueue(f *testing.F) {
	f.Add(int64(1), uint8(2), uint8(1))
	f.Add(int64(-23434245), uint8(100), uint8(17))
	f.Add(int64(4), uint8(7), uint8(0))

	f.Fuzz(func(t *testing.T, randomSeed int64, heapSize uint8, tableSize uint8) {
		// needs to be deterministic
		r := rand.New(rand.NewSource(randomSeed))
		runQueueModel(
			t,
			r,
			1<<10,
			WithInitialHeapSize(int(heapSize)%64+2),
			WithInitialTableSize(int(tableSize)%64+1),
		)
	})
}
