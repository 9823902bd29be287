// Package readyq implements the ready queue of a user-level task scheduler:
// a tiered priority queue of runnable work items, supporting FIFO, LIFO, and
// priority-keyed insertion, with priorities of arbitrary bit width.
//
// # Tiers
//
// A [Queue] holds three tiers, drained in order:
//  1. negative priorities, minimum first
//  2. zero priority, a single deque, see [FIFO] and [LIFO]
//  3. positive priorities, minimum first
//
// Keyed strategies ([IntegerFIFO], [BitfieldFIFO], [LongFIFO], and their
// LIFO counterparts) map each priority to a biased, unsigned [Key], and
// share one bucket per distinct key. Buckets are created on first use, live
// in a heap and a hash table, and are destroyed as soon as they empty.
//
// # Thread Safety
//
// [Queue] performs no locking. The caller serializes access, and parks
// consumers using a [Handoff] guarded by the same lock. [Pool] composes the
// three, and is safe for concurrent use.
package readyq
