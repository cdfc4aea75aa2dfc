// Package dsort sorts slices in parallel on a dpool.Pool.
package dsort

import (
	"golang.org/x/exp/constraints"

	"github.com/datawire/dthread/dpool"
	"github.com/datawire/dthread/dqueue"
)

// Sort sorts xs in place, in increasing order as determined by less, using one Broadcast on pool.
// The sort is not stable.
//
// Each worker repeatedly takes an unsorted region of xs from a shared queue, partitions it around
// its first element, and queues the two sides.  Regions never overlap, so the workers never touch
// the same element.
func Sort[T any](pool *dpool.Pool, xs []T, less func(a, b T) bool) {
	if len(xs) < 2 {
		return
	}
	queue := dqueue.New[[]T]()
	queue.Send(xs)
	pool.Broadcast(func() {
		for region, ok := queue.Recv(); ok; region, ok = queue.Recv() {
			if len(region) > 1 {
				left, right := partition(region, less)
				queue.Send(left)
				queue.Send(right)
			}
			queue.Done()
		}
	})
}

// SortOrdered sorts xs in place in increasing order; see Sort.
func SortOrdered[T constraints.Ordered](pool *dpool.Pool, xs []T) {
	Sort(pool, xs, func(a, b T) bool { return a < b })
}

// partition moves everything not greater than the pivot xs[0] in front of it, and returns the
// regions on either side of the pivot's final position.
func partition[T any](xs []T, less func(a, b T) bool) (left, right []T) {
	pivot := 0
	for i := 1; i < len(xs); i++ {
		if !less(xs[0], xs[i]) {
			pivot++
			xs[i], xs[pivot] = xs[pivot], xs[i]
		}
	}
	xs[0], xs[pivot] = xs[pivot], xs[0]
	return xs[:pivot], xs[pivot+1:]
}
