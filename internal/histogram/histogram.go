// Package histogram implements a fixed-bucket counting container over an
// ordered vector of bucket edges.
package histogram

import "sort"

// Histogram counts inserted values into buckets defined by an ordered edge
// vector. Bucket i covers [edges[i], edges[i+1]); the last bucket is an open
// upper tail. Values below edges[0] are dropped. Not safe for concurrent
// use — callers on a single-threaded hot path need no locking here.
type Histogram struct {
	edges   []int32
	buckets []int64
	count   int64
	sum     int64
}

// New copies edges and returns a Histogram ready to accept values. A
// zero-length edges vector is legal: Insert becomes a no-op and Count/Sum
// stay at zero.
func New(edges []int32) *Histogram {
	e := make([]int32, len(edges))
	copy(e, edges)
	return &Histogram{
		edges:   e,
		buckets: make([]int64, len(e)),
	}
}

// Insert increments the bucket containing value and updates count and sum.
// Values below edges[0] are dropped without affecting count or sum.
func (h *Histogram) Insert(value int32) {
	if len(h.edges) == 0 {
		return
	}
	if value < h.edges[0] {
		return
	}
	// sort.Search finds the first edge strictly greater than value; the
	// containing bucket is one before that.
	i := sort.Search(len(h.edges), func(i int) bool { return h.edges[i] > value })
	h.buckets[i-1]++
	h.count++
	h.sum += int64(value)
}

// Count returns the total number of values inserted (dropped values are not
// counted).
func (h *Histogram) Count() int64 { return h.count }

// Sum returns the sum of all inserted values.
func (h *Histogram) Sum() int64 { return h.sum }

// Len returns the number of buckets.
func (h *Histogram) Len() int { return len(h.buckets) }

// BucketCount returns the count in bucket i.
func (h *Histogram) BucketCount(i int) int64 { return h.buckets[i] }

// Clear resets all bucket counts, count, and sum to zero. The edge vector
// is unchanged.
func (h *Histogram) Clear() {
	for i := range h.buckets {
		h.buckets[i] = 0
	}
	h.count = 0
	h.sum = 0
}
