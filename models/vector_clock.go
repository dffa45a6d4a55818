// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskVault Authors

package models

// Ordering is the result of comparing two vector clocks.
type Ordering int

const (
	// OrderingBefore means the receiver is a causal ancestor of the other clock.
	OrderingBefore Ordering = iota
	// OrderingAfter means the receiver is a causal descendant of the other clock.
	OrderingAfter
	// OrderingEqual means both clocks carry identical counters.
	OrderingEqual
	// OrderingConcurrent means neither clock is an ancestor of the other.
	// This is the hallmark of a true sync conflict.
	OrderingConcurrent
)

// String returns a human-readable name for the ordering.
func (o Ordering) String() string {
	switch o {
	case OrderingBefore:
		return "before"
	case OrderingAfter:
		return "after"
	case OrderingEqual:
		return "equal"
	case OrderingConcurrent:
		return "concurrent"
	default:
		return "unknown"
	}
}

// VectorClock maps a device identifier to a monotonically increasing counter.
// Every task revision and the sync session as a whole carry one. A device only
// ever increments its own entry; entries for other devices are adopted from
// the server via Merge.
//
// The zero value (nil map) is a valid empty clock: it compares as equal to
// another empty clock and as before any non-empty one.
type VectorClock map[string]int64

// Compare determines the causal relation between c and other.
func (c VectorClock) Compare(other VectorClock) Ordering {
	var less, greater bool

	for device, counter := range c {
		switch otherCounter := other[device]; {
		case counter < otherCounter:
			less = true
		case counter > otherCounter:
			greater = true
		}
	}
	for device, otherCounter := range other {
		if _, ok := c[device]; !ok && otherCounter > 0 {
			less = true
		}
	}

	switch {
	case less && greater:
		return OrderingConcurrent
	case less:
		return OrderingBefore
	case greater:
		return OrderingAfter
	default:
		return OrderingEqual
	}
}

// Tick returns a copy of the clock with the counter for deviceID incremented.
// The receiver is not modified.
func (c VectorClock) Tick(deviceID string) VectorClock {
	next := c.Clone()
	next[deviceID]++
	return next
}

// Merge returns the element-wise maximum of both clocks. Merging never
// regresses a counter, which makes it suitable for advancing the session
// high-water mark from server responses.
func (c VectorClock) Merge(other VectorClock) VectorClock {
	merged := c.Clone()
	for device, counter := range other {
		if counter > merged[device] {
			merged[device] = counter
		}
	}
	return merged
}

// Clone returns an independent copy of the clock. A nil receiver yields an
// empty, non-nil clock so callers may write to the result.
func (c VectorClock) Clone() VectorClock {
	cloned := make(VectorClock, len(c)+1)
	for device, counter := range c {
		cloned[device] = counter
	}
	return cloned
}

// Counter returns the counter recorded for deviceID, zero if absent.
func (c VectorClock) Counter(deviceID string) int64 {
	return c[deviceID]
}
