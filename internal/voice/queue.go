// Package voice turns recognized speech into spell casts. A Listener runs
// one background goroutine that feeds a bounded Queue; the frame loop drains
// the queue once per frame.
package voice

import (
	"sync/atomic"

	"magearena/internal/entities"
)

// DefaultQueueSize is used when a non-positive size is requested.
const DefaultQueueSize = 8

// Queue is a bounded, non-blocking spell buffer between the listener and
// the frame loop. It is safe for one producer and one consumer.
type Queue struct {
	ch      chan entities.SpellKind
	dropped atomic.Int64
}

// NewQueue creates a queue holding at most size spells.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{ch: make(chan entities.SpellKind, size)}
}

// Offer enqueues s without blocking. It returns false and counts a drop when
// the queue is full.
func (q *Queue) Offer(s entities.SpellKind) bool {
	select {
	case q.ch <- s:
		return true
	default:
		q.dropped.Add(1)
		return false
	}
}

// Drain appends everything currently queued to dst, oldest first.
func (q *Queue) Drain(dst []entities.SpellKind) []entities.SpellKind {
	for {
		select {
		case s := <-q.ch:
			dst = append(dst, s)
		default:
			return dst
		}
	}
}

func (q *Queue) Len() int { return len(q.ch) }

func (q *Queue) Cap() int { return cap(q.ch) }

// Dropped returns how many offers were rejected because the queue was full.
func (q *Queue) Dropped() int64 { return q.dropped.Load() }
