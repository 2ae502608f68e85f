package registry

import (
	domain "github.com/oshokin/alarm-scheduler/internal/domain/alarm"
)

// List is the ordered collection of pending alarms, sorted by non-decreasing
// expiry instant. It is a plain singly-linked list and performs no locking
// of its own: every method must be called with the coordinator's lock held.
type List struct {
	// head is the earliest-expiring pending alarm, or nil when empty.
	head *node
	// size is the number of pending alarms.
	size int
}

// node links one pending alarm into the list.
type node struct {
	// next points at the following (later or equal expiry) entry.
	next *node
	// alarm is the pending record owned by the list.
	alarm *domain.Alarm
}

// New returns an empty list.
func New() *List {
	return new(List)
}

// Insert splices the alarm immediately before the first entry whose expiry
// instant is greater than or equal to the new one. The list stays sorted by
// non-decreasing expiry, and among equal-expiry entries the most recently
// inserted one sits first and is therefore dispatched first.
func (l *List) Insert(a *domain.Alarm) {
	entry := &node{alarm: a}

	link := &l.head
	for *link != nil && (*link).alarm.ExpiresAt.Before(a.ExpiresAt) {
		link = &(*link).next
	}

	entry.next = *link
	*link = entry
	l.size++
}

// PopEarliest removes and returns the earliest-expiring alarm.
// It reports false when the list is empty.
func (l *List) PopEarliest() (*domain.Alarm, bool) {
	if l.head == nil {
		return nil, false
	}

	entry := l.head
	l.head = entry.next
	l.size--

	return entry.alarm, true
}

// Len returns the number of pending alarms.
func (l *List) Len() int {
	return l.size
}

// Snapshot returns the pending alarms in dispatch order.
// The returned slice is owned by the caller; the alarms are not copied.
func (l *List) Snapshot() []*domain.Alarm {
	alarms := make([]*domain.Alarm, 0, l.size)
	for entry := l.head; entry != nil; entry = entry.next {
		alarms = append(alarms, entry.alarm)
	}

	return alarms
}
