// Package notify provides the notification center hosts subscribe to
// for facial state events. Dispatch is synchronous: handlers run on the
// goroutine that posts the event, in subscription order.
package notify

import (
	"sync"

	"github.com/google/uuid"

	"github.com/visagekit/visage/pkg/facestate"
)

// Handler receives an event. The event identity is the whole payload.
type Handler func(facestate.Event)

// Sink is anything that accepts events. The orchestrator only needs
// this; tests substitute a recording sink.
type Sink interface {
	Post(facestate.Event)
}

// Subscription is a handle for one registered handler.
type Subscription struct {
	id     string
	name   string // Empty for firehose subscriptions
	center *Center
}

// ID returns the subscription token.
func (s Subscription) ID() string { return s.id }

// Cancel removes the handler. Safe to call more than once.
func (s Subscription) Cancel() {
	s.center.cancel(s)
}

type entry struct {
	id string
	fn Handler
}

// Center routes events to handlers subscribed by event name.
type Center struct {
	mu       sync.RWMutex
	byName   map[string][]entry
	firehose []entry
}

// NewCenter creates an empty notification center.
func NewCenter() *Center {
	return &Center{
		byName: make(map[string][]entry),
	}
}

// Subscribe registers fn for events whose name matches name.
func (c *Center) Subscribe(name string, fn Handler) Subscription {
	sub := Subscription{id: uuid.NewString(), name: name, center: c}
	c.mu.Lock()
	c.byName[name] = append(c.byName[name], entry{id: sub.id, fn: fn})
	c.mu.Unlock()
	return sub
}

// SubscribeEvent registers fn for a single event.
func (c *Center) SubscribeEvent(e facestate.Event, fn Handler) Subscription {
	return c.Subscribe(e.Name(), fn)
}

// SubscribeAll registers fn for every event.
func (c *Center) SubscribeAll(fn Handler) Subscription {
	sub := Subscription{id: uuid.NewString(), center: c}
	c.mu.Lock()
	c.firehose = append(c.firehose, entry{id: sub.id, fn: fn})
	c.mu.Unlock()
	return sub
}

// Post dispatches the event synchronously to all matching handlers.
// Named handlers run before firehose handlers, each group in
// subscription order.
func (c *Center) Post(e facestate.Event) {
	c.mu.RLock()
	named := c.byName[e.Name()]
	all := c.firehose
	c.mu.RUnlock()

	for _, h := range named {
		h.fn(e)
	}
	for _, h := range all {
		h.fn(e)
	}
}

// PostAll dispatches a batch of events in order.
func (c *Center) PostAll(events []facestate.Event) {
	for _, e := range events {
		c.Post(e)
	}
}

func (c *Center) cancel(sub Subscription) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if sub.name != "" {
		c.byName[sub.name] = removeEntry(c.byName[sub.name], sub.id)
		return
	}
	c.firehose = removeEntry(c.firehose, sub.id)
}

func removeEntry(entries []entry, id string) []entry {
	for i, h := range entries {
		if h.id == id {
			return append(entries[:i:i], entries[i+1:]...)
		}
	}
	return entries
}
