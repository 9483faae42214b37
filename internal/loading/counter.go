// Package loading tracks the number of in-flight backend requests so many
// independent call sites can report "I am busy" without coordinating. The
// UI renders one loading indicator from the single resulting count.
package loading

import "sync"

// Subscriber receives the current in-flight count on every change.
type Subscriber func(count int)

// Counter is a process-wide observable counter. The zero value is not
// usable; construct with NewCounter.
type Counter struct {
	mu          sync.Mutex
	count       int
	nextID      int
	subscribers map[int]Subscriber

	// notifyMu spans each count change and its delivery so subscribers
	// always see counts in the order they occurred. Without it, two
	// requests settling concurrently could deliver a stale 1 after the
	// true count already reached 0.
	notifyMu sync.Mutex
}

// NewCounter creates a counter with no subscribers and a zero count.
func NewCounter() *Counter {
	return &Counter{subscribers: make(map[int]Subscriber)}
}

// Begin increments the counter and returns the matching end callback. The
// callback is idempotent: only its first invocation decrements, so
// overlapping success and cleanup paths cannot double-release.
func (c *Counter) Begin() func() {
	c.notifyMu.Lock()
	c.mu.Lock()
	c.count++
	count := c.count
	subscribers := c.snapshotLocked()
	c.mu.Unlock()
	notify(subscribers, count)
	c.notifyMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.notifyMu.Lock()
			c.mu.Lock()
			if c.count > 0 {
				c.count--
			}
			count := c.count
			subscribers := c.snapshotLocked()
			c.mu.Unlock()
			notify(subscribers, count)
			c.notifyMu.Unlock()
		})
	}
}

// Count returns the current number of outstanding requests.
func (c *Counter) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Subscribe registers fn and immediately delivers the current count so a
// late subscriber does not miss in-progress requests. The returned cancel
// removes the subscription.
func (c *Counter) Subscribe(fn Subscriber) func() {
	c.notifyMu.Lock()
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subscribers[id] = fn
	count := c.count
	c.mu.Unlock()

	fn(count)
	c.notifyMu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subscribers, id)
		c.mu.Unlock()
	}
}

func (c *Counter) snapshotLocked() []Subscriber {
	subscribers := make([]Subscriber, 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		subscribers = append(subscribers, fn)
	}
	return subscribers
}

func notify(subscribers []Subscriber, count int) {
	for _, fn := range subscribers {
		fn(count)
	}
}
