package core

import "go.uber.org/atomic"

// Counter hands out request IDs for the lifetime of the process. It starts
// at zero and is never persisted, so IDs restart from 1 after a restart.
type Counter struct {
	n *atomic.Uint64
}

func NewCounter() *Counter {
	return &Counter{n: atomic.NewUint64(0)}
}

// Next increments the counter and returns the new value.
func (c *Counter) Next() uint64 {
	return c.n.Inc()
}

func (c *Counter) Current() uint64 {
	return c.n.Load()
}
