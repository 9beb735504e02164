package search

import "sync/atomic"

// cancelToken is the stop flag polled by the recursive search.
type cancelToken struct{ f atomic.Int32 }

func (c *cancelToken) Abort() {
	c.f.Store(1)
}

func (c *cancelToken) IsAborted() bool {
	return c.f.Load() == 1
}

func (c *cancelToken) Reset() {
	c.f.Store(0)
}
