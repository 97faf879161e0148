package sim

// OptimisticCounter is a locally mutated copy of a server-owned counter.
// Every local mutation is tagged with a monotonically increasing sequence
// number; asynchronous server responses are applied only if their tag is at
// least the last applied tag, so a stale response can never clobber newer
// state. Requests are never cancelled, just ignored when superseded.
type OptimisticCounter struct {
	value   int
	nextSeq uint64
	applied uint64
}

func (c *OptimisticCounter) Value() int { return c.value }

// Set overwrites the local value without a sequence tag. Used for the
// initial load before any mutation is in flight.
func (c *OptimisticCounter) Set(v int) { c.value = v }

// Mutate applies delta locally and returns the tag identifying this
// mutation. The caller sends the tag with the matching server request.
func (c *OptimisticCounter) Mutate(delta int) uint64 {
	c.nextSeq++
	c.value += delta
	if c.value < 0 {
		c.value = 0
	}
	return c.nextSeq
}

// Apply installs an authoritative server value for the given tag. Returns
// false if the response was stale and discarded.
func (c *OptimisticCounter) Apply(seq uint64, value int) bool {
	if seq < c.applied {
		return false
	}
	c.applied = seq
	c.value = value
	if c.value < 0 {
		c.value = 0
	}
	return true
}

// Rollback undoes the optimistic delta of a rejected mutation, gated by the
// same ordering rule as Apply.
func (c *OptimisticCounter) Rollback(seq uint64, delta int) bool {
	if seq < c.applied {
		return false
	}
	c.applied = seq
	c.value -= delta
	if c.value < 0 {
		c.value = 0
	}
	return true
}
