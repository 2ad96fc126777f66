package kenlmgo

import (
	"fmt"
	"sync"

	"github.com/hupe1980/kenlmgo/engine"
)

// Pool is a reusable scratch buffer for stateful rule-probability queries.
// It batches a bounded sequence of n-gram ids into a single boundary call:
// slot 0 holds the count, the remaining slots hold the ids. Reusing one Pool
// across many ProbRule calls amortizes the per-call marshalling cost.
//
// A Pool is a mutable buffer and serves at most one logical call at a time;
// an internal mutex enforces this, but contention means the caller is doing
// it wrong. Create one Pool per worker goroutine.
//
// A Pool is not owned by any Model and may be used sequentially with
// multiple Models backed by the same engine. Close it explicitly when done.
type Pool struct {
	mu     sync.Mutex
	eng    engine.Engine
	handle engine.PoolHandle
	buf    []int64
}

// NewPool creates a Pool sized for this model: order+1 slots.
func (m *Model) NewPool() (*Pool, error) {
	return m.NewPoolWithCapacity(m.order + 1)
}

// NewPoolWithCapacity creates a Pool with an explicit slot count. capacity
// must be at least order+1: one slot for the count plus one per n-gram id.
func (m *Model) NewPoolWithCapacity(capacity int) (*Pool, error) {
	if capacity < m.order+1 {
		return nil, fmt.Errorf("pool capacity %d below minimum %d (order+1)", capacity, m.order+1)
	}
	st := m.st
	st.mu.RLock()
	defer st.mu.RUnlock()
	if st.handle == 0 {
		return nil, ErrClosed
	}

	// The engine keeps a pointer into buf for the pool's lifetime; the Pool
	// holds the slice so it stays live until Close.
	buf := make([]int64, capacity)
	h, err := st.eng.CreatePool(buf)
	m.logger.LogPoolCreate(capacity, err)
	if err != nil {
		return nil, err
	}
	return &Pool{eng: st.eng, handle: h, buf: buf}, nil
}

// Capacity returns the total slot count, including the count slot. The
// maximum writable sequence length is Capacity()-1.
func (p *Pool) Capacity() int {
	return len(p.buf)
}

// Write stores ids for the next ProbRule call, overwriting any previous
// contents. Negative ids denote non-terminal symbols by engine convention
// and are passed through untouched.
//
// Write fails with *ErrCapacityExceeded before anything crosses the
// boundary if ids does not fit; the engine does not validate the count slot.
func (p *Pool) Write(ids []int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.handle == 0 {
		return ErrPoolClosed
	}
	if len(ids) > len(p.buf)-1 {
		return &ErrCapacityExceeded{Capacity: len(p.buf), Count: len(ids)}
	}
	p.buf[0] = int64(len(ids))
	copy(p.buf[1:], ids)
	return nil
}

// Close releases the native pool. It is idempotent, mirroring Model.Close:
// only the first call reaches the engine.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.handle == 0 {
		return nil
	}
	p.eng.DestroyPool(p.handle)
	p.handle = 0
	return nil
}
