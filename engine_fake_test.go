package kenlmgo

import (
	"strings"
	"sync"

	"github.com/hupe1980/kenlmgo/codec"
	"github.com/hupe1980/kenlmgo/engine"
)

// fakeEngine is an in-memory engine.Engine with deterministic scores. It
// keeps the same bookkeeping a real engine would fault on: destroying an
// unknown or already-destroyed handle is counted as a fault instead of
// crashing, so tests can assert the client never lets one through.
type fakeEngine struct {
	mu    sync.Mutex
	order int

	nextHandle     uintptr
	models         map[engine.ModelHandle]*fakeModel
	pools          map[engine.PoolHandle][]int64
	destroys       map[engine.ModelHandle]int
	poolDestroys   map[engine.PoolHandle]int
	faults         int
	constructPaths []string
}

type fakeModel struct {
	vocab map[string]int32
	ids   map[int32]bool
}

func newFakeEngine(order int) *fakeEngine {
	return &fakeEngine{
		order:        order,
		models:       make(map[engine.ModelHandle]*fakeModel),
		pools:        make(map[engine.PoolHandle][]int64),
		destroys:     make(map[engine.ModelHandle]int),
		poolDestroys: make(map[engine.PoolHandle]int),
	}
}

// fakeScore is finite, negative and depends only on the id sequence, so
// stateless and pool-based queries over the same ids must agree.
func fakeScore(ids []int64) float32 {
	s := float32(-0.5)
	for _, id := range ids {
		if id < 0 {
			id = -id
		}
		s -= 0.1 * float32(id%7+1)
	}
	return s
}

func (f *fakeEngine) Construct(path string) (engine.ModelHandle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.constructPaths = append(f.constructPaths, path)
	if strings.Contains(path, "malformed") {
		return 0, engine.ErrModelRejected
	}
	f.nextHandle++
	h := engine.ModelHandle(f.nextHandle)
	f.models[h] = &fakeModel{
		vocab: make(map[string]int32),
		ids:   make(map[int32]bool),
	}
	return h, nil
}

func (f *fakeEngine) Destroy(h engine.ModelHandle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.models[h]; !ok {
		f.faults++
		return
	}
	delete(f.models, h)
	f.destroys[h]++
}

func (f *fakeEngine) Order(h engine.ModelHandle) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.models[h]; !ok {
		f.faults++
	}
	return f.order
}

func (f *fakeEngine) RegisterWord(h engine.ModelHandle, word string, id int32) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.models[h]
	if !ok {
		f.faults++
		return false
	}
	if m.ids[id] {
		return false
	}
	m.vocab[word] = id
	m.ids[id] = true
	return true
}

func (f *fakeEngine) Prob(h engine.ModelHandle, ids []int32) float32 {
	wide := make([]int64, len(ids))
	for i, id := range ids {
		wide[i] = int64(id)
	}
	return fakeScore(wide)
}

func (f *fakeEngine) ProbForWords(h engine.ModelHandle, words []string) float32 {
	f.mu.Lock()
	m := f.models[h]
	f.mu.Unlock()
	ids := make([]int64, len(words))
	for i, w := range words {
		if m != nil {
			ids[i] = int64(m.vocab[w])
		}
	}
	return fakeScore(ids)
}

func (f *fakeEngine) ProbSuffix(h engine.ModelHandle, ids []int32, start int) float32 {
	return f.Prob(h, ids[start:])
}

func (f *fakeEngine) IsKnownWord(h engine.ModelHandle, word string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.models[h]
	if !ok {
		f.faults++
		return false
	}
	_, known := m.vocab[word]
	return known
}

func (f *fakeEngine) IsOOV(h engine.ModelHandle, id int32) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.models[h]
	if !ok {
		f.faults++
		return true
	}
	return !m.ids[id]
}

func (f *fakeEngine) CreatePool(buf []int64) (engine.PoolHandle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextHandle++
	p := engine.PoolHandle(f.nextHandle)
	// Keep the caller's slice, like the native side keeping the pointer.
	f.pools[p] = buf
	return p, nil
}

func (f *fakeEngine) DestroyPool(p engine.PoolHandle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.pools[p]; !ok {
		f.faults++
		return
	}
	delete(f.pools, p)
	f.poolDestroys[p]++
}

func (f *fakeEngine) ProbRule(h engine.ModelHandle, p engine.PoolHandle) uint64 {
	f.mu.Lock()
	buf, ok := f.pools[p]
	if _, mok := f.models[h]; !mok || !ok {
		f.faults++
		f.mu.Unlock()
		return 0
	}
	f.mu.Unlock()
	n := int(buf[0])
	ids := buf[1 : 1+n]
	return codec.PackRuleScore(int32(n), fakeScore(ids))
}

func (f *fakeEngine) EstimateRule(h engine.ModelHandle, ids []int64) float32 {
	return fakeScore(ids)
}

func (f *fakeEngine) faultCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.faults
}

func (f *fakeEngine) totalDestroys() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.destroys {
		n += c
	}
	return n
}

func (f *fakeEngine) totalPoolDestroys() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.poolDestroys {
		n += c
	}
	return n
}

var _ engine.Engine = (*fakeEngine)(nil)
