package kenlmgo

import (
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/hupe1980/kenlmgo/codec"
	"github.com/hupe1980/kenlmgo/engine"
)

// ProbResult is the result of a stateful rule-probability query: the
// log-probability of the scored n-grams plus a continuation state usable in
// subsequent queries.
type ProbResult struct {
	State int32
	Prob  float32
}

// Model is the owning client for one loaded model instance in the native
// engine.
//
// A Model is safe for concurrent read-only queries. RegisterWord and Close
// mutate engine-side state and must not race with other calls on the same
// Model; the usual pattern is one Model (and one Pool) per worker goroutine,
// or external synchronization.
//
// Close must be called when the Model is no longer needed; the native
// allocation is not tracked by the Go runtime. See WithAutoRelease for an
// opt-in GC backstop.
type Model struct {
	st         *modelState
	path       string
	order      int
	logger     *Logger
	metrics    MetricsCollector
	cleanup    runtime.Cleanup
	hasCleanup bool
}

// modelState holds everything the release path needs. It is a separate
// allocation so the auto-release cleanup can reference it without keeping
// the Model itself reachable.
type modelState struct {
	mu     sync.RWMutex
	eng    engine.Engine
	handle engine.ModelHandle
	staged string // staging file removed on close, if any
}

// New constructs a Model from a model file (binary or ARPA, optionally
// gzip-compressed).
//
// Construction is all-or-nothing: on error no native resources remain
// allocated and the returned Model is nil. Failures are reported as
// *LoadError; use errors.Is with engine.ErrLibraryNotFound or
// engine.ErrModelRejected to distinguish a missing native library from a
// rejected model file.
func New(path string, opts ...Option) (*Model, error) {
	o := applyOptions(opts...)

	eng := o.engine
	if eng == nil {
		libPath, err := engine.Resolve(o.libraryDir)
		if err != nil {
			o.logger.LogConstruct(path, 0, err)
			return nil, &LoadError{Path: path, cause: err}
		}
		eng, err = engine.Load(libPath)
		if err != nil {
			o.logger.LogConstruct(path, 0, err)
			return nil, &LoadError{Path: path, cause: err}
		}
	}

	constructPath, staged, err := stageModel(path, o.cacheDir)
	if err != nil {
		o.logger.LogConstruct(path, 0, err)
		return nil, &LoadError{Path: path, cause: err}
	}

	h, err := eng.Construct(constructPath)
	if err != nil {
		if staged != "" {
			_ = os.Remove(staged)
		}
		o.logger.LogConstruct(path, 0, err)
		return nil, &LoadError{Path: path, cause: err}
	}

	m := &Model{
		st: &modelState{
			eng:    eng,
			handle: h,
			staged: staged,
		},
		path:    path,
		order:   eng.Order(h),
		logger:  o.logger,
		metrics: o.metrics,
	}
	if o.autoRelease {
		m.cleanup = runtime.AddCleanup(m, (*modelState).close, m.st)
		m.hasCleanup = true
	}

	m.logger.LogConstruct(path, m.order, nil)
	return m, nil
}

// close destroys the native model exactly once. Subsequent calls see the
// zero sentinel and do nothing, so explicit Close and the auto-release
// backstop cannot double-free.
func (st *modelState) close() {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.handle == 0 {
		return
	}
	st.eng.Destroy(st.handle)
	st.handle = 0
	if st.staged != "" {
		_ = os.Remove(st.staged)
		st.staged = ""
	}
}

// Close releases the native model. It is idempotent: only the first call
// reaches the engine. After Close every other operation fails with
// ErrClosed.
func (m *Model) Close() error {
	if m.hasCleanup {
		m.cleanup.Stop()
	}
	m.st.close()
	m.logger.LogClose(m.path)
	return nil
}

// Order returns the model's n-gram order.
func (m *Model) Order() (int, error) {
	st := m.st
	st.mu.RLock()
	defer st.mu.RUnlock()
	if st.handle == 0 {
		return 0, ErrClosed
	}
	return st.eng.Order(st.handle), nil
}

// RegisterWord associates an external numeric id with a vocabulary word for
// subsequent integer-keyed queries. Reports whether the engine accepted the
// registration.
func (m *Model) RegisterWord(word string, id int32) (bool, error) {
	st := m.st
	st.mu.RLock()
	defer st.mu.RUnlock()
	if st.handle == 0 {
		return false, ErrClosed
	}
	return st.eng.RegisterWord(st.handle, word, id), nil
}

// Prob returns the log-probability of a token id sequence.
func (m *Model) Prob(ids []int32) (float32, error) {
	start := time.Now()
	p, err := m.prob(ids)
	m.metrics.RecordScore(time.Since(start), err)
	return p, err
}

func (m *Model) prob(ids []int32) (float32, error) {
	if len(ids) == 0 {
		return 0, ErrEmptySequence
	}
	st := m.st
	st.mu.RLock()
	defer st.mu.RUnlock()
	if st.handle == 0 {
		return 0, ErrClosed
	}
	return st.eng.Prob(st.handle, ids), nil
}

// ProbForWords returns the log-probability of a word sequence.
func (m *Model) ProbForWords(words []string) (float32, error) {
	start := time.Now()
	p, err := m.probForWords(words)
	m.metrics.RecordScore(time.Since(start), err)
	return p, err
}

func (m *Model) probForWords(words []string) (float32, error) {
	if len(words) == 0 {
		return 0, ErrEmptySequence
	}
	st := m.st
	st.mu.RLock()
	defer st.mu.RUnlock()
	if st.handle == 0 {
		return 0, ErrClosed
	}
	return st.eng.ProbForWords(st.handle, words), nil
}

// ProbSuffix scores the suffix of ids beginning at start.
//
// start must satisfy 0 <= start < len(ids); the empty suffix is rejected
// with *ErrIndexOutOfRange because the engine's contract for it is
// undefined.
func (m *Model) ProbSuffix(ids []int32, start int) (float32, error) {
	begin := time.Now()
	p, err := m.probSuffix(ids, start)
	m.metrics.RecordScore(time.Since(begin), err)
	return p, err
}

func (m *Model) probSuffix(ids []int32, start int) (float32, error) {
	if start < 0 || start >= len(ids) {
		return 0, &ErrIndexOutOfRange{Index: start, Length: len(ids)}
	}
	st := m.st
	st.mu.RLock()
	defer st.mu.RUnlock()
	if st.handle == 0 {
		return 0, ErrClosed
	}
	return st.eng.ProbSuffix(st.handle, ids, start), nil
}

// IsKnownWord reports whether word is present in the model vocabulary.
func (m *Model) IsKnownWord(word string) (bool, error) {
	st := m.st
	st.mu.RLock()
	defer st.mu.RUnlock()
	if st.handle == 0 {
		return false, ErrClosed
	}
	return st.eng.IsKnownWord(st.handle, word), nil
}

// IsOOV reports whether the id has never been registered with the model
// vocabulary.
func (m *Model) IsOOV(id int32) (bool, error) {
	st := m.st
	st.mu.RLock()
	defer st.mu.RUnlock()
	if st.handle == 0 {
		return false, ErrClosed
	}
	return st.eng.IsOOV(st.handle, id), nil
}

// ProbRule scores the n-gram ids previously written into pool and returns
// the log-probability together with a continuation state. This is the hot
// path the Pool exists for: the ids cross the boundary through the pool's
// reused buffer instead of a fresh allocation per call.
func (m *Model) ProbRule(pool *Pool) (ProbResult, error) {
	start := time.Now()
	res, err := m.probRule(pool)
	m.metrics.RecordRuleScore(time.Since(start), err)
	return res, err
}

func (m *Model) probRule(pool *Pool) (ProbResult, error) {
	pool.mu.Lock()
	defer pool.mu.Unlock()
	if pool.handle == 0 {
		return ProbResult{}, ErrPoolClosed
	}
	st := m.st
	st.mu.RLock()
	defer st.mu.RUnlock()
	if st.handle == 0 {
		return ProbResult{}, ErrClosed
	}
	state, prob := codec.UnpackRuleScore(st.eng.ProbRule(st.handle, pool.handle))
	return ProbResult{State: state, Prob: prob}, nil
}

// EstimateRule returns a stateless probability estimate for a pre-assembled
// n-gram id sequence. No Pool and no continuation state are involved.
func (m *Model) EstimateRule(ids []int64) (float32, error) {
	start := time.Now()
	p, err := m.estimateRule(ids)
	m.metrics.RecordScore(time.Since(start), err)
	return p, err
}

func (m *Model) estimateRule(ids []int64) (float32, error) {
	if len(ids) == 0 {
		return 0, ErrEmptySequence
	}
	st := m.st
	st.mu.RLock()
	defer st.mu.RUnlock()
	if st.handle == 0 {
		return 0, ErrClosed
	}
	return st.eng.EstimateRule(st.handle, ids), nil
}
