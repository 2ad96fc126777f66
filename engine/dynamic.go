package engine

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	"golang.org/x/sync/singleflight"
)

// Exported symbols of the native library. The engine side is a thin C shim
// over the KenLM query API; see the entry-point table in the package docs.
const (
	symConstruct    = "kenlm_construct"
	symDestroy      = "kenlm_destroy"
	symOrder        = "kenlm_order"
	symRegisterWord = "kenlm_register_word"
	symProb         = "kenlm_prob"
	symProbWords    = "kenlm_prob_words"
	symProbSuffix   = "kenlm_prob_suffix"
	symKnownWord    = "kenlm_known_word"
	symIsOOV        = "kenlm_is_oov"
	symCreatePool   = "kenlm_create_pool"
	symDestroyPool  = "kenlm_destroy_pool"
	symProbRule     = "kenlm_prob_rule"
	symEstimateRule = "kenlm_estimate_rule"
)

var (
	loadGroup singleflight.Group

	loadMu sync.Mutex
	loaded = make(map[string]*Dynamic)
)

// Dynamic is the purego-backed Engine over a dlopen'ed shared library.
//
// A Dynamic is shared process-wide per library path and stays loaded for the
// life of the process; dlclosing a library that still has live model handles
// is never safe, and re-resolving symbols per model buys nothing.
type Dynamic struct {
	lib  uintptr
	path string

	construct    func(path string) uintptr
	destroy      func(h uintptr)
	order        func(h uintptr) int32
	registerWord func(h uintptr, word string, id int32) bool
	prob         func(h uintptr, ids unsafe.Pointer, n int32) float32
	probWords    func(h uintptr, words unsafe.Pointer, n int32) float32
	probSuffix   func(h uintptr, ids unsafe.Pointer, n, start int32) float32
	knownWord    func(h uintptr, word string) bool
	isOOV        func(h uintptr, id int32) bool
	createPool   func(buf unsafe.Pointer, capacity int32) uintptr
	destroyPool  func(p uintptr)
	probRule     func(h, p uintptr) uint64
	estimateRule func(h uintptr, ids unsafe.Pointer, n int32) float32
}

var _ Engine = (*Dynamic)(nil)

// Load returns the process-wide Dynamic engine for the library at path,
// loading it on first use. Concurrent first loads of the same path are
// collapsed into one dlopen.
func Load(path string) (*Dynamic, error) {
	loadMu.Lock()
	if d, ok := loaded[path]; ok {
		loadMu.Unlock()
		return d, nil
	}
	loadMu.Unlock()

	v, err, _ := loadGroup.Do(path, func() (any, error) {
		d, err := open(path)
		if err != nil {
			return nil, err
		}
		loadMu.Lock()
		loaded[path] = d
		loadMu.Unlock()
		return d, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Dynamic), nil
}

func open(path string) (*Dynamic, error) {
	libh, err := loadLibrary(path)
	if err != nil {
		return nil, err
	}

	d := &Dynamic{lib: libh, path: path}
	if err := d.registerSymbols(); err != nil {
		_ = closeLibrary(libh)
		return nil, err
	}
	return d, nil
}

// registerSymbols binds every entry point. purego.RegisterLibFunc panics on
// a missing symbol; recover turns that into an error so a half-built shim
// library is reported instead of crashing the process.
func (d *Dynamic) registerSymbols() (err error) {
	var current string
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s in %s: %v", ErrSymbolMissing, current, d.path, r)
		}
	}()

	register := func(fptr any, name string) {
		current = name
		purego.RegisterLibFunc(fptr, d.lib, name)
	}

	register(&d.construct, symConstruct)
	register(&d.destroy, symDestroy)
	register(&d.order, symOrder)
	register(&d.registerWord, symRegisterWord)
	register(&d.prob, symProb)
	register(&d.probWords, symProbWords)
	register(&d.probSuffix, symProbSuffix)
	register(&d.knownWord, symKnownWord)
	register(&d.isOOV, symIsOOV)
	register(&d.createPool, symCreatePool)
	register(&d.destroyPool, symDestroyPool)
	register(&d.probRule, symProbRule)
	register(&d.estimateRule, symEstimateRule)
	return nil
}

// Path returns the library path this engine was loaded from.
func (d *Dynamic) Path() string { return d.path }

func (d *Dynamic) Construct(path string) (ModelHandle, error) {
	h := d.construct(path)
	if h == 0 {
		return 0, fmt.Errorf("%w: %s", ErrModelRejected, path)
	}
	return ModelHandle(h), nil
}

func (d *Dynamic) Destroy(h ModelHandle) {
	d.destroy(uintptr(h))
}

func (d *Dynamic) Order(h ModelHandle) int {
	return int(d.order(uintptr(h)))
}

func (d *Dynamic) RegisterWord(h ModelHandle, word string, id int32) bool {
	return d.registerWord(uintptr(h), word, id)
}

func (d *Dynamic) Prob(h ModelHandle, ids []int32) float32 {
	p := d.prob(uintptr(h), unsafe.Pointer(&ids[0]), int32(len(ids)))
	runtime.KeepAlive(ids)
	return p
}

func (d *Dynamic) ProbForWords(h ModelHandle, words []string) float32 {
	cstrs, ptrs := cStringArray(words)
	p := d.probWords(uintptr(h), unsafe.Pointer(&ptrs[0]), int32(len(words)))
	runtime.KeepAlive(cstrs)
	runtime.KeepAlive(ptrs)
	return p
}

func (d *Dynamic) ProbSuffix(h ModelHandle, ids []int32, start int) float32 {
	p := d.probSuffix(uintptr(h), unsafe.Pointer(&ids[0]), int32(len(ids)), int32(start))
	runtime.KeepAlive(ids)
	return p
}

func (d *Dynamic) IsKnownWord(h ModelHandle, word string) bool {
	return d.knownWord(uintptr(h), word)
}

func (d *Dynamic) IsOOV(h ModelHandle, id int32) bool {
	return d.isOOV(uintptr(h), id)
}

func (d *Dynamic) CreatePool(buf []int64) (PoolHandle, error) {
	p := d.createPool(unsafe.Pointer(&buf[0]), int32(len(buf)))
	runtime.KeepAlive(buf)
	if p == 0 {
		return 0, ErrPoolRejected
	}
	return PoolHandle(p), nil
}

func (d *Dynamic) DestroyPool(p PoolHandle) {
	d.destroyPool(uintptr(p))
}

func (d *Dynamic) ProbRule(h ModelHandle, p PoolHandle) uint64 {
	return d.probRule(uintptr(h), uintptr(p))
}

func (d *Dynamic) EstimateRule(h ModelHandle, ids []int64) float32 {
	p := d.estimateRule(uintptr(h), unsafe.Pointer(&ids[0]), int32(len(ids)))
	runtime.KeepAlive(ids)
	return p
}

// cStringArray builds a NUL-terminated copy of each word plus the pointer
// array the native side walks. Both returned slices must be kept alive
// across the call.
func cStringArray(words []string) ([][]byte, []*byte) {
	cstrs := make([][]byte, len(words))
	ptrs := make([]*byte, len(words))
	for i, w := range words {
		cstrs[i] = append([]byte(w), 0)
		ptrs[i] = &cstrs[i][0]
	}
	return cstrs, ptrs
}
