// Package kenlmgo provides a safe Go client for the KenLM native n-gram
// scoring engine, loaded as a shared library.
//
// The engine itself performs no argument validation: a stale handle or an
// oversized buffer faults native-side. This package converts those
// undefined behaviors into checked errors — every call is validated and its
// handle checked before crossing the foreign-function boundary.
//
// # Quick Start
//
//	lm, err := kenlmgo.New("model.bin")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer lm.Close()
//
//	order, _ := lm.Order()
//	lm.RegisterWord("the", 5)
//	p, _ := lm.Prob([]int32{5})
//
// # Stateful rule scoring
//
// The hot path reuses a caller-owned scratch buffer; create one Pool per
// worker goroutine:
//
//	pool, _ := lm.NewPool()
//	defer pool.Close()
//
//	pool.Write([]int64{5, 6, 7})
//	res, _ := lm.ProbRule(pool)   // res.Prob, res.State
//
// # Library resolution
//
// The native library (libkenlm.so / libkenlm.dylib / kenlm.dll) is resolved
// from KENLM_LIB_PATH, an explicit WithLibraryDir directory, the
// executable's lib/ directory, or the system loader path, in that order.
//
// # Lifecycle
//
// Close is idempotent and must be called by the owner; WithAutoRelease arms
// an optional GC backstop for leaked models. After Close every operation
// fails with ErrClosed — nothing reaches the engine on a released handle.
package kenlmgo
