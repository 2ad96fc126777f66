// Package codec defines the packed transport value returned by the engine's
// rule-probability query.
//
// The layout is a cross-boundary wire format, not an implementation detail:
//
//	bits 63..32  continuation state (signed 32-bit integer)
//	bits 31..0   IEEE-754 bit pattern of the 32-bit log-probability
//
// The low half is reinterpreted bit-for-bit, never numerically converted, so
// negative zero and NaN payloads survive the round trip.
package codec

import "math"

// PackRuleScore packs a continuation state and a log-probability into the
// 64-bit transport value.
func PackRuleScore(state int32, prob float32) uint64 {
	return uint64(uint32(state))<<32 | uint64(math.Float32bits(prob))
}

// UnpackRuleScore is the exact inverse of PackRuleScore.
func UnpackRuleScore(v uint64) (state int32, prob float32) {
	return int32(uint32(v >> 32)), math.Float32frombits(uint32(v))
}
