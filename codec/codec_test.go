package codec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackRuleScore(t *testing.T) {
	t.Run("Layout", func(t *testing.T) {
		v := PackRuleScore(1, 0)
		assert.Equal(t, uint64(1)<<32, v)

		v = PackRuleScore(0, math.Float32frombits(0xdeadbeef))
		assert.Equal(t, uint64(0xdeadbeef), v)

		// Negative state must not bleed into the float half.
		v = PackRuleScore(-1, 0)
		assert.Equal(t, uint64(0xffffffff)<<32, v)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		cases := []struct {
			name  string
			state int32
			prob  float32
		}{
			{"Zero", 0, 0},
			{"Typical", 42, -2.5},
			{"NegativeState", -7, -0.001},
			{"MaxState", math.MaxInt32, -123.456},
			{"MinState", math.MinInt32, 1.5},
			{"NegativeZero", 3, float32(math.Copysign(0, -1))},
			{"Inf", 1, float32(math.Inf(1))},
			{"NegInf", 1, float32(math.Inf(-1))},
			{"SmallestSubnormal", 9, math.Float32frombits(1)},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				state, prob := UnpackRuleScore(PackRuleScore(tc.state, tc.prob))
				assert.Equal(t, tc.state, state)
				// Bit-for-bit, not numeric: catches -0 vs +0.
				assert.Equal(t, math.Float32bits(tc.prob), math.Float32bits(prob))
			})
		}
	})

	t.Run("NaNPayloadPreserved", func(t *testing.T) {
		// A quiet NaN with a payload; numeric conversion would lose it.
		nan := math.Float32frombits(0x7fc00123)
		state, prob := UnpackRuleScore(PackRuleScore(5, nan))
		assert.Equal(t, int32(5), state)
		assert.Equal(t, uint32(0x7fc00123), math.Float32bits(prob))
	})
}
