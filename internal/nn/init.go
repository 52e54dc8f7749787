package nn

import (
	"math/rand"

	"github.com/chewxy/math32"
)

// XavierFill fills data with values from the Xavier/Glorot uniform
// distribution U(-sqrt(6/(fanIn+fanOut)), sqrt(6/(fanIn+fanOut))).
//
// Draws come from rng, or from the shared global source when rng is nil.
// Passing a seeded rng makes initialization reproducible.
//
// This keeps activation variance roughly constant across layers at the
// start of training.
func XavierFill(rng *rand.Rand, data []float32, fanIn, fanOut int) {
	uniform := rand.Float32
	if rng != nil {
		uniform = rng.Float32
	}

	bound := math32.Sqrt(6.0 / float32(fanIn+fanOut))
	for i := range data {
		//nolint:gosec // weight initialization is not security-critical
		data[i] = (uniform()*2.0 - 1.0) * bound
	}
}
