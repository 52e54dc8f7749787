package optim

import (
	"github.com/chewxy/math32"

	"github.com/sprout-ml/sprout/internal/nn"
)

// RMSProp implements root-mean-square gradient scaling.
//
// Update rule (elementwise):
//
//	v = beta * v + (1-beta) * grad²
//	param -= lr * grad / (sqrt(v) + eps)
type RMSProp struct {
	lr    float32
	beta  float32
	eps   float32
	cache map[*nn.Parameter][]float32
}

// RMSPropConfig holds configuration for the RMSProp optimizer.
type RMSPropConfig struct {
	LR   float32 // learning rate (default: 0.001)
	Beta float32 // decay rate of the squared-gradient average (default: 0.9)
	Eps  float32 // numerical stability term (default: 1e-8)
}

// NewRMSProp creates an RMSProp optimizer.
func NewRMSProp(config RMSPropConfig) *RMSProp {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Beta == 0 {
		config.Beta = 0.9
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}
	return &RMSProp{
		lr:    config.LR,
		beta:  config.Beta,
		eps:   config.Eps,
		cache: make(map[*nn.Parameter][]float32),
	}
}

// Step applies one RMSProp update to p in place.
func (r *RMSProp) Step(p *nn.Parameter) {
	data := p.Data()
	grad := p.Grad()
	v := state(r.cache, p)

	for i := range data {
		g := grad[i]
		v[i] = r.beta*v[i] + (1.0-r.beta)*g*g
		data[i] -= r.lr * g / (math32.Sqrt(v[i]) + r.eps)
	}
}

// LR returns the current learning rate.
func (r *RMSProp) LR() float32 { return r.lr }

// SetLR updates the learning rate, for scheduling.
func (r *RMSProp) SetLR(lr float32) { r.lr = lr }
