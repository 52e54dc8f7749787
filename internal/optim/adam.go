package optim

import (
	"github.com/chewxy/math32"

	"github.com/sprout-ml/sprout/internal/nn"
)

// Adam implements adaptive moment estimation.
//
// Update rule (elementwise):
//
//	m = beta1 * m + (1-beta1) * grad
//	v = beta2 * v + (1-beta2) * grad²
//	m_hat = m / (1 - beta1^t)
//	v_hat = v / (1 - beta2^t)
//	param -= lr * m_hat / (sqrt(v_hat) + eps)
//
// The timestep t is shared across every parameter the instance services
// and increments once per Step call, not once per parameter. Callers must
// therefore invoke Step exactly once per trainable buffer per logical
// training iteration so that bias correction stays synchronized across
// buffers trained at the same cadence (Model.Fit does this).
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014).
type Adam struct {
	lr    float32
	beta1 float32
	beta2 float32
	eps   float32
	t     int
	m     map[*nn.Parameter][]float32
	v     map[*nn.Parameter][]float32
}

// AdamConfig holds configuration for the Adam optimizer.
type AdamConfig struct {
	LR    float32    // learning rate (default: 0.001)
	Betas [2]float32 // moment decay rates (default: [0.9, 0.999])
	Eps   float32    // numerical stability term (default: 1e-8)
}

// NewAdam creates an Adam optimizer with the usual defaults.
func NewAdam(config AdamConfig) *Adam {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}
	return &Adam{
		lr:    config.LR,
		beta1: config.Betas[0],
		beta2: config.Betas[1],
		eps:   config.Eps,
		m:     make(map[*nn.Parameter][]float32),
		v:     make(map[*nn.Parameter][]float32),
	}
}

// Step applies one Adam update to p in place, advancing the shared
// timestep.
func (a *Adam) Step(p *nn.Parameter) {
	a.t++

	biasCorrection1 := 1.0 - math32.Pow(a.beta1, float32(a.t))
	biasCorrection2 := 1.0 - math32.Pow(a.beta2, float32(a.t))

	data := p.Data()
	grad := p.Grad()
	m := state(a.m, p)
	v := state(a.v, p)

	for i := range data {
		g := grad[i]
		m[i] = a.beta1*m[i] + (1.0-a.beta1)*g
		v[i] = a.beta2*v[i] + (1.0-a.beta2)*g*g

		mHat := m[i] / biasCorrection1
		vHat := v[i] / biasCorrection2

		data[i] -= a.lr * mHat / (math32.Sqrt(vHat) + a.eps)
	}
}

// LR returns the current learning rate.
func (a *Adam) LR() float32 { return a.lr }

// SetLR updates the learning rate, for scheduling.
func (a *Adam) SetLR(lr float32) { a.lr = lr }

// Timestep returns the shared step counter.
func (a *Adam) Timestep() int { return a.t }
