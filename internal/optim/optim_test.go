package optim_test

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/sprout-ml/sprout/internal/nn"
	"github.com/sprout-ml/sprout/internal/optim"
)

// floatEqual checks float equality with tolerance.
func floatEqual(a, b, eps float32) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < eps
}

// param builds a parameter with the given data and gradient.
func param(t *testing.T, data, grad []float32) *nn.Parameter {
	t.Helper()
	p := nn.NewParameter("p", len(data))
	copy(p.Data(), data)
	copy(p.Grad(), grad)
	return p
}

// TestSGD_PlainStep pins the reference update: lr 0.1, grad 2, data 1
// yields 0.8.
func TestSGD_PlainStep(t *testing.T) {
	p := param(t, []float32{1.0}, []float32{2.0})

	opt := optim.NewSGD(optim.SGDConfig{LR: 0.1})
	opt.Step(p)

	if got := p.Data()[0]; !floatEqual(got, 0.8, 1e-6) {
		t.Errorf("data = %f, want 0.8", got)
	}
}

func TestSGD_Momentum(t *testing.T) {
	p := param(t, []float32{1.0}, []float32{1.0})
	opt := optim.NewSGD(optim.SGDConfig{LR: 0.1, Momentum: 0.9})

	// v1 = -0.1, data = 0.9
	opt.Step(p)
	if got := p.Data()[0]; !floatEqual(got, 0.9, 1e-6) {
		t.Errorf("after step 1: data = %f, want 0.9", got)
	}

	// v2 = 0.9*(-0.1) - 0.1 = -0.19, data = 0.71
	opt.Step(p)
	if got := p.Data()[0]; !floatEqual(got, 0.71, 1e-6) {
		t.Errorf("after step 2: data = %f, want 0.71", got)
	}
}

func TestSGD_DefaultLR(t *testing.T) {
	opt := optim.NewSGD(optim.SGDConfig{})
	if opt.LR() != 0.01 {
		t.Errorf("LR() = %f, want 0.01", opt.LR())
	}
}

func TestRMSProp_Step(t *testing.T) {
	p := param(t, []float32{1.0}, []float32{2.0})
	opt := optim.NewRMSProp(optim.RMSPropConfig{LR: 0.1, Beta: 0.9, Eps: 1e-8})

	opt.Step(p)

	// v = 0.1*4 = 0.4; data = 1 - 0.1*2/(sqrt(0.4)+1e-8)
	want := 1.0 - 0.1*2.0/(math32.Sqrt(0.4)+1e-8)
	if got := p.Data()[0]; !floatEqual(got, want, 1e-6) {
		t.Errorf("data = %f, want %f", got, want)
	}
}

// TestRMSProp_StatePersists verifies the running average carries across
// steps: a second identical gradient shrinks the divisor less.
func TestRMSProp_StatePersists(t *testing.T) {
	p := param(t, []float32{1.0}, []float32{2.0})
	opt := optim.NewRMSProp(optim.RMSPropConfig{LR: 0.1, Beta: 0.9, Eps: 1e-8})

	opt.Step(p)
	after1 := p.Data()[0]
	copy(p.Grad(), []float32{2.0})
	opt.Step(p)

	// v2 = 0.9*0.4 + 0.1*4 = 0.76
	want := after1 - 0.1*2.0/(math32.Sqrt(0.76)+1e-8)
	if got := p.Data()[0]; !floatEqual(got, want, 1e-6) {
		t.Errorf("data = %f, want %f", got, want)
	}
}

// TestAdam_FirstStep checks that the bias-corrected first step moves the
// parameter by roughly lr in the gradient's direction.
func TestAdam_FirstStep(t *testing.T) {
	p := param(t, []float32{1.0}, []float32{2.0})
	opt := optim.NewAdam(optim.AdamConfig{LR: 0.001})

	opt.Step(p)

	// At t=1: m_hat = g, v_hat = g², so the update is lr*g/(|g|+eps).
	want := float32(1.0 - 0.001)
	if got := p.Data()[0]; !floatEqual(got, want, 1e-6) {
		t.Errorf("data = %f, want %f", got, want)
	}
	if opt.Timestep() != 1 {
		t.Errorf("Timestep() = %d, want 1", opt.Timestep())
	}
}

// TestAdam_SharedTimestep pins the documented contract: one counter per
// optimizer instance, incremented once per Step call, shared across
// differently shaped parameters.
func TestAdam_SharedTimestep(t *testing.T) {
	small := param(t, []float32{1.0}, []float32{1.0})
	large := param(t, []float32{1, 1, 1}, []float32{0.5, 0.5, 0.5})

	opt := optim.NewAdam(optim.AdamConfig{LR: 0.001})

	opt.Step(small)
	if opt.Timestep() != 1 {
		t.Fatalf("Timestep() = %d after first step, want 1", opt.Timestep())
	}

	// The second parameter's first update happens at t=2, so its bias
	// correction uses beta^2 even though its own moments start at zero.
	opt.Step(large)
	if opt.Timestep() != 2 {
		t.Fatalf("Timestep() = %d after second step, want 2", opt.Timestep())
	}

	g := float32(0.5)
	beta1, beta2, lr, eps := float32(0.9), float32(0.999), float32(0.001), float32(1e-8)
	m := (1 - beta1) * g
	v := (1 - beta2) * g * g
	mHat := m / (1 - math32.Pow(beta1, 2))
	vHat := v / (1 - math32.Pow(beta2, 2))
	want := 1 - lr*mHat/(math32.Sqrt(vHat)+eps)

	for i, got := range large.Data() {
		if !floatEqual(got, want, 1e-6) {
			t.Errorf("large[%d] = %f, want %f (t=2 bias correction)", i, got, want)
		}
	}
}

// TestAdam_StateKeyedPerParameter verifies moments do not leak between
// parameters serviced by the same instance.
func TestAdam_StateKeyedPerParameter(t *testing.T) {
	a := param(t, []float32{1.0}, []float32{1.0})
	b := param(t, []float32{1.0}, []float32{-1.0})

	opt := optim.NewAdam(optim.AdamConfig{LR: 0.001})
	opt.Step(a)
	opt.Step(b)

	// Opposite gradients move the parameters in opposite directions; a
	// shared moment buffer would drag b toward a's direction.
	if a.Data()[0] >= 1.0 {
		t.Errorf("a = %f, want < 1", a.Data()[0])
	}
	if b.Data()[0] <= 1.0 {
		t.Errorf("b = %f, want > 1", b.Data()[0])
	}
}

func TestDefaults(t *testing.T) {
	adam := optim.NewAdam(optim.AdamConfig{})
	if adam.LR() != 0.001 {
		t.Errorf("Adam default LR = %f, want 0.001", adam.LR())
	}
	rms := optim.NewRMSProp(optim.RMSPropConfig{})
	if rms.LR() != 0.001 {
		t.Errorf("RMSProp default LR = %f, want 0.001", rms.LR())
	}
}

// TestOptimizerInterface verifies all three rules satisfy the shared
// interface.
func TestOptimizerInterface(_ *testing.T) {
	var _ optim.Optimizer = (*optim.SGD)(nil)
	var _ optim.Optimizer = (*optim.RMSProp)(nil)
	var _ optim.Optimizer = (*optim.Adam)(nil)
	var _ nn.Optimizer = (*optim.Adam)(nil)
}
