package nn

// Parameter is a trainable buffer (weights or biases) paired with a
// same-length gradient buffer.
//
// A Parameter owns exactly one data slice and one grad slice. Layers expose
// their parameters directly and optimizers mutate the data slice in place,
// so there is no secondary optimizer-facing copy to keep synchronized.
type Parameter struct {
	name string
	data []float32
	grad []float32
}

// NewParameter creates a parameter of the given length with zeroed data
// and gradient buffers.
func NewParameter(name string, length int) *Parameter {
	return &Parameter{
		name: name,
		data: make([]float32, length),
		grad: make([]float32, length),
	}
}

// Name returns the parameter name (e.g. "dense1.weight").
func (p *Parameter) Name() string { return p.name }

// Len returns the number of elements.
func (p *Parameter) Len() int { return len(p.data) }

// Data returns the trainable buffer. The slice aliases the parameter's
// memory: optimizers update through it.
func (p *Parameter) Data() []float32 { return p.data }

// Grad returns the gradient buffer. Backward passes overwrite it in full
// on every call; it is never accumulated across calls.
func (p *Parameter) Grad() []float32 { return p.grad }

// ZeroGrad clears the gradient buffer.
func (p *Parameter) ZeroGrad() {
	for i := range p.grad {
		p.grad[i] = 0
	}
}
