// Command sprout runs the reference forward/backward benchmark: load a
// TensorFlow-exported MLP, classify one example, apply one training step
// and save the updated weights, timing the forward and backward paths.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sprout-ml/sprout/internal/serialization"
	"github.com/sprout-ml/sprout/nn"
	"github.com/sprout-ml/sprout/optim"
	"github.com/sprout-ml/sprout/tensor"
)

const (
	inputFeatures = 80
	numClasses    = 10
	timingRuns    = 100
)

func main() {
	dir := "."
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	fmt.Println("===== DNN Forward + Backward (Go) =====")

	x, err := serialization.ReadInput(filepath.Join(dir, "data", "test_input.txt"), inputFeatures)
	fatalOn(err)
	label, err := serialization.ReadLabel(filepath.Join(dir, "data", "test_label.txt"))
	fatalOn(err)

	layers := []*nn.DenseLayer{
		nn.NewDense(inputFeatures, 256, nn.ActivationReLU),
		nn.NewDense(256, 128, nn.ActivationReLU),
		nn.NewDense(128, 64, nn.ActivationReLU),
		nn.NewDense(64, numClasses, nn.ActivationSoftmax),
	}

	model := nn.NewModel()
	for _, l := range layers {
		model.Add(l)
	}

	lossFn := nn.NewLoss(nn.LossSparseCategoricalCrossEntropy)
	lossFn.NumClasses = numClasses
	opt := optim.NewSGD(optim.SGDConfig{LR: 0.01, Momentum: 0.9})
	model.Compile(lossFn, opt)

	fatalOn(loadBaseline(dir, layers))

	// Warm-up, then forward latency.
	model.Predict(x)

	var output *tensor.Tensor
	start := time.Now()
	for i := 0; i < timingRuns; i++ {
		output = model.Predict(x)
	}
	forwardMs := float64(time.Since(start).Microseconds()) / 1000.0 / timingRuns

	fmt.Println("\nOutput probabilities:")
	for i := 0; i < output.Cols(); i++ {
		fmt.Printf("Class %d: %.3f\n", i, output.At(0, i))
	}
	fmt.Printf("\nPredicted class: %d (label %d)\n", output.Argmax(), label)
	fmt.Printf("Forward latency: %.4f ms\n", forwardMs)

	// One training step for correctness, then save updated weights.
	fmt.Printf("Loss before update: %.6f\n", lossFn.Forward(output, nn.ClassTarget(label)))
	trainStep(model, lossFn, opt, x, label)
	fatalOn(saveUpdated(dir, layers))
	fmt.Println("\nUpdated weights saved")

	// Reload the baseline and time the full forward+backward+update loop.
	fatalOn(loadBaseline(dir, layers))
	trainStep(model, lossFn, opt, x, label) // warm-up

	start = time.Now()
	for i := 0; i < timingRuns; i++ {
		trainStep(model, lossFn, opt, x, label)
	}
	backwardMs := float64(time.Since(start).Microseconds()) / 1000.0 / timingRuns

	fmt.Printf("\nBackward + update latency: %.4f ms\n", backwardMs)
	fmt.Println("\n===== Forward & Backward Complete =====")
}

// trainStep runs one full forward/loss/backward/update pass on a single
// example.
func trainStep(model *nn.Model, lossFn *nn.Loss, opt nn.Optimizer, x *tensor.Tensor, label int) {
	output := model.Predict(x)
	grad := lossFn.Backward(output, nn.ClassTarget(label))
	model.Backward(grad)
	for _, p := range model.Parameters() {
		opt.Step(p)
	}
}

func loadBaseline(dir string, layers []*nn.DenseLayer) error {
	for i, l := range layers {
		w := filepath.Join(dir, "weights", fmt.Sprintf("dense%d_W.bin", i+1))
		b := filepath.Join(dir, "weights", fmt.Sprintf("dense%d_b.bin", i+1))
		if err := serialization.LoadDense(l, w, b); err != nil {
			return err
		}
	}
	return nil
}

func saveUpdated(dir string, layers []*nn.DenseLayer) error {
	out := filepath.Join(dir, "updated_weights")
	if err := os.MkdirAll(out, 0o755); err != nil {
		return err
	}
	for i, l := range layers {
		w := filepath.Join(out, fmt.Sprintf("dense%d_W_updated.bin", i+1))
		b := filepath.Join(out, fmt.Sprintf("dense%d_b_updated.bin", i+1))
		if err := serialization.SaveDense(l, w, b); err != nil {
			return err
		}
	}
	return nil
}

func fatalOn(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}
}
