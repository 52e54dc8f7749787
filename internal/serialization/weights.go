// Package serialization reads and writes the engine's external file
// formats: raw binary weight dumps and whitespace-separated text
// inputs/labels.
//
// Weight files are headerless sequences of little-endian 4-byte floats;
// their length is implied by the caller-known buffer size. This matches
// the format TensorFlow-side export scripts produce with a plain
// tofile() dump.
package serialization

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sprout-ml/sprout/internal/nn"
)

// ReadFloats fills buf from the binary file at path.
//
// The whole buffer must be satisfied: a shorter file yields an error
// wrapping ErrShortFile. Extra trailing bytes are ignored, as the format
// carries no length of its own.
func ReadFloats(path string, buf []float32) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open weight file: %w", err)
	}
	defer f.Close()

	if err := binary.Read(f, binary.LittleEndian, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("read %s (%d values): %w", path, len(buf), ErrShortFile)
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

// WriteFloats dumps buf to path as raw little-endian 4-byte floats.
func WriteFloats(path string, buf []float32) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create weight file: %w", err)
	}
	defer f.Close()

	if err := binary.Write(f, binary.LittleEndian, buf); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// LoadDense fills a dense layer's weight and bias buffers from two binary
// weight files.
func LoadDense(layer *nn.DenseLayer, weightPath, biasPath string) error {
	if err := ReadFloats(weightPath, layer.Weight().Data()); err != nil {
		return err
	}
	return ReadFloats(biasPath, layer.Bias().Data())
}

// SaveDense dumps a dense layer's weight and bias buffers to two binary
// weight files.
func SaveDense(layer *nn.DenseLayer, weightPath, biasPath string) error {
	if err := WriteFloats(weightPath, layer.Weight().Data()); err != nil {
		return err
	}
	return WriteFloats(biasPath, layer.Bias().Data())
}
