package serialization

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sprout-ml/sprout/internal/tensor"
)

// ReadInput loads a whitespace-separated text file of exactly n floats
// into a single-row tensor.
func ReadInput(path string, n int) (*tensor.Tensor, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}

	fields := strings.Fields(string(raw))
	if len(fields) != n {
		return nil, fmt.Errorf("input %s has %d values, expected %d: %w",
			path, len(fields), n, ErrLengthMismatch)
	}

	x := tensor.Vector(n)
	data := x.Data()
	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 32)
		if err != nil {
			return nil, fmt.Errorf("input %s value %d %q: %w", path, i, field, ErrBadValue)
		}
		data[i] = float32(v)
	}
	return x, nil
}

// ReadLabel loads a single integer class index from a text file.
func ReadLabel(path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("open label file: %w", err)
	}

	fields := strings.Fields(string(raw))
	if len(fields) != 1 {
		return 0, fmt.Errorf("label %s has %d values, expected 1: %w",
			path, len(fields), ErrLengthMismatch)
	}

	label, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, fmt.Errorf("label %s value %q: %w", path, fields[0], ErrBadValue)
	}
	return label, nil
}
