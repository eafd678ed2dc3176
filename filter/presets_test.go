package filter

import (
	"errors"
	"math"
	"testing"
)

// TestIdentityKernelSamples checks that the identity preset samples the
// window center: output (r,c) equals input (r+n/2, c+n/2).
func TestIdentityKernelSamples(t *testing.T) {
	g, _ := NewGrid(5, 5)
	for i := range g.Values() {
		g.Values()[i] = float32(i)
	}

	k, err := IdentityKernel(3)
	if err != nil {
		t.Fatalf("IdentityKernel failed: %v", err)
	}
	if k.Sum() != 1 {
		t.Errorf("Expected modulus 1, got %v", k.Sum())
	}

	out, err := k.Convolve2D(g)
	if err != nil {
		t.Fatalf("Convolve2D failed: %v", err)
	}
	for r := 0; r < out.Rows(); r++ {
		for c := 0; c < out.Cols(); c++ {
			want, _ := g.At(r+1, c+1)
			got, _ := out.At(r, c)
			if got != want {
				t.Errorf("out(%d,%d): expected %v, got %v", r, c, want, got)
			}
		}
	}

	if _, err := IdentityKernel(4); !errors.Is(err, ErrInvalidKernelSize) {
		t.Errorf("IdentityKernel(4): expected ErrInvalidKernelSize, got %v", err)
	}
}

func TestBoxBlurKernel(t *testing.T) {
	k, err := BoxBlurKernel(5)
	if err != nil {
		t.Fatalf("BoxBlurKernel failed: %v", err)
	}
	if math.Abs(float64(k.Sum()-1)) > 1e-5 {
		t.Errorf("Expected modulus 1, got %v", k.Sum())
	}

	g, _ := NewGrid(7, 7)
	for i := range g.Values() {
		g.Values()[i] = 42
	}
	out, err := k.Convolve2D(g)
	if err != nil {
		t.Fatalf("Convolve2D failed: %v", err)
	}
	for i, v := range out.Values() {
		if math.Abs(float64(v-42)) > 1e-3 {
			t.Errorf("Cell %d: expected 42, got %v", i, v)
		}
	}
}

func TestFixedPresetSums(t *testing.T) {
	if s := SharpenKernel().Sum(); math.Abs(float64(s-1)) > 1e-6 {
		t.Errorf("Sharpen: expected modulus 1, got %v", s)
	}
	if s := GaussianKernel3().Sum(); math.Abs(float64(s-1)) > 1e-6 {
		t.Errorf("Gaussian: expected modulus 1, got %v", s)
	}
	if s := EdgeKernel().Sum(); s != 0 {
		t.Errorf("Edge: expected modulus 0, got %v", s)
	}
}

// TestEdgeKernelNonFinite pins that the zero-modulus edge preset produces
// non-finite values when convolved, matching the engine's no-guard policy.
func TestEdgeKernelNonFinite(t *testing.T) {
	g, _ := NewGrid(4, 4)
	for i := range g.Values() {
		g.Values()[i] = float32(i + 1)
	}
	out, err := EdgeKernel().Convolve2D(g)
	if err != nil {
		t.Fatalf("Convolve2D failed: %v", err)
	}
	v := float64(out.Values()[0])
	if !math.IsNaN(v) && !math.IsInf(v, 0) {
		t.Errorf("Expected non-finite output, got %v", v)
	}
}
