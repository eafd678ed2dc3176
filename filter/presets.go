package filter

// Preset kernels. The fixed 3x3 presets are classics lifted from image
// processing practice; the size-parameterized ones validate n the same
// way NewKernel does.

// IdentityKernel returns an n x n kernel with a single 1 at the center.
// Convolving with it samples the input at the kernel center, shifted by
// the valid-region trim.
func IdentityKernel(n int) (*Kernel, error) {
	k, err := NewKernel(n)
	if err != nil {
		return nil, err
	}
	k.grid.Set(n/2, n/2, 1)
	return k, nil
}

// BoxBlurKernel returns an n x n kernel with every cell 1/(n*n), the
// plain moving average.
func BoxBlurKernel(n int) (*Kernel, error) {
	k, err := NewKernel(n)
	if err != nil {
		return nil, err
	}
	vs := make([]float32, n*n)
	fill := 1 / float32(n*n)
	for i := range vs {
		vs[i] = fill
	}
	k.SetValues(vs)
	return k, nil
}

// SharpenKernel returns the classic 3x3 sharpening kernel.
func SharpenKernel() *Kernel {
	k, _ := NewKernel(3)
	k.SetValues([]float32{
		0, -1, 0,
		-1, 5, -1,
		0, -1, 0,
	})
	return k
}

// EdgeKernel returns the classic 3x3 edge-detection kernel. Its values
// sum to zero, so its modulus is zero and normalized convolution with it
// yields infinities and NaNs on most inputs. It is provided for callers
// that read or recombine kernel values rather than convolve directly.
func EdgeKernel() *Kernel {
	k, _ := NewKernel(3)
	k.SetValues([]float32{
		-1, -1, -1,
		-1, 8, -1,
		-1, -1, -1,
	})
	return k
}

// GaussianKernel3 returns the 3x3 binomial approximation of a Gaussian,
// normalized to sum 1.
func GaussianKernel3() *Kernel {
	k, _ := NewKernel(3)
	k.SetValues([]float32{
		1.0 / 16, 2.0 / 16, 1.0 / 16,
		2.0 / 16, 4.0 / 16, 2.0 / 16,
		1.0 / 16, 2.0 / 16, 1.0 / 16,
	})
	return k
}
