// Package edges implements multi-scale edge detection with directional step
// kernels of growing size.
//
// For every odd kernel size from 3 up to a caller-supplied maximum, the image
// is convolved with a horizontal and a vertical kernel and a scale-normalised
// gradient magnitude is computed per pixel. Each pixel keeps the largest
// magnitude above the threshold together with the kernel size that produced
// it, giving a magnitude map and a kernel-size map.
//
// # Kernels
//
// A kernel of size K has its first K/2 rows (AxisX) or columns (AxisY) set to
// -1 and the remaining rows or columns past the centre set to +1. The central
// row and the central column are always zero, so the kernel responds to a
// step across its centre line rather than to the centre line itself:
//
//	AxisX, K=3     AxisY, K=3
//	-1  0 -1       -1  0  1
//	 0  0  0        0  0  0
//	 1  0  1       -1  0  1
//
// # Boundary Policy
//
// Convolution zero-pads the image by K/2 on every side. Pixels near the border
// see synthetic zero neighbours; there is no reflection or clamping.
//
// # Scale Arbitration
//
// Magnitudes are divided by K² before comparison so that larger kernels do
// not win simply by summing more pixels. A pixel's entry is replaced only
// when a later scale is strictly greater, so the smallest kernel size reaching
// the maximum wins ties. A kernel size of 0 means no scale exceeded the
// threshold.
//
// # Concurrency
//
// Detector evaluates scales concurrently and merges them in ascending size
// order afterwards, so results do not depend on the worker count.
package edges
