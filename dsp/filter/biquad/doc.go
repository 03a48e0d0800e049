// Package biquad provides a streaming cascaded biquad (second-order IIR)
// filter engine.
//
// A [Section] runs the Direct Form I recurrence
//
//	y[n] = B0*x[n] + B1*x[n-1] + B2*x[n-2] - A1*y[n-1] - A2*y[n-2]
//
// for one second-order section and keeps the last two inputs and outputs
// between calls. A [Cascade] is a fixed, ordered sequence of sections, each
// consuming the previous section's output.
//
// Both types are streaming: splitting a signal into chunks of any size and
// feeding them in order produces the same output as processing the whole
// signal at once. Processing never allocates.
//
// Sections are built either from explicit [Coefficients] or from a
// [PoleZero] description of one conjugate pole/zero pair. Stability of the
// supplied poles is the caller's responsibility; an unstable section grows
// without bound or produces NaN rather than reporting an error.
//
// Neither type is safe for concurrent use. Use one Cascade per channel; see
// package dsp/filter/bank for a multichannel wrapper.
package biquad
