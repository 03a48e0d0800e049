// Package freqresp measures the frequency response of a biquad cascade.
//
// [Measure] captures the cascade impulse response, transforms it with an
// FFT and reports the magnitude per bin. [Compare] lines the measurement up
// against the analytic response (the product of section transfer
// functions), which is a quick way to confirm that coefficients derived
// from pole/zero descriptions behave as intended.
//
// Measuring never disturbs the cascade's stream history.
package freqresp
