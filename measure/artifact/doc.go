// Package artifact measures what a lo-fi transform did to a signal.
//
// Analyze compares a dry signal with its processed counterpart: level
// changes, the residual error after latency alignment, and how the
// averaged power spectrum moved (centroid and flatness). The spectra are
// Welch averages of Hann-windowed FFT frames.
package artifact
