// Package lofi implements block-based lo-fi sample transforms that run
// inside a real-time audio callback.
//
// One Engine type covers three variants:
//
//   - VariantLinearInterpolator compresses the signal into piecewise-linear
//     segments. A greedy breakpoint detector extends each segment over the
//     lookahead history as far as the error tolerance allows, and the
//     segment is then replayed sample by sample.
//
//   - VariantDustLookahead delays the signal by one maximum block and remaps
//     every delayed sample to a curve-warped offset forward into the samples
//     that arrived after it. The delay is fixed, so variable host block
//     lengths do not change it; it is reported to the host as latency.
//
//   - VariantDustRing applies the same remapping backwards into a fixed
//     history ring, with an optional inverted offset. It reports no latency.
//
// Channels are processed independently with per-channel state sized at
// construction. Until a channel's history is full
// the engine passes samples through unchanged. Processing never allocates
// and never fails: degenerate amounts and out-of-range offsets are clamped.
//
// Engines are not thread-safe; drive each one from a single audio thread.
package lofi
