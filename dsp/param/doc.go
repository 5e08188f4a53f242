// Package param describes host-automatable parameters and stores their
// current plain values for lock-free reads from the audio thread.
//
// Parameter smoothing is left to the host: a Set hands out whatever value
// was last written.
package param
