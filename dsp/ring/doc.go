// Package ring provides the fixed-capacity sample history used by the lo-fi
// transforms. A History is a FIFO ring addressed by a write head modulo its
// capacity: once full, every push evicts exactly one sample, so steady-state
// processing never shifts or allocates.
package ring
