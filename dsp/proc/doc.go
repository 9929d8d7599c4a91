// Package proc defines the block-processing contract for real-time audio
// transforms and a small set of building blocks implementing it.
//
// Contents:
//   - AudioProcessor: the per-block processing interface.
//   - Gain: constant gain with optional polarity inversion, lock-free
//     parameter updates.
//   - Chain: serial composition of processors with preallocated scratch.
//
// Everything in this package is designed for real-time use: Process methods
// never allocate, lock, or block, and dispatch through the interface happens
// once per block, never per sample.
package proc
