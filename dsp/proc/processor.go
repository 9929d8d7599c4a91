package proc

// AudioProcessor is the contract for components that transform one block of
// 32-bit float samples at a time.
//
// Process reads samples from input and writes the transformed result into
// output. It runs on the real-time audio thread, so implementations must not
// allocate, lock, block, or perform I/O, and must complete in time
// proportional to the block length.
//
// Process never fails. When the buffers differ in length, implementations
// write output[i] only for i < min(len(input), len(output)) and silently stop
// there. Positions in output beyond len(input) are left untouched, not
// zeroed; a caller that needs silence in the tail clears it itself.
// Implementations mutate output only; input is never written.
type AudioProcessor interface {
	Process(input []float32, output []float32)
}
