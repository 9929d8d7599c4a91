package proc

import "fmt"

// Chain runs a fixed sequence of processors back to back over each block,
// and is itself an AudioProcessor. Intermediate results ping-pong between
// two scratch buffers allocated at construction, so Process stays
// allocation-free.
//
// The scratch buffers are owned by the processing thread; a Chain must not
// be shared between concurrent Process calls.
type Chain struct {
	stages   []AudioProcessor
	scratch  [2][]float32
	maxBlock int
}

// NewChain creates a chain able to process blocks of up to maxBlock samples.
// Larger blocks are truncated to maxBlock. The stage order is fixed; an
// empty chain passes input through unchanged.
func NewChain(maxBlock int, stages ...AudioProcessor) (*Chain, error) {
	if maxBlock <= 0 {
		return nil, fmt.Errorf("chain max block must be > 0: %d", maxBlock)
	}

	c := &Chain{stages: stages, maxBlock: maxBlock}
	if len(stages) > 1 {
		// Intermediate blocks ping-pong between these two.
		c.scratch[0] = make([]float32, maxBlock)
		c.scratch[1] = make([]float32, maxBlock)
	}

	return c, nil
}

// Len returns the number of stages.
func (c *Chain) Len() int {
	return len(c.stages)
}

// Process feeds the block through every stage in order. The processed
// length is min(len(input), len(output), maxBlock); output beyond that is
// left untouched.
func (c *Chain) Process(input, output []float32) {
	n := len(input)
	if len(output) < n {
		n = len(output)
	}
	if n > c.maxBlock {
		n = c.maxBlock
	}

	if len(c.stages) == 0 {
		copy(output[:n], input[:n])
		return
	}

	src := input[:n]
	for i, stage := range c.stages {
		if i == len(c.stages)-1 {
			stage.Process(src, output[:n])
			return
		}
		dst := c.scratch[i&1][:n]
		stage.Process(src, dst)
		src = dst
	}
}
