package proc

import (
	"testing"

	"github.com/cwbudde/algo-proc/internal/testutil"
)

func TestNewChainRejectsInvalidMaxBlock(t *testing.T) {
	if _, err := NewChain(0); err == nil {
		t.Fatal("expected error for maxBlock = 0")
	}
	if _, err := NewChain(-8); err == nil {
		t.Fatal("expected error for negative maxBlock")
	}
}

func TestChainEmptyCopiesInput(t *testing.T) {
	c, err := NewChain(64)
	if err != nil {
		t.Fatalf("NewChain() error = %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", c.Len())
	}

	input := testutil.DeterministicNoise(3, 1.0, 32)
	output := make([]float32, len(input))
	c.Process(input, output)

	testutil.RequireSliceNearlyEqual(t, output, input, 0)
}

func TestChainSingleStage(t *testing.T) {
	c, err := NewChain(64, NewGain(2.0, false))
	if err != nil {
		t.Fatalf("NewChain() error = %v", err)
	}

	input := []float32{0.1, -0.5}
	output := make([]float32, 2)
	c.Process(input, output)

	for i := range output {
		if output[i] != input[i]*2.0 {
			t.Fatalf("output[%d] = %v, want %v", i, output[i], input[i]*2.0)
		}
	}
}

func TestChainComposesInOrder(t *testing.T) {
	// 2x gain followed by inversion: net multiplier -2.
	c, err := NewChain(128, NewGain(2.0, false), NewGain(1.0, true))
	if err != nil {
		t.Fatalf("NewChain() error = %v", err)
	}

	input := testutil.DeterministicSine(440, 48000, 0.4, 128)
	output := make([]float32, len(input))
	c.Process(input, output)

	for i := range output {
		want := input[i] * 2.0 * -1.0
		if output[i] != want {
			t.Fatalf("output[%d] = %v, want %v", i, output[i], want)
		}
	}
}

func TestChainThreeStages(t *testing.T) {
	c, err := NewChain(32, NewGain(2.0, false), NewGain(0.5, false), NewGain(1.0, true))
	if err != nil {
		t.Fatalf("NewChain() error = %v", err)
	}

	input := testutil.Ones(16)
	output := make([]float32, len(input))
	c.Process(input, output)

	for i := range output {
		if output[i] != -1.0 {
			t.Fatalf("output[%d] = %v, want -1", i, output[i])
		}
	}
}

func TestChainTruncatesToMaxBlock(t *testing.T) {
	c, err := NewChain(4, NewGain(2.0, false), NewGain(1.0, false))
	if err != nil {
		t.Fatalf("NewChain() error = %v", err)
	}

	input := testutil.Ones(8)
	output := testutil.DC(9, 8)
	c.Process(input, output)

	for i := 0; i < 4; i++ {
		if output[i] != 2.0 {
			t.Fatalf("output[%d] = %v, want 2", i, output[i])
		}
	}
	for i := 4; i < 8; i++ {
		if output[i] != 9 {
			t.Fatalf("output[%d] = %v, want untouched value 9", i, output[i])
		}
	}
}

func TestChainOutputShorterThanInput(t *testing.T) {
	c, err := NewChain(64, NewGain(3.0, false))
	if err != nil {
		t.Fatalf("NewChain() error = %v", err)
	}

	input := testutil.Ones(10)
	output := make([]float32, 6)
	c.Process(input, output)

	for i := range output {
		if output[i] != 3.0 {
			t.Fatalf("output[%d] = %v, want 3", i, output[i])
		}
	}
}

func TestChainProcessNoAllocations(t *testing.T) {
	c, err := NewChain(512, NewGain(0.5, false), NewGain(1.0, true), NewGain(2.0, false))
	if err != nil {
		t.Fatalf("NewChain() error = %v", err)
	}

	input := testutil.DeterministicSine(1000, 48000, 1.0, 512)
	output := make([]float32, len(input))

	allocs := testing.AllocsPerRun(100, func() {
		c.Process(input, output)
	})
	if allocs != 0 {
		t.Fatalf("Process allocated %v times per run, want 0", allocs)
	}
}

func BenchmarkChainProcess(b *testing.B) {
	c, err := NewChain(1024, NewGain(0.5, false), NewGain(1.0, true))
	if err != nil {
		b.Fatalf("NewChain() error = %v", err)
	}

	input := make([]float32, 1024)
	for i := range input {
		input[i] = float32(i%64) / 64
	}
	output := make([]float32, len(input))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Process(input, output)
	}
}
