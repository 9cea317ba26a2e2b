package batch

import (
	"fmt"
	"testing"
)

// TestChunkLines tests the ChunkLines function
func TestChunkLines(t *testing.T) {
	in := []string{"a", "b", "c", "d", "e", "f"}
	chunks := ChunkLines(in, 2)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if len(chunks[0]) != 2 || chunks[0][0] != "a" || chunks[0][1] != "b" {
		t.Fatalf("unexpected first chunk: %v", chunks[0])
	}
	if len(chunks[2]) != 2 || chunks[2][0] != "e" || chunks[2][1] != "f" {
		t.Fatalf("unexpected last chunk: %v", chunks[2])
	}
}

func TestChunkLinesDropsRemainder(t *testing.T) {
	in := makeLines(17)
	chunks := ChunkLines(in, 5)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks from 17 lines, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c) != 5 {
			t.Fatalf("chunk %d has %d lines, want 5", i, len(c))
		}
	}
	// Concatenating the chunks reproduces the 15-line prefix.
	var flat []string
	for _, c := range chunks {
		flat = append(flat, c...)
	}
	for i, line := range flat {
		if line != in[i] {
			t.Fatalf("line %d: got %q want %q", i, line, in[i])
		}
	}
}

func TestChunkLinesEmpty(t *testing.T) {
	if got := ChunkLines(nil, 3); len(got) != 0 {
		t.Fatalf("expected no chunks for empty input, got %d", len(got))
	}
	if got := ChunkLines(makeLines(2), 5); len(got) != 0 {
		t.Fatalf("expected no chunks when input is shorter than n, got %d", len(got))
	}
}

func TestChunkLinesNonPositiveN(t *testing.T) {
	if got := ChunkLines(makeLines(4), 0); len(got) != 0 {
		t.Fatalf("expected no chunks for n=0, got %d", len(got))
	}
	if got := ChunkLines(makeLines(4), -2); len(got) != 0 {
		t.Fatalf("expected no chunks for n<0, got %d", len(got))
	}
}

func makeLines(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line-%d", i)
	}
	return lines
}
