package bot

import (
	"strings"
	"testing"
)

func TestChunkMessage(t *testing.T) {
	if got := chunkMessage("short", 2000); len(got) != 1 || got[0] != "short" {
		t.Fatalf("short message should be a single chunk, got %v", got)
	}

	long := strings.Repeat("a", 4500)
	chunks := chunkMessage(long, 2000)
	if len(chunks) != 3 {
		t.Fatalf("chunks = %d, want 3", len(chunks))
	}
	if len(chunks[0]) != 2000 || len(chunks[1]) != 2000 || len(chunks[2]) != 500 {
		t.Errorf("chunk sizes = %d/%d/%d", len(chunks[0]), len(chunks[1]), len(chunks[2]))
	}
	if strings.Join(chunks, "") != long {
		t.Error("chunks do not reassemble to the original text")
	}
}

func TestChunkMessageMultibyte(t *testing.T) {
	long := strings.Repeat("ё", 2500)
	chunks := chunkMessage(long, 2000)
	if len(chunks) != 2 {
		t.Fatalf("chunks = %d, want 2", len(chunks))
	}
	// Splitting must never break a rune in half.
	for n, chunk := range chunks {
		if !strings.HasPrefix(chunk, "ё") {
			t.Errorf("chunk %d starts mid-rune", n)
		}
	}
	if strings.Join(chunks, "") != long {
		t.Error("chunks do not reassemble to the original text")
	}
}
