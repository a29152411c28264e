package utils

import (
	"strings"
	"testing"
)

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("hello world", 100, 10)
	if len(chunks) != 1 || chunks[0] != "hello world" {
		t.Fatalf("expected single chunk, got %v", chunks)
	}
}

func TestSplitTextChunkSizes(t *testing.T) {
	text := strings.Repeat("word ", 200) // 1000 chars
	chunks := SplitText(text, 100, 20)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len([]rune(c)) > 100 {
			t.Errorf("chunk %d exceeds size: %d", i, len([]rune(c)))
		}
	}
}

func TestSplitTextOverlapPreservesContent(t *testing.T) {
	text := strings.Repeat("abcdefghij ", 50)
	chunks := SplitText(text, 80, 15)

	// Every position of the original must be covered by some chunk.
	joined := strings.Join(chunks, "")
	for _, word := range strings.Fields(text) {
		if !strings.Contains(joined, word) {
			t.Fatalf("word %q missing from chunks", word)
		}
	}
}

func TestSplitTextSnapsToWhitespace(t *testing.T) {
	text := strings.Repeat("alpha beta gamma ", 40)
	chunks := SplitText(text, 64, 8)

	for i, c := range chunks[:len(chunks)-1] {
		if strings.HasSuffix(c, " ") {
			continue
		}
		// A chunk may hard-cut only when no boundary was near.
		runes := []rune(c)
		tail := string(runes[len(runes)-6:])
		if strings.Contains(tail, " ") {
			t.Errorf("chunk %d cut mid-word with a nearby boundary: %q", i, tail)
		}
	}
}

func TestSplitTextDegenerateOverlap(t *testing.T) {
	text := strings.Repeat("x", 250)
	chunks := SplitText(text, 100, 100)

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks with disabled overlap, got %d", len(chunks))
	}
	if strings.Join(chunks, "") != text {
		t.Fatal("chunks do not reconstruct original text")
	}
}
