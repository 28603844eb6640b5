package service

import (
	"fmt"
	"unicode/utf8"
)

// Chunker splits text into overlapping fixed-size windows suitable for
// embedding. Sizes are in bytes, but window edges are clamped to rune
// starts so every chunk is valid UTF-8; for ASCII input consecutive
// chunks share exactly overlap bytes. Only the final chunk may be
// shorter than size.
type Chunker struct {
	size    int
	overlap int
}

func NewChunker(size, overlap int) (*Chunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("overlap %d must be in [0, %d)", overlap, size)
	}
	return &Chunker{size: size, overlap: overlap}, nil
}

// Split emits the chunks of content in order. Empty content yields no
// chunks; callers reject empty input before reaching the chunker.
//
// A window end that lands inside a multi-byte rune backs up to the
// rune's first byte, and the next window's start moves forward to a
// rune start, so no chunk ever cuts a rune in half. The next start is
// always strictly past the current one, so the loop terminates.
func (c *Chunker) Split(content string) []string {
	if content == "" {
		return nil
	}

	var chunks []string
	start := 0
	for {
		end := start + c.size
		if end >= len(content) {
			end = len(content)
		} else {
			for end > start && !utf8.RuneStart(content[end]) {
				end--
			}
			if end == start {
				// a single rune wider than the window; emit it whole
				_, n := utf8.DecodeRuneInString(content[start:])
				end = start + n
			}
		}
		chunks = append(chunks, content[start:end])
		if end >= len(content) {
			break
		}
		next := end - c.overlap
		if next <= start {
			next = start + 1
		}
		for next < end && !utf8.RuneStart(content[next]) {
			next++
		}
		start = next
	}

	return chunks
}
